package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.StockExitRepository = (*StockExitRepo)(nil)

const exitColumns = `id, stock_item_ids, items, total_cost, exit_date, observation, created_by, created_by_name,
	confirmed_by, confirmed_by_name, confirmed_at, created_at`

// StockExitRepo salidas; el resumen por producto va en JSONB y las unidades en TEXT[].
type StockExitRepo struct {
	q Querier
}

// NewStockExitRepository construye el adaptador de salidas. Pasar pool o tx (Querier).
func NewStockExitRepository(q Querier) *StockExitRepo {
	return &StockExitRepo{q: q}
}

func scanExit(row pgx.Row) (*entity.StockExit, error) {
	var (
		e     entity.StockExit
		items []byte
	)
	if err := row.Scan(&e.ID, &e.StockItemIDs, &items, &e.TotalCost, &e.ExitDate, &e.Observation,
		&e.CreatedBy, &e.CreatedByName, &e.ConfirmedBy, &e.ConfirmedByName, &e.ConfirmedAt, &e.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &e.Items); err != nil {
		return nil, fmt.Errorf("decode exit items: %w", err)
	}
	return &e, nil
}

// Create persiste una salida.
func (r *StockExitRepo) Create(ctx context.Context, e *entity.StockExit) error {
	items, err := json.Marshal(e.Items)
	if err != nil {
		return fmt.Errorf("encode exit items: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO stock_exits (`+exitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.StockItemIDs, items, e.TotalCost, e.ExitDate, e.Observation, e.CreatedBy, e.CreatedByName,
		e.ConfirmedBy, e.ConfirmedByName, e.ConfirmedAt, e.CreatedAt,
	)
	return insertErr("stock exit", err)
}

// GetByID obtiene una salida por ID.
func (r *StockExitRepo) GetByID(ctx context.Context, id string) (*entity.StockExit, error) {
	e, err := scanExit(r.q.QueryRow(ctx, `SELECT `+exitColumns+` FROM stock_exits WHERE id = $1`, id))
	return noRows(e, err, "get stock exit")
}

// GetForUpdate bloquea la salida hasta el fin de la transacción.
func (r *StockExitRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockExit, error) {
	e, err := scanExit(r.q.QueryRow(ctx, `SELECT `+exitColumns+` FROM stock_exits WHERE id = $1 FOR UPDATE`, id))
	return noRows(e, err, "get stock exit for update")
}

// Update reescribe fecha, observación y confirmación. Unidades y resumen no cambian tras crearse.
func (r *StockExitRepo) Update(ctx context.Context, e *entity.StockExit) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE stock_exits SET exit_date = $2, observation = $3, confirmed_by = $4, confirmed_by_name = $5,
			confirmed_at = $6
		WHERE id = $1`,
		e.ID, e.ExitDate, e.Observation, e.ConfirmedBy, e.ConfirmedByName, e.ConfirmedAt,
	)
	return affected(tag, err, "update stock exit")
}

// Delete elimina una salida.
func (r *StockExitRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_exits WHERE id = $1`, id)
	return affected(tag, err, "delete stock exit")
}

// List devuelve las salidas de la más reciente a la más antigua.
func (r *StockExitRepo) List(ctx context.Context) ([]*entity.StockExit, error) {
	rows, err := r.q.Query(ctx, `SELECT `+exitColumns+` FROM stock_exits ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list stock exits: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockExit
	for rows.Next() {
		e, err := scanExit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock exit: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
