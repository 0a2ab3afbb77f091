package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

const entryColumns = `id, entry_date, order_id, order_number, invoices, total_quantity, total_value,
	payment_method, installments, first_due_date, created_by, created_by_name, created_at`

// StockEntryRepo entradas con sus notas fiscales en una columna JSONB.
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador de entradas. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

func scanEntry(row pgx.Row) (*entity.StockEntry, error) {
	var (
		e        entity.StockEntry
		invoices []byte
		method   string
	)
	if err := row.Scan(&e.ID, &e.Date, &e.OrderID, &e.OrderNumber, &invoices, &e.TotalQuantity, &e.TotalValue,
		&method, &e.Installments, &e.FirstDueDate, &e.CreatedBy, &e.CreatedByName, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.PaymentMethod = entity.PaymentMethod(method)
	if err := json.Unmarshal(invoices, &e.Invoices); err != nil {
		return nil, fmt.Errorf("decode invoices: %w", err)
	}
	return &e, nil
}

// Create persiste la entrada. Las entradas no se modifican después.
func (r *StockEntryRepo) Create(ctx context.Context, e *entity.StockEntry) error {
	invoices, err := json.Marshal(e.Invoices)
	if err != nil {
		return fmt.Errorf("encode invoices: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO stock_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		e.ID, e.Date, e.OrderID, e.OrderNumber, invoices, e.TotalQuantity, e.TotalValue,
		string(e.PaymentMethod), e.Installments, e.FirstDueDate, e.CreatedBy, e.CreatedByName, e.CreatedAt,
	)
	return insertErr("stock entry", err)
}

// GetByID obtiene una entrada por ID.
func (r *StockEntryRepo) GetByID(ctx context.Context, id string) (*entity.StockEntry, error) {
	e, err := scanEntry(r.q.QueryRow(ctx, `SELECT `+entryColumns+` FROM stock_entries WHERE id = $1`, id))
	return noRows(e, err, "get stock entry")
}

// List devuelve las entradas de la más reciente a la más antigua.
func (r *StockEntryRepo) List(ctx context.Context) ([]*entity.StockEntry, error) {
	return r.list(ctx, `SELECT `+entryColumns+` FROM stock_entries ORDER BY created_at DESC, id DESC`)
}

// ListByOrder entradas registradas contra un pedido.
func (r *StockEntryRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.StockEntry, error) {
	return r.list(ctx, `SELECT `+entryColumns+` FROM stock_entries WHERE order_id = $1 ORDER BY created_at DESC, id DESC`, orderID)
}

func (r *StockEntryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
