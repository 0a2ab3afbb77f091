package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

var stockItemCopyColumns = []string{
	"id", "stock_entry_id", "invoice_number", "product_id", "product_name", "supplier",
	"unit_cost", "entry_date", "exit_date", "status", "exit_id",
}

const stockItemColumns = `id, stock_entry_id, invoice_number, product_id, product_name, supplier,
	unit_cost, entry_date, exit_date, status, exit_id`

// StockItemRepo unidades físicas. "seq" conserva el orden de creación para desempatar listados.
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de unidades. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var (
		s      entity.StockItem
		status string
	)
	err := row.Scan(&s.ID, &s.StockEntryID, &s.InvoiceNumber, &s.ProductID, &s.ProductName, &s.Supplier,
		&s.UnitCost, &s.EntryDate, &s.ExitDate, &status, &s.ExitID)
	s.Status = entity.StockItemStatus(status)
	return &s, err
}

// CreateBatch inserta las unidades con COPY; una entrada puede generar cientos.
func (r *StockItemRepo) CreateBatch(ctx context.Context, items []*entity.StockItem) error {
	if len(items) == 0 {
		return nil
	}
	_, err := r.q.CopyFrom(ctx, pgx.Identifier{"stock_items"}, stockItemCopyColumns,
		pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
			s := items[i]
			return []any{
				s.ID, s.StockEntryID, s.InvoiceNumber, s.ProductID, s.ProductName, s.Supplier,
				s.UnitCost, s.EntryDate, s.ExitDate, string(s.Status), s.ExitID,
			}, nil
		}),
	)
	return insertErr("stock items", err)
}

// GetByIDs devuelve las unidades encontradas; los IDs inexistentes se omiten.
func (r *StockItemRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.StockItem, error) {
	return r.list(ctx, `SELECT `+stockItemColumns+` FROM stock_items WHERE id = ANY($1) ORDER BY seq`, ids)
}

// GetByIDsForUpdate bloquea las filas hasta el fin de la transacción.
func (r *StockItemRepo) GetByIDsForUpdate(ctx context.Context, ids []string) ([]*entity.StockItem, error) {
	return r.list(ctx, `SELECT `+stockItemColumns+` FROM stock_items WHERE id = ANY($1) ORDER BY seq FOR UPDATE`, ids)
}

// ListByExit unidades consumidas por una salida.
func (r *StockItemRepo) ListByExit(ctx context.Context, exitID string) ([]*entity.StockItem, error) {
	return r.list(ctx, `SELECT `+stockItemColumns+` FROM stock_items WHERE exit_id = $1 ORDER BY seq`, exitID)
}

// UpdateBatch persiste Status, ExitDate y ExitID. Si alguna unidad no existe devuelve
// ErrNotFound; la transacción que la contiene descarta lo ya escrito.
func (r *StockItemRepo) UpdateBatch(ctx context.Context, items []*entity.StockItem) error {
	for _, s := range items {
		tag, err := r.q.Exec(ctx, `UPDATE stock_items SET status = $2, exit_date = $3, exit_id = $4 WHERE id = $1`,
			s.ID, string(s.Status), s.ExitDate, s.ExitID)
		if err != nil {
			return fmt.Errorf("update stock item: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: unidad %s", domain.ErrNotFound, s.ID)
		}
	}
	return nil
}

// List filtra por estado y producto; más reciente primero.
func (r *StockItemRepo) List(ctx context.Context, filter repository.StockItemFilter) ([]*entity.StockItem, error) {
	return r.list(ctx, `
		SELECT `+stockItemColumns+` FROM stock_items
		WHERE ($1::text = '' OR status = $1) AND ($2::text = '' OR product_id = $2)
		ORDER BY entry_date DESC, seq`, string(filter.Status), filter.ProductID)
}

func (r *StockItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		s, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
