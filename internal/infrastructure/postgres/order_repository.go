package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_number, order_date, total_value, created_by, created_by_name, status, created_at, updated_at`

// OrderRepo pedidos en "orders" y sus líneas en "order_items" (posición = orden de la lista).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o      entity.Order
		status string
	)
	err := row.Scan(&o.ID, &o.OrderNumber, &o.Date, &o.TotalValue, &o.CreatedBy, &o.CreatedByName,
		&status, &o.CreatedAt, &o.UpdatedAt)
	o.Status = entity.OrderStatus(status)
	return &o, err
}

// Create inserta cabecera y líneas. Número de pedido repetido → ErrDuplicate.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.OrderNumber, o.Date, o.TotalValue, o.CreatedBy, o.CreatedByName, string(o.Status), o.CreatedAt, o.UpdatedAt,
	)
	if err := insertErr("order", err); err != nil {
		return err
	}
	return r.insertItems(ctx, o)
}

func (r *OrderRepo) insertItems(ctx context.Context, o *entity.Order) error {
	for i, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, position, product_id, product_name, supplier, unit_cost,
				quantity, total_value, status, approved_by, approved_by_name)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			it.ID, o.ID, i, it.ProductID, it.ProductName, it.Supplier, it.UnitCost,
			it.Quantity, it.TotalValue, string(it.Status), it.ApprovedBy, it.ApprovedByName,
		)
		if err := insertErr("order item", err); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene un pedido con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila del pedido hasta el fin de la tx.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

// GetByNumber busca por número de pedido.
func (r *OrderRepo) GetByNumber(ctx context.Context, number string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, number)
}

func (r *OrderRepo) getOne(ctx context.Context, query string, arg any) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, arg))
	if o, err = noRows(o, err, "get order"); err != nil || o == nil {
		return o, err
	}
	if err := r.loadItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// Update reemplaza cabecera y líneas; las líneas conservan su ID.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE orders SET order_number = $2, order_date = $3, total_value = $4, status = $5, updated_at = $6
		WHERE id = $1`,
		o.ID, o.OrderNumber, o.Date, o.TotalValue, string(o.Status), o.UpdatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return insertErr("order", err)
	}
	if err := affected(tag, err, "update order"); err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, o.ID); err != nil {
		return fmt.Errorf("replace order items: %w", err)
	}
	return r.insertItems(ctx, o)
}

// List devuelve los pedidos del más reciente al más antiguo.
func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE ($1::text = '' OR status = $1)
		ORDER BY created_at DESC, id DESC`, string(filter.Status))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems rellena las líneas de todos los pedidos con una sola consulta.
func (r *OrderRepo) loadItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT order_id, id, product_id, product_name, supplier, unit_cost, quantity, total_value,
			status, approved_by, approved_by_name
		FROM order_items WHERE order_id = ANY($1)
		ORDER BY order_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			orderID string
			status  string
			it      entity.OrderItem
		)
		if err := rows.Scan(&orderID, &it.ID, &it.ProductID, &it.ProductName, &it.Supplier, &it.UnitCost,
			&it.Quantity, &it.TotalValue, &status, &it.ApprovedBy, &it.ApprovedByName); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		it.Status = entity.ItemStatus(status)
		byID[orderID].Items = append(byID[orderID].Items, it)
	}
	return rows.Err()
}
