package memory

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos en memoria. El número de pedido es único, como el índice de Postgres.
type OrderRepo struct {
	sc scope
}

func numberTaken(st *state, number, exceptID string) bool {
	taken := false
	st.orders.each(func(o *entity.Order) {
		if o.OrderNumber == number && o.ID != exceptID {
			taken = true
		}
	})
	return taken
}

func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.orders.get(order.ID); ok || numberTaken(st, order.OrderNumber, "") {
			return domain.ErrDuplicate
		}
		st.orders.put(order.ID, order.Clone())
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.sc.read(func(st *state) error {
		if o, ok := st.orders.get(id); ok {
			out = o.Clone()
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: Store.Run ya serializa las transacciones.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) GetByNumber(_ context.Context, orderNumber string) (*entity.Order, error) {
	var out *entity.Order
	err := r.sc.read(func(st *state) error {
		st.orders.each(func(o *entity.Order) {
			if out == nil && o.OrderNumber == orderNumber {
				out = o.Clone()
			}
		})
		return nil
	})
	return out, err
}

func (r *OrderRepo) Update(_ context.Context, order *entity.Order) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.orders.get(order.ID); !ok {
			return domain.ErrNotFound
		}
		if numberTaken(st, order.OrderNumber, order.ID) {
			return domain.ErrDuplicate
		}
		st.orders.put(order.ID, order.Clone())
		return nil
	})
}

// List devuelve los pedidos del más reciente al más antiguo.
func (r *OrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var list []*entity.Order
	err := r.sc.read(func(st *state) error {
		st.orders.each(func(o *entity.Order) {
			if filter.Status != "" && o.Status != filter.Status {
				return
			}
			list = append(list, o.Clone())
		})
		return nil
	})
	reverse(list)
	return list, err
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
