package memory

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo entradas en memoria.
type StockEntryRepo struct {
	sc scope
}

func (r *StockEntryRepo) Create(_ context.Context, entry *entity.StockEntry) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.entries.get(entry.ID); ok {
			return domain.ErrDuplicate
		}
		st.entries.put(entry.ID, entry.Clone())
		return nil
	})
}

func (r *StockEntryRepo) GetByID(_ context.Context, id string) (*entity.StockEntry, error) {
	var out *entity.StockEntry
	err := r.sc.read(func(st *state) error {
		if e, ok := st.entries.get(id); ok {
			out = e.Clone()
		}
		return nil
	})
	return out, err
}

// List devuelve las entradas de la más reciente a la más antigua.
func (r *StockEntryRepo) List(_ context.Context) ([]*entity.StockEntry, error) {
	return r.list("")
}

// ListByOrder entradas registradas contra un pedido.
func (r *StockEntryRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.StockEntry, error) {
	return r.list(orderID)
}

func (r *StockEntryRepo) list(orderID string) ([]*entity.StockEntry, error) {
	var list []*entity.StockEntry
	err := r.sc.read(func(st *state) error {
		st.entries.each(func(e *entity.StockEntry) {
			if orderID == "" || e.OrderID == orderID {
				list = append(list, e.Clone())
			}
		})
		return nil
	})
	reverse(list)
	return list, err
}
