package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo unidades físicas en memoria.
type StockItemRepo struct {
	sc scope
}

func (r *StockItemRepo) CreateBatch(_ context.Context, items []*entity.StockItem) error {
	return r.sc.write(func(st *state) error {
		for _, it := range items {
			if _, ok := st.stockItems.get(it.ID); ok {
				return domain.ErrDuplicate
			}
		}
		for _, it := range items {
			st.stockItems.put(it.ID, it.Clone())
		}
		return nil
	})
}

// GetByIDs respeta el orden de ids y omite los inexistentes.
func (r *StockItemRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.StockItem, error) {
	list := make([]*entity.StockItem, 0, len(ids))
	err := r.sc.read(func(st *state) error {
		for _, id := range ids {
			if it, ok := st.stockItems.get(id); ok {
				list = append(list, it.Clone())
			}
		}
		return nil
	})
	return list, err
}

func (r *StockItemRepo) GetByIDsForUpdate(ctx context.Context, ids []string) ([]*entity.StockItem, error) {
	return r.GetByIDs(ctx, ids)
}

func (r *StockItemRepo) ListByExit(_ context.Context, exitID string) ([]*entity.StockItem, error) {
	var list []*entity.StockItem
	err := r.sc.read(func(st *state) error {
		st.stockItems.each(func(it *entity.StockItem) {
			if it.ExitID == exitID {
				list = append(list, it.Clone())
			}
		})
		return nil
	})
	return list, err
}

// UpdateBatch falla sin aplicar nada si alguna unidad no existe.
func (r *StockItemRepo) UpdateBatch(_ context.Context, items []*entity.StockItem) error {
	return r.sc.write(func(st *state) error {
		for _, it := range items {
			if _, ok := st.stockItems.get(it.ID); !ok {
				return domain.ErrNotFound
			}
		}
		for _, it := range items {
			st.stockItems.put(it.ID, it.Clone())
		}
		return nil
	})
}

// List ordena por fecha de entrada (más reciente primero) conservando el orden de creación.
func (r *StockItemRepo) List(_ context.Context, filter repository.StockItemFilter) ([]*entity.StockItem, error) {
	var list []*entity.StockItem
	err := r.sc.read(func(st *state) error {
		st.stockItems.each(func(it *entity.StockItem) {
			if filter.Status != "" && it.Status != filter.Status {
				return
			}
			if filter.ProductID != "" && it.ProductID != filter.ProductID {
				return
			}
			list = append(list, it.Clone())
		})
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].EntryDate.After(list[j].EntryDate) })
	return list, err
}
