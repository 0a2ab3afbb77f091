package memory

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.StockExitRepository = (*StockExitRepo)(nil)

// StockExitRepo salidas en memoria.
type StockExitRepo struct {
	sc scope
}

func (r *StockExitRepo) Create(_ context.Context, exit *entity.StockExit) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.exits.get(exit.ID); ok {
			return domain.ErrDuplicate
		}
		st.exits.put(exit.ID, exit.Clone())
		return nil
	})
}

func (r *StockExitRepo) GetByID(_ context.Context, id string) (*entity.StockExit, error) {
	var out *entity.StockExit
	err := r.sc.read(func(st *state) error {
		if e, ok := st.exits.get(id); ok {
			out = e.Clone()
		}
		return nil
	})
	return out, err
}

func (r *StockExitRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockExit, error) {
	return r.GetByID(ctx, id)
}

func (r *StockExitRepo) Update(_ context.Context, exit *entity.StockExit) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.exits.get(exit.ID); !ok {
			return domain.ErrNotFound
		}
		st.exits.put(exit.ID, exit.Clone())
		return nil
	})
}

func (r *StockExitRepo) Delete(_ context.Context, id string) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.exits.get(id); !ok {
			return domain.ErrNotFound
		}
		st.exits.remove(id)
		return nil
	})
}

// List devuelve las salidas de la más reciente a la más antigua.
func (r *StockExitRepo) List(_ context.Context) ([]*entity.StockExit, error) {
	var list []*entity.StockExit
	err := r.sc.read(func(st *state) error {
		st.exits.each(func(e *entity.StockExit) { list = append(list, e.Clone()) })
		return nil
	})
	reverse(list)
	return list, err
}
