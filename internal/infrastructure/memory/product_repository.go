package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo en memoria.
type ProductRepo struct {
	sc scope
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

// Create guarda un producto nuevo.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.products.get(product.ID); ok {
			return domain.ErrDuplicate
		}
		st.products.put(product.ID, cloneProduct(product))
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.sc.read(func(st *state) error {
		if p, ok := st.products.get(id); ok {
			out = cloneProduct(p)
		}
		return nil
	})
	return out, err
}

// Update reemplaza un producto existente.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.products.get(product.ID); !ok {
			return domain.ErrNotFound
		}
		st.products.put(product.ID, cloneProduct(product))
		return nil
	})
}

// Delete elimina el producto; los registros históricos conservan su copia.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.products.get(id); !ok {
			return domain.ErrNotFound
		}
		st.products.remove(id)
		return nil
	})
}

// List devuelve el catálogo ordenado por nombre.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.sc.read(func(st *state) error {
		st.products.each(func(p *entity.Product) { list = append(list, cloneProduct(p)) })
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})
	return list, err
}

// Count número de productos del catálogo.
func (r *ProductRepo) Count(_ context.Context) (int, error) {
	n := 0
	err := r.sc.read(func(st *state) error {
		n = len(st.products.rows)
		return nil
	})
	return n, err
}
