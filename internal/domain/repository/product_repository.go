package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para el catálogo (DIP).
// GetByID devuelve (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
}
