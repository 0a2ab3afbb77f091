package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// StockExitRepository define el puerto para salidas de inventario.
type StockExitRepository interface {
	Create(ctx context.Context, exit *entity.StockExit) error
	GetByID(ctx context.Context, id string) (*entity.StockExit, error)
	GetForUpdate(ctx context.Context, id string) (*entity.StockExit, error)
	Update(ctx context.Context, exit *entity.StockExit) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.StockExit, error)
}
