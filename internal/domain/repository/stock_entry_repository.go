package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// StockEntryRepository define el puerto para entradas de mercancía con sus notas fiscales.
// Las entradas son inmutables una vez creadas.
type StockEntryRepository interface {
	Create(ctx context.Context, entry *entity.StockEntry) error
	GetByID(ctx context.Context, id string) (*entity.StockEntry, error)
	List(ctx context.Context) ([]*entity.StockEntry, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.StockEntry, error)
}
