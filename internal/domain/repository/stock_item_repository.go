package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// StockItemFilter filtros opcionales de la consulta de unidades.
type StockItemFilter struct {
	Status    entity.StockItemStatus
	ProductID string
}

// StockItemRepository define el puerto para las unidades físicas (vista explotada del inventario).
type StockItemRepository interface {
	CreateBatch(ctx context.Context, items []*entity.StockItem) error
	// GetByIDs devuelve las unidades encontradas; los IDs inexistentes se omiten.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.StockItem, error)
	// GetByIDsForUpdate igual que GetByIDs pero bloquea las filas (SELECT FOR UPDATE).
	GetByIDsForUpdate(ctx context.Context, ids []string) ([]*entity.StockItem, error)
	ListByExit(ctx context.Context, exitID string) ([]*entity.StockItem, error)
	// UpdateBatch persiste Status, ExitDate y ExitID de las unidades indicadas.
	UpdateBatch(ctx context.Context, items []*entity.StockItem) error
	List(ctx context.Context, filter StockItemFilter) ([]*entity.StockItem, error)
}
