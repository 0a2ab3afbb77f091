package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// OrderFilter filtros opcionales para listar pedidos. Status vacío = todos.
type OrderFilter struct {
	Status entity.OrderStatus
}

// OrderRepository define el puerto de persistencia para pedidos de compra y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea el pedido hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	// Update reemplaza cabecera y líneas; las líneas conservan su ID.
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
}
