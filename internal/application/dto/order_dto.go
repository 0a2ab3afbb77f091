package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de pedido en creación o edición.
// ID solo se envía al editar una línea existente.
type OrderItemRequest struct {
	ID        string `json:"id,omitempty"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// CreateOrderRequest entrada para crear un pedido.
type CreateOrderRequest struct {
	OrderNumber string             `json:"order_number" validate:"required,max=50"`
	Date        Date               `json:"date"`
	Items       []OrderItemRequest `json:"items" validate:"required,min=1,max=50,dive"`
}

// UpdateOrderRequest entrada para editar un pedido; los campos nil no cambian.
type UpdateOrderRequest struct {
	OrderNumber *string            `json:"order_number" validate:"omitempty,min=1,max=50"`
	Date        *Date              `json:"date"`
	Items       []OrderItemRequest `json:"items" validate:"omitempty,min=1,max=50,dive"`
}

// OrderListFilter filtros de GET /api/orders.
type OrderListFilter struct {
	Status string `query:"status" validate:"omitempty,oneof=pending approved rejected partial"`
}

// OrderItemResponse salida de una línea de pedido.
type OrderItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Supplier       string          `json:"supplier"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	Quantity       int             `json:"quantity"`
	TotalValue     decimal.Decimal `json:"total_value"`
	Status         string          `json:"status"`
	ApprovedBy     string          `json:"approved_by,omitempty"`
	ApprovedByName string          `json:"approved_by_name,omitempty"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"order_number"`
	Date          Date                `json:"date"`
	Items         []OrderItemResponse `json:"items"`
	TotalValue    decimal.Decimal     `json:"total_value"`
	CreatedBy     string              `json:"created_by"`
	CreatedByName string              `json:"created_by_name"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ReceivingLineResponse situación de recepción de una línea aprobada o pendiente.
type ReceivingLineResponse struct {
	OrderItemID string          `json:"order_item_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Supplier    string          `json:"supplier"`
	Status      string          `json:"status"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Ordered     int             `json:"ordered"`
	Received    int             `json:"received"`
	Remaining   int             `json:"remaining"`
}

// ReceivingSummaryResponse salida de GET /api/orders/:id/receiving.
type ReceivingSummaryResponse struct {
	OrderID     string                  `json:"order_id"`
	OrderNumber string                  `json:"order_number"`
	Lines       []ReceivingLineResponse `json:"lines"`
	FullyServed bool                    `json:"fully_served"`
}
