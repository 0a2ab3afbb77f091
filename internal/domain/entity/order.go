package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxOrderItems límite de líneas por pedido.
const MaxOrderItems = 50

// OrderStatus estado derivado del pedido; nunca se asigna sin recalcular desde los ítems.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusApproved OrderStatus = "approved"
	OrderStatusRejected OrderStatus = "rejected"
	OrderStatusPartial  OrderStatus = "partial" // mezcla de aprobados/rechazados/pendientes
)

// ItemStatus estado de aprobación de una línea del pedido.
type ItemStatus string

const (
	ItemStatusPending  ItemStatus = "pending"
	ItemStatusApproved ItemStatus = "approved"
	ItemStatusRejected ItemStatus = "rejected"
)

// OrderItem una línea del pedido, aprobable de forma independiente.
type OrderItem struct {
	ID             string
	ProductID      string
	ProductName    string
	Supplier       string
	UnitCost       decimal.Decimal
	Quantity       int
	TotalValue     decimal.Decimal // UnitCost * Quantity
	Status         ItemStatus
	ApprovedBy     string
	ApprovedByName string
}

// Order pedido de compra con una o más líneas.
type Order struct {
	ID            string
	OrderNumber   string // único, digitado por el usuario
	Date          time.Time
	Items         []OrderItem
	TotalValue    decimal.Decimal
	CreatedBy     string
	CreatedByName string
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Item devuelve la línea con el ID indicado o nil.
func (o *Order) Item(id string) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ID == id {
			return &o.Items[i]
		}
	}
	return nil
}

// Clone copia profunda; los repositorios nunca comparten slices con el caller.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = append([]OrderItem(nil), o.Items...)
	return &c
}
