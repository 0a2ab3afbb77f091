// Package inventory contiene las reglas puras del ciclo pedido → stock:
// estado derivado de pedidos, explosión de entradas en unidades, cálculo de cuotas
// y agrupaciones de salidas y reportes. No accede a repositorios.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// DeriveOrderStatus calcula el estado del pedido desde el multiconjunto de estados de sus ítems.
// Todos aprobados → approved; todos rechazados → rejected; todos pendientes → pending; resto → partial.
func DeriveOrderStatus(items []entity.OrderItem) entity.OrderStatus {
	var pending, approved, rejected int
	for _, it := range items {
		switch it.Status {
		case entity.ItemStatusApproved:
			approved++
		case entity.ItemStatusRejected:
			rejected++
		default:
			pending++
		}
	}
	n := len(items)
	switch {
	case n == 0 || pending == n:
		return entity.OrderStatusPending
	case approved == n:
		return entity.OrderStatusApproved
	case rejected == n:
		return entity.OrderStatusRejected
	default:
		return entity.OrderStatusPartial
	}
}

// LineTotal costo unitario por cantidad.
func LineTotal(unitCost decimal.Decimal, quantity int) decimal.Decimal {
	return unitCost.Mul(decimal.NewFromInt(int64(quantity)))
}

// RecalculateOrder recalcula totales de línea, total del pedido y estado. Llamar tras cada mutación.
func RecalculateOrder(o *entity.Order) {
	total := decimal.Zero
	for i := range o.Items {
		o.Items[i].TotalValue = LineTotal(o.Items[i].UnitCost, o.Items[i].Quantity)
		total = total.Add(o.Items[i].TotalValue)
	}
	o.TotalValue = total
	o.Status = DeriveOrderStatus(o.Items)
}

// HasApprovedItem indica si el pedido tiene al menos una línea aprobada (requisito para recibir).
func HasApprovedItem(o *entity.Order) bool {
	for _, it := range o.Items {
		if it.Status == entity.ItemStatusApproved {
			return true
		}
	}
	return false
}
