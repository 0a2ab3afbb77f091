package inventory

import "github.com/jhoicas/Compras-api/internal/domain/entity"

// ReceivedByOrderItem suma las cantidades ya recibidas por línea de pedido en todas las entradas y notas.
func ReceivedByOrderItem(entries []*entity.StockEntry) map[string]int {
	received := make(map[string]int)
	for _, e := range entries {
		for _, inv := range e.Invoices {
			for _, it := range inv.Items {
				received[it.OrderItemID] += it.Quantity
			}
		}
	}
	return received
}

// Remaining cantidad pendiente por recibir de una línea; puede ser cero, nunca negativa
// mientras se respete el tope de recepción.
func Remaining(item entity.OrderItem, received map[string]int) int {
	return item.Quantity - received[item.ID]
}
