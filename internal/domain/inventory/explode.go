package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// IDGenerator produce identificadores nuevos (uuid en producción, secuencial en tests).
type IDGenerator func() string

// RecalculateEntry recalcula totales de línea, de nota fiscal y de la entrada.
func RecalculateEntry(e *entity.StockEntry) {
	total := decimal.Zero
	qty := 0
	for i := range e.Invoices {
		inv := &e.Invoices[i]
		invTotal := decimal.Zero
		for j := range inv.Items {
			it := &inv.Items[j]
			it.TotalValue = LineTotal(it.AdjustedUnitCost, it.Quantity)
			invTotal = invTotal.Add(it.TotalValue)
			qty += it.Quantity
		}
		inv.TotalValue = invTotal
		total = total.Add(invTotal)
	}
	e.TotalValue = total
	e.TotalQuantity = qty
}

// Explode genera exactamente Quantity unidades por línea de nota, cada una con el costo ajustado
// de la línea, estado available y fecha de entrada de la entrada. El caller garantiza una sola
// invocación por entrada.
func Explode(e *entity.StockEntry, newID IDGenerator) []*entity.StockItem {
	items := make([]*entity.StockItem, 0, e.TotalQuantity)
	for _, inv := range e.Invoices {
		for _, line := range inv.Items {
			for n := 0; n < line.Quantity; n++ {
				items = append(items, &entity.StockItem{
					ID:            newID(),
					StockEntryID:  e.ID,
					InvoiceNumber: inv.InvoiceNumber,
					ProductID:     line.ProductID,
					ProductName:   line.ProductName,
					Supplier:      line.Supplier,
					UnitCost:      line.AdjustedUnitCost,
					EntryDate:     e.Date,
					Status:        entity.StockItemAvailable,
				})
			}
		}
	}
	return items
}
