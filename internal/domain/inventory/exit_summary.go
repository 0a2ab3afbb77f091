package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// SummarizeExit agrupa por producto las unidades consumidas, en orden de primera aparición.
// TotalCost es la suma exacta de los costos unitarios del grupo; UnitCost su promedio ponderado.
func SummarizeExit(items []*entity.StockItem) ([]entity.StockExitItem, decimal.Decimal) {
	index := make(map[string]int)
	groups := make([]entity.StockExitItem, 0)
	total := decimal.Zero
	for _, it := range items {
		i, ok := index[it.ProductID]
		if !ok {
			i = len(groups)
			index[it.ProductID] = i
			groups = append(groups, entity.StockExitItem{
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Supplier:    it.Supplier,
				UnitCost:    decimal.Zero,
				TotalCost:   decimal.Zero,
			})
		}
		g := &groups[i]
		g.UnitCost = CostCalculator(decimal.NewFromInt(int64(g.Quantity)), g.UnitCost, decimal.NewFromInt(1), it.UnitCost)
		g.Quantity++
		g.TotalCost = g.TotalCost.Add(it.UnitCost)
		total = total.Add(it.UnitCost)
	}
	for i := range groups {
		groups[i].UnitCost = groups[i].UnitCost.Round(2)
	}
	return groups, total
}
