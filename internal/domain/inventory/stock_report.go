package inventory

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// StockReportRow stock disponible de un producto.
type StockReportRow struct {
	ProductID       string
	ProductName     string
	Supplier        string
	UnitType        string
	Quantity        int
	CatalogUnitCost decimal.Decimal // costo vigente en el catálogo (informativo)
	AverageUnitCost decimal.Decimal // promedio ponderado de las unidades disponibles
	TotalValue      decimal.Decimal // suma de los costos de las unidades disponibles
	LastEntryDate   time.Time
	InCatalog       bool // false si el producto fue eliminado del catálogo
}

// StockReport filas ordenadas por nombre de producto más el total general.
type StockReport struct {
	Rows          []StockReportRow
	TotalQuantity int
	GrandTotal    decimal.Decimal
}

// BuildStockReport agrupa las unidades disponibles por producto y las cruza con el catálogo.
// Las unidades de productos eliminados conservan los datos de la copia guardada en la unidad.
// El valor siempre sale de los costos de las unidades, nunca del catálogo actual.
func BuildStockReport(items []*entity.StockItem, products []*entity.Product) StockReport {
	catalog := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}
	rows := make(map[string]*StockReportRow)
	for _, it := range items {
		if !it.IsAvailable() {
			continue
		}
		row, ok := rows[it.ProductID]
		if !ok {
			row = &StockReportRow{
				ProductID:       it.ProductID,
				ProductName:     it.ProductName,
				Supplier:        it.Supplier,
				CatalogUnitCost: decimal.Zero,
				AverageUnitCost: decimal.Zero,
				TotalValue:      decimal.Zero,
			}
			if p, found := catalog[it.ProductID]; found {
				row.ProductName = p.Name
				row.Supplier = p.Supplier
				row.UnitType = p.UnitType
				row.CatalogUnitCost = p.UnitCost
				row.InCatalog = true
			}
			rows[it.ProductID] = row
		}
		row.AverageUnitCost = CostCalculator(decimal.NewFromInt(int64(row.Quantity)), row.AverageUnitCost, decimal.NewFromInt(1), it.UnitCost)
		row.Quantity++
		row.TotalValue = row.TotalValue.Add(it.UnitCost)
		if it.EntryDate.After(row.LastEntryDate) {
			row.LastEntryDate = it.EntryDate
		}
	}

	report := StockReport{Rows: make([]StockReportRow, 0, len(rows)), GrandTotal: decimal.Zero}
	for _, row := range rows {
		row.AverageUnitCost = row.AverageUnitCost.Round(2)
		report.Rows = append(report.Rows, *row)
		report.TotalQuantity += row.Quantity
		report.GrandTotal = report.GrandTotal.Add(row.TotalValue)
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		a, b := strings.ToLower(report.Rows[i].ProductName), strings.ToLower(report.Rows[j].ProductName)
		if a != b {
			return a < b
		}
		return report.Rows[i].ProductID < report.Rows[j].ProductID
	})
	return report
}
