package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
// MonthlyEntries y MonthlyExits suman todo el histórico (no hay filtro por mes).
type DashboardStatsDTO struct {
	TotalProducts   int             `json:"total_products"`
	PendingOrders   int             `json:"pending_orders"` // pendientes o parciales
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	StockItemsCount int             `json:"stock_items_count"`
	MonthlyEntries  decimal.Decimal `json:"monthly_entries"`
	MonthlyExits    decimal.Decimal `json:"monthly_exits"`
}

// StockReportRowDTO fila del reporte de stock por producto.
type StockReportRowDTO struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Supplier        string          `json:"supplier"`
	UnitType        string          `json:"unit_type"`
	Quantity        int             `json:"quantity"`
	CatalogUnitCost decimal.Decimal `json:"catalog_unit_cost"`
	AverageUnitCost decimal.Decimal `json:"average_unit_cost"`
	TotalValue      decimal.Decimal `json:"total_value"`
	LastEntryDate   Date            `json:"last_entry_date"`
	InCatalog       bool            `json:"in_catalog"`
}

// StockReportDTO respuesta de GET /api/reports/stock.
type StockReportDTO struct {
	Rows          []StockReportRowDTO `json:"rows"`
	TotalQuantity int                 `json:"total_quantity"`
	GrandTotal    decimal.Decimal     `json:"grand_total"`
	GeneratedAt   time.Time           `json:"generated_at"`
}
