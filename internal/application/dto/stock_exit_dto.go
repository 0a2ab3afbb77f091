package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockExitRequest entrada para registrar una salida de unidades concretas.
type CreateStockExitRequest struct {
	StockItemIDs []string `json:"stock_item_ids" validate:"required,min=1,dive,required"`
	ExitDate     Date     `json:"exit_date"`
	Observation  string   `json:"observation" validate:"max=1000"`
}

// UpdateStockExitRequest solo metadatos; las unidades consumidas no se editan.
type UpdateStockExitRequest struct {
	ExitDate    *Date   `json:"exit_date"`
	Observation *string `json:"observation" validate:"omitempty,max=1000"`
}

// StockExitItemResponse resumen por producto de la salida.
type StockExitItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Supplier    string          `json:"supplier"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

// StockExitResponse salida de una salida de inventario.
type StockExitResponse struct {
	ID              string                  `json:"id"`
	StockItemIDs    []string                `json:"stock_item_ids"`
	Items           []StockExitItemResponse `json:"items"`
	TotalCost       decimal.Decimal         `json:"total_cost"`
	ExitDate        Date                    `json:"exit_date"`
	Observation     string                  `json:"observation"`
	CreatedBy       string                  `json:"created_by"`
	CreatedByName   string                  `json:"created_by_name"`
	Confirmed       bool                    `json:"confirmed"`
	ConfirmedBy     string                  `json:"confirmed_by,omitempty"`
	ConfirmedByName string                  `json:"confirmed_by_name,omitempty"`
	ConfirmedAt     *time.Time              `json:"confirmed_at,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
}

// StockItemFilter filtros de GET /api/stock-items.
type StockItemFilter struct {
	Status    string `query:"status" validate:"omitempty,oneof=available exited"`
	ProductID string `query:"productId"`
	Search    string `query:"search" validate:"max=100"`
}

// StockItemResponse salida de una unidad física.
type StockItemResponse struct {
	ID            string          `json:"id"`
	StockEntryID  string          `json:"stock_entry_id"`
	InvoiceNumber string          `json:"invoice_number"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Supplier      string          `json:"supplier"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	EntryDate     Date            `json:"entry_date"`
	ExitDate      *Date           `json:"exit_date,omitempty"`
	Status        string          `json:"status"`
	ExitID        string          `json:"exit_id,omitempty"`
}
