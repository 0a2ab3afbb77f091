package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntryInvoiceItemRequest línea recibida contra una línea de pedido.
type StockEntryInvoiceItemRequest struct {
	OrderItemID      string          `json:"order_item_id" validate:"required"`
	Quantity         int             `json:"quantity" validate:"min=1"`
	AdjustedUnitCost decimal.Decimal `json:"adjusted_unit_cost"`
}

// StockEntryInvoiceRequest nota fiscal con sus líneas.
type StockEntryInvoiceRequest struct {
	InvoiceNumber string                         `json:"invoice_number" validate:"max=100"`
	Items         []StockEntryInvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateStockEntryRequest entrada para registrar una recepción.
type CreateStockEntryRequest struct {
	OrderID       string                     `json:"order_id" validate:"required"`
	Date          Date                       `json:"date"`
	PaymentMethod string                     `json:"payment_method" validate:"required,oneof=credit_card boleto pix"`
	Installments  int                        `json:"installments" validate:"min=1,max=120"`
	FirstDueDate  Date                       `json:"first_due_date"`
	Invoices      []StockEntryInvoiceRequest `json:"invoices" validate:"required,min=1,dive"`
}

// StockEntryInvoiceItemResponse salida de una línea de nota.
type StockEntryInvoiceItemResponse struct {
	ID               string          `json:"id"`
	OrderItemID      string          `json:"order_item_id"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Supplier         string          `json:"supplier"`
	Quantity         int             `json:"quantity"`
	OriginalUnitCost decimal.Decimal `json:"original_unit_cost"`
	AdjustedUnitCost decimal.Decimal `json:"adjusted_unit_cost"`
	TotalValue       decimal.Decimal `json:"total_value"`
}

// StockEntryInvoiceResponse salida de una nota.
type StockEntryInvoiceResponse struct {
	ID            string                          `json:"id"`
	InvoiceNumber string                          `json:"invoice_number"`
	Items         []StockEntryInvoiceItemResponse `json:"items"`
	TotalValue    decimal.Decimal                 `json:"total_value"`
}

// StockEntryResponse salida de una entrada.
type StockEntryResponse struct {
	ID            string                      `json:"id"`
	Date          Date                        `json:"date"`
	OrderID       string                      `json:"order_id"`
	OrderNumber   string                      `json:"order_number"`
	Invoices      []StockEntryInvoiceResponse `json:"invoices"`
	TotalQuantity int                         `json:"total_quantity"`
	TotalValue    decimal.Decimal             `json:"total_value"`
	PaymentMethod string                      `json:"payment_method"`
	Installments  int                         `json:"installments"`
	FirstDueDate  Date                        `json:"first_due_date"`
	CreatedBy     string                      `json:"created_by"`
	CreatedByName string                      `json:"created_by_name"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// StockEntryCreatedResponse salida de POST /api/stock-entries: la entrada con sus cuotas
// y el número de unidades generadas.
type StockEntryCreatedResponse struct {
	Entry        StockEntryResponse    `json:"entry"`
	Installments []InstallmentResponse `json:"installments"`
	StockItems   int                   `json:"stock_items"`
}
