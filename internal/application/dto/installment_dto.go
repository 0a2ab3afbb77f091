package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentFilter filtros de GET /api/installments. Paid vacío = todas.
type InstallmentFilter struct {
	StockEntryID string `query:"stockEntryId"`
	Paid         string `query:"paid" validate:"omitempty,oneof=true false"`
}

// PayInstallmentRequest entrada de PUT /api/installments/:id/pay; sin fecha se usa hoy.
type PayInstallmentRequest struct {
	PaidAt *time.Time `json:"paid_at"`
}

// InstallmentResponse salida de una cuota.
type InstallmentResponse struct {
	ID                string          `json:"id"`
	StockEntryID      string          `json:"stock_entry_id"`
	InstallmentNumber int             `json:"installment_number"`
	Value             decimal.Decimal `json:"value"`
	DueDate           Date            `json:"due_date"`
	Paid              bool            `json:"paid"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
}
