package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod forma de pago de una entrada.
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodBoleto     PaymentMethod = "boleto"
	PaymentMethodPix        PaymentMethod = "pix"
)

// IsValid indica si la forma de pago es conocida.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodBoleto, PaymentMethodPix:
		return true
	}
	return false
}

// StockEntryInvoiceItem línea recibida dentro de una nota fiscal.
// OriginalUnitCost es el costo del pedido; AdjustedUnitCost el costo efectivo en la recepción.
type StockEntryInvoiceItem struct {
	ID               string
	OrderItemID      string
	ProductID        string
	ProductName      string
	Supplier         string
	Quantity         int
	OriginalUnitCost decimal.Decimal
	AdjustedUnitCost decimal.Decimal
	TotalValue       decimal.Decimal // Quantity * AdjustedUnitCost
}

// StockEntryInvoice agrupa las líneas de un mismo número de nota fiscal (texto libre, no único).
type StockEntryInvoice struct {
	ID            string
	InvoiceNumber string
	Items         []StockEntryInvoiceItem
	TotalValue    decimal.Decimal
}

// StockEntry recepción de mercancía contra un pedido aprobado.
type StockEntry struct {
	ID            string
	Date          time.Time
	OrderID       string
	OrderNumber   string
	Invoices      []StockEntryInvoice
	TotalQuantity int
	TotalValue    decimal.Decimal
	PaymentMethod PaymentMethod
	Installments  int
	FirstDueDate  time.Time
	CreatedBy     string
	CreatedByName string
	CreatedAt     time.Time
}

// Clone copia profunda de la entrada con sus notas.
func (e *StockEntry) Clone() *StockEntry {
	if e == nil {
		return nil
	}
	c := *e
	c.Invoices = make([]StockEntryInvoice, len(e.Invoices))
	for i, inv := range e.Invoices {
		inv.Items = append([]StockEntryInvoiceItem(nil), inv.Items...)
		c.Invoices[i] = inv
	}
	return &c
}
