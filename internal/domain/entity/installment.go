package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentInstallment cuota de pago derivada del total de una entrada.
type PaymentInstallment struct {
	ID                string
	StockEntryID      string
	InstallmentNumber int // 1-based
	Value             decimal.Decimal
	DueDate           time.Time
	PaidAt            *time.Time
}

// IsPaid indica si la cuota ya fue pagada.
func (p *PaymentInstallment) IsPaid() bool {
	return p.PaidAt != nil
}

// Clone copia la cuota.
func (p *PaymentInstallment) Clone() *PaymentInstallment {
	if p == nil {
		return nil
	}
	c := *p
	if p.PaidAt != nil {
		t := *p.PaidAt
		c.PaidAt = &t
	}
	return &c
}

// MaxInstallments tope de cuotas por entrada.
const MaxInstallments = 120
