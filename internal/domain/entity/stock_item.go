package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItemStatus disponibilidad de una unidad física.
type StockItemStatus string

const (
	StockItemAvailable StockItemStatus = "available"
	StockItemExited    StockItemStatus = "exited"
)

// StockItem una unidad física recibida (vista explotada). Nunca se divide, fusiona ni re-costea.
type StockItem struct {
	ID            string
	StockEntryID  string
	InvoiceNumber string
	ProductID     string
	ProductName   string
	Supplier      string
	UnitCost      decimal.Decimal
	EntryDate     time.Time
	ExitDate      *time.Time
	Status        StockItemStatus
	ExitID        string
}

// IsAvailable indica si la unidad puede consumirse en una salida.
func (s *StockItem) IsAvailable() bool {
	return s.Status == StockItemAvailable
}

// Clone copia la unidad (incluida la fecha de salida).
func (s *StockItem) Clone() *StockItem {
	if s == nil {
		return nil
	}
	c := *s
	if s.ExitDate != nil {
		d := *s.ExitDate
		c.ExitDate = &d
	}
	return &c
}
