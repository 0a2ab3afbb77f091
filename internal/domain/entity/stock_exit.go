package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockExitItem resumen por producto de las unidades consumidas en una salida.
type StockExitItem struct {
	ProductID   string
	ProductName string
	Supplier    string
	Quantity    int
	UnitCost    decimal.Decimal // costo promedio ponderado de las unidades del grupo
	TotalCost   decimal.Decimal // suma exacta de los costos unitarios del grupo
}

// StockExit salida de inventario que consume unidades específicas.
type StockExit struct {
	ID              string
	StockItemIDs    []string
	Items           []StockExitItem
	TotalCost       decimal.Decimal
	ExitDate        time.Time
	Observation     string
	CreatedBy       string
	CreatedByName   string
	ConfirmedBy     string
	ConfirmedByName string
	ConfirmedAt     *time.Time
	CreatedAt       time.Time
}

// IsConfirmed indica si un administrador ya confirmó la salida.
func (e *StockExit) IsConfirmed() bool {
	return e.ConfirmedAt != nil
}

// Clone copia profunda de la salida.
func (e *StockExit) Clone() *StockExit {
	if e == nil {
		return nil
	}
	c := *e
	c.StockItemIDs = append([]string(nil), e.StockItemIDs...)
	c.Items = append([]StockExitItem(nil), e.Items...)
	if e.ConfirmedAt != nil {
		t := *e.ConfirmedAt
		c.ConfirmedAt = &t
	}
	return &c
}
