package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de compras.
// Pedidos, entradas y salidas guardan copia de Name/Supplier/UnitCost al momento de referenciarlo,
// por lo que editar o borrar el producto no altera registros históricos.
type Product struct {
	ID        string
	Name      string
	Supplier  string
	UnitCost  decimal.Decimal // costo unitario vigente (>= 0)
	UnitType  string          // caja, unidad, pluma, paquete...
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MoneyScale decimales admitidos en importes (columnas NUMERIC(14, 2)).
const MoneyScale = 2

// ValidMoney indica si d no es negativo y no tiene más de MoneyScale decimales.
func ValidMoney(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Equal(d.Truncate(MoneyScale))
}
