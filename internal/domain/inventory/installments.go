package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// ComputeInstallments divide totalValue en count cuotas.
// base = floor(total/count, 2 decimales); las cuotas 1..n-1 llevan base y la última absorbe el
// residuo (total - base*(n-1)), así la suma reproduce el total exacto.
// La cuota i vence firstDueDate + (i-1) meses (ver AddMonthsClamped).
func ComputeInstallments(
	entryID string,
	totalValue decimal.Decimal,
	count int,
	firstDueDate time.Time,
	newID IDGenerator,
) ([]*entity.PaymentInstallment, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: número de cuotas debe ser >= 1", domain.ErrValidation)
	}
	if totalValue.IsNegative() {
		return nil, fmt.Errorf("%w: total negativo", domain.ErrValidation)
	}
	n := decimal.NewFromInt(int64(count))
	base := totalValue.Div(n).RoundFloor(2)
	last := totalValue.Sub(base.Mul(decimal.NewFromInt(int64(count - 1))))

	out := make([]*entity.PaymentInstallment, 0, count)
	for i := 1; i <= count; i++ {
		value := base
		if i == count {
			value = last
		}
		out = append(out, &entity.PaymentInstallment{
			ID:                newID(),
			StockEntryID:      entryID,
			InstallmentNumber: i,
			Value:             value,
			DueDate:           AddMonthsClamped(firstDueDate, i-1),
		})
	}
	return out, nil
}

// AddMonthsClamped suma meses de calendario conservando el día del mes; si el día no existe en
// el mes destino se usa el último día de ese mes (31/01 + 1 mes = 28/02 o 29/02).
// A diferencia de time.AddDate, nunca se desborda al mes siguiente.
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	hh, mm, ss := t.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}
