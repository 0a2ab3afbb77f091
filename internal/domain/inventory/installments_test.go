package inventory_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/inventory"
)

func seqIDs(prefix string) inventory.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeInstallments_ResiduoEnLaUltima(t *testing.T) {
	first := date(2024, time.December, 11)
	out, err := inventory.ComputeInstallments("entry-1", decimal.NewFromInt(1000), 3, first, seqIDs("inst"))
	require.NoError(t, err)
	require.Len(t, out, 3)

	want := []string{"333.33", "333.33", "333.34"}
	sum := decimal.Zero
	for i, inst := range out {
		assert.Equal(t, i+1, inst.InstallmentNumber)
		assert.Equal(t, "entry-1", inst.StockEntryID)
		assert.True(t, decimal.RequireFromString(want[i]).Equal(inst.Value), "cuota %d: %s", i+1, inst.Value)
		assert.Nil(t, inst.PaidAt)
		sum = sum.Add(inst.Value)
	}
	assert.True(t, decimal.NewFromInt(1000).Equal(sum), "la suma debe reproducir el total exacto")

	assert.Equal(t, date(2024, time.December, 11), out[0].DueDate)
	assert.Equal(t, date(2025, time.January, 11), out[1].DueDate)
	assert.Equal(t, date(2025, time.February, 11), out[2].DueDate)
}

func TestComputeInstallments_Casos(t *testing.T) {
	tests := []struct {
		total string
		count int
		want  []string
	}{
		{"1100", 1, []string{"1100"}},
		{"125000", 3, []string{"41666.66", "41666.66", "41666.68"}},
		{"0.05", 2, []string{"0.02", "0.03"}},
		{"0", 4, []string{"0", "0", "0", "0"}},
		{"100.10", 12, []string{"8.34", "8.34", "8.34", "8.34", "8.34", "8.34", "8.34", "8.34", "8.34", "8.34", "8.34", "8.36"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.total, tt.count), func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			out, err := inventory.ComputeInstallments("e", total, tt.count, date(2025, 1, 10), seqIDs("i"))
			require.NoError(t, err)
			require.Len(t, out, tt.count)
			sum := decimal.Zero
			for i, inst := range out {
				assert.True(t, decimal.RequireFromString(tt.want[i]).Equal(inst.Value), "cuota %d: %s", i+1, inst.Value)
				sum = sum.Add(inst.Value)
			}
			assert.True(t, total.Equal(sum))
		})
	}
}

func TestComputeInstallments_CantidadInvalida(t *testing.T) {
	_, err := inventory.ComputeInstallments("e", decimal.NewFromInt(10), 0, date(2025, 1, 1), seqIDs("i"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddMonthsClamped_FinDeMes(t *testing.T) {
	start := date(2024, time.January, 31)
	assert.Equal(t, date(2024, time.January, 31), inventory.AddMonthsClamped(start, 0))
	assert.Equal(t, date(2024, time.February, 29), inventory.AddMonthsClamped(start, 1), "año bisiesto")
	assert.Equal(t, date(2024, time.March, 31), inventory.AddMonthsClamped(start, 2))
	assert.Equal(t, date(2024, time.April, 30), inventory.AddMonthsClamped(start, 3))
	assert.Equal(t, date(2025, time.February, 28), inventory.AddMonthsClamped(start, 13))
}
