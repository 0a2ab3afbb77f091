package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "R$ 0,00",
		"110":        "R$ 110,00",
		"1234.5":     "R$ 1.234,50",
		"1000000.01": "R$ 1.000.000,01",
		"-0.3":       "-R$ 0,30",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestRenderStockReport(t *testing.T) {
	report := &dto.StockReportDTO{
		Rows: []dto.StockReportRowDTO{{
			ProductID: "P1", ProductName: "Papel A4", Supplier: "Papelera", Quantity: 7,
			AverageUnitCost: decimal.RequireFromString("110"), TotalValue: decimal.RequireFromString("770"),
			LastEntryDate: dto.NewDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)), InCatalog: true,
		}},
		TotalQuantity: 7,
		GrandTotal:    decimal.RequireFromString("770"),
		GeneratedAt:   time.Now(),
	}

	out, err := NewStockReportGenerator("Compras Ltda").RenderStockReport(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty, err := NewStockReportGenerator("").RenderStockReport(context.Background(), &dto.StockReportDTO{GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, empty)

	_, err = NewStockReportGenerator("").RenderStockReport(context.Background(), nil)
	assert.Error(t, err)
}
