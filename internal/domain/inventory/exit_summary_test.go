package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/inventory"
)

func unit(id, productID, cost string, status entity.StockItemStatus, entry time.Time) *entity.StockItem {
	return &entity.StockItem{
		ID: id, ProductID: productID, ProductName: "Producto " + productID, Supplier: "Proveedor",
		UnitCost: decimal.RequireFromString(cost), Status: status, EntryDate: entry,
	}
}

func TestSummarizeExit_AgrupaPorProducto(t *testing.T) {
	d := date(2025, 1, 1)
	groups, total := inventory.SummarizeExit([]*entity.StockItem{
		unit("a", "p1", "100", entity.StockItemAvailable, d),
		unit("b", "p2", "10", entity.StockItemAvailable, d),
		unit("c", "p1", "110", entity.StockItemAvailable, d),
		unit("d", "p1", "110", entity.StockItemAvailable, d),
	})
	require.Len(t, groups, 2)
	assert.Equal(t, "p1", groups[0].ProductID)
	assert.Equal(t, 3, groups[0].Quantity)
	assert.True(t, decimal.NewFromInt(320).Equal(groups[0].TotalCost))
	assert.True(t, decimal.RequireFromString("106.67").Equal(groups[0].UnitCost))
	assert.Equal(t, 1, groups[1].Quantity)
	assert.True(t, decimal.NewFromInt(330).Equal(total))
}

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	got := inventory.CostCalculator(decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.NewFromInt(110))
	assert.True(t, decimal.NewFromInt(105).Equal(got))
	assert.True(t, decimal.Zero.Equal(inventory.CostCalculator(decimal.Zero, decimal.Zero, decimal.Zero, decimal.NewFromInt(5))))
}
