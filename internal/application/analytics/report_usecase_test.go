package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/analytics"
	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/inventory"
	"github.com/jhoicas/Compras-api/internal/application/purchasing"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/infrastructure/memory"
)

var admin = entity.Actor{ID: "u-admin", Name: "Ana Admin", Role: entity.RoleAdmin}

func day(y int, m time.Month, d int) dto.Date {
	return dto.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// mapCache guarda JSON en memoria y cuenta los cálculos.
type mapCache struct {
	data  map[string][]byte
	loads int
	fail  bool
}

func (c *mapCache) BuildKey(_ context.Context, parts ...string) (string, error) {
	if c.fail {
		return "", errors.New("redis caído")
	}
	key := ""
	for _, p := range parts {
		key += p + ":"
	}
	return key, nil
}

func (c *mapCache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if raw, ok := c.data[key]; ok {
		return json.Unmarshal(raw, dest)
	}
	c.loads++
	v, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return json.Unmarshal(raw, dest)
}

type fakeRenderer struct{ rows int }

func (r *fakeRenderer) RenderStockReport(_ context.Context, report *dto.StockReportDTO) ([]byte, error) {
	r.rows = len(report.Rows)
	return []byte("%PDF-1.4"), nil
}

func TestFlujoCompleto_PedidoEntradaSalida(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	log := zerolog.Nop()

	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: "P1", Name: "Papel A4", Supplier: "Papelera", UnitCost: dec("100"), UnitType: "caja",
	}))

	orders := purchasing.NewOrderUseCase(store, repos, nil, log)
	entries := purchasing.NewEntryUseCase(store, repos, nil, log)
	exits := inventory.NewExitUseCase(store, repos, nil, log)
	reports := analytics.NewReportUseCase(repos, nil, nil, log)

	order, err := orders.Create(ctx, admin, dto.CreateOrderRequest{
		OrderNumber: "PC-001", Date: day(2025, time.March, 1),
		Items: []dto.OrderItemRequest{{ProductID: "P1", Quantity: 10}},
	})
	require.NoError(t, err)
	order, err = orders.Approve(ctx, admin, order.ID)
	require.NoError(t, err)
	require.Equal(t, string(entity.OrderStatusApproved), order.Status)

	stats, err := reports.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 0, stats.PendingOrders)

	created, err := entries.Create(ctx, admin, dto.CreateStockEntryRequest{
		OrderID: order.ID, Date: day(2025, time.March, 10), PaymentMethod: "pix",
		Installments: 1, FirstDueDate: day(2025, time.April, 10),
		Invoices: []dto.StockEntryInvoiceRequest{{
			InvoiceNumber: "NF-100",
			Items:         []dto.StockEntryInvoiceItemRequest{{OrderItemID: order.Items[0].ID, Quantity: 10, AdjustedUnitCost: dec("110")}},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, created.StockItems)
	assert.True(t, dec("1100").Equal(created.Entry.TotalValue))
	require.Len(t, created.Installments, 1)
	assert.True(t, dec("1100").Equal(created.Installments[0].Value))

	stats, err = reports.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.StockItemsCount)
	assert.True(t, dec("1100").Equal(stats.TotalStockValue))
	assert.True(t, dec("1100").Equal(stats.MonthlyEntries))

	units, err := exits.StockItems(ctx, dto.StockItemFilter{Status: string(entity.StockItemAvailable)})
	require.NoError(t, err)
	require.Len(t, units, 10)
	_, err = exits.Create(ctx, admin, dto.CreateStockExitRequest{
		StockItemIDs: []string{units[0].ID, units[1].ID, units[2].ID},
		ExitDate:     day(2025, time.March, 20),
	})
	require.NoError(t, err)

	stats, err = reports.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.StockItemsCount)
	assert.True(t, dec("770").Equal(stats.TotalStockValue))
	assert.True(t, dec("330").Equal(stats.MonthlyExits))

	report, err := reports.StockReport(ctx)
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	row := report.Rows[0]
	assert.Equal(t, "Papel A4", row.ProductName)
	assert.Equal(t, 7, row.Quantity)
	assert.True(t, dec("110").Equal(row.AverageUnitCost))
	assert.True(t, dec("770").Equal(row.TotalValue))
	assert.True(t, dec("100").Equal(row.CatalogUnitCost))
	assert.Equal(t, 7, report.TotalQuantity)
}

func TestDashboardStats_PedidosPendientesYParciales(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	for _, o := range []*entity.Order{
		{ID: "o1", OrderNumber: "1", Status: entity.OrderStatusPending},
		{ID: "o2", OrderNumber: "2", Status: entity.OrderStatusPartial},
		{ID: "o3", OrderNumber: "3", Status: entity.OrderStatusApproved},
		{ID: "o4", OrderNumber: "4", Status: entity.OrderStatusRejected},
	} {
		require.NoError(t, repos.Orders.Create(ctx, o))
	}

	stats, err := analytics.NewReportUseCase(repos, nil, nil, zerolog.Nop()).DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.PendingOrders)
	assert.True(t, stats.TotalStockValue.IsZero())
}

func TestDashboardStats_UsaCache(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	cache := &mapCache{data: map[string][]byte{}}
	uc := analytics.NewReportUseCase(repos, cache, nil, zerolog.Nop())

	first, err := uc.DashboardStats(ctx)
	require.NoError(t, err)
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "P1", Name: "Tóner", Supplier: "X", UnitCost: dec("1"), UnitType: "un"}))
	second, err := uc.DashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.loads)
	assert.Equal(t, first.TotalProducts, second.TotalProducts)
}

func TestDashboardStats_CacheCaidaCalculaDirecto(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "P1", Name: "Tóner", Supplier: "X", UnitCost: dec("1"), UnitType: "un"}))
	uc := analytics.NewReportUseCase(repos, &mapCache{fail: true}, nil, zerolog.Nop())

	stats, err := uc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalProducts)
}

func TestStockReportPDF(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	require.NoError(t, repos.StockItems.CreateBatch(ctx, []*entity.StockItem{
		{ID: "s1", ProductID: "gone", ProductName: "Producto borrado", Supplier: "Y", UnitCost: dec("5"), Status: entity.StockItemAvailable},
	}))

	_, _, err := analytics.NewReportUseCase(repos, nil, nil, zerolog.Nop()).StockReportPDF(ctx)
	require.Error(t, err)

	renderer := &fakeRenderer{}
	pdf, name, err := analytics.NewReportUseCase(repos, nil, renderer, zerolog.Nop()).StockReportPDF(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Contains(t, name, ".pdf")
	assert.Equal(t, 1, renderer.rows)
}
