package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/purchasing"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/infrastructure/memory"
)

var (
	admin = entity.Actor{ID: "u-admin", Name: "Ana Admin", Role: entity.RoleAdmin}
	clerk = entity.Actor{ID: "u-user", Name: "Beto Compras", Role: entity.RoleUser}
)

type fixture struct {
	store   *memory.Store
	orders  *purchasing.OrderUseCase
	entries *purchasing.EntryUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	return &fixture{
		store:   store,
		orders:  purchasing.NewOrderUseCase(store, repos, nil, zerolog.Nop()),
		entries: purchasing.NewEntryUseCase(store, repos, nil, zerolog.Nop()),
	}
}

func (f *fixture) product(t *testing.T, id, name, cost string) {
	t.Helper()
	require.NoError(t, f.store.Repos().Products.Create(context.Background(), &entity.Product{
		ID: id, Name: name, Supplier: "Proveedor " + name, UnitCost: decimal.RequireFromString(cost), UnitType: "caja",
	}))
}

func day(y int, m time.Month, d int) dto.Date {
	return dto.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func (f *fixture) order(t *testing.T, number string, items ...dto.OrderItemRequest) *dto.OrderResponse {
	t.Helper()
	o, err := f.orders.Create(context.Background(), clerk, dto.CreateOrderRequest{
		OrderNumber: number, Date: day(2025, time.March, 1), Items: items,
	})
	require.NoError(t, err)
	return o
}

func line(productID string, qty int) dto.OrderItemRequest {
	return dto.OrderItemRequest{ProductID: productID, Quantity: qty}
}

func entryRequest(orderID string, lines ...dto.StockEntryInvoiceItemRequest) dto.CreateStockEntryRequest {
	return dto.CreateStockEntryRequest{
		OrderID:       orderID,
		Date:          day(2025, time.March, 10),
		PaymentMethod: string(entity.PaymentMethodBoleto),
		Installments:  1,
		FirstDueDate:  day(2025, time.April, 10),
		Invoices:      []dto.StockEntryInvoiceRequest{{InvoiceNumber: "NF-1", Items: lines}},
	}
}

func received(orderItemID string, qty int, cost string) dto.StockEntryInvoiceItemRequest {
	return dto.StockEntryInvoiceItemRequest{OrderItemID: orderItemID, Quantity: qty, AdjustedUnitCost: decimal.RequireFromString(cost)}
}
