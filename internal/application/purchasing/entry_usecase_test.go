package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

func TestEntryCreate_ExplotaYCalculaCuotas(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.product(t, "p1", "Ozempic", "100")
	o := f.order(t, "PED-1", line("p1", 10))
	_, err := f.orders.Approve(ctx, admin, o.ID)
	require.NoError(t, err)

	req := entryRequest(o.ID, received(o.Items[0].ID, 10, "110"))
	req.Installments = 3
	created, err := f.entries.Create(ctx, clerk, req)
	require.NoError(t, err)

	e := created.Entry
	assert.Equal(t, 10, e.TotalQuantity)
	assert.True(t, decimal.NewFromInt(1100).Equal(e.TotalValue))
	assert.Equal(t, "PED-1", e.OrderNumber)
	require.Len(t, e.Invoices, 1)
	it := e.Invoices[0].Items[0]
	assert.True(t, decimal.NewFromInt(100).Equal(it.OriginalUnitCost))
	assert.True(t, decimal.NewFromInt(110).Equal(it.AdjustedUnitCost))
	assert.Equal(t, "p1", it.ProductID)
	assert.Equal(t, 10, created.StockItems)

	require.Len(t, created.Installments, 3)
	assert.True(t, decimal.RequireFromString("366.66").Equal(created.Installments[0].Value))
	assert.True(t, decimal.RequireFromString("366.68").Equal(created.Installments[2].Value))
	assert.Equal(t, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC), created.Installments[2].DueDate.Time)

	items, err := f.store.Repos().StockItems.List(ctx, repository.StockItemFilter{ProductID: "p1"})
	require.NoError(t, err)
	require.Len(t, items, 10)
	for _, si := range items {
		assert.True(t, decimal.NewFromInt(110).Equal(si.UnitCost))
		assert.Equal(t, entity.StockItemAvailable, si.Status)
		assert.Equal(t, e.ID, si.StockEntryID)
		assert.Equal(t, "NF-1", si.InvoiceNumber)
	}

	insts, err := f.entries.Installments(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, insts, 3)
}

func TestEntryCreate_TopeAcumulado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.product(t, "p1", "Ozempic", "100")
	o := f.order(t, "PED-1", line("p1", 10))
	_, err := f.orders.Approve(ctx, admin, o.ID)
	require.NoError(t, err)
	itemID := o.Items[0].ID

	_, err = f.entries.Create(ctx, clerk, entryRequest(o.ID, received(itemID, 6, "100")))
	require.NoError(t, err)

	// 3 + 2 en dos notas de la misma entrada = 5 > 4 restantes
	req := entryRequest(o.ID, received(itemID, 3, "100"))
	req.Invoices = append(req.Invoices, dto.StockEntryInvoiceRequest{InvoiceNumber: "NF-2", Items: []dto.StockEntryInvoiceItemRequest{received(itemID, 2, "100")}})
	_, err = f.entries.Create(ctx, clerk, req)
	assert.ErrorIs(t, err, domain.ErrOverReceipt)

	items, err := f.store.Repos().StockItems.List(ctx, repository.StockItemFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 6, "la entrada rechazada no deja unidades")
	insts, err := f.store.Repos().Installments.List(ctx, repository.InstallmentFilter{})
	require.NoError(t, err)
	assert.Len(t, insts, 1)

	_, err = f.entries.Create(ctx, clerk, entryRequest(o.ID, received(itemID, 4, "100")))
	require.NoError(t, err)
	_, err = f.entries.Create(ctx, clerk, entryRequest(o.ID, received(itemID, 1, "100")))
	assert.ErrorIs(t, err, domain.ErrOverReceipt)
}

func TestEntryCreate_OrdenDeValidacion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.product(t, "p1", "Ozempic", "100")
	f.product(t, "p2", "Mounjaro", "50")

	pending := f.order(t, "PED-1", line("p1", 5))
	partial := f.order(t, "PED-2", line("p1", 5), line("p2", 5))
	_, err := f.orders.ApproveItem(ctx, admin, partial.ID, partial.Items[0].ID)
	require.NoError(t, err)
	approvedID := partial.Items[0].ID

	withBadShape := func(mod func(*dto.CreateStockEntryRequest)) dto.CreateStockEntryRequest {
		r := entryRequest(partial.ID, received(approvedID, 1, "100"))
		mod(&r)
		return r
	}

	tests := []struct {
		name string
		req  dto.CreateStockEntryRequest
		want error
	}{
		{"pedido inexistente", entryRequest("zz", received(approvedID, 1, "1")), domain.ErrNotFound},
		{"pedido sin líneas aprobadas", entryRequest(pending.ID, received(pending.Items[0].ID, 1, "1")), domain.ErrConflict},
		{"línea de otro pedido", entryRequest(partial.ID, received(pending.Items[0].ID, 1, "1")), domain.ErrNotFound},
		{"línea no aprobada", entryRequest(partial.ID, received(partial.Items[1].ID, 1, "1")), domain.ErrConflict},
		{"excede lo pedido", entryRequest(partial.ID, received(approvedID, 6, "1")), domain.ErrOverReceipt},
		{"cantidad cero", entryRequest(partial.ID, received(approvedID, 0, "1")), domain.ErrValidation},
		{"costo negativo", entryRequest(partial.ID, received(approvedID, 1, "-1")), domain.ErrValidation},
		{"costo con tres decimales", entryRequest(partial.ID, received(approvedID, 3, "0.333")), domain.ErrValidation},
		{"sin notas", withBadShape(func(r *dto.CreateStockEntryRequest) { r.Invoices = nil }), domain.ErrValidation},
		{"cuotas cero", withBadShape(func(r *dto.CreateStockEntryRequest) { r.Installments = 0 }), domain.ErrValidation},
		{"cuotas sobre el tope", withBadShape(func(r *dto.CreateStockEntryRequest) { r.Installments = entity.MaxInstallments + 1 }), domain.ErrValidation},
		{"cuotas desmedidas", withBadShape(func(r *dto.CreateStockEntryRequest) { r.Installments = 200000 }), domain.ErrValidation},
		{"forma de pago", withBadShape(func(r *dto.CreateStockEntryRequest) { r.PaymentMethod = "cheque" }), domain.ErrValidation},
		{"sin vencimiento", withBadShape(func(r *dto.CreateStockEntryRequest) { r.FirstDueDate = dto.Date{} }), domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.entries.Create(ctx, clerk, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	list, err := f.entries.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEntryCreate_CostoCeroPermitido(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.product(t, "p1", "Muestra", "100")
	o := f.order(t, "PED-1", line("p1", 2))
	_, err := f.orders.Approve(ctx, admin, o.ID)
	require.NoError(t, err)

	created, err := f.entries.Create(ctx, clerk, entryRequest(o.ID, received(o.Items[0].ID, 2, "0")))
	require.NoError(t, err)
	assert.True(t, created.Entry.TotalValue.IsZero())
	require.Len(t, created.Installments, 1)
	assert.True(t, created.Installments[0].Value.IsZero())
}

func TestEntryCreate_TopeDeCuotas(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.product(t, "p1", "Ozempic", "100")
	o := f.order(t, "PED-1", line("p1", 2))
	_, err := f.orders.Approve(ctx, admin, o.ID)
	require.NoError(t, err)

	req := entryRequest(o.ID, received(o.Items[0].ID, 1, "1.20"))
	req.Installments = entity.MaxInstallments
	created, err := f.entries.Create(ctx, clerk, req)
	require.NoError(t, err)
	require.Len(t, created.Installments, entity.MaxInstallments)
	assert.True(t, decimal.RequireFromString("0.01").Equal(created.Installments[0].Value))
	assert.True(t, decimal.RequireFromString("0.01").Equal(created.Installments[entity.MaxInstallments-1].Value))
}

func TestEntryGet_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.entries.Get(context.Background(), "zz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.entries.Installments(context.Background(), "zz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
