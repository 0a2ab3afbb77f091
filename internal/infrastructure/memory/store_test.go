package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
	"github.com/jhoicas/Compras-api/internal/infrastructure/memory"
)

func TestStore_RunDescartaCambiosSiFalla(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	boom := errors.New("boom")

	err := s.Run(ctx, func(r repository.Repos) error {
		require.NoError(t, r.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Ozempic"}))
		require.NoError(t, r.StockItems.CreateBatch(ctx, []*entity.StockItem{{ID: "i1", ProductID: "p1", Status: entity.StockItemAvailable}}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := s.Repos().Products.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	items, err := s.Repos().StockItems.List(ctx, repository.StockItemFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_RunConfirmaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	err := s.Run(ctx, func(r repository.Repos) error {
		return r.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Ozempic", UnitCost: decimal.NewFromInt(10)})
	})
	require.NoError(t, err)

	p, err := s.Repos().Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Ozempic", p.Name)
}

func TestStore_LecturasNoVenTransaccionEnCurso(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	inside := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Run(ctx, func(r repository.Repos) error {
			_ = r.Products.Create(ctx, &entity.Product{ID: "p1"})
			close(inside)
			<-release
			return nil
		})
	}()

	<-inside
	p, err := s.Repos().Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, p, "el cambio aún no está confirmado")
	close(release)
	wg.Wait()

	p, err = s.Repos().Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestStore_CopiasIndependientes(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	repos := s.Repos()
	order := &entity.Order{ID: "o1", OrderNumber: "PED-1", Items: []entity.OrderItem{{ID: "oi1", Quantity: 2}}}
	require.NoError(t, repos.Orders.Create(ctx, order))

	order.Items[0].Quantity = 99
	got, err := repos.Orders.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Items[0].Quantity)

	got.Items[0].Quantity = 50
	again, _ := repos.Orders.GetByID(ctx, "o1")
	assert.Equal(t, 2, again.Items[0].Quantity)
}

func TestOrderRepo_NumeroUnico(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	require.NoError(t, repos.Orders.Create(ctx, &entity.Order{ID: "o1", OrderNumber: "PED-1"}))
	assert.ErrorIs(t, repos.Orders.Create(ctx, &entity.Order{ID: "o2", OrderNumber: "PED-1"}), domain.ErrDuplicate)

	require.NoError(t, repos.Orders.Create(ctx, &entity.Order{ID: "o2", OrderNumber: "PED-2"}))
	assert.ErrorIs(t, repos.Orders.Update(ctx, &entity.Order{ID: "o2", OrderNumber: "PED-1"}), domain.ErrDuplicate)

	byNumber, err := repos.Orders.GetByNumber(ctx, "PED-2")
	require.NoError(t, err)
	assert.Equal(t, "o2", byNumber.ID)

	list, err := repos.Orders.List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "o2", list[0].ID, "más reciente primero")
}

func TestStockItemRepo_FiltrosYOrden(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	d1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 1, 0)
	require.NoError(t, repos.StockItems.CreateBatch(ctx, []*entity.StockItem{
		{ID: "a", ProductID: "p1", EntryDate: d1, Status: entity.StockItemAvailable},
		{ID: "b", ProductID: "p2", EntryDate: d2, Status: entity.StockItemAvailable},
		{ID: "c", ProductID: "p1", EntryDate: d2, Status: entity.StockItemExited, ExitID: "x1"},
	}))

	avail, err := repos.StockItems.List(ctx, repository.StockItemFilter{Status: entity.StockItemAvailable})
	require.NoError(t, err)
	require.Len(t, avail, 2)
	assert.Equal(t, "b", avail[0].ID)

	p1, _ := repos.StockItems.List(ctx, repository.StockItemFilter{ProductID: "p1"})
	assert.Len(t, p1, 2)

	byExit, _ := repos.StockItems.ListByExit(ctx, "x1")
	require.Len(t, byExit, 1)
	assert.Equal(t, "c", byExit[0].ID)

	got, _ := repos.StockItems.GetByIDs(ctx, []string{"c", "zz", "a"})
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)

	err = repos.StockItems.UpdateBatch(ctx, []*entity.StockItem{{ID: "a"}, {ID: "zz"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	still, _ := repos.StockItems.GetByIDs(ctx, []string{"a"})
	assert.Equal(t, entity.StockItemAvailable, still[0].Status, "no aplica cambios parciales")
}

func TestInstallmentRepo_FiltroPagadas(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	paidAt := time.Now()
	d := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Installments.CreateBatch(ctx, []*entity.PaymentInstallment{
		{ID: "i2", StockEntryID: "e1", InstallmentNumber: 2, DueDate: d.AddDate(0, 1, 0)},
		{ID: "i1", StockEntryID: "e1", InstallmentNumber: 1, DueDate: d, PaidAt: &paidAt},
		{ID: "j1", StockEntryID: "e2", InstallmentNumber: 1, DueDate: d},
	}))

	all, _ := repos.Installments.List(ctx, repository.InstallmentFilter{StockEntryID: "e1"})
	require.Len(t, all, 2)
	assert.Equal(t, "i1", all[0].ID)

	unpaid := false
	pending, _ := repos.Installments.List(ctx, repository.InstallmentFilter{Paid: &unpaid})
	assert.Len(t, pending, 2)
}

func TestUserRepo_EmailUnico(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: "u1", Email: "admin@compras.local"}))
	assert.ErrorIs(t, repos.Users.Create(ctx, &entity.User{ID: "u2", Email: "ADMIN@compras.local"}), domain.ErrDuplicate)

	u, err := repos.Users.FindByEmail(ctx, "Admin@Compras.local")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
}
