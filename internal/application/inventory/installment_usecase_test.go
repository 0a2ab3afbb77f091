package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/inventory"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/infrastructure/memory"
)

func TestInstallmentMarkPaid(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := inventory.NewInstallmentUseCase(store, store.Repos(), zerolog.Nop())
	require.NoError(t, store.Repos().Installments.CreateBatch(ctx, []*entity.PaymentInstallment{
		{ID: "i1", StockEntryID: "e1", InstallmentNumber: 1, Value: decimal.NewFromInt(500), DueDate: day(2025, 1, 10).Time},
		{ID: "i2", StockEntryID: "e1", InstallmentNumber: 2, Value: decimal.NewFromInt(500), DueDate: day(2025, 2, 10).Time},
	}))

	_, err := uc.MarkPaid(ctx, clerk, "i1", dto.PayInstallmentRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	paidAt := time.Date(2025, 1, 9, 15, 0, 0, 0, time.UTC)
	got, err := uc.MarkPaid(ctx, admin, "i1", dto.PayInstallmentRequest{PaidAt: &paidAt})
	require.NoError(t, err)
	assert.True(t, got.Paid)
	assert.Equal(t, paidAt, *got.PaidAt)

	_, err = uc.MarkPaid(ctx, admin, "i1", dto.PayInstallmentRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.MarkPaid(ctx, admin, "zz", dto.PayInstallmentRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	pending, err := uc.List(ctx, dto.InstallmentFilter{StockEntryID: "e1", Paid: "false"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "i2", pending[0].ID)

	_, err = uc.List(ctx, dto.InstallmentFilter{Paid: "quizá"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
