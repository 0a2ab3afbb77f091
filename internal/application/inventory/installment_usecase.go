package inventory

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// InstallmentUseCase consulta de cuotas y registro de pagos.
type InstallmentUseCase struct {
	tx    TxRunner
	repos repository.Repos
	log   zerolog.Logger
}

// NewInstallmentUseCase construye el caso de uso.
func NewInstallmentUseCase(tx TxRunner, repos repository.Repos, log zerolog.Logger) *InstallmentUseCase {
	return &InstallmentUseCase{tx: tx, repos: repos, log: log}
}

// List cuotas filtradas por entrada y/o estado de pago, ordenadas por vencimiento.
func (uc *InstallmentUseCase) List(ctx context.Context, filter dto.InstallmentFilter) ([]dto.InstallmentResponse, error) {
	f := repository.InstallmentFilter{StockEntryID: filter.StockEntryID}
	if filter.Paid != "" {
		paid, err := strconv.ParseBool(filter.Paid)
		if err != nil {
			return nil, fmt.Errorf("%w: paid debe ser true o false", domain.ErrValidation)
		}
		f.Paid = &paid
	}
	list, err := uc.repos.Installments.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewInstallmentResponses(list), nil
}

// MarkPaid registra el pago de una cuota (solo admin). Sin fecha se usa el momento actual.
func (uc *InstallmentUseCase) MarkPaid(ctx context.Context, actor entity.Actor, id string, in dto.PayInstallmentRequest) (*dto.InstallmentResponse, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: solo un administrador registra pagos", domain.ErrForbidden)
	}
	paidAt := time.Now()
	if in.PaidAt != nil && !in.PaidAt.IsZero() {
		paidAt = *in.PaidAt
	}
	var inst *entity.PaymentInstallment
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		inst, err = r.Installments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inst == nil {
			return fmt.Errorf("%w: cuota %s", domain.ErrNotFound, id)
		}
		if inst.IsPaid() {
			return fmt.Errorf("%w: la cuota %d ya está pagada", domain.ErrConflict, inst.InstallmentNumber)
		}
		inst.PaidAt = &paidAt
		return r.Installments.Update(ctx, inst)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("installment_id", inst.ID).Str("entry_id", inst.StockEntryID).Msg("cuota pagada")
	resp := dto.NewInstallmentResponse(inst)
	return &resp, nil
}
