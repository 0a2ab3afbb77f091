package repository

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
)

// InstallmentFilter filtros opcionales; Paid nil = pagadas y pendientes.
type InstallmentFilter struct {
	StockEntryID string
	Paid         *bool
}

// InstallmentRepository define el puerto para las cuotas de pago de las entradas.
type InstallmentRepository interface {
	CreateBatch(ctx context.Context, installments []*entity.PaymentInstallment) error
	GetByID(ctx context.Context, id string) (*entity.PaymentInstallment, error)
	Update(ctx context.Context, installment *entity.PaymentInstallment) error
	// List ordena por fecha de vencimiento y número de cuota.
	List(ctx context.Context, filter InstallmentFilter) ([]*entity.PaymentInstallment, error)
}
