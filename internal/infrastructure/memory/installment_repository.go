package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.InstallmentRepository = (*InstallmentRepo)(nil)

// InstallmentRepo cuotas en memoria.
type InstallmentRepo struct {
	sc scope
}

func (r *InstallmentRepo) CreateBatch(_ context.Context, installments []*entity.PaymentInstallment) error {
	return r.sc.write(func(st *state) error {
		for _, in := range installments {
			if _, ok := st.installments.get(in.ID); ok {
				return domain.ErrDuplicate
			}
		}
		for _, in := range installments {
			st.installments.put(in.ID, in.Clone())
		}
		return nil
	})
}

func (r *InstallmentRepo) GetByID(_ context.Context, id string) (*entity.PaymentInstallment, error) {
	var out *entity.PaymentInstallment
	err := r.sc.read(func(st *state) error {
		if in, ok := st.installments.get(id); ok {
			out = in.Clone()
		}
		return nil
	})
	return out, err
}

func (r *InstallmentRepo) Update(_ context.Context, installment *entity.PaymentInstallment) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.installments.get(installment.ID); !ok {
			return domain.ErrNotFound
		}
		st.installments.put(installment.ID, installment.Clone())
		return nil
	})
}

func (r *InstallmentRepo) List(_ context.Context, filter repository.InstallmentFilter) ([]*entity.PaymentInstallment, error) {
	var list []*entity.PaymentInstallment
	err := r.sc.read(func(st *state) error {
		st.installments.each(func(in *entity.PaymentInstallment) {
			if filter.StockEntryID != "" && in.StockEntryID != filter.StockEntryID {
				return
			}
			if filter.Paid != nil && in.IsPaid() != *filter.Paid {
				return
			}
			list = append(list, in.Clone())
		})
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].DueDate.Equal(list[j].DueDate) {
			return list[i].DueDate.Before(list[j].DueDate)
		}
		return list[i].InstallmentNumber < list[j].InstallmentNumber
	})
	return list, err
}
