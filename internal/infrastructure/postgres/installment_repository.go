package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

var _ repository.InstallmentRepository = (*InstallmentRepo)(nil)

const installmentColumns = `id, stock_entry_id, installment_number, value, due_date, paid_at`

// InstallmentRepo cuotas de pago de las entradas.
type InstallmentRepo struct {
	q Querier
}

// NewInstallmentRepository construye el adaptador de cuotas. Pasar pool o tx (Querier).
func NewInstallmentRepository(q Querier) *InstallmentRepo {
	return &InstallmentRepo{q: q}
}

func scanInstallment(row pgx.Row) (*entity.PaymentInstallment, error) {
	var p entity.PaymentInstallment
	err := row.Scan(&p.ID, &p.StockEntryID, &p.InstallmentNumber, &p.Value, &p.DueDate, &p.PaidAt)
	return &p, err
}

// CreateBatch inserta todas las cuotas de una entrada.
func (r *InstallmentRepo) CreateBatch(ctx context.Context, list []*entity.PaymentInstallment) error {
	for _, p := range list {
		_, err := r.q.Exec(ctx, `
			INSERT INTO payment_installments (`+installmentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			p.ID, p.StockEntryID, p.InstallmentNumber, p.Value, p.DueDate, p.PaidAt,
		)
		if err := insertErr("installment", err); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene una cuota por ID.
func (r *InstallmentRepo) GetByID(ctx context.Context, id string) (*entity.PaymentInstallment, error) {
	p, err := scanInstallment(r.q.QueryRow(ctx, `SELECT `+installmentColumns+` FROM payment_installments WHERE id = $1`, id))
	return noRows(p, err, "get installment")
}

// Update persiste el pago (PaidAt).
func (r *InstallmentRepo) Update(ctx context.Context, p *entity.PaymentInstallment) error {
	tag, err := r.q.Exec(ctx, `UPDATE payment_installments SET paid_at = $2 WHERE id = $1`, p.ID, p.PaidAt)
	return affected(tag, err, "update installment")
}

// List ordena por fecha de vencimiento y número de cuota.
func (r *InstallmentRepo) List(ctx context.Context, filter repository.InstallmentFilter) ([]*entity.PaymentInstallment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+installmentColumns+` FROM payment_installments
		WHERE ($1::text = '' OR stock_entry_id = $1)
		  AND ($2::boolean IS NULL OR (paid_at IS NOT NULL) = $2)
		ORDER BY due_date, installment_number`, filter.StockEntryID, filter.Paid)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentInstallment
	for rows.Next() {
		p, err := scanInstallment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
