package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// Querier lo que los repositorios necesitan de la conexión. Lo cumplen *pgxpool.Pool y pgx.Tx,
// así el mismo repositorio sirve fuera y dentro de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// NewRepos ata todos los repositorios a q (pool o tx).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Products:     NewProductRepository(q),
		Orders:       NewOrderRepository(q),
		Entries:      NewStockEntryRepository(q),
		StockItems:   NewStockItemRepository(q),
		Exits:        NewStockExitRepository(q),
		Installments: NewInstallmentRepository(q),
		Users:        NewUserRepository(q),
	}
}
