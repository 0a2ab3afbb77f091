package inventory

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que las unidades y la salida cambien juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}
