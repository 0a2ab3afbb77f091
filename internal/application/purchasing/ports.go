// Package purchasing contiene los casos de uso del ciclo de compra: pedidos con aprobación
// por línea y entradas de mercancía contra pedidos aprobados.
package purchasing

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda nada persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}
