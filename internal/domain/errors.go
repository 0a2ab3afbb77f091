package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("%w: ...") para dar contexto;
// los adaptadores los comparan con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrOverReceipt  = errors.New("cantidad excede lo pendiente por recibir")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// ErrValidation es el nombre de ErrInvalidInput en la taxonomía del ledger.
var ErrValidation = ErrInvalidInput
