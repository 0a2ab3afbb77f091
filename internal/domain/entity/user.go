package entity

import "time"

// Roles del sistema.
const (
	RoleAdmin = "admin" // aprueba/rechaza pedidos, confirma salidas, registra pagos
	RoleUser  = "user"  // crea pedidos, entradas y salidas
)

// User representa un usuario con acceso a la API.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Actor identidad que ejecuta una operación (extraída del token).
type Actor struct {
	ID   string
	Name string
	Role string
}

// IsAdmin indica si el actor tiene rol de administrador.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
