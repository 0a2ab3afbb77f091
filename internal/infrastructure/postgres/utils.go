package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Compras-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// insertErr traduce la violación de unicidad a ErrDuplicate.
func insertErr(what string, err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, what)
	}
	return fmt.Errorf("insert %s: %w", what, err)
}

// affected devuelve ErrNotFound si la sentencia no tocó ninguna fila.
func affected(tag pgconn.CommandTag, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// noRows convierte pgx.ErrNoRows en (nil, nil), el contrato de los GetByID.
func noRows[T any](v *T, err error, op string) (*T, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}
