package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/pkg/config"
)

func TestInsertErr(t *testing.T) {
	assert.NoError(t, insertErr("order", nil))

	dup := fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, insertErr("order", dup), domain.ErrDuplicate)

	other := errors.New("conexión cerrada")
	err := insertErr("order", other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
}

func TestAffected(t *testing.T) {
	assert.ErrorIs(t, affected(pgconn.NewCommandTag("UPDATE 0"), nil, "update"), domain.ErrNotFound)
	assert.NoError(t, affected(pgconn.NewCommandTag("UPDATE 1"), nil, "update"))
}

func TestRedactedDSN(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: 5432, User: "compras", Password: "s3cr3t", DBName: "compras", SSLMode: "disable"}
	out := RedactedDSN(cfg)
	assert.NotContains(t, out, "s3cr3t")
	assert.Contains(t, out, "compras:xxxxx@db:5432")
}

func TestMigrationsEmbebidas(t *testing.T) {
	script, err := migrationsFS.ReadFile("migrations/0001_init.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(script), "CREATE TABLE IF NOT EXISTS stock_items")
}
