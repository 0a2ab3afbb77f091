package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "compras-api", cfg.JWT.Issuer)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REPORT_CACHE_TTL_SECONDS", "30")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
}

func TestLoad_Invalida(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "compras", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/compras?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())
}
