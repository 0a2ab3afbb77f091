package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestComponent_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "compras-api", Out: &buf})

	comp := l.Component("orders")
	comp.Info().Str("order_id", "o-1").Msg("pedido creado")
	l.Debug().Msg("no se escribe")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var got map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &got))
	assert.Equal(t, "compras-api", got["service"])
	assert.Equal(t, "orders", got["component"])
	assert.Equal(t, "o-1", got["order_id"])
	assert.Equal(t, "pedido creado", got["message"])
}
