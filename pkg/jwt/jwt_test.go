package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Compras-api/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "Ana Admin", "admin", "compras-api", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Ana Admin", claims.Name)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "compras-api", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "Ana", "user", "compras-api", 5)
	require.NoError(t, err)
	_, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "Ana", "user", "compras-api", -1)
	require.NoError(t, err)
	_, err = jwt.Parse("secreto", token)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u-1", "Ana", "user", "x", 5)
	assert.Error(t, err)
	_, err = jwt.Parse("", "token")
	assert.Error(t, err)
}
