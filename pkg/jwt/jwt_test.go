package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

const secret = "test-secret"

var ident = pkgjwt.Identity{UserID: "u-1", NegocioID: "n-1", Role: "admin"}

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, ident, "tienda-test", 60)
	require.NoError(t, err)

	got, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, ident, got)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, ident, "tienda-test", -1)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, ident, "tienda-test", 60)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", ident, "x", 60)
	assert.Error(t, err)
}
