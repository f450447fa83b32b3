package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	token, err := GenerateJWT("test-secret", jwt.MapClaims{
		"sub":      1,
		"username": "dev_kasie_pg",
		"role":     "KASIE_PG",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	claims, err := VerifyJWT("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "dev_kasie_pg", claims["username"])
	assert.Equal(t, "KASIE_PG", claims["role"])
}

func TestVerifyJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("test-secret", jwt.MapClaims{"sub": 1})
	require.NoError(t, err)

	_, err = VerifyJWT("other-secret", token)
	assert.Error(t, err)
}

func TestVerifyJWTExpired(t *testing.T) {
	token, err := GenerateJWT("test-secret", jwt.MapClaims{
		"sub": 1,
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	require.NoError(t, err)

	_, err = VerifyJWT("test-secret", token)
	assert.Error(t, err)
}
