package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdecaire/desperse-public-sub004/internal/api/middleware"
)

func generateKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(publicPEM)
}

func signedToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestAuthenticate(t *testing.T) {
	key, publicPEM := generateKeyPair(t)
	cfg := middleware.AuthConfig{
		JWTPublicKey: publicPEM,
		APIKeys:      []string{"service-key-1"},
	}

	t.Run("valid bearer token carries the subject", func(t *testing.T) {
		token := signedToken(t, key, jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		result := middleware.Authenticate("Bearer "+token, cfg)
		require.True(t, result.Success)
		assert.Equal(t, "jwt", result.AuthType)
		assert.Equal(t, "user-1", result.AuthSubject)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := signedToken(t, key, jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})

		result := middleware.Authenticate("Bearer "+token, cfg)
		assert.False(t, result.Success)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		otherKey, _ := generateKeyPair(t)
		token := signedToken(t, otherKey, jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		result := middleware.Authenticate("Bearer "+token, cfg)
		assert.False(t, result.Success)
	})

	t.Run("known api key succeeds", func(t *testing.T) {
		result := middleware.Authenticate("ApiKey service-key-1", cfg)
		require.True(t, result.Success)
		assert.Equal(t, "apikey", result.AuthType)
		assert.Empty(t, result.AuthSubject)
	})

	t.Run("unknown api key fails", func(t *testing.T) {
		result := middleware.Authenticate("ApiKey wrong-key", cfg)
		assert.False(t, result.Success)
	})

	t.Run("missing header fails", func(t *testing.T) {
		result := middleware.Authenticate("", cfg)
		assert.False(t, result.Success)
		assert.Error(t, result.Error)
	})

	t.Run("unsupported scheme fails", func(t *testing.T) {
		result := middleware.Authenticate("Basic dXNlcjpwYXNz", cfg)
		assert.False(t, result.Success)
	})
}
