package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestResolveUserID(t *testing.T) {
	a := NewAuthenticator(testSecret, "")
	token := signToken(t, testSecret, jwt.MapClaims{
		"ur":  float64(42),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	userID, err := a.ResolveUserID(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), userID)
}

func TestResolveUserIDRejectsExpired(t *testing.T) {
	a := NewAuthenticator(testSecret, "")
	token := signToken(t, testSecret, jwt.MapClaims{
		"ur":  float64(42),
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	_, err := a.ResolveUserID(context.Background(), token)
	assert.Error(t, err)
}

func TestResolveUserIDRequiresExpiry(t *testing.T) {
	a := NewAuthenticator(testSecret, "")
	token := signToken(t, testSecret, jwt.MapClaims{"ur": float64(42)})
	_, err := a.ResolveUserID(context.Background(), token)
	assert.Error(t, err)
}

func TestResolveUserIDRejectsWrongSecret(t *testing.T) {
	a := NewAuthenticator(testSecret, "")
	token := signToken(t, "other-secret", jwt.MapClaims{
		"ur":  float64(42),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err := a.ResolveUserID(context.Background(), token)
	assert.Error(t, err)
}

func TestResolveUserIDRejectsMissingClaim(t *testing.T) {
	a := NewAuthenticator(testSecret, "")
	token := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err := a.ResolveUserID(context.Background(), token)
	assert.Error(t, err)
}

func TestResolveUserIDAudience(t *testing.T) {
	a := NewAuthenticator(testSecret, "https://api.example.com")
	good := signToken(t, testSecret, jwt.MapClaims{
		"ur":  float64(7),
		"exp": time.Now().Add(time.Hour).Unix(),
		"aud": "https://api.example.com",
	})
	userID, err := a.ResolveUserID(context.Background(), good)
	require.NoError(t, err)
	assert.Equal(t, int32(7), userID)

	bad := signToken(t, testSecret, jwt.MapClaims{
		"ur":  float64(7),
		"exp": time.Now().Add(time.Hour).Unix(),
		"aud": "https://elsewhere.example.com",
	})
	_, err = a.ResolveUserID(context.Background(), bad)
	assert.Error(t, err)
}
