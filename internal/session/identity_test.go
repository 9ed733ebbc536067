package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return token
}

func TestDecodeIdentity(t *testing.T) {
	token := makeToken(t, jwt.MapClaims{
		"id":    "user-123",
		"email": "abebe@example.com",
	})

	identity, err := DecodeIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", identity.UserID)
	assert.Equal(t, "abebe@example.com", identity.Email)
}

func TestDecodeIdentityUserIDFallback(t *testing.T) {
	token := makeToken(t, jwt.MapClaims{"userId": "user-456"})

	identity, err := DecodeIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, "user-456", identity.UserID)
}

func TestDecodeIdentityPrefersID(t *testing.T) {
	token := makeToken(t, jwt.MapClaims{
		"id":     "primary",
		"userId": "secondary",
	})

	identity, err := DecodeIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, "primary", identity.UserID)
}

func TestDecodeIdentityNoUserID(t *testing.T) {
	token := makeToken(t, jwt.MapClaims{"email": "no-id@example.com"})

	_, err := DecodeIdentity(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeIdentityGarbage(t *testing.T) {
	_, err := DecodeIdentity("not-a-jwt")
	assert.Error(t, err)
}
