package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate_RoundTrip(t *testing.T) {
	svc := NewService("segredo-de-teste", time.Hour)

	tok, err := svc.GenerateToken("user-123", "ADMIN")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestValidate_WrongSecret(t *testing.T) {
	tok, err := NewService("segredo-a", time.Hour).GenerateToken("u", "USER")
	require.NoError(t, err)

	_, err = NewService("segredo-b", time.Hour).ValidateToken(tok)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	svc := NewService("segredo", time.Minute)
	past := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return past }

	tok, err := svc.GenerateToken("u", "USER")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(tok)
	assert.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidate_RejectsNoneAlgorithm(t *testing.T) {
	claims := CustomClaims{
		UserID: "u",
		Role:   "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewService("segredo", time.Hour).ValidateToken(tok)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := NewService("segredo", time.Hour).ValidateToken("nao.e.jwt")
	assert.Error(t, err)
}
