package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("secret", time.Hour)
	user := uuid.New()

	tok, err := svc.GenerateAccessToken(user, "dev@example.com")
	require.NoError(t, err)

	c, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, user, c.UserID)
	assert.Equal(t, "dev@example.com", c.Email)
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }

	tok, err := svc.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestHMACService_Invalid(t *testing.T) {
	svc := NewHMACService("secret", time.Hour)
	other := NewHMACService("other", time.Hour)

	foreign, err := other.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	noSubject, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExpiry, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{Subject: uuid.NewString()},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"garbage":        "not-a-token",
		"wrong secret":   foreign,
		"missing sub":    noSubject,
		"missing expiry": noExpiry,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(tok)
			assert.ErrorIs(t, err, ErrTokenInvalid)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestHMACService_GenerateRequiresUser(t *testing.T) {
	_, err := NewHMACService("secret", time.Hour).GenerateAccessToken(uuid.Nil, "")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
