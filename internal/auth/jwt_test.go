package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateStandardToken_RoundTrip(t *testing.T) {
	SecretKey = "test-secret"

	id := uuid.New()
	signed, err := GenerateStandardToken(id)
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)

	token, err := ValidatedToken(signed)
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims := token.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, JwtIssuer, claims.Issuer)
	assert.Equal(t, id.String(), claims.Subject)
	assert.WithinDuration(t, time.Now().Add(TokenLifetime), claims.ExpiresAt.Time, time.Minute)
}

func TestValidatedToken_WrongSecret(t *testing.T) {
	SecretKey = "test-secret"
	signed, err := GenerateStandardToken(uuid.New())
	assert.NoError(t, err)

	SecretKey = "another-secret"
	_, err = ValidatedToken(signed)
	assert.Error(t, err)
}

func TestValidatedToken_Expired(t *testing.T) {
	SecretKey = "test-secret"

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    JwtIssuer,
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
	})
	signed, err := expired.SignedString([]byte(SecretKey))
	assert.NoError(t, err)

	_, err = ValidatedToken(signed)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
