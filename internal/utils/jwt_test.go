package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tok, err := SignJWT("super-secret", "user-123", now, 60*24*time.Hour)
	require.NoError(t, err)

	c, err := ParseJWT("super-secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", c.UserID)
	assert.WithinDuration(t, now.Add(60*24*time.Hour), c.ExpiresAt.Time, time.Second)
}

func TestSign_UsesIDClaim(t *testing.T) {
	t.Parallel()

	tok, err := SignJWT("k", "u1", time.Now(), time.Hour)
	require.NoError(t, err)

	parsed, err := jwt.Parse(tok, func(*jwt.Token) (any, error) { return []byte("k"), nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "u1", claims["id"])
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	tok, err := SignJWT("k", "u1", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT("k", tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := SignJWT("right", "u1", time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT("wrong", tok)
	assert.Error(t, err)
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID:           "u1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = ParseJWT("k", tok)
	assert.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseJWT("k", "not.a.jwt")
	assert.Error(t, err)
}
