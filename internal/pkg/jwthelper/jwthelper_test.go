package jwthelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = []byte("test-signing-key")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(key, 42, "curl/8.0", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "curl/8.0", claims.UserAgent)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseToken_Rejects(t *testing.T) {
	expired, err := GenerateToken(key, 1, "", -time.Minute)
	require.NoError(t, err)

	other, err := GenerateToken([]byte("another-key"), 1, "", time.Hour)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":   expired,
		"wrong key": other,
		"garbage":   "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(key, token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokensHaveDistinctIDs(t *testing.T) {
	a, err := GenerateToken(key, 1, "", time.Hour)
	require.NoError(t, err)
	b, err := GenerateToken(key, 1, "", time.Hour)
	require.NoError(t, err)

	ca, err := ParseToken(key, a)
	require.NoError(t, err)
	cb, err := ParseToken(key, b)
	require.NoError(t, err)

	assert.NotEqual(t, ca.ID, cb.ID)
}
