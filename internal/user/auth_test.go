package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateJWT(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		token, err := GenerateJWT(1, "customer", "a@b.com", "test-secret")
		require.NoError(t, err)

		claims, err := ParseJWT(token, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		assert.Equal(t, "a@b.com", claims.Email)
		assert.Equal(t, "customer", claims.Role)
	})

	t.Run("Empty secret", func(t *testing.T) {
		_, err := GenerateJWT(1, "customer", "a@b.com", "")
		assert.Error(t, err)
	})
}

func TestParseJWT(t *testing.T) {
	t.Run("Wrong secret", func(t *testing.T) {
		token, err := GenerateJWT(1, "customer", "a@b.com", "test-secret")
		require.NoError(t, err)

		_, err = ParseJWT(token, "other-secret")
		assert.Error(t, err)
	})

	t.Run("Garbage token", func(t *testing.T) {
		_, err := ParseJWT("not.a.token", "test-secret")
		assert.Error(t, err)
	})
}
