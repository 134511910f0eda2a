package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Run("generates 64 character hex string", func(t *testing.T) {
		token, err := GenerateToken()
		require.NoError(t, err)
		assert.Len(t, token, 64)
	})

	t.Run("generates unique tokens", func(t *testing.T) {
		token1, _ := GenerateToken()
		token2, _ := GenerateToken()
		assert.NotEqual(t, token1, token2)
	})

	t.Run("generates valid hex", func(t *testing.T) {
		token, _ := GenerateToken()
		for _, c := range token {
			assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'))
		}
	})
}

func TestConstantTimeEqual(t *testing.T) {
	t.Run("returns true for equal strings", func(t *testing.T) {
		assert.True(t, ConstantTimeEqual("abc", "abc"))
	})

	t.Run("returns false for different strings", func(t *testing.T) {
		assert.False(t, ConstantTimeEqual("abc", "def"))
	})

	t.Run("returns false for different lengths", func(t *testing.T) {
		assert.False(t, ConstantTimeEqual("abc", "abcd"))
	})

	t.Run("returns true for empty strings", func(t *testing.T) {
		assert.True(t, ConstantTimeEqual("", ""))
	})
}

func TestIsValidUUID(t *testing.T) {
	t.Run("accepts canonical uuid", func(t *testing.T) {
		assert.True(t, IsValidUUID("b7a9c1f0-4f2e-4f5a-9c3d-1e2f3a4b5c6d"))
	})

	t.Run("rejects empty string", func(t *testing.T) {
		assert.False(t, IsValidUUID(""))
	})

	t.Run("rejects uppercase and malformed values", func(t *testing.T) {
		assert.False(t, IsValidUUID("B7A9C1F0-4F2E-4F5A-9C3D-1E2F3A4B5C6D"))
		assert.False(t, IsValidUUID("not-a-uuid"))
		assert.False(t, IsValidUUID("b7a9c1f04f2e4f5a9c3d1e2f3a4b5c6d"))
	})
}
