package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_Roundtrip(t *testing.T) {
	// Arrange
	password := "SecurePass123"

	// Act
	hash, err := HashPassword(password)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash, "hash must not be the plaintext")
	assert.True(t, VerifyPassword(password, hash))
}

func TestHashPassword_UsesConfiguredCost(t *testing.T) {
	hash, err := HashPassword("SecurePass123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, HashCost, cost)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	// Same password twice must produce different hashes
	h1, err := HashPassword("SecurePass123")
	require.NoError(t, err)
	h2, err := HashPassword("SecurePass123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("SecurePass123")
	require.NoError(t, err)

	assert.False(t, VerifyPassword("WrongPass123", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("anything", "not-a-bcrypt-hash"))
	assert.False(t, VerifyPassword("anything", ""))
}
