package utils

import (
	"testing"
	"time"

	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test constants
const (
	testSecret          = "test-secret-key-for-jwt-testing"
	testWrongSecret     = "wrong-secret-key-for-jwt-testing"
	testTokenDuration   = 1 * time.Hour
	testExpiredDuration = -1 * time.Hour
)

// Helper function to create test account
func createTestAccount(role models.Role) *models.Account {
	return &models.Account{
		ID:       uuid.New(),
		Name:     "Test Player",
		Username: "test-player",
		Phone:    "555-0100",
		Role:     role,
	}
}

func TestGenerateToken_Success(t *testing.T) {
	// Arrange
	account := createTestAccount(models.RolePlayer)

	// Act
	token, err := GenerateToken(account, testSecret, testTokenDuration)

	// Assert
	require.NoError(t, err, "GenerateToken should not return error for valid input")
	assert.NotEmpty(t, token, "Token should not be empty")
	assert.Contains(t, token, ".", "JWT token should contain dots")
}

func TestGenerateToken_CarriesIdentityClaims(t *testing.T) {
	account := createTestAccount(models.RolePlayer)

	token, err := GenerateToken(account, testSecret, testTokenDuration)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, account.ID, claims.UserID)
	assert.Equal(t, account.ID.String(), claims.Subject)
	assert.Equal(t, account.Username, claims.Username)
	assert.Equal(t, account.Phone, claims.Phone)
	assert.Equal(t, account.Role, claims.Role)
}

func TestGenerateToken_DifferentRoles(t *testing.T) {
	roles := []models.Role{models.RolePlayer, models.RoleAdmin}

	for _, role := range roles {
		t.Run(string(role), func(t *testing.T) {
			account := createTestAccount(role)

			token, err := GenerateToken(account, testSecret, testTokenDuration)
			require.NoError(t, err, "GenerateToken should work for all roles")
			assert.NotEmpty(t, token)

			claims, err := ValidateToken(token, testSecret)
			require.NoError(t, err)
			assert.Equal(t, role, claims.Role, "Token should contain correct role")
		})
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	account := createTestAccount(models.RolePlayer)

	token, err := GenerateToken(account, testSecret, testTokenDuration)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testWrongSecret)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_Expired(t *testing.T) {
	account := createTestAccount(models.RolePlayer)

	token, err := GenerateToken(account, testSecret, testExpiredDuration)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestValidateToken_Tampered(t *testing.T) {
	account := createTestAccount(models.RolePlayer)

	token, err := GenerateToken(account, testSecret, testTokenDuration)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	claims, err := ValidateToken(tampered, testSecret)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_Garbage(t *testing.T) {
	claims, err := ValidateToken("not.a.token", testSecret)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
