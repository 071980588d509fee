package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testManager(accessTTL time.Duration) *JWTManager {
	return NewJWTManager(JWTConfig{
		SecretKey:            "test-secret",
		AccessTokenDuration:  accessTTL,
		RefreshTokenDuration: time.Hour,
		Issuer:               "test",
	})
}

func TestJWTManager_AccessTokenRoundTrip(t *testing.T) {
	manager := testManager(time.Minute)

	token, err := manager.GenerateAccessToken("user-123", "user@example.com", true)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.True(t, claims.IsStaff)
	assert.Equal(t, "access", claims.TokenType)
}

func TestJWTManager_RefreshTokenRejectedAsAccess(t *testing.T) {
	manager := testManager(time.Minute)

	token, err := manager.GenerateRefreshToken("user-123", "user@example.com", false)
	assert.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := manager.ValidateRefreshToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := testManager(-time.Minute)

	token, err := manager.GenerateAccessToken("user-123", "user@example.com", false)
	assert.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, err := testManager(time.Minute).GenerateAccessToken("user-123", "user@example.com", false)
	assert.NoError(t, err)

	other := NewJWTManager(JWTConfig{
		SecretKey:            "different-secret",
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
		Issuer:               "test",
	})
	_, err = other.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
