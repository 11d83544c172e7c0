package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTManager(t *testing.T) JWTManagerInterface {
	t.Setenv("JWT_SECRET", "test-secret")
	return NewJWTManager()
}

func TestAccessToken_RoundTrip(t *testing.T) {
	manager := newTestJWTManager(t)

	token, err := manager.GenerateAccessJWT("user-1", time.Minute)
	require.NoError(t, err)

	userID, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestAccessToken_Expired(t *testing.T) {
	manager := newTestJWTManager(t)

	token, err := manager.GenerateAccessJWT("user-1", -time.Minute)
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredJWTToken)
}

func TestAccessToken_Garbage(t *testing.T) {
	manager := newTestJWTManager(t)

	_, err := manager.ValidateAccessToken("not-a-jwt")
	assert.Error(t, err)
}

func TestRefreshToken_BoundToHashToken(t *testing.T) {
	manager := newTestJWTManager(t)

	token, err := manager.GenerateRefreshJWT("user-1", "hash-a", time.Minute)
	require.NoError(t, err)

	require.NoError(t, manager.ValidateRefreshToken(token, "hash-a"))

	// Rotating the hash token invalidates previously issued refresh tokens.
	err = manager.ValidateRefreshToken(token, "hash-b")
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestRefreshToken_ExtractUserID(t *testing.T) {
	manager := newTestJWTManager(t)

	token, err := manager.GenerateRefreshJWT("user-1", "hash-a", time.Minute)
	require.NoError(t, err)

	userID, err := manager.ExtractUserIDFromRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}
