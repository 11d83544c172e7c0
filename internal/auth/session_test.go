package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	sm := NewSessionManager()

	token, err := sm.GenerateSessionToken("user-1", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := sm.VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestSessionToken_Unknown(t *testing.T) {
	sm := NewSessionManager()

	_, err := sm.VerifySessionToken("nope")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestSessionToken_Expired(t *testing.T) {
	sm := NewSessionManager()

	token, err := sm.GenerateSessionToken("user-1", -time.Second)
	require.NoError(t, err)

	_, err = sm.VerifySessionToken(token)
	assert.ErrorIs(t, err, ErrExpiredSessionToken)
}

func TestSessionToken_Deleted(t *testing.T) {
	sm := NewSessionManager()

	token, err := sm.GenerateSessionToken("user-1", time.Minute)
	require.NoError(t, err)

	sm.DeleteSessionToken(token)

	_, err = sm.VerifySessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestCleanupExpired_RemovesOnlyExpired(t *testing.T) {
	sm := NewSessionManager()

	expired, err := sm.GenerateSessionToken("user-1", -time.Second)
	require.NoError(t, err)
	live, err := sm.GenerateSessionToken("user-2", time.Minute)
	require.NoError(t, err)

	removed := sm.CleanupExpired()
	assert.Equal(t, 1, removed)

	_, err = sm.VerifySessionToken(expired)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)

	userID, err := sm.VerifySessionToken(live)
	require.NoError(t, err)
	assert.Equal(t, "user-2", userID)
}
