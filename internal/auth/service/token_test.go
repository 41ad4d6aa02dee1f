package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGenerator_GenerateAndValidate(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)

	token, err := tg.GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := tg.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestTokenGenerator_ValidateToken_WrongSecret(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)
	other := NewTokenGenerator("other-secret", time.Hour)

	token, err := tg.GenerateToken(42)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenGenerator_ValidateToken_Expired(t *testing.T) {
	tg := NewTokenGenerator("test-secret", -time.Minute)

	token, err := tg.GenerateToken(42)
	require.NoError(t, err)

	_, err = tg.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenGenerator_ValidateToken_Garbage(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)

	_, err := tg.ValidateToken("not-a-token")
	assert.Error(t, err)
}
