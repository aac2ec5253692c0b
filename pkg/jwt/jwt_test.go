package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateSessionToken(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)
	userID := uuid.New()

	token, jti, expiresAt, err := manager.GenerateSessionToken(userID, "a@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, jti, claims.ID)
}

func TestEachTokenGetsUniqueJTI(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)
	userID := uuid.New()

	_, first, _, err := manager.GenerateSessionToken(userID, "a@example.com")
	require.NoError(t, err)
	_, second, _, err := manager.GenerateSessionToken(userID, "a@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)
	other := NewManager("other-secret", time.Hour)

	token, _, _, err := manager.GenerateSessionToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	token, _, _, err := manager.GenerateSessionToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	_, err := manager.ValidateToken("not-a-token")
	assert.Error(t, err)
}
