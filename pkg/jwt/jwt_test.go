package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	manager := NewManager("test-secret")
	userID := uuid.New().String()

	token, err := manager.Generate(userID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.Subject)
}

func TestVerify_ExpiredToken(t *testing.T) {
	manager := NewManager("test-secret")

	token, err := manager.Generate(uuid.New().String(), -time.Minute)
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.Error(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a").Generate(uuid.New().String(), time.Hour)
	require.NoError(t, err)

	_, err = NewManager("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := NewManager("test-secret").Verify("not-a-token")
	assert.Error(t, err)
}
