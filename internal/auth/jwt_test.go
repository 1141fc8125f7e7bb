package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_IssueAndVerify(t *testing.T) {
	manager := NewJWTManager("test-secret-key-for-testing", time.Hour)

	token, err := manager.Issue("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTManager_VerifyExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret-key-for-testing", -time.Minute)

	token, err := manager.Issue("admin")
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.Error(t, err)
}

func TestJWTManager_VerifyWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret-key-for-testing", time.Hour)
	other := NewJWTManager("a-completely-different-secret", time.Hour)

	token, err := manager.Issue("admin")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestJWTManager_VerifyMalformedToken(t *testing.T) {
	manager := NewJWTManager("test-secret-key-for-testing", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "two segments", token: "aaaa.bbbb"},
		{name: "invalid base64", token: "!!!.@@@.###"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Verify(tt.token)
			assert.Error(t, err)
		})
	}
}
