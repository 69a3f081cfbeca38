package nonce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonceRoundTrip(t *testing.T) {
	svc := NewService("test-secret", 24*time.Hour)

	token := svc.Create("session-1", ActionRegister)
	require.NotEmpty(t, token)

	assert.True(t, svc.Verify(token, "session-1", ActionRegister))
}

func TestNonceRejectsMismatches(t *testing.T) {
	svc := NewService("test-secret", 24*time.Hour)
	token := svc.Create("session-1", ActionRegister)

	tests := []struct {
		name    string
		token   string
		session string
		action  string
	}{
		{
			name:    "empty token",
			token:   "",
			session: "session-1",
			action:  ActionRegister,
		},
		{
			name:    "wrong session",
			token:   token,
			session: "session-2",
			action:  ActionRegister,
		},
		{
			name:    "wrong action",
			token:   token,
			session: "session-1",
			action:  ActionSaveEventMeta,
		},
		{
			name:    "forged token",
			token:   "0123456789abcdef",
			session: "session-1",
			action:  ActionRegister,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, svc.Verify(tt.token, tt.session, tt.action))
		})
	}
}

func TestNonceExpiry(t *testing.T) {
	svc := NewService("test-secret", 24*time.Hour)

	issued := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	token := svc.createAt(issued, "session-1", ActionRegister)

	// Still valid in the issuing window and the next one.
	assert.True(t, svc.verifyAt(issued, token, "session-1", ActionRegister))
	assert.True(t, svc.verifyAt(issued.Add(13*time.Hour), token, "session-1", ActionRegister))

	// Two windows later the token is dead.
	assert.False(t, svc.verifyAt(issued.Add(25*time.Hour), token, "session-1", ActionRegister))
}

func TestNonceDiffersPerSecret(t *testing.T) {
	a := NewService("secret-a", 24*time.Hour)
	b := NewService("secret-b", 24*time.Hour)

	token := a.Create("session-1", ActionRegister)
	assert.False(t, b.Verify(token, "session-1", ActionRegister))
}
