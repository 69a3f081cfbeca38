package nonce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Form actions protected by anti-forgery tokens.
const (
	ActionRegister      = "en_register_event"
	ActionSaveEventMeta = "en_save_event_meta"
)

const tokenLength = 16

// Service issues and verifies per-session, per-action anti-forgery
// tokens. A token is an HMAC over the current time window, the visitor
// session and the action, so it cannot be minted without the server
// secret and stops verifying once the window has passed. Tokens from
// the previous window are still accepted, which gives each token a
// usable life of between half the lifetime and the full lifetime.
type Service struct {
	secret   []byte
	lifetime time.Duration
}

func NewService(secret string, lifetime time.Duration) *Service {
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &Service{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

// Create returns a token bound to the session and action.
func (s *Service) Create(session, action string) string {
	return s.createAt(time.Now(), session, action)
}

// Verify reports whether the token is valid for the session and action
// in the current or previous time window.
func (s *Service) Verify(token, session, action string) bool {
	return s.verifyAt(time.Now(), token, session, action)
}

func (s *Service) createAt(at time.Time, session, action string) string {
	return s.hash(s.tick(at), session, action)
}

func (s *Service) verifyAt(at time.Time, token, session, action string) bool {
	if token == "" {
		return false
	}

	t := s.tick(at)
	if hmac.Equal([]byte(token), []byte(s.hash(t, session, action))) {
		return true
	}
	return hmac.Equal([]byte(token), []byte(s.hash(t-1, session, action)))
}

func (s *Service) tick(at time.Time) int64 {
	half := s.lifetime / 2
	return at.UnixNano() / int64(half)
}

func (s *Service) hash(tick int64, session, action string) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%d|%s|%s", tick, session, action)
	return hex.EncodeToString(mac.Sum(nil))[:tokenLength]
}
