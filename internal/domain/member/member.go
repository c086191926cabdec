// Package member models alumni accounts and their sign-in sessions.
package member

import (
	"strings"
	"time"
)

// Member is a verified alumni account.
type Member struct {
	Email      string
	CreatedAt  int64 // unix millis
	LastSignIn int64 // unix millis
}

// Session is an authenticated member session.
type Session struct {
	Token     string `json:"-"`
	Email     string `json:"email"`
	Verified  bool   `json:"verified"`
	CreatedAt int64  `json:"created_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt > 0 && now.UnixMilli() >= s.ExpiresAt
}

// NormalizeEmail lower-cases and trims an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
