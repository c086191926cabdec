package member

import (
	"testing"
	"time"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Grad@Example.ORG ", "grad@example.org"},
		{"grad@example.org", "grad@example.org"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.UnixMilli(10_000)
	tests := []struct {
		name      string
		expiresAt int64
		want      bool
	}{
		{"future", 20_000, false},
		{"exactly now", 10_000, true},
		{"past", 5_000, true},
		{"no expiry", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{ExpiresAt: tt.expiresAt}
			if got := s.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}
