package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dbhs-alumni/merchstore/internal/db"
	"github.com/dbhs-alumni/merchstore/internal/domain"
	dommember "github.com/dbhs-alumni/merchstore/internal/domain/member"
)

// store is the consumer interface for sessions and one-time codes (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Repo stores sessions and pending sign-in codes with expiry.
type Repo struct {
	store store
}

// New creates a session repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save stores a session until ttl elapses.
func (r *Repo) Save(ctx context.Context, s dommember.Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.store.SetWithTTL(ctx, sessionKey(s.Token), data, ttl); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Get returns the session for token or domain.ErrUnauthenticated.
func (r *Repo) Get(ctx context.Context, token string) (dommember.Session, error) {
	if token == "" {
		return dommember.Session{}, domain.ErrUnauthenticated
	}
	raw, err := r.store.Get(ctx, sessionKey(token))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return dommember.Session{}, domain.ErrUnauthenticated
		}
		return dommember.Session{}, fmt.Errorf("get session: %w", err)
	}
	var s dommember.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return dommember.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	s.Token = token
	return s, nil
}

// Delete ends a session. Deleting an unknown token is not an error.
func (r *Repo) Delete(ctx context.Context, token string) error {
	if err := r.store.Del(ctx, sessionKey(token)); err != nil {
		return fmt.Errorf("del session: %w", err)
	}
	return nil
}

// SaveCode stores the pending one-time code for email.
func (r *Repo) SaveCode(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := r.store.SetWithTTL(ctx, codeKey(email), []byte(code), ttl); err != nil {
		return fmt.Errorf("set sign-in code: %w", err)
	}
	return nil
}

// Code returns the pending code for email or domain.ErrInvalidCode.
func (r *Repo) Code(ctx context.Context, email string) (string, error) {
	raw, err := r.store.Get(ctx, codeKey(email))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", domain.ErrInvalidCode
		}
		return "", fmt.Errorf("get sign-in code: %w", err)
	}
	return string(raw), nil
}

// DeleteCode consumes the pending code for email and forgets failed attempts.
func (r *Repo) DeleteCode(ctx context.Context, email string) error {
	if err := r.store.Del(ctx, codeKey(email)); err != nil {
		return fmt.Errorf("del sign-in code: %w", err)
	}
	if err := r.store.Del(ctx, attemptsKey(email)); err != nil {
		return fmt.Errorf("del sign-in attempts: %w", err)
	}
	return nil
}

// FailAttempt counts a wrong code for email and returns the failures so far.
// The count expires window after the first failure and survives reissued
// codes, so asking for a new code does not reset it.
func (r *Repo) FailAttempt(ctx context.Context, email string, window time.Duration) (int64, error) {
	key := attemptsKey(email)
	n, err := r.store.IncrBy(ctx, key, 1)
	if err != nil {
		return 0, fmt.Errorf("count sign-in attempt: %w", err)
	}
	if err := r.store.Expire(ctx, key, window, true); err != nil {
		return 0, fmt.Errorf("expire sign-in attempts: %w", err)
	}
	return n, nil
}

// Key patterns: merch:session:{token}, merch:otp:{email}, merch:otp_fail:{email}

func sessionKey(token string) string { return domain.KeyPrefix + "session:" + token }

func codeKey(email string) string { return domain.KeyPrefix + "otp:" + email }

func attemptsKey(email string) string { return domain.KeyPrefix + "otp_fail:" + email }
