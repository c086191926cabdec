package auth

import (
	"context"
	"time"

	dommember "github.com/dbhs-alumni/merchstore/internal/domain/member"
)

// Members reads the alumni records and the admin allow-list.
type Members interface {
	IsAlumni(ctx context.Context, email string) (bool, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	GrantAdmin(ctx context.Context, emails ...string) error
	Touch(ctx context.Context, email string, now int64) (dommember.Member, error)
}

// Sessions stores member sessions and pending sign-in codes.
type Sessions interface {
	Save(ctx context.Context, s dommember.Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (dommember.Session, error)
	Delete(ctx context.Context, token string) error
	SaveCode(ctx context.Context, email, code string, ttl time.Duration) error
	Code(ctx context.Context, email string) (string, error)
	DeleteCode(ctx context.Context, email string) error
	FailAttempt(ctx context.Context, email string, window time.Duration) (int64, error)
}

// CodeSender delivers a one-time sign-in code to a member.
type CodeSender interface {
	SendCode(ctx context.Context, email, code string) error
}
