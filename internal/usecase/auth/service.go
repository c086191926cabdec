package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dbhs-alumni/merchstore/internal/domain"
	dommember "github.com/dbhs-alumni/merchstore/internal/domain/member"
	"github.com/dbhs-alumni/merchstore/internal/logger"
)

// Defaults for session and code lifetimes.
const (
	DefaultSessionTTL = 7 * 24 * time.Hour
	DefaultCodeTTL    = 10 * time.Minute

	// DefaultMaxAttempts wrong codes burn the pending code.
	DefaultMaxAttempts = 5

	codeDigits = 6
)

// Config holds sign-in lifetimes.
type Config struct {
	SessionTTL  time.Duration
	CodeTTL     time.Duration
	MaxAttempts int // wrong codes per email within CodeTTL
}

// Service runs the alumni email sign-in flow and resolves sessions.
type Service struct {
	members  Members
	sessions Sessions
	sender   CodeSender
	cfg      Config
	now      func() time.Time
	newCode  func() (string, error)
	newToken func() string
}

// New creates an auth service.
func New(members Members, sessions Sessions, sender CodeSender, cfg Config) *Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = DefaultCodeTTL
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	return &Service{
		members:  members,
		sessions: sessions,
		sender:   sender,
		cfg:      cfg,
		now:      time.Now,
		newCode:  randomCode,
		newToken: uuid.NewString,
	}
}

// BeginSignIn issues a one-time code to an address in the alumni records.
func (s *Service) BeginSignIn(ctx context.Context, email string) error {
	email = dommember.NormalizeEmail(email)
	if email == "" {
		return domain.NewValidationError("email", "is required")
	}

	ok, err := s.members.IsAlumni(ctx, email)
	if err != nil {
		return fmt.Errorf("check alumni records: %w", err)
	}
	if !ok {
		return domain.ErrNotAlumni
	}

	code, err := s.newCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	if err := s.sessions.SaveCode(ctx, email, code, s.cfg.CodeTTL); err != nil {
		return fmt.Errorf("save code: %w", err)
	}
	if err := s.sender.SendCode(ctx, email, code); err != nil {
		return fmt.Errorf("send code: %w", err)
	}
	return nil
}

// Verify checks a one-time code and opens a verified session.
func (s *Service) Verify(ctx context.Context, email, code string) (dommember.Session, error) {
	email = dommember.NormalizeEmail(email)
	if email == "" || code == "" {
		return dommember.Session{}, domain.ErrInvalidCode
	}

	want, err := s.sessions.Code(ctx, email)
	if err != nil {
		return dommember.Session{}, fmt.Errorf("load code: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(want), []byte(code)) != 1 {
		return dommember.Session{}, s.rejectCode(ctx, email)
	}

	now := s.now()
	if _, err := s.members.Touch(ctx, email, now.UnixMilli()); err != nil {
		return dommember.Session{}, fmt.Errorf("record member: %w", err)
	}

	sess := dommember.Session{
		Token:     s.newToken(),
		Email:     email,
		Verified:  true,
		CreatedAt: now.UnixMilli(),
		ExpiresAt: now.Add(s.cfg.SessionTTL).UnixMilli(),
	}
	if err := s.sessions.Save(ctx, sess, s.cfg.SessionTTL); err != nil {
		return dommember.Session{}, fmt.Errorf("save session: %w", err)
	}
	if err := s.sessions.DeleteCode(ctx, email); err != nil {
		logger.FromContext(ctx).Warn("Failed to consume sign-in code", zap.String("email", email), zap.Error(err))
	}
	return sess, nil
}

// rejectCode counts a wrong code and burns the pending one once the member
// runs out of attempts.
func (s *Service) rejectCode(ctx context.Context, email string) error {
	n, err := s.sessions.FailAttempt(ctx, email, s.cfg.CodeTTL)
	if err != nil {
		return fmt.Errorf("count failed attempt: %w", err)
	}
	if n < int64(s.cfg.MaxAttempts) {
		return domain.ErrInvalidCode
	}
	if err := s.sessions.DeleteCode(ctx, email); err != nil {
		return fmt.Errorf("burn sign-in code: %w", err)
	}
	logger.FromContext(ctx).Warn("Sign-in code burned after too many attempts",
		zap.String("email", email), zap.Int64("attempts", n))
	return domain.ErrInvalidCode
}

// Session returns the session behind token. Missing or expired sessions
// yield domain.ErrUnauthenticated.
func (s *Service) Session(ctx context.Context, token string) (dommember.Session, error) {
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return dommember.Session{}, err
	}
	if sess.Expired(s.now()) {
		return dommember.Session{}, domain.ErrUnauthenticated
	}
	return sess, nil
}

// Authenticate returns a session that carries a verified email.
func (s *Service) Authenticate(ctx context.Context, token string) (dommember.Session, error) {
	sess, err := s.Session(ctx, token)
	if err != nil {
		return dommember.Session{}, err
	}
	if !sess.Verified || sess.Email == "" {
		return dommember.Session{}, domain.ErrUnverified
	}
	return sess, nil
}

// SignOut ends the session behind token.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// RequireAdmin fails with domain.ErrForbidden unless email is on the admin
// allow-list.
func (s *Service) RequireAdmin(ctx context.Context, email string) error {
	ok, err := s.members.IsAdmin(ctx, email)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

// SeedAdmins adds configured addresses to the admin allow-list.
func (s *Service) SeedAdmins(ctx context.Context, emails []string) error {
	if len(emails) == 0 {
		return nil
	}
	if err := s.members.GrantAdmin(ctx, emails...); err != nil {
		return fmt.Errorf("seed admins: %w", err)
	}
	return nil
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}
