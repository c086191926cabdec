package chi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/dbhs-alumni/merchstore/internal/domain"
	dommember "github.com/dbhs-alumni/merchstore/internal/domain/member"
	"github.com/dbhs-alumni/merchstore/internal/logger"
)

// SessionAuthenticator resolves a bearer token to a verified member session.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (dommember.Session, error)
}

// AdminChecker fails unless email is on the admin allow-list.
type AdminChecker interface {
	RequireAdmin(ctx context.Context, email string) error
}

type sessionCtxKey struct{}

func contextWithSession(ctx context.Context, s dommember.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// SessionFromContext returns the session placed by SessionMiddleware.
func SessionFromContext(ctx context.Context) (dommember.Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(dommember.Session)
	return s, ok
}

// SessionMiddleware requires a Bearer token naming a verified member session.
func SessionMiddleware(auth SessionAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthenticated,
					"authorization header must carry a Bearer session token")
				return
			}

			s, err := auth.Authenticate(r.Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrUnverified):
				writeError(w, http.StatusUnauthorized, ErrorCodeUnverified, domain.ErrUnverified.Error())
				return
			case errors.Is(err, domain.ErrUnauthenticated):
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthenticated, domain.ErrUnauthenticated.Error())
				return
			default:
				logger.FromContext(r.Context()).Error("session lookup failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
				return
			}

			ctx := logger.WithFields(r.Context(), zap.String("member", s.Email))
			next.ServeHTTP(w, r.WithContext(contextWithSession(ctx, s)))
		})
	}
}

// AdminMiddleware requires the session member to be on the admin allow-list.
// Must run after SessionMiddleware.
func AdminMiddleware(admins AdminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := SessionFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthenticated, domain.ErrUnauthenticated.Error())
				return
			}

			err := admins.RequireAdmin(r.Context(), s.Email)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrForbidden):
				writeError(w, http.StatusForbidden, ErrorCodeForbidden, domain.ErrForbidden.Error())
				return
			default:
				logger.FromContext(r.Context()).Error("admin check failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	const bearerPrefix = "Bearer "
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(bearerPrefix):])
	return token, token != ""
}
