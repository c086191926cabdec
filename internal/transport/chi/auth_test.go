package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dbhs-alumni/merchstore/internal/domain"
	dommember "github.com/dbhs-alumni/merchstore/internal/domain/member"
)

type mockSessions struct {
	authenticateFn func(ctx context.Context, token string) (dommember.Session, error)
	requireAdminFn func(ctx context.Context, email string) error
}

func (m *mockSessions) Authenticate(ctx context.Context, token string) (dommember.Session, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, token)
	}
	return dommember.Session{Token: token, Email: "grad@example.org", Verified: true}, nil
}

func (m *mockSessions) RequireAdmin(ctx context.Context, email string) error {
	if m.requireAdminFn != nil {
		return m.requireAdminFn(ctx, email)
	}
	return domain.ErrForbidden
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return errResp
}

func TestSessionMiddleware_MissingHeader_401(t *testing.T) {
	handler := SessionMiddleware(&mockSessions{})(okHandler())

	req := httptest.NewRequest("GET", "/cart", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("missing header: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	if errResp := decodeError(t, rr); errResp.Code != ErrorCodeUnauthenticated {
		t.Errorf("error code: got %s, want %s", errResp.Code, ErrorCodeUnauthenticated)
	}
}

func TestSessionMiddleware_BasicScheme_401(t *testing.T) {
	handler := SessionMiddleware(&mockSessions{})(okHandler())

	req := httptest.NewRequest("GET", "/cart", http.NoBody)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("basic scheme: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestSessionMiddleware_EmptyBearer_401(t *testing.T) {
	handler := SessionMiddleware(&mockSessions{})(okHandler())

	req := httptest.NewRequest("GET", "/cart", http.NoBody)
	req.Header.Set("Authorization", "Bearer   ")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("empty bearer: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestSessionMiddleware_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  ErrorCode
	}{
		{"unknown session", domain.ErrUnauthenticated, http.StatusUnauthorized, ErrorCodeUnauthenticated},
		{"unverified", domain.ErrUnverified, http.StatusUnauthorized, ErrorCodeUnverified},
		{"store failure", errors.New("conn reset"), http.StatusInternalServerError, ErrorCodeInternalError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockSessions{authenticateFn: func(context.Context, string) (dommember.Session, error) {
				return dommember.Session{}, tc.err
			}}
			handler := SessionMiddleware(auth)(okHandler())

			req := httptest.NewRequest("GET", "/cart", http.NoBody)
			req.Header.Set("Authorization", "Bearer tok-1")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.wantCode {
				t.Errorf("status: got %d, want %d", rr.Code, tc.wantCode)
			}
			if errResp := decodeError(t, rr); errResp.Code != tc.wantErr {
				t.Errorf("error code: got %s, want %s", errResp.Code, tc.wantErr)
			}
		})
	}
}

func TestSessionMiddleware_ValidToken_SetsSession(t *testing.T) {
	var gotToken string
	auth := &mockSessions{authenticateFn: func(_ context.Context, token string) (dommember.Session, error) {
		gotToken = token
		return dommember.Session{Token: token, Email: "grad@example.org", Verified: true}, nil
	}}

	var seen dommember.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/cart", http.NoBody)
	req.Header.Set("Authorization", "Bearer tok-1")
	rr := httptest.NewRecorder()
	SessionMiddleware(auth)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("valid token: got %d, want %d", rr.Code, http.StatusOK)
	}
	if gotToken != "tok-1" {
		t.Errorf("token passed = %q", gotToken)
	}
	if seen.Email != "grad@example.org" {
		t.Errorf("session in context = %+v", seen)
	}
}

func TestAdminMiddleware_NoSession_401(t *testing.T) {
	handler := AdminMiddleware(&mockSessions{})(okHandler())

	req := httptest.NewRequest("GET", "/admin/dashboard", http.NoBody)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("no session: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAdminMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"admin", nil, http.StatusOK},
		{"not admin", domain.ErrForbidden, http.StatusForbidden},
		{"lookup failure", errors.New("conn reset"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			admins := &mockSessions{requireAdminFn: func(_ context.Context, email string) error {
				if email != "grad@example.org" {
					t.Errorf("email = %q", email)
				}
				return tc.err
			}}
			handler := AdminMiddleware(admins)(okHandler())

			req := httptest.NewRequest("GET", "/admin/dashboard", http.NoBody)
			sess := dommember.Session{Token: "tok-1", Email: "grad@example.org", Verified: true}
			req = req.WithContext(contextWithSession(req.Context(), sess))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.wantCode {
				t.Errorf("status: got %d, want %d", rr.Code, tc.wantCode)
			}
		})
	}
}
