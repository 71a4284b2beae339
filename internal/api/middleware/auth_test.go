package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/admin-console/internal/core/domain"
)

type stubAuthenticator struct {
	sessions map[string]*domain.Session
	err      error
	calls    int
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*domain.Session, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if sess, ok := s.sessions[token]; ok {
		return sess, nil
	}
	return nil, domain.ErrSessionNotFound
}

func runSession(t *testing.T, auth Authenticator, cookie string) (*domain.Session, int) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *domain.Session
	called := false
	handler := Session(auth, zerolog.Nop())(func(c echo.Context) error {
		called = true
		got, _ = c.Get(SessionKey).(*domain.Session)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	return got, rec.Code
}

func TestSessionMiddleware_ValidCookie(t *testing.T) {
	auth := &stubAuthenticator{sessions: map[string]*domain.Session{"tok": {ID: "s1", Name: "alice"}}}

	got, code := runSession(t, auth, "tok")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if got == nil || got.Name != "alice" {
		t.Fatalf("session not set: %+v", got)
	}
}

func TestSessionMiddleware_NoCookie(t *testing.T) {
	auth := &stubAuthenticator{}

	got, _ := runSession(t, auth, "")
	if got != nil {
		t.Fatalf("expected anonymous request")
	}
	if auth.calls != 0 {
		t.Fatalf("authenticator must not be called without a cookie")
	}
}

func TestSessionMiddleware_UnknownToken(t *testing.T) {
	got, code := runSession(t, &stubAuthenticator{}, "stale")
	if got != nil || code != http.StatusOK {
		t.Fatalf("expected anonymous pass-through, got %+v %d", got, code)
	}
}

func TestSessionMiddleware_StoreFailure(t *testing.T) {
	got, code := runSession(t, &stubAuthenticator{err: errors.New("redis down")}, "tok")
	if got != nil || code != http.StatusOK {
		t.Fatalf("expected anonymous pass-through, got %+v %d", got, code)
	}
}
