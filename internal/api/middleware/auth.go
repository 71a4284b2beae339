package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/admin-console/internal/core/domain"
)

const (
	// CookieName is the cookie carrying the signed session token.
	CookieName = "admin_session"
	// SessionKey is the echo context key the resolved *domain.Session is
	// stored under.
	SessionKey = "session"
)

// Authenticator resolves a session token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
}

// Session resolves the session cookie and injects the session into the
// context. Requests without a valid session pass through anonymously; the
// remote service owns authorization.
func Session(auth Authenticator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(CookieName)
			if err != nil || ck.Value == "" {
				return next(c)
			}

			session, err := auth.Authenticate(c.Request().Context(), ck.Value)
			if err != nil {
				if !errors.Is(err, domain.ErrSessionNotFound) {
					log.Warn().Err(err).Msg("session lookup failed")
				}
				return next(c)
			}

			c.Set(SessionKey, session)
			return next(c)
		}
	}
}
