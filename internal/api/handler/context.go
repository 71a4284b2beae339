package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/admin-console/internal/api/middleware"
	"github.com/99minutos/admin-console/internal/core/domain"
)

// currentSession returns the session the Session middleware resolved, or nil
// when the request is anonymous.
func currentSession(c echo.Context) *domain.Session {
	s, _ := c.Get(middleware.SessionKey).(*domain.Session)
	return s
}

// operatorName is the display name of the signed-in operator, empty when
// anonymous.
func operatorName(c echo.Context) string {
	if s := currentSession(c); s != nil {
		return s.Name
	}
	return ""
}
