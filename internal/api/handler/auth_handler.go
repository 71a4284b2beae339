package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/admin-console/internal/api/middleware"
	"github.com/99minutos/admin-console/internal/api/views"
	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	ttl          time.Duration
	secureCookie bool
	log          zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, ttl time.Duration, secureCookie bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, ttl: ttl, secureCookie: secureCookie, log: log}
}

type loginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

type loginView struct {
	Username string
}

// ShowLogin renders the login form. A signed-in operator goes straight to
// the user list.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	if currentSession(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/users")
	}
	return c.Render(http.StatusOK, "login", views.Page{
		Title:  "Login",
		Notice: popFlash(c),
		Data:   loginView{},
	})
}

// Login handles the login form. On success the session token is set as a
// cookie and the operator is sent to the user list.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, "login", views.Page{Title: "Login", Error: "invalid form", Data: loginView{}})
	}

	token, session, err := h.authService.Login(c.Request().Context(), domain.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		status, msg, known := ErrorStatus(err)
		if !known {
			h.log.Error().Err(err).Msg("login failed")
			msg = "Login failed. Please check your credentials."
		}
		return c.Render(status, "login", views.Page{
			Title:  "Login",
			Error:  msg,
			Fields: FieldErrors(err),
			Data:   loginView{Username: req.Username},
		})
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	setFlash(c, "Welcome, "+session.Name+"! Login successful.")
	return c.Redirect(http.StatusSeeOther, "/users")
}

// Logout ends the session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if ck, err := c.Cookie(middleware.CookieName); err == nil && ck.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), ck.Value); err != nil {
			h.log.Warn().Err(err).Msg("logout: failed to delete session")
		}
	}
	c.SetCookie(&http.Cookie{Name: middleware.CookieName, Path: "/", MaxAge: -1, HttpOnly: true})
	return c.Redirect(http.StatusSeeOther, "/")
}
