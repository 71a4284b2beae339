// Package api wires the console's HTTP surface.
//
// @title        Admin Console API
// @version      1.0
// @description  JSON endpoints of the admin console: reference data and user management.
// @BasePath     /
package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/admin-console/docs"
	"github.com/99minutos/admin-console/internal/api/handler"
	"github.com/99minutos/admin-console/internal/api/middleware"
	"github.com/99minutos/admin-console/internal/api/views"
	"github.com/99minutos/admin-console/internal/core/ports"
	"github.com/99minutos/admin-console/internal/core/validation"
)

// Deps are the services the router exposes.
type Deps struct {
	Auth         ports.AuthService
	Registration ports.RegistrationService
	Reference    ports.ReferenceService
	Users        ports.UserService
	Store        ports.UserStore
	Validator    *validation.Validator
	Checks       map[string]handler.Check
	Log          zerolog.Logger

	PageSize     int
	SessionTTL   time.Duration
	SecureCookie bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator(d.Validator)
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("admin_console"))
	e.Use(middleware.Session(d.Auth, d.Log))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.SessionTTL, d.SecureCookie, d.Log)
	userHandler := handler.NewUserHandler(d.Users, d.Store, d.Reference, d.PageSize, d.Log)
	registerHandler := handler.NewRegisterHandler(d.Registration, d.Reference, d.Log)
	referenceHandler := handler.NewReferenceHandler(d.Reference)

	// --- Views ---
	e.GET("/", authHandler.ShowLogin)
	e.POST("/", authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.GET("/users", userHandler.List)
	e.GET("/users/:id/edit", userHandler.ShowEdit)
	e.POST("/users/:id/edit", userHandler.Edit)
	e.GET("/register", registerHandler.Show)
	e.POST("/register", registerHandler.Submit)

	// --- JSON API ---
	apiGroup := e.Group("/api")
	apiGroup.GET("/states", referenceHandler.States)
	apiGroup.GET("/cities", referenceHandler.Cities)
	apiGroup.GET("/users", userHandler.ListJSON)
	apiGroup.PUT("/users/:id", userHandler.UpdateJSON)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes and metrics (no session required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}

// requestLogger logs one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
