package cli

import (
	"github.com/rs/zerolog"

	"github.com/99minutos/admin-console/internal/core/ports"
	"github.com/99minutos/admin-console/internal/core/service"
	"github.com/99minutos/admin-console/internal/core/store"
	"github.com/99minutos/admin-console/internal/core/validation"
	"github.com/99minutos/admin-console/internal/infrastructure/remoteapi"
	"github.com/99minutos/admin-console/pkg/logger"
)

// app is the core wiring shared by the one-shot commands. It needs no Redis
// or Mongo: sessions and audit belong to the served console.
type app struct {
	api          *remoteapi.Client
	store        *store.UserStore
	validator    *validation.Validator
	users        ports.UserService
	registration ports.RegistrationService
	reference    ports.ReferenceService
	log          zerolog.Logger
}

func newApp(opts *options) *app {
	log := logger.For("cli")
	api := remoteapi.New(opts.cfg.API.BaseURL, remoteapi.WithTimeout(opts.cfg.API.Timeout))
	st := store.New(api, log)
	v := validation.New()

	return &app{
		api:          api,
		store:        st,
		validator:    v,
		users:        service.NewUserService(st, nil, v, log),
		registration: service.NewRegistrationService(api, nil, nil, v, log),
		reference:    service.NewReferenceService(api),
		log:          log,
	}
}
