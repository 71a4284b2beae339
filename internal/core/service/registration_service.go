package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/ports"
	"github.com/99minutos/admin-console/internal/core/validation"
)

const defaultRegistrationRejection = "Registration failed"

// RegistrationService submits self-registrations. It does not write through
// the user store; a successful registration only triggers a list reload.
type RegistrationService struct {
	api       ports.RemoteAPI
	guard     ports.SubmissionGuard
	store     ports.UserStore
	validator *validation.Validator
	log       zerolog.Logger
}

var _ ports.RegistrationService = (*RegistrationService)(nil)

func NewRegistrationService(
	api ports.RemoteAPI,
	guard ports.SubmissionGuard,
	store ports.UserStore,
	v *validation.Validator,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{api: api, guard: guard, store: store, validator: v, log: log}
}

// Register validates reg and sends it to the remote service. Only one
// submission per email may be in flight at a time.
func (s *RegistrationService) Register(ctx context.Context, reg domain.Registration) (*ports.RegisterResult, error) {
	if err := s.validator.Validate(reg); err != nil {
		return nil, err
	}

	key := "register:" + reg.Email
	if s.guard != nil {
		ok, err := s.guard.Acquire(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Msg("submission guard unavailable, continuing")
		} else if !ok {
			return nil, domain.ErrSubmissionInFlight
		} else {
			defer func() {
				if err := s.guard.Release(context.WithoutCancel(ctx), key); err != nil {
					s.log.Warn().Err(err).Msg("failed to release submission guard")
				}
			}()
		}
	}

	res, err := s.api.AddUser(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if res.Status != 200 {
		msg := res.Message
		if msg == "" {
			msg = defaultRegistrationRejection
		}
		return nil, &domain.RejectedError{Kind: domain.ErrRegistrationRejected, Message: msg}
	}

	s.log.Info().Str("email", reg.Email).Msg("user registered")

	if s.store != nil {
		if err := s.store.Load(ctx); err != nil {
			s.log.Warn().Err(err).Msg("user list reload after registration failed")
		}
	}
	return res, nil
}
