package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/ports"
	"github.com/99minutos/admin-console/internal/core/validation"
)

// UserService implements the edit dialog flow: resolve the record being
// edited, validate the form, merge it over the fetched record, write it
// through the store and reload the list.
type UserService struct {
	store     ports.UserStore
	audit     ports.AuditSink
	validator *validation.Validator
	log       zerolog.Logger
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(store ports.UserStore, audit ports.AuditSink, v *validation.Validator, log zerolog.Logger) *UserService {
	return &UserService{store: store, audit: audit, validator: v, log: log}
}

// Refresh reloads the user list.
func (s *UserService) Refresh(ctx context.Context) error {
	return s.store.Load(ctx)
}

// Find returns the locally held record with id.
func (s *UserService) Find(id domain.ID) (*domain.User, error) {
	for _, u := range s.store.Snapshot().Users {
		if u.UserID == id {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrNoTargetSelected
}

// Edit applies edit to the user with id. Validation failures never reach
// the store. A failed reload after a successful edit is logged, not returned.
func (s *UserService) Edit(ctx context.Context, operator string, id domain.ID, edit domain.UserEdit) (*domain.User, error) {
	target, err := s.Find(id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(edit); err != nil {
		return nil, err
	}

	merged := edit.Apply(*target)
	updated, err := s.store.Update(ctx, &merged)
	s.record(operator, *target, merged, err)
	if err != nil {
		return nil, err
	}

	s.log.Info().Stringer("user_id", id).Str("operator", operator).Msg("user updated")

	if err := s.store.Load(ctx); err != nil {
		s.log.Warn().Err(err).Msg("user list reload after update failed")
	}
	return updated, nil
}

func (s *UserService) record(operator string, before, after domain.User, err error) {
	if s.audit == nil {
		return
	}
	entry := ports.AuditEntry{
		ID:       uuid.NewString(),
		UserID:   before.UserID,
		Operator: operator,
		Before:   before,
		After:    after,
		Outcome:  "ok",
		At:       time.Now().UTC(),
	}
	if err != nil {
		entry.Outcome = "error"
		entry.Message = err.Error()
	}
	s.audit.Record(entry)
}
