// Package store holds the in-memory user list shared by every view of the
// console. It is created once at startup and injected where needed.
//
// Loads are not serialized: when two loads overlap, whichever response
// resolves last determines the record set.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/ports"
	"github.com/99minutos/admin-console/internal/pkg/metrics"
)

// UserStore is the authoritative client-side copy of the remote user list.
type UserStore struct {
	api ports.RemoteAPI
	log zerolog.Logger

	mu       sync.RWMutex
	users    []domain.User
	inflight int
	errMsg   string

	subMu   sync.Mutex
	subs    map[int]func(ports.UserStoreState)
	nextSub int
}

var _ ports.UserStore = (*UserStore)(nil)

// New returns an empty store backed by api.
func New(api ports.RemoteAPI, log zerolog.Logger) *UserStore {
	return &UserStore{
		api:   api,
		log:   log,
		users: []domain.User{},
		subs:  make(map[int]func(ports.UserStoreState)),
	}
}

// Load replaces the whole record set with the remote list. On failure the
// previous records are kept and the message is recorded as the store error.
// A successful load does not clear a previously recorded error.
func (s *UserStore) Load(ctx context.Context) error {
	s.begin()

	users, err := s.api.ListUsers(ctx)

	s.mu.Lock()
	s.inflight--
	if err != nil {
		s.errMsg = err.Error()
		s.mu.Unlock()
		metrics.StoreTransitionsTotal.WithLabelValues("load", "error").Inc()
		s.log.Warn().Err(err).Msg("user list load failed, keeping previous records")
		return err
	}
	s.users = append(make([]domain.User, 0, len(users)), users...)
	state := s.snapshotLocked()
	s.mu.Unlock()

	metrics.StoreTransitionsTotal.WithLabelValues("load", "ok").Inc()
	metrics.StoreRecords.Set(float64(len(state.Users)))
	s.log.Debug().Int("records", len(state.Users)).Msg("user list loaded")

	s.notify(state)
	return nil
}

// Update sends the already merged record to the remote service and, on
// success, replaces the local record with the same userId by the server's
// representation. If no such record is held locally nothing changes, but the
// server's representation is still returned.
func (s *UserStore) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrNoTargetSelected
	}

	s.begin()

	updated, err := s.api.EditUser(ctx, *user)

	s.mu.Lock()
	s.inflight--
	if err != nil {
		s.mu.Unlock()
		metrics.StoreTransitionsTotal.WithLabelValues("update", "error").Inc()
		return nil, toUpdateError(err)
	}

	idx := s.indexLocked(updated.UserID)
	if idx < 0 {
		s.mu.Unlock()
		metrics.StoreTransitionsTotal.WithLabelValues("update", "miss").Inc()
		s.log.Debug().Stringer("user_id", updated.UserID).Msg("updated user not held locally")
		return updated, nil
	}
	s.users[idx] = *updated
	state := s.snapshotLocked()
	s.mu.Unlock()

	metrics.StoreTransitionsTotal.WithLabelValues("update", "ok").Inc()
	s.notify(state)
	return updated, nil
}

// Snapshot returns a copy of the current state.
func (s *UserStore) Snapshot() ports.UserStoreState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to be called with the new state after every
// transition that changed the record set. The returned func unregisters it.
func (s *UserStore) Subscribe(fn func(ports.UserStoreState)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *UserStore) begin() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *UserStore) indexLocked(id domain.ID) int {
	for i := range s.users {
		if s.users[i].UserID == id {
			return i
		}
	}
	return -1
}

func (s *UserStore) snapshotLocked() ports.UserStoreState {
	return ports.UserStoreState{
		Users:   append(make([]domain.User, 0, len(s.users)), s.users...),
		Loading: s.inflight > 0,
		Err:     s.errMsg,
	}
}

func (s *UserStore) notify(state ports.UserStoreState) {
	s.subMu.Lock()
	fns := make([]func(ports.UserStoreState), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}

func toUpdateError(err error) error {
	out := &domain.UpdateError{Message: domain.ErrUpdateFailed.Error(), Cause: err}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		out.Payload = apiErr.Payload
		if apiErr.Message != "" {
			out.Message = apiErr.Message
		}
	}
	return out
}
