package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Remote API stub
// ---------------------------------------------------------------------------

type stubAPI struct {
	loginFn   func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	statesFn  func(ctx context.Context) ([]domain.State, error)
	citiesFn  func(ctx context.Context, stateID domain.ID) ([]domain.City, error)
	addUserFn func(ctx context.Context, reg domain.Registration) (*ports.RegisterResult, error)
	listFn    func(ctx context.Context) ([]domain.User, error)
	editFn    func(ctx context.Context, u domain.User) (*domain.User, error)

	calls map[string]int
}

func (s *stubAPI) hit(op string) {
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[op]++
}

func (s *stubAPI) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	s.hit("login")
	return s.loginFn(ctx, username, password)
}

func (s *stubAPI) States(ctx context.Context) ([]domain.State, error) {
	s.hit("states")
	return s.statesFn(ctx)
}

func (s *stubAPI) Cities(ctx context.Context, stateID domain.ID) ([]domain.City, error) {
	s.hit("cities")
	return s.citiesFn(ctx, stateID)
}

func (s *stubAPI) AddUser(ctx context.Context, reg domain.Registration) (*ports.RegisterResult, error) {
	s.hit("add_user")
	return s.addUserFn(ctx, reg)
}

func (s *stubAPI) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.hit("list")
	if s.listFn == nil {
		return []domain.User{}, nil
	}
	return s.listFn(ctx)
}

func (s *stubAPI) EditUser(ctx context.Context, u domain.User) (*domain.User, error) {
	s.hit("edit")
	return s.editFn(ctx, u)
}

// ---------------------------------------------------------------------------
// Session repository / guard / audit stubs
// ---------------------------------------------------------------------------

type stubSessions struct {
	byID    map[string]*domain.Session
	saveErr error
	lastTTL time.Duration
}

func newStubSessions() *stubSessions {
	return &stubSessions{byID: make(map[string]*domain.Session)}
}

func (r *stubSessions) Save(_ context.Context, s *domain.Session, ttl time.Duration) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	clone := *s
	r.byID[s.ID] = &clone
	r.lastTTL = ttl
	return nil
}

func (r *stubSessions) Find(_ context.Context, id string) (*domain.Session, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSessions) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type stubGuard struct {
	mu       sync.Mutex
	held     map[string]bool
	err      error
	released []string
}

func (g *stubGuard) Acquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return false, g.err
	}
	if g.held == nil {
		g.held = make(map[string]bool)
	}
	if g.held[key] {
		return false, nil
	}
	g.held[key] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, key)
	g.released = append(g.released, key)
	return nil
}

type stubAudit struct {
	entries []ports.AuditEntry
}

func (a *stubAudit) Record(e ports.AuditEntry) { a.entries = append(a.entries, e) }

var errBoom = errors.New("boom")
