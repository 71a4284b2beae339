package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/admin-console/internal/api/views"
	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/ports"
	"github.com/99minutos/admin-console/internal/core/validation"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = views.MustRenderer()
	e.Validator = NewValidator(validation.New())
	return e
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

type stubAuthService struct {
	loginFn   func(ctx context.Context, creds domain.Credentials) (string, *domain.Session, error)
	loggedOut []string
}

func (s *stubAuthService) Login(ctx context.Context, creds domain.Credentials) (string, *domain.Session, error) {
	return s.loginFn(ctx, creds)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return nil
}

type stubReferenceService struct {
	states []domain.State
	cities map[domain.ID][]domain.City
	err    error
}

func (s *stubReferenceService) States(context.Context) ([]domain.State, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.states, nil
}

func (s *stubReferenceService) Cities(_ context.Context, stateID domain.ID) ([]domain.City, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cities[stateID], nil
}

type stubRegistrationService struct {
	registerFn func(ctx context.Context, reg domain.Registration) (*ports.RegisterResult, error)
}

func (s *stubRegistrationService) Register(ctx context.Context, reg domain.Registration) (*ports.RegisterResult, error) {
	return s.registerFn(ctx, reg)
}

// stubUserStore holds a fixed record set and a sticky error message.
type stubUserStore struct {
	users []domain.User
	err   string
}

func (s *stubUserStore) Load(context.Context) error { return nil }

func (s *stubUserStore) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (s *stubUserStore) Snapshot() ports.UserStoreState {
	return ports.UserStoreState{Users: append([]domain.User(nil), s.users...), Err: s.err}
}

func (s *stubUserStore) Subscribe(func(ports.UserStoreState)) func() { return func() {} }

type stubUserService struct {
	store      *stubUserStore
	refreshN   int
	refreshErr error
	editFn   func(ctx context.Context, operator string, id domain.ID, edit domain.UserEdit) (*domain.User, error)
}

func (s *stubUserService) Refresh(context.Context) error {
	s.refreshN++
	return s.refreshErr
}

func (s *stubUserService) Find(id domain.ID) (*domain.User, error) {
	for _, u := range s.store.users {
		if u.UserID == id {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrNoTargetSelected
}

func (s *stubUserService) Edit(ctx context.Context, operator string, id domain.ID, edit domain.UserEdit) (*domain.User, error) {
	return s.editFn(ctx, operator, id, edit)
}

var sampleStates = []domain.State{{ID: 1, Name: "Goa"}, {ID: 2, Name: "Kerala"}}

var sampleCities = map[domain.ID][]domain.City{
	1: {{ID: 10, City: "Panaji", StateID: 1}},
	2: {{ID: 20, City: "Kochi", StateID: 2}},
}

func sampleUsers() []domain.User {
	return []domain.User{
		{UserID: 1, Name: "Alice", Email: "alice@x.com", Mobile: "1111111111", Password: "s3cret", RoleID: domain.RoleAdmin, Status: domain.StatusActive, StateID: 1, CityID: 10},
		{UserID: 2, Name: "Bob", Email: "b@x.com", Mobile: "2222222222", RoleID: domain.RoleUser, Status: domain.StatusInactive, StateID: 2, CityID: 20},
		{UserID: 3, Name: "Alina", Email: "alina@x.com", Mobile: "3333333333", RoleID: domain.RoleUser, Status: domain.StatusActive, StateID: 1, CityID: 10},
	}
}
