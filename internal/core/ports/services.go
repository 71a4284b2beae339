package ports

import (
	"context"

	"github.com/99minutos/admin-console/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, creds domain.Credentials) (string, *domain.Session, error)
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
}

type RegistrationService interface {
	Register(ctx context.Context, reg domain.Registration) (*RegisterResult, error)
}

type ReferenceService interface {
	States(ctx context.Context) ([]domain.State, error)
	Cities(ctx context.Context, stateID domain.ID) ([]domain.City, error)
}

// UserService drives the edit flow on top of the user store.
type UserService interface {
	Refresh(ctx context.Context) error
	Find(id domain.ID) (*domain.User, error)
	Edit(ctx context.Context, operator string, id domain.ID, edit domain.UserEdit) (*domain.User, error)
}
