package ports

import (
	"context"
	"encoding/json"

	"github.com/99minutos/admin-console/internal/core/domain"
)

// LoginResult is the remote service's answer to a login attempt.
type LoginResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    json.RawMessage `json:"user,omitempty"`
}

// RegisterResult is the remote service's answer to a registration.
// Status 200 means the user was created.
type RegisterResult struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// RemoteAPI is the opaque service that owns users and reference data.
// Implementations return *domain.APIError for non-success HTTP statuses and
// errors wrapping domain.ErrTransport when the service cannot be reached.
type RemoteAPI interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	States(ctx context.Context) ([]domain.State, error)
	Cities(ctx context.Context, stateID domain.ID) ([]domain.City, error)
	AddUser(ctx context.Context, reg domain.Registration) (*RegisterResult, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	EditUser(ctx context.Context, user domain.User) (*domain.User, error)
}
