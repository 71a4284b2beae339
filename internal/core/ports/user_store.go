package ports

import (
	"context"

	"github.com/99minutos/admin-console/internal/core/domain"
)

// UserStoreState is a point-in-time copy of the user store.
type UserStoreState struct {
	Users   []domain.User
	Loading bool
	Err     string
}

// UserStore is the session-wide container of user records.
type UserStore interface {
	Load(ctx context.Context) error
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Snapshot() UserStoreState
	Subscribe(fn func(UserStoreState)) (unsubscribe func())
}
