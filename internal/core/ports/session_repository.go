package ports

import (
	"context"
	"time"

	"github.com/99minutos/admin-console/internal/core/domain"
)

// SessionRepository persists signed-in operator sessions.
type SessionRepository interface {
	Save(ctx context.Context, session *domain.Session, ttl time.Duration) error
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// SubmissionGuard marks a form submission as in flight so that a duplicate
// submission for the same key is refused until the first one resolves.
type SubmissionGuard interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
