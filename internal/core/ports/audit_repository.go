package ports

import (
	"context"
	"time"

	"github.com/99minutos/admin-console/internal/core/domain"
)

// AuditEntry records one edit submitted through the console.
type AuditEntry struct {
	ID       string
	UserID   domain.ID
	Operator string
	Before   domain.User
	After    domain.User
	Outcome  string
	Message  string
	At       time.Time
}

// AuditRepository stores audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *AuditEntry) error
}

// AuditSink accepts audit entries without blocking the caller on storage.
type AuditSink interface {
	Record(entry AuditEntry)
}
