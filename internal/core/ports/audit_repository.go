package ports

import (
	"context"

	"github.com/erpdash/user-directory/internal/core/domain"
)

// AuditRepository persists the directory's mutation trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	// FindRecent returns the most recent entries, newest first.
	FindRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

// AuditSink receives audit entries emitted by the directory. Implementations
// may record them asynchronously; delivery failures must never fail the
// originating mutation.
type AuditSink interface {
	Record(entry domain.AuditEntry)
}
