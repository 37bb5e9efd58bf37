package ports

import (
	"context"

	"github.com/erpdash/user-directory/internal/core/domain"
)

// SessionStore holds active sessions keyed by session ID.
//
// Find returns domain.ErrSessionNotFound for unknown, revoked, or expired
// sessions. Delete is idempotent: removing an absent session is not an error.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
