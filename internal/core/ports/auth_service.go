package ports

import (
	"context"

	"github.com/erpdash/user-directory/internal/core/domain"
)

// AuthResult is returned on successful authentication.
type AuthResult struct {
	// Token is the signed bearer token wrapping the session ID.
	Token   string
	Session *domain.Session
	User    *domain.User
}

// AuthService is the session authority: it verifies credentials, issues and
// revokes sessions, and derives the effective role from the live user record.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	// EndSession revokes a session. Ending an already-ended session is not an error.
	EndSession(ctx context.Context, sessionID string) error
	// ResolveSession returns the stored session with its role refreshed from
	// the live user record. Returns domain.ErrSessionNotFound for unknown,
	// revoked, or expired sessions.
	ResolveSession(ctx context.Context, sessionID string) (*domain.Session, error)
	// CurrentRole re-reads the live user's role rather than the value captured
	// at issuance, so role edits take effect on in-flight sessions.
	CurrentRole(ctx context.Context, sessionID string) (domain.Role, error)
}
