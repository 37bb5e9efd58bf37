package ports

import (
	"context"

	"github.com/erpdash/user-directory/internal/core/domain"
)

// CreateUserInput carries all data needed to create a new directory account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	// Status defaults to active when empty.
	Status string
}

// UpdateUserInput carries a partial update. Empty fields are left unchanged.
type UpdateUserInput struct {
	ID     int64
	Name   string
	Email  string
	Role   string
	Status string
}

// DirectoryService is the access-controlled directory: the sole owner of user
// records. Every operation takes the caller's session and is authorized
// against the role policy table before any state is read or written.
type DirectoryService interface {
	List(ctx context.Context, caller *domain.Session) ([]domain.User, error)
	Get(ctx context.Context, caller *domain.Session, id int64) (*domain.User, error)
	Create(ctx context.Context, caller *domain.Session, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, caller *domain.Session, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, caller *domain.Session, id int64) error
}
