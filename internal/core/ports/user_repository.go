package ports

import (
	"context"

	"github.com/erpdash/user-directory/internal/core/domain"
)

// UserRepository defines the persistence interface for directory accounts.
//
// Implementations must assign IDs from a monotonic counter that survives
// deletions, enforce email uniqueness atomically on Insert and Update, and
// return FindAll results in ascending ID (creation) order.
type UserRepository interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}
