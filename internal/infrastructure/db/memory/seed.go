package memory

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/erpdash/user-directory/internal/core/domain"
)

// Seed loads the demo accounts into the repository. All of them share the
// password "password123". Intended for local development only.
func Seed(ctx context.Context, repo *UserRepository) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	seed := []domain.User{
		{Name: "John Admin", Email: "admin@erp.com", Role: domain.RoleAdmin, Status: domain.StatusActive},
		{Name: "Jane Manager", Email: "manager@erp.com", Role: domain.RoleManager, Status: domain.StatusActive},
		{Name: "Bob Employee", Email: "employee@erp.com", Role: domain.RoleEmployee, Status: domain.StatusActive},
		{Name: "Alice Smith", Email: "alice@erp.com", Role: domain.RoleEmployee, Status: domain.StatusInactive},
		{Name: "Mike Johnson", Email: "mike@erp.com", Role: domain.RoleEmployee, Status: domain.StatusActive},
	}

	for i := range seed {
		seed[i].PasswordHash = string(hash)
		seed[i].CreatedAt = now
		seed[i].UpdatedAt = now
		if _, err := repo.Insert(ctx, &seed[i]); err != nil {
			return err
		}
	}
	return nil
}
