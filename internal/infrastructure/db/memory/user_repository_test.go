package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/erpdash/user-directory/internal/core/domain"
)

func insertUser(t *testing.T, repo *UserRepository, name, email string, role domain.Role) *domain.User {
	t.Helper()
	u, err := repo.Insert(context.Background(), &domain.User{
		Name:   name,
		Email:  email,
		Role:   role,
		Status: domain.StatusActive,
	})
	if err != nil {
		t.Fatalf("insert %s: %v", email, err)
	}
	return u
}

func TestUserRepository_InsertAssignsSequentialIDs(t *testing.T) {
	repo := NewUserRepository()

	a := insertUser(t, repo, "A", "a@erp.com", domain.RoleAdmin)
	b := insertUser(t, repo, "B", "b@erp.com", domain.RoleEmployee)

	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", a.ID, b.ID)
	}
}

func TestUserRepository_IDsNotReusedAfterDelete(t *testing.T) {
	repo := NewUserRepository()

	insertUser(t, repo, "A", "a@erp.com", domain.RoleAdmin)
	b := insertUser(t, repo, "B", "b@erp.com", domain.RoleEmployee)

	if err := repo.Delete(context.Background(), b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	c := insertUser(t, repo, "C", "c@erp.com", domain.RoleEmployee)
	if c.ID != 3 {
		t.Fatalf("deleted id must not be reused, got %d", c.ID)
	}
}

func TestUserRepository_FindAllInCreationOrder(t *testing.T) {
	repo := NewUserRepository()

	insertUser(t, repo, "A", "a@erp.com", domain.RoleAdmin)
	insertUser(t, repo, "B", "b@erp.com", domain.RoleManager)
	insertUser(t, repo, "C", "c@erp.com", domain.RoleEmployee)

	users, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	for i, u := range users {
		if u.ID != int64(i+1) {
			t.Fatalf("expected creation order, got id %d at position %d", u.ID, i)
		}
	}
}

func TestUserRepository_DuplicateEmailRejected(t *testing.T) {
	repo := NewUserRepository()

	a := insertUser(t, repo, "A", "a@erp.com", domain.RoleAdmin)
	b := insertUser(t, repo, "B", "b@erp.com", domain.RoleEmployee)

	if _, err := repo.Insert(context.Background(), &domain.User{Name: "A2", Email: "a@erp.com"}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken on insert, got %v", err)
	}

	b.Email = a.Email
	if err := repo.Update(context.Background(), b); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken on update, got %v", err)
	}
}

func TestUserRepository_CountByRole(t *testing.T) {
	repo := NewUserRepository()

	insertUser(t, repo, "A", "a@erp.com", domain.RoleAdmin)
	insertUser(t, repo, "B", "b@erp.com", domain.RoleEmployee)
	insertUser(t, repo, "C", "c@erp.com", domain.RoleEmployee)

	n, err := repo.CountByRole(context.Background(), domain.RoleEmployee)
	if err != nil {
		t.Fatalf("CountByRole: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 employees, got %d", n)
	}
}

func TestSeed_LoadsDemoAccounts(t *testing.T) {
	repo := NewUserRepository()
	if err := Seed(context.Background(), repo); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	users, _ := repo.FindAll(context.Background())
	if len(users) != 5 {
		t.Fatalf("expected 5 seeded users, got %d", len(users))
	}

	admin, err := repo.FindByEmail(context.Background(), "admin@erp.com")
	if err != nil {
		t.Fatalf("admin not seeded: %v", err)
	}
	if admin.Role != domain.RoleAdmin || admin.ID != 1 {
		t.Fatalf("unexpected seeded admin: %+v", admin)
	}
	if admin.PasswordHash == "" || admin.PasswordHash == "password123" {
		t.Fatalf("seed must store a hash, got %q", admin.PasswordHash)
	}
}
