package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/erpdash/user-directory/internal/core/domain"
)

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (r *stubUserRepo) add(name, email, password string, role domain.Role, status domain.Status) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &domain.User{
		ID:           r.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
	}
	r.users[u.ID] = u
	r.nextID++
	return u
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindAll(context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for id := int64(1); id < r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Insert(_ context.Context, u *domain.User) (*domain.User, error) {
	stored := cloneUser(u)
	stored.ID = r.nextID
	r.nextID++
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type stubSessionStore struct {
	sessions map[string]*domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, session *domain.Session) error {
	clone := *session
	s.sessions[session.ID] = &clone
	return nil
}

func (s *stubSessionStore) Find(_ context.Context, id string) (*domain.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func newAuthService(repo *stubUserRepo, store *stubSessionStore) *AuthService {
	return NewAuthService(repo, store, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	repo := newStubUserRepo()
	store := newStubSessionStore()
	user := repo.add("John Admin", "admin@erp.com", "password123", domain.RoleAdmin, domain.StatusActive)
	svc := newAuthService(repo, store)

	result, err := svc.Authenticate(context.Background(), "admin@erp.com", "password123")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if result.User == nil || result.User.ID != user.ID {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if result.Session.Role != domain.RoleAdmin {
		t.Fatalf("unexpected session role: %s", result.Session.Role)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sid"] != result.Session.ID {
		t.Fatalf("expected sid %s, got %v", result.Session.ID, claims["sid"])
	}

	if _, err := store.Find(context.Background(), result.Session.ID); err != nil {
		t.Fatalf("session not stored: %v", err)
	}
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	repo.add("John Admin", "admin@erp.com", "password123", domain.RoleAdmin, domain.StatusActive)
	svc := newAuthService(repo, newStubSessionStore())

	if _, err := svc.Authenticate(context.Background(), "admin@erp.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubSessionStore())

	// Unknown email and wrong password must be indistinguishable.
	if _, err := svc.Authenticate(context.Background(), "ghost@erp.com", "password123"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_InactiveAccount(t *testing.T) {
	repo := newStubUserRepo()
	repo.add("Alice Smith", "alice@erp.com", "password123", domain.RoleEmployee, domain.StatusInactive)
	store := newStubSessionStore()
	svc := newAuthService(repo, store)

	if _, err := svc.Authenticate(context.Background(), "alice@erp.com", "password123"); err != domain.ErrAccountInactive {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
	if len(store.sessions) != 0 {
		t.Fatalf("no session should be created, found %d", len(store.sessions))
	}
}

func TestAuthService_EndSession_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	repo.add("John Admin", "admin@erp.com", "password123", domain.RoleAdmin, domain.StatusActive)
	store := newStubSessionStore()
	svc := newAuthService(repo, store)

	result, err := svc.Authenticate(context.Background(), "admin@erp.com", "password123")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	if err := svc.EndSession(context.Background(), result.Session.ID); err != nil {
		t.Fatalf("first EndSession failed: %v", err)
	}
	if err := svc.EndSession(context.Background(), result.Session.ID); err != nil {
		t.Fatalf("second EndSession should succeed, got %v", err)
	}
	if _, err := svc.ResolveSession(context.Background(), result.Session.ID); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound after logout, got %v", err)
	}
}

func TestAuthService_ResolveSession_LiveRole(t *testing.T) {
	repo := newStubUserRepo()
	user := repo.add("Bob Employee", "employee@erp.com", "password123", domain.RoleEmployee, domain.StatusActive)
	store := newStubSessionStore()
	svc := newAuthService(repo, store)

	result, err := svc.Authenticate(context.Background(), "employee@erp.com", "password123")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	// Promote the user after the session was issued.
	repo.users[user.ID].Role = domain.RoleManager

	role, err := svc.CurrentRole(context.Background(), result.Session.ID)
	if err != nil {
		t.Fatalf("CurrentRole failed: %v", err)
	}
	if role != domain.RoleManager {
		t.Fatalf("expected live role manager, got %s", role)
	}
}

func TestAuthService_ResolveSession_DeactivatedUser(t *testing.T) {
	repo := newStubUserRepo()
	user := repo.add("Mike Johnson", "mike@erp.com", "password123", domain.RoleEmployee, domain.StatusActive)
	store := newStubSessionStore()
	svc := newAuthService(repo, store)

	result, err := svc.Authenticate(context.Background(), "mike@erp.com", "password123")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	repo.users[user.ID].Status = domain.StatusInactive

	if _, err := svc.ResolveSession(context.Background(), result.Session.ID); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound for deactivated user, got %v", err)
	}
}
