package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/erpdash/user-directory/internal/api/metrics"
	"github.com/erpdash/user-directory/internal/core/domain"
	"github.com/erpdash/user-directory/internal/core/ports"
)

// DirectoryService owns the collection of user records. Every operation is
// authorized against the role policy table before any state is touched, and
// validation completes before any field is written.
//
// A single RWMutex serializes writers against each other and against readers,
// so ID assignment and duplicate-email checks never race and no reader
// observes a partially-applied write.
type DirectoryService struct {
	mu    sync.RWMutex
	repo  ports.UserRepository
	audit ports.AuditSink
	log   zerolog.Logger
}

func NewDirectoryService(repo ports.UserRepository, audit ports.AuditSink, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{repo: repo, audit: audit, log: log}
}

// List returns the users visible to the caller, in creation (ID) order.
func (s *DirectoryService) List(ctx context.Context, caller *domain.Session) ([]domain.User, error) {
	defer observe("list", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	users, err := s.repo.FindAll(ctx)
	if err != nil {
		metrics.OpsTotal.WithLabelValues("list", opResult(err)).Inc()
		return nil, err
	}

	scope := policyFor(caller.Role).Scope
	if scope == nil {
		metrics.OpsTotal.WithLabelValues("list", "forbidden").Inc()
		return nil, domain.ErrForbidden
	}

	visible := make([]domain.User, 0, len(users))
	for _, u := range users {
		if scope(caller.UserID, &u) {
			visible = append(visible, u)
		}
	}

	metrics.OpsTotal.WithLabelValues("list", "ok").Inc()
	return visible, nil
}

// Get returns a single record when it lies within the caller's scope.
func (s *DirectoryService) Get(ctx context.Context, caller *domain.Session, id int64) (*domain.User, error) {
	defer observe("get", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		metrics.OpsTotal.WithLabelValues("get", opResult(err)).Inc()
		return nil, err
	}

	scope := policyFor(caller.Role).Scope
	if scope == nil || !scope(caller.UserID, user) {
		metrics.OpsTotal.WithLabelValues("get", "forbidden").Inc()
		return nil, domain.ErrForbidden
	}

	metrics.OpsTotal.WithLabelValues("get", "ok").Inc()
	return user, nil
}

// Create adds a new account. Admin only. The repository assigns the ID from
// its monotonic counter.
func (s *DirectoryService) Create(ctx context.Context, caller *domain.Session, input ports.CreateUserInput) (*domain.User, error) {
	defer observe("create", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	if !policyFor(caller.Role).CanCreate {
		metrics.OpsTotal.WithLabelValues("create", "forbidden").Inc()
		return nil, domain.ErrForbidden
	}

	if input.Name == "" || input.Email == "" {
		metrics.OpsTotal.WithLabelValues("create", "validation").Inc()
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}

	role := domain.Role(input.Role)
	if !role.Valid() {
		metrics.OpsTotal.WithLabelValues("create", "validation").Inc()
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
	}

	status := domain.StatusActive
	if input.Status != "" {
		status = domain.Status(input.Status)
		if !status.Valid() {
			metrics.OpsTotal.WithLabelValues("create", "validation").Inc()
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, input.Status)
		}
	}

	existing, err := s.repo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil && existing != nil:
		metrics.OpsTotal.WithLabelValues("create", "validation").Inc()
		return nil, domain.ErrEmailTaken
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		metrics.OpsTotal.WithLabelValues("create", opResult(err)).Inc()
		return nil, err
	}

	var hash string
	if input.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = string(h)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		metrics.OpsTotal.WithLabelValues("create", opResult(err)).Inc()
		s.log.Error().Err(err).Str("email", input.Email).Msg("failed to create user")
		return nil, err
	}

	metrics.OpsTotal.WithLabelValues("create", "ok").Inc()
	s.log.Info().Int64("id", created.ID).Str("role", string(created.Role)).Msg("user created")
	s.recordAudit(caller, domain.AuditUserCreated, created.ID)

	return created, nil
}

// Update applies a partial update. Admins may change any field of any record;
// employees may change only their own name and email. Empty input fields are
// left unchanged.
func (s *DirectoryService) Update(ctx context.Context, caller *domain.Session, input ports.UpdateUserInput) (*domain.User, error) {
	defer observe("update", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		metrics.OpsTotal.WithLabelValues("update", opResult(err)).Inc()
		return nil, err
	}

	pol := policyFor(caller.Role)
	switch {
	case pol.CanUpdateAny:
		// no restriction
	case pol.CanUpdateOwnContact && input.ID == caller.UserID:
		// role and status of the own record are off-limits
		if (input.Role != "" && domain.Role(input.Role) != existing.Role) ||
			(input.Status != "" && domain.Status(input.Status) != existing.Status) {
			metrics.OpsTotal.WithLabelValues("update", "forbidden").Inc()
			return nil, domain.ErrForbidden
		}
	default:
		metrics.OpsTotal.WithLabelValues("update", "forbidden").Inc()
		return nil, domain.ErrForbidden
	}

	// Validate everything before any field is written.
	updated := *existing
	if input.Name != "" {
		updated.Name = input.Name
	}
	if input.Email != "" {
		other, err := s.repo.FindByEmail(ctx, input.Email)
		switch {
		case err == nil && other != nil && other.ID != existing.ID:
			metrics.OpsTotal.WithLabelValues("update", "validation").Inc()
			return nil, domain.ErrEmailTaken
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			metrics.OpsTotal.WithLabelValues("update", opResult(err)).Inc()
			return nil, err
		}
		updated.Email = input.Email
	}
	if input.Role != "" {
		role := domain.Role(input.Role)
		if !role.Valid() {
			metrics.OpsTotal.WithLabelValues("update", "validation").Inc()
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
		}
		updated.Role = role
	}
	if input.Status != "" {
		status := domain.Status(input.Status)
		if !status.Valid() {
			metrics.OpsTotal.WithLabelValues("update", "validation").Inc()
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, input.Status)
		}
		if !existing.Status.CanTransitionTo(status) {
			metrics.OpsTotal.WithLabelValues("update", "validation").Inc()
			return nil, fmt.Errorf("%w: cannot move status from %s to %s", domain.ErrValidation, existing.Status, status)
		}
		updated.Status = status
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, &updated); err != nil {
		metrics.OpsTotal.WithLabelValues("update", opResult(err)).Inc()
		s.log.Error().Err(err).Int64("id", updated.ID).Msg("failed to update user")
		return nil, err
	}

	metrics.OpsTotal.WithLabelValues("update", "ok").Inc()
	s.log.Info().Int64("id", updated.ID).Msg("user updated")
	s.recordAudit(caller, domain.AuditUserUpdated, updated.ID)

	return &updated, nil
}

// Delete removes an account permanently. Admin only. Deleting the last
// administrator is rejected so the directory never ends up without one.
func (s *DirectoryService) Delete(ctx context.Context, caller *domain.Session, id int64) error {
	defer observe("delete", time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	if !policyFor(caller.Role).CanDelete {
		metrics.OpsTotal.WithLabelValues("delete", "forbidden").Inc()
		return domain.ErrForbidden
	}

	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		metrics.OpsTotal.WithLabelValues("delete", opResult(err)).Inc()
		return err
	}

	if target.Role == domain.RoleAdmin {
		admins, err := s.repo.CountByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return err
		}
		if admins <= 1 {
			metrics.OpsTotal.WithLabelValues("delete", "invariant").Inc()
			return domain.ErrLastAdmin
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		metrics.OpsTotal.WithLabelValues("delete", opResult(err)).Inc()
		s.log.Error().Err(err).Int64("id", id).Msg("failed to delete user")
		return err
	}

	metrics.OpsTotal.WithLabelValues("delete", "ok").Inc()
	s.log.Info().Int64("id", id).Msg("user deleted")
	s.recordAudit(caller, domain.AuditUserDeleted, id)

	return nil
}

func (s *DirectoryService) recordAudit(caller *domain.Session, action domain.AuditAction, targetID int64) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		ActorID:   caller.UserID,
		ActorRole: caller.Role,
		Action:    action,
		TargetID:  targetID,
		Timestamp: time.Now().UTC(),
	})
}

func observe(op string, start time.Time) {
	metrics.OpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// opResult maps an error to the metric result label.
func opResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrInvariant):
		return "invariant"
	default:
		return "error"
	}
}
