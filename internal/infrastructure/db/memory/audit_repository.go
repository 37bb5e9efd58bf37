package memory

import (
	"context"
	"sync"

	"github.com/erpdash/user-directory/internal/core/domain"
)

// defaultAuditCap bounds how many entries the in-memory trail retains.
const defaultAuditCap = 1000

// AuditRepository keeps a bounded in-memory mutation trail, newest last.
type AuditRepository struct {
	mu      sync.RWMutex
	entries []domain.AuditEntry
	cap     int
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{cap: defaultAuditCap}
}

func (r *AuditRepository) Insert(_ context.Context, entry *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, *entry)
	if len(r.entries) > r.cap {
		r.entries = r.entries[len(r.entries)-r.cap:]
	}
	return nil
}

func (r *AuditRepository) FindRecent(_ context.Context, limit int) ([]domain.AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}

	out := make([]domain.AuditEntry, 0, limit)
	for i := len(r.entries) - 1; i >= len(r.entries)-limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}
