package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erpdash/user-directory/internal/core/domain"
)

func TestSessionStore_SaveAndFind(t *testing.T) {
	store := NewSessionStore()
	now := time.Now().UTC()

	session := &domain.Session{
		ID:        "s1",
		UserID:    1,
		Role:      domain.RoleAdmin,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
	if err := store.Save(context.Background(), session); err != nil {
		t.Fatalf("Save: %v", err)
	}

	found, err := store.Find(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found.UserID != 1 || found.Role != domain.RoleAdmin {
		t.Fatalf("unexpected session: %+v", found)
	}
}

func TestSessionStore_ExpiredSessionReaped(t *testing.T) {
	store := NewSessionStore()
	now := time.Now().UTC()
	store.now = func() time.Time { return now.Add(2 * time.Hour) }

	session := &domain.Session{ID: "s1", UserID: 1, ExpiresAt: now.Add(time.Hour)}
	if err := store.Save(context.Background(), session); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := store.Find(context.Background(), "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for expired session, got %v", err)
	}
	if len(store.sessions) != 0 {
		t.Fatalf("expired session should be reaped")
	}
}

func TestSessionStore_DeleteIdempotent(t *testing.T) {
	store := NewSessionStore()

	if err := store.Delete(context.Background(), "missing"); err != nil {
		t.Fatalf("deleting an absent session must succeed, got %v", err)
	}

	session := &domain.Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)}
	_ = store.Save(context.Background(), session)
	if err := store.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("second Delete must succeed, got %v", err)
	}
}
