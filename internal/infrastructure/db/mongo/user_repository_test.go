package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/erpdash/user-directory/internal/core/domain"
)

func TestOperationTimeouts(t *testing.T) {
	if defaultTimeout <= 0 {
		t.Fatalf("operation timeout must be positive, got %v", defaultTimeout)
	}
	if connectTimeout < defaultTimeout {
		t.Fatalf("dialing budget %v must not be shorter than a single operation %v", connectTimeout, defaultTimeout)
	}
}

func TestUserDocumentMapping(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	u := domain.User{
		ID:           7,
		Name:         "New Hire",
		Email:        "hire@erp.com",
		PasswordHash: "hash",
		Role:         domain.RoleEmployee,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	raw, err := bson.Marshal(u)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if doc["_id"] != int64(7) {
		t.Fatalf("user ID must map to _id, got %v", doc["_id"])
	}
	if _, ok := doc["password_hash"]; !ok {
		t.Fatalf("password hash missing from stored document")
	}

	var back domain.User
	if err := bson.Unmarshal(raw, &back); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if back.ID != u.ID || back.Email != u.Email || back.Role != u.Role {
		t.Fatalf("round-trip mismatch: %+v", back)
	}
}
