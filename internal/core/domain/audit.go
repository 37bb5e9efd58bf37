package domain

import "time"

// AuditAction identifies a directory mutation recorded in the audit trail.
type AuditAction string

const (
	AuditUserCreated AuditAction = "user_created"
	AuditUserUpdated AuditAction = "user_updated"
	AuditUserDeleted AuditAction = "user_deleted"
)

// AuditEntry records one directory mutation for later review by administrators.
type AuditEntry struct {
	ActorID   int64       `json:"actor_id" bson:"actor_id"`
	ActorRole Role        `json:"actor_role" bson:"actor_role"`
	Action    AuditAction `json:"action" bson:"action"`
	TargetID  int64       `json:"target_id" bson:"target_id"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}
