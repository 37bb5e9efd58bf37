package domain

import "time"

// Role fixes the set of directory operations a session may invoke.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Valid reports whether the role is one of the three known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleEmployee
}

// Status represents the lifecycle state of a user account.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// validTransitions defines the allowed account state machine transitions.
// Deletion is terminal and is a directory operation, not a status value.
var validTransitions = map[Status][]Status{
	StatusActive:   {StatusInactive},
	StatusInactive: {StatusActive},
}

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// User is a single directory account. IDs are assigned by the directory from a
// monotonic counter and are never reused, even after deletions.
type User struct {
	ID           int64     `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	Status       Status    `json:"status" bson:"status"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
