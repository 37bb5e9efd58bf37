package handler

import (
	"time"

	"github.com/erpdash/user-directory/internal/core/domain"
)

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Role     string `json:"role"     validate:"required,oneof=admin manager employee"`
	Status   string `json:"status"   validate:"omitempty,oneof=active inactive"`
}

type updateUserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"  validate:"omitempty,email"`
	Role   string `json:"role"   validate:"omitempty,oneof=admin manager employee"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// userResponse is the JSON view of an account. The password hash never
// leaves the service.
type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listUsersResponse struct {
	Data []userResponse `json:"data"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type auditEntryResponse struct {
	ActorID   int64     `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	Action    string    `json:"action"`
	TargetID  int64     `json:"target_id"`
	Timestamp time.Time `json:"timestamp"`
}

type listAuditResponse struct {
	Data []auditEntryResponse `json:"data"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
