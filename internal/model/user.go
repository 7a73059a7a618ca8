package model

import (
	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// User is a login identity. SuperAdmin users carry no school; everyone else
// belongs to exactly one. Password, role and active-state never change
// through the generic update path — only through the dedicated transitions
// on UserService.
type User struct {
	Base
	SchoolID     *uuid.UUID `json:"school_id,omitempty"`
	Email        string     `json:"email"` // unique
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         authz.Role `json:"role"`
}

// EntityKind identifies the user entity kind.
func (u *User) EntityKind() authz.Kind { return authz.KindUser }

// ScopeField exposes the fields scope predicates may reference.
// SuperAdmin users have no school_id, so tenant-scoped principals never see
// them.
func (u *User) ScopeField(name string) (any, bool) {
	switch name {
	case authz.FieldID:
		return u.ID, true
	case authz.FieldSchoolID:
		return deref(u.SchoolID)
	}
	return nil, false
}

// CreateUserRequest is the payload for creating a user.
type CreateUserRequest struct {
	SchoolID *uuid.UUID `json:"school_id" binding:"omitempty"`
	Email    string     `json:"email" binding:"required,email,max=255"`
	Name     string     `json:"name" binding:"required,min=2,max=255"`
	Password string     `json:"password" binding:"required,min=6,max=128"`
	Role     string     `json:"role" binding:"required"`
}

// UpdateUserRequest is the payload for updating a user's profile fields.
type UpdateUserRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
	Name  string `json:"name" binding:"required,min=2,max=255"`
}

// ChangePasswordRequest is the payload for the password transition.
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// ChangeRoleRequest is the payload for the role transition.
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SetActiveRequest is the payload for the active-state transition.
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
