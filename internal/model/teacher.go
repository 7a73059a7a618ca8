package model

import (
	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// Teacher belongs to a school and is linked 1:1 to a login user.
type Teacher struct {
	Base
	SchoolID uuid.UUID `json:"school_id"`
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
}

// EntityKind identifies the teacher entity kind.
func (t *Teacher) EntityKind() authz.Kind { return authz.KindTeacher }

// ScopeField exposes the fields scope predicates may reference.
func (t *Teacher) ScopeField(name string) (any, bool) {
	switch name {
	case authz.FieldID:
		return t.ID, true
	case authz.FieldSchoolID:
		return t.SchoolID, true
	}
	return nil, false
}

// CreateTeacherRequest is the payload for creating or updating a teacher.
type CreateTeacherRequest struct {
	SchoolID *uuid.UUID `json:"school_id" binding:"omitempty"`
	UserID   uuid.UUID  `json:"user_id" binding:"required"`
	Name     string     `json:"name" binding:"required,min=2,max=255"`
	Email    string     `json:"email" binding:"required,email,max=255"`
}
