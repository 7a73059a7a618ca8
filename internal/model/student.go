package model

import (
	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// Student belongs to a school and a grade, optionally linked to a login user.
type Student struct {
	Base
	SchoolID uuid.UUID  `json:"school_id"`
	GradeID  uuid.UUID  `json:"grade_id"`
	UserID   *uuid.UUID `json:"user_id,omitempty"`
	Name     string     `json:"name"`
	Email    string     `json:"email"` // unique per deployment
}

// EntityKind identifies the student entity kind.
func (s *Student) EntityKind() authz.Kind { return authz.KindStudent }

// ScopeField exposes the fields scope predicates may reference.
func (s *Student) ScopeField(name string) (any, bool) {
	switch name {
	case authz.FieldID:
		return s.ID, true
	case authz.FieldSchoolID:
		return s.SchoolID, true
	case authz.FieldGradeID:
		return s.GradeID, true
	}
	return nil, false
}

// CreateStudentRequest is the payload for creating or updating a student.
type CreateStudentRequest struct {
	SchoolID *uuid.UUID `json:"school_id" binding:"omitempty"`
	GradeID  uuid.UUID  `json:"grade_id" binding:"required"`
	UserID   *uuid.UUID `json:"user_id" binding:"omitempty"`
	Name     string     `json:"name" binding:"required,min=2,max=255"`
	Email    string     `json:"email" binding:"required,email,max=255"`
}
