package model

import (
	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// Grade is a class level inside a school, optionally led by a class teacher.
type Grade struct {
	Base
	SchoolID       uuid.UUID  `json:"school_id"`
	Name           string     `json:"name"`
	ClassTeacherID *uuid.UUID `json:"class_teacher_id,omitempty"`
}

// EntityKind identifies the grade entity kind.
func (g *Grade) EntityKind() authz.Kind { return authz.KindGrade }

// ScopeField exposes the fields scope predicates may reference.
// A grade's own id doubles as its grade_id for curriculum scoping.
func (g *Grade) ScopeField(name string) (any, bool) {
	switch name {
	case authz.FieldID, authz.FieldGradeID:
		return g.ID, true
	case authz.FieldSchoolID:
		return g.SchoolID, true
	}
	return nil, false
}

// CreateGradeRequest is the payload for creating or updating a grade.
type CreateGradeRequest struct {
	SchoolID       *uuid.UUID `json:"school_id" binding:"omitempty"` // SuperAdmin only; others default to their own school
	Name           string     `json:"name" binding:"required,min=1,max=64"`
	ClassTeacherID *uuid.UUID `json:"class_teacher_id" binding:"omitempty"`
}
