package model

import (
	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// Module is a course unit taught to a grade, optionally authored by a teacher.
type Module struct {
	Base
	SchoolID           uuid.UUID  `json:"school_id"`
	GradeID            uuid.UUID  `json:"grade_id"`
	CreatedByTeacherID *uuid.UUID `json:"created_by_teacher_id,omitempty"`
	Name               string     `json:"name"`
	Description        string     `json:"description,omitempty"`
}

// EntityKind identifies the module entity kind.
func (m *Module) EntityKind() authz.Kind { return authz.KindModule }

// ScopeField exposes the fields scope predicates may reference.
func (m *Module) ScopeField(name string) (any, bool) {
	switch name {
	case authz.FieldID:
		return m.ID, true
	case authz.FieldSchoolID:
		return m.SchoolID, true
	case authz.FieldGradeID:
		return m.GradeID, true
	case authz.FieldCreatedByTeacherID:
		return deref(m.CreatedByTeacherID)
	}
	return nil, false
}

// CreateModuleRequest is the payload for creating or updating a module.
type CreateModuleRequest struct {
	GradeID     uuid.UUID `json:"grade_id" binding:"required"`
	Name        string    `json:"name" binding:"required,min=2,max=255"`
	Description string    `json:"description" binding:"omitempty,max=4000"`
}
