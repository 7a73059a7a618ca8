package model

import (
	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// Lesson belongs to a module. GradeID is denormalized from the owning module
// on create so grade scoping applies without a join; the service layer keeps
// it in sync with ModuleID.
type Lesson struct {
	Base
	SchoolID           uuid.UUID  `json:"school_id"`
	ModuleID           uuid.UUID  `json:"module_id"`
	GradeID            uuid.UUID  `json:"grade_id"`
	CreatedByTeacherID *uuid.UUID `json:"created_by_teacher_id,omitempty"`
	Title              string     `json:"title"`
	Content            string     `json:"content,omitempty"`
}

// EntityKind identifies the lesson entity kind.
func (l *Lesson) EntityKind() authz.Kind { return authz.KindLesson }

// ScopeField exposes the fields scope predicates may reference.
func (l *Lesson) ScopeField(name string) (any, bool) {
	switch name {
	case authz.FieldID:
		return l.ID, true
	case authz.FieldSchoolID:
		return l.SchoolID, true
	case authz.FieldGradeID:
		return l.GradeID, true
	case authz.FieldCreatedByTeacherID:
		return deref(l.CreatedByTeacherID)
	}
	return nil, false
}

// CreateLessonRequest is the payload for creating or updating a lesson.
type CreateLessonRequest struct {
	ModuleID uuid.UUID `json:"module_id" binding:"required"`
	Title    string    `json:"title" binding:"required,min=2,max=255"`
	Content  string    `json:"content" binding:"omitempty"`
}
