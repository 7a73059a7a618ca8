package model

import (
	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// Exam is a graded assessment for a grade+module, authored by a teacher.
type Exam struct {
	Base
	SchoolID           uuid.UUID `json:"school_id"`
	GradeID            uuid.UUID `json:"grade_id"`
	ModuleID           uuid.UUID `json:"module_id"`
	CreatedByTeacherID uuid.UUID `json:"created_by_teacher_id"`
	Title              string    `json:"title"`
	TotalMarks         float64   `json:"total_marks"`
}

// EntityKind identifies the exam entity kind.
func (e *Exam) EntityKind() authz.Kind { return authz.KindExam }

// ScopeField exposes the fields scope predicates may reference.
func (e *Exam) ScopeField(name string) (any, bool) {
	switch name {
	case authz.FieldID:
		return e.ID, true
	case authz.FieldSchoolID:
		return e.SchoolID, true
	case authz.FieldGradeID:
		return e.GradeID, true
	case authz.FieldCreatedByTeacherID:
		return e.CreatedByTeacherID, true
	}
	return nil, false
}

// CreateExamRequest is the payload for creating or updating an exam.
// CreatedByTeacherID is only honoured for callers above Teacher; teacher
// callers are always stamped as the author themselves.
type CreateExamRequest struct {
	GradeID            uuid.UUID  `json:"grade_id" binding:"required"`
	ModuleID           uuid.UUID  `json:"module_id" binding:"required"`
	CreatedByTeacherID *uuid.UUID `json:"created_by_teacher_id" binding:"omitempty"`
	Title              string     `json:"title" binding:"required,min=2,max=255"`
	TotalMarks         float64    `json:"total_marks" binding:"required,gt=0"`
}
