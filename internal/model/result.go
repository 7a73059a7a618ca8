package model

import (
	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// Result links a student to an exam with their marks. Students only ever see
// their own published results; staff see results regardless of publication.
type Result struct {
	Base
	SchoolID    uuid.UUID `json:"school_id"`
	StudentID   uuid.UUID `json:"student_id"`
	ExamID      uuid.UUID `json:"exam_id"`
	Marks       float64   `json:"marks"`
	IsPublished bool      `json:"is_published"`
}

// EntityKind identifies the result entity kind.
func (r *Result) EntityKind() authz.Kind { return authz.KindResult }

// ScopeField exposes the fields scope predicates may reference.
func (r *Result) ScopeField(name string) (any, bool) {
	switch name {
	case authz.FieldID:
		return r.ID, true
	case authz.FieldSchoolID:
		return r.SchoolID, true
	case authz.FieldStudentID:
		return r.StudentID, true
	case authz.FieldIsPublished:
		return r.IsPublished, true
	}
	return nil, false
}

// CreateResultRequest is the payload for recording or updating a result.
type CreateResultRequest struct {
	StudentID   uuid.UUID `json:"student_id" binding:"required"`
	ExamID      uuid.UUID `json:"exam_id" binding:"required"`
	Marks       float64   `json:"marks" binding:"gte=0"`
	IsPublished bool      `json:"is_published"`
}
