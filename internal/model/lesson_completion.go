package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// LessonCompletion is an append-only progress marker: a student finished a
// lesson on a date. It is never updated or deleted through the API.
type LessonCompletion struct {
	Base
	SchoolID    uuid.UUID `json:"school_id"`
	StudentID   uuid.UUID `json:"student_id"`
	LessonID    uuid.UUID `json:"lesson_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// EntityKind identifies the lesson-completion entity kind.
func (c *LessonCompletion) EntityKind() authz.Kind { return authz.KindLessonCompletion }

// ScopeField exposes the fields scope predicates may reference.
func (c *LessonCompletion) ScopeField(name string) (any, bool) {
	switch name {
	case authz.FieldID:
		return c.ID, true
	case authz.FieldSchoolID:
		return c.SchoolID, true
	case authz.FieldStudentID:
		return c.StudentID, true
	}
	return nil, false
}

// CompleteLessonRequest is the payload for marking a lesson complete.
type CompleteLessonRequest struct {
	LessonID uuid.UUID `json:"lesson_id" binding:"required"`
}
