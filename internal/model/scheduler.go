package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// Scheduler is a planned class session for a grade: which module (and
// optionally which lesson) a teacher delivers on a date and time range.
type Scheduler struct {
	Base
	SchoolID  uuid.UUID  `json:"school_id"`
	GradeID   uuid.UUID  `json:"grade_id"`
	ModuleID  uuid.UUID  `json:"module_id"`
	LessonID  *uuid.UUID `json:"lesson_id,omitempty"`
	TeacherID uuid.UUID  `json:"teacher_id"`
	Date      time.Time  `json:"date"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
}

// EntityKind identifies the scheduler entity kind.
func (s *Scheduler) EntityKind() authz.Kind { return authz.KindScheduler }

// ScopeField exposes the fields scope predicates may reference.
func (s *Scheduler) ScopeField(name string) (any, bool) {
	switch name {
	case authz.FieldID:
		return s.ID, true
	case authz.FieldSchoolID:
		return s.SchoolID, true
	case authz.FieldGradeID:
		return s.GradeID, true
	case authz.FieldTeacherID:
		return s.TeacherID, true
	}
	return nil, false
}

// CreateSchedulerRequest is the payload for creating or updating a session.
type CreateSchedulerRequest struct {
	GradeID   uuid.UUID  `json:"grade_id" binding:"required"`
	ModuleID  uuid.UUID  `json:"module_id" binding:"required"`
	LessonID  *uuid.UUID `json:"lesson_id" binding:"omitempty"`
	TeacherID uuid.UUID  `json:"teacher_id" binding:"required"`
	Date      time.Time  `json:"date" binding:"required"`
	StartTime time.Time  `json:"start_time" binding:"required"`
	EndTime   time.Time  `json:"end_time" binding:"required"`
}
