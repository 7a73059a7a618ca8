package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// AttendanceStatus enumerates the possible attendance marks.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

// Valid reports whether s is a known attendance status.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// Attendance records one person's presence on a date. Exactly one of
// TeacherID and StudentID must be set; the service layer enforces this.
type Attendance struct {
	Base
	SchoolID  uuid.UUID        `json:"school_id"`
	TeacherID *uuid.UUID       `json:"teacher_id,omitempty"`
	StudentID *uuid.UUID       `json:"student_id,omitempty"`
	Date      time.Time        `json:"date"`
	Status    AttendanceStatus `json:"status"`
}

// EntityKind identifies the attendance entity kind.
func (a *Attendance) EntityKind() authz.Kind { return authz.KindAttendance }

// ScopeField exposes the fields scope predicates may reference.
func (a *Attendance) ScopeField(name string) (any, bool) {
	switch name {
	case authz.FieldID:
		return a.ID, true
	case authz.FieldSchoolID:
		return a.SchoolID, true
	case authz.FieldTeacherID:
		return deref(a.TeacherID)
	case authz.FieldStudentID:
		return deref(a.StudentID)
	}
	return nil, false
}

// CreateAttendanceRequest is the payload for recording attendance.
type CreateAttendanceRequest struct {
	TeacherID *uuid.UUID       `json:"teacher_id" binding:"omitempty"`
	StudentID *uuid.UUID       `json:"student_id" binding:"omitempty"`
	Date      time.Time        `json:"date" binding:"required"`
	Status    AttendanceStatus `json:"status" binding:"required"`
}
