package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/config"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/store"
)

// scheduleCacheTTL bounds staleness of the per-grade timetable cache.
const scheduleCacheTTL = 5 * time.Minute

// AttendanceEvent is published on the school's attendance channel whenever a
// record is written, feeding the live monitor stream.
type AttendanceEvent struct {
	SchoolID  uuid.UUID              `json:"school_id"`
	TeacherID *uuid.UUID             `json:"teacher_id,omitempty"`
	StudentID *uuid.UUID             `json:"student_id,omitempty"`
	Date      time.Time              `json:"date"`
	Status    model.AttendanceStatus `json:"status"`
}

// ScheduleService handles class sessions and attendance. Full timetables for
// a grade are hot reads, so staff/student listings by grade go through a
// short-lived Redis cache invalidated on every write.
type ScheduleService struct {
	schedulers  *store.Store[*model.Scheduler]
	attendances *store.Store[*model.Attendance]
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(
	schedulers *store.Store[*model.Scheduler],
	attendances *store.Store[*model.Attendance],
	rdb *redis.Client,
	log zerolog.Logger,
) *ScheduleService {
	return &ScheduleService{
		schedulers:  schedulers,
		attendances: attendances,
		rdb:         rdb,
		log:         log.With().Str("component", "schedule_service").Logger(),
	}
}

// ListSessions returns the class sessions visible to p.
func (s *ScheduleService) ListSessions(ctx context.Context, p authz.Principal, opts store.ListOptions) ([]*model.Scheduler, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	return s.schedulers.List(ctx, p, opts)
}

// GradeSchedule returns a grade's full session list, served from cache when
// fresh. The grade filter composes with the caller's scope, so a cached
// entry is only built from rows the caller could see anyway.
func (s *ScheduleService) GradeSchedule(ctx context.Context, p authz.Principal, gradeID uuid.UUID) ([]*model.Scheduler, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}

	// Cache only the teacher-agnostic view; teachers get an ownership-
	// narrowed predicate that must not leak into the shared entry.
	cacheable := p.Role != authz.RoleTeacher
	key := config.CacheKey.GradeScheduleKey(gradeID)

	if cacheable {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var cached []*model.Scheduler
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return s.visibleTo(p, cached), nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("schedule cache read failed")
		}
	}

	opts := store.ListOptions{Filter: authz.FieldEq(authz.FieldGradeID, gradeID)}
	sessions, err := s.schedulers.List(ctx, p, opts)
	if err != nil {
		return nil, err
	}

	if cacheable && len(sessions) > 0 {
		if raw, err := json.Marshal(sessions); err == nil {
			if err := s.rdb.Set(ctx, key, raw, scheduleCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("schedule cache write failed")
			}
		}
	}
	return sessions, nil
}

// visibleTo re-applies the caller's scope predicate to cached rows, so a
// cache hit can never widen visibility beyond a fresh read.
func (s *ScheduleService) visibleTo(p authz.Principal, sessions []*model.Scheduler) []*model.Scheduler {
	pred := authz.ScopeFor(p, authz.KindScheduler)
	out := make([]*model.Scheduler, 0, len(sessions))
	for _, session := range sessions {
		if pred.Matches(session) {
			out = append(out, session)
		}
	}
	return out
}

// GetSession retrieves one class session by id.
func (s *ScheduleService) GetSession(ctx context.Context, p authz.Principal, id uuid.UUID) (*model.Scheduler, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	return s.schedulers.GetByID(ctx, p, id)
}

// CreateSession creates a class session. Teachers always schedule
// themselves; the time range must be forward.
func (s *ScheduleService) CreateSession(ctx context.Context, p authz.Principal, req *model.CreateSchedulerRequest) (*model.Scheduler, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, validationErr("end_time", "end_time must be after start_time")
	}
	schoolID, err := tenantSchool(p, nil)
	if err != nil {
		return nil, err
	}

	teacherID := req.TeacherID
	if p.Role == authz.RoleTeacher && p.TeacherID != nil {
		teacherID = *p.TeacherID
	}

	session := &model.Scheduler{
		SchoolID:  schoolID,
		GradeID:   req.GradeID,
		ModuleID:  req.ModuleID,
		LessonID:  req.LessonID,
		TeacherID: teacherID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	session.IsActive = true
	if err := s.schedulers.Create(ctx, session); err != nil {
		return nil, err
	}
	s.invalidateSchedule(ctx, session.GradeID)
	return session, nil
}

// UpdateSession replaces a session's row under the same validation.
func (s *ScheduleService) UpdateSession(ctx context.Context, p authz.Principal, id uuid.UUID, req *model.CreateSchedulerRequest) (*model.Scheduler, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, validationErr("end_time", "end_time must be after start_time")
	}
	existing, err := s.schedulers.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	session := &model.Scheduler{
		SchoolID:  existing.SchoolID,
		GradeID:   req.GradeID,
		ModuleID:  req.ModuleID,
		LessonID:  req.LessonID,
		TeacherID: req.TeacherID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if p.Role == authz.RoleTeacher && p.TeacherID != nil {
		session.TeacherID = *p.TeacherID
	}
	session.IsActive = existing.IsActive
	if err := s.schedulers.Update(ctx, p, id, session); err != nil {
		return nil, err
	}
	s.invalidateSchedule(ctx, existing.GradeID)
	if session.GradeID != existing.GradeID {
		s.invalidateSchedule(ctx, session.GradeID)
	}
	return session, nil
}

// DeleteSession hard-deletes a class session.
func (s *ScheduleService) DeleteSession(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return err
	}
	existing, err := s.schedulers.GetByID(ctx, p, id)
	if err != nil {
		return err
	}
	if err := s.schedulers.Delete(ctx, p, id); err != nil {
		return err
	}
	s.invalidateSchedule(ctx, existing.GradeID)
	return nil
}

func (s *ScheduleService) invalidateSchedule(ctx context.Context, gradeID uuid.UUID) {
	if err := s.rdb.Del(ctx, config.CacheKey.GradeScheduleKey(gradeID)).Err(); err != nil {
		s.log.Warn().Err(err).Str("grade_id", gradeID.String()).Msg("schedule cache invalidation failed")
	}
}

// ListAttendance returns attendance records visible to p. Student callers
// are additionally narrowed to their own records.
func (s *ScheduleService) ListAttendance(ctx context.Context, p authz.Principal, opts store.ListOptions) ([]*model.Attendance, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	if p.Role == authz.RoleStudent && p.StudentID != nil {
		opts.Filter = opts.Filter.And(authz.FieldEq(authz.FieldStudentID, *p.StudentID))
	}
	return s.attendances.List(ctx, p, opts)
}

// GetAttendance retrieves one attendance record by id.
func (s *ScheduleService) GetAttendance(ctx context.Context, p authz.Principal, id uuid.UUID) (*model.Attendance, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	return s.attendances.GetByID(ctx, p, id)
}

// RecordAttendance creates an attendance record for exactly one teacher or
// one student, and publishes the event for live monitors.
func (s *ScheduleService) RecordAttendance(ctx context.Context, p authz.Principal, req *model.CreateAttendanceRequest) (*model.Attendance, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	if (req.TeacherID == nil) == (req.StudentID == nil) {
		return nil, validationErr("teacher_id", "exactly one of teacher_id and student_id must be set")
	}
	if !req.Status.Valid() {
		return nil, validationErr("status", "unknown attendance status")
	}
	schoolID, err := tenantSchool(p, nil)
	if err != nil {
		return nil, err
	}

	record := &model.Attendance{
		SchoolID:  schoolID,
		TeacherID: req.TeacherID,
		StudentID: req.StudentID,
		Date:      req.Date,
		Status:    req.Status,
	}
	record.IsActive = true
	if err := s.attendances.Create(ctx, record); err != nil {
		return nil, err
	}
	s.publishAttendance(ctx, record)
	return record, nil
}

// UpdateAttendance replaces an attendance record under the same validation.
func (s *ScheduleService) UpdateAttendance(ctx context.Context, p authz.Principal, id uuid.UUID, req *model.CreateAttendanceRequest) (*model.Attendance, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	if (req.TeacherID == nil) == (req.StudentID == nil) {
		return nil, validationErr("teacher_id", "exactly one of teacher_id and student_id must be set")
	}
	if !req.Status.Valid() {
		return nil, validationErr("status", "unknown attendance status")
	}
	existing, err := s.attendances.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	record := &model.Attendance{
		SchoolID:  existing.SchoolID,
		TeacherID: req.TeacherID,
		StudentID: req.StudentID,
		Date:      req.Date,
		Status:    req.Status,
	}
	record.IsActive = existing.IsActive
	if err := s.attendances.Update(ctx, p, id, record); err != nil {
		return nil, err
	}
	s.publishAttendance(ctx, record)
	return record, nil
}

// DeleteAttendance hard-deletes an attendance record.
func (s *ScheduleService) DeleteAttendance(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return err
	}
	return s.attendances.Delete(ctx, p, id)
}

func (s *ScheduleService) publishAttendance(ctx context.Context, record *model.Attendance) {
	event := AttendanceEvent{
		SchoolID:  record.SchoolID,
		TeacherID: record.TeacherID,
		StudentID: record.StudentID,
		Date:      record.Date,
		Status:    record.Status,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	channel := config.CacheKey.AttendanceChannel(record.SchoolID)
	if err := s.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		s.log.Warn().Err(err).Msg("attendance publish failed")
	}
}
