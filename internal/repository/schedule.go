package repository

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/store"
)

// NewSchedulerStore creates the scoped store for class sessions.
func NewSchedulerStore(pool *pgxpool.Pool) *store.Store[*model.Scheduler] {
	return store.New(authz.KindScheduler, store.NewPostgresBackend(pool, store.Descriptor[*model.Scheduler]{
		Table:   "schedulers",
		Columns: []string{"school_id", "grade_id", "module_id", "lesson_id", "teacher_id", "date", "start_time", "end_time", "is_active"},
		Values: func(s *model.Scheduler) []any {
			return []any{s.SchoolID, s.GradeID, s.ModuleID, s.LessonID, s.TeacherID, s.Date, s.StartTime, s.EndTime, s.IsActive}
		},
		Scan: func(rows pgx.Rows) (*model.Scheduler, error) {
			s := &model.Scheduler{}
			err := rows.Scan(&s.ID, &s.CreatedAt, &s.SchoolID, &s.GradeID, &s.ModuleID, &s.LessonID, &s.TeacherID, &s.Date, &s.StartTime, &s.EndTime, &s.IsActive)
			return s, err
		},
		Fields: map[string]string{
			authz.FieldID:        "id",
			authz.FieldSchoolID:  "school_id",
			authz.FieldGradeID:   "grade_id",
			authz.FieldTeacherID: "teacher_id",
		},
		OrderBy: "date, start_time, id",
	}))
}

// NewAttendanceStore creates the scoped store for attendance records.
func NewAttendanceStore(pool *pgxpool.Pool) *store.Store[*model.Attendance] {
	return store.New(authz.KindAttendance, store.NewPostgresBackend(pool, store.Descriptor[*model.Attendance]{
		Table:   "attendances",
		Columns: []string{"school_id", "teacher_id", "student_id", "date", "status", "is_active"},
		Values: func(a *model.Attendance) []any {
			return []any{a.SchoolID, a.TeacherID, a.StudentID, a.Date, string(a.Status), a.IsActive}
		},
		Scan: func(rows pgx.Rows) (*model.Attendance, error) {
			a := &model.Attendance{}
			var status string
			err := rows.Scan(&a.ID, &a.CreatedAt, &a.SchoolID, &a.TeacherID, &a.StudentID, &a.Date, &status, &a.IsActive)
			a.Status = model.AttendanceStatus(status)
			return a, err
		},
		Fields: map[string]string{
			authz.FieldID:        "id",
			authz.FieldSchoolID:  "school_id",
			authz.FieldTeacherID: "teacher_id",
			authz.FieldStudentID: "student_id",
		},
		OrderBy: "date, id",
	}))
}
