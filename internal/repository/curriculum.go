package repository

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/store"
)

// NewModuleStore creates the scoped store for course modules.
func NewModuleStore(pool *pgxpool.Pool) *store.Store[*model.Module] {
	return store.New(authz.KindModule, store.NewPostgresBackend(pool, store.Descriptor[*model.Module]{
		Table:   "modules",
		Columns: []string{"school_id", "grade_id", "created_by_teacher_id", "name", "description", "is_active"},
		Values: func(m *model.Module) []any {
			return []any{m.SchoolID, m.GradeID, m.CreatedByTeacherID, m.Name, m.Description, m.IsActive}
		},
		Scan: func(rows pgx.Rows) (*model.Module, error) {
			m := &model.Module{}
			err := rows.Scan(&m.ID, &m.CreatedAt, &m.SchoolID, &m.GradeID, &m.CreatedByTeacherID, &m.Name, &m.Description, &m.IsActive)
			return m, err
		},
		Fields: map[string]string{
			authz.FieldID:                 "id",
			authz.FieldSchoolID:           "school_id",
			authz.FieldGradeID:            "grade_id",
			authz.FieldCreatedByTeacherID: "created_by_teacher_id",
		},
		OrderBy: "name, id",
	}))
}

// NewLessonStore creates the scoped store for lessons. grade_id is the
// denormalized copy of the owning module's grade, maintained by the service
// layer, so grade scoping compiles to a plain column match.
func NewLessonStore(pool *pgxpool.Pool) *store.Store[*model.Lesson] {
	return store.New(authz.KindLesson, store.NewPostgresBackend(pool, store.Descriptor[*model.Lesson]{
		Table:   "lessons",
		Columns: []string{"school_id", "module_id", "grade_id", "created_by_teacher_id", "title", "content", "is_active"},
		Values: func(l *model.Lesson) []any {
			return []any{l.SchoolID, l.ModuleID, l.GradeID, l.CreatedByTeacherID, l.Title, l.Content, l.IsActive}
		},
		Scan: func(rows pgx.Rows) (*model.Lesson, error) {
			l := &model.Lesson{}
			err := rows.Scan(&l.ID, &l.CreatedAt, &l.SchoolID, &l.ModuleID, &l.GradeID, &l.CreatedByTeacherID, &l.Title, &l.Content, &l.IsActive)
			return l, err
		},
		Fields: map[string]string{
			authz.FieldID:                 "id",
			authz.FieldSchoolID:           "school_id",
			authz.FieldGradeID:            "grade_id",
			authz.FieldCreatedByTeacherID: "created_by_teacher_id",
		},
		OrderBy: "created_at, id",
	}))
}

// NewLessonCompletionStore creates the scoped store for completion markers.
func NewLessonCompletionStore(pool *pgxpool.Pool) *store.Store[*model.LessonCompletion] {
	return store.New(authz.KindLessonCompletion, store.NewPostgresBackend(pool, store.Descriptor[*model.LessonCompletion]{
		Table:   "lesson_completions",
		Columns: []string{"school_id", "student_id", "lesson_id", "completed_at", "is_active"},
		Values: func(c *model.LessonCompletion) []any {
			return []any{c.SchoolID, c.StudentID, c.LessonID, c.CompletedAt, c.IsActive}
		},
		Scan: func(rows pgx.Rows) (*model.LessonCompletion, error) {
			c := &model.LessonCompletion{}
			err := rows.Scan(&c.ID, &c.CreatedAt, &c.SchoolID, &c.StudentID, &c.LessonID, &c.CompletedAt, &c.IsActive)
			return c, err
		},
		Fields: map[string]string{
			authz.FieldID:        "id",
			authz.FieldSchoolID:  "school_id",
			authz.FieldStudentID: "student_id",
		},
		OrderBy: "completed_at, id",
	}))
}
