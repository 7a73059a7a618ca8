package repository

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/store"
)

// NewExamStore creates the scoped store for exams.
func NewExamStore(pool *pgxpool.Pool) *store.Store[*model.Exam] {
	return store.New(authz.KindExam, store.NewPostgresBackend(pool, store.Descriptor[*model.Exam]{
		Table:   "exams",
		Columns: []string{"school_id", "grade_id", "module_id", "created_by_teacher_id", "title", "total_marks", "is_active"},
		Values: func(e *model.Exam) []any {
			return []any{e.SchoolID, e.GradeID, e.ModuleID, e.CreatedByTeacherID, e.Title, e.TotalMarks, e.IsActive}
		},
		Scan: func(rows pgx.Rows) (*model.Exam, error) {
			e := &model.Exam{}
			err := rows.Scan(&e.ID, &e.CreatedAt, &e.SchoolID, &e.GradeID, &e.ModuleID, &e.CreatedByTeacherID, &e.Title, &e.TotalMarks, &e.IsActive)
			return e, err
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

// NewQuestionStore creates the scoped store for exam questions.
func NewQuestionStore(pool *pgxpool.Pool) *store.Store[*model.Question] {
	return store.New(authz.KindQuestion, store.NewPostgresBackend(pool, store.Descriptor[*model.Question]{
		Table:   "questions",
		Columns: []string{"school_id", "exam_id", "text", "options", "correct_option", "is_active"},
		Values: func(q *model.Question) []any {
			return []any{q.SchoolID, q.ExamID, q.Text, q.Options, q.CorrectOption, q.IsActive}
		},
		Scan: func(rows pgx.Rows) (*model.Question, error) {
			q := &model.Question{}
			err := rows.Scan(&q.ID, &q.CreatedAt, &q.SchoolID, &q.ExamID, &q.Text, &q.Options, &q.CorrectOption, &q.IsActive)
			return q, err
		},
		Fields: map[string]string{
			authz.FieldID:       "id",
			authz.FieldSchoolID: "school_id",
		},
		OrderBy: "created_at, id",
	}))
}

// NewResultStore creates the scoped store for exam results.
func NewResultStore(pool *pgxpool.Pool) *store.Store[*model.Result] {
	return store.New(authz.KindResult, store.NewPostgresBackend(pool, store.Descriptor[*model.Result]{
		Table:   "results",
		Columns: []string{"school_id", "student_id", "exam_id", "marks", "is_published", "is_active"},
		Values: func(r *model.Result) []any {
			return []any{r.SchoolID, r.StudentID, r.ExamID, r.Marks, r.IsPublished, r.IsActive}
		},
		Scan: func(rows pgx.Rows) (*model.Result, error) {
			r := &model.Result{}
			err := rows.Scan(&r.ID, &r.CreatedAt, &r.SchoolID, &r.StudentID, &r.ExamID, &r.Marks, &r.IsPublished, &r.IsActive)
			return r, err
		},
		Fields: map[string]string{
			authz.FieldID:          "id",
			authz.FieldSchoolID:    "school_id",
			authz.FieldStudentID:   "student_id",
			authz.FieldIsPublished: "is_published",
		},
		OrderBy: "created_at, id",
	}))
}
