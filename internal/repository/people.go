package repository

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/store"
)

// NewTeacherStore creates the scoped store for teachers.
func NewTeacherStore(pool *pgxpool.Pool) *store.Store[*model.Teacher] {
	return store.New(authz.KindTeacher, store.NewPostgresBackend(pool, store.Descriptor[*model.Teacher]{
		Table:   "teachers",
		Columns: []string{"school_id", "user_id", "name", "email", "is_active"},
		Values: func(t *model.Teacher) []any {
			return []any{t.SchoolID, t.UserID, t.Name, t.Email, t.IsActive}
		},
		Scan: func(rows pgx.Rows) (*model.Teacher, error) {
			t := &model.Teacher{}
			err := rows.Scan(&t.ID, &t.CreatedAt, &t.SchoolID, &t.UserID, &t.Name, &t.Email, &t.IsActive)
			return t, err
		},
		Fields: map[string]string{
			authz.FieldID:       "id",
			authz.FieldSchoolID: "school_id",
		},
		OrderBy: "name, id",
	}))
}

// NewStudentStore creates the scoped store for students.
func NewStudentStore(pool *pgxpool.Pool) *store.Store[*model.Student] {
	return store.New(authz.KindStudent, store.NewPostgresBackend(pool, store.Descriptor[*model.Student]{
		Table:   "students",
		Columns: []string{"school_id", "grade_id", "user_id", "name", "email", "is_active"},
		Values: func(s *model.Student) []any {
			return []any{s.SchoolID, s.GradeID, s.UserID, s.Name, s.Email, s.IsActive}
		},
		Scan: func(rows pgx.Rows) (*model.Student, error) {
			s := &model.Student{}
			err := rows.Scan(&s.ID, &s.CreatedAt, &s.SchoolID, &s.GradeID, &s.UserID, &s.Name, &s.Email, &s.IsActive)
			return s, err
		},
		Fields: map[string]string{
			authz.FieldID:       "id",
			authz.FieldSchoolID: "school_id",
			authz.FieldGradeID:  "grade_id",
		},
		OrderBy: "name, id",
	}))
}

// NewUserStore creates the scoped store for login users. SuperAdmin users
// carry a NULL school_id, which the tenant predicate never matches.
func NewUserStore(pool *pgxpool.Pool) *store.Store[*model.User] {
	return store.New(authz.KindUser, store.NewPostgresBackend(pool, store.Descriptor[*model.User]{
		Table:   "users",
		Columns: []string{"school_id", "email", "name", "password_hash", "role", "is_active"},
		Values: func(u *model.User) []any {
			return []any{u.SchoolID, u.Email, u.Name, u.PasswordHash, string(u.Role), u.IsActive}
		},
		Scan: func(rows pgx.Rows) (*model.User, error) {
			u := &model.User{}
			var role string
			err := rows.Scan(&u.ID, &u.CreatedAt, &u.SchoolID, &u.Email, &u.Name, &u.PasswordHash, &role, &u.IsActive)
			u.Role = authz.Role(role)
			return u, err
		},
		Fields: map[string]string{
			authz.FieldID:       "id",
			authz.FieldSchoolID: "school_id",
		},
		OrderBy: "email, id",
	}))
}
