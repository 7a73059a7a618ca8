// Package repository binds each entity kind to its table through a store
// descriptor. All scoped data access goes through the resulting stores; the
// only raw SQL left here are the pre-authentication lookups in auth.go.
package repository

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/store"
)

// NewSchoolStore creates the scoped store for schools.
func NewSchoolStore(pool *pgxpool.Pool) *store.Store[*model.School] {
	return store.New(authz.KindSchool, store.NewPostgresBackend(pool, store.Descriptor[*model.School]{
		Table:   "schools",
		Columns: []string{"name", "code", "is_active"},
		Values: func(s *model.School) []any {
			return []any{s.Name, s.Code, s.IsActive}
		},
		Scan: func(rows pgx.Rows) (*model.School, error) {
			s := &model.School{}
			err := rows.Scan(&s.ID, &s.CreatedAt, &s.Name, &s.Code, &s.IsActive)
			return s, err
		},
		Fields: map[string]string{
			authz.FieldID: "id",
		},
		OrderBy: "created_at, id",
	}))
}

// NewGradeStore creates the scoped store for grades. A grade's own id serves
// as its grade_id for curriculum scoping.
func NewGradeStore(pool *pgxpool.Pool) *store.Store[*model.Grade] {
	return store.New(authz.KindGrade, store.NewPostgresBackend(pool, store.Descriptor[*model.Grade]{
		Table:   "grades",
		Columns: []string{"school_id", "name", "class_teacher_id", "is_active"},
		Values: func(g *model.Grade) []any {
			return []any{g.SchoolID, g.Name, g.ClassTeacherID, g.IsActive}
		},
		Scan: func(rows pgx.Rows) (*model.Grade, error) {
			g := &model.Grade{}
			err := rows.Scan(&g.ID, &g.CreatedAt, &g.SchoolID, &g.Name, &g.ClassTeacherID, &g.IsActive)
			return g, err
		},
		Fields: map[string]string{
			authz.FieldID:       "id",
			authz.FieldGradeID:  "id",
			authz.FieldSchoolID: "school_id",
		},
		OrderBy: "created_at, id",
	}))
}
