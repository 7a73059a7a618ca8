package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/store"
)

// SchoolService handles schools and grades. Schools are the tenant root:
// only SuperAdmins create or delete them, and every other role is confined
// to its own school row by the scope engine.
type SchoolService struct {
	schools *store.Store[*model.School]
	grades  *store.Store[*model.Grade]
}

// NewSchoolService creates a new SchoolService.
func NewSchoolService(schools *store.Store[*model.School], grades *store.Store[*model.Grade]) *SchoolService {
	return &SchoolService{schools: schools, grades: grades}
}

// ListSchools returns the schools visible to p.
func (s *SchoolService) ListSchools(ctx context.Context, p authz.Principal, opts store.ListOptions) ([]*model.School, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	return s.schools.List(ctx, p, opts)
}

// GetSchool retrieves one school by id.
func (s *SchoolService) GetSchool(ctx context.Context, p authz.Principal, id uuid.UUID) (*model.School, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	return s.schools.GetByID(ctx, p, id)
}

// CreateSchool creates a new tenant root.
func (s *SchoolService) CreateSchool(ctx context.Context, p authz.Principal, req *model.CreateSchoolRequest) (*model.School, error) {
	if err := requireRole(p, authz.RoleSuperAdmin); err != nil {
		return nil, err
	}
	school := &model.School{Name: req.Name, Code: req.Code}
	school.IsActive = true
	if err := s.schools.Create(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

// UpdateSchool replaces a school's row.
func (s *SchoolService) UpdateSchool(ctx context.Context, p authz.Principal, id uuid.UUID, req *model.CreateSchoolRequest) (*model.School, error) {
	if err := requireRole(p, authz.RoleAdmin); err != nil {
		return nil, err
	}
	existing, err := s.schools.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	school := &model.School{Name: req.Name, Code: req.Code}
	school.IsActive = existing.IsActive
	if err := s.schools.Update(ctx, p, id, school); err != nil {
		return nil, err
	}
	return school, nil
}

// DeleteSchool hard-deletes a school. Child rows block the delete through
// foreign keys; the handler surfaces that as a dependency conflict.
func (s *SchoolService) DeleteSchool(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if err := requireRole(p, authz.RoleSuperAdmin); err != nil {
		return err
	}
	return s.schools.Delete(ctx, p, id)
}

// ListGrades returns the grades visible to p.
func (s *SchoolService) ListGrades(ctx context.Context, p authz.Principal, opts store.ListOptions) ([]*model.Grade, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	return s.grades.List(ctx, p, opts)
}

// GetGrade retrieves one grade by id.
func (s *SchoolService) GetGrade(ctx context.Context, p authz.Principal, id uuid.UUID) (*model.Grade, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	return s.grades.GetByID(ctx, p, id)
}

// CreateGrade creates a grade in the principal's school (or the requested
// school for SuperAdmins).
func (s *SchoolService) CreateGrade(ctx context.Context, p authz.Principal, req *model.CreateGradeRequest) (*model.Grade, error) {
	if err := requireRole(p, authz.RolePrincipal); err != nil {
		return nil, err
	}
	schoolID, err := tenantSchool(p, req.SchoolID)
	if err != nil {
		return nil, err
	}
	grade := &model.Grade{
		SchoolID:       schoolID,
		Name:           req.Name,
		ClassTeacherID: req.ClassTeacherID,
	}
	grade.IsActive = true
	if err := s.grades.Create(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// UpdateGrade replaces a grade's row, keeping its school.
func (s *SchoolService) UpdateGrade(ctx context.Context, p authz.Principal, id uuid.UUID, req *model.CreateGradeRequest) (*model.Grade, error) {
	if err := requireRole(p, authz.RolePrincipal); err != nil {
		return nil, err
	}
	existing, err := s.grades.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	grade := &model.Grade{
		SchoolID:       existing.SchoolID,
		Name:           req.Name,
		ClassTeacherID: req.ClassTeacherID,
	}
	grade.IsActive = existing.IsActive
	if err := s.grades.Update(ctx, p, id, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// DeleteGrade hard-deletes a grade.
func (s *SchoolService) DeleteGrade(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if err := requireRole(p, authz.RolePrincipal); err != nil {
		return err
	}
	return s.grades.Delete(ctx, p, id)
}
