package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/store"
)

// PeopleService handles teachers and students. Students reading the student
// collection are confined to their own row by the scope engine, so the same
// List call serves staff and students alike.
type PeopleService struct {
	teachers *store.Store[*model.Teacher]
	students *store.Store[*model.Student]
	grades   *store.Store[*model.Grade]
}

// NewPeopleService creates a new PeopleService.
func NewPeopleService(teachers *store.Store[*model.Teacher], students *store.Store[*model.Student], grades *store.Store[*model.Grade]) *PeopleService {
	return &PeopleService{teachers: teachers, students: students, grades: grades}
}

// ListTeachers returns the teachers visible to p.
func (s *PeopleService) ListTeachers(ctx context.Context, p authz.Principal, opts store.ListOptions) ([]*model.Teacher, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	return s.teachers.List(ctx, p, opts)
}

// GetTeacher retrieves one teacher by id.
func (s *PeopleService) GetTeacher(ctx context.Context, p authz.Principal, id uuid.UUID) (*model.Teacher, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	return s.teachers.GetByID(ctx, p, id)
}

// CreateTeacher creates a teacher in the principal's school.
func (s *PeopleService) CreateTeacher(ctx context.Context, p authz.Principal, req *model.CreateTeacherRequest) (*model.Teacher, error) {
	if err := requireRole(p, authz.RoleAdmin); err != nil {
		return nil, err
	}
	schoolID, err := tenantSchool(p, req.SchoolID)
	if err != nil {
		return nil, err
	}
	teacher := &model.Teacher{
		SchoolID: schoolID,
		UserID:   req.UserID,
		Name:     req.Name,
		Email:    req.Email,
	}
	teacher.IsActive = true
	if err := s.teachers.Create(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

// UpdateTeacher replaces a teacher's row, keeping school and user link.
func (s *PeopleService) UpdateTeacher(ctx context.Context, p authz.Principal, id uuid.UUID, req *model.CreateTeacherRequest) (*model.Teacher, error) {
	if err := requireRole(p, authz.RoleAdmin); err != nil {
		return nil, err
	}
	existing, err := s.teachers.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	teacher := &model.Teacher{
		SchoolID: existing.SchoolID,
		UserID:   existing.UserID,
		Name:     req.Name,
		Email:    req.Email,
	}
	teacher.IsActive = existing.IsActive
	if err := s.teachers.Update(ctx, p, id, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

// DeleteTeacher hard-deletes a teacher.
func (s *PeopleService) DeleteTeacher(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if err := requireRole(p, authz.RoleAdmin); err != nil {
		return err
	}
	return s.teachers.Delete(ctx, p, id)
}

// ListStudents returns the students visible to p. For a student principal
// the scope predicate pins this to their own single row.
func (s *PeopleService) ListStudents(ctx context.Context, p authz.Principal, opts store.ListOptions) ([]*model.Student, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	return s.students.List(ctx, p, opts)
}

// GetStudent retrieves one student by id.
func (s *PeopleService) GetStudent(ctx context.Context, p authz.Principal, id uuid.UUID) (*model.Student, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	return s.students.GetByID(ctx, p, id)
}

// CreateStudent creates a student. The grade must be visible to the caller,
// which also pins the student to the caller's school.
func (s *PeopleService) CreateStudent(ctx context.Context, p authz.Principal, req *model.CreateStudentRequest) (*model.Student, error) {
	if err := requireRole(p, authz.RoleStaff); err != nil {
		return nil, err
	}
	grade, err := s.grades.GetByID(ctx, p, req.GradeID)
	if err != nil {
		return nil, err
	}
	student := &model.Student{
		SchoolID: grade.SchoolID,
		GradeID:  grade.ID,
		UserID:   req.UserID,
		Name:     req.Name,
		Email:    req.Email,
	}
	student.IsActive = true
	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// UpdateStudent replaces a student's row. Grade moves are allowed within
// the caller's scope; the school never changes.
func (s *PeopleService) UpdateStudent(ctx context.Context, p authz.Principal, id uuid.UUID, req *model.CreateStudentRequest) (*model.Student, error) {
	if err := requireRole(p, authz.RoleStaff); err != nil {
		return nil, err
	}
	existing, err := s.students.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	grade, err := s.grades.GetByID(ctx, p, req.GradeID)
	if err != nil {
		return nil, err
	}
	student := &model.Student{
		SchoolID: existing.SchoolID,
		GradeID:  grade.ID,
		UserID:   req.UserID,
		Name:     req.Name,
		Email:    req.Email,
	}
	student.IsActive = existing.IsActive
	if err := s.students.Update(ctx, p, id, student); err != nil {
		return nil, err
	}
	return student, nil
}

// DeleteStudent hard-deletes a student.
func (s *PeopleService) DeleteStudent(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if err := requireRole(p, authz.RoleStaff); err != nil {
		return err
	}
	return s.students.Delete(ctx, p, id)
}
