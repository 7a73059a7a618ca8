package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/config"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/store"
)

// CompletionMessage is the queued form of a lesson-completion marker,
// consumed by the batch worker.
type CompletionMessage struct {
	SchoolID    uuid.UUID `json:"school_id"`
	StudentID   uuid.UUID `json:"student_id"`
	LessonID    uuid.UUID `json:"lesson_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// CurriculumService handles modules, lessons and lesson-completion markers.
// Lessons carry a denormalized grade copied from the owning module so grade
// scoping needs no join; this service is what keeps that copy honest.
type CurriculumService struct {
	modules     *store.Store[*model.Module]
	lessons     *store.Store[*model.Lesson]
	completions *store.Store[*model.LessonCompletion]
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewCurriculumService creates a new CurriculumService.
func NewCurriculumService(
	modules *store.Store[*model.Module],
	lessons *store.Store[*model.Lesson],
	completions *store.Store[*model.LessonCompletion],
	rdb *redis.Client,
	log zerolog.Logger,
) *CurriculumService {
	return &CurriculumService{
		modules:     modules,
		lessons:     lessons,
		completions: completions,
		rdb:         rdb,
		log:         log.With().Str("component", "curriculum_service").Logger(),
	}
}

// ListModules returns the modules visible to p.
func (s *CurriculumService) ListModules(ctx context.Context, p authz.Principal, opts store.ListOptions) ([]*model.Module, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	return s.modules.List(ctx, p, opts)
}

// GetModule retrieves one module by id.
func (s *CurriculumService) GetModule(ctx context.Context, p authz.Principal, id uuid.UUID) (*model.Module, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	return s.modules.GetByID(ctx, p, id)
}

// CreateModule creates a module in the caller's school. Teacher authors are
// stamped onto the row.
func (s *CurriculumService) CreateModule(ctx context.Context, p authz.Principal, req *model.CreateModuleRequest) (*model.Module, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	schoolID, err := tenantSchool(p, nil)
	if err != nil {
		return nil, err
	}
	module := &model.Module{
		SchoolID:    schoolID,
		GradeID:     req.GradeID,
		Name:        req.Name,
		Description: req.Description,
	}
	if p.Role == authz.RoleTeacher {
		module.CreatedByTeacherID = p.TeacherID
	}
	module.IsActive = true
	if err := s.modules.Create(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

// UpdateModule replaces a module's row, keeping school, grade and author.
func (s *CurriculumService) UpdateModule(ctx context.Context, p authz.Principal, id uuid.UUID, req *model.CreateModuleRequest) (*model.Module, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	existing, err := s.modules.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	module := &model.Module{
		SchoolID:           existing.SchoolID,
		GradeID:            existing.GradeID,
		CreatedByTeacherID: existing.CreatedByTeacherID,
		Name:               req.Name,
		Description:        req.Description,
	}
	module.IsActive = existing.IsActive
	if err := s.modules.Update(ctx, p, id, module); err != nil {
		return nil, err
	}
	return module, nil
}

// DeleteModule hard-deletes a module. Existing lessons block the delete via
// foreign keys.
func (s *CurriculumService) DeleteModule(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return err
	}
	return s.modules.Delete(ctx, p, id)
}

// ListLessons returns the lessons visible to p.
func (s *CurriculumService) ListLessons(ctx context.Context, p authz.Principal, opts store.ListOptions) ([]*model.Lesson, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	return s.lessons.List(ctx, p, opts)
}

// GetLesson retrieves one lesson by id.
func (s *CurriculumService) GetLesson(ctx context.Context, p authz.Principal, id uuid.UUID) (*model.Lesson, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	return s.lessons.GetByID(ctx, p, id)
}

// CreateLesson creates a lesson under a module the caller can see, copying
// the module's school and grade onto the row.
func (s *CurriculumService) CreateLesson(ctx context.Context, p authz.Principal, req *model.CreateLessonRequest) (*model.Lesson, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	module, err := s.modules.GetByID(ctx, p, req.ModuleID)
	if err != nil {
		return nil, err
	}
	lesson := &model.Lesson{
		SchoolID: module.SchoolID,
		ModuleID: module.ID,
		GradeID:  module.GradeID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if p.Role == authz.RoleTeacher {
		lesson.CreatedByTeacherID = p.TeacherID
	}
	lesson.IsActive = true
	if err := s.lessons.Create(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// UpdateLesson replaces a lesson's row. Moving it to another module re-syncs
// the denormalized grade.
func (s *CurriculumService) UpdateLesson(ctx context.Context, p authz.Principal, id uuid.UUID, req *model.CreateLessonRequest) (*model.Lesson, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	existing, err := s.lessons.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	module, err := s.modules.GetByID(ctx, p, req.ModuleID)
	if err != nil {
		return nil, err
	}
	lesson := &model.Lesson{
		SchoolID:           existing.SchoolID,
		ModuleID:           module.ID,
		GradeID:            module.GradeID,
		CreatedByTeacherID: existing.CreatedByTeacherID,
		Title:              req.Title,
		Content:            req.Content,
	}
	lesson.IsActive = existing.IsActive
	if err := s.lessons.Update(ctx, p, id, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// DeleteLesson hard-deletes a lesson.
func (s *CurriculumService) DeleteLesson(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return err
	}
	return s.lessons.Delete(ctx, p, id)
}

// ListCompletions returns completion markers visible to p. Student callers
// are additionally narrowed to their own markers.
func (s *CurriculumService) ListCompletions(ctx context.Context, p authz.Principal, opts store.ListOptions) ([]*model.LessonCompletion, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	if p.Role == authz.RoleStudent && p.StudentID != nil {
		opts.Filter = opts.Filter.And(authz.FieldEq(authz.FieldStudentID, *p.StudentID))
	}
	return s.completions.List(ctx, p, opts)
}

// CompleteLesson queues an append-only completion marker for the calling
// student. The lesson must be visible to them; the batch worker persists the
// marker shortly after.
func (s *CurriculumService) CompleteLesson(ctx context.Context, p authz.Principal, req *model.CompleteLessonRequest) error {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return err
	}
	if p.StudentID == nil {
		return ErrForbidden
	}
	lesson, err := s.lessons.GetByID(ctx, p, req.LessonID)
	if err != nil {
		return err
	}

	msg := CompletionMessage{
		SchoolID:    lesson.SchoolID,
		StudentID:   *p.StudentID,
		LessonID:    lesson.ID,
		CompletedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal completion: %w", err)
	}
	if err := s.rdb.RPush(ctx, config.CacheKey.CompletionQueueKey(), payload).Err(); err != nil {
		return fmt.Errorf("queue completion: %w", err)
	}
	return nil
}
