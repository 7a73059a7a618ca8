package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/store"
)

// ExamService handles exams, their question banks, and student results.
// Questions carry correct answers and are never exposed below Teacher.
type ExamService struct {
	exams     *store.Store[*model.Exam]
	questions *store.Store[*model.Question]
	results   *store.Store[*model.Result]
	students  *store.Store[*model.Student]
	log       zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(
	exams *store.Store[*model.Exam],
	questions *store.Store[*model.Question],
	results *store.Store[*model.Result],
	students *store.Store[*model.Student],
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		exams:     exams,
		questions: questions,
		results:   results,
		students:  students,
		log:       log.With().Str("component", "exam_service").Logger(),
	}
}

// ListExams returns the exams visible to p.
func (s *ExamService) ListExams(ctx context.Context, p authz.Principal, opts store.ListOptions) ([]*model.Exam, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	return s.exams.List(ctx, p, opts)
}

// GetExam retrieves one exam by id.
func (s *ExamService) GetExam(ctx context.Context, p authz.Principal, id uuid.UUID) (*model.Exam, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	return s.exams.GetByID(ctx, p, id)
}

// CreateExam creates an exam in the caller's school. Teacher callers are the
// author; higher roles must name one.
func (s *ExamService) CreateExam(ctx context.Context, p authz.Principal, req *model.CreateExamRequest) (*model.Exam, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	schoolID, err := tenantSchool(p, nil)
	if err != nil {
		return nil, err
	}
	author, err := examAuthor(p, req.CreatedByTeacherID)
	if err != nil {
		return nil, err
	}
	exam := &model.Exam{
		SchoolID:           schoolID,
		GradeID:            req.GradeID,
		ModuleID:           req.ModuleID,
		CreatedByTeacherID: author,
		Title:              req.Title,
		TotalMarks:         req.TotalMarks,
	}
	exam.IsActive = true
	if err := s.exams.Create(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// UpdateExam replaces an exam's row, keeping school, grade and author. A
// teacher can only reach their own exams through scope.
func (s *ExamService) UpdateExam(ctx context.Context, p authz.Principal, id uuid.UUID, req *model.CreateExamRequest) (*model.Exam, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	existing, err := s.exams.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	exam := &model.Exam{
		SchoolID:           existing.SchoolID,
		GradeID:            existing.GradeID,
		ModuleID:           req.ModuleID,
		CreatedByTeacherID: existing.CreatedByTeacherID,
		Title:              req.Title,
		TotalMarks:         req.TotalMarks,
	}
	exam.IsActive = existing.IsActive
	if err := s.exams.Update(ctx, p, id, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// DeleteExam hard-deletes an exam. Existing questions or results block the
// delete via foreign keys.
func (s *ExamService) DeleteExam(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return err
	}
	return s.exams.Delete(ctx, p, id)
}

// examAuthor resolves the authoring teacher for a new exam.
func examAuthor(p authz.Principal, requested *uuid.UUID) (uuid.UUID, error) {
	if p.Role == authz.RoleTeacher {
		if p.TeacherID == nil {
			return uuid.Nil, ErrForbidden
		}
		return *p.TeacherID, nil
	}
	if requested == nil {
		return uuid.Nil, validationErr("created_by_teacher_id", "created_by_teacher_id is required")
	}
	return *requested, nil
}

// ListQuestions returns an exam's questions. Question rows include the
// correct option, so access starts at Teacher.
func (s *ExamService) ListQuestions(ctx context.Context, p authz.Principal, examID uuid.UUID, opts store.ListOptions) ([]*model.Question, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	if _, err := s.exams.GetByID(ctx, p, examID); err != nil {
		return nil, err
	}
	questions, err := s.questions.List(ctx, p, opts)
	if err != nil {
		return nil, err
	}
	out := questions[:0]
	for _, q := range questions {
		if q.ExamID == examID {
			out = append(out, q)
		}
	}
	return out, nil
}

// GetQuestion retrieves one question by id.
func (s *ExamService) GetQuestion(ctx context.Context, p authz.Principal, id uuid.UUID) (*model.Question, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	return s.questions.GetByID(ctx, p, id)
}

// CreateQuestion adds a question to an exam. The exam must be visible to the
// caller; school is copied from it.
func (s *ExamService) CreateQuestion(ctx context.Context, p authz.Principal, examID uuid.UUID, req *model.CreateQuestionRequest) (*model.Question, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	exam, err := s.exams.GetByID(ctx, p, examID)
	if err != nil {
		return nil, err
	}
	question := &model.Question{
		SchoolID:      exam.SchoolID,
		ExamID:        exam.ID,
		Text:          req.Text,
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
	}
	question.IsActive = true
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// UpdateQuestion replaces a question's content, keeping school and exam.
func (s *ExamService) UpdateQuestion(ctx context.Context, p authz.Principal, id uuid.UUID, req *model.CreateQuestionRequest) (*model.Question, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	existing, err := s.questions.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	question := &model.Question{
		SchoolID:      existing.SchoolID,
		ExamID:        existing.ExamID,
		Text:          req.Text,
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
	}
	question.IsActive = existing.IsActive
	if err := s.questions.Update(ctx, p, id, question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion hard-deletes a question.
func (s *ExamService) DeleteQuestion(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return err
	}
	return s.questions.Delete(ctx, p, id)
}

// ListResults returns the results visible to p. Student scope already limits
// rows to the caller's own published results.
func (s *ExamService) ListResults(ctx context.Context, p authz.Principal, opts store.ListOptions) ([]*model.Result, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	return s.results.List(ctx, p, opts)
}

// GetResult retrieves one result by id.
func (s *ExamService) GetResult(ctx context.Context, p authz.Principal, id uuid.UUID) (*model.Result, error) {
	if err := requireRole(p, authz.RoleStudent); err != nil {
		return nil, err
	}
	return s.results.GetByID(ctx, p, id)
}

// RecordResult writes a student's result for an exam. Both the exam and the
// student must be visible to the caller, and marks cannot exceed the exam's
// total.
func (s *ExamService) RecordResult(ctx context.Context, p authz.Principal, req *model.CreateResultRequest) (*model.Result, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	exam, err := s.exams.GetByID(ctx, p, req.ExamID)
	if err != nil {
		return nil, err
	}
	if req.Marks > exam.TotalMarks {
		return nil, validationErr("marks", "marks cannot exceed the exam total")
	}
	student, err := s.students.GetByID(ctx, p, req.StudentID)
	if err != nil {
		return nil, err
	}
	result := &model.Result{
		SchoolID:    student.SchoolID,
		StudentID:   student.ID,
		ExamID:      exam.ID,
		Marks:       req.Marks,
		IsPublished: req.IsPublished,
	}
	result.IsActive = true
	if err := s.results.Create(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateResult replaces a result's marks and publication flag.
func (s *ExamService) UpdateResult(ctx context.Context, p authz.Principal, id uuid.UUID, req *model.CreateResultRequest) (*model.Result, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	existing, err := s.results.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	exam, err := s.exams.GetByID(ctx, p, existing.ExamID)
	if err != nil {
		return nil, err
	}
	if req.Marks > exam.TotalMarks {
		return nil, validationErr("marks", "marks cannot exceed the exam total")
	}
	result := &model.Result{
		SchoolID:    existing.SchoolID,
		StudentID:   existing.StudentID,
		ExamID:      existing.ExamID,
		Marks:       req.Marks,
		IsPublished: req.IsPublished,
	}
	result.IsActive = existing.IsActive
	if err := s.results.Update(ctx, p, id, result); err != nil {
		return nil, err
	}
	return result, nil
}

// PublishResult flips a result to published so the student can see it.
func (s *ExamService) PublishResult(ctx context.Context, p authz.Principal, id uuid.UUID) (*model.Result, error) {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return nil, err
	}
	existing, err := s.results.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if existing.IsPublished {
		return existing, nil
	}
	existing.IsPublished = true
	if err := s.results.Update(ctx, p, id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteResult hard-deletes a result.
func (s *ExamService) DeleteResult(ctx context.Context, p authz.Principal, id uuid.UUID) error {
	if err := requireRole(p, authz.RoleTeacher); err != nil {
		return err
	}
	return s.results.Delete(ctx, p, id)
}
