package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/store"
	"github.com/stretchr/testify/require"
)

type examFixture struct {
	svc      *ExamService
	students *store.Store[*model.Student]
	schoolID uuid.UUID
	gradeID  uuid.UUID
}

func newExamFixture() *examFixture {
	students := memStore[*model.Student](authz.KindStudent)
	return &examFixture{
		svc: NewExamService(
			memStore[*model.Exam](authz.KindExam),
			memStore[*model.Question](authz.KindQuestion),
			memStore[*model.Result](authz.KindResult),
			students,
			testLogger(),
		),
		students: students,
		schoolID: uuid.New(),
		gradeID:  uuid.New(),
	}
}

func (f *examFixture) seedStudent(t *testing.T) *model.Student {
	t.Helper()
	s := &model.Student{SchoolID: f.schoolID, GradeID: f.gradeID, Name: "Alice", Email: "alice@example.com"}
	s.IsActive = true
	require.NoError(t, f.students.Create(context.Background(), s))
	return s
}

func TestCreateExamTeacherIsAlwaysAuthor(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture()
	teacherID := uuid.New()
	otherID := uuid.New()

	exam, err := f.svc.CreateExam(ctx, asTeacher(f.schoolID, teacherID), &model.CreateExamRequest{
		GradeID:            f.gradeID,
		ModuleID:           uuid.New(),
		CreatedByTeacherID: &otherID, // ignored for teacher callers
		Title:              "Midterm",
		TotalMarks:         100,
	})
	require.NoError(t, err)
	require.Equal(t, teacherID, exam.CreatedByTeacherID)
	require.Equal(t, f.schoolID, exam.SchoolID)
}

func TestCreateExamAdminMustNameAuthor(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture()

	_, err := f.svc.CreateExam(ctx, asAdmin(f.schoolID), &model.CreateExamRequest{
		GradeID: f.gradeID, ModuleID: uuid.New(), Title: "Midterm", TotalMarks: 100,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "created_by_teacher_id")

	teacherID := uuid.New()
	exam, err := f.svc.CreateExam(ctx, asAdmin(f.schoolID), &model.CreateExamRequest{
		GradeID: f.gradeID, ModuleID: uuid.New(), CreatedByTeacherID: &teacherID,
		Title: "Midterm", TotalMarks: 100,
	})
	require.NoError(t, err)
	require.Equal(t, teacherID, exam.CreatedByTeacherID)
}

func TestCreateExamStudentForbidden(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture()

	_, err := f.svc.CreateExam(ctx, asStudent(f.schoolID, uuid.New(), f.gradeID), &model.CreateExamRequest{
		GradeID: f.gradeID, ModuleID: uuid.New(), Title: "Midterm", TotalMarks: 100,
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestTeacherSeesOnlyOwnExams(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture()
	teacherA := uuid.New()
	teacherB := uuid.New()

	examA, err := f.svc.CreateExam(ctx, asTeacher(f.schoolID, teacherA), &model.CreateExamRequest{
		GradeID: f.gradeID, ModuleID: uuid.New(), Title: "A's exam", TotalMarks: 100,
	})
	require.NoError(t, err)
	_, err = f.svc.CreateExam(ctx, asTeacher(f.schoolID, teacherB), &model.CreateExamRequest{
		GradeID: f.gradeID, ModuleID: uuid.New(), Title: "B's exam", TotalMarks: 100,
	})
	require.NoError(t, err)

	got, err := f.svc.ListExams(ctx, asTeacher(f.schoolID, teacherA), store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, examA.ID, got[0].ID)

	// Admins see both.
	got, err = f.svc.ListExams(ctx, asAdmin(f.schoolID), store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestUpdateExamKeepsAuthorAndGrade(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture()
	teacherID := uuid.New()
	teacher := asTeacher(f.schoolID, teacherID)

	exam, err := f.svc.CreateExam(ctx, teacher, &model.CreateExamRequest{
		GradeID: f.gradeID, ModuleID: uuid.New(), Title: "Before", TotalMarks: 100,
	})
	require.NoError(t, err)

	other := uuid.New()
	updated, err := f.svc.UpdateExam(ctx, teacher, exam.ID, &model.CreateExamRequest{
		GradeID: uuid.New(), ModuleID: exam.ModuleID, CreatedByTeacherID: &other,
		Title: "After", TotalMarks: 80,
	})
	require.NoError(t, err)
	require.Equal(t, "After", updated.Title)
	require.Equal(t, teacherID, updated.CreatedByTeacherID)
	require.Equal(t, f.gradeID, updated.GradeID, "grade never changes through update")
}

func TestQuestionsRequireTeacher(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture()
	student := asStudent(f.schoolID, uuid.New(), f.gradeID)

	_, err := f.svc.ListQuestions(ctx, student, uuid.New(), store.ListOptions{})
	require.ErrorIs(t, err, ErrForbidden, "question rows carry answer keys")

	_, err = f.svc.GetQuestion(ctx, student, uuid.New())
	require.ErrorIs(t, err, ErrForbidden)
}

func TestCreateQuestionCopiesExamSchool(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture()
	teacher := asTeacher(f.schoolID, uuid.New())

	exam, err := f.svc.CreateExam(ctx, teacher, &model.CreateExamRequest{
		GradeID: f.gradeID, ModuleID: uuid.New(), Title: "Midterm", TotalMarks: 100,
	})
	require.NoError(t, err)

	q, err := f.svc.CreateQuestion(ctx, teacher, exam.ID, &model.CreateQuestionRequest{
		Text:          "2+2?",
		Options:       json.RawMessage(`["3","4","5"]`),
		CorrectOption: "4",
	})
	require.NoError(t, err)
	require.Equal(t, f.schoolID, q.SchoolID)
	require.Equal(t, exam.ID, q.ExamID)
}

func TestListQuestionsScopedToExam(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture()
	teacher := asTeacher(f.schoolID, uuid.New())

	examA, err := f.svc.CreateExam(ctx, teacher, &model.CreateExamRequest{
		GradeID: f.gradeID, ModuleID: uuid.New(), Title: "A", TotalMarks: 100,
	})
	require.NoError(t, err)
	examB, err := f.svc.CreateExam(ctx, teacher, &model.CreateExamRequest{
		GradeID: f.gradeID, ModuleID: uuid.New(), Title: "B", TotalMarks: 100,
	})
	require.NoError(t, err)

	for _, exam := range []*model.Exam{examA, examA, examB} {
		_, err := f.svc.CreateQuestion(ctx, teacher, exam.ID, &model.CreateQuestionRequest{
			Text: "q", Options: json.RawMessage(`["a","b"]`), CorrectOption: "a",
		})
		require.NoError(t, err)
	}

	got, err := f.svc.ListQuestions(ctx, teacher, examA.ID, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestRecordResultMarksCap(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture()
	teacher := asTeacher(f.schoolID, uuid.New())
	student := f.seedStudent(t)

	exam, err := f.svc.CreateExam(ctx, teacher, &model.CreateExamRequest{
		GradeID: f.gradeID, ModuleID: uuid.New(), Title: "Midterm", TotalMarks: 50,
	})
	require.NoError(t, err)

	_, err = f.svc.RecordResult(ctx, teacher, &model.CreateResultRequest{
		StudentID: student.ID, ExamID: exam.ID, Marks: 51,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "marks")

	result, err := f.svc.RecordResult(ctx, teacher, &model.CreateResultRequest{
		StudentID: student.ID, ExamID: exam.ID, Marks: 50,
	})
	require.NoError(t, err)
	require.Equal(t, f.schoolID, result.SchoolID)
	require.False(t, result.IsPublished)
}

func TestStudentSeesOnlyOwnPublishedResults(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture()
	teacher := asTeacher(f.schoolID, uuid.New())
	student := f.seedStudent(t)

	exam, err := f.svc.CreateExam(ctx, teacher, &model.CreateExamRequest{
		GradeID: f.gradeID, ModuleID: uuid.New(), Title: "Midterm", TotalMarks: 100,
	})
	require.NoError(t, err)

	result, err := f.svc.RecordResult(ctx, teacher, &model.CreateResultRequest{
		StudentID: student.ID, ExamID: exam.ID, Marks: 90,
	})
	require.NoError(t, err)

	p := asStudent(f.schoolID, student.ID, f.gradeID)
	got, err := f.svc.ListResults(ctx, p, store.ListOptions{})
	require.NoError(t, err)
	require.Empty(t, got, "unpublished results are invisible")

	_, err = f.svc.GetResult(ctx, p, result.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	published, err := f.svc.PublishResult(ctx, teacher, result.ID)
	require.NoError(t, err)
	require.True(t, published.IsPublished)

	got, err = f.svc.ListResults(ctx, p, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, result.ID, got[0].ID)
}

func TestPublishResultIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture()
	teacher := asTeacher(f.schoolID, uuid.New())
	student := f.seedStudent(t)

	exam, err := f.svc.CreateExam(ctx, teacher, &model.CreateExamRequest{
		GradeID: f.gradeID, ModuleID: uuid.New(), Title: "Midterm", TotalMarks: 100,
	})
	require.NoError(t, err)
	result, err := f.svc.RecordResult(ctx, teacher, &model.CreateResultRequest{
		StudentID: student.ID, ExamID: exam.ID, Marks: 90, IsPublished: true,
	})
	require.NoError(t, err)

	again, err := f.svc.PublishResult(ctx, teacher, result.ID)
	require.NoError(t, err)
	require.True(t, again.IsPublished)
}

func TestUpdateResultRevalidatesMarks(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture()
	teacher := asTeacher(f.schoolID, uuid.New())
	student := f.seedStudent(t)

	exam, err := f.svc.CreateExam(ctx, teacher, &model.CreateExamRequest{
		GradeID: f.gradeID, ModuleID: uuid.New(), Title: "Midterm", TotalMarks: 50,
	})
	require.NoError(t, err)
	result, err := f.svc.RecordResult(ctx, teacher, &model.CreateResultRequest{
		StudentID: student.ID, ExamID: exam.ID, Marks: 40,
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateResult(ctx, teacher, result.ID, &model.CreateResultRequest{
		StudentID: student.ID, ExamID: exam.ID, Marks: 60,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	updated, err := f.svc.UpdateResult(ctx, teacher, result.ID, &model.CreateResultRequest{
		StudentID: student.ID, ExamID: exam.ID, Marks: 45, IsPublished: true,
	})
	require.NoError(t, err)
	require.Equal(t, float64(45), updated.Marks)
	require.True(t, updated.IsPublished)
}
