package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/store"
	"github.com/stretchr/testify/require"
)

func newCurriculumService() *CurriculumService {
	return NewCurriculumService(
		memStore[*model.Module](authz.KindModule),
		memStore[*model.Lesson](authz.KindLesson),
		memStore[*model.LessonCompletion](authz.KindLessonCompletion),
		deadRedis(),
		testLogger(),
	)
}

func TestCreateModuleStampsTeacherAuthor(t *testing.T) {
	ctx := context.Background()
	svc := newCurriculumService()
	schoolID := uuid.New()
	teacherID := uuid.New()

	module, err := svc.CreateModule(ctx, asTeacher(schoolID, teacherID), &model.CreateModuleRequest{
		GradeID: uuid.New(), Name: "Algebra",
	})
	require.NoError(t, err)
	require.NotNil(t, module.CreatedByTeacherID)
	require.Equal(t, teacherID, *module.CreatedByTeacherID)
	require.Equal(t, schoolID, module.SchoolID)

	// Non-teacher authors stay unset.
	module, err = svc.CreateModule(ctx, asAdmin(schoolID), &model.CreateModuleRequest{
		GradeID: uuid.New(), Name: "Geometry",
	})
	require.NoError(t, err)
	require.Nil(t, module.CreatedByTeacherID)
}

func TestCreateModuleStudentForbidden(t *testing.T) {
	ctx := context.Background()
	svc := newCurriculumService()

	_, err := svc.CreateModule(ctx, asStudent(uuid.New(), uuid.New(), uuid.New()), &model.CreateModuleRequest{
		GradeID: uuid.New(), Name: "Algebra",
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestCreateLessonDenormalizesGrade(t *testing.T) {
	ctx := context.Background()
	svc := newCurriculumService()
	schoolID := uuid.New()
	gradeID := uuid.New()
	admin := asAdmin(schoolID)

	module, err := svc.CreateModule(ctx, admin, &model.CreateModuleRequest{GradeID: gradeID, Name: "Algebra"})
	require.NoError(t, err)

	lesson, err := svc.CreateLesson(ctx, admin, &model.CreateLessonRequest{
		ModuleID: module.ID, Title: "Linear equations", Content: "ax + b = 0",
	})
	require.NoError(t, err)
	require.Equal(t, gradeID, lesson.GradeID, "lesson copies the module's grade")
	require.Equal(t, schoolID, lesson.SchoolID)
}

func TestCreateLessonRejectsForeignModule(t *testing.T) {
	ctx := context.Background()
	svc := newCurriculumService()

	module, err := svc.CreateModule(ctx, asAdmin(uuid.New()), &model.CreateModuleRequest{
		GradeID: uuid.New(), Name: "Algebra",
	})
	require.NoError(t, err)

	_, err = svc.CreateLesson(ctx, asAdmin(uuid.New()), &model.CreateLessonRequest{
		ModuleID: module.ID, Title: "Theft",
	})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateLessonResyncsGradeOnModuleMove(t *testing.T) {
	ctx := context.Background()
	svc := newCurriculumService()
	schoolID := uuid.New()
	admin := asAdmin(schoolID)

	moduleA, err := svc.CreateModule(ctx, admin, &model.CreateModuleRequest{GradeID: uuid.New(), Name: "A"})
	require.NoError(t, err)
	moduleB, err := svc.CreateModule(ctx, admin, &model.CreateModuleRequest{GradeID: uuid.New(), Name: "B"})
	require.NoError(t, err)

	lesson, err := svc.CreateLesson(ctx, admin, &model.CreateLessonRequest{ModuleID: moduleA.ID, Title: "L"})
	require.NoError(t, err)

	moved, err := svc.UpdateLesson(ctx, admin, lesson.ID, &model.CreateLessonRequest{
		ModuleID: moduleB.ID, Title: "L",
	})
	require.NoError(t, err)
	require.Equal(t, moduleB.ID, moved.ModuleID)
	require.Equal(t, moduleB.GradeID, moved.GradeID)
}

func TestStudentCurriculumVisibility(t *testing.T) {
	ctx := context.Background()
	svc := newCurriculumService()
	schoolID := uuid.New()
	gradeA := uuid.New()
	gradeB := uuid.New()
	admin := asAdmin(schoolID)

	_, err := svc.CreateModule(ctx, admin, &model.CreateModuleRequest{GradeID: gradeA, Name: "For A"})
	require.NoError(t, err)
	_, err = svc.CreateModule(ctx, admin, &model.CreateModuleRequest{GradeID: gradeB, Name: "For B"})
	require.NoError(t, err)

	got, err := svc.ListModules(ctx, asStudent(schoolID, uuid.New(), gradeA), store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "For A", got[0].Name)

	// A student with no grade sees no curriculum at all.
	studentID := uuid.New()
	noGrade := authz.Principal{Role: authz.RoleStudent, SchoolID: &schoolID, StudentID: &studentID, Authenticated: true}
	got, err = svc.ListModules(ctx, noGrade, store.ListOptions{})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestCompleteLessonRequiresVisibleLesson(t *testing.T) {
	ctx := context.Background()
	svc := newCurriculumService()
	schoolID := uuid.New()
	gradeA := uuid.New()
	gradeB := uuid.New()
	admin := asAdmin(schoolID)

	module, err := svc.CreateModule(ctx, admin, &model.CreateModuleRequest{GradeID: gradeB, Name: "For B"})
	require.NoError(t, err)
	lesson, err := svc.CreateLesson(ctx, admin, &model.CreateLessonRequest{ModuleID: module.ID, Title: "L"})
	require.NoError(t, err)

	// A grade-A student cannot complete a grade-B lesson.
	err = svc.CompleteLesson(ctx, asStudent(schoolID, uuid.New(), gradeA), &model.CompleteLessonRequest{
		LessonID: lesson.ID,
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	// Teachers do not complete lessons; a student principal without a
	// student record cannot either.
	err = svc.CompleteLesson(ctx, asTeacher(schoolID, uuid.New()), &model.CompleteLessonRequest{LessonID: lesson.ID})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestListCompletionsStudentSelfFilter(t *testing.T) {
	ctx := context.Background()
	completions := memStore[*model.LessonCompletion](authz.KindLessonCompletion)
	svc := NewCurriculumService(
		memStore[*model.Module](authz.KindModule),
		memStore[*model.Lesson](authz.KindLesson),
		completions,
		deadRedis(),
		testLogger(),
	)

	schoolID := uuid.New()
	aliceID := uuid.New()
	bobID := uuid.New()
	for _, sid := range []uuid.UUID{aliceID, bobID} {
		c := &model.LessonCompletion{SchoolID: schoolID, StudentID: sid, LessonID: uuid.New()}
		c.IsActive = true
		require.NoError(t, completions.Create(ctx, c))
	}

	got, err := svc.ListCompletions(ctx, asStudent(schoolID, aliceID, uuid.New()), store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, aliceID, got[0].StudentID)

	got, err = svc.ListCompletions(ctx, asStaff(schoolID), store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 2)
}
