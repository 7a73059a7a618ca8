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

func newPeopleService() (*PeopleService, *store.Store[*model.Grade]) {
	grades := memStore[*model.Grade](authz.KindGrade)
	svc := NewPeopleService(
		memStore[*model.Teacher](authz.KindTeacher),
		memStore[*model.Student](authz.KindStudent),
		grades,
	)
	return svc, grades
}

func TestCreateTeacherRoleGate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPeopleService()
	schoolID := uuid.New()
	req := &model.CreateTeacherRequest{UserID: uuid.New(), Name: "T. Rex", Email: "trex@example.com"}

	_, err := svc.CreateTeacher(ctx, asStaff(schoolID), req)
	require.ErrorIs(t, err, ErrForbidden)

	teacher, err := svc.CreateTeacher(ctx, asAdmin(schoolID), req)
	require.NoError(t, err)
	require.Equal(t, schoolID, teacher.SchoolID)
}

func TestListTeachersRequiresTeacher(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPeopleService()
	schoolID := uuid.New()

	_, err := svc.ListTeachers(ctx, asStudent(schoolID, uuid.New(), uuid.New()), store.ListOptions{})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ListTeachers(ctx, asTeacher(schoolID, uuid.New()), store.ListOptions{})
	require.NoError(t, err)
}

func TestCreateStudentInheritsGradeSchool(t *testing.T) {
	ctx := context.Background()
	svc, grades := newPeopleService()
	schoolID := uuid.New()
	grade := seedGrade(grades, schoolID, "10A")

	student, err := svc.CreateStudent(ctx, asStaff(schoolID), &model.CreateStudentRequest{
		GradeID: grade.ID,
		Name:    "Alice",
		Email:   "alice@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, schoolID, student.SchoolID)
	require.Equal(t, grade.ID, student.GradeID)
}

func TestCreateStudentRejectsForeignGrade(t *testing.T) {
	ctx := context.Background()
	svc, grades := newPeopleService()
	grade := seedGrade(grades, uuid.New(), "10A")

	// The grade lives in another school, so it reads as missing.
	_, err := svc.CreateStudent(ctx, asStaff(uuid.New()), &model.CreateStudentRequest{
		GradeID: grade.ID,
		Name:    "Mallory",
		Email:   "mallory@example.com",
	})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestStudentSeesOnlyOwnRow(t *testing.T) {
	ctx := context.Background()
	svc, grades := newPeopleService()
	schoolID := uuid.New()
	grade := seedGrade(grades, schoolID, "10A")
	staff := asStaff(schoolID)

	alice, err := svc.CreateStudent(ctx, staff, &model.CreateStudentRequest{
		GradeID: grade.ID, Name: "Alice", Email: "alice@example.com",
	})
	require.NoError(t, err)
	bob, err := svc.CreateStudent(ctx, staff, &model.CreateStudentRequest{
		GradeID: grade.ID, Name: "Bob", Email: "bob@example.com",
	})
	require.NoError(t, err)

	p := asStudent(schoolID, alice.ID, grade.ID)
	got, err := svc.ListStudents(ctx, p, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, alice.ID, got[0].ID)

	_, err = svc.GetStudent(ctx, p, bob.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Staff see the whole roster.
	got, err = svc.ListStudents(ctx, staff, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestUpdateStudentKeepsSchoolOnGradeMove(t *testing.T) {
	ctx := context.Background()
	svc, grades := newPeopleService()
	schoolID := uuid.New()
	gradeA := seedGrade(grades, schoolID, "10A")
	gradeB := seedGrade(grades, schoolID, "10B")
	staff := asStaff(schoolID)

	student, err := svc.CreateStudent(ctx, staff, &model.CreateStudentRequest{
		GradeID: gradeA.ID, Name: "Alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStudent(ctx, staff, student.ID, &model.CreateStudentRequest{
		GradeID: gradeB.ID, Name: "Alice", Email: "alice@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, gradeB.ID, updated.GradeID)
	require.Equal(t, schoolID, updated.SchoolID)
}

func TestDeleteStudentRoleGate(t *testing.T) {
	ctx := context.Background()
	svc, grades := newPeopleService()
	schoolID := uuid.New()
	grade := seedGrade(grades, schoolID, "10A")

	student, err := svc.CreateStudent(ctx, asStaff(schoolID), &model.CreateStudentRequest{
		GradeID: grade.ID, Name: "Alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	err = svc.DeleteStudent(ctx, asTeacher(schoolID, uuid.New()), student.ID)
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.DeleteStudent(ctx, asStaff(schoolID), student.ID))
}
