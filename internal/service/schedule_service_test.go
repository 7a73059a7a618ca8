package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/store"
	"github.com/stretchr/testify/require"
)

func newScheduleService() *ScheduleService {
	return NewScheduleService(
		memStore[*model.Scheduler](authz.KindScheduler),
		memStore[*model.Attendance](authz.KindAttendance),
		deadRedis(),
		testLogger(),
	)
}

func sessionRequest(gradeID, teacherID uuid.UUID) *model.CreateSchedulerRequest {
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	return &model.CreateSchedulerRequest{
		GradeID:   gradeID,
		ModuleID:  uuid.New(),
		TeacherID: teacherID,
		Date:      start,
		StartTime: start,
		EndTime:   start.Add(45 * time.Minute),
	}
}

func TestCreateSessionValidatesTimeRange(t *testing.T) {
	ctx := context.Background()
	svc := newScheduleService()
	schoolID := uuid.New()

	req := sessionRequest(uuid.New(), uuid.New())
	req.EndTime = req.StartTime
	_, err := svc.CreateSession(ctx, asAdmin(schoolID), req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "end_time")

	req.EndTime = req.StartTime.Add(-time.Minute)
	_, err = svc.CreateSession(ctx, asAdmin(schoolID), req)
	require.ErrorAs(t, err, &verr)
}

func TestCreateSessionTeacherSchedulesThemselves(t *testing.T) {
	ctx := context.Background()
	svc := newScheduleService()
	schoolID := uuid.New()
	teacherID := uuid.New()

	req := sessionRequest(uuid.New(), uuid.New()) // payload names another teacher
	session, err := svc.CreateSession(ctx, asTeacher(schoolID, teacherID), req)
	require.NoError(t, err)
	require.Equal(t, teacherID, session.TeacherID)
	require.Equal(t, schoolID, session.SchoolID)
}

func TestTeacherSeesOnlyOwnSessions(t *testing.T) {
	ctx := context.Background()
	svc := newScheduleService()
	schoolID := uuid.New()
	gradeID := uuid.New()
	teacherA := uuid.New()
	teacherB := uuid.New()

	own, err := svc.CreateSession(ctx, asTeacher(schoolID, teacherA), sessionRequest(gradeID, teacherA))
	require.NoError(t, err)
	_, err = svc.CreateSession(ctx, asTeacher(schoolID, teacherB), sessionRequest(gradeID, teacherB))
	require.NoError(t, err)

	got, err := svc.ListSessions(ctx, asTeacher(schoolID, teacherA), store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, own.ID, got[0].ID)

	got, err = svc.ListSessions(ctx, asStaff(schoolID), store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestGradeScheduleFallsBackWhenCacheUnavailable(t *testing.T) {
	ctx := context.Background()
	svc := newScheduleService()
	schoolID := uuid.New()
	gradeA := uuid.New()
	gradeB := uuid.New()
	admin := asAdmin(schoolID)

	_, err := svc.CreateSession(ctx, admin, sessionRequest(gradeA, uuid.New()))
	require.NoError(t, err)
	_, err = svc.CreateSession(ctx, admin, sessionRequest(gradeB, uuid.New()))
	require.NoError(t, err)

	got, err := svc.GradeSchedule(ctx, admin, gradeA)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, gradeA, got[0].GradeID)
}

func TestGradeScheduleStudentLimitedToOwnGrade(t *testing.T) {
	ctx := context.Background()
	svc := newScheduleService()
	schoolID := uuid.New()
	gradeA := uuid.New()
	gradeB := uuid.New()
	admin := asAdmin(schoolID)

	_, err := svc.CreateSession(ctx, admin, sessionRequest(gradeB, uuid.New()))
	require.NoError(t, err)

	// A student from grade A asking for grade B gets nothing: the grade
	// filter composes with their scope instead of replacing it.
	student := asStudent(schoolID, uuid.New(), gradeA)
	got, err := svc.GradeSchedule(ctx, student, gradeB)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestRecordAttendanceExactlyOneSubject(t *testing.T) {
	ctx := context.Background()
	svc := newScheduleService()
	schoolID := uuid.New()
	teacher := asTeacher(schoolID, uuid.New())
	subjectID := uuid.New()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	var verr *ValidationError

	_, err := svc.RecordAttendance(ctx, teacher, &model.CreateAttendanceRequest{
		Date: date, Status: model.AttendancePresent,
	})
	require.ErrorAs(t, err, &verr, "neither subject set")

	_, err = svc.RecordAttendance(ctx, teacher, &model.CreateAttendanceRequest{
		TeacherID: &subjectID, StudentID: &subjectID, Date: date, Status: model.AttendancePresent,
	})
	require.ErrorAs(t, err, &verr, "both subjects set")

	record, err := svc.RecordAttendance(ctx, teacher, &model.CreateAttendanceRequest{
		StudentID: &subjectID, Date: date, Status: model.AttendancePresent,
	})
	require.NoError(t, err)
	require.Equal(t, schoolID, record.SchoolID)
	require.Nil(t, record.TeacherID)
}

func TestRecordAttendanceRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	svc := newScheduleService()
	subjectID := uuid.New()

	_, err := svc.RecordAttendance(ctx, asTeacher(uuid.New(), uuid.New()), &model.CreateAttendanceRequest{
		StudentID: &subjectID,
		Date:      time.Now(),
		Status:    model.AttendanceStatus("SLEEPING"),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "status")
}

func TestListAttendanceStudentSelfFilter(t *testing.T) {
	ctx := context.Background()
	svc := newScheduleService()
	schoolID := uuid.New()
	teacher := asTeacher(schoolID, uuid.New())
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	aliceID := uuid.New()
	bobID := uuid.New()
	for _, id := range []uuid.UUID{aliceID, bobID} {
		sid := id
		_, err := svc.RecordAttendance(ctx, teacher, &model.CreateAttendanceRequest{
			StudentID: &sid, Date: date, Status: model.AttendancePresent,
		})
		require.NoError(t, err)
	}

	p := asStudent(schoolID, aliceID, uuid.New())
	got, err := svc.ListAttendance(ctx, p, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, aliceID, *got[0].StudentID)

	// Teachers see the school-wide feed, but students cannot fetch single
	// records at all.
	got, err = svc.ListAttendance(ctx, teacher, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	_, err = svc.GetAttendance(ctx, p, got[0].ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateSessionKeepsSchool(t *testing.T) {
	ctx := context.Background()
	svc := newScheduleService()
	schoolID := uuid.New()
	admin := asAdmin(schoolID)

	session, err := svc.CreateSession(ctx, admin, sessionRequest(uuid.New(), uuid.New()))
	require.NoError(t, err)

	req := sessionRequest(uuid.New(), session.TeacherID)
	updated, err := svc.UpdateSession(ctx, admin, session.ID, req)
	require.NoError(t, err)
	require.Equal(t, schoolID, updated.SchoolID)
	require.Equal(t, req.GradeID, updated.GradeID)
}

func TestDeleteSessionCrossTenantMasked(t *testing.T) {
	ctx := context.Background()
	svc := newScheduleService()
	schoolA := uuid.New()
	schoolB := uuid.New()

	session, err := svc.CreateSession(ctx, asAdmin(schoolA), sessionRequest(uuid.New(), uuid.New()))
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteSession(ctx, asAdmin(schoolB), session.ID), store.ErrNotFound)
	require.NoError(t, svc.DeleteSession(ctx, asAdmin(schoolA), session.ID))
}
