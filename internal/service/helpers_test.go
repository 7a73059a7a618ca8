package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/store"
)

// Test principals. Memory-backed stores evaluate the same predicates the
// SQL backend compiles, so these exercise the real scoping rules.

func asAdmin(schoolID uuid.UUID) authz.Principal {
	return authz.Principal{Role: authz.RoleAdmin, SchoolID: &schoolID, Authenticated: true}
}

func asStaff(schoolID uuid.UUID) authz.Principal {
	return authz.Principal{Role: authz.RoleStaff, SchoolID: &schoolID, Authenticated: true}
}

func asTeacher(schoolID, teacherID uuid.UUID) authz.Principal {
	return authz.Principal{Role: authz.RoleTeacher, SchoolID: &schoolID, TeacherID: &teacherID, Authenticated: true}
}

func asStudent(schoolID, studentID, gradeID uuid.UUID) authz.Principal {
	return authz.Principal{Role: authz.RoleStudent, SchoolID: &schoolID, StudentID: &studentID, GradeID: &gradeID, Authenticated: true}
}

func memStore[T store.Entity](kind authz.Kind) *store.Store[T] {
	return store.New(kind, store.NewMemoryBackend[T]())
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// deadRedis returns a client whose every command fails with a dial error.
// Services treat cache and pubsub failures as soft, so this exercises the
// degraded paths without a running Redis.
func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
}

func seedGrade(s *store.Store[*model.Grade], schoolID uuid.UUID, name string) *model.Grade {
	g := &model.Grade{SchoolID: schoolID, Name: name}
	g.IsActive = true
	_ = s.Create(context.Background(), g)
	return g
}
