package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/config"
	"github.com/sekolahub/sekolahub-backend/internal/database"
	"github.com/sekolahub/sekolahub-backend/internal/logger"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo school with one grade, one teacher and a student roster so a
// fresh install has something to log into.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	schoolStore := repository.NewSchoolStore(pool)
	gradeStore := repository.NewGradeStore(pool)
	teacherStore := repository.NewTeacherStore(pool)
	studentStore := repository.NewStudentStore(pool)
	userStore := repository.NewUserStore(pool)

	fmt.Println("=== Seeding Demo School ===")

	// Reuse the demo school when it already exists.
	var schoolID uuid.UUID
	err = pool.QueryRow(ctx, "SELECT id FROM schools WHERE code = $1", "DEMO").Scan(&schoolID)
	if err != nil {
		if err != pgx.ErrNoRows {
			log.Fatal().Err(err).Msg("Failed to check existing school")
		}
		school := &model.School{Name: "Demo High School", Code: "DEMO"}
		school.IsActive = true
		if err := schoolStore.Create(ctx, school); err != nil {
			log.Fatal().Err(err).Msg("Failed to create school")
		}
		schoolID = school.ID
		fmt.Printf("Created school with ID: %s\n", schoolID)
	} else {
		fmt.Printf("Found existing school with ID: %s\n", schoolID)
	}

	grade := &model.Grade{SchoolID: schoolID, Name: "Grade 10A"}
	grade.IsActive = true
	if err := gradeStore.Create(ctx, grade); err != nil {
		log.Fatal().Err(err).Msg("Failed to create grade")
	}
	fmt.Printf("Created grade with ID: %s\n", grade.ID)

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash demo password")
	}

	// One teacher with a login account.
	teacherUser := &model.User{
		SchoolID:     &schoolID,
		Email:        "teacher@demo.sekolahub.dev",
		Name:         "Demo Teacher",
		PasswordHash: string(hash),
		Role:         authz.RoleTeacher,
	}
	teacherUser.IsActive = true
	if err := userStore.Create(ctx, teacherUser); err != nil {
		log.Fatal().Err(err).Msg("Failed to create teacher user")
	}

	teacher := &model.Teacher{
		SchoolID: schoolID,
		UserID:   teacherUser.ID,
		Name:     teacherUser.Name,
		Email:    teacherUser.Email,
	}
	teacher.IsActive = true
	if err := teacherStore.Create(ctx, teacher); err != nil {
		log.Fatal().Err(err).Msg("Failed to create teacher")
	}
	fmt.Printf("Created teacher with ID: %s\n", teacher.ID)

	names := []string{
		"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
		"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
		"Hendra Gunawan", "Ika Sari", "Jamal Mirdad", "Kiki Fatmala", "Lukman Hakim",
		"Maya Septiana", "Nanda Pratama", "Oki Setiana", "Putri Dian", "Qori Maharani",
	}

	for i, name := range names {
		email := fmt.Sprintf("student%02d@demo.sekolahub.dev", i+1)

		studentUser := &model.User{
			SchoolID:     &schoolID,
			Email:        email,
			Name:         name,
			PasswordHash: string(hash),
			Role:         authz.RoleStudent,
		}
		studentUser.IsActive = true
		if err := userStore.Create(ctx, studentUser); err != nil {
			log.Fatal().Err(err).Str("email", email).Msg("Failed to create student user")
		}

		student := &model.Student{
			SchoolID: schoolID,
			GradeID:  grade.ID,
			UserID:   &studentUser.ID,
			Name:     name,
			Email:    email,
		}
		student.IsActive = true
		if err := studentStore.Create(ctx, student); err != nil {
			log.Fatal().Err(err).Str("email", email).Msg("Failed to create student")
		}
	}

	fmt.Printf("Seeded %d students into grade %s\n", len(names), grade.Name)
	fmt.Println("Done. Log in with teacher@demo.sekolahub.dev / demo-password")
}
