package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sekolahub/sekolahub-backend/internal/config"
	"github.com/sekolahub/sekolahub-backend/internal/database"
	"github.com/sekolahub/sekolahub-backend/internal/handler"
	"github.com/sekolahub/sekolahub-backend/internal/logger"
	"github.com/sekolahub/sekolahub-backend/internal/repository"
	"github.com/sekolahub/sekolahub-backend/internal/router"
	"github.com/sekolahub/sekolahub-backend/internal/service"
	"github.com/sekolahub/sekolahub-backend/internal/validator"
	"github.com/sekolahub/sekolahub-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting SekolaHub Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Stores ─────────────────────────────────────────────
	schoolStore := repository.NewSchoolStore(pool)
	gradeStore := repository.NewGradeStore(pool)
	teacherStore := repository.NewTeacherStore(pool)
	studentStore := repository.NewStudentStore(pool)
	userStore := repository.NewUserStore(pool)
	moduleStore := repository.NewModuleStore(pool)
	lessonStore := repository.NewLessonStore(pool)
	completionStore := repository.NewLessonCompletionStore(pool)
	schedulerStore := repository.NewSchedulerStore(pool)
	attendanceStore := repository.NewAttendanceStore(pool)
	examStore := repository.NewExamStore(pool)
	questionStore := repository.NewQuestionStore(pool)
	resultStore := repository.NewResultStore(pool)
	authRepo := repository.NewAuthRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb, authRepo)
	schoolService := service.NewSchoolService(schoolStore, gradeStore)
	peopleService := service.NewPeopleService(teacherStore, studentStore, gradeStore)
	userService := service.NewUserService(userStore, authService)
	curriculumService := service.NewCurriculumService(moduleStore, lessonStore, completionStore, rdb, log)
	scheduleService := service.NewScheduleService(schedulerStore, attendanceStore, rdb, log)
	examService := service.NewExamService(examStore, questionStore, resultStore, studentStore, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		School:     handler.NewSchoolHandler(schoolService),
		People:     handler.NewPeopleHandler(peopleService),
		User:       handler.NewUserHandler(userService),
		Curriculum: handler.NewCurriculumHandler(curriculumService),
		Schedule:   handler.NewScheduleHandler(scheduleService),
		Exam:       handler.NewExamHandler(examService),
		WS:         handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	completionWorker := worker.NewCompletionWorker(completionStore, rdb, log)
	go completionWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the background worker and wait for the queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}
