package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
	"github.com/sekolahub/sekolahub-backend/internal/config"
	"github.com/sekolahub/sekolahub-backend/internal/handler"
	"github.com/sekolahub/sekolahub-backend/internal/middleware"
	"github.com/sekolahub/sekolahub-backend/internal/response"
	"github.com/sekolahub/sekolahub-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	School     *handler.SchoolHandler
	People     *handler.PeopleHandler
	User       *handler.UserHandler
	Curriculum *handler.CurriculumHandler
	Schedule   *handler.ScheduleHandler
	Exam       *handler.ExamHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// Route-level role gates mirror the service-layer minimums; the services
// remain the authority, the gates just reject obvious mismatches early.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Tag every request before anything else so the envelope metadata and
	// log lines can carry the id.
	router.Use(response.RequestID())

	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 2. API Group (JWT + Single Device) ────────────────────────────
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequireAuth(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		// Schools
		api.GET("/schools", middleware.RequireRole(authz.RoleStudent), handlers.School.ListSchools)
		api.GET("/schools/:id", middleware.RequireRole(authz.RoleStudent), handlers.School.GetSchool)
		api.POST("/schools", middleware.RequireRole(authz.RoleSuperAdmin), handlers.School.CreateSchool)
		api.PUT("/schools/:id", middleware.RequireRole(authz.RoleAdmin), handlers.School.UpdateSchool)
		api.DELETE("/schools/:id", middleware.RequireRole(authz.RoleSuperAdmin), handlers.School.DeleteSchool)

		// Grades
		api.GET("/grades", middleware.RequireRole(authz.RoleStudent), handlers.School.ListGrades)
		api.GET("/grades/:id", middleware.RequireRole(authz.RoleStudent), handlers.School.GetGrade)
		// Timetables are cached server-side for five minutes; let clients
		// hold them just as long.
		api.GET("/grades/:id/schedule", middleware.CacheControl(5*time.Minute), middleware.RequireRole(authz.RoleStudent), handlers.Schedule.GradeSchedule)
		api.POST("/grades", middleware.RequireRole(authz.RolePrincipal), handlers.School.CreateGrade)
		api.PUT("/grades/:id", middleware.RequireRole(authz.RolePrincipal), handlers.School.UpdateGrade)
		api.DELETE("/grades/:id", middleware.RequireRole(authz.RolePrincipal), handlers.School.DeleteGrade)

		// Teachers
		api.GET("/teachers", middleware.RequireRole(authz.RoleTeacher), handlers.People.ListTeachers)
		api.GET("/teachers/:id", middleware.RequireRole(authz.RoleTeacher), handlers.People.GetTeacher)
		api.POST("/teachers", middleware.RequireRole(authz.RoleAdmin), handlers.People.CreateTeacher)
		api.PUT("/teachers/:id", middleware.RequireRole(authz.RoleAdmin), handlers.People.UpdateTeacher)
		api.DELETE("/teachers/:id", middleware.RequireRole(authz.RoleAdmin), handlers.People.DeleteTeacher)

		// Students
		api.GET("/students", middleware.RequireRole(authz.RoleStudent), handlers.People.ListStudents)
		api.GET("/students/:id", middleware.RequireRole(authz.RoleStudent), handlers.People.GetStudent)
		api.POST("/students", middleware.RequireRole(authz.RoleStaff), handlers.People.CreateStudent)
		api.PUT("/students/:id", middleware.RequireRole(authz.RoleStaff), handlers.People.UpdateStudent)
		api.DELETE("/students/:id", middleware.RequireRole(authz.RoleStaff), handlers.People.DeleteStudent)

		// Users (login accounts)
		api.GET("/users", middleware.RequireRole(authz.RoleStaff), handlers.User.ListUsers)
		api.GET("/users/:id", middleware.RequireRole(authz.RoleStaff), handlers.User.GetUser)
		api.POST("/users", middleware.RequireRole(authz.RoleAdmin), handlers.User.CreateUser)
		api.PUT("/users/:id", middleware.RequireRole(authz.RoleAdmin), handlers.User.UpdateUser)
		api.PUT("/users/:id/password", middleware.RequireRole(authz.RoleAdmin), handlers.User.ChangePassword)
		api.PUT("/users/:id/role", middleware.RequireRole(authz.RoleAdmin), handlers.User.ChangeRole)
		api.PUT("/users/:id/active", middleware.RequireRole(authz.RoleAdmin), handlers.User.SetActive)
		api.DELETE("/users/:id", middleware.RequireRole(authz.RoleAdmin), handlers.User.DeleteUser)

		// Modules
		api.GET("/modules", middleware.RequireRole(authz.RoleStudent), handlers.Curriculum.ListModules)
		api.GET("/modules/:id", middleware.RequireRole(authz.RoleStudent), handlers.Curriculum.GetModule)
		api.POST("/modules", middleware.RequireRole(authz.RoleTeacher), handlers.Curriculum.CreateModule)
		api.PUT("/modules/:id", middleware.RequireRole(authz.RoleTeacher), handlers.Curriculum.UpdateModule)
		api.DELETE("/modules/:id", middleware.RequireRole(authz.RoleTeacher), handlers.Curriculum.DeleteModule)

		// Lessons
		api.GET("/lessons", middleware.RequireRole(authz.RoleStudent), handlers.Curriculum.ListLessons)
		api.GET("/lessons/:id", middleware.RequireRole(authz.RoleStudent), handlers.Curriculum.GetLesson)
		api.POST("/lessons", middleware.RequireRole(authz.RoleTeacher), handlers.Curriculum.CreateLesson)
		api.PUT("/lessons/:id", middleware.RequireRole(authz.RoleTeacher), handlers.Curriculum.UpdateLesson)
		api.DELETE("/lessons/:id", middleware.RequireRole(authz.RoleTeacher), handlers.Curriculum.DeleteLesson)

		// Lesson completions
		api.GET("/completions", middleware.RequireRole(authz.RoleStudent), handlers.Curriculum.ListCompletions)
		api.POST("/completions", middleware.RequireRole(authz.RoleStudent), handlers.Curriculum.CompleteLesson)

		// Class sessions
		api.GET("/schedulers", middleware.RequireRole(authz.RoleStudent), handlers.Schedule.ListSessions)
		api.GET("/schedulers/:id", middleware.RequireRole(authz.RoleStudent), handlers.Schedule.GetSession)
		api.POST("/schedulers", middleware.RequireRole(authz.RoleTeacher), handlers.Schedule.CreateSession)
		api.PUT("/schedulers/:id", middleware.RequireRole(authz.RoleTeacher), handlers.Schedule.UpdateSession)
		api.DELETE("/schedulers/:id", middleware.RequireRole(authz.RoleTeacher), handlers.Schedule.DeleteSession)

		// Attendance
		api.GET("/attendances", middleware.RequireRole(authz.RoleStudent), handlers.Schedule.ListAttendance)
		api.GET("/attendances/:id", middleware.RequireRole(authz.RoleTeacher), handlers.Schedule.GetAttendance)
		api.POST("/attendances", middleware.RequireRole(authz.RoleTeacher), handlers.Schedule.RecordAttendance)
		api.PUT("/attendances/:id", middleware.RequireRole(authz.RoleTeacher), handlers.Schedule.UpdateAttendance)
		api.DELETE("/attendances/:id", middleware.RequireRole(authz.RoleTeacher), handlers.Schedule.DeleteAttendance)

		// Exams
		api.GET("/exams", middleware.RequireRole(authz.RoleStudent), handlers.Exam.ListExams)
		api.GET("/exams/:id", middleware.RequireRole(authz.RoleStudent), handlers.Exam.GetExam)
		api.POST("/exams", middleware.RequireRole(authz.RoleTeacher), handlers.Exam.CreateExam)
		api.PUT("/exams/:id", middleware.RequireRole(authz.RoleTeacher), handlers.Exam.UpdateExam)
		api.DELETE("/exams/:id", middleware.RequireRole(authz.RoleTeacher), handlers.Exam.DeleteExam)

		// Questions (teacher level and above — they carry answer keys)
		api.GET("/exams/:id/questions", middleware.RequireRole(authz.RoleTeacher), handlers.Exam.ListQuestions)
		api.POST("/exams/:id/questions", middleware.RequireRole(authz.RoleTeacher), handlers.Exam.CreateQuestion)
		api.GET("/questions/:id", middleware.RequireRole(authz.RoleTeacher), handlers.Exam.GetQuestion)
		api.PUT("/questions/:id", middleware.RequireRole(authz.RoleTeacher), handlers.Exam.UpdateQuestion)
		api.DELETE("/questions/:id", middleware.RequireRole(authz.RoleTeacher), handlers.Exam.DeleteQuestion)

		// Results
		api.GET("/results", middleware.RequireRole(authz.RoleStudent), handlers.Exam.ListResults)
		api.GET("/results/:id", middleware.RequireRole(authz.RoleStudent), handlers.Exam.GetResult)
		api.POST("/results", middleware.RequireRole(authz.RoleTeacher), handlers.Exam.RecordResult)
		api.PUT("/results/:id", middleware.RequireRole(authz.RoleTeacher), handlers.Exam.UpdateResult)
		api.POST("/results/:id/publish", middleware.RequireRole(authz.RoleTeacher), handlers.Exam.PublishResult)
		api.DELETE("/results/:id", middleware.RequireRole(authz.RoleTeacher), handlers.Exam.DeleteResult)
	}

	// ─── 3. WebSocket Group (WS Auth via query token) ──────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/attendance/monitor", handlers.WS.AttendanceMonitor)
	}

	return router
}
