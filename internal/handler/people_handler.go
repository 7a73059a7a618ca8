package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sekolahub/sekolahub-backend/internal/middleware"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/response"
	"github.com/sekolahub/sekolahub-backend/internal/service"
	"github.com/sekolahub/sekolahub-backend/internal/validator"
)

// PeopleHandler handles teacher and student roster endpoints.
type PeopleHandler struct {
	peopleService *service.PeopleService
}

// NewPeopleHandler creates a new PeopleHandler.
func NewPeopleHandler(peopleService *service.PeopleService) *PeopleHandler {
	return &PeopleHandler{peopleService: peopleService}
}

// ListTeachers godoc
// GET /api/v1/teachers
func (h *PeopleHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.peopleService.ListTeachers(c.Request.Context(), middleware.GetPrincipal(c), listOptions(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teachers": teachers})
}

// GetTeacher godoc
// GET /api/v1/teachers/:id
func (h *PeopleHandler) GetTeacher(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	teacher, err := h.peopleService.GetTeacher(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teacher": teacher})
}

// CreateTeacher godoc
// POST /api/v1/teachers
func (h *PeopleHandler) CreateTeacher(c *gin.Context) {
	var req model.CreateTeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	teacher, err := h.peopleService.CreateTeacher(c.Request.Context(), middleware.GetPrincipal(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"teacher": teacher})
}

// UpdateTeacher godoc
// PUT /api/v1/teachers/:id
func (h *PeopleHandler) UpdateTeacher(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req model.CreateTeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	teacher, err := h.peopleService.UpdateTeacher(c.Request.Context(), middleware.GetPrincipal(c), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teacher": teacher})
}

// DeleteTeacher godoc
// DELETE /api/v1/teachers/:id
func (h *PeopleHandler) DeleteTeacher(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.peopleService.DeleteTeacher(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "teacher deleted successfully"})
}

// ListStudents godoc
// GET /api/v1/students
func (h *PeopleHandler) ListStudents(c *gin.Context) {
	students, err := h.peopleService.ListStudents(c.Request.Context(), middleware.GetPrincipal(c), listOptions(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// GetStudent godoc
// GET /api/v1/students/:id
func (h *PeopleHandler) GetStudent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	student, err := h.peopleService.GetStudent(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// CreateStudent godoc
// POST /api/v1/students
func (h *PeopleHandler) CreateStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	student, err := h.peopleService.CreateStudent(c.Request.Context(), middleware.GetPrincipal(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// UpdateStudent godoc
// PUT /api/v1/students/:id
func (h *PeopleHandler) UpdateStudent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	student, err := h.peopleService.UpdateStudent(c.Request.Context(), middleware.GetPrincipal(c), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// DeleteStudent godoc
// DELETE /api/v1/students/:id
func (h *PeopleHandler) DeleteStudent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.peopleService.DeleteStudent(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "student deleted successfully"})
}
