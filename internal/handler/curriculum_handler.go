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

// CurriculumHandler handles module, lesson and completion endpoints.
type CurriculumHandler struct {
	curriculumService *service.CurriculumService
}

// NewCurriculumHandler creates a new CurriculumHandler.
func NewCurriculumHandler(curriculumService *service.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{curriculumService: curriculumService}
}

// ListModules godoc
// GET /api/v1/modules
func (h *CurriculumHandler) ListModules(c *gin.Context) {
	modules, err := h.curriculumService.ListModules(c.Request.Context(), middleware.GetPrincipal(c), listOptions(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"modules": modules})
}

// GetModule godoc
// GET /api/v1/modules/:id
func (h *CurriculumHandler) GetModule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	module, err := h.curriculumService.GetModule(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"module": module})
}

// CreateModule godoc
// POST /api/v1/modules
func (h *CurriculumHandler) CreateModule(c *gin.Context) {
	var req model.CreateModuleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	module, err := h.curriculumService.CreateModule(c.Request.Context(), middleware.GetPrincipal(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"module": module})
}

// UpdateModule godoc
// PUT /api/v1/modules/:id
func (h *CurriculumHandler) UpdateModule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req model.CreateModuleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	module, err := h.curriculumService.UpdateModule(c.Request.Context(), middleware.GetPrincipal(c), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"module": module})
}

// DeleteModule godoc
// DELETE /api/v1/modules/:id
func (h *CurriculumHandler) DeleteModule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.curriculumService.DeleteModule(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "module deleted successfully"})
}

// ListLessons godoc
// GET /api/v1/lessons
func (h *CurriculumHandler) ListLessons(c *gin.Context) {
	lessons, err := h.curriculumService.ListLessons(c.Request.Context(), middleware.GetPrincipal(c), listOptions(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lessons": lessons})
}

// GetLesson godoc
// GET /api/v1/lessons/:id
func (h *CurriculumHandler) GetLesson(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	lesson, err := h.curriculumService.GetLesson(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lesson": lesson})
}

// CreateLesson godoc
// POST /api/v1/lessons
func (h *CurriculumHandler) CreateLesson(c *gin.Context) {
	var req model.CreateLessonRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	lesson, err := h.curriculumService.CreateLesson(c.Request.Context(), middleware.GetPrincipal(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"lesson": lesson})
}

// UpdateLesson godoc
// PUT /api/v1/lessons/:id
func (h *CurriculumHandler) UpdateLesson(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req model.CreateLessonRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	lesson, err := h.curriculumService.UpdateLesson(c.Request.Context(), middleware.GetPrincipal(c), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"lesson": lesson})
}

// DeleteLesson godoc
// DELETE /api/v1/lessons/:id
func (h *CurriculumHandler) DeleteLesson(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.curriculumService.DeleteLesson(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "lesson deleted successfully"})
}

// ListCompletions godoc
// GET /api/v1/completions
// Students only ever see their own completions.
func (h *CurriculumHandler) ListCompletions(c *gin.Context) {
	completions, err := h.curriculumService.ListCompletions(c.Request.Context(), middleware.GetPrincipal(c), listOptions(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"completions": completions})
}

// CompleteLesson godoc
// POST /api/v1/completions
// Queues the completion for asynchronous persistence.
func (h *CurriculumHandler) CompleteLesson(c *gin.Context) {
	var req model.CompleteLessonRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if err := h.curriculumService.CompleteLesson(c.Request.Context(), middleware.GetPrincipal(c), &req); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"message": "completion recorded"})
}
