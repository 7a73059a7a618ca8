package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/middleware"
	"github.com/sekolahub/sekolahub-backend/internal/model"
	"github.com/sekolahub/sekolahub-backend/internal/response"
	"github.com/sekolahub/sekolahub-backend/internal/service"
	"github.com/sekolahub/sekolahub-backend/internal/validator"
)

// ScheduleHandler handles class session and attendance endpoints.
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// ListSessions godoc
// GET /api/v1/schedulers
func (h *ScheduleHandler) ListSessions(c *gin.Context) {
	sessions, err := h.scheduleService.ListSessions(c.Request.Context(), middleware.GetPrincipal(c), listOptions(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"schedulers": sessions})
}

// GradeSchedule godoc
// GET /api/v1/grades/:id/schedule
// Returns the grade's timetable, served from cache when fresh.
func (h *ScheduleHandler) GradeSchedule(c *gin.Context) {
	gradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	sessions, err := h.scheduleService.GradeSchedule(c.Request.Context(), middleware.GetPrincipal(c), gradeID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"schedulers": sessions})
}

// GetSession godoc
// GET /api/v1/schedulers/:id
func (h *ScheduleHandler) GetSession(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	session, err := h.scheduleService.GetSession(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"scheduler": session})
}

// CreateSession godoc
// POST /api/v1/schedulers
func (h *ScheduleHandler) CreateSession(c *gin.Context) {
	var req model.CreateSchedulerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	session, err := h.scheduleService.CreateSession(c.Request.Context(), middleware.GetPrincipal(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"scheduler": session})
}

// UpdateSession godoc
// PUT /api/v1/schedulers/:id
func (h *ScheduleHandler) UpdateSession(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req model.CreateSchedulerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	session, err := h.scheduleService.UpdateSession(c.Request.Context(), middleware.GetPrincipal(c), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"scheduler": session})
}

// DeleteSession godoc
// DELETE /api/v1/schedulers/:id
func (h *ScheduleHandler) DeleteSession(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.scheduleService.DeleteSession(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "session deleted successfully"})
}

// ListAttendance godoc
// GET /api/v1/attendances
func (h *ScheduleHandler) ListAttendance(c *gin.Context) {
	records, err := h.scheduleService.ListAttendance(c.Request.Context(), middleware.GetPrincipal(c), listOptions(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attendances": records})
}

// GetAttendance godoc
// GET /api/v1/attendances/:id
func (h *ScheduleHandler) GetAttendance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	record, err := h.scheduleService.GetAttendance(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attendance": record})
}

// RecordAttendance godoc
// POST /api/v1/attendances
func (h *ScheduleHandler) RecordAttendance(c *gin.Context) {
	var req model.CreateAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	record, err := h.scheduleService.RecordAttendance(c.Request.Context(), middleware.GetPrincipal(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"attendance": record})
}

// UpdateAttendance godoc
// PUT /api/v1/attendances/:id
func (h *ScheduleHandler) UpdateAttendance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req model.CreateAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	record, err := h.scheduleService.UpdateAttendance(c.Request.Context(), middleware.GetPrincipal(c), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attendance": record})
}

// DeleteAttendance godoc
// DELETE /api/v1/attendances/:id
func (h *ScheduleHandler) DeleteAttendance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.scheduleService.DeleteAttendance(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "attendance deleted successfully"})
}
