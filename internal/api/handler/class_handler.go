package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classroom-hub/internal/dto"
	"classroom-hub/internal/service"
	"classroom-hub/pkg/response"
)

// ClassHandler class-section management HTTP handlers.
type ClassHandler struct {
	classSvc service.ClassService
}

// NewClassHandler creates a ClassHandler.
func NewClassHandler(classSvc service.ClassService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc}
}

// Create creates a class section with its weekly pattern.
// POST /api/v1/classes
func (h *ClassHandler) Create(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "invalid request parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	class, err := h.classSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.Created(c, class)
}

// GetByID gets one class with its weekly slots.
// GET /api/v1/classes/:id
func (h *ClassHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 12001, "class id is required")
		return
	}

	class, err := h.classSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, class)
}

// List lists classes with filters and pagination.
// GET /api/v1/classes
func (h *ClassHandler) List(c *gin.Context) {
	var req dto.ClassListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 12001, "invalid request parameters")
		return
	}

	classes, total, err := h.classSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OKPage(c, classes, total, req.GetPage(), req.GetPageSize())
}

// Update edits a class section.
// PUT /api/v1/classes/:id
func (h *ClassHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 12001, "class id is required")
		return
	}

	var req dto.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "invalid request parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	class, err := h.classSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, class)
}

// Delete removes a class and all of its weekly slots.
// DELETE /api/v1/classes/:id
func (h *ClassHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 12001, "class id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.classSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, gin.H{"deleted": true})
}

// handleClassError maps class module errors to HTTP responses.
func (h *ClassHandler) handleClassError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 12101, "class not found")
	case errors.Is(err, service.ErrClassCodeExists):
		response.Conflict(c, 12102, "class code already exists")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.BadRequest(c, 12103, "teacher not found")
	case errors.Is(err, service.ErrTimeSlotNotFound):
		response.BadRequest(c, 12104, "time slot not found")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 12105, "start date must not be after end date")
	case errors.Is(err, service.ErrEmptyPattern):
		response.BadRequest(c, 12106, "class needs at least one weekly occurrence")
	default:
		response.InternalError(c)
	}
}
