package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classroom-hub/internal/dto"
	"classroom-hub/internal/service"
	"classroom-hub/pkg/response"
)

// ExceptionHandler schedule exception HTTP handlers.
type ExceptionHandler struct {
	exceptionSvc service.ExceptionService
}

// NewExceptionHandler creates an ExceptionHandler.
func NewExceptionHandler(exceptionSvc service.ExceptionService) *ExceptionHandler {
	return &ExceptionHandler{exceptionSvc: exceptionSvc}
}

// Create creates a schedule exception for one occurrence.
// POST /api/v1/exceptions
func (h *ExceptionHandler) Create(c *gin.Context) {
	var req dto.CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "invalid request parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	exc, err := h.exceptionSvc.CreateException(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleExceptionError(c, err)
		return
	}

	response.Created(c, exc)
}

// GetByID gets one exception.
// GET /api/v1/exceptions/:id
func (h *ExceptionHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "exception id is required")
		return
	}

	exc, err := h.exceptionSvc.GetException(c.Request.Context(), id)
	if err != nil {
		h.handleExceptionError(c, err)
		return
	}

	response.OK(c, exc)
}

// List lists exceptions with filters and pagination.
// GET /api/v1/exceptions
func (h *ExceptionHandler) List(c *gin.Context) {
	var req dto.ExceptionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 14001, "invalid request parameters")
		return
	}

	items, total, err := h.exceptionSvc.ListExceptions(c.Request.Context(), &req)
	if err != nil {
		h.handleExceptionError(c, err)
		return
	}

	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// Update edits an existing exception and re-resolves it.
// PUT /api/v1/exceptions/:id
func (h *ExceptionHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "exception id is required")
		return
	}

	var req dto.UpdateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "invalid request parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	exc, err := h.exceptionSvc.UpdateException(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleExceptionError(c, err)
		return
	}

	response.OK(c, exc)
}

// Delete removes an exception, restoring the regular occurrence.
// DELETE /api/v1/exceptions/:id
func (h *ExceptionHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "exception id is required")
		return
	}

	if err := h.exceptionSvc.DeleteException(c.Request.Context(), id); err != nil {
		h.handleExceptionError(c, err)
		return
	}

	response.OK(c, gin.H{"deleted": true})
}

// ListEligibleSchedules lists active slots with their next occurrence.
// GET /api/v1/exceptions/eligible-schedules
func (h *ExceptionHandler) ListEligibleSchedules(c *gin.Context) {
	var req dto.EligibleScheduleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 14001, "invalid request parameters")
		return
	}

	items, total, err := h.exceptionSvc.ListEligibleSchedules(c.Request.Context(), &req)
	if err != nil {
		h.handleExceptionError(c, err)
		return
	}

	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// handleExceptionError maps exception module errors to HTTP responses.
func (h *ExceptionHandler) handleExceptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExceptionNotFound):
		response.NotFound(c, 14101, "exception not found")
	case errors.Is(err, service.ErrExceptionScheduleNotFound):
		response.NotFound(c, 14102, "class schedule not found or not active")
	case errors.Is(err, service.ErrExceptionMissingFields):
		response.BadRequest(c, 14103, "required exception fields are missing")
	case errors.Is(err, service.ErrInvalidExceptionType):
		response.BadRequest(c, 14104, "unrecognized exception type")
	case errors.Is(err, service.ErrDateOutOfRange):
		response.BadRequest(c, 14105, "exception date outside the class date range")
	case errors.Is(err, service.ErrDuplicateException):
		response.Conflict(c, 14106, "an exception of this kind already targets that occurrence")
	case errors.Is(err, service.ErrNotExceptionCategory):
		response.BadRequest(c, 14107, "request is not a schedule exception")
	default:
		response.InternalError(c)
	}
}
