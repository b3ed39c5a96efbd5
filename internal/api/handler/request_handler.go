package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classroom-hub/internal/dto"
	"classroom-hub/internal/service"
	"classroom-hub/pkg/response"
)

// RequestHandler approval-pipeline request HTTP handlers.
type RequestHandler struct {
	requestSvc service.RequestService
}

// NewRequestHandler creates a RequestHandler.
func NewRequestHandler(requestSvc service.RequestService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc}
}

// Create submits a pending request.
// POST /api/v1/requests
func (h *RequestHandler) Create(c *gin.Context) {
	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "invalid request parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.requestSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.Created(c, result)
}

// GetByID gets one request.
// GET /api/v1/requests/:id
func (h *RequestHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "request id is required")
		return
	}

	result, err := h.requestSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// List lists requests with filters and pagination.
// GET /api/v1/requests
func (h *RequestHandler) List(c *gin.Context) {
	var req dto.RequestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 15001, "invalid request parameters")
		return
	}

	items, total, err := h.requestSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// UpdateStatus approves or rejects a request.
// PUT /api/v1/requests/:id/status
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "request id is required")
		return
	}

	var req dto.UpdateRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "invalid request parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.requestSvc.UpdateStatus(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// handleRequestError maps request module errors to HTTP responses.
func (h *RequestHandler) handleRequestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRequestNotFound):
		response.NotFound(c, 15101, "request not found")
	case errors.Is(err, service.ErrInvalidRequestType):
		response.BadRequest(c, 15102, "unrecognized request type")
	case errors.Is(err, service.ErrInvalidRequestStatus):
		response.BadRequest(c, 15103, "invalid request status transition")
	case errors.Is(err, service.ErrRequestRefNotFound):
		response.NotFound(c, 15104, "referenced schedule or room not found")
	default:
		response.InternalError(c)
	}
}
