package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classroom-hub/internal/dto"
	"classroom-hub/internal/service"
	"classroom-hub/pkg/response"
)

// ScheduleHandler room assignment HTTP handlers.
type ScheduleHandler struct {
	assignmentSvc service.AssignmentService
}

// NewScheduleHandler creates a ScheduleHandler.
func NewScheduleHandler(assignmentSvc service.AssignmentService) *ScheduleHandler {
	return &ScheduleHandler{assignmentSvc: assignmentSvc}
}

// ListEligibleRooms lists conflict-free rooms for a weekly slot.
// GET /api/v1/schedules/:id/eligible-rooms
func (h *ScheduleHandler) ListEligibleRooms(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "schedule id is required")
		return
	}

	rooms, err := h.assignmentSvc.ListEligibleRooms(c.Request.Context(), id)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rooms})
}

// AssignRoom assigns a room to a weekly slot.
// POST /api/v1/schedules/:id/room
func (h *ScheduleHandler) AssignRoom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "schedule id is required")
		return
	}

	var req dto.AssignRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "invalid request parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.assignmentSvc.AssignRoom(c.Request.Context(), id, req.RoomID, callerID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, result)
}

// UnassignRoom releases the room held by a weekly slot.
// DELETE /api/v1/schedules/:id/room
func (h *ScheduleHandler) UnassignRoom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "schedule id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.assignmentSvc.UnassignRoom(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, result)
}

// handleAssignmentError maps assignment module errors to HTTP responses.
func (h *ScheduleHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13101, "class schedule not found")
	case errors.Is(err, service.ErrAlreadyAssigned):
		response.BadRequest(c, 13102, "schedule already holds a room; unassign first")
	case errors.Is(err, service.ErrRoomUnavailable):
		response.BadRequest(c, 13103, "room does not exist or is unavailable")
	case errors.Is(err, service.ErrSchedulingConflict):
		response.Conflict(c, 13104, "room already occupied at this weekly slot")
	default:
		response.InternalError(c)
	}
}
