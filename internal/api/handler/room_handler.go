package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classroom-hub/internal/dto"
	"classroom-hub/internal/service"
	"classroom-hub/pkg/response"
)

// RoomHandler room management HTTP handlers.
type RoomHandler struct {
	roomSvc service.RoomService
}

// NewRoomHandler creates a RoomHandler.
func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// Create creates a room.
// POST /api/v1/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11001, "invalid request parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	room, err := h.roomSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.Created(c, room)
}

// GetByID gets one room.
// GET /api/v1/rooms/:id
func (h *RoomHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 11001, "room id is required")
		return
	}

	room, err := h.roomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, room)
}

// List lists rooms with filters and pagination.
// GET /api/v1/rooms
func (h *RoomHandler) List(c *gin.Context) {
	var req dto.RoomListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 11001, "invalid request parameters")
		return
	}

	rooms, total, err := h.roomSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OKPage(c, rooms, total, req.GetPage(), req.GetPageSize())
}

// Update edits a room.
// PUT /api/v1/rooms/:id
func (h *RoomHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 11001, "room id is required")
		return
	}

	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11001, "invalid request parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	room, err := h.roomSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, room)
}

// Delete removes a room not referenced by schedules or requests.
// DELETE /api/v1/rooms/:id
func (h *RoomHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 11001, "room id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.roomSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, gin.H{"deleted": true})
}

// handleRoomError maps room module errors to HTTP responses.
func (h *RoomHandler) handleRoomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 11101, "room not found")
	case errors.Is(err, service.ErrRoomCodeExists):
		response.Conflict(c, 11102, "room code already exists")
	case errors.Is(err, service.ErrRoomTypeNotFound):
		response.BadRequest(c, 11103, "room type not found")
	case errors.Is(err, service.ErrDeptNotFound):
		response.BadRequest(c, 11104, "department not found")
	case errors.Is(err, service.ErrRoomInUse):
		response.Conflict(c, 11105, "room is referenced by schedules or pending requests")
	default:
		response.InternalError(c)
	}
}
