package handler

import (
	"github.com/gin-gonic/gin"

	"classroom-hub/internal/dto"
	"classroom-hub/internal/service"
	"classroom-hub/pkg/response"
)

// CatalogHandler read-only reference data HTTP handlers.
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ListDepartments lists active departments.
// GET /api/v1/catalog/departments
func (h *CatalogHandler) ListDepartments(c *gin.Context) {
	items, err := h.catalogSvc.ListDepartments(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// ListTeachers lists teachers, optionally filtered by department.
// GET /api/v1/catalog/teachers
func (h *CatalogHandler) ListTeachers(c *gin.Context) {
	var req dto.TeacherListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 16001, "invalid request parameters")
		return
	}

	items, err := h.catalogSvc.ListTeachers(c.Request.Context(), req.DepartmentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// ListRoomTypes lists room types.
// GET /api/v1/catalog/room-types
func (h *CatalogHandler) ListRoomTypes(c *gin.Context) {
	items, err := h.catalogSvc.ListRoomTypes(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// ListTimeSlots lists time slots, optionally filtered by shift.
// GET /api/v1/catalog/time-slots
func (h *CatalogHandler) ListTimeSlots(c *gin.Context) {
	var req dto.TimeSlotListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 16001, "invalid request parameters")
		return
	}

	items, err := h.catalogSvc.ListTimeSlots(c.Request.Context(), req.Shift)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": items})
}
