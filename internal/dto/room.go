package dto

// ── room module DTOs ──

// CreateRoomRequest create room.
type CreateRoomRequest struct {
	Code         string  `json:"code"          binding:"required,min=2,max=20"`
	Name         string  `json:"name"          binding:"required,min=2,max=100"`
	Capacity     int     `json:"capacity"      binding:"required,min=1"`
	Building     string  `json:"building"      binding:"omitempty,max=50"`
	Floor        string  `json:"floor"         binding:"omitempty,max=20"`
	Campus       string  `json:"campus"        binding:"omitempty,max=50"`
	RoomTypeID   string  `json:"room_type_id"  binding:"required,uuid"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"` // null = shared room
}

// UpdateRoomRequest update room; nil fields stay unchanged.
type UpdateRoomRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=2,max=100"`
	Capacity     *int    `json:"capacity"      binding:"omitempty,min=1"`
	Building     *string `json:"building"      binding:"omitempty,max=50"`
	Floor        *string `json:"floor"         binding:"omitempty,max=20"`
	Campus       *string `json:"campus"        binding:"omitempty,max=50"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	IsAvailable  *bool   `json:"is_available"`
}

// RoomListRequest room list query parameters.
type RoomListRequest struct {
	RoomTypeID   string `form:"room_type_id"  binding:"omitempty,uuid"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	Campus       string `form:"campus"`
	Building     string `form:"building"`
	Search       string `form:"search"`
	Available    *bool  `form:"available"`
	PaginationRequest
}

// RoomResponse full room info.
type RoomResponse struct {
	ID           string           `json:"id"`
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	Capacity     int              `json:"capacity"`
	Building     string           `json:"building,omitempty"`
	Floor        string           `json:"floor,omitempty"`
	Campus       string           `json:"campus,omitempty"`
	RoomTypeID   string           `json:"room_type_id"`
	RoomType     string           `json:"room_type,omitempty"`
	DepartmentID *string          `json:"department_id,omitempty"`
	Department   *DepartmentBrief `json:"department,omitempty"`
	IsAvailable  bool             `json:"is_available"`
	CreatedAt    string           `json:"created_at"`
	UpdatedAt    string           `json:"updated_at"`
}
