package dto

// ── generic request workflow DTOs ──

// CreateRequestRequest raise a plain room request or change request.
// Always enters the pipeline in pending status.
type CreateRequestRequest struct {
	RequestType     string  `json:"request_type"      binding:"required"`
	ClassScheduleID *string `json:"class_schedule_id" binding:"omitempty,uuid"`
	RoomID          *string `json:"room_id"           binding:"omitempty,uuid"`
	Reason          string  `json:"reason"            binding:"required,min=2,max=500"`
	Note            string  `json:"note"              binding:"omitempty,max=500"`
}

// UpdateRequestStatusRequest resolve a pending request.
type UpdateRequestStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
	Note   string `json:"note"   binding:"omitempty,max=500"`
}

// RequestListRequest request list query parameters.
type RequestListRequest struct {
	RequestType     string `form:"request_type"`
	Status          string `form:"status"`
	RequesterID     string `form:"requester_id"      binding:"omitempty,uuid"`
	ClassScheduleID string `form:"class_schedule_id" binding:"omitempty,uuid"`
	PaginationRequest
}

// RequestResponse one generic request record.
type RequestResponse struct {
	ID              string  `json:"id"`
	RequestType     string  `json:"request_type"`
	RequestTypeName string  `json:"request_type_name"`
	ClassScheduleID *string `json:"class_schedule_id,omitempty"`
	RoomID          *string `json:"room_id,omitempty"`
	RoomCode        string  `json:"room_code,omitempty"`
	RequesterID     string  `json:"requester_id"`
	RequestDate     string  `json:"request_date"`
	Status          string  `json:"status"`
	StatusName      string  `json:"status_name"`
	Reason          string  `json:"reason"`
	Note            string  `json:"note,omitempty"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
}
