package dto

// ── exception module DTOs ──

// CreateExceptionRequest register a one-off deviation against a recurring
// slot. Override fields beyond the required set depend on exception_type;
// unused ones stay null.
type CreateExceptionRequest struct {
	ClassScheduleID string `json:"class_schedule_id" binding:"required,uuid"`
	ExceptionDate   string `json:"exception_date"    binding:"required,datetime=2006-01-02"`
	ExceptionType   string `json:"exception_type"    binding:"required"`
	Reason          string `json:"reason"            binding:"required,min=2,max=500"`
	Note            string `json:"note"              binding:"omitempty,max=500"`

	NewTimeSlotID       *string `json:"new_time_slot_id"       binding:"omitempty,uuid"`
	NewRoomID           *string `json:"new_room_id"            binding:"omitempty,uuid"`
	MovedToDate         *string `json:"moved_to_date"          binding:"omitempty,datetime=2006-01-02"`
	MovedToTimeSlotID   *string `json:"moved_to_time_slot_id"  binding:"omitempty,uuid"`
	MovedToRoomID       *string `json:"moved_to_room_id"       binding:"omitempty,uuid"`
	SubstituteTeacherID *string `json:"substitute_teacher_id"  binding:"omitempty,uuid"`
}

// UpdateExceptionRequest replace the override fields of an exception.
type UpdateExceptionRequest struct {
	ExceptionDate *string `json:"exception_date" binding:"omitempty,datetime=2006-01-02"`
	ExceptionType *string `json:"exception_type"`
	Reason        *string `json:"reason"         binding:"omitempty,min=2,max=500"`
	Note          *string `json:"note"           binding:"omitempty,max=500"`

	NewTimeSlotID       *string `json:"new_time_slot_id"       binding:"omitempty,uuid"`
	NewRoomID           *string `json:"new_room_id"            binding:"omitempty,uuid"`
	MovedToDate         *string `json:"moved_to_date"          binding:"omitempty,datetime=2006-01-02"`
	MovedToTimeSlotID   *string `json:"moved_to_time_slot_id"  binding:"omitempty,uuid"`
	MovedToRoomID       *string `json:"moved_to_room_id"       binding:"omitempty,uuid"`
	SubstituteTeacherID *string `json:"substitute_teacher_id"  binding:"omitempty,uuid"`
}

// ExceptionListRequest exception list query parameters.
type ExceptionListRequest struct {
	ClassScheduleID string `form:"class_schedule_id" binding:"omitempty,uuid"`
	ExceptionType   string `form:"exception_type"`
	RequesterID     string `form:"requester_id"      binding:"omitempty,uuid"`
	PaginationRequest
}

// ExceptionResponse one exception record.
type ExceptionResponse struct {
	ID                string `json:"id"`
	ClassScheduleID   string `json:"class_schedule_id"`
	ClassCode         string `json:"class_code,omitempty"`
	ClassName         string `json:"class_name,omitempty"`
	ExceptionDate     string `json:"exception_date"`
	ExceptionType     string `json:"exception_type"`
	ExceptionTypeName string `json:"exception_type_name"`
	Status            string `json:"status"`
	RequesterID       string `json:"requester_id"`
	Reason            string `json:"reason"`
	Note              string `json:"note,omitempty"`

	OldTimeSlotID       *string `json:"old_time_slot_id,omitempty"`
	NewTimeSlotID       *string `json:"new_time_slot_id,omitempty"`
	OldRoomID           *string `json:"old_room_id,omitempty"`
	NewRoomID           *string `json:"new_room_id,omitempty"`
	MovedToDate         *string `json:"moved_to_date,omitempty"`
	MovedToTimeSlotID   *string `json:"moved_to_time_slot_id,omitempty"`
	MovedToRoomID       *string `json:"moved_to_room_id,omitempty"`
	SubstituteTeacherID *string `json:"substitute_teacher_id,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// EligibleScheduleListRequest query parameters for slots eligible for
// exception creation.
type EligibleScheduleListRequest struct {
	Search string `form:"search"`
	PaginationRequest
}

// AvailableScheduleResponse an active slot augmented with its next
// occurrence date (clamped to the class date window).
type AvailableScheduleResponse struct {
	ClassScheduleResponse
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	NextOccurrenceDate string `json:"next_occurrence_date"`
}
