package dto

// ── catalog read-side DTOs ──

// DepartmentResponse department info.
type DepartmentResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// TeacherResponse teacher info.
type TeacherResponse struct {
	ID         string           `json:"id"`
	Code       string           `json:"code"`
	FullName   string           `json:"full_name"`
	Email      string           `json:"email,omitempty"`
	Department *DepartmentBrief `json:"department,omitempty"`
}

// TeacherListRequest teacher list query parameters.
type TeacherListRequest struct {
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
}

// RoomTypeResponse room type info.
type RoomTypeResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// TimeSlotResponse time slot info.
type TimeSlotResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Shift     string `json:"shift"`
	ShiftName string `json:"shift_name"`
}

// TimeSlotListRequest time slot list query parameters.
type TimeSlotListRequest struct {
	Shift string `form:"shift" binding:"omitempty,oneof=morning afternoon evening"`
}
