package dto

// ── assignment module DTOs ──

// AssignRoomRequest assign a room to a weekly slot.
type AssignRoomRequest struct {
	RoomID string `json:"room_id" binding:"required,uuid"`
}

// EligibleRoomResponse one room qualifying for a slot, in preference order.
type EligibleRoomResponse struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Capacity       int     `json:"capacity"`
	Building       string  `json:"building,omitempty"`
	Campus         string  `json:"campus,omitempty"`
	DepartmentID   *string `json:"department_id,omitempty"`
	SameDepartment bool    `json:"same_department"`
}

// AssignmentResponse result of a successful room assignment.
type AssignmentResponse struct {
	ClassScheduleID string `json:"class_schedule_id"`
	RoomID          string `json:"room_id"`
	RoomCode        string `json:"room_code"`
	Status          string `json:"status"`
	AssignedBy      string `json:"assigned_by"`
	AssignedAt      string `json:"assigned_at"`
	// ClassStatus is the derived aggregate status of the owning class,
	// recomputed after the mutation for caller convenience.
	ClassStatus string `json:"class_status"`
}

// UnassignmentResponse result of releasing a slot's room.
type UnassignmentResponse struct {
	ClassScheduleID string `json:"class_schedule_id"`
	Status          string `json:"status"`
	ClassStatus     string `json:"class_status"`
}

// ClassScheduleResponse one recurring weekly slot.
type ClassScheduleResponse struct {
	ID            string         `json:"id"`
	ClassID       string         `json:"class_id"`
	ClassCode     string         `json:"class_code,omitempty"`
	ClassName     string         `json:"class_name,omitempty"`
	Teacher       *TeacherBrief  `json:"teacher,omitempty"`
	DayOfWeek     int            `json:"day_of_week"`
	TimeSlot      *TimeSlotBrief `json:"time_slot,omitempty"`
	PracticeGroup int            `json:"practice_group"`
	Room          *RoomBrief     `json:"room,omitempty"`
	Status        string         `json:"status"`
	StatusName    string         `json:"status_name"`
	Note          string         `json:"note,omitempty"`
}
