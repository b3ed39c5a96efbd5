package dto

// ── class module DTOs ──

// SchedulePatternEntry one recurring weekly occurrence in a class's
// pattern.
type SchedulePatternEntry struct {
	DayOfWeek     int    `json:"day_of_week"    binding:"required,min=1,max=7"` // 1 = Sunday
	TimeSlotID    string `json:"time_slot_id"   binding:"required,uuid"`
	PracticeGroup int    `json:"practice_group" binding:"omitempty,min=0"`
	RoomTypeID    string `json:"room_type_id"   binding:"omitempty,uuid"` // defaults to the class's required type
}

// CreateClassRequest create a class together with its recurring pattern.
type CreateClassRequest struct {
	Code         string                 `json:"code"          binding:"required,min=2,max=20"`
	Name         string                 `json:"name"          binding:"required,min=2,max=100"`
	SubjectCode  string                 `json:"subject_code"  binding:"required,min=2,max=20"`
	SubjectName  string                 `json:"subject_name"  binding:"required,min=2,max=100"`
	DepartmentID string                 `json:"department_id" binding:"required,uuid"`
	Major        string                 `json:"major"         binding:"omitempty,max=100"`
	MaxStudents  int                    `json:"max_students"  binding:"required,min=1"`
	RoomTypeID   string                 `json:"room_type_id"  binding:"required,uuid"`
	TeacherID    string                 `json:"teacher_id"    binding:"required,uuid"`
	StartDate    string                 `json:"start_date"    binding:"required,datetime=2006-01-02"`
	EndDate      string                 `json:"end_date"      binding:"required,datetime=2006-01-02"`
	Pattern      []SchedulePatternEntry `json:"pattern"       binding:"required,min=1,dive"`
}

// UpdateClassRequest update class master data; nil fields stay unchanged.
type UpdateClassRequest struct {
	Name        *string `json:"name"         binding:"omitempty,min=2,max=100"`
	SubjectName *string `json:"subject_name" binding:"omitempty,min=2,max=100"`
	Major       *string `json:"major"        binding:"omitempty,max=100"`
	MaxStudents *int    `json:"max_students" binding:"omitempty,min=1"`
	TeacherID   *string `json:"teacher_id"   binding:"omitempty,uuid"`
	StartDate   *string `json:"start_date"   binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date"     binding:"omitempty,datetime=2006-01-02"`
}

// ClassListRequest class list query parameters.
type ClassListRequest struct {
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	Search       string `form:"search"`
	PaginationRequest
}

// ClassResponse full class info with derived aggregate status.
type ClassResponse struct {
	ID          string                  `json:"id"`
	Code        string                  `json:"code"`
	Name        string                  `json:"name"`
	SubjectCode string                  `json:"subject_code"`
	SubjectName string                  `json:"subject_name"`
	Department  *DepartmentBrief        `json:"department,omitempty"`
	Major       string                  `json:"major,omitempty"`
	MaxStudents int                     `json:"max_students"`
	RoomTypeID  string                  `json:"room_type_id"`
	Teacher     *TeacherBrief           `json:"teacher,omitempty"`
	StartDate   string                  `json:"start_date"`
	EndDate     string                  `json:"end_date"`
	Status      string                  `json:"status"` // derived, never stored
	Schedules   []ClassScheduleResponse `json:"schedules,omitempty"`
	CreatedAt   string                  `json:"created_at"`
	UpdatedAt   string                  `json:"updated_at"`
}
