package model

// TimeSlot — maps to time_slots. Static reference data: named teaching
// period with start/end time of day, no date component.
type TimeSlot struct {
	TimeSlotID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"time_slot_id"`
	Name       string `gorm:"type:varchar(50);not null"                      json:"name"` // e.g. "Tiết 1-3"
	StartTime  string `gorm:"type:time;not null"                             json:"start_time"`
	EndTime    string `gorm:"type:time;not null"                             json:"end_time"`
	Shift      Shift  `gorm:"type:varchar(20);not null"                      json:"shift"`
	BaseModel
}

// TableName sets the table name.
func (TimeSlot) TableName() string { return "time_slots" }
