package model

import "time"

// ClassSchedule — maps to class_schedules. One recurring weekly occurrence
// of a Class: dayOfWeek 1-7 with 1 = Sunday (institution convention) plus a
// teaching period. At most one row may hold a given
// (day_of_week, time_slot_id, room_id) while in an occupying status; the
// partial unique index uq_room_occupancy is the source of truth for that.
type ClassSchedule struct {
	ClassScheduleID string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_schedule_id"`
	ClassID         string         `gorm:"type:uuid;not null"                             json:"class_id"`
	TeacherID       string         `gorm:"type:uuid;not null"                             json:"teacher_id"`
	DayOfWeek       int            `gorm:"type:smallint;not null"                         json:"day_of_week"` // 1=Sunday .. 7=Saturday
	TimeSlotID      string         `gorm:"type:uuid;not null"                             json:"time_slot_id"`
	RoomTypeID      string         `gorm:"type:uuid;not null"                             json:"room_type_id"`
	PracticeGroup   int            `gorm:"type:smallint;not null;default:0"               json:"practice_group"` // 0 = whole class, >0 = lab section
	RoomID          *string        `gorm:"type:uuid"                                      json:"room_id,omitempty"`
	AssignedBy      *string        `gorm:"type:uuid"                                      json:"assigned_by,omitempty"`
	AssignedAt      *time.Time     `json:"assigned_at,omitempty"`
	Status          ScheduleStatus `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	Note            string         `gorm:"type:varchar(500)"                              json:"note,omitempty"`
	VersionedModel

	Class    *Class    `gorm:"foreignKey:ClassID;references:ClassID"       json:"class,omitempty"`
	Teacher  *Teacher  `gorm:"foreignKey:TeacherID;references:TeacherID"   json:"teacher,omitempty"`
	TimeSlot *TimeSlot `gorm:"foreignKey:TimeSlotID;references:TimeSlotID" json:"time_slot,omitempty"`
	Room     *Room     `gorm:"foreignKey:RoomID;references:RoomID"         json:"room,omitempty"`
}

// TableName sets the table name.
func (ClassSchedule) TableName() string { return "class_schedules" }
