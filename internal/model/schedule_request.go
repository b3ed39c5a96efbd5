package model

import "time"

// ScheduleRequest — maps to schedule_requests. Generalized request record:
// plain room requests and change requests flow through the pending →
// approved/rejected pipeline, schedule exceptions are stored as resolved
// overrides against one calendar date of a recurring slot.
//
// The old/new room and time-slot columns are snapshots taken at creation,
// not live foreign relationships: a request may outlive later changes to
// the schedule it was raised against.
type ScheduleRequest struct {
	RequestID       string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	RequestType     RequestType    `gorm:"type:varchar(30);not null"                      json:"request_type"`
	ClassScheduleID *string        `gorm:"type:uuid"                                      json:"class_schedule_id,omitempty"`
	RoomID          *string        `gorm:"type:uuid"                                      json:"room_id,omitempty"`
	RequesterID     string         `gorm:"type:uuid;not null"                             json:"requester_id"`
	RequestDate     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"request_date"`
	Status          RequestStatus  `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	ExceptionDate   *time.Time     `gorm:"type:date"                                      json:"exception_date,omitempty"`
	ExceptionType   *ExceptionType `gorm:"type:varchar(30)"                               json:"exception_type,omitempty"`

	// Override snapshot columns, populated per exception kind.
	OldTimeSlotID       *string    `gorm:"type:uuid" json:"old_time_slot_id,omitempty"`
	NewTimeSlotID       *string    `gorm:"type:uuid" json:"new_time_slot_id,omitempty"`
	OldRoomID           *string    `gorm:"type:uuid" json:"old_room_id,omitempty"`
	NewRoomID           *string    `gorm:"type:uuid" json:"new_room_id,omitempty"`
	MovedToDate         *time.Time `gorm:"type:date" json:"moved_to_date,omitempty"`
	MovedToTimeSlotID   *string    `gorm:"type:uuid" json:"moved_to_time_slot_id,omitempty"`
	MovedToRoomID       *string    `gorm:"type:uuid" json:"moved_to_room_id,omitempty"`
	SubstituteTeacherID *string    `gorm:"type:uuid" json:"substitute_teacher_id,omitempty"`

	Reason     string     `gorm:"type:varchar(500);not null" json:"reason"`
	Note       string     `gorm:"type:varchar(500)"          json:"note,omitempty"`
	ApprovedBy *string    `gorm:"type:uuid"                  json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	VersionedModel

	ClassSchedule *ClassSchedule `gorm:"foreignKey:ClassScheduleID;references:ClassScheduleID" json:"class_schedule,omitempty"`
	Room          *Room          `gorm:"foreignKey:RoomID;references:RoomID"                   json:"room,omitempty"`
}

// TableName sets the table name.
func (ScheduleRequest) TableName() string { return "schedule_requests" }
