package model

import "time"

// Class — maps to classes. [StartDate, EndDate] is the validity window for
// every recurring slot the class owns. The class's assignment status is
// derived from its schedules and never stored here.
type Class struct {
	ClassID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	Code         string    `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	Name         string    `gorm:"type:varchar(100);not null"                     json:"name"`
	SubjectCode  string    `gorm:"type:varchar(20);not null"                      json:"subject_code"`
	SubjectName  string    `gorm:"type:varchar(100);not null"                     json:"subject_name"`
	DepartmentID string    `gorm:"type:uuid;not null"                             json:"department_id"`
	Major        string    `gorm:"type:varchar(100)"                              json:"major,omitempty"`
	MaxStudents  int       `gorm:"type:smallint;not null"                         json:"max_students"`
	RoomTypeID   string    `gorm:"type:uuid;not null"                             json:"room_type_id"`
	TeacherID    string    `gorm:"type:uuid;not null"                             json:"teacher_id"`
	StartDate    time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null"                             json:"end_date"`
	VersionedModel

	Department *Department     `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
	RoomType   *RoomType       `gorm:"foreignKey:RoomTypeID;references:RoomTypeID"     json:"room_type,omitempty"`
	Teacher    *Teacher        `gorm:"foreignKey:TeacherID;references:TeacherID"       json:"teacher,omitempty"`
	Schedules  []ClassSchedule `gorm:"foreignKey:ClassID"                              json:"schedules,omitempty"`
}

// TableName sets the table name.
func (Class) TableName() string { return "classes" }
