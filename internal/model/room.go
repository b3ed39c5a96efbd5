package model

// RoomType — maps to room_types. Static reference data (theory, lab, ...).
type RoomType struct {
	RoomTypeID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_type_id"`
	Code       string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	Name       string `gorm:"type:varchar(50);not null"                      json:"name"`
	BaseModel
}

// TableName sets the table name.
func (RoomType) TableName() string { return "room_types" }

// Room — maps to rooms. DepartmentID NULL means a shared/common room usable
// by every department.
type Room struct {
	RoomID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	Code         string  `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Capacity     int     `gorm:"type:smallint;not null"                         json:"capacity"`
	Building     string  `gorm:"type:varchar(50)"                               json:"building,omitempty"`
	Floor        string  `gorm:"type:varchar(20)"                               json:"floor,omitempty"`
	Campus       string  `gorm:"type:varchar(50)"                               json:"campus,omitempty"`
	RoomTypeID   string  `gorm:"type:uuid;not null"                             json:"room_type_id"`
	DepartmentID *string `gorm:"type:uuid"                                      json:"department_id,omitempty"`
	IsAvailable  bool    `gorm:"not null;default:true"                          json:"is_available"`
	VersionedModel

	RoomType   *RoomType   `gorm:"foreignKey:RoomTypeID;references:RoomTypeID"     json:"room_type,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName sets the table name.
func (Room) TableName() string { return "rooms" }
