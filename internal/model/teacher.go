package model

// Teacher — maps to teachers. Account/identity linkage lives in the
// institution's identity service; this is catalog data only.
type Teacher struct {
	TeacherID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	Code         string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	FullName     string `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Email        string `gorm:"type:varchar(100)"                              json:"email,omitempty"`
	DepartmentID string `gorm:"type:uuid;not null"                             json:"department_id"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel

	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName sets the table name.
func (Teacher) TableName() string { return "teachers" }
