package model

// Department — maps to departments.
type Department struct {
	DepartmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"department_id"`
	Code         string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	VersionedModel
}

// TableName sets the table name.
func (Department) TableName() string { return "departments" }
