package repository

import "gorm.io/gorm"

// Repository aggregates all repository interfaces. Constructed once at
// startup and passed explicitly to services; no package-level store handle.
type Repository struct {
	Department      DepartmentRepository
	Teacher         TeacherRepository
	RoomType        RoomTypeRepository
	TimeSlot        TimeSlotRepository
	Room            RoomRepository
	Class           ClassRepository
	ClassSchedule   ClassScheduleRepository
	ScheduleRequest ScheduleRequestRepository
}

// NewRepository creates the repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Department:      NewDepartmentRepo(db),
		Teacher:         NewTeacherRepo(db),
		RoomType:        NewRoomTypeRepo(db),
		TimeSlot:        NewTimeSlotRepo(db),
		Room:            NewRoomRepo(db),
		Class:           NewClassRepo(db),
		ClassSchedule:   NewClassScheduleRepo(db),
		ScheduleRequest: NewScheduleRequestRepo(db),
	}
}
