package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"classroom-hub/internal/model"
	pkgerrors "classroom-hub/pkg/errors"
)

// ClassScheduleRepository data access for recurring weekly slots.
type ClassScheduleRepository interface {
	Create(ctx context.Context, schedule *model.ClassSchedule) error
	GetByID(ctx context.Context, id string) (*model.ClassSchedule, error)
	ListByClass(ctx context.Context, classID string) ([]model.ClassSchedule, error)
	// ListOccupiedRoomIDs returns the distinct room ids held by slots in an
	// occupying status at the given weekly (day, period).
	ListOccupiedRoomIDs(ctx context.Context, dayOfWeek int, timeSlotID string) ([]string, error)
	// ListActive returns active slots with class/teacher/time-slot preloads,
	// optionally text-filtered on class code, class name or teacher name.
	ListActive(ctx context.Context, search string, offset, limit int) ([]model.ClassSchedule, int64, error)
	// ListOccupying returns every slot currently holding a room.
	ListOccupying(ctx context.Context) ([]model.ClassSchedule, error)
	// AssignRoom performs the guarded state transition to assigned. The
	// UPDATE is conditional on the slot still being in a non-occupying
	// status at the same version; zero rows affected means a concurrent
	// writer won and the caller must re-read. A violation of the
	// uq_room_occupancy index surfaces as gorm.ErrDuplicatedKey.
	AssignRoom(ctx context.Context, schedule *model.ClassSchedule, roomID, assignedBy string, at time.Time) error
	// ClearAssignment unconditionally releases the room and resets the slot
	// to pending. Idempotent by construction.
	ClearAssignment(ctx context.Context, scheduleID string, updatedBy string) error
	Update(ctx context.Context, schedule *model.ClassSchedule) error
	CountByRoom(ctx context.Context, roomID string) (int64, error)
	DeleteByClass(ctx context.Context, classID string) error
}

// classScheduleRepo GORM implementation of ClassScheduleRepository.
type classScheduleRepo struct {
	db *gorm.DB
}

// NewClassScheduleRepo creates a ClassScheduleRepository.
func NewClassScheduleRepo(db *gorm.DB) ClassScheduleRepository {
	return &classScheduleRepo{db: db}
}

func (r *classScheduleRepo) Create(ctx context.Context, schedule *model.ClassSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *classScheduleRepo) GetByID(ctx context.Context, id string) (*model.ClassSchedule, error) {
	var schedule model.ClassSchedule
	err := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Teacher").
		Preload("TimeSlot").
		Preload("Room").
		Where("class_schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *classScheduleRepo) ListByClass(ctx context.Context, classID string) ([]model.ClassSchedule, error) {
	var schedules []model.ClassSchedule
	err := r.db.WithContext(ctx).
		Preload("TimeSlot").
		Preload("Room").
		Where("class_id = ?", classID).
		Order("day_of_week ASC, practice_group ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *classScheduleRepo) ListOccupiedRoomIDs(ctx context.Context, dayOfWeek int, timeSlotID string) ([]string, error) {
	var roomIDs []string
	err := r.db.WithContext(ctx).
		Model(&model.ClassSchedule{}).
		Distinct("room_id").
		Where("day_of_week = ? AND time_slot_id = ? AND room_id IS NOT NULL AND status IN ?",
			dayOfWeek, timeSlotID, model.OccupyingStatuses()).
		Pluck("room_id", &roomIDs).Error
	return roomIDs, err
}

func (r *classScheduleRepo) ListActive(ctx context.Context, search string, offset, limit int) ([]model.ClassSchedule, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.ClassSchedule{}).
		Joins("JOIN classes ON classes.class_id = class_schedules.class_id").
		Joins("JOIN teachers ON teachers.teacher_id = class_schedules.teacher_id").
		Where("class_schedules.status = ?", model.ScheduleStatusActive)
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("classes.code ILIKE ? OR classes.name ILIKE ? OR teachers.full_name ILIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var schedules []model.ClassSchedule
	err := q.Preload("Class").
		Preload("Teacher").
		Preload("TimeSlot").
		Preload("Room").
		Order("class_schedules.day_of_week ASC, class_schedules.created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&schedules).Error
	return schedules, total, err
}

func (r *classScheduleRepo) ListOccupying(ctx context.Context) ([]model.ClassSchedule, error) {
	var schedules []model.ClassSchedule
	err := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Teacher").
		Preload("TimeSlot").
		Preload("Room").
		Where("status IN ?", model.OccupyingStatuses()).
		Order("day_of_week ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *classScheduleRepo) AssignRoom(ctx context.Context, schedule *model.ClassSchedule, roomID, assignedBy string, at time.Time) error {
	oldVersion := schedule.Version
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.ClassSchedule{}).
			Where("class_schedule_id = ? AND version = ? AND status NOT IN ?",
				schedule.ClassScheduleID, oldVersion, model.OccupyingStatuses()).
			Updates(map[string]interface{}{
				"room_id":     roomID,
				"status":      model.ScheduleStatusAssigned,
				"assigned_by": assignedBy,
				"assigned_at": at,
				"updated_by":  assignedBy,
				"version":     oldVersion + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return pkgerrors.ErrOptimisticLock
		}
		schedule.Version = oldVersion + 1
		schedule.RoomID = &roomID
		schedule.Status = model.ScheduleStatusAssigned
		schedule.AssignedBy = &assignedBy
		schedule.AssignedAt = &at
		return nil
	})
}

func (r *classScheduleRepo) ClearAssignment(ctx context.Context, scheduleID string, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.ClassSchedule{}).
		Where("class_schedule_id = ?", scheduleID).
		Updates(map[string]interface{}{
			"room_id":     nil,
			"status":      model.ScheduleStatusPending,
			"assigned_by": nil,
			"assigned_at": nil,
			"updated_by":  updatedBy,
			"version":     gorm.Expr("version + 1"),
		}).Error
}

func (r *classScheduleRepo) Update(ctx context.Context, schedule *model.ClassSchedule) error {
	oldVersion := schedule.Version
	result := r.db.WithContext(ctx).
		Model(schedule).
		Where("class_schedule_id = ? AND version = ?", schedule.ClassScheduleID, oldVersion).
		Updates(map[string]interface{}{
			"teacher_id":     schedule.TeacherID,
			"day_of_week":    schedule.DayOfWeek,
			"time_slot_id":   schedule.TimeSlotID,
			"room_type_id":   schedule.RoomTypeID,
			"practice_group": schedule.PracticeGroup,
			"status":         schedule.Status,
			"note":           schedule.Note,
			"updated_by":     schedule.UpdatedBy,
			"version":        oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	schedule.Version = oldVersion + 1
	return nil
}

func (r *classScheduleRepo) CountByRoom(ctx context.Context, roomID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ClassSchedule{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	return count, err
}

func (r *classScheduleRepo) DeleteByClass(ctx context.Context, classID string) error {
	return r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Delete(&model.ClassSchedule{}).Error
}
