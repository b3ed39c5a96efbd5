package repository

import (
	"context"

	"gorm.io/gorm"

	"classroom-hub/internal/model"
)

// RoomTypeRepository data access for room types.
type RoomTypeRepository interface {
	GetByID(ctx context.Context, id string) (*model.RoomType, error)
	List(ctx context.Context) ([]model.RoomType, error)
}

// TimeSlotRepository data access for time slots.
type TimeSlotRepository interface {
	GetByID(ctx context.Context, id string) (*model.TimeSlot, error)
	List(ctx context.Context, shift model.Shift) ([]model.TimeSlot, error)
}

// ── RoomType implementation ──

type roomTypeRepo struct {
	db *gorm.DB
}

// NewRoomTypeRepo creates a RoomTypeRepository.
func NewRoomTypeRepo(db *gorm.DB) RoomTypeRepository {
	return &roomTypeRepo{db: db}
}

func (r *roomTypeRepo) GetByID(ctx context.Context, id string) (*model.RoomType, error) {
	var rt model.RoomType
	err := r.db.WithContext(ctx).
		Where("room_type_id = ?", id).
		First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *roomTypeRepo) List(ctx context.Context) ([]model.RoomType, error) {
	var types []model.RoomType
	err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&types).Error
	return types, err
}

// ── TimeSlot implementation ──

type timeSlotRepo struct {
	db *gorm.DB
}

// NewTimeSlotRepo creates a TimeSlotRepository.
func NewTimeSlotRepo(db *gorm.DB) TimeSlotRepository {
	return &timeSlotRepo{db: db}
}

func (r *timeSlotRepo) GetByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	err := r.db.WithContext(ctx).
		Where("time_slot_id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *timeSlotRepo) List(ctx context.Context, shift model.Shift) ([]model.TimeSlot, error) {
	q := r.db.WithContext(ctx)
	if shift != "" {
		q = q.Where("shift = ?", shift)
	}
	var slots []model.TimeSlot
	err := q.Order("start_time ASC").Find(&slots).Error
	return slots, err
}
