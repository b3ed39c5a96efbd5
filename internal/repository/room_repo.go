package repository

import (
	"context"

	"gorm.io/gorm"

	"classroom-hub/internal/model"
	pkgerrors "classroom-hub/pkg/errors"
)

// RoomFilter narrows room listings.
type RoomFilter struct {
	RoomTypeID    string
	DepartmentID  string
	Campus        string
	Building      string
	Search        string // matches code or name
	OnlyAvailable bool
}

// RoomRepository data access for rooms.
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	GetByCode(ctx context.Context, code string) (*model.Room, error)
	List(ctx context.Context, filter RoomFilter, offset, limit int) ([]model.Room, int64, error)
	// ListCandidates returns available rooms matching the required type and
	// minimum capacity that belong to the department or are shared
	// (department IS NULL). Conflict subtraction and ordering happen in the
	// service layer.
	ListCandidates(ctx context.Context, roomTypeID string, minCapacity int, departmentID string) ([]model.Room, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

// roomRepo GORM implementation of RoomRepository.
type roomRepo struct {
	db *gorm.DB
}

// NewRoomRepo creates a RoomRepository.
func NewRoomRepo(db *gorm.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepo) GetByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Preload("RoomType").
		Preload("Department").
		Where("room_id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) GetByCode(ctx context.Context, code string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) List(ctx context.Context, filter RoomFilter, offset, limit int) ([]model.Room, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Room{})
	if filter.RoomTypeID != "" {
		q = q.Where("room_type_id = ?", filter.RoomTypeID)
	}
	if filter.DepartmentID != "" {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.Campus != "" {
		q = q.Where("campus = ?", filter.Campus)
	}
	if filter.Building != "" {
		q = q.Where("building = ?", filter.Building)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("code ILIKE ? OR name ILIKE ?", pattern, pattern)
	}
	if filter.OnlyAvailable {
		q = q.Where("is_available = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rooms []model.Room
	err := q.Preload("RoomType").
		Preload("Department").
		Order("code ASC").
		Offset(offset).
		Limit(limit).
		Find(&rooms).Error
	return rooms, total, err
}

func (r *roomRepo) ListCandidates(ctx context.Context, roomTypeID string, minCapacity int, departmentID string) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("room_type_id = ? AND is_available = ? AND capacity >= ?", roomTypeID, true, minCapacity).
		Where("department_id = ? OR department_id IS NULL", departmentID).
		Find(&rooms).Error
	return rooms, err
}

func (r *roomRepo) Update(ctx context.Context, room *model.Room) error {
	oldVersion := room.Version
	result := r.db.WithContext(ctx).
		Model(room).
		Where("room_id = ? AND version = ?", room.RoomID, oldVersion).
		Updates(map[string]interface{}{
			"code":          room.Code,
			"name":          room.Name,
			"capacity":      room.Capacity,
			"building":      room.Building,
			"floor":         room.Floor,
			"campus":        room.Campus,
			"room_type_id":  room.RoomTypeID,
			"department_id": room.DepartmentID,
			"is_available":  room.IsAvailable,
			"updated_by":    room.UpdatedBy,
			"version":       oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	room.Version = oldVersion + 1
	return nil
}

func (r *roomRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Room{}).
		Where("room_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
