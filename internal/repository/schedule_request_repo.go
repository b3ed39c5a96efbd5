package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"classroom-hub/internal/model"
	pkgerrors "classroom-hub/pkg/errors"
)

// RequestFilter narrows schedule request listings.
type RequestFilter struct {
	ClassScheduleID string
	RequestType     model.RequestType
	ExceptionType   model.ExceptionType
	RequesterID     string
	Status          model.RequestStatus
}

// ScheduleRequestRepository data access for schedule requests and
// exceptions.
type ScheduleRequestRepository interface {
	Create(ctx context.Context, req *model.ScheduleRequest) error
	GetByID(ctx context.Context, id string) (*model.ScheduleRequest, error)
	List(ctx context.Context, filter RequestFilter, offset, limit int) ([]model.ScheduleRequest, int64, error)
	// ExistsException reports whether a request of the given type already
	// targets the same slot occurrence.
	ExistsException(ctx context.Context, classScheduleID string, exceptionDate time.Time, requestType model.RequestType) (bool, error)
	// ListResolvedExceptionsBySchedule returns resolved exception records
	// for one slot, ordered by exception date.
	ListResolvedExceptionsBySchedule(ctx context.Context, classScheduleID string) ([]model.ScheduleRequest, error)
	Update(ctx context.Context, req *model.ScheduleRequest) error
	// Delete is a hard delete; exceptions carry no tombstone.
	Delete(ctx context.Context, id string) error
	CountPendingByRoom(ctx context.Context, roomID string) (int64, error)
}

// scheduleRequestRepo GORM implementation of ScheduleRequestRepository.
type scheduleRequestRepo struct {
	db *gorm.DB
}

// NewScheduleRequestRepo creates a ScheduleRequestRepository.
func NewScheduleRequestRepo(db *gorm.DB) ScheduleRequestRepository {
	return &scheduleRequestRepo{db: db}
}

func (r *scheduleRequestRepo) Create(ctx context.Context, req *model.ScheduleRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *scheduleRequestRepo) GetByID(ctx context.Context, id string) (*model.ScheduleRequest, error) {
	var req model.ScheduleRequest
	err := r.db.WithContext(ctx).
		Preload("ClassSchedule").
		Preload("ClassSchedule.Class").
		Preload("ClassSchedule.TimeSlot").
		Preload("Room").
		Where("request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *scheduleRequestRepo) List(ctx context.Context, filter RequestFilter, offset, limit int) ([]model.ScheduleRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ScheduleRequest{})
	if filter.ClassScheduleID != "" {
		q = q.Where("class_schedule_id = ?", filter.ClassScheduleID)
	}
	if filter.RequestType != "" {
		q = q.Where("request_type = ?", filter.RequestType)
	}
	if filter.ExceptionType != "" {
		q = q.Where("exception_type = ?", filter.ExceptionType)
	}
	if filter.RequesterID != "" {
		q = q.Where("requester_id = ?", filter.RequesterID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reqs []model.ScheduleRequest
	err := q.Preload("ClassSchedule").
		Preload("ClassSchedule.Class").
		Preload("Room").
		Order("request_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&reqs).Error
	return reqs, total, err
}

func (r *scheduleRequestRepo) ExistsException(ctx context.Context, classScheduleID string, exceptionDate time.Time, requestType model.RequestType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleRequest{}).
		Where("class_schedule_id = ? AND exception_date = ? AND request_type = ?",
			classScheduleID, exceptionDate, requestType).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *scheduleRequestRepo) ListResolvedExceptionsBySchedule(ctx context.Context, classScheduleID string) ([]model.ScheduleRequest, error) {
	var reqs []model.ScheduleRequest
	err := r.db.WithContext(ctx).
		Where("class_schedule_id = ? AND request_type = ? AND status = ?",
			classScheduleID, model.RequestTypeException, model.RequestStatusResolved).
		Order("exception_date ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *scheduleRequestRepo) Update(ctx context.Context, req *model.ScheduleRequest) error {
	oldVersion := req.Version
	result := r.db.WithContext(ctx).
		Model(req).
		Where("request_id = ? AND version = ?", req.RequestID, oldVersion).
		Updates(map[string]interface{}{
			"status":                req.Status,
			"exception_date":        req.ExceptionDate,
			"exception_type":        req.ExceptionType,
			"old_time_slot_id":      req.OldTimeSlotID,
			"new_time_slot_id":      req.NewTimeSlotID,
			"old_room_id":           req.OldRoomID,
			"new_room_id":           req.NewRoomID,
			"moved_to_date":         req.MovedToDate,
			"moved_to_time_slot_id": req.MovedToTimeSlotID,
			"moved_to_room_id":      req.MovedToRoomID,
			"substitute_teacher_id": req.SubstituteTeacherID,
			"reason":                req.Reason,
			"note":                  req.Note,
			"approved_by":           req.ApprovedBy,
			"approved_at":           req.ApprovedAt,
			"updated_by":            req.UpdatedBy,
			"version":               oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	req.Version = oldVersion + 1
	return nil
}

func (r *scheduleRequestRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("request_id = ?", id).
		Delete(&model.ScheduleRequest{}).Error
}

func (r *scheduleRequestRepo) CountPendingByRoom(ctx context.Context, roomID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleRequest{}).
		Where("room_id = ? AND status = ?", roomID, model.RequestStatusPending).
		Count(&count).Error
	return count, err
}
