package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"classroom-hub/internal/dto"
	"classroom-hub/internal/model"
	"classroom-hub/internal/repository"
	pkgerrors "classroom-hub/pkg/errors"
)

// ── assignment module errors ──

var (
	ErrScheduleNotFound   = errors.New("class schedule not found")
	ErrAlreadyAssigned    = errors.New("schedule already holds a room")
	ErrRoomUnavailable    = errors.New("room does not exist or is unavailable")
	ErrSchedulingConflict = errors.New("room already occupied at this weekly slot")
)

// AssignmentService room search and at-most-once assignment per slot.
type AssignmentService interface {
	// ListEligibleRooms returns conflict-free rooms qualifying for a slot,
	// same-department rooms first, then smallest sufficient capacity, ties
	// broken by room code. Empty result is not an error.
	ListEligibleRooms(ctx context.Context, scheduleID string) ([]dto.EligibleRoomResponse, error)
	AssignRoom(ctx context.Context, scheduleID, roomID, assignedBy string) (*dto.AssignmentResponse, error)
	// UnassignRoom releases the slot's room whatever its current status.
	// Unassigning an already-pending slot is a no-op success.
	UnassignRoom(ctx context.Context, scheduleID, callerID string) (*dto.UnassignmentResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewAssignmentService creates an AssignmentService.
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger, now func() time.Time) AssignmentService {
	return &assignmentService{repo: repo, logger: logger, now: now}
}

// DeriveClassStatus computes a class's aggregate status from its slots. A
// class is assigned as soon as any slot occupies a room. Pure read-side
// projection; the result is never written back.
func DeriveClassStatus(schedules []model.ClassSchedule) model.ClassStatus {
	for _, s := range schedules {
		if s.Status.IsOccupying() {
			return model.ClassStatusAssigned
		}
	}
	return model.ClassStatusPending
}

func (s *assignmentService) ListEligibleRooms(ctx context.Context, scheduleID string) ([]dto.EligibleRoomResponse, error) {
	schedule, err := s.repo.ClassSchedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("load class schedule failed", zap.Error(err))
		return nil, err
	}
	if schedule.Class == nil {
		return nil, ErrScheduleNotFound
	}

	eligible, err := s.findEligibleRooms(ctx, schedule)
	if err != nil {
		return nil, err
	}

	deptID := schedule.Class.DepartmentID
	resp := make([]dto.EligibleRoomResponse, 0, len(eligible))
	for _, room := range eligible {
		resp = append(resp, dto.EligibleRoomResponse{
			ID:             room.RoomID,
			Code:           room.Code,
			Name:           room.Name,
			Capacity:       room.Capacity,
			Building:       room.Building,
			Campus:         room.Campus,
			DepartmentID:   room.DepartmentID,
			SameDepartment: room.DepartmentID != nil && *room.DepartmentID == deptID,
		})
	}
	return resp, nil
}

// findEligibleRooms runs the candidate filter, subtracts the conflict set
// and orders the survivors. No side effects.
func (s *assignmentService) findEligibleRooms(ctx context.Context, schedule *model.ClassSchedule) ([]model.Room, error) {
	class := schedule.Class

	candidates, err := s.repo.Room.ListCandidates(ctx, schedule.RoomTypeID, class.MaxStudents, class.DepartmentID)
	if err != nil {
		s.logger.Error("list candidate rooms failed", zap.Error(err))
		return nil, err
	}

	occupied, err := s.repo.ClassSchedule.ListOccupiedRoomIDs(ctx, schedule.DayOfWeek, schedule.TimeSlotID)
	if err != nil {
		s.logger.Error("list occupied rooms failed", zap.Error(err))
		return nil, err
	}
	conflictSet := make(map[string]bool, len(occupied))
	for _, id := range occupied {
		conflictSet[id] = true
	}

	eligible := make([]model.Room, 0, len(candidates))
	for _, room := range candidates {
		if !conflictSet[room.RoomID] {
			eligible = append(eligible, room)
		}
	}

	deptID := class.DepartmentID
	sort.Slice(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		aSame := a.DepartmentID != nil && *a.DepartmentID == deptID
		bSame := b.DepartmentID != nil && *b.DepartmentID == deptID
		if aSame != bSame {
			return aSame // same-department rooms first
		}
		if a.Capacity != b.Capacity {
			return a.Capacity < b.Capacity // smallest sufficient room first
		}
		return a.Code < b.Code
	})

	return eligible, nil
}

func (s *assignmentService) AssignRoom(ctx context.Context, scheduleID, roomID, assignedBy string) (*dto.AssignmentResponse, error) {
	schedule, err := s.repo.ClassSchedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("load class schedule failed", zap.Error(err))
		return nil, err
	}

	// Duplicate submissions are rejected, never overwrite or no-op.
	if schedule.Status.IsOccupying() {
		return nil, ErrAlreadyAssigned
	}

	room, err := s.repo.Room.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomUnavailable
		}
		s.logger.Error("load room failed", zap.Error(err))
		return nil, err
	}
	if !room.IsAvailable {
		return nil, ErrRoomUnavailable
	}

	// Fast-path conflict check; the uq_room_occupancy index remains the
	// source of truth under concurrency.
	occupied, err := s.repo.ClassSchedule.ListOccupiedRoomIDs(ctx, schedule.DayOfWeek, schedule.TimeSlotID)
	if err != nil {
		s.logger.Error("list occupied rooms failed", zap.Error(err))
		return nil, err
	}
	for _, id := range occupied {
		if id == roomID {
			return nil, ErrSchedulingConflict
		}
	}

	at := s.now()
	if err := s.repo.ClassSchedule.AssignRoom(ctx, schedule, roomID, assignedBy, at); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// concurrent writer booked the room between check and write
			return nil, ErrSchedulingConflict
		case errors.Is(err, pkgerrors.ErrOptimisticLock):
			// slot changed under us; re-read to report the precise cause
			current, rerr := s.repo.ClassSchedule.GetByID(ctx, scheduleID)
			if rerr == nil && current.Status.IsOccupying() {
				return nil, ErrAlreadyAssigned
			}
			return nil, ErrSchedulingConflict
		default:
			s.logger.Error("assign room failed", zap.Error(err))
			return nil, err
		}
	}

	classStatus, err := s.deriveClassStatus(ctx, schedule.ClassID)
	if err != nil {
		return nil, err
	}

	return &dto.AssignmentResponse{
		ClassScheduleID: schedule.ClassScheduleID,
		RoomID:          room.RoomID,
		RoomCode:        room.Code,
		Status:          string(model.ScheduleStatusAssigned),
		AssignedBy:      assignedBy,
		AssignedAt:      formatTime(at),
		ClassStatus:     string(classStatus),
	}, nil
}

func (s *assignmentService) UnassignRoom(ctx context.Context, scheduleID, callerID string) (*dto.UnassignmentResponse, error) {
	schedule, err := s.repo.ClassSchedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("load class schedule failed", zap.Error(err))
		return nil, err
	}

	if err := s.repo.ClassSchedule.ClearAssignment(ctx, scheduleID, callerID); err != nil {
		s.logger.Error("clear assignment failed", zap.Error(err))
		return nil, err
	}

	classStatus, err := s.deriveClassStatus(ctx, schedule.ClassID)
	if err != nil {
		return nil, err
	}

	return &dto.UnassignmentResponse{
		ClassScheduleID: scheduleID,
		Status:          string(model.ScheduleStatusPending),
		ClassStatus:     string(classStatus),
	}, nil
}

func (s *assignmentService) deriveClassStatus(ctx context.Context, classID string) (model.ClassStatus, error) {
	schedules, err := s.repo.ClassSchedule.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("list class schedules failed", zap.Error(err))
		return "", err
	}
	return DeriveClassStatus(schedules), nil
}
