package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"classroom-hub/internal/dto"
	"classroom-hub/internal/model"
	"classroom-hub/internal/repository"
)

// ── room module errors ──

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomCodeExists   = errors.New("room code already exists")
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrDeptNotFound     = errors.New("department not found")
	ErrRoomInUse        = errors.New("room referenced by schedules or pending requests")
)

// RoomService room catalog administration.
type RoomService interface {
	Create(ctx context.Context, req *dto.CreateRoomRequest, callerID string) (*dto.RoomResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RoomResponse, error)
	List(ctx context.Context, req *dto.RoomListRequest) ([]dto.RoomResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateRoomRequest, callerID string) (*dto.RoomResponse, error)
	// Delete refuses while any ClassSchedule or pending request still
	// references the room.
	Delete(ctx context.Context, id string, callerID string) error
}

type roomService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRoomService creates a RoomService.
func NewRoomService(repo *repository.Repository, logger *zap.Logger) RoomService {
	return &roomService{repo: repo, logger: logger}
}

func (s *roomService) Create(ctx context.Context, req *dto.CreateRoomRequest, callerID string) (*dto.RoomResponse, error) {
	// pre-check; the unique index on code backstops concurrent creates
	if _, err := s.repo.Room.GetByCode(ctx, req.Code); err == nil {
		return nil, ErrRoomCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check room code failed", zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.RoomType.GetByID(ctx, req.RoomTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		s.logger.Error("load room type failed", zap.Error(err))
		return nil, err
	}
	if req.DepartmentID != nil {
		if _, err := s.repo.Department.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDeptNotFound
			}
			s.logger.Error("load department failed", zap.Error(err))
			return nil, err
		}
	}

	room := &model.Room{
		Code:         req.Code,
		Name:         req.Name,
		Capacity:     req.Capacity,
		Building:     req.Building,
		Floor:        req.Floor,
		Campus:       req.Campus,
		RoomTypeID:   req.RoomTypeID,
		DepartmentID: req.DepartmentID,
		IsAvailable:  true,
	}
	room.CreatedBy = &callerID
	if err := s.repo.Room.Create(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoomCodeExists
		}
		s.logger.Error("create room failed", zap.Error(err))
		return nil, err
	}

	resp := toRoomResponse(room)
	return &resp, nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("load room failed", zap.Error(err))
		return nil, err
	}
	resp := toRoomResponse(room)
	return &resp, nil
}

func (s *roomService) List(ctx context.Context, req *dto.RoomListRequest) ([]dto.RoomResponse, int64, error) {
	filter := repository.RoomFilter{
		RoomTypeID:   req.RoomTypeID,
		DepartmentID: req.DepartmentID,
		Campus:       req.Campus,
		Building:     req.Building,
		Search:       req.Search,
	}
	if req.Available != nil && *req.Available {
		filter.OnlyAvailable = true
	}
	rooms, total, err := s.repo.Room.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list rooms failed", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		resp = append(resp, toRoomResponse(&rooms[i]))
	}
	return resp, total, nil
}

func (s *roomService) Update(ctx context.Context, id string, req *dto.UpdateRoomRequest, callerID string) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("load room failed", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Building != nil {
		room.Building = *req.Building
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.Campus != nil {
		room.Campus = *req.Campus
	}
	if req.DepartmentID != nil {
		if _, err := s.repo.Department.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDeptNotFound
			}
			return nil, err
		}
		room.DepartmentID = req.DepartmentID
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}
	room.UpdatedBy = &callerID

	if err := s.repo.Room.Update(ctx, room); err != nil {
		s.logger.Error("update room failed", zap.Error(err))
		return nil, err
	}

	resp := toRoomResponse(room)
	return &resp, nil
}

func (s *roomService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Room.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		s.logger.Error("load room failed", zap.Error(err))
		return err
	}

	// referential-integrity guard
	scheduleRefs, err := s.repo.ClassSchedule.CountByRoom(ctx, id)
	if err != nil {
		s.logger.Error("count schedule references failed", zap.Error(err))
		return err
	}
	pendingRefs, err := s.repo.ScheduleRequest.CountPendingByRoom(ctx, id)
	if err != nil {
		s.logger.Error("count pending request references failed", zap.Error(err))
		return err
	}
	if scheduleRefs > 0 || pendingRefs > 0 {
		return ErrRoomInUse
	}

	if err := s.repo.Room.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("delete room failed", zap.Error(err))
		return err
	}
	return nil
}

func toRoomResponse(r *model.Room) dto.RoomResponse {
	resp := dto.RoomResponse{
		ID:           r.RoomID,
		Code:         r.Code,
		Name:         r.Name,
		Capacity:     r.Capacity,
		Building:     r.Building,
		Floor:        r.Floor,
		Campus:       r.Campus,
		RoomTypeID:   r.RoomTypeID,
		DepartmentID: r.DepartmentID,
		Department:   departmentBrief(r.Department),
		IsAvailable:  r.IsAvailable,
		CreatedAt:    formatTime(r.CreatedAt),
		UpdatedAt:    formatTime(r.UpdatedAt),
	}
	if r.RoomType != nil {
		resp.RoomType = r.RoomType.Name
	}
	return resp
}
