package service

import (
	"context"

	"go.uber.org/zap"

	"classroom-hub/internal/dto"
	"classroom-hub/internal/model"
	"classroom-hub/internal/repository"
)

// CatalogService read-side access to the reference data consumed by the
// assignment engine.
type CatalogService interface {
	ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error)
	ListTeachers(ctx context.Context, departmentID string) ([]dto.TeacherResponse, error)
	ListRoomTypes(ctx context.Context) ([]dto.RoomTypeResponse, error)
	ListTimeSlots(ctx context.Context, shift string) ([]dto.TimeSlotResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

func (s *catalogService) ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error) {
	depts, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("list departments failed", zap.Error(err))
		return nil, err
	}
	resp := make([]dto.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		resp = append(resp, dto.DepartmentResponse{
			ID:       d.DepartmentID,
			Code:     d.Code,
			Name:     d.Name,
			IsActive: d.IsActive,
		})
	}
	return resp, nil
}

func (s *catalogService) ListTeachers(ctx context.Context, departmentID string) ([]dto.TeacherResponse, error) {
	teachers, err := s.repo.Teacher.List(ctx, departmentID)
	if err != nil {
		s.logger.Error("list teachers failed", zap.Error(err))
		return nil, err
	}
	resp := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		t := &teachers[i]
		resp = append(resp, dto.TeacherResponse{
			ID:         t.TeacherID,
			Code:       t.Code,
			FullName:   t.FullName,
			Email:      t.Email,
			Department: departmentBrief(t.Department),
		})
	}
	return resp, nil
}

func (s *catalogService) ListRoomTypes(ctx context.Context) ([]dto.RoomTypeResponse, error) {
	types, err := s.repo.RoomType.List(ctx)
	if err != nil {
		s.logger.Error("list room types failed", zap.Error(err))
		return nil, err
	}
	resp := make([]dto.RoomTypeResponse, 0, len(types))
	for _, rt := range types {
		resp = append(resp, dto.RoomTypeResponse{
			ID:   rt.RoomTypeID,
			Code: rt.Code,
			Name: rt.Name,
		})
	}
	return resp, nil
}

func (s *catalogService) ListTimeSlots(ctx context.Context, shift string) ([]dto.TimeSlotResponse, error) {
	slots, err := s.repo.TimeSlot.List(ctx, model.Shift(shift))
	if err != nil {
		s.logger.Error("list time slots failed", zap.Error(err))
		return nil, err
	}
	resp := make([]dto.TimeSlotResponse, 0, len(slots))
	for _, ts := range slots {
		resp = append(resp, dto.TimeSlotResponse{
			ID:        ts.TimeSlotID,
			Name:      ts.Name,
			StartTime: ts.StartTime,
			EndTime:   ts.EndTime,
			Shift:     string(ts.Shift),
			ShiftName: model.DisplayName(string(ts.Shift)),
		})
	}
	return resp, nil
}
