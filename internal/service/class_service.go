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

// ── class module errors ──

var (
	ErrClassNotFound    = errors.New("class not found")
	ErrClassCodeExists  = errors.New("class code already exists")
	ErrTeacherNotFound  = errors.New("teacher not found")
	ErrTimeSlotNotFound = errors.New("time slot not found")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrEmptyPattern     = errors.New("class needs at least one weekly occurrence")
)

// ClassService class administration. A class owns its recurring schedule
// rows: they are created with the pattern and removed with the class.
type ClassService interface {
	Create(ctx context.Context, req *dto.CreateClassRequest, callerID string) (*dto.ClassResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ClassResponse, error)
	List(ctx context.Context, req *dto.ClassListRequest) ([]dto.ClassResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateClassRequest, callerID string) (*dto.ClassResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type classService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassService creates a ClassService.
func NewClassService(repo *repository.Repository, logger *zap.Logger) ClassService {
	return &classService{repo: repo, logger: logger}
}

func (s *classService) Create(ctx context.Context, req *dto.CreateClassRequest, callerID string) (*dto.ClassResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if startDate.After(endDate) {
		return nil, ErrInvalidDateRange
	}
	if len(req.Pattern) == 0 {
		return nil, ErrEmptyPattern
	}

	if _, err := s.repo.Department.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeptNotFound
		}
		s.logger.Error("load department failed", zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.RoomType.GetByID(ctx, req.RoomTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		s.logger.Error("load room type failed", zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Teacher.GetByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("load teacher failed", zap.Error(err))
		return nil, err
	}
	for _, entry := range req.Pattern {
		if _, err := s.repo.TimeSlot.GetByID(ctx, entry.TimeSlotID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTimeSlotNotFound
			}
			s.logger.Error("load time slot failed", zap.Error(err))
			return nil, err
		}
	}

	class := &model.Class{
		Code:         req.Code,
		Name:         req.Name,
		SubjectCode:  req.SubjectCode,
		SubjectName:  req.SubjectName,
		DepartmentID: req.DepartmentID,
		Major:        req.Major,
		MaxStudents:  req.MaxStudents,
		RoomTypeID:   req.RoomTypeID,
		TeacherID:    req.TeacherID,
		StartDate:    startDate,
		EndDate:      endDate,
	}
	class.CreatedBy = &callerID

	schedules := make([]model.ClassSchedule, 0, len(req.Pattern))
	for _, entry := range req.Pattern {
		roomTypeID := entry.RoomTypeID
		if roomTypeID == "" {
			roomTypeID = req.RoomTypeID
		}
		schedule := model.ClassSchedule{
			TeacherID:     req.TeacherID,
			DayOfWeek:     entry.DayOfWeek,
			TimeSlotID:    entry.TimeSlotID,
			RoomTypeID:    roomTypeID,
			PracticeGroup: entry.PracticeGroup,
			Status:        model.ScheduleStatusPending,
		}
		schedule.CreatedBy = &callerID
		schedules = append(schedules, schedule)
	}

	if err := s.repo.Class.CreateWithSchedules(ctx, class, schedules); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrClassCodeExists
		}
		s.logger.Error("create class failed", zap.Error(err))
		return nil, err
	}

	resp := toClassResponse(class)
	return &resp, nil
}

func (s *classService) GetByID(ctx context.Context, id string) (*dto.ClassResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("load class failed", zap.Error(err))
		return nil, err
	}
	resp := toClassResponse(class)
	return &resp, nil
}

func (s *classService) List(ctx context.Context, req *dto.ClassListRequest) ([]dto.ClassResponse, int64, error) {
	classes, total, err := s.repo.Class.List(ctx, req.DepartmentID, req.Search, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list classes failed", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		resp = append(resp, toClassResponse(&classes[i]))
	}
	return resp, total, nil
}

func (s *classService) Update(ctx context.Context, id string, req *dto.UpdateClassRequest, callerID string) (*dto.ClassResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("load class failed", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.SubjectName != nil {
		class.SubjectName = *req.SubjectName
	}
	if req.Major != nil {
		class.Major = *req.Major
	}
	if req.MaxStudents != nil {
		class.MaxStudents = *req.MaxStudents
	}
	if req.TeacherID != nil {
		if _, err := s.repo.Teacher.GetByID(ctx, *req.TeacherID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTeacherNotFound
			}
			return nil, err
		}
		class.TeacherID = *req.TeacherID
	}
	if req.StartDate != nil {
		d, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		class.StartDate = d
	}
	if req.EndDate != nil {
		d, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		class.EndDate = d
	}
	if class.StartDate.After(class.EndDate) {
		return nil, ErrInvalidDateRange
	}
	class.UpdatedBy = &callerID

	if err := s.repo.Class.Update(ctx, class); err != nil {
		s.logger.Error("update class failed", zap.Error(err))
		return nil, err
	}

	resp := toClassResponse(class)
	return &resp, nil
}

func (s *classService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Class.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		s.logger.Error("load class failed", zap.Error(err))
		return err
	}
	if err := s.repo.Class.DeleteCascade(ctx, id, callerID); err != nil {
		s.logger.Error("delete class failed", zap.Error(err))
		return err
	}
	return nil
}

func toClassResponse(c *model.Class) dto.ClassResponse {
	resp := dto.ClassResponse{
		ID:          c.ClassID,
		Code:        c.Code,
		Name:        c.Name,
		SubjectCode: c.SubjectCode,
		SubjectName: c.SubjectName,
		Department:  departmentBrief(c.Department),
		Major:       c.Major,
		MaxStudents: c.MaxStudents,
		RoomTypeID:  c.RoomTypeID,
		Teacher:     teacherBrief(c.Teacher),
		StartDate:   formatDate(c.StartDate),
		EndDate:     formatDate(c.EndDate),
		Status:      string(DeriveClassStatus(c.Schedules)),
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
	for i := range c.Schedules {
		resp.Schedules = append(resp.Schedules, toClassScheduleResponse(&c.Schedules[i]))
	}
	return resp
}
