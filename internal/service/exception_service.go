package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"classroom-hub/internal/dto"
	"classroom-hub/internal/model"
	"classroom-hub/internal/repository"
)

// ── exception module errors ──

var (
	ErrExceptionMissingFields    = errors.New("required exception fields missing")
	ErrInvalidExceptionType      = errors.New("unrecognized exception type")
	ErrExceptionScheduleNotFound = errors.New("class schedule not found or not active")
	ErrDateOutOfRange            = errors.New("exception date outside the class date range")
	ErrDuplicateException        = errors.New("an exception of this kind already targets that occurrence")
	ErrExceptionNotFound         = errors.New("exception not found")
	ErrNotExceptionCategory      = errors.New("request is not a schedule exception")
)

// ExceptionService one-off deviations from a recurring slot on a specific
// calendar date, without touching the recurring definition.
type ExceptionService interface {
	// CreateException validates and persists a direct override. The record
	// is stored already resolved; exceptions skip the approval pipeline.
	CreateException(ctx context.Context, req *dto.CreateExceptionRequest, requesterID string) (*dto.ExceptionResponse, error)
	GetException(ctx context.Context, id string) (*dto.ExceptionResponse, error)
	ListExceptions(ctx context.Context, req *dto.ExceptionListRequest) ([]dto.ExceptionResponse, int64, error)
	UpdateException(ctx context.Context, id string, req *dto.UpdateExceptionRequest, callerID string) (*dto.ExceptionResponse, error)
	DeleteException(ctx context.Context, id string) error
	// ListEligibleSchedules returns active slots with their computed next
	// occurrence date, clamped to the class date window.
	ListEligibleSchedules(ctx context.Context, req *dto.EligibleScheduleListRequest) ([]dto.AvailableScheduleResponse, int64, error)
}

type exceptionService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExceptionService creates an ExceptionService.
func NewExceptionService(repo *repository.Repository, logger *zap.Logger, now func() time.Time) ExceptionService {
	return &exceptionService{repo: repo, logger: logger, now: now}
}

// NextOccurrence returns the soonest date >= today matching dayOfWeek
// (1 = Sunday) inside [start, end]. Outside the window the result clamps to
// the nearer boundary; that is a policy, not an error.
func NextOccurrence(today, start, end time.Time, dayOfWeek int) time.Time {
	today = truncateDate(today)
	start = truncateDate(start)
	end = truncateDate(end)

	if today.Before(start) {
		return start
	}
	if today.After(end) {
		return end
	}

	target := time.Weekday(dayOfWeek - 1) // 1 = Sunday maps onto time.Sunday
	delta := (int(target) - int(today.Weekday()) + 7) % 7
	next := today.AddDate(0, 0, delta)
	if next.After(end) {
		return end
	}
	return next
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func (s *exceptionService) CreateException(ctx context.Context, req *dto.CreateExceptionRequest, requesterID string) (*dto.ExceptionResponse, error) {
	// 1. required fields
	if req.ClassScheduleID == "" || req.ExceptionDate == "" || req.ExceptionType == "" ||
		requesterID == "" || req.Reason == "" {
		return nil, ErrExceptionMissingFields
	}
	excType := model.ExceptionType(req.ExceptionType)
	if !excType.Valid() {
		return nil, ErrInvalidExceptionType
	}
	excDate, err := parseDate(req.ExceptionDate)
	if err != nil {
		return nil, ErrExceptionMissingFields
	}

	// 2. only active recurring slots may be excepted
	schedule, err := s.repo.ClassSchedule.GetByID(ctx, req.ClassScheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExceptionScheduleNotFound
		}
		s.logger.Error("load class schedule failed", zap.Error(err))
		return nil, err
	}
	if schedule.Status != model.ScheduleStatusActive || schedule.Class == nil {
		return nil, ErrExceptionScheduleNotFound
	}

	// 3. date inside the class window, boundaries inclusive
	if excDate.Before(truncateDate(schedule.Class.StartDate)) ||
		excDate.After(truncateDate(schedule.Class.EndDate)) {
		return nil, ErrDateOutOfRange
	}

	// 4. idempotency guard
	exists, err := s.repo.ScheduleRequest.ExistsException(ctx, req.ClassScheduleID, excDate, model.RequestTypeException)
	if err != nil {
		s.logger.Error("duplicate exception check failed", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateException
	}

	now := s.now()
	record := &model.ScheduleRequest{
		RequestType:     model.RequestTypeException,
		ClassScheduleID: &req.ClassScheduleID,
		RequesterID:     requesterID,
		RequestDate:     now,
		Status:          model.RequestStatusResolved,
		ExceptionDate:   &excDate,
		ExceptionType:   &excType,
		// snapshot of the recurring definition at creation time
		OldTimeSlotID: &schedule.TimeSlotID,
		OldRoomID:     schedule.RoomID,
		Reason:        req.Reason,
		Note:          req.Note,
		ApprovedBy:    &requesterID,
		ApprovedAt:    &now,
	}
	applyOverrideFields(record, excType,
		req.NewTimeSlotID, req.NewRoomID,
		req.MovedToDate, req.MovedToTimeSlotID, req.MovedToRoomID,
		req.SubstituteTeacherID)

	if err := s.repo.ScheduleRequest.Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// concurrent create of the same (slot, date, type) triple
			return nil, ErrDuplicateException
		}
		s.logger.Error("create exception failed", zap.Error(err))
		return nil, err
	}

	record.ClassSchedule = schedule
	resp := toExceptionResponse(record)
	return &resp, nil
}

// applyOverrideFields copies the override fields relevant to the exception
// kind; everything else stays null.
func applyOverrideFields(record *model.ScheduleRequest, excType model.ExceptionType,
	newTimeSlotID, newRoomID, movedToDate, movedToTimeSlotID, movedToRoomID, substituteTeacherID *string) {
	switch excType {
	case model.ExceptionTimeSlotChange:
		record.NewTimeSlotID = newTimeSlotID
		record.NewRoomID = newRoomID
	case model.ExceptionRoomChange:
		record.NewRoomID = newRoomID
	case model.ExceptionReschedule:
		if movedToDate != nil {
			if d, err := parseDate(*movedToDate); err == nil {
				record.MovedToDate = &d
			}
		}
		record.MovedToTimeSlotID = movedToTimeSlotID
		record.MovedToRoomID = movedToRoomID
	case model.ExceptionSubstitution:
		record.SubstituteTeacherID = substituteTeacherID
	case model.ExceptionCancellation:
		// no override fields; the occurrence simply does not happen
	}
}

func (s *exceptionService) GetException(ctx context.Context, id string) (*dto.ExceptionResponse, error) {
	record, err := s.repo.ScheduleRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExceptionNotFound
		}
		s.logger.Error("load exception failed", zap.Error(err))
		return nil, err
	}
	if !record.RequestType.IsExceptionCategory() {
		return nil, ErrExceptionNotFound
	}
	resp := toExceptionResponse(record)
	return &resp, nil
}

func (s *exceptionService) ListExceptions(ctx context.Context, req *dto.ExceptionListRequest) ([]dto.ExceptionResponse, int64, error) {
	filter := repository.RequestFilter{
		ClassScheduleID: req.ClassScheduleID,
		RequestType:     model.RequestTypeException,
		ExceptionType:   model.ExceptionType(req.ExceptionType),
		RequesterID:     req.RequesterID,
	}
	records, total, err := s.repo.ScheduleRequest.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list exceptions failed", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.ExceptionResponse, 0, len(records))
	for i := range records {
		resp = append(resp, toExceptionResponse(&records[i]))
	}
	return resp, total, nil
}

func (s *exceptionService) UpdateException(ctx context.Context, id string, req *dto.UpdateExceptionRequest, callerID string) (*dto.ExceptionResponse, error) {
	record, err := s.repo.ScheduleRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExceptionNotFound
		}
		s.logger.Error("load exception failed", zap.Error(err))
		return nil, err
	}
	// guard against this path being repurposed for plain room requests
	if !record.RequestType.IsExceptionCategory() {
		return nil, ErrNotExceptionCategory
	}

	if req.ExceptionType != nil {
		t := model.ExceptionType(*req.ExceptionType)
		if !t.Valid() {
			return nil, ErrInvalidExceptionType
		}
		record.ExceptionType = &t
	}
	if req.ExceptionDate != nil {
		d, err := parseDate(*req.ExceptionDate)
		if err != nil {
			return nil, ErrExceptionMissingFields
		}
		if record.ClassSchedule != nil && record.ClassSchedule.Class != nil {
			class := record.ClassSchedule.Class
			if d.Before(truncateDate(class.StartDate)) || d.After(truncateDate(class.EndDate)) {
				return nil, ErrDateOutOfRange
			}
		}
		record.ExceptionDate = &d
	}
	if req.Reason != nil {
		record.Reason = *req.Reason
	}
	if req.Note != nil {
		record.Note = *req.Note
	}
	if req.NewTimeSlotID != nil {
		record.NewTimeSlotID = req.NewTimeSlotID
	}
	if req.NewRoomID != nil {
		record.NewRoomID = req.NewRoomID
	}
	if req.MovedToDate != nil {
		d, err := parseDate(*req.MovedToDate)
		if err != nil {
			return nil, ErrExceptionMissingFields
		}
		record.MovedToDate = &d
	}
	if req.MovedToTimeSlotID != nil {
		record.MovedToTimeSlotID = req.MovedToTimeSlotID
	}
	if req.MovedToRoomID != nil {
		record.MovedToRoomID = req.MovedToRoomID
	}
	if req.SubstituteTeacherID != nil {
		record.SubstituteTeacherID = req.SubstituteTeacherID
	}

	// re-stamp: an updated override is re-resolved by its editor
	now := s.now()
	record.Status = model.RequestStatusResolved
	record.ApprovedBy = &callerID
	record.ApprovedAt = &now
	record.UpdatedBy = &callerID

	if err := s.repo.ScheduleRequest.Update(ctx, record); err != nil {
		s.logger.Error("update exception failed", zap.Error(err))
		return nil, err
	}

	resp := toExceptionResponse(record)
	return &resp, nil
}

func (s *exceptionService) DeleteException(ctx context.Context, id string) error {
	record, err := s.repo.ScheduleRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExceptionNotFound
		}
		s.logger.Error("load exception failed", zap.Error(err))
		return err
	}
	if !record.RequestType.IsExceptionCategory() {
		return ErrNotExceptionCategory
	}
	// hard delete, no tombstone
	if err := s.repo.ScheduleRequest.Delete(ctx, id); err != nil {
		s.logger.Error("delete exception failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *exceptionService) ListEligibleSchedules(ctx context.Context, req *dto.EligibleScheduleListRequest) ([]dto.AvailableScheduleResponse, int64, error) {
	schedules, total, err := s.repo.ClassSchedule.ListActive(ctx, req.Search, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list active schedules failed", zap.Error(err))
		return nil, 0, err
	}

	today := s.now()
	resp := make([]dto.AvailableScheduleResponse, 0, len(schedules))
	for i := range schedules {
		sched := &schedules[i]
		if sched.Class == nil {
			continue
		}
		next := NextOccurrence(today, sched.Class.StartDate, sched.Class.EndDate, sched.DayOfWeek)
		resp = append(resp, dto.AvailableScheduleResponse{
			ClassScheduleResponse: toClassScheduleResponse(sched),
			StartDate:             formatDate(sched.Class.StartDate),
			EndDate:               formatDate(sched.Class.EndDate),
			NextOccurrenceDate:    formatDate(next),
		})
	}
	return resp, total, nil
}

func toExceptionResponse(r *model.ScheduleRequest) dto.ExceptionResponse {
	resp := dto.ExceptionResponse{
		ID:          r.RequestID,
		RequesterID: r.RequesterID,
		Status:      string(r.Status),
		Reason:      r.Reason,
		Note:        r.Note,

		OldTimeSlotID:       r.OldTimeSlotID,
		NewTimeSlotID:       r.NewTimeSlotID,
		OldRoomID:           r.OldRoomID,
		NewRoomID:           r.NewRoomID,
		MovedToDate:         formatDatePtr(r.MovedToDate),
		MovedToTimeSlotID:   r.MovedToTimeSlotID,
		MovedToRoomID:       r.MovedToRoomID,
		SubstituteTeacherID: r.SubstituteTeacherID,

		CreatedAt: formatTime(r.CreatedAt),
		UpdatedAt: formatTime(r.UpdatedAt),
	}
	if r.ClassScheduleID != nil {
		resp.ClassScheduleID = *r.ClassScheduleID
	}
	if r.ExceptionDate != nil {
		resp.ExceptionDate = formatDate(*r.ExceptionDate)
	}
	if r.ExceptionType != nil {
		resp.ExceptionType = string(*r.ExceptionType)
		resp.ExceptionTypeName = model.DisplayName(string(*r.ExceptionType))
	}
	if r.ClassSchedule != nil && r.ClassSchedule.Class != nil {
		resp.ClassCode = r.ClassSchedule.Class.Code
		resp.ClassName = r.ClassSchedule.Class.Name
	}
	return resp
}
