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

// ── request workflow errors ──

var (
	ErrRequestNotFound      = errors.New("request not found")
	ErrInvalidRequestType   = errors.New("unrecognized request type")
	ErrInvalidRequestStatus = errors.New("invalid request status transition")
	ErrRequestRefNotFound   = errors.New("referenced schedule or room not found")
)

// RequestService the generic two-actor approval pipeline for ad-hoc room
// requests and change requests: pending → approved | rejected.
type RequestService interface {
	Create(ctx context.Context, req *dto.CreateRequestRequest, requesterID string) (*dto.RequestResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RequestResponse, error)
	List(ctx context.Context, req *dto.RequestListRequest) ([]dto.RequestResponse, int64, error)
	// UpdateStatus resolves a request, stamping approver and timestamp.
	// Re-resolving an already-terminal request overwrites the prior
	// decision.
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateRequestStatusRequest, approverID string) (*dto.RequestResponse, error)
}

type requestService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewRequestService creates a RequestService.
func NewRequestService(repo *repository.Repository, logger *zap.Logger, now func() time.Time) RequestService {
	return &requestService{repo: repo, logger: logger, now: now}
}

func (s *requestService) Create(ctx context.Context, req *dto.CreateRequestRequest, requesterID string) (*dto.RequestResponse, error) {
	reqType := model.RequestType(req.RequestType)
	// exceptions go through the exception manager, not this pipeline
	if reqType != model.RequestTypeRoomRequest && reqType != model.RequestTypeScheduleChange {
		return nil, ErrInvalidRequestType
	}

	// referenced entities must exist at creation time
	if req.ClassScheduleID != nil {
		if _, err := s.repo.ClassSchedule.GetByID(ctx, *req.ClassScheduleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRequestRefNotFound
			}
			s.logger.Error("load class schedule failed", zap.Error(err))
			return nil, err
		}
	}
	if req.RoomID != nil {
		if _, err := s.repo.Room.GetByID(ctx, *req.RoomID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRequestRefNotFound
			}
			s.logger.Error("load room failed", zap.Error(err))
			return nil, err
		}
	}

	record := &model.ScheduleRequest{
		RequestType:     reqType,
		ClassScheduleID: req.ClassScheduleID,
		RoomID:          req.RoomID,
		RequesterID:     requesterID,
		RequestDate:     s.now(),
		Status:          model.RequestStatusPending,
		Reason:          req.Reason,
		Note:            req.Note,
	}
	if err := s.repo.ScheduleRequest.Create(ctx, record); err != nil {
		s.logger.Error("create request failed", zap.Error(err))
		return nil, err
	}

	resp := toRequestResponse(record)
	return &resp, nil
}

func (s *requestService) GetByID(ctx context.Context, id string) (*dto.RequestResponse, error) {
	record, err := s.repo.ScheduleRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("load request failed", zap.Error(err))
		return nil, err
	}
	resp := toRequestResponse(record)
	return &resp, nil
}

func (s *requestService) List(ctx context.Context, req *dto.RequestListRequest) ([]dto.RequestResponse, int64, error) {
	filter := repository.RequestFilter{
		ClassScheduleID: req.ClassScheduleID,
		RequestType:     model.RequestType(req.RequestType),
		RequesterID:     req.RequesterID,
		Status:          model.RequestStatus(req.Status),
	}
	records, total, err := s.repo.ScheduleRequest.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list requests failed", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.RequestResponse, 0, len(records))
	for i := range records {
		resp = append(resp, toRequestResponse(&records[i]))
	}
	return resp, total, nil
}

func (s *requestService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateRequestStatusRequest, approverID string) (*dto.RequestResponse, error) {
	status := model.RequestStatus(req.Status)
	if status != model.RequestStatusApproved && status != model.RequestStatusRejected {
		return nil, ErrInvalidRequestStatus
	}

	record, err := s.repo.ScheduleRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("load request failed", zap.Error(err))
		return nil, err
	}

	now := s.now()
	record.Status = status
	record.ApprovedBy = &approverID
	record.ApprovedAt = &now
	if req.Note != "" {
		record.Note = req.Note
	}
	record.UpdatedBy = &approverID

	if err := s.repo.ScheduleRequest.Update(ctx, record); err != nil {
		s.logger.Error("update request status failed", zap.Error(err))
		return nil, err
	}

	resp := toRequestResponse(record)
	return &resp, nil
}

func toRequestResponse(r *model.ScheduleRequest) dto.RequestResponse {
	resp := dto.RequestResponse{
		ID:              r.RequestID,
		RequestType:     string(r.RequestType),
		RequestTypeName: model.DisplayName(string(r.RequestType)),
		ClassScheduleID: r.ClassScheduleID,
		RoomID:          r.RoomID,
		RequesterID:     r.RequesterID,
		RequestDate:     formatTime(r.RequestDate),
		Status:          string(r.Status),
		StatusName:      model.DisplayName(string(r.Status)),
		Reason:          r.Reason,
		Note:            r.Note,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      formatTimePtr(r.ApprovedAt),
	}
	if r.Room != nil {
		resp.RoomCode = r.Room.Code
	}
	return resp
}
