package service

import (
	"time"

	"go.uber.org/zap"

	"classroom-hub/internal/repository"
)

// Service aggregates all business services.
type Service struct {
	Assignment AssignmentService
	Exception  ExceptionService
	Request    RequestService
	Room       RoomService
	Class      ClassService
	Catalog    CatalogService
	Export     ExportService
	Calendar   CalendarService
}

// NewService creates the service aggregate. The clock defaults to
// time.Now; tests inject a fixed one through the individual constructors.
func NewService(repo *repository.Repository, logger *zap.Logger) *Service {
	return &Service{
		Assignment: NewAssignmentService(repo, logger, time.Now),
		Exception:  NewExceptionService(repo, logger, time.Now),
		Request:    NewRequestService(repo, logger, time.Now),
		Room:       NewRoomService(repo, logger),
		Class:      NewClassService(repo, logger),
		Catalog:    NewCatalogService(repo, logger),
		Export:     NewExportService(repo, logger),
		Calendar:   NewCalendarService(repo, logger),
	}
}
