package handler

import "classroom-hub/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Room      *RoomHandler
	Class     *ClassHandler
	Schedule  *ScheduleHandler
	Exception *ExceptionHandler
	Request   *RequestHandler
	Catalog   *CatalogHandler
	Export    *ExportHandler
	Calendar  *CalendarHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Room:      NewRoomHandler(svc.Room),
		Class:     NewClassHandler(svc.Class),
		Schedule:  NewScheduleHandler(svc.Assignment),
		Exception: NewExceptionHandler(svc.Exception),
		Request:   NewRequestHandler(svc.Request),
		Catalog:   NewCatalogHandler(svc.Catalog),
		Export:    NewExportHandler(svc.Export),
		Calendar:  NewCalendarHandler(svc.Calendar),
	}
}
