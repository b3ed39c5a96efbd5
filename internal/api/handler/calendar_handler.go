package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"classroom-hub/internal/service"
	"classroom-hub/pkg/response"
)

// CalendarHandler iCalendar feed HTTP handlers.
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// DownloadClassCalendar downloads one class's expanded schedule as ics.
// GET /api/v1/classes/:id/calendar
func (h *CalendarHandler) DownloadClassCalendar(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 18001, "class id is required")
		return
	}

	buf, filename, err := h.calendarSvc.BuildClassCalendar(c.Request.Context(), id)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCalendarClassNotFound):
		response.NotFound(c, 18101, "class not found")
	case errors.Is(err, service.ErrCalendarEmpty):
		response.BadRequest(c, 18102, "class has no schedules to export")
	default:
		response.InternalError(c)
	}
}
