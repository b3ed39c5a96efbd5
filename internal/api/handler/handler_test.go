package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"classroom-hub/internal/dto"
	"classroom-hub/internal/service"
	"classroom-hub/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AssignmentService ──

type mockAssignmentService struct {
	eligibleResult []dto.EligibleRoomResponse
	eligibleErr    error
	assignResult   *dto.AssignmentResponse
	assignErr      error
	unassignResult *dto.UnassignmentResponse
	unassignErr    error
}

func (m *mockAssignmentService) ListEligibleRooms(_ context.Context, _ string) ([]dto.EligibleRoomResponse, error) {
	return m.eligibleResult, m.eligibleErr
}
func (m *mockAssignmentService) AssignRoom(_ context.Context, _, _, _ string) (*dto.AssignmentResponse, error) {
	return m.assignResult, m.assignErr
}
func (m *mockAssignmentService) UnassignRoom(_ context.Context, _, _ string) (*dto.UnassignmentResponse, error) {
	return m.unassignResult, m.unassignErr
}

// ── Mock ExceptionService ──

type mockExceptionService struct {
	createResult   *dto.ExceptionResponse
	createErr      error
	getResult      *dto.ExceptionResponse
	getErr         error
	listResult     []dto.ExceptionResponse
	listTotal      int64
	listErr        error
	updateResult   *dto.ExceptionResponse
	updateErr      error
	deleteErr      error
	eligibleResult []dto.AvailableScheduleResponse
	eligibleTotal  int64
	eligibleErr    error
}

func (m *mockExceptionService) CreateException(_ context.Context, _ *dto.CreateExceptionRequest, _ string) (*dto.ExceptionResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockExceptionService) GetException(_ context.Context, _ string) (*dto.ExceptionResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockExceptionService) ListExceptions(_ context.Context, _ *dto.ExceptionListRequest) ([]dto.ExceptionResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockExceptionService) UpdateException(_ context.Context, _ string, _ *dto.UpdateExceptionRequest, _ string) (*dto.ExceptionResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockExceptionService) DeleteException(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockExceptionService) ListEligibleSchedules(_ context.Context, _ *dto.EligibleScheduleListRequest) ([]dto.AvailableScheduleResponse, int64, error) {
	return m.eligibleResult, m.eligibleTotal, m.eligibleErr
}

// ── Mock RequestService ──

type mockRequestService struct {
	createResult *dto.RequestResponse
	createErr    error
	getResult    *dto.RequestResponse
	getErr       error
	listResult   []dto.RequestResponse
	listTotal    int64
	listErr      error
	updateResult *dto.RequestResponse
	updateErr    error
}

func (m *mockRequestService) Create(_ context.Context, _ *dto.CreateRequestRequest, _ string) (*dto.RequestResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockRequestService) GetByID(_ context.Context, _ string) (*dto.RequestResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockRequestService) List(_ context.Context, _ *dto.RequestListRequest) ([]dto.RequestResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockRequestService) UpdateStatus(_ context.Context, _ string, _ *dto.UpdateRequestStatusRequest, _ string) (*dto.RequestResponse, error) {
	return m.updateResult, m.updateErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportRoomAllocation(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── Mock CalendarService ──

type mockCalendarService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockCalendarService) BuildClassCalendar(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// withAuth injects the context values normally set by the JWT middleware.
func withAuth(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		c.Set("role", "admin")
		next(c)
	}
}

const (
	testScheduleID = "5e8b1f0a-1111-4aaa-8bbb-000000000001"
	testRoomID     = "5e8b1f0a-2222-4aaa-8bbb-000000000002"
)

// ═══════════════════════════════════════════════════════════
// ScheduleHandler Tests
// ═══════════════════════════════════════════════════════════

func TestScheduleHandler_ListEligibleRooms_Success(t *testing.T) {
	mock := &mockAssignmentService{
		eligibleResult: []dto.EligibleRoomResponse{
			{ID: testRoomID, Code: "A101", Capacity: 60, SameDepartment: true},
		},
	}
	h := NewScheduleHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/schedules/"+testScheduleID+"/eligible-rooms", nil)

	r := gin.New()
	r.GET("/schedules/:id/eligible-rooms", withAuth(h.ListEligibleRooms))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestScheduleHandler_AssignRoom_Success(t *testing.T) {
	mock := &mockAssignmentService{
		assignResult: &dto.AssignmentResponse{
			ClassScheduleID: testScheduleID,
			RoomID:          testRoomID,
			RoomCode:        "A101",
			Status:          "assigned",
			ClassStatus:     "assigned",
		},
	}
	h := NewScheduleHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/schedules/"+testScheduleID+"/room",
		jsonBody(dto.AssignRoomRequest{RoomID: testRoomID}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules/:id/room", withAuth(h.AssignRoom))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestScheduleHandler_AssignRoom_BadJSON(t *testing.T) {
	h := NewScheduleHandler(&mockAssignmentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/schedules/"+testScheduleID+"/room",
		bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules/:id/room", withAuth(h.AssignRoom))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestScheduleHandler_AssignRoom_NotFound(t *testing.T) {
	h := NewScheduleHandler(&mockAssignmentService{assignErr: service.ErrScheduleNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/schedules/"+testScheduleID+"/room",
		jsonBody(dto.AssignRoomRequest{RoomID: testRoomID}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules/:id/room", withAuth(h.AssignRoom))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13101 {
		t.Errorf("expected error code 13101, got %d", resp.Code)
	}
}

func TestScheduleHandler_AssignRoom_Conflict(t *testing.T) {
	h := NewScheduleHandler(&mockAssignmentService{assignErr: service.ErrSchedulingConflict})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/schedules/"+testScheduleID+"/room",
		jsonBody(dto.AssignRoomRequest{RoomID: testRoomID}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules/:id/room", withAuth(h.AssignRoom))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13104 {
		t.Errorf("expected error code 13104, got %d", resp.Code)
	}
}

func TestScheduleHandler_AssignRoom_Unauthenticated(t *testing.T) {
	h := NewScheduleHandler(&mockAssignmentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/schedules/"+testScheduleID+"/room",
		jsonBody(dto.AssignRoomRequest{RoomID: testRoomID}))
	req.Header.Set("Content-Type", "application/json")

	// route mounted without the auth middleware: no user_id in context
	r := gin.New()
	r.POST("/schedules/:id/room", h.AssignRoom)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10002 {
		t.Errorf("expected error code 10002, got %d", resp.Code)
	}
}

func TestScheduleHandler_UnassignRoom_Success(t *testing.T) {
	mock := &mockAssignmentService{
		unassignResult: &dto.UnassignmentResponse{
			ClassScheduleID: testScheduleID,
			Status:          "pending",
			ClassStatus:     "pending",
		},
	}
	h := NewScheduleHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/schedules/"+testScheduleID+"/room", nil)

	r := gin.New()
	r.DELETE("/schedules/:id/room", withAuth(h.UnassignRoom))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExceptionHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExceptionHandler_Create_Success(t *testing.T) {
	mock := &mockExceptionService{
		createResult: &dto.ExceptionResponse{
			ID:              "exc-1",
			ClassScheduleID: testScheduleID,
			ExceptionType:   "class_cancellation",
			Status:          "resolved",
		},
	}
	h := NewExceptionHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/exceptions", jsonBody(dto.CreateExceptionRequest{
		ClassScheduleID: testScheduleID,
		ExceptionDate:   "2026-03-10",
		ExceptionType:   "class_cancellation",
		Reason:          "department meeting",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/exceptions", withAuth(h.Create))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestExceptionHandler_Create_Unauthenticated(t *testing.T) {
	h := NewExceptionHandler(&mockExceptionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/exceptions", jsonBody(dto.CreateExceptionRequest{
		ClassScheduleID: testScheduleID,
		ExceptionDate:   "2026-03-10",
		ExceptionType:   "class_cancellation",
		Reason:          "department meeting",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/exceptions", h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestExceptionHandler_Create_Duplicate(t *testing.T) {
	h := NewExceptionHandler(&mockExceptionService{createErr: service.ErrDuplicateException})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/exceptions", jsonBody(dto.CreateExceptionRequest{
		ClassScheduleID: testScheduleID,
		ExceptionDate:   "2026-03-10",
		ExceptionType:   "class_cancellation",
		Reason:          "department meeting",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/exceptions", withAuth(h.Create))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14106 {
		t.Errorf("expected error code 14106, got %d", resp.Code)
	}
}

func TestExceptionHandler_Create_MissingReason(t *testing.T) {
	h := NewExceptionHandler(&mockExceptionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/exceptions", jsonBody(map[string]string{
		"class_schedule_id": testScheduleID,
		"exception_date":    "2026-03-10",
		"exception_type":    "class_cancellation",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/exceptions", withAuth(h.Create))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExceptionHandler_Delete_NotExceptionCategory(t *testing.T) {
	h := NewExceptionHandler(&mockExceptionService{deleteErr: service.ErrNotExceptionCategory})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/exceptions/exc-1", nil)

	r := gin.New()
	r.DELETE("/exceptions/:id", withAuth(h.Delete))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14107 {
		t.Errorf("expected error code 14107, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// RequestHandler Tests
// ═══════════════════════════════════════════════════════════

func TestRequestHandler_UpdateStatus_InvalidTarget(t *testing.T) {
	h := NewRequestHandler(&mockRequestService{updateErr: service.ErrInvalidRequestStatus})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/requests/req-1/status",
		jsonBody(dto.UpdateRequestStatusRequest{Status: "approved"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/requests/:id/status", withAuth(h.UpdateStatus))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15103 {
		t.Errorf("expected error code 15103, got %d", resp.Code)
	}
}

func TestRequestHandler_Create_Success(t *testing.T) {
	mock := &mockRequestService{
		createResult: &dto.RequestResponse{ID: "req-1", Status: "pending"},
	}
	h := NewRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests", jsonBody(dto.CreateRequestRequest{
		RequestType:     "room_request",
		ClassScheduleID: strPtr(testScheduleID),
		RoomID:          strPtr(testRoomID),
		Reason:          "need a lab with projectors",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/requests", withAuth(h.Create))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func strPtr(s string) *string { return &s }

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("fake-xlsx-bytes"),
		filename: "room_allocation.xlsx",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/room-allocation", nil)

	r := gin.New()
	r.GET("/export/room-allocation", withAuth(h.ExportRoomAllocation))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	disposition := w.Header().Get("Content-Disposition")
	if disposition != "attachment; filename*=UTF-8''room_allocation.xlsx" {
		t.Errorf("unexpected Content-Disposition: %s", disposition)
	}
	if w.Body.String() != "fake-xlsx-bytes" {
		t.Error("expected raw file bytes in body")
	}
}

func TestExportHandler_NoAssignments(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoAssignments})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/room-allocation", nil)

	r := gin.New()
	r.GET("/export/room-allocation", withAuth(h.ExportRoomAllocation))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// CalendarHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCalendarHandler_Success(t *testing.T) {
	mock := &mockCalendarService{
		buf:      bytes.NewBufferString("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"),
		filename: "CS101.1.ics",
	}
	h := NewCalendarHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/classes/class-1/calendar", nil)

	r := gin.New()
	r.GET("/classes/:id/calendar", withAuth(h.DownloadClassCalendar))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/calendar; charset=utf-8" {
		t.Errorf("unexpected Content-Type: %s", ct)
	}
}

func TestCalendarHandler_ClassNotFound(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{err: service.ErrCalendarClassNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/classes/nope/calendar", nil)

	r := gin.New()
	r.GET("/classes/:id/calendar", withAuth(h.DownloadClassCalendar))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
