package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"classroom-hub/internal/model"
)

func setupTestCalendarService() (CalendarService, *testRepos) {
	repo, mocks := newTestRepos()
	svc := NewCalendarService(repo, zap.NewNop())
	return svc, mocks
}

// seedCalendarScenario builds a class running 2026-03-02 .. 2026-03-20 with
// one active Tuesday slot, giving occurrences on 03-03, 03-10 and 03-17.
func seedCalendarScenario(mocks *testRepos) {
	slot := &model.TimeSlot{
		TimeSlotID: "ts-1", Name: "Tiết 1-3", StartTime: "07:00", EndTime: "09:30",
		Shift: model.ShiftMorning,
	}
	mocks.timeSlot.slots["ts-1"] = slot
	room := &model.Room{RoomID: "room-1", Code: "A101", Name: "CS Lab 1", Capacity: 60, Building: "A"}
	mocks.room.rooms["room-1"] = room
	mocks.room.rooms["room-2"] = &model.Room{
		RoomID: "room-2", Code: "B201", Name: "Shared Lab", Capacity: 50,
	}
	teacher := &model.Teacher{TeacherID: "teacher-1", Code: "T001", FullName: "Nguyen Van A", IsActive: true}
	mocks.teacher.teachers["teacher-1"] = teacher

	class := &model.Class{
		ClassID: "class-1", Code: "CS101.1", Name: "Intro to Programming",
		SubjectName: "Introduction to Programming",
		StartDate:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	}
	mocks.class.classes["class-1"] = class

	mocks.schedule.schedules["cs-1"] = &model.ClassSchedule{
		ClassScheduleID: "cs-1", ClassID: "class-1", TeacherID: "teacher-1",
		DayOfWeek: 3, TimeSlotID: "ts-1", RoomID: strPtr("room-1"),
		Status: model.ScheduleStatusActive,
		Class:  class,
		TimeSlot: slot, Room: room, Teacher: teacher,
	}
}

func TestCalendarService_ClassNotFound(t *testing.T) {
	svc, _ := setupTestCalendarService()

	_, _, err := svc.BuildClassCalendar(context.Background(), "nope")
	if !errors.Is(err, ErrCalendarClassNotFound) {
		t.Errorf("expected ErrCalendarClassNotFound, got: %v", err)
	}
}

func TestCalendarService_NoSchedules(t *testing.T) {
	svc, mocks := setupTestCalendarService()
	mocks.class.classes["class-1"] = &model.Class{
		ClassID: "class-1", Code: "CS101.1",
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	}

	_, _, err := svc.BuildClassCalendar(context.Background(), "class-1")
	if !errors.Is(err, ErrCalendarEmpty) {
		t.Errorf("expected ErrCalendarEmpty, got: %v", err)
	}
}

func TestCalendarService_ExpandsWeeklyOccurrences(t *testing.T) {
	svc, mocks := setupTestCalendarService()
	seedCalendarScenario(mocks)

	buf, filename, err := svc.BuildClassCalendar(context.Background(), "class-1")
	if err != nil {
		t.Fatalf("BuildClassCalendar should succeed: %v", err)
	}
	if filename != "CS101.1.ics" {
		t.Errorf("unexpected filename: %s", filename)
	}

	out := buf.String()
	for _, stamp := range []string{"20260303T070000Z", "20260310T070000Z", "20260317T070000Z"} {
		if !strings.Contains(out, stamp) {
			t.Errorf("missing occurrence start %s", stamp)
		}
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 3 {
		t.Errorf("expected 3 events, got %d", got)
	}
	if !strings.Contains(out, "LOCATION:A101") {
		t.Error("room location missing")
	}
}

func TestCalendarService_AppliesCancellation(t *testing.T) {
	svc, mocks := setupTestCalendarService()
	seedCalendarScenario(mocks)

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	cancel := model.ExceptionCancellation
	mocks.request.requests["exc-1"] = &model.ScheduleRequest{
		RequestID: "exc-1", RequestType: model.RequestTypeException,
		ClassScheduleID: strPtr("cs-1"), RequesterID: "teacher-1",
		Status: model.RequestStatusResolved,
		ExceptionDate: &date, ExceptionType: &cancel,
		Reason: "public holiday",
	}

	buf, _, err := svc.BuildClassCalendar(context.Background(), "class-1")
	if err != nil {
		t.Fatalf("BuildClassCalendar should succeed: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "20260310T070000Z") {
		t.Error("cancelled occurrence must be dropped")
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("expected 2 events after cancellation, got %d", got)
	}
}

func TestCalendarService_AppliesRoomChange(t *testing.T) {
	svc, mocks := setupTestCalendarService()
	seedCalendarScenario(mocks)

	date := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	change := model.ExceptionRoomChange
	mocks.request.requests["exc-1"] = &model.ScheduleRequest{
		RequestID: "exc-1", RequestType: model.RequestTypeException,
		ClassScheduleID: strPtr("cs-1"), RequesterID: "teacher-1",
		Status: model.RequestStatusResolved,
		ExceptionDate: &date, ExceptionType: &change,
		NewRoomID: strPtr("room-2"),
		Reason:    "projector broken",
	}

	buf, _, err := svc.BuildClassCalendar(context.Background(), "class-1")
	if err != nil {
		t.Fatalf("BuildClassCalendar should succeed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "LOCATION:B201") {
		t.Error("overridden room missing from the changed occurrence")
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 3 {
		t.Errorf("room change keeps all 3 events, got %d", got)
	}
}

func TestCalendarService_UnresolvedExceptionIgnored(t *testing.T) {
	svc, mocks := setupTestCalendarService()
	seedCalendarScenario(mocks)

	// a pending change request must not affect the feed
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	cancel := model.ExceptionCancellation
	mocks.request.requests["req-1"] = &model.ScheduleRequest{
		RequestID: "req-1", RequestType: model.RequestTypeScheduleChange,
		ClassScheduleID: strPtr("cs-1"), RequesterID: "teacher-1",
		Status: model.RequestStatusPending,
		ExceptionDate: &date, ExceptionType: &cancel,
		Reason: "tentative",
	}

	buf, _, err := svc.BuildClassCalendar(context.Background(), "class-1")
	if err != nil {
		t.Fatalf("BuildClassCalendar should succeed: %v", err)
	}
	if got := strings.Count(buf.String(), "BEGIN:VEVENT"); got != 3 {
		t.Errorf("pending requests must not alter the feed, got %d events", got)
	}
}
