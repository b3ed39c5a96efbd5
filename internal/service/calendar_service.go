package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"classroom-hub/internal/model"
	"classroom-hub/internal/repository"
)

// ── calendar errors ──

var (
	ErrCalendarClassNotFound = errors.New("class not found")
	ErrCalendarEmpty         = errors.New("class has no schedules to export")
)

// CalendarService renders a class's recurring schedule as an iCalendar feed.
//
// Each weekly slot is expanded into concrete dated events over the class's
// [start_date, end_date] window, with resolved exceptions applied on top:
// cancellations drop the occurrence, reschedules move it, time-slot and room
// changes override the single date, substitutions swap the teacher line.
type CalendarService interface {
	// BuildClassCalendar serializes the expanded schedule of one class.
	BuildClassCalendar(ctx context.Context, classID string) (*bytes.Buffer, string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService creates a CalendarService.
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

func (s *calendarService) BuildClassCalendar(ctx context.Context, classID string) (*bytes.Buffer, string, error) {
	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrCalendarClassNotFound
		}
		s.logger.Error("load class failed", zap.Error(err))
		return nil, "", err
	}
	if len(class.Schedules) == 0 {
		return nil, "", ErrCalendarEmpty
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//classroom-hub//schedule//EN")

	slotCache := map[string]*model.TimeSlot{}
	roomCache := map[string]*model.Room{}
	teacherNameCache := map[string]string{}

	for i := range class.Schedules {
		sched := &class.Schedules[i]
		if sched.Status == model.ScheduleStatusCancelled {
			continue
		}

		exceptions, err := s.repo.ScheduleRequest.ListResolvedExceptionsBySchedule(ctx, sched.ClassScheduleID)
		if err != nil {
			s.logger.Error("load exceptions failed",
				zap.String("class_schedule_id", sched.ClassScheduleID), zap.Error(err))
			return nil, "", err
		}
		exceptionByDate := make(map[string]*model.ScheduleRequest, len(exceptions))
		for j := range exceptions {
			if exceptions[j].ExceptionDate != nil {
				exceptionByDate[formatDate(*exceptions[j].ExceptionDate)] = &exceptions[j]
			}
		}

		weekday := time.Weekday(sched.DayOfWeek - 1)
		for d := class.StartDate; !d.After(class.EndDate); d = d.AddDate(0, 0, 1) {
			if d.Weekday() != weekday {
				continue
			}

			date := d
			slot := sched.TimeSlot
			room := sched.Room
			teacherName := ""
			if sched.Teacher != nil {
				teacherName = sched.Teacher.FullName
			} else if class.Teacher != nil {
				teacherName = class.Teacher.FullName
			}
			note := ""

			if exc, ok := exceptionByDate[formatDate(d)]; ok && exc.ExceptionType != nil {
				switch *exc.ExceptionType {
				case model.ExceptionCancellation:
					continue
				case model.ExceptionReschedule:
					if exc.MovedToDate != nil {
						date = *exc.MovedToDate
					}
					if exc.MovedToTimeSlotID != nil {
						slot, err = s.lookupSlot(ctx, slotCache, *exc.MovedToTimeSlotID)
						if err != nil {
							return nil, "", err
						}
					}
					if exc.MovedToRoomID != nil {
						room, err = s.lookupRoom(ctx, roomCache, *exc.MovedToRoomID)
						if err != nil {
							return nil, "", err
						}
					}
					note = "Rescheduled: " + exc.Reason
				case model.ExceptionTimeSlotChange:
					if exc.NewTimeSlotID != nil {
						slot, err = s.lookupSlot(ctx, slotCache, *exc.NewTimeSlotID)
						if err != nil {
							return nil, "", err
						}
					}
					note = "Time changed: " + exc.Reason
				case model.ExceptionRoomChange:
					if exc.NewRoomID != nil {
						room, err = s.lookupRoom(ctx, roomCache, *exc.NewRoomID)
						if err != nil {
							return nil, "", err
						}
					}
					note = "Room changed: " + exc.Reason
				case model.ExceptionSubstitution:
					if exc.SubstituteTeacherID != nil {
						teacherName, err = s.lookupTeacherName(ctx, teacherNameCache, *exc.SubstituteTeacherID)
						if err != nil {
							return nil, "", err
						}
						teacherName += " (substitute)"
					}
					note = "Substitution: " + exc.Reason
				}
			}

			if slot == nil {
				continue
			}

			uid := fmt.Sprintf("%s-%s@classroom-hub", sched.ClassScheduleID, formatDate(date))
			evt := cal.AddEvent(uid)
			evt.SetStartAt(combineDateTime(date, slot.StartTime))
			evt.SetEndAt(combineDateTime(date, slot.EndTime))

			summary := class.Code + " " + class.SubjectName
			if sched.PracticeGroup > 0 {
				summary += fmt.Sprintf(" (group %d)", sched.PracticeGroup)
			}
			evt.SetSummary(summary)

			if room != nil {
				location := room.Code
				if room.Building != "" {
					location += ", " + room.Building
				}
				evt.SetLocation(location)
			}

			description := slot.Name
			if teacherName != "" {
				description += " / " + teacherName
			}
			if note != "" {
				description += "\n" + note
			}
			evt.SetDescription(description)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, fmt.Sprintf("%s.ics", class.Code), nil
}

// ── lookup helpers ──

func (s *calendarService) lookupSlot(ctx context.Context, cache map[string]*model.TimeSlot, id string) (*model.TimeSlot, error) {
	if slot, ok := cache[id]; ok {
		return slot, nil
	}
	slot, err := s.repo.TimeSlot.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("load time slot failed", zap.String("time_slot_id", id), zap.Error(err))
		return nil, err
	}
	cache[id] = slot
	return slot, nil
}

func (s *calendarService) lookupRoom(ctx context.Context, cache map[string]*model.Room, id string) (*model.Room, error) {
	if room, ok := cache[id]; ok {
		return room, nil
	}
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("load room failed", zap.String("room_id", id), zap.Error(err))
		return nil, err
	}
	cache[id] = room
	return room, nil
}

func (s *calendarService) lookupTeacherName(ctx context.Context, cache map[string]string, id string) (string, error) {
	if name, ok := cache[id]; ok {
		return name, nil
	}
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("load teacher failed", zap.String("teacher_id", id), zap.Error(err))
		return "", err
	}
	cache[id] = teacher.FullName
	return teacher.FullName, nil
}

// combineDateTime merges a calendar date with a "HH:MM" or "HH:MM:SS" time
// of day, keeping the date's location.
func combineDateTime(date time.Time, timeOfDay string) time.Time {
	layout := "15:04:05"
	if len(timeOfDay) == 5 {
		layout = "15:04"
	}
	t, err := time.Parse(layout, timeOfDay)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, date.Location())
}
