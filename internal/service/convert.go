package service

import (
	"time"

	"classroom-hub/internal/dto"
	"classroom-hub/internal/model"
)

const dateLayout = "2006-01-02"

// ── model → DTO mapping helpers shared across services ──

func teacherBrief(t *model.Teacher) *dto.TeacherBrief {
	if t == nil {
		return nil
	}
	return &dto.TeacherBrief{
		ID:       t.TeacherID,
		Code:     t.Code,
		FullName: t.FullName,
	}
}

func departmentBrief(d *model.Department) *dto.DepartmentBrief {
	if d == nil {
		return nil
	}
	return &dto.DepartmentBrief{
		ID:   d.DepartmentID,
		Code: d.Code,
		Name: d.Name,
	}
}

func timeSlotBrief(ts *model.TimeSlot) *dto.TimeSlotBrief {
	if ts == nil {
		return nil
	}
	return &dto.TimeSlotBrief{
		ID:        ts.TimeSlotID,
		Name:      ts.Name,
		StartTime: ts.StartTime,
		EndTime:   ts.EndTime,
		Shift:     string(ts.Shift),
	}
}

func roomBrief(r *model.Room) *dto.RoomBrief {
	if r == nil {
		return nil
	}
	return &dto.RoomBrief{
		ID:       r.RoomID,
		Code:     r.Code,
		Name:     r.Name,
		Capacity: r.Capacity,
	}
}

func toClassScheduleResponse(s *model.ClassSchedule) dto.ClassScheduleResponse {
	resp := dto.ClassScheduleResponse{
		ID:            s.ClassScheduleID,
		ClassID:       s.ClassID,
		Teacher:       teacherBrief(s.Teacher),
		DayOfWeek:     s.DayOfWeek,
		TimeSlot:      timeSlotBrief(s.TimeSlot),
		PracticeGroup: s.PracticeGroup,
		Room:          roomBrief(s.Room),
		Status:        string(s.Status),
		StatusName:    model.DisplayName(string(s.Status)),
		Note:          s.Note,
	}
	if s.Class != nil {
		resp.ClassCode = s.Class.Code
		resp.ClassName = s.Class.Name
	}
	return resp
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
