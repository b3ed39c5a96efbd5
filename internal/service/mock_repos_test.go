package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"classroom-hub/internal/model"
	"classroom-hub/internal/repository"
	pkgerrors "classroom-hub/pkg/errors"
)

// ── Mock DepartmentRepository ──

type mockDepartmentRepo struct {
	departments map[string]*model.Department
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{departments: make(map[string]*model.Department)}
}

func (m *mockDepartmentRepo) Create(_ context.Context, dept *model.Department) error {
	if dept.DepartmentID == "" {
		dept.DepartmentID = "dept-" + dept.Code
	}
	m.departments[dept.DepartmentID] = dept
	return nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.departments[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) List(_ context.Context) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.departments {
		if d.IsActive {
			result = append(result, *d)
		}
	}
	return result, nil
}

func (m *mockDepartmentRepo) Update(_ context.Context, dept *model.Department) error {
	m.departments[dept.DepartmentID] = dept
	return nil
}

func (m *mockDepartmentRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.departments, id)
	return nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID == "" {
		teacher.TeacherID = "teacher-" + teacher.Code
	}
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context, departmentID string) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		if !t.IsActive {
			continue
		}
		if departmentID != "" && t.DepartmentID != departmentID {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.teachers, id)
	return nil
}

// ── Mock RoomTypeRepository ──

type mockRoomTypeRepo struct {
	types map[string]*model.RoomType
}

func newMockRoomTypeRepo() *mockRoomTypeRepo {
	return &mockRoomTypeRepo{types: make(map[string]*model.RoomType)}
}

func (m *mockRoomTypeRepo) GetByID(_ context.Context, id string) (*model.RoomType, error) {
	if rt, ok := m.types[id]; ok {
		return rt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomTypeRepo) List(_ context.Context) ([]model.RoomType, error) {
	var result []model.RoomType
	for _, rt := range m.types {
		result = append(result, *rt)
	}
	return result, nil
}

// ── Mock TimeSlotRepository ──

type mockTimeSlotRepo struct {
	slots map[string]*model.TimeSlot
}

func newMockTimeSlotRepo() *mockTimeSlotRepo {
	return &mockTimeSlotRepo{slots: make(map[string]*model.TimeSlot)}
}

func (m *mockTimeSlotRepo) GetByID(_ context.Context, id string) (*model.TimeSlot, error) {
	if s, ok := m.slots[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeSlotRepo) List(_ context.Context, shift model.Shift) ([]model.TimeSlot, error) {
	var result []model.TimeSlot
	for _, s := range m.slots {
		if shift != "" && s.Shift != shift {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms map[string]*model.Room
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[string]*model.Room)}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	if room.RoomID == "" {
		room.RoomID = "room-" + room.Code
	}
	if room.Version == 0 {
		room.Version = 1
	}
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) GetByCode(_ context.Context, code string) (*model.Room, error) {
	for _, r := range m.rooms {
		if r.Code == code {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context, filter repository.RoomFilter, offset, limit int) ([]model.Room, int64, error) {
	var filtered []model.Room
	for _, r := range m.rooms {
		if filter.RoomTypeID != "" && r.RoomTypeID != filter.RoomTypeID {
			continue
		}
		if filter.OnlyAvailable && !r.IsAvailable {
			continue
		}
		if filter.Search != "" && !strings.Contains(r.Code, filter.Search) && !strings.Contains(r.Name, filter.Search) {
			continue
		}
		filtered = append(filtered, *r)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockRoomRepo) ListCandidates(_ context.Context, roomTypeID string, minCapacity int, departmentID string) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		if r.RoomTypeID != roomTypeID || !r.IsAvailable || r.Capacity < minCapacity {
			continue
		}
		if r.DepartmentID != nil && *r.DepartmentID != departmentID {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRoomRepo) Update(_ context.Context, room *model.Room) error {
	current, ok := m.rooms[room.RoomID]
	if !ok || current.Version != room.Version {
		return pkgerrors.ErrOptimisticLock
	}
	room.Version++
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.rooms, id)
	return nil
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	classes   map[string]*model.Class
	schedules *mockClassScheduleRepo
}

func newMockClassRepo(schedules *mockClassScheduleRepo) *mockClassRepo {
	return &mockClassRepo{classes: make(map[string]*model.Class), schedules: schedules}
}

func (m *mockClassRepo) CreateWithSchedules(ctx context.Context, class *model.Class, schedules []model.ClassSchedule) error {
	if class.ClassID == "" {
		class.ClassID = "class-" + class.Code
	}
	if class.Version == 0 {
		class.Version = 1
	}
	m.classes[class.ClassID] = class
	for i := range schedules {
		schedules[i].ClassID = class.ClassID
		if err := m.schedules.Create(ctx, &schedules[i]); err != nil {
			return err
		}
	}
	class.Schedules = schedules
	return nil
}

func (m *mockClassRepo) GetByID(ctx context.Context, id string) (*model.Class, error) {
	c, ok := m.classes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	cp.Schedules, _ = m.schedules.ListByClass(ctx, id)
	return &cp, nil
}

func (m *mockClassRepo) List(_ context.Context, departmentID, search string, offset, limit int) ([]model.Class, int64, error) {
	var filtered []model.Class
	for _, c := range m.classes {
		if departmentID != "" && c.DepartmentID != departmentID {
			continue
		}
		if search != "" && !strings.Contains(c.Code, search) && !strings.Contains(c.Name, search) {
			continue
		}
		filtered = append(filtered, *c)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockClassRepo) Update(_ context.Context, class *model.Class) error {
	current, ok := m.classes[class.ClassID]
	if !ok || current.Version != class.Version {
		return pkgerrors.ErrOptimisticLock
	}
	class.Version++
	m.classes[class.ClassID] = class
	return nil
}

func (m *mockClassRepo) DeleteCascade(ctx context.Context, id string, _ string) error {
	delete(m.classes, id)
	return m.schedules.DeleteByClass(ctx, id)
}

// ── Mock ClassScheduleRepository ──

type mockClassScheduleRepo struct {
	schedules map[string]*model.ClassSchedule
	idCounter int
}

func newMockClassScheduleRepo() *mockClassScheduleRepo {
	return &mockClassScheduleRepo{schedules: make(map[string]*model.ClassSchedule)}
}

func (m *mockClassScheduleRepo) Create(_ context.Context, schedule *model.ClassSchedule) error {
	if schedule.ClassScheduleID == "" {
		m.idCounter++
		schedule.ClassScheduleID = fmt.Sprintf("cs-%d", m.idCounter)
	}
	if schedule.Version == 0 {
		schedule.Version = 1
	}
	m.schedules[schedule.ClassScheduleID] = schedule
	return nil
}

func (m *mockClassScheduleRepo) GetByID(_ context.Context, id string) (*model.ClassSchedule, error) {
	if s, ok := m.schedules[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassScheduleRepo) ListByClass(_ context.Context, classID string) ([]model.ClassSchedule, error) {
	var result []model.ClassSchedule
	for _, s := range m.schedules {
		if s.ClassID == classID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockClassScheduleRepo) ListOccupiedRoomIDs(_ context.Context, dayOfWeek int, timeSlotID string) ([]string, error) {
	var result []string
	for _, s := range m.schedules {
		if s.DayOfWeek == dayOfWeek && s.TimeSlotID == timeSlotID && s.RoomID != nil && s.Status.IsOccupying() {
			result = append(result, *s.RoomID)
		}
	}
	return result, nil
}

func (m *mockClassScheduleRepo) ListActive(_ context.Context, search string, offset, limit int) ([]model.ClassSchedule, int64, error) {
	var filtered []model.ClassSchedule
	for _, s := range m.schedules {
		if s.Status != model.ScheduleStatusActive {
			continue
		}
		if search != "" && (s.Class == nil || !strings.Contains(s.Class.Code, search)) {
			continue
		}
		filtered = append(filtered, *s)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockClassScheduleRepo) ListOccupying(_ context.Context) ([]model.ClassSchedule, error) {
	var result []model.ClassSchedule
	for _, s := range m.schedules {
		if s.Status.IsOccupying() {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockClassScheduleRepo) AssignRoom(_ context.Context, schedule *model.ClassSchedule, roomID, assignedBy string, at time.Time) error {
	current, ok := m.schedules[schedule.ClassScheduleID]
	if !ok || current.Version != schedule.Version || current.Status.IsOccupying() {
		return pkgerrors.ErrOptimisticLock
	}
	// same uniqueness rule as the uq_room_occupancy index
	for _, s := range m.schedules {
		if s.ClassScheduleID == schedule.ClassScheduleID {
			continue
		}
		if s.DayOfWeek == current.DayOfWeek && s.TimeSlotID == current.TimeSlotID &&
			s.RoomID != nil && *s.RoomID == roomID && s.Status.IsOccupying() {
			return gorm.ErrDuplicatedKey
		}
	}
	current.RoomID = &roomID
	current.Status = model.ScheduleStatusAssigned
	current.AssignedBy = &assignedBy
	current.AssignedAt = &at
	current.Version++
	schedule.RoomID = &roomID
	schedule.Status = model.ScheduleStatusAssigned
	schedule.AssignedBy = &assignedBy
	schedule.AssignedAt = &at
	schedule.Version = current.Version
	return nil
}

func (m *mockClassScheduleRepo) ClearAssignment(_ context.Context, scheduleID string, _ string) error {
	s, ok := m.schedules[scheduleID]
	if !ok {
		return nil
	}
	s.RoomID = nil
	s.Status = model.ScheduleStatusPending
	s.AssignedBy = nil
	s.AssignedAt = nil
	s.Version++
	return nil
}

func (m *mockClassScheduleRepo) Update(_ context.Context, schedule *model.ClassSchedule) error {
	current, ok := m.schedules[schedule.ClassScheduleID]
	if !ok || current.Version != schedule.Version {
		return pkgerrors.ErrOptimisticLock
	}
	schedule.Version++
	m.schedules[schedule.ClassScheduleID] = schedule
	return nil
}

func (m *mockClassScheduleRepo) CountByRoom(_ context.Context, roomID string) (int64, error) {
	var count int64
	for _, s := range m.schedules {
		if s.RoomID != nil && *s.RoomID == roomID {
			count++
		}
	}
	return count, nil
}

func (m *mockClassScheduleRepo) DeleteByClass(_ context.Context, classID string) error {
	for id, s := range m.schedules {
		if s.ClassID == classID {
			delete(m.schedules, id)
		}
	}
	return nil
}

// ── Mock ScheduleRequestRepository ──

type mockScheduleRequestRepo struct {
	requests  map[string]*model.ScheduleRequest
	idCounter int
}

func newMockScheduleRequestRepo() *mockScheduleRequestRepo {
	return &mockScheduleRequestRepo{requests: make(map[string]*model.ScheduleRequest)}
}

func (m *mockScheduleRequestRepo) Create(_ context.Context, req *model.ScheduleRequest) error {
	// same uniqueness rule as the uq_exception_per_occurrence index
	if req.ClassScheduleID != nil && req.ExceptionDate != nil {
		for _, r := range m.requests {
			if r.ClassScheduleID != nil && r.ExceptionDate != nil &&
				*r.ClassScheduleID == *req.ClassScheduleID &&
				r.ExceptionDate.Equal(*req.ExceptionDate) &&
				r.RequestType == req.RequestType {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	m.idCounter++
	if req.RequestID == "" {
		req.RequestID = fmt.Sprintf("req-%d", m.idCounter)
	}
	if req.Version == 0 {
		req.Version = 1
	}
	m.requests[req.RequestID] = req
	return nil
}

func (m *mockScheduleRequestRepo) GetByID(_ context.Context, id string) (*model.ScheduleRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRequestRepo) List(_ context.Context, filter repository.RequestFilter, offset, limit int) ([]model.ScheduleRequest, int64, error) {
	var filtered []model.ScheduleRequest
	for _, r := range m.requests {
		if filter.ClassScheduleID != "" && (r.ClassScheduleID == nil || *r.ClassScheduleID != filter.ClassScheduleID) {
			continue
		}
		if filter.RequestType != "" && r.RequestType != filter.RequestType {
			continue
		}
		if filter.ExceptionType != "" && (r.ExceptionType == nil || *r.ExceptionType != filter.ExceptionType) {
			continue
		}
		if filter.RequesterID != "" && r.RequesterID != filter.RequesterID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		filtered = append(filtered, *r)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockScheduleRequestRepo) ExistsException(_ context.Context, classScheduleID string, exceptionDate time.Time, requestType model.RequestType) (bool, error) {
	for _, r := range m.requests {
		if r.ClassScheduleID != nil && r.ExceptionDate != nil &&
			*r.ClassScheduleID == classScheduleID &&
			r.ExceptionDate.Equal(exceptionDate) &&
			r.RequestType == requestType {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockScheduleRequestRepo) ListResolvedExceptionsBySchedule(_ context.Context, classScheduleID string) ([]model.ScheduleRequest, error) {
	var result []model.ScheduleRequest
	for _, r := range m.requests {
		if r.ClassScheduleID != nil && *r.ClassScheduleID == classScheduleID &&
			r.RequestType == model.RequestTypeException &&
			r.Status == model.RequestStatusResolved {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockScheduleRequestRepo) Update(_ context.Context, req *model.ScheduleRequest) error {
	current, ok := m.requests[req.RequestID]
	if !ok || current.Version != req.Version {
		return pkgerrors.ErrOptimisticLock
	}
	req.Version++
	m.requests[req.RequestID] = req
	return nil
}

func (m *mockScheduleRequestRepo) Delete(_ context.Context, id string) error {
	delete(m.requests, id)
	return nil
}

func (m *mockScheduleRequestRepo) CountPendingByRoom(_ context.Context, roomID string) (int64, error) {
	var count int64
	for _, r := range m.requests {
		if r.RoomID != nil && *r.RoomID == roomID && r.Status == model.RequestStatusPending {
			count++
		}
	}
	return count, nil
}

// ── test fixture wiring ──

type testRepos struct {
	department *mockDepartmentRepo
	teacher    *mockTeacherRepo
	roomType   *mockRoomTypeRepo
	timeSlot   *mockTimeSlotRepo
	room       *mockRoomRepo
	class      *mockClassRepo
	schedule   *mockClassScheduleRepo
	request    *mockScheduleRequestRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	schedule := newMockClassScheduleRepo()
	mocks := &testRepos{
		department: newMockDepartmentRepo(),
		teacher:    newMockTeacherRepo(),
		roomType:   newMockRoomTypeRepo(),
		timeSlot:   newMockTimeSlotRepo(),
		room:       newMockRoomRepo(),
		class:      newMockClassRepo(schedule),
		schedule:   schedule,
		request:    newMockScheduleRequestRepo(),
	}
	repo := &repository.Repository{
		Department:      mocks.department,
		Teacher:         mocks.teacher,
		RoomType:        mocks.roomType,
		TimeSlot:        mocks.timeSlot,
		Room:            mocks.room,
		Class:           mocks.class,
		ClassSchedule:   mocks.schedule,
		ScheduleRequest: mocks.request,
	}
	return repo, mocks
}
