package model

// Status and type codes used across the engine. Each enum is a typed string
// with one canonical display-name table; no numeric codes anywhere else.

// ── ClassSchedule status ──

// ScheduleStatus is the lifecycle state of one recurring weekly slot.
type ScheduleStatus string

const (
	ScheduleStatusPending   ScheduleStatus = "pending"
	ScheduleStatusAssigned  ScheduleStatus = "assigned"
	ScheduleStatusActive    ScheduleStatus = "active"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
	ScheduleStatusSuspended ScheduleStatus = "suspended"
)

// IsOccupying reports whether a slot in this status holds its room for
// conflict-detection purposes.
func (s ScheduleStatus) IsOccupying() bool {
	return s == ScheduleStatusAssigned || s == ScheduleStatusActive
}

// OccupyingStatuses lists the statuses that count toward room conflicts.
// The partial unique index in the migrations must stay in sync with this.
func OccupyingStatuses() []ScheduleStatus {
	return []ScheduleStatus{ScheduleStatusAssigned, ScheduleStatusActive}
}

// ── ScheduleRequest status ──

// RequestStatus is the approval state of a ScheduleRequest.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
	// RequestStatusResolved marks direct overrides (exceptions) that skip
	// the approval pipeline.
	RequestStatusResolved RequestStatus = "resolved"
)

// IsTerminal reports whether the request has been decided.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected || s == RequestStatusResolved
}

// ── ScheduleRequest type ──

// RequestType distinguishes plain room requests, change requests routed
// through approval, and direct schedule exceptions.
type RequestType string

const (
	RequestTypeRoomRequest    RequestType = "room_request"
	RequestTypeScheduleChange RequestType = "schedule_change"
	RequestTypeException      RequestType = "schedule_exception"
)

// IsExceptionCategory reports whether the type belongs to the exception
// manager. Guards the exception update/delete path against being repurposed
// for plain room requests.
func (t RequestType) IsExceptionCategory() bool {
	return t == RequestTypeException
}

// ── Exception type ──

// ExceptionType tags the kind of one-off deviation. All kinds share the
// same record shape; unused override fields stay null.
type ExceptionType string

const (
	ExceptionTimeSlotChange ExceptionType = "time_slot_change"
	ExceptionRoomChange     ExceptionType = "room_change"
	ExceptionReschedule     ExceptionType = "reschedule"
	ExceptionSubstitution   ExceptionType = "substitution"
	ExceptionCancellation   ExceptionType = "cancellation"
)

// Valid reports whether the tag is a recognized exception kind.
func (t ExceptionType) Valid() bool {
	switch t {
	case ExceptionTimeSlotChange, ExceptionRoomChange, ExceptionReschedule,
		ExceptionSubstitution, ExceptionCancellation:
		return true
	}
	return false
}

// ── Time slot shift ──

// Shift is the part of day a TimeSlot belongs to.
type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftEvening   Shift = "evening"
)

// ── Derived class status ──

// ClassStatus is the derived aggregate status of a Class. It is never
// stored: a class is assigned as soon as any of its slots occupies a room.
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusAssigned ClassStatus = "assigned"
)

// ── Display names ──

var displayNames = map[string]string{
	string(ScheduleStatusPending):   "Pending",
	string(ScheduleStatusAssigned):  "Assigned",
	string(ScheduleStatusActive):    "Active",
	string(ScheduleStatusCancelled): "Cancelled",
	string(ScheduleStatusSuspended): "Suspended",

	string(RequestStatusApproved): "Approved",
	string(RequestStatusRejected): "Rejected",
	string(RequestStatusResolved): "Resolved",

	string(RequestTypeRoomRequest):    "Room request",
	string(RequestTypeScheduleChange): "Schedule change request",
	string(RequestTypeException):      "Schedule exception",

	string(ExceptionTimeSlotChange): "Time slot change",
	string(ExceptionRoomChange):     "Room change",
	string(ExceptionReschedule):     "Reschedule",
	string(ExceptionSubstitution):   "Substitute teacher",
	string(ExceptionCancellation):   "Cancellation",

	string(ShiftMorning):   "Morning",
	string(ShiftAfternoon): "Afternoon",
	string(ShiftEvening):   "Evening",
}

// DisplayName returns the canonical human-readable label for any enum code.
// Unknown codes fall back to the raw code.
func DisplayName(code string) string {
	if name, ok := displayNames[code]; ok {
		return name
	}
	return code
}
