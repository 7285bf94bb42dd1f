package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTimeFormat marks a time field that does not parse as HH:MM.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// ParseClock converts an HH:MM string to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidTimeFormat, s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q has invalid hour", ErrInvalidTimeFormat, s)
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q has invalid minute", ErrInvalidTimeFormat, s)
	}

	return h*60 + m, nil
}

// Stop is a single pickup/drop-off point of a route.
type Stop struct {
	Name  string     `json:"name"`
	Coord Coordinate `json:"coord"`
}

// ScheduleItem is one route placed on one vehicle for one day.
type ScheduleItem struct {
	RouteID          string    `json:"route_id"`
	StartTime        string    `json:"start_time"` // HH:MM
	EndTime          string    `json:"end_time"`   // HH:MM
	Type             RouteType `json:"type"`
	Locked           bool      `json:"locked"`
	TimeShiftMinutes float64   `json:"time_shift_minutes"`
	Stops            []Stop    `json:"stops"`
	CapacityNeeded   int       `json:"capacity_needed"`
}

// BusDaySchedule holds the ordered routes of one vehicle for one day.
// The item order is the operational order for that vehicle.
type BusDaySchedule struct {
	BusID    string         `json:"bus_id"`
	Capacity int            `json:"capacity"`
	Items    []ScheduleItem `json:"items"`
}

// DaySchedule is a full day's assignment: one BusDaySchedule per vehicle
// plus the routes nobody picked up.
type DaySchedule struct {
	Day        string           `json:"day"`
	Buses      []BusDaySchedule `json:"buses"`
	Unassigned []ScheduleItem   `json:"unassigned"`
}

// Severity grades a conflict. Only error-severity conflicts make a
// schedule invalid; warnings are informational.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ConflictKind names the rule a schedule violates.
type ConflictKind string

const (
	ConflictTimeOverlap        ConflictKind = "time_overlap"
	ConflictTimeShiftExceeded  ConflictKind = "time_shift_exceeded"
	ConflictInvalidCoordinates ConflictKind = "invalid_coordinates"
	ConflictDuplicateRoute     ConflictKind = "duplicate_assignment"
	ConflictInvalidTimeFormat  ConflictKind = "invalid_time_format"
	ConflictHighRouteCount     ConflictKind = "high_route_count"
	ConflictCapacityExceeded   ConflictKind = "capacity_exceeded"
)

// Conflict is a structured validity violation found in a day's schedule.
type Conflict struct {
	Kind     ConflictKind `json:"kind"`
	Severity Severity     `json:"severity"`
	RouteIDs []string     `json:"route_ids"`
	BusID    string       `json:"bus_id,omitempty"`
	Message  string       `json:"message"`
}
