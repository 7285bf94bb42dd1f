package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bus-transition-engine/internal/domain"
)

func newConflictValidator() *ConflictValidator {
	return &ConflictValidator{
		MaxTimeShiftMinutes:  30,
		OverlapBufferMinutes: 0,
		MaxRoutesPerBus:      7,
	}
}

func item(routeID, start, end string) domain.ScheduleItem {
	return domain.ScheduleItem{
		RouteID:   routeID,
		StartTime: start,
		EndTime:   end,
		Type:      domain.RouteEntry,
		Stops: []domain.Stop{
			{Name: "stop-1", Coord: domain.Coordinate{Lat: -33.45, Lon: -70.66}},
		},
	}
}

func TestValidateDetectsTimeOverlap(t *testing.T) {
	v := newConflictValidator()

	schedule := domain.DaySchedule{
		Day: "monday",
		Buses: []domain.BusDaySchedule{{
			BusID: "B-1",
			Items: []domain.ScheduleItem{
				item("R1", "08:00", "08:45"),
				item("R2", "08:40", "09:20"),
			},
		}},
	}

	conflicts := v.Validate(schedule)
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictTimeOverlap, conflicts[0].Kind)
	assert.Equal(t, domain.SeverityError, conflicts[0].Severity)
	assert.Equal(t, []string{"R1", "R2"}, conflicts[0].RouteIDs)
	assert.False(t, IsValid(conflicts))
}

func TestValidateAdjacentWindowsDoNotOverlap(t *testing.T) {
	v := newConflictValidator()

	schedule := domain.DaySchedule{
		Buses: []domain.BusDaySchedule{{
			BusID: "B-1",
			Items: []domain.ScheduleItem{
				item("R1", "08:00", "08:45"),
				item("R2", "08:45", "09:20"), // back to back is allowed
			},
		}},
	}

	assert.Empty(t, v.Validate(schedule))
}

func TestValidateDetectsTimeShiftExceeded(t *testing.T) {
	v := newConflictValidator()

	shifted := item("R1", "08:00", "08:45")
	shifted.TimeShiftMinutes = 35

	conflicts := v.Validate(domain.DaySchedule{
		Buses: []domain.BusDaySchedule{{BusID: "B-1", Items: []domain.ScheduleItem{shifted}}},
	})
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictTimeShiftExceeded, conflicts[0].Kind)
	assert.Equal(t, domain.SeverityError, conflicts[0].Severity)

	// Negative shifts count against the same limit.
	shifted.TimeShiftMinutes = -31
	conflicts = v.Validate(domain.DaySchedule{
		Buses: []domain.BusDaySchedule{{BusID: "B-1", Items: []domain.ScheduleItem{shifted}}},
	})
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictTimeShiftExceeded, conflicts[0].Kind)

	// A shift of exactly the limit is fine.
	shifted.TimeShiftMinutes = 30
	assert.Empty(t, v.Validate(domain.DaySchedule{
		Buses: []domain.BusDaySchedule{{BusID: "B-1", Items: []domain.ScheduleItem{shifted}}},
	}))
}

func TestValidateDetectsInvalidCoordinates(t *testing.T) {
	v := newConflictValidator()

	bad := item("R1", "08:00", "08:45")
	bad.Stops = append(bad.Stops, domain.Stop{Name: "bad", Coord: domain.Coordinate{Lat: 95, Lon: 0}})

	conflicts := v.Validate(domain.DaySchedule{
		Buses: []domain.BusDaySchedule{{BusID: "B-1", Items: []domain.ScheduleItem{bad}}},
	})
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictInvalidCoordinates, conflicts[0].Kind)
	assert.Equal(t, domain.SeverityError, conflicts[0].Severity)
}

func TestValidateDetectsDuplicateAssignment(t *testing.T) {
	v := newConflictValidator()

	conflicts := v.Validate(domain.DaySchedule{
		Buses: []domain.BusDaySchedule{
			{BusID: "B-1", Items: []domain.ScheduleItem{item("R1", "08:00", "08:45")}},
			{BusID: "B-2", Items: []domain.ScheduleItem{item("R1", "10:00", "10:45")}},
		},
	})
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictDuplicateRoute, conflicts[0].Kind)
	assert.Equal(t, []string{"R1"}, conflicts[0].RouteIDs)
	assert.Contains(t, conflicts[0].Message, "B-1")
	assert.Contains(t, conflicts[0].Message, "B-2")
}

func TestValidateDetectsInvalidTimeFormat(t *testing.T) {
	v := newConflictValidator()

	conflicts := v.Validate(domain.DaySchedule{
		Buses: []domain.BusDaySchedule{{
			BusID: "B-1",
			Items: []domain.ScheduleItem{item("R1", "8h00", "08:45")},
		}},
	})
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictInvalidTimeFormat, conflicts[0].Kind)
	assert.Equal(t, domain.SeverityError, conflicts[0].Severity)
}

func TestValidateHighRouteCountIsWarningOnly(t *testing.T) {
	v := newConflictValidator()

	items := make([]domain.ScheduleItem, 0, 8)
	for i := 0; i < 8; i++ {
		start := fmt.Sprintf("%02d:00", 8+i)
		end := fmt.Sprintf("%02d:45", 8+i)
		items = append(items, item(fmt.Sprintf("R%d", i+1), start, end))
	}

	conflicts := v.Validate(domain.DaySchedule{
		Buses: []domain.BusDaySchedule{{BusID: "B-1", Items: items}},
	})

	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictHighRouteCount, conflicts[0].Kind)
	assert.Equal(t, domain.SeverityWarning, conflicts[0].Severity)
	assert.True(t, IsValid(conflicts), "warnings do not block validity")
}

func TestValidateCapacityExceededIsWarning(t *testing.T) {
	v := newConflictValidator()

	heavy := item("R1", "08:00", "08:45")
	heavy.CapacityNeeded = 50

	conflicts := v.Validate(domain.DaySchedule{
		Buses: []domain.BusDaySchedule{{BusID: "B-1", Capacity: 40, Items: []domain.ScheduleItem{heavy}}},
	})
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictCapacityExceeded, conflicts[0].Kind)
	assert.Equal(t, domain.SeverityWarning, conflicts[0].Severity)
}

func TestValidateIsDeterministic(t *testing.T) {
	v := newConflictValidator()

	shifted := item("R3", "09:00", "09:30")
	shifted.TimeShiftMinutes = 40

	schedule := domain.DaySchedule{
		Buses: []domain.BusDaySchedule{
			{
				BusID: "B-2",
				Items: []domain.ScheduleItem{
					item("R1", "08:00", "08:45"),
					item("R2", "08:40", "09:20"),
					shifted,
					item("R4", "bad", "10:00"),
				},
			},
			{BusID: "B-1", Items: []domain.ScheduleItem{item("R1", "11:00", "11:30")}},
		},
	}

	first := v.Validate(schedule)
	second := v.Validate(schedule)
	require.Equal(t, first, second, "identical input must yield identical ordered conflicts")

	// Errors come first, ordered by route id then kind.
	require.NotEmpty(t, first)
	for i := 1; i < len(first); i++ {
		if first[i-1].Severity == domain.SeverityWarning {
			assert.Equal(t, domain.SeverityWarning, first[i].Severity)
		}
	}
}
