package services

import (
	"fmt"
	"sort"
	"strings"

	"bus-transition-engine/internal/domain"
)

// ConflictValidator checks one day's full set of vehicle assignments for
// structural violations, independent of travel time. Output is
// deterministic for identical input.
type ConflictValidator struct {
	MaxTimeShiftMinutes  float64
	OverlapBufferMinutes float64
	MaxRoutesPerBus      int
}

// Validate runs every rule independently and returns the conflicts ordered
// by severity (errors first), then smallest affected route id, then
// conflict kind name.
func (v *ConflictValidator) Validate(schedule domain.DaySchedule) []domain.Conflict {
	conflicts := make([]domain.Conflict, 0)

	seenOn := make(map[string][]string) // route id -> bus ids

	for _, bus := range schedule.Buses {
		conflicts = append(conflicts, v.checkItems(bus)...)
		conflicts = append(conflicts, v.checkOverlaps(bus)...)

		if v.MaxRoutesPerBus > 0 && len(bus.Items) > v.MaxRoutesPerBus {
			conflicts = append(conflicts, domain.Conflict{
				Kind:     domain.ConflictHighRouteCount,
				Severity: domain.SeverityWarning,
				RouteIDs: routeIDs(bus.Items),
				BusID:    bus.BusID,
				Message: fmt.Sprintf("bus %s has %d routes in one day (limit %d)",
					bus.BusID, len(bus.Items), v.MaxRoutesPerBus),
			})
		}

		for _, item := range bus.Items {
			seenOn[item.RouteID] = append(seenOn[item.RouteID], bus.BusID)
		}
	}

	for routeID, buses := range seenOn {
		if len(buses) < 2 {
			continue
		}
		sort.Strings(buses)
		conflicts = append(conflicts, domain.Conflict{
			Kind:     domain.ConflictDuplicateRoute,
			Severity: domain.SeverityError,
			RouteIDs: []string{routeID},
			Message: fmt.Sprintf("route %s is assigned to %d vehicles: %s",
				routeID, len(buses), strings.Join(buses, ", ")),
		})
	}

	sortConflicts(conflicts)
	return conflicts
}

// IsValid reports whether a conflict list blocks the schedule. Warnings
// are informational only.
func IsValid(conflicts []domain.Conflict) bool {
	for _, c := range conflicts {
		if c.Severity == domain.SeverityError {
			return false
		}
	}
	return true
}

// checkItems runs the per-item rules: time format, time shift, stop
// coordinates, and capacity.
func (v *ConflictValidator) checkItems(bus domain.BusDaySchedule) []domain.Conflict {
	conflicts := make([]domain.Conflict, 0)

	for _, item := range bus.Items {
		badTimes := make([]string, 0, 2)
		if _, err := domain.ParseClock(item.StartTime); err != nil {
			badTimes = append(badTimes, item.StartTime)
		}
		if _, err := domain.ParseClock(item.EndTime); err != nil {
			badTimes = append(badTimes, item.EndTime)
		}
		if len(badTimes) > 0 {
			conflicts = append(conflicts, domain.Conflict{
				Kind:     domain.ConflictInvalidTimeFormat,
				Severity: domain.SeverityError,
				RouteIDs: []string{item.RouteID},
				BusID:    bus.BusID,
				Message: fmt.Sprintf("route %s has malformed times: %s",
					item.RouteID, strings.Join(badTimes, ", ")),
			})
		}

		if shift := item.TimeShiftMinutes; shift > v.MaxTimeShiftMinutes || shift < -v.MaxTimeShiftMinutes {
			conflicts = append(conflicts, domain.Conflict{
				Kind:     domain.ConflictTimeShiftExceeded,
				Severity: domain.SeverityError,
				RouteIDs: []string{item.RouteID},
				BusID:    bus.BusID,
				Message: fmt.Sprintf("route %s is shifted %.0f minutes (limit %.0f)",
					item.RouteID, item.TimeShiftMinutes, v.MaxTimeShiftMinutes),
			})
		}

		for _, stop := range item.Stops {
			if err := stop.Coord.Validate(); err != nil {
				conflicts = append(conflicts, domain.Conflict{
					Kind:     domain.ConflictInvalidCoordinates,
					Severity: domain.SeverityError,
					RouteIDs: []string{item.RouteID},
					BusID:    bus.BusID,
					Message: fmt.Sprintf("route %s stop %q: %v",
						item.RouteID, stop.Name, err),
				})
				break
			}
		}

		if bus.Capacity > 0 && item.CapacityNeeded > bus.Capacity {
			conflicts = append(conflicts, domain.Conflict{
				Kind:     domain.ConflictCapacityExceeded,
				Severity: domain.SeverityWarning,
				RouteIDs: []string{item.RouteID},
				BusID:    bus.BusID,
				Message: fmt.Sprintf("route %s needs %d seats but bus %s has %d",
					item.RouteID, item.CapacityNeeded, bus.BusID, bus.Capacity),
			})
		}
	}

	return conflicts
}

// checkOverlaps flags pairs of items on one vehicle whose time windows
// collide. Items with malformed times are skipped here; the format rule
// reports them separately.
func (v *ConflictValidator) checkOverlaps(bus domain.BusDaySchedule) []domain.Conflict {
	conflicts := make([]domain.Conflict, 0)
	buf := v.OverlapBufferMinutes

	type window struct {
		routeID    string
		start, end float64
	}

	windows := make([]window, 0, len(bus.Items))
	for _, item := range bus.Items {
		start, err := domain.ParseClock(item.StartTime)
		if err != nil {
			continue
		}
		end, err := domain.ParseClock(item.EndTime)
		if err != nil {
			continue
		}
		windows = append(windows, window{routeID: item.RouteID, start: float64(start), end: float64(end)})
	}

	for i := 0; i < len(windows); i++ {
		for j := i + 1; j < len(windows); j++ {
			a, b := windows[i], windows[j]
			if a.end+buf <= b.start || b.end <= a.start-buf {
				continue
			}

			ids := []string{a.routeID, b.routeID}
			sort.Strings(ids)
			conflicts = append(conflicts, domain.Conflict{
				Kind:     domain.ConflictTimeOverlap,
				Severity: domain.SeverityError,
				RouteIDs: ids,
				BusID:    bus.BusID,
				Message: fmt.Sprintf("routes %s and %s overlap on bus %s",
					ids[0], ids[1], bus.BusID),
			})
		}
	}

	return conflicts
}

func routeIDs(items []domain.ScheduleItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.RouteID)
	}
	sort.Strings(ids)
	return ids
}

// sortConflicts orders by severity, then first affected route id, then
// kind name, then message as a final tie-break for full determinism.
func sortConflicts(conflicts []domain.Conflict) {
	sort.Slice(conflicts, func(i, j int) bool {
		a, b := conflicts[i], conflicts[j]
		if a.Severity != b.Severity {
			return a.Severity == domain.SeverityError
		}
		ra, rb := firstRouteID(a), firstRouteID(b)
		if ra != rb {
			return ra < rb
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Message < b.Message
	})
}

func firstRouteID(c domain.Conflict) string {
	if len(c.RouteIDs) == 0 {
		return ""
	}
	return c.RouteIDs[0]
}
