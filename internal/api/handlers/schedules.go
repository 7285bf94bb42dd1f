package handlers

import (
	"net/http"

	"bus-transition-engine/internal/api/dto"
	"bus-transition-engine/internal/domain"
	"bus-transition-engine/internal/services"
)

// ScheduleHandler validates a proposed day schedule without persisting it.
type ScheduleHandler struct {
	Validator *services.ConflictValidator
}

func (h *ScheduleHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var schedule domain.DaySchedule
	if !decodeStrict(w, r, &schedule) {
		return
	}

	conflicts := h.Validator.Validate(schedule)

	res := dto.ValidateScheduleResponse{
		Valid:     services.IsValid(conflicts),
		Conflicts: make([]dto.ConflictResponse, 0, len(conflicts)),
	}
	for _, c := range conflicts {
		if c.Severity == domain.SeverityError {
			res.ErrorCount++
		} else {
			res.WarningCount++
		}
		res.Conflicts = append(res.Conflicts, dto.ConflictResponse{
			Kind:     string(c.Kind),
			Severity: string(c.Severity),
			RouteIDs: c.RouteIDs,
			BusID:    c.BusID,
			Message:  c.Message,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
