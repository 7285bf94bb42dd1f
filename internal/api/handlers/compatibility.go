package handlers

import (
	"errors"
	"net/http"
	"time"

	"bus-transition-engine/internal/api/dto"
	"bus-transition-engine/internal/domain"
	"bus-transition-engine/internal/services"
)

// CompatibilityHandler exposes single-pair and batch transition validation.
type CompatibilityHandler struct {
	Eval *services.Evaluator
	Seq  *services.SequenceValidator
}

// Validate answers whether the gap between two routes is enough for the
// travel between them.
func (h *CompatibilityHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.ValidateCompatibilityRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	verdict, err := h.Eval.Evaluate(r.Context(), req.RouteAEnd, req.RouteBStart, req.TimeAvailableMinutes)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCoordinates) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, http.StatusBadGateway, "routing service unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CompatibilityResponse{
		Compatible:        verdict.Compatible,
		BufferMinutes:     verdict.BufferMinutes,
		Recommendation:    string(verdict.Tier),
		TravelTimeMinutes: verdict.Result.TravelTimeMinutes,
		DistanceKm:        verdict.Result.DistanceKm,
		UsedCache:         verdict.Result.Provenance == domain.ProvenanceCache,
		UsedFallback:      verdict.Result.Provenance == domain.ProvenanceFallback,
	})
}

// BatchValidate evaluates every adjacent transition of one vehicle's
// ordered route sequence.
func (h *CompatibilityHandler) BatchValidate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.BatchValidateRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	routes := make([]domain.RouteEndpoint, 0, len(req.RoutesSequence))
	for _, rt := range req.RoutesSequence {
		routes = append(routes, domain.RouteEndpoint{
			RouteID:    rt.RouteID,
			Type:       domain.RouteType(rt.Type),
			School:     rt.School,
			StartCoord: rt.StartCoord,
			EndCoord:   rt.EndCoord,
			StartTime:  rt.StartTime,
			EndTime:    rt.EndTime,
		})
	}

	start := time.Now()
	report, err := h.Seq.Validate(r.Context(), req.BusID, routes)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCoordinates) || errors.Is(err, domain.ErrInvalidTimeFormat) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.BatchValidateResponse{
		BusID:                  report.BusID,
		Transitions:            toTransitionResponses(report.Transitions),
		TotalTravelTimeMinutes: report.TotalTravelMinutes,
		MinBufferMinutes:       report.MinBufferMinutes,
		AvgBufferMinutes:       report.AvgBufferMinutes,
		CriticalTransitions:    toTransitionResponses(report.Critical),
		OverallRecommendation:  string(report.Overall),
		ExecutionTimeMs:        time.Since(start).Milliseconds(),
		CacheHits:              report.CacheHits,
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toTransitionResponses(assessments []services.TransitionAssessment) []dto.TransitionResponse {
	out := make([]dto.TransitionResponse, 0, len(assessments))
	for _, a := range assessments {
		out = append(out, dto.TransitionResponse{
			FromRouteID:          a.FromRouteID,
			ToRouteID:            a.ToRouteID,
			TimeAvailableMinutes: a.TimeAvailableMinutes,
			TravelTimeMinutes:    a.Verdict.Result.TravelTimeMinutes,
			DistanceKm:           a.Verdict.Result.DistanceKm,
			BufferMinutes:        a.Verdict.BufferMinutes,
			Compatible:           a.Verdict.Compatible,
			Recommendation:       string(a.Verdict.Tier),
			UsedCache:            a.Verdict.Result.Provenance == domain.ProvenanceCache,
			UsedFallback:         a.Verdict.Result.Provenance == domain.ProvenanceFallback,
		})
	}
	return out
}
