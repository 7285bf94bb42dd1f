package dto

import "bus-transition-engine/internal/domain"

type ValidateCompatibilityRequest struct {
	RouteAEnd            domain.Coordinate `json:"route_a_end"`
	RouteBStart          domain.Coordinate `json:"route_b_start"`
	TimeAvailableMinutes float64           `json:"time_available_minutes"`
}

type CompatibilityResponse struct {
	Compatible        bool    `json:"compatible"`
	BufferMinutes     float64 `json:"buffer_minutes"`
	Recommendation    string  `json:"recommendation"`
	TravelTimeMinutes float64 `json:"travel_time_minutes"`
	DistanceKm        float64 `json:"distance_km"`
	UsedCache         bool    `json:"used_cache"`
	UsedFallback      bool    `json:"used_fallback"`
}

type BatchRoute struct {
	RouteID    string            `json:"route_id"`
	StartCoord domain.Coordinate `json:"start_coord"`
	EndCoord   domain.Coordinate `json:"end_coord"`
	StartTime  string            `json:"start_time"`
	EndTime    string            `json:"end_time"`
	Type       string            `json:"type"`
	School     string            `json:"school"`
}

type BatchValidateRequest struct {
	BusID          string       `json:"bus_id"`
	RoutesSequence []BatchRoute `json:"routes_sequence"`
}

type TransitionResponse struct {
	FromRouteID          string  `json:"from_route_id"`
	ToRouteID            string  `json:"to_route_id"`
	TimeAvailableMinutes float64 `json:"time_available_minutes"`
	TravelTimeMinutes    float64 `json:"travel_time_minutes"`
	DistanceKm           float64 `json:"distance_km"`
	BufferMinutes        float64 `json:"buffer_minutes"`
	Compatible           bool    `json:"compatible"`
	Recommendation       string  `json:"recommendation"`
	UsedCache            bool    `json:"used_cache"`
	UsedFallback         bool    `json:"used_fallback"`
}

type BatchValidateResponse struct {
	BusID                  string               `json:"bus_id"`
	Transitions            []TransitionResponse `json:"transitions"`
	TotalTravelTimeMinutes float64              `json:"total_travel_time_minutes"`
	MinBufferMinutes       float64              `json:"min_buffer_minutes"`
	AvgBufferMinutes       float64              `json:"avg_buffer_minutes"`
	CriticalTransitions    []TransitionResponse `json:"critical_transitions"`
	OverallRecommendation  string               `json:"overall_recommendation"`
	ExecutionTimeMs        int64                `json:"execution_time_ms"`
	CacheHits              int                  `json:"cache_hits"`
}
