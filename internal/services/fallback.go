package services

import "bus-transition-engine/internal/domain"

// FallbackEstimate computes a travel-time estimate analytically: great-circle
// distance at a configured average speed. Deterministic, no side effects,
// never fails. Used whenever the routing oracle is unreachable.
func FallbackEstimate(origin, destination domain.Coordinate, speedKmh float64) domain.TransitionResult {
	km := domain.GreatCircleKm(origin, destination)
	return domain.TransitionResult{
		TravelTimeMinutes: km / speedKmh * 60,
		DistanceKm:        km,
		Provenance:        domain.ProvenanceFallback,
	}
}
