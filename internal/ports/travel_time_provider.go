package ports

import (
	"context"
	"time"

	"bus-transition-engine/internal/domain"
)

// Travel distance and duration between two points.
type TravelEstimate struct {
	TravelTimeMinutes float64
	DistanceKm        float64
}

// Contract for retrieving travel time and distance between two coordinates.
type TravelTimeProvider interface {
	// Return travel time and distance from origin to destination.
	Travel(ctx context.Context, origin, destination domain.Coordinate) (TravelEstimate, error)

	// Probe the backing service and report its round-trip time.
	Ping(ctx context.Context) (time.Duration, error)
}
