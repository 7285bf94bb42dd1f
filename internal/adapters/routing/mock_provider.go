package routing

import (
	"context"
	"fmt"
	"time"

	"bus-transition-engine/internal/domain"
	"bus-transition-engine/internal/ports"
)

type MockLeg struct {
	From, To domain.Coordinate
	Minutes  float64
	Km       float64
}

// MockProvider serves fixed travel estimates for tests. Pairs not present
// in the table fail with ErrOracleUnavailable, which makes it equally
// useful for exercising the fallback path.
type MockProvider struct {
	m     map[string]ports.TravelEstimate
	Calls int
}

func NewMockProvider(legs []MockLeg) *MockProvider {
	m := make(map[string]ports.TravelEstimate, len(legs))
	for _, l := range legs {
		m[domain.QuantizedKey(l.From, l.To)] = ports.TravelEstimate{
			TravelTimeMinutes: l.Minutes,
			DistanceKm:        l.Km,
		}
	}
	return &MockProvider{m: m}
}

func (p *MockProvider) Travel(ctx context.Context, origin, destination domain.Coordinate) (ports.TravelEstimate, error) {
	p.Calls++
	r, ok := p.m[domain.QuantizedKey(origin, destination)]
	if !ok {
		return ports.TravelEstimate{}, fmt.Errorf("%w: no mock leg %v -> %v", ErrOracleUnavailable, origin, destination)
	}
	return r, nil
}

func (p *MockProvider) Ping(ctx context.Context) (time.Duration, error) {
	return time.Millisecond, nil
}
