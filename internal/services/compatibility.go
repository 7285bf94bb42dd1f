package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"bus-transition-engine/internal/domain"
	"bus-transition-engine/internal/platform/obs"
	"bus-transition-engine/internal/ports"
)

// Evaluator answers whether the gap between two scheduled routes on one
// vehicle is enough for the actual or estimated travel time.
//
// Lookup order is cache, oracle, fallback. Oracle results are written back
// to the cache; fallback results are not, so a transient outage cannot
// poison the cache. No lock is held across the oracle call: the cache read
// completes before the call, and the write-back is a separate step.
type Evaluator struct {
	Cache    ports.TransitionCache
	Provider ports.TravelTimeProvider
	Metrics  *obs.Metrics
	Log      zerolog.Logger

	FallbackEnabled  bool
	FallbackSpeedKmh float64
	MinMarginMinutes float64
}

// Evaluate classifies the transition from origin to destination given the
// scheduled gap in minutes. It fails only on invalid input; oracle outages
// degrade to the analytic fallback.
func (e *Evaluator) Evaluate(
	ctx context.Context,
	origin, destination domain.Coordinate,
	timeAvailableMinutes float64,
) (domain.CompatibilityVerdict, error) {
	if err := origin.Validate(); err != nil {
		return domain.CompatibilityVerdict{}, fmt.Errorf("evaluate transition: origin: %w", err)
	}
	if err := destination.Validate(); err != nil {
		return domain.CompatibilityVerdict{}, fmt.Errorf("evaluate transition: destination: %w", err)
	}

	start := time.Now()
	defer func() { e.Metrics.EvalDuration.Observe(time.Since(start).Seconds()) }()

	result, err := e.travel(ctx, origin, destination)
	if err != nil {
		return domain.CompatibilityVerdict{}, err
	}

	return e.verdict(result, timeAvailableMinutes), nil
}

func (e *Evaluator) verdict(result domain.TransitionResult, timeAvailableMinutes float64) domain.CompatibilityVerdict {
	buffer := timeAvailableMinutes - result.TravelTimeMinutes

	tier := domain.TierForBuffer(buffer)
	// A buffer under the configured margin is never better than tight.
	if buffer >= 0 && buffer < e.MinMarginMinutes && domain.TierTight.Worse(tier) {
		tier = domain.TierTight
	}

	return domain.CompatibilityVerdict{
		Compatible:    tier != domain.TierIncompatible,
		BufferMinutes: buffer,
		Tier:          tier,
		Result:        result,
	}
}

func (e *Evaluator) travel(ctx context.Context, origin, destination domain.Coordinate) (domain.TransitionResult, error) {
	key := domain.QuantizedKey(origin, destination)

	if cached, ok := e.Cache.Get(key); ok {
		e.Metrics.IncCacheHit()
		cached.Provenance = domain.ProvenanceCache
		return cached, nil
	}

	estimate, err := e.Provider.Travel(ctx, origin, destination)
	if err == nil {
		result := domain.TransitionResult{
			TravelTimeMinutes: estimate.TravelTimeMinutes,
			DistanceKm:        estimate.DistanceKm,
			Provenance:        domain.ProvenanceOracle,
		}
		e.Cache.Put(key, result)
		return result, nil
	}

	if !e.FallbackEnabled {
		return domain.TransitionResult{}, fmt.Errorf("evaluate transition: %w", err)
	}

	e.Log.Warn().Err(err).Str("key", key).Msg("oracle unavailable, using fallback estimate")
	e.Metrics.IncFallback()

	return FallbackEstimate(origin, destination, e.FallbackSpeedKmh), nil
}
