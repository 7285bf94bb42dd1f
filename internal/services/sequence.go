package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"bus-transition-engine/internal/domain"
)

// TransitionAssessment is one evaluated handoff between two consecutive
// routes on the same vehicle.
type TransitionAssessment struct {
	FromRouteID          string
	ToRouteID            string
	TimeAvailableMinutes float64
	Verdict              domain.CompatibilityVerdict
}

// SequenceReport aggregates the pairwise assessments of one vehicle's
// ordered route sequence.
type SequenceReport struct {
	BusID              string
	Transitions        []TransitionAssessment
	TotalTravelMinutes float64
	MinBufferMinutes   float64
	AvgBufferMinutes   float64
	Critical           []TransitionAssessment
	Overall            domain.Tier
	CacheHits          int
}

// SequenceValidator walks an ordered route sequence and evaluates every
// adjacent transition. Evaluations for different pairs are independent and
// run concurrently; the oracle rate limiter, not the worker count, paces
// external calls.
type SequenceValidator struct {
	Eval    *Evaluator
	Workers int
	Log     zerolog.Logger
}

// Validate evaluates the N-1 adjacent transitions of a route sequence
// ordered by start time. A sequence of length 0 or 1 has no transitions and
// is trivially excellent. One transition's oracle failure never aborts the
// rest of the run.
func (v *SequenceValidator) Validate(
	ctx context.Context,
	busID string,
	routes []domain.RouteEndpoint,
) (*SequenceReport, error) {
	// Reject malformed input before touching cache or oracle.
	for _, r := range routes {
		if err := r.StartCoord.Validate(); err != nil {
			return nil, fmt.Errorf("validate sequence: route %q start: %w", r.RouteID, err)
		}
		if err := r.EndCoord.Validate(); err != nil {
			return nil, fmt.Errorf("validate sequence: route %q end: %w", r.RouteID, err)
		}
		if _, err := domain.ParseClock(r.StartTime); err != nil {
			return nil, fmt.Errorf("validate sequence: route %q: %w", r.RouteID, err)
		}
		if _, err := domain.ParseClock(r.EndTime); err != nil {
			return nil, fmt.Errorf("validate sequence: route %q: %w", r.RouteID, err)
		}
	}

	report := &SequenceReport{
		BusID:       busID,
		Transitions: make([]TransitionAssessment, 0),
		Critical:    make([]TransitionAssessment, 0),
		Overall:     domain.TierExcellent,
	}

	if len(routes) < 2 {
		return report, nil
	}

	assessments := make([]TransitionAssessment, len(routes)-1)

	workers := v.Workers
	if workers < 1 {
		workers = 4
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := 0; i < len(routes)-1; i++ {
		wg.Add(1)
		go func(i int) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			assessments[i] = v.assess(ctx, routes[i], routes[i+1])
		}(i)
	}

	wg.Wait()

	report.Transitions = assessments

	var bufferSum float64
	for i, a := range assessments {
		report.TotalTravelMinutes += a.Verdict.Result.TravelTimeMinutes
		bufferSum += a.Verdict.BufferMinutes

		if i == 0 || a.Verdict.BufferMinutes < report.MinBufferMinutes {
			report.MinBufferMinutes = a.Verdict.BufferMinutes
		}
		if a.Verdict.Tier.Worse(report.Overall) {
			report.Overall = a.Verdict.Tier
		}
		if a.Verdict.Tier == domain.TierTight || a.Verdict.Tier == domain.TierIncompatible {
			report.Critical = append(report.Critical, a)
		}
		if a.Verdict.Result.Provenance == domain.ProvenanceCache {
			report.CacheHits++
		}
	}
	report.AvgBufferMinutes = bufferSum / float64(len(assessments))

	return report, nil
}

// assess evaluates one adjacent pair. Input was validated up front, so the
// evaluator can only fail when the oracle is down and fallback is disabled;
// even then the pair degrades to the analytic estimate rather than aborting
// the batch.
func (v *SequenceValidator) assess(ctx context.Context, from, to domain.RouteEndpoint) TransitionAssessment {
	endA, _ := domain.ParseClock(from.EndTime)
	startB, _ := domain.ParseClock(to.StartTime)
	available := float64(startB - endA)

	verdict, err := v.Eval.Evaluate(ctx, from.EndCoord, to.StartCoord, available)
	if err != nil {
		v.Log.Warn().
			Err(err).
			Str("from", from.RouteID).
			Str("to", to.RouteID).
			Msg("transition evaluation failed, degrading to fallback estimate")

		result := FallbackEstimate(from.EndCoord, to.StartCoord, v.Eval.FallbackSpeedKmh)
		verdict = v.Eval.verdict(result, available)
	}

	return TransitionAssessment{
		FromRouteID:          from.RouteID,
		ToRouteID:            to.RouteID,
		TimeAvailableMinutes: available,
		Verdict:              verdict,
	}
}
