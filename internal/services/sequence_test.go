package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bus-transition-engine/internal/adapters/routing"
	"bus-transition-engine/internal/domain"
)

var (
	aStart = domain.Coordinate{Lat: 10.00, Lon: 10.00}
	aEnd   = domain.Coordinate{Lat: 10.05, Lon: 10.05}
	bStart = domain.Coordinate{Lat: 10.10, Lon: 10.10}
	bEnd   = domain.Coordinate{Lat: 10.15, Lon: 10.15}
	cStart = domain.Coordinate{Lat: 10.20, Lon: 10.20}
	cEnd   = domain.Coordinate{Lat: 10.25, Lon: 10.25}
)

func threeRoutes() []domain.RouteEndpoint {
	return []domain.RouteEndpoint{
		{RouteID: "R1", Type: domain.RouteEntry, School: "North", StartCoord: aStart, EndCoord: aEnd, StartTime: "08:00", EndTime: "08:30"},
		{RouteID: "R2", Type: domain.RouteEntry, School: "North", StartCoord: bStart, EndCoord: bEnd, StartTime: "08:45", EndTime: "09:15"},
		{RouteID: "R3", Type: domain.RouteExit, School: "South", StartCoord: cStart, EndCoord: cEnd, StartTime: "09:40", EndTime: "10:10"},
	}
}

func newSequenceValidator(provider *routing.MockProvider) *SequenceValidator {
	e, _, _ := newEvaluator(provider)
	return &SequenceValidator{Eval: e, Log: zerolog.Nop()}
}

func TestValidateShortSequencesAreTriviallyExcellent(t *testing.T) {
	v := newSequenceValidator(routing.NewMockProvider(nil))

	for _, routes := range [][]domain.RouteEndpoint{nil, threeRoutes()[:1]} {
		report, err := v.Validate(context.Background(), "B-1", routes)
		require.NoError(t, err)
		assert.Equal(t, domain.TierExcellent, report.Overall)
		assert.Empty(t, report.Transitions)
		assert.Empty(t, report.Critical)
	}
}

func TestValidateEvaluatesAdjacentPairs(t *testing.T) {
	provider := routing.NewMockProvider([]routing.MockLeg{
		{From: aEnd, To: bStart, Minutes: 10, Km: 6}, // 15 min gap, buffer 5 -> tight
		{From: bEnd, To: cStart, Minutes: 4, Km: 2},  // 25 min gap, buffer 21 -> excellent
	})
	v := newSequenceValidator(provider)

	report, err := v.Validate(context.Background(), "B-1", threeRoutes())
	require.NoError(t, err)

	require.Len(t, report.Transitions, 2)
	assert.Equal(t, "R1", report.Transitions[0].FromRouteID)
	assert.Equal(t, "R2", report.Transitions[0].ToRouteID)
	assert.InDelta(t, 15.0, report.Transitions[0].TimeAvailableMinutes, 1e-9)
	assert.Equal(t, domain.TierTight, report.Transitions[0].Verdict.Tier)
	assert.Equal(t, domain.TierExcellent, report.Transitions[1].Verdict.Tier)

	assert.InDelta(t, 14.0, report.TotalTravelMinutes, 1e-9)
	assert.InDelta(t, 5.0, report.MinBufferMinutes, 1e-9)
	assert.InDelta(t, 13.0, report.AvgBufferMinutes, 1e-9)

	require.Len(t, report.Critical, 1)
	assert.Equal(t, "R1", report.Critical[0].FromRouteID)
	assert.Equal(t, domain.TierTight, report.Overall, "overall is the worst tier")
	assert.Equal(t, 0, report.CacheHits)

	// A second run over the same sequence is served from cache.
	report, err = v.Validate(context.Background(), "B-1", threeRoutes())
	require.NoError(t, err)
	assert.Equal(t, 2, report.CacheHits)
	assert.Equal(t, 2, provider.Calls)
}

func TestValidateOneOracleFailureDoesNotAbortTheRun(t *testing.T) {
	// Only the second leg is known to the oracle; the first degrades to
	// the analytic fallback.
	provider := routing.NewMockProvider([]routing.MockLeg{
		{From: bEnd, To: cStart, Minutes: 4, Km: 2},
	})
	v := newSequenceValidator(provider)

	report, err := v.Validate(context.Background(), "B-1", threeRoutes())
	require.NoError(t, err)

	require.Len(t, report.Transitions, 2)
	assert.Equal(t, domain.ProvenanceFallback, report.Transitions[0].Verdict.Result.Provenance)
	assert.Equal(t, domain.ProvenanceOracle, report.Transitions[1].Verdict.Result.Provenance)
}

func TestValidateRejectsMalformedInputUpfront(t *testing.T) {
	provider := routing.NewMockProvider(nil)
	v := newSequenceValidator(provider)

	routes := threeRoutes()
	routes[1].StartTime = "8h45"

	_, err := v.Validate(context.Background(), "B-1", routes)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeFormat)
	assert.Equal(t, 0, provider.Calls)

	routes = threeRoutes()
	routes[2].EndCoord = domain.Coordinate{Lat: 95, Lon: 0}

	_, err = v.Validate(context.Background(), "B-1", routes)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
}
