package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"bus-transition-engine/internal/domain"
	"bus-transition-engine/internal/platform/obs"
	"bus-transition-engine/internal/ports"
)

// ErrOracleUnavailable marks a routing query that failed after exhausting
// retries. Callers recover by switching to the analytic fallback; it is
// never surfaced as a request failure.
var ErrOracleUnavailable = errors.New("routing oracle unavailable")

// OSRMProvider implements TravelTimeProvider against an OSRM route server.
//
// It coordinates:
//   - Per-call timeouts
//   - Retry with exponential backoff on transient failures
//   - Global rate limiting of outbound calls
//
// The provider is safe for concurrent use. Retries block only the calling
// evaluation; the limiter is the single admission control point for the
// external service.
type OSRMProvider struct {
	session     *http.Client
	baseURL     string
	profile     string
	limiter     *rate.Limiter
	maxAttempts int
	metrics     *obs.Metrics
	log         zerolog.Logger
}

type Options struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	RateRPS     float64
	Metrics     *obs.Metrics
	Logger      zerolog.Logger
}

func NewOSRMProvider(opts Options) (*OSRMProvider, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("OSRM base URL is empty")
	}
	if opts.MaxAttempts < 1 {
		return nil, fmt.Errorf("max attempts must be at least 1, got %d", opts.MaxAttempts)
	}

	return &OSRMProvider{
		session:     &http.Client{Timeout: opts.Timeout},
		baseURL:     opts.BaseURL,
		profile:     "driving",
		limiter:     rate.NewLimiter(rate.Limit(opts.RateRPS), 1),
		maxAttempts: opts.MaxAttempts,
		metrics:     opts.Metrics,
		log:         opts.Logger,
	}, nil
}

type osrmRoute struct {
	Duration float64 `json:"duration"` // seconds
	Distance float64 `json:"distance"` // meters
}

type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

func (o *OSRMProvider) routeURL(origin, destination domain.Coordinate) string {
	// OSRM expects lon,lat ordering.
	return fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=false",
		o.baseURL, o.profile,
		origin.Lon, origin.Lat,
		destination.Lon, destination.Lat,
	)
}

// Travel queries OSRM for the fastest driving leg between two points.
// Any terminal failure is wrapped in ErrOracleUnavailable.
func (o *OSRMProvider) Travel(
	ctx context.Context,
	origin, destination domain.Coordinate,
) (ports.TravelEstimate, error) {
	if err := origin.Validate(); err != nil {
		return ports.TravelEstimate{}, fmt.Errorf("osrm travel: origin: %w", err)
	}
	if err := destination.Validate(); err != nil {
		return ports.TravelEstimate{}, fmt.Errorf("osrm travel: destination: %w", err)
	}

	resp, err := o.doWithRetry(ctx, o.routeURL(origin, destination))
	if err != nil {
		return ports.TravelEstimate{}, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	var or osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		o.metrics.IncError()
		return ports.TravelEstimate{}, fmt.Errorf("%w: decode route response: %v", ErrOracleUnavailable, err)
	}

	if or.Code != "Ok" || len(or.Routes) == 0 {
		o.metrics.IncError()
		return ports.TravelEstimate{}, fmt.Errorf("%w: osrm code %q with %d routes", ErrOracleUnavailable, or.Code, len(or.Routes))
	}

	return ports.TravelEstimate{
		TravelTimeMinutes: or.Routes[0].Duration / 60,
		DistanceKm:        or.Routes[0].Distance / 1000,
	}, nil
}

// Ping issues a single minimal route request and reports its round-trip
// time. The probe bypasses retries so an unhealthy oracle is reported
// promptly.
func (o *OSRMProvider) Ping(ctx context.Context) (time.Duration, error) {
	url := o.routeURL(
		domain.Coordinate{Lat: -33.4489, Lon: -70.6693},
		domain.Coordinate{Lat: -33.4567, Lon: -70.6500},
	)

	req, err := o.newRequest(ctx, url)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	resp, err := o.do(req)
	elapsed := time.Since(start)
	if err != nil {
		return elapsed, fmt.Errorf("osrm ping: %w", err)
	}
	resp.Body.Close()

	return elapsed, nil
}
