package obs

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks oracle-layer counters. Plain atomics back the JSON stats
// endpoint; a private Prometheus registry mirrors them for scraping.
type Metrics struct {
	reg *prometheus.Registry

	requests  atomic.Int64
	cacheHits atomic.Int64
	fallbacks atomic.Int64
	errors    atomic.Int64

	promRequests  prometheus.Counter
	promCacheHits prometheus.Counter
	promFallbacks prometheus.Counter
	promErrors    prometheus.Counter

	EvalDuration prometheus.Histogram
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Requests  int64 `json:"requests"`
	CacheHits int64 `json:"cache_hits"`
	Fallbacks int64 `json:"fallbacks"`
	Errors    int64 `json:"errors"`
}

// NewMetrics builds the collector. cacheSize is polled on scrape to expose
// the current transition-cache entry count.
func NewMetrics(cacheSize func() int) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		reg: reg,
		promRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transition_oracle_requests_total",
			Help: "Total routing oracle requests issued.",
		}),
		promCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transition_cache_hits_total",
			Help: "Total transition cache hits.",
		}),
		promFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transition_fallback_estimates_total",
			Help: "Total analytic fallback estimates served.",
		}),
		promErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transition_oracle_errors_total",
			Help: "Total failed routing oracle attempts.",
		}),
		EvalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transition_evaluation_duration_seconds",
			Help:    "Duration of single transition evaluations.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
	}

	reg.MustRegister(
		m.promRequests, m.promCacheHits, m.promFallbacks, m.promErrors,
		m.EvalDuration,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "transition_cache_entries",
			Help: "Current number of transition cache entries.",
		}, func() float64 { return float64(cacheSize()) }),
	)

	return m
}

func (m *Metrics) IncRequest() {
	m.requests.Add(1)
	m.promRequests.Inc()
}

func (m *Metrics) IncCacheHit() {
	m.cacheHits.Add(1)
	m.promCacheHits.Inc()
}

func (m *Metrics) IncFallback() {
	m.fallbacks.Add(1)
	m.promFallbacks.Inc()
}

func (m *Metrics) IncError() {
	m.errors.Add(1)
	m.promErrors.Inc()
}

func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Requests:  m.requests.Load(),
		CacheHits: m.cacheHits.Load(),
		Fallbacks: m.fallbacks.Load(),
		Errors:    m.errors.Load(),
	}
}

// Handler serves the Prometheus scrape endpoint for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
