package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"bus-transition-engine/internal/api/handlers"
	"bus-transition-engine/internal/platform/config"
	"bus-transition-engine/internal/platform/obs"
	"bus-transition-engine/internal/ports"
	"bus-transition-engine/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	cfg *config.Config,
	eval *services.Evaluator,
	seq *services.SequenceValidator,
	conflicts *services.ConflictValidator,
	provider ports.TravelTimeProvider,
	cache ports.TransitionCache,
	metrics *obs.Metrics,
	log zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	compatHandler := &handlers.CompatibilityHandler{Eval: eval, Seq: seq}
	scheduleHandler := &handlers.ScheduleHandler{Validator: conflicts}
	oracleHandler := &handlers.OracleHandler{
		Provider: provider,
		Cache:    cache,
		Metrics:  metrics,
		Cfg:      cfg,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/validate-route-compatibility", compatHandler.Validate)
	mux.HandleFunc("/batch-validate-routes", compatHandler.BatchValidate)
	mux.HandleFunc("/schedules/validate", scheduleHandler.Validate)
	mux.HandleFunc("/osrm-health", oracleHandler.Health)
	mux.HandleFunc("/osrm-stats", oracleHandler.Stats)
	mux.HandleFunc("/osrm-clear-cache", oracleHandler.ClearCache)
	mux.Handle("/metrics", metrics.Handler())

	return loggingMiddleware(log, mux)
}
