package handlers

import (
	"net/http"

	"bus-transition-engine/internal/api/dto"
	"bus-transition-engine/internal/platform/config"
	"bus-transition-engine/internal/platform/obs"
	"bus-transition-engine/internal/ports"
)

// OracleHandler exposes the operational surface of the routing oracle:
// health probe, counters, and cache control.
type OracleHandler struct {
	Provider ports.TravelTimeProvider
	Cache    ports.TransitionCache
	Metrics  *obs.Metrics
	Cfg      *config.Config
}

// Health probes the routing oracle and reports its round-trip time.
func (h *OracleHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	res := dto.HealthResponse{
		Status:    "healthy",
		CacheSize: h.Cache.Size(),
		BaseURL:   h.Cfg.OSRMBaseURL,
	}

	elapsed, err := h.Provider.Ping(r.Context())
	res.ResponseTimeMs = elapsed.Milliseconds()
	if err != nil {
		res.Status = "unhealthy"
		res.ErrorMessage = err.Error()
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Stats reports operational counters and the active configuration.
func (h *OracleHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	snap := h.Metrics.Snapshot()

	writeJSON(w, r, http.StatusOK, dto.StatsResponse{
		Requests:  snap.Requests,
		CacheHits: snap.CacheHits,
		Fallbacks: snap.Fallbacks,
		Errors:    snap.Errors,
		CacheSize: h.Cache.Size(),
		Config: dto.ConfigView{
			BaseURL:             h.Cfg.OSRMBaseURL,
			CacheEnabled:        h.Cfg.CacheEnabled,
			CacheTTLSeconds:     int(h.Cfg.CacheTTL.Seconds()),
			TimeoutSeconds:      h.Cfg.RequestTimeout.Seconds(),
			MaxRetries:          h.Cfg.MaxRetries,
			FallbackEnabled:     h.Cfg.FallbackEnabled,
			FallbackSpeedKmh:    h.Cfg.FallbackSpeedKmh,
			MinMarginMinutes:    h.Cfg.MinMarginMinutes,
			MaxTimeShiftMinutes: h.Cfg.MaxTimeShiftMinutes,
		},
	})
}

// ClearCache drops every cached transition and reports the previous size.
func (h *OracleHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ClearCacheResponse{
		ClearedEntries: h.Cache.Clear(),
	})
}
