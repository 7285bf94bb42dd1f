package dto

type HealthResponse struct {
	Status         string `json:"status"`
	ResponseTimeMs int64  `json:"response_time_ms"`
	CacheSize      int    `json:"cache_size"`
	BaseURL        string `json:"base_url"`
	ErrorMessage   string `json:"error_message,omitempty"`
}

type ConfigView struct {
	BaseURL             string  `json:"base_url"`
	CacheEnabled        bool    `json:"cache_enabled"`
	CacheTTLSeconds     int     `json:"cache_ttl_seconds"`
	TimeoutSeconds      float64 `json:"timeout_seconds"`
	MaxRetries          int     `json:"max_retries"`
	FallbackEnabled     bool    `json:"fallback_enabled"`
	FallbackSpeedKmh    float64 `json:"fallback_speed_kmh"`
	MinMarginMinutes    float64 `json:"min_margin_minutes"`
	MaxTimeShiftMinutes float64 `json:"max_time_shift_minutes"`
}

type StatsResponse struct {
	Requests  int64      `json:"requests"`
	CacheHits int64      `json:"cache_hits"`
	Fallbacks int64      `json:"fallbacks"`
	Errors    int64      `json:"errors"`
	CacheSize int        `json:"cache_size"`
	Config    ConfigView `json:"config"`
}

type ClearCacheResponse struct {
	ClearedEntries int `json:"cleared_entries"`
}
