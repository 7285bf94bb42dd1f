package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every environment-sourced knob of the engine.
type Config struct {
	Port        string
	OSRMBaseURL string

	CacheEnabled bool
	CacheTTL     time.Duration

	RequestTimeout time.Duration
	MaxRetries     int
	RateLimitRPS   float64

	FallbackEnabled  bool
	FallbackSpeedKmh float64

	MinMarginMinutes          float64
	MaxTimeShiftMinutes       float64
	OverlapBufferMinutes      float64
	MaxRoutesPerBusBeforeWarn int
}

// Load reads configuration from the environment, applying defaults for
// anything unset. A .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getenvDefault("PORT", "8080"),
		OSRMBaseURL: strings.TrimRight(getenvDefault("OSRM_BASE_URL", "http://localhost:5000"), "/"),
	}

	var err error

	if cfg.CacheEnabled, err = parseBool("CACHE_ENABLED", true); err != nil {
		return nil, err
	}

	ttlSec, err := parseInt("CACHE_TTL_SECONDS", 86400)
	if err != nil {
		return nil, err
	}
	if ttlSec <= 0 {
		return nil, fmt.Errorf("CACHE_TTL_SECONDS must be positive, got %d", ttlSec)
	}
	cfg.CacheTTL = time.Duration(ttlSec) * time.Second

	timeoutSec, err := parseFloat("REQUEST_TIMEOUT_SECONDS", 5.0)
	if err != nil {
		return nil, err
	}
	if timeoutSec <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive, got %v", timeoutSec)
	}
	cfg.RequestTimeout = time.Duration(timeoutSec * float64(time.Second))

	if cfg.MaxRetries, err = parseInt("MAX_RETRIES", 3); err != nil {
		return nil, err
	}
	if cfg.MaxRetries < 1 {
		return nil, fmt.Errorf("MAX_RETRIES must be at least 1, got %d", cfg.MaxRetries)
	}

	if cfg.RateLimitRPS, err = parseFloat("OSRM_RATE_LIMIT_RPS", 10.0); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("OSRM_RATE_LIMIT_RPS must be positive, got %v", cfg.RateLimitRPS)
	}

	if cfg.FallbackEnabled, err = parseBool("FALLBACK_ENABLED", true); err != nil {
		return nil, err
	}

	if cfg.FallbackSpeedKmh, err = parseFloat("FALLBACK_SPEED_KMH", 30.0); err != nil {
		return nil, err
	}
	if cfg.FallbackSpeedKmh <= 0 {
		return nil, fmt.Errorf("FALLBACK_SPEED_KMH must be positive, got %v", cfg.FallbackSpeedKmh)
	}

	if cfg.MinMarginMinutes, err = parseFloat("MIN_TRANSFER_MARGIN_MINUTES", 5.0); err != nil {
		return nil, err
	}

	if cfg.MaxTimeShiftMinutes, err = parseFloat("MAX_TIME_SHIFT_MINUTES", 30.0); err != nil {
		return nil, err
	}

	if cfg.OverlapBufferMinutes, err = parseFloat("SCHEDULE_OVERLAP_BUFFER_MINUTES", 0.0); err != nil {
		return nil, err
	}

	if cfg.MaxRoutesPerBusBeforeWarn, err = parseInt("MAX_ROUTES_PER_BUS_WARN", 7); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", k, v)
	}
	return n, nil
}

func parseFloat(k string, def float64) (float64, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", k, v)
	}
	return f, nil
}

func parseBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s: %q", k, v)
	}
}
