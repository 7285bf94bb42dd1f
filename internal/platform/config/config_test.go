package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5000", cfg.OSRMBaseURL)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.True(t, cfg.FallbackEnabled)
	assert.Equal(t, 30.0, cfg.FallbackSpeedKmh)
	assert.Equal(t, 5.0, cfg.MinMarginMinutes)
	assert.Equal(t, 30.0, cfg.MaxTimeShiftMinutes)
	assert.Equal(t, 7, cfg.MaxRoutesPerBusBeforeWarn)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OSRM_BASE_URL", "http://osrm.internal:5000/")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL_SECONDS", "600")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "2.5")
	t.Setenv("MAX_RETRIES", "5")
	t.Setenv("FALLBACK_SPEED_KMH", "45")
	t.Setenv("MAX_TIME_SHIFT_MINUTES", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://osrm.internal:5000", cfg.OSRMBaseURL, "trailing slash is trimmed")
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 2500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 45.0, cfg.FallbackSpeedKmh)
	assert.Equal(t, 20.0, cfg.MaxTimeShiftMinutes)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"CACHE_TTL_SECONDS":       "-1",
		"REQUEST_TIMEOUT_SECONDS": "zero",
		"MAX_RETRIES":             "0",
		"FALLBACK_SPEED_KMH":      "-30",
		"CACHE_ENABLED":           "maybe",
	}

	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
