package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"bus-transition-engine/internal/adapters/cache"
	"bus-transition-engine/internal/adapters/routing"
	"bus-transition-engine/internal/api"
	"bus-transition-engine/internal/platform/config"
	"bus-transition-engine/internal/platform/obs"
	"bus-transition-engine/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (OSRM, in-memory cache) behind ports and
// starts the HTTP server.
func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	transitionCache := cache.NewMemoryTransitionCache(cfg.CacheTTL, cfg.CacheEnabled)
	metrics := obs.NewMetrics(transitionCache.Size)

	provider, err := routing.NewOSRMProvider(routing.Options{
		BaseURL:     cfg.OSRMBaseURL,
		Timeout:     cfg.RequestTimeout,
		MaxAttempts: cfg.MaxRetries,
		RateRPS:     cfg.RateLimitRPS,
		Metrics:     metrics,
		Logger:      log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build OSRM provider")
	}

	eval := &services.Evaluator{
		Cache:            transitionCache,
		Provider:         provider,
		Metrics:          metrics,
		Log:              log,
		FallbackEnabled:  cfg.FallbackEnabled,
		FallbackSpeedKmh: cfg.FallbackSpeedKmh,
		MinMarginMinutes: cfg.MinMarginMinutes,
	}

	seq := &services.SequenceValidator{Eval: eval, Log: log}

	conflicts := &services.ConflictValidator{
		MaxTimeShiftMinutes:  cfg.MaxTimeShiftMinutes,
		OverlapBufferMinutes: cfg.OverlapBufferMinutes,
		MaxRoutesPerBus:      cfg.MaxRoutesPerBusBeforeWarn,
	}

	router := api.NewRouter(cfg, eval, seq, conflicts, provider, transitionCache, metrics, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Str("osrm", cfg.OSRMBaseURL).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}
