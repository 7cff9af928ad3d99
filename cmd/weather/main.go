package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/weather-lookup-service/internal/adapter/httpadapter"
	"github.com/couchcryptid/weather-lookup-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/weather-lookup-service/internal/config"
	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/lookup"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
	"github.com/couchcryptid/weather-lookup-service/internal/ui"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	client := openmeteo.NewClient(cfg.UpstreamTimeout, metrics, logger)

	// Geocode caching is opt-in via GEOCODE_CACHE_SIZE.
	var resolver domain.Resolver = client
	if cfg.GeocodeCacheSize > 0 {
		cached, err := openmeteo.NewCachedResolver(client, cfg.GeocodeCacheSize, metrics)
		if err != nil {
			logger.Error("failed to create geocode cache", "error", err)
			os.Exit(1)
		}
		resolver = cached
		metrics.GeocodeCaching.Set(1)
		logger.Info("geocode cache enabled", "cache_size", cfg.GeocodeCacheSize)
	} else {
		logger.Info("geocode cache disabled")
	}

	svc := lookup.New(resolver, client, logger, metrics)
	page := ui.NewPage()
	banner := ui.NewBanner(clockwork.NewRealClock())

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, page, banner, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()
	svc.SetReady(true)

	if cfg.DefaultCity != "" {
		go svc.Submit(context.WithoutCancel(ctx), cfg.DefaultCity, page, banner)
	}

	<-ctx.Done()
	logger.Info("shutting down")
	svc.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
