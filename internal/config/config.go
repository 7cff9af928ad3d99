package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
// The Open-Meteo endpoints are compile-time constants and are not configurable.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// UpstreamTimeout bounds each Open-Meteo request. Zero leaves the
	// transport defaults in place.
	UpstreamTimeout time.Duration

	// GeocodeCacheSize enables an in-memory LRU of resolved coordinates when > 0.
	GeocodeCacheSize int

	// DefaultCity is looked up once at startup. Empty disables it.
	DefaultCity string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	upstreamTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("UPSTREAM_TIMEOUT", "0s"))
	if err != nil || upstreamTimeout < 0 {
		return nil, errors.New("invalid UPSTREAM_TIMEOUT")
	}

	cacheSize, err := parseGeocodeCacheSize()
	if err != nil {
		return nil, err
	}

	defaultCity := "Chennai"
	if v, ok := os.LookupEnv("DEFAULT_CITY"); ok {
		defaultCity = v
	}

	cfg := &Config{
		HTTPAddr:         sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		UpstreamTimeout:  upstreamTimeout,
		GeocodeCacheSize: cacheSize,
		DefaultCity:      defaultCity,
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}

	return cfg, nil
}

func parseGeocodeCacheSize() (int, error) {
	s := os.Getenv("GEOCODE_CACHE_SIZE")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("invalid GEOCODE_CACHE_SIZE")
	}
	return n, nil
}
