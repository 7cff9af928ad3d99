// Package lookup sequences the resolve, fetch, and normalize stages of a
// weather lookup and presents the outcome on caller-supplied surfaces.
package lookup

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
	"github.com/couchcryptid/weather-lookup-service/internal/ui"
)

// Service orchestrates Resolver -> ForecastFetcher -> Normalize.
type Service struct {
	resolver domain.Resolver
	fetcher  domain.ForecastFetcher
	logger   *slog.Logger
	metrics  *observability.Metrics

	// generation is bumped by every Submit; only the latest one may present.
	generation atomic.Uint64
	presentMu  sync.Mutex

	ready atomic.Bool
}

// New creates a Service with the given stages and observability.
func New(r domain.Resolver, f domain.ForecastFetcher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		resolver: r,
		fetcher:  f,
		logger:   logger,
		metrics:  metrics,
	}
}

// LookupWeather resolves place, fetches its forecast, and normalizes the
// result. Stage errors are returned unchanged.
func (s *Service) LookupWeather(ctx context.Context, place string) (domain.WeatherReport, error) {
	logger := s.logger.With("request_id", uuid.NewString(), "place", place)
	start := time.Now()

	s.metrics.LookupsInFlight.Inc()
	defer s.metrics.LookupsInFlight.Dec()

	report, err := s.run(ctx, logger, place)

	s.metrics.LookupDuration.Observe(time.Since(start).Seconds())
	s.metrics.Lookups.WithLabelValues(domain.Outcome(err)).Inc()
	if err != nil {
		logger.WarnContext(ctx, "weather lookup failed", "error", err, "outcome", domain.Outcome(err))
		return domain.WeatherReport{}, err
	}

	logger.InfoContext(ctx, "weather lookup complete",
		"forecast_days", len(report.ForecastDays),
		"duration", time.Since(start),
	)
	return report, nil
}

func (s *Service) run(ctx context.Context, logger *slog.Logger, place string) (domain.WeatherReport, error) {
	coords, err := s.resolver.Resolve(ctx, place)
	if err != nil {
		return domain.WeatherReport{}, err
	}
	logger.DebugContext(ctx, "place resolved", "lat", coords.Lat, "lon", coords.Lon)

	raw, err := s.fetcher.FetchForecast(ctx, coords)
	if err != nil {
		return domain.WeatherReport{}, err
	}

	return domain.Normalize(place, raw)
}

// Submit runs a lookup for place and presents it: the report is rendered to
// surface on success, and a single message is shown on errs on failure.
// It returns false when the result was dropped because a later Submit
// started while this one was in flight. Submit never returns an error.
func (s *Service) Submit(ctx context.Context, place string, surface ui.Surface, errs ui.ErrorSurface) bool {
	gen := s.generation.Add(1)

	report, err := s.LookupWeather(ctx, place)

	s.presentMu.Lock()
	defer s.presentMu.Unlock()

	if latest := s.generation.Load(); gen != latest {
		s.metrics.StaleDiscarded.Inc()
		s.logger.InfoContext(ctx, "discarding superseded lookup result",
			"place", place, "generation", gen, "latest", latest)
		return false
	}

	if err != nil {
		errs.Show(domain.Message(err))
		return true
	}
	ui.Render(surface, report)
	return true
}

// SetReady marks whether the service should receive traffic.
func (s *Service) SetReady(ready bool) {
	s.ready.Store(ready)
}

// CheckReadiness returns nil once the service has been marked ready.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("weather lookup service is not accepting requests")
	}
	return nil
}
