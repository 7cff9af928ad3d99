package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for weather lookups.
type Metrics struct {
	Lookups         *prometheus.CounterVec // labels: outcome={success,place_not_found,invalid_response,network_error,upstream_error,error}
	LookupDuration  prometheus.Histogram
	LookupsInFlight prometheus.Gauge
	StaleDiscarded  prometheus.Counter

	// Upstream API metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: endpoint={geocoding,forecast}, outcome
	UpstreamDuration *prometheus.HistogramVec // labels: endpoint={geocoding,forecast}

	// Geocoding cache metrics.
	GeocodeCache   *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeCaching prometheus.Gauge
}

// NewMetrics creates and registers all lookup metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.Lookups,
		m.LookupDuration,
		m.LookupsInFlight,
		m.StaleDiscarded,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.GeocodeCache,
		m.GeocodeCaching,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_lookup",
			Name:      "lookups_total",
			Help:      "Completed weather lookups by outcome.",
		}, []string{"outcome"}),
		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_lookup",
			Name:      "lookup_duration_seconds",
			Help:      "Duration of a full resolve-fetch-normalize lookup.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		LookupsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_lookup",
			Name:      "lookups_in_flight",
			Help:      "Lookups currently running.",
		}),
		StaleDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_lookup",
			Name:      "stale_results_discarded_total",
			Help:      "Lookup results dropped because a newer lookup was submitted.",
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_lookup",
			Name:      "upstream_requests_total",
			Help:      "Open-Meteo API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_lookup",
			Name:      "upstream_duration_seconds",
			Help:      "Open-Meteo API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"endpoint"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_lookup",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeCaching: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_lookup",
			Name:      "geocode_cache_enabled",
			Help:      "1 when the geocoding cache is enabled, 0 otherwise.",
		}),
	}
}
