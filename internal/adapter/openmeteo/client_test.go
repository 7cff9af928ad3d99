package openmeteo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
)

const (
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"

	forecastBody = `{
		"latitude": 13.08, "longitude": 80.27, "timezone": "Asia/Kolkata",
		"current_weather": {"temperature": 31.4, "windspeed": 12.2, "weathercode": 95, "time": "2024-06-01T14:00"},
		"daily": {"time": ["2024-06-01"], "temperature_2m_max": [35.1], "temperature_2m_min": [27.1],
			"precipitation_sum": [0.4], "uv_index_max": [9.1], "sunrise": ["2024-06-01T05:42"], "sunset": ["2024-06-01T18:31"]},
		"hourly": {"relative_humidity_2m": [55, 60, 58]}
	}`
)

func testClient(baseURL string, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		geocodingURL: baseURL + "/v1/search",
		forecastURL:  baseURL + "/v1/forecast",
		metrics:      metrics,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Resolve_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "São Paulo", r.URL.Query().Get("name"))
		assert.Equal(t, "1", r.URL.Query().Get("count"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"results":[{"name":"São Paulo","latitude":-23.5475,"longitude":-46.63611,"country":"Brazil"}]}`))
	}))
	defer srv.Close()

	metrics := observability.NewMetricsForTesting()
	c := testClient(srv.URL, metrics)

	coords, err := c.Resolve(context.Background(), "São Paulo")
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lat: -23.5475, Lon: -46.63611}, coords)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.UpstreamRequests.WithLabelValues("geocoding", "success")), 0.0001)
}

func TestClient_Resolve_NoResults(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"results":[]}`)

	c := testClient(srv.URL, observability.NewMetricsForTesting())
	_, err := c.Resolve(context.Background(), "Atlantis")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPlaceNotFound)
	assert.Equal(t, "City 'Atlantis' not found", domain.Message(err))
}

func TestClient_Resolve_MissingResultsKey(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"generationtime_ms":0.5}`)

	c := testClient(srv.URL, observability.NewMetricsForTesting())
	_, err := c.Resolve(context.Background(), "Atlantis")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.NotErrorIs(t, err, domain.ErrPlaceNotFound)
}

func TestClient_Resolve_MalformedJSON(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"results": [`)

	c := testClient(srv.URL, observability.NewMetricsForTesting())
	_, err := c.Resolve(context.Background(), "Oslo")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "geocode")
}

func TestClient_Resolve_APIErrorWithReason(t *testing.T) {
	srv := jsonServer(t, http.StatusBadRequest, `{"error":true,"reason":"Parameter count must be between 1 and 100."}`)

	c := testClient(srv.URL, observability.NewMetricsForTesting())
	_, err := c.Resolve(context.Background(), "Oslo")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "Parameter count")
}

func TestClient_Resolve_UnparseableErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	metrics := observability.NewMetricsForTesting()
	c := testClient(srv.URL, metrics)
	_, err := c.Resolve(context.Background(), "Oslo")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Contains(t, err.Error(), "502")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.UpstreamRequests.WithLabelValues("geocoding", "network_error")), 0.0001)
}

func TestClient_Resolve_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL, observability.NewMetricsForTesting())
	c.httpClient = &http.Client{Timeout: 50 * time.Millisecond}

	_, err := c.Resolve(context.Background(), "Oslo")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestClient_Resolve_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := testClient(url, observability.NewMetricsForTesting())
	_, err := c.Resolve(context.Background(), "Oslo")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestClient_FetchForecast_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "13.0878", q.Get("latitude"))
		assert.Equal(t, "80.2785", q.Get("longitude"))
		assert.Equal(t, "true", q.Get("current_weather"))
		assert.Equal(t, dailyFields, q.Get("daily"))
		assert.Equal(t, hourlyFields, q.Get("hourly"))
		assert.Equal(t, "auto", q.Get("timezone"))

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	c := testClient(srv.URL, observability.NewMetricsForTesting())
	raw, err := c.FetchForecast(context.Background(), domain.Coordinates{Lat: 13.0878, Lon: 80.2785})
	require.NoError(t, err)

	require.NotNil(t, raw.CurrentWeather)
	require.NotNil(t, raw.CurrentWeather.WeatherCode)
	assert.Equal(t, 95, *raw.CurrentWeather.WeatherCode)
	require.NotNil(t, raw.Daily)
	assert.Equal(t, []string{"2024-06-01"}, raw.Daily.Time)
	require.NotNil(t, raw.Hourly)
	assert.Len(t, raw.Hourly.RelativeHumidity, 3)
	assert.Equal(t, "Asia/Kolkata", raw.Timezone)
}

func TestClient_FetchForecast_MissingBlocks(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing daily", `{"current_weather": {"temperature": 20}}`},
		{"missing current_weather", `{"daily": {"time": ["2024-06-01"]}}`},
		{"empty object", `{}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := jsonServer(t, http.StatusOK, tc.body)

			c := testClient(srv.URL, observability.NewMetricsForTesting())
			_, err := c.FetchForecast(context.Background(), domain.Coordinates{Lat: 1, Lon: 2})

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidResponse)
		})
	}
}

func TestClient_FetchForecast_APIError(t *testing.T) {
	srv := jsonServer(t, http.StatusBadRequest, `{"error":true,"reason":"Latitude must be in range of -90 to 90°."}`)

	c := testClient(srv.URL, observability.NewMetricsForTesting())
	_, err := c.FetchForecast(context.Background(), domain.Coordinates{Lat: 123, Lon: 0})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "forecast")
}

func TestClient_SingleAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testClient(srv.URL, observability.NewMetricsForTesting())
	_, err := c.FetchForecast(context.Background(), domain.Coordinates{})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewClient_Endpoints(t *testing.T) {
	c := NewClient(0, observability.NewMetricsForTesting(), slog.Default())
	assert.Equal(t, geocodingBaseURL, c.geocodingURL)
	assert.Equal(t, forecastBaseURL, c.forecastURL)
	assert.Zero(t, c.httpClient.Timeout)
}
