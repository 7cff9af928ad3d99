package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
)

const (
	geocodingBaseURL = "https://geocoding-api.open-meteo.com/v1/search"
	forecastBaseURL  = "https://api.open-meteo.com/v1/forecast"

	dailyFields  = "temperature_2m_max,temperature_2m_min,precipitation_sum,uv_index_max,sunrise,sunset"
	hourlyFields = "relative_humidity_2m"
)

// Client implements domain.Resolver and domain.ForecastFetcher against the
// Open-Meteo geocoding and forecast APIs. Each call makes exactly one request.
type Client struct {
	httpClient   *http.Client
	geocodingURL string
	forecastURL  string
	metrics      *observability.Metrics
	logger       *slog.Logger
}

// NewClient creates an Open-Meteo client. A zero timeout keeps the
// transport defaults.
func NewClient(timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		geocodingURL: geocodingBaseURL,
		forecastURL:  forecastBaseURL,
		metrics:      metrics,
		logger:       logger,
	}
}

var (
	_ domain.Resolver        = (*Client)(nil)
	_ domain.ForecastFetcher = (*Client)(nil)
)

// Resolve looks up the single best match for placeName.
func (c *Client) Resolve(ctx context.Context, placeName string) (domain.Coordinates, error) {
	params := url.Values{
		"name":     {placeName},
		"count":    {"1"},
		"format":   {"json"},
		"language": {"en"},
	}

	var resp geocodingResponse
	if err := c.doRequest(ctx, "geocoding", c.geocodingURL+"?"+params.Encode(), &resp); err != nil {
		return domain.Coordinates{}, stageError("geocode", placeName, err)
	}

	// A missing "results" key and an empty list are different failures.
	if resp.Results == nil {
		return domain.Coordinates{}, &domain.LookupError{
			Kind:  domain.ErrUpstream,
			Op:    "geocode",
			Place: placeName,
			Err:   errors.New(`response has no "results" field`),
		}
	}
	if len(resp.Results) == 0 {
		return domain.Coordinates{}, domain.NewPlaceNotFound(placeName)
	}

	r := resp.Results[0]
	c.logger.DebugContext(ctx, "place resolved",
		"place", placeName,
		"match", r.Name,
		"country", r.Country,
		"lat", r.Latitude,
		"lon", r.Longitude,
	)
	return domain.Coordinates{Lat: r.Latitude, Lon: r.Longitude}, nil
}

// FetchForecast requests current weather, the daily forecast, and hourly
// humidity for coords, with dates resolved in the location's own time zone.
func (c *Client) FetchForecast(ctx context.Context, coords domain.Coordinates) (domain.RawWeatherResponse, error) {
	params := url.Values{
		"latitude":        {strconv.FormatFloat(coords.Lat, 'f', -1, 64)},
		"longitude":       {strconv.FormatFloat(coords.Lon, 'f', -1, 64)},
		"current_weather": {"true"},
		"daily":           {dailyFields},
		"hourly":          {hourlyFields},
		"timezone":        {"auto"},
	}

	var raw domain.RawWeatherResponse
	if err := c.doRequest(ctx, "forecast", c.forecastURL+"?"+params.Encode(), &raw); err != nil {
		return domain.RawWeatherResponse{}, stageError("forecast", "", err)
	}

	if raw.CurrentWeather == nil || raw.Daily == nil {
		return domain.RawWeatherResponse{}, &domain.LookupError{
			Kind: domain.ErrInvalidResponse,
			Op:   "forecast",
			Err:  fmt.Errorf("current_weather present: %t, daily present: %t", raw.CurrentWeather != nil, raw.Daily != nil),
		}
	}
	return raw, nil
}

// doRequest performs one GET and decodes a 2xx JSON body into out.
// Failures are returned as *domain.LookupError without Op/Place set.
func (c *Client) doRequest(ctx context.Context, endpoint, fullURL string, out any) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		c.metrics.UpstreamRequests.WithLabelValues(endpoint, domain.Outcome(err)).Inc()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return &domain.LookupError{Kind: domain.ErrNetwork, Err: fmt.Errorf("create request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.LookupError{Kind: domain.ErrNetwork, Err: fmt.Errorf("%s request: %w", endpoint, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Reason != "" {
			return &domain.LookupError{Kind: domain.ErrUpstream, Err: fmt.Errorf("open-meteo API error: status %d: %s", resp.StatusCode, apiErr.Reason)}
		}
		return &domain.LookupError{Kind: domain.ErrNetwork, Err: fmt.Errorf("open-meteo API error: status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.LookupError{Kind: domain.ErrUpstream, Err: fmt.Errorf("decode %s response: %w", endpoint, err)}
	}
	return nil
}

// stageError stamps the stage name and query onto an error from doRequest.
func stageError(op, place string, err error) error {
	var le *domain.LookupError
	if errors.As(err, &le) {
		le.Op = op
		le.Place = place
		return le
	}
	return &domain.LookupError{Kind: domain.ErrNetwork, Op: op, Place: place, Err: err}
}

// Open-Meteo API response types.

type geocodingResponse struct {
	Results []geocodingResult `json:"results"` // nil when the key is absent
}

type geocodingResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone"`
}

type errorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
