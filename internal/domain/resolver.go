package domain

import "context"

// Resolver maps a free-text place name to a single best-match coordinate pair.
type Resolver interface {
	// Resolve returns the coordinates of the best match for placeName.
	// The caller trims placeName before calling.
	Resolve(ctx context.Context, placeName string) (Coordinates, error)
}

// ForecastFetcher retrieves current conditions and the daily forecast for a location.
type ForecastFetcher interface {
	FetchForecast(ctx context.Context, coords Coordinates) (RawWeatherResponse, error)
}
