package openmeteo

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/observability"
)

// CachedResolver wraps a Resolver with an in-memory LRU of coordinates.
// Forecasts are never cached.
type CachedResolver struct {
	inner   domain.Resolver
	cache   *lru.Cache[string, domain.Coordinates]
	metrics *observability.Metrics
}

// NewCachedResolver creates a cache decorator around a resolver.
func NewCachedResolver(inner domain.Resolver, maxEntries int, metrics *observability.Metrics) (*CachedResolver, error) {
	cache, err := lru.New[string, domain.Coordinates](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("create geocode cache: %w", err)
	}
	return &CachedResolver{
		inner:   inner,
		cache:   cache,
		metrics: metrics,
	}, nil
}

// Resolve returns cached coordinates for placeName or delegates to the inner
// resolver. Keys are the exact query text.
func (c *CachedResolver) Resolve(ctx context.Context, placeName string) (domain.Coordinates, error) {
	if coords, ok := c.cache.Get(placeName); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return coords, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	coords, err := c.inner.Resolve(ctx, placeName)
	if err != nil {
		// Only successes are cached so "not found" is retried upstream next time.
		return coords, err
	}
	c.cache.Add(placeName, coords)
	return coords, nil
}

// Len reports the number of cached places.
func (c *CachedResolver) Len() int {
	return c.cache.Len()
}
