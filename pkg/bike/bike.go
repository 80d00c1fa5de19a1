// Package bike provides a pluggable bicycle-routing client. Providers wrap
// external HTTP routing services; every failure is reported in the Result
// rather than as an error, since a failed query only means one candidate
// edge goes missing.
package bike

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"bike_transit/pkg/geo"
)

// Result is the outcome of one bicycle routing query.
type Result struct {
	DurationMinutes float64
	DistanceKm      float64
	OK              bool
	ErrorMessage    string
	Provider        string
	Geometry        [][2]float64 // route shape as (lon, lat) pairs, may be nil
}

// failure builds an unsuccessful Result for the named provider.
func failure(provider, msg string) Result {
	return Result{OK: false, ErrorMessage: msg, Provider: provider}
}

// Provider computes a bicycle route between two coordinates.
type Provider interface {
	GetRoute(ctx context.Context, from, to geo.Coord) Result
	Name() string
}

// Client wraps a Provider with result caching. Identical coordinate pairs
// within the TTL hit the cache instead of the network, which keeps repeat
// requests cheap and augmentation idempotent against a stable backend.
type Client struct {
	provider Provider
	cache    *gocache.Cache // nil disables caching
}

// NewClient creates a caching client. A zero TTL disables the cache.
func NewClient(p Provider, ttl time.Duration) *Client {
	c := &Client{provider: p}
	if ttl > 0 {
		c.cache = gocache.New(ttl, 2*ttl)
	}
	return c
}

// GetRoute returns the bicycle route between from and to, consulting the
// cache first. Only successful results are cached; failures are retried on
// the next call.
func (c *Client) GetRoute(ctx context.Context, from, to geo.Coord) Result {
	key := cacheKey(from, to)
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			return v.(Result)
		}
	}

	res := c.provider.GetRoute(ctx, from, to)
	if res.OK && c.cache != nil {
		c.cache.Set(key, res, gocache.DefaultExpiration)
	}
	return res
}

// Name returns the underlying provider's name.
func (c *Client) Name() string {
	return c.provider.Name()
}

func cacheKey(from, to geo.Coord) string {
	return fmt.Sprintf("%.6f,%.6f;%.6f,%.6f", from.Lon, from.Lat, to.Lon, to.Lat)
}
