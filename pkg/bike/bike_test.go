package bike

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"bike_transit/pkg/geo"
)

var (
	testFrom = geo.Coord{Lon: -0.1759, Lat: 51.5154}
	testTo   = geo.Coord{Lon: -0.1574, Lat: 51.5226}
)

func TestOSRMProviderSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"Ok","routes":[{"distance":2000,"duration":400,
			"geometry":{"coordinates":[[-0.1759,51.5154],[-0.1574,51.5226]]}}]}`)
	}))
	defer srv.Close()

	p := NewOSRMProvider(srv.URL, 15.0, time.Second)
	res := p.GetRoute(context.Background(), testFrom, testTo)

	if !res.OK {
		t.Fatalf("GetRoute failed: %s", res.ErrorMessage)
	}
	if res.DistanceKm != 2.0 {
		t.Errorf("DistanceKm = %f, want 2.0", res.DistanceKm)
	}
	// 2 km at 15 km/h = 8 minutes, regardless of OSRM's own duration.
	if res.DurationMinutes != 8.0 {
		t.Errorf("DurationMinutes = %f, want 8.0", res.DurationMinutes)
	}
	if len(res.Geometry) != 2 {
		t.Errorf("Geometry points = %d, want 2", len(res.Geometry))
	}
}

func TestOSRMProviderErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"NoRoute","message":"no route between points"}`)
	}))
	defer srv.Close()

	p := NewOSRMProvider(srv.URL, 15.0, time.Second)
	res := p.GetRoute(context.Background(), testFrom, testTo)

	if res.OK {
		t.Fatal("GetRoute succeeded on NoRoute response")
	}
	if res.ErrorMessage == "" {
		t.Error("error message empty")
	}
}

func TestOSRMProviderUnreachable(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	p := NewOSRMProvider(srv.URL, 15.0, 200*time.Millisecond)
	res := p.GetRoute(context.Background(), testFrom, testTo)

	if res.OK {
		t.Fatal("GetRoute succeeded against closed server")
	}
}

func TestGraphHopperNoKeyIsSoftFailure(t *testing.T) {
	p := NewGraphHopperProvider("", time.Second)
	res := p.GetRoute(context.Background(), testFrom, testTo)
	if res.OK {
		t.Fatal("GetRoute succeeded without API key")
	}
}

func TestGoogleNoKeyIsSoftFailure(t *testing.T) {
	p := NewGoogleProvider("", time.Second)
	res := p.GetRoute(context.Background(), testFrom, testTo)
	if res.OK {
		t.Fatal("GetRoute succeeded without API key")
	}
}

// countingProvider counts calls and returns a fixed result.
type countingProvider struct {
	calls  atomic.Int64
	result Result
}

func (c *countingProvider) GetRoute(ctx context.Context, from, to geo.Coord) Result {
	c.calls.Add(1)
	return c.result
}

func (c *countingProvider) Name() string { return "counting" }

func TestClientCachesSuccesses(t *testing.T) {
	p := &countingProvider{result: Result{OK: true, DurationMinutes: 8, DistanceKm: 2}}
	c := NewClient(p, time.Minute)

	ctx := context.Background()
	r1 := c.GetRoute(ctx, testFrom, testTo)
	r2 := c.GetRoute(ctx, testFrom, testTo)

	if p.calls.Load() != 1 {
		t.Errorf("provider called %d times, want 1", p.calls.Load())
	}
	if r1.DurationMinutes != r2.DurationMinutes || r1.DistanceKm != r2.DistanceKm || r1.OK != r2.OK {
		t.Error("cached result differs from original")
	}

	// Reversed direction is a different key.
	c.GetRoute(ctx, testTo, testFrom)
	if p.calls.Load() != 2 {
		t.Errorf("provider called %d times after reversed query, want 2", p.calls.Load())
	}
}

func TestClientDoesNotCacheFailures(t *testing.T) {
	p := &countingProvider{result: Result{OK: false, ErrorMessage: "down"}}
	c := NewClient(p, time.Minute)

	ctx := context.Background()
	c.GetRoute(ctx, testFrom, testTo)
	c.GetRoute(ctx, testFrom, testTo)

	if p.calls.Load() != 2 {
		t.Errorf("provider called %d times, want 2 (failures must not be cached)", p.calls.Load())
	}
}

func TestClientZeroTTLDisablesCache(t *testing.T) {
	p := &countingProvider{result: Result{OK: true, DurationMinutes: 8}}
	c := NewClient(p, 0)

	ctx := context.Background()
	c.GetRoute(ctx, testFrom, testTo)
	c.GetRoute(ctx, testFrom, testTo)

	if p.calls.Load() != 2 {
		t.Errorf("provider called %d times, want 2 with caching disabled", p.calls.Load())
	}
}
