package routing

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"bike_transit/pkg/bike"
	"bike_transit/pkg/geo"
	"bike_transit/pkg/graph"
)

// BikeRouter is the slice of the bicycle client the engine needs.
type BikeRouter interface {
	GetRoute(ctx context.Context, from, to geo.Coord) bike.Result
}

// Augmenter attaches arbitrary coordinates to the transit network. It
// holds only read-only shared state (the base graph and its station
// index); every request gets its own working graph.
type Augmenter struct {
	base  *graph.Graph
	index *StationIndex
	bike  BikeRouter
}

// NewAugmenter builds an augmenter (and the station index) over base.
func NewAugmenter(base *graph.Graph, router BikeRouter) *Augmenter {
	return &Augmenter{
		base:  base,
		index: NewStationIndex(base),
		bike:  router,
	}
}

// Augment returns a working copy of the base graph with virtual
// start/end nodes connected to nearby stations by bicycle edges.
// A completely unreachable bicycle backend yields a working graph with no
// extra edges, never an error; the missing edges surface downstream as
// "no route found" if nothing else connects the endpoints.
func (a *Augmenter) Augment(ctx context.Context, start, end geo.Coord, cfg Config) *graph.Working {
	w := graph.NewWorking(a.base, start.Lon, start.Lat, end.Lon, end.Lat)

	a.attach(ctx, w, w.StartIdx(), start, true, cfg)
	a.attach(ctx, w, w.EndIdx(), end, false, cfg)

	return w
}

// attach queries bicycle routes from (or to) every candidate station
// within the straight-line threshold and inserts the resulting edges.
// Queries run on a bounded worker pool; each worker writes only its own
// result slot, and only this goroutine touches the working graph.
func (a *Augmenter) attach(ctx context.Context, w *graph.Working, virtual int32, coord geo.Coord, fromVirtual bool, cfg Config) {
	direction := "start"
	if !fromVirtual {
		direction = "end"
	}

	radiusKm := cfg.thresholdKm()
	candidates := a.index.Within(coord, radiusKm)

	slog.Info("augmenting graph with bicycle edges",
		"direction", direction,
		"threshold_km", radiusKm,
		"candidates", len(candidates),
		"filtered", a.index.NumStations()-len(candidates))

	results := make([]bike.Result, len(candidates))
	sem := make(chan struct{}, cfg.Workers)
	var wg sync.WaitGroup

	started := time.Now()
	for i, si := range candidates {
		st := a.index.Station(si)
		stCoord := geo.Coord{Lon: st.Lon, Lat: st.Lat}

		from, to := coord, stCoord
		if !fromVirtual {
			from, to = stCoord, coord
		}

		wg.Add(1)
		go func(slot int, from, to geo.Coord) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[slot] = a.bike.GetRoute(ctx, from, to)
		}(i, from, to)
	}
	wg.Wait()

	// Insert in candidate order so the working graph is identical across
	// runs regardless of query completion order.
	edgesAdded := 0
	for i, si := range candidates {
		res := results[i]
		st := a.index.Station(si)

		if !res.OK {
			slog.Warn("bicycle query failed, skipping station",
				"station", st.ID, "error", res.ErrorMessage)
			continue
		}
		if res.DurationMinutes <= 0 {
			continue
		}

		// One query per physical station fans out to every line node there.
		dist := res.DistanceKm
		for _, nodeIdx := range st.NodeIdxs {
			w.AddBikeEdge(virtual, nodeIdx, graph.Edge{
				Kind:       graph.EdgeBike,
				Duration:   res.DurationMinutes,
				DistanceKm: &dist,
			})
			edgesAdded++
		}
	}

	slog.Info("bicycle edges added",
		"direction", direction,
		"edges", edgesAdded,
		"elapsed", time.Since(started).Round(time.Millisecond))
}
