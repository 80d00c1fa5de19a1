package routing

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"bike_transit/pkg/geo"
	"bike_transit/pkg/graph"
)

// ErrNoRoute is returned when neither a direct bicycle route nor a
// multi-modal itinerary exists between the two points. A normal outcome
// for genuinely unreachable pairs, not an internal failure.
var ErrNoRoute = errors.New("no route found")

// Segment is one traversed edge with resolved display fields.
type Segment struct {
	FromNode string `json:"from"`
	ToNode   string `json:"to"`

	FromStation string  `json:"from_station"`
	ToStation   string  `json:"to_station"`
	FromName    string  `json:"from_name,omitempty"`
	ToName      string  `json:"to_name,omitempty"`
	FromLat     float64 `json:"from_lat"`
	FromLon     float64 `json:"from_lon"`
	ToLat       float64 `json:"to_lat"`
	ToLon       float64 `json:"to_lon"`

	Mode     string `json:"mode"`      // "bike", "tube", "line_change"
	EdgeType string `json:"edge_type"` // "travel" or "line_change"

	DurationMinutes    float64 `json:"duration_minutes"`         // buffer-inclusive
	RawDurationMinutes float64 `json:"raw_duration_minutes"`     // bicycle time without buffer (== Duration otherwise)
	BufferMinutes      float64 `json:"buffer_minutes,omitempty"` // station-access buffer (bicycle segments only)

	// Bicycle extras.
	DistanceKm *float64 `json:"distance_km,omitempty"`

	// Transit extras.
	Line     string `json:"line,omitempty"`      // serving line for tube segments
	FromLine string `json:"from_line,omitempty"` // line-change only
	ToLine   string `json:"to_line,omitempty"`   // line-change only
}

// RouteResult is the outcome of one route request. Immutable once built.
type RouteResult struct {
	Path          []string  `json:"path"`
	Segments      []Segment `json:"segments"`
	TotalDuration float64   `json:"total_duration_minutes"`
	IsDirectBike  bool      `json:"is_direct_bike"`
}

// Router finds the fastest start-to-end journey. Implemented by Planner;
// kept as an interface so the API layer can be tested with fakes.
type Router interface {
	FindRoute(ctx context.Context, start, end geo.Coord, cfg Config) (*RouteResult, error)
}

// Planner compares a direct bicycle ride against a bike+transit itinerary
// over the augmented multi-layer graph and returns the faster of the two.
type Planner struct {
	base *graph.Graph
	bike BikeRouter
	aug  *Augmenter
}

// NewPlanner creates a planner over the shared base graph.
func NewPlanner(base *graph.Graph, router BikeRouter) *Planner {
	return &Planner{
		base: base,
		bike: router,
		aug:  NewAugmenter(base, router),
	}
}

// FindRoute computes the fastest route between two coordinates.
// The request is a single linear pipeline: direct bicycle query, graph
// augmentation, shortest path, comparison. No state survives the call.
func (p *Planner) FindRoute(ctx context.Context, start, end geo.Coord, cfg Config) (*RouteResult, error) {
	cfg = cfg.Normalize()

	direct := p.bike.GetRoute(ctx, start, end)
	directDuration := math.Inf(1)
	if direct.OK && direct.DurationMinutes > 0 {
		directDuration = direct.DurationMinutes
	} else if !direct.OK {
		slog.Warn("direct bicycle query failed", "error", direct.ErrorMessage)
	}

	w := p.aug.Augment(ctx, start, end, cfg)

	nodes, edges, total, found := shortestPath(w, cfg, w.StartIdx(), w.EndIdx())
	multiDuration := math.Inf(1)
	if found {
		multiDuration = total
	}

	slog.Info("comparing candidate routes",
		"direct_bike_minutes", directDuration,
		"multimodal_minutes", multiDuration)

	// Ties go to the direct ride: same time, none of the mode-change fuss.
	switch {
	case direct.OK && directDuration <= multiDuration:
		return directResult(start, end, direct.DurationMinutes, direct.DistanceKm), nil
	case found:
		return p.multimodalResult(w, cfg, nodes, edges, total), nil
	default:
		return nil, ErrNoRoute
	}
}

// directResult builds the two-node result for an unbroken bicycle ride.
func directResult(start, end geo.Coord, durationMinutes, distanceKm float64) *RouteResult {
	dist := distanceKm
	return &RouteResult{
		Path: []string{graph.StartNodeID, graph.EndNodeID},
		Segments: []Segment{{
			FromNode:           graph.StartNodeID,
			ToNode:             graph.EndNodeID,
			FromStation:        graph.StartNodeID,
			ToStation:          graph.EndNodeID,
			FromName:           "Start Location",
			ToName:             "End Location",
			FromLat:            start.Lat,
			FromLon:            start.Lon,
			ToLat:              end.Lat,
			ToLon:              end.Lon,
			Mode:               "bike",
			EdgeType:           "travel",
			DurationMinutes:    durationMinutes,
			RawDurationMinutes: durationMinutes,
			DistanceKm:         &dist,
		}},
		TotalDuration: durationMinutes,
		IsDirectBike:  true,
	}
}

// multimodalResult resolves a node path into display segments. Edge
// weights already include buffers, so the total is a plain sum.
func (p *Planner) multimodalResult(w *graph.Working, cfg Config, nodes []int32, edges []*graph.Edge, total float64) *RouteResult {
	path := make([]string, len(nodes))
	for i, n := range nodes {
		path[i] = w.Node(n).ID
	}

	segments := make([]Segment, 0, len(edges))
	for i, e := range edges {
		u, v := nodes[i], nodes[i+1]
		from, to := w.Node(u), w.Node(v)

		seg := Segment{
			FromNode:    from.ID,
			ToNode:      to.ID,
			FromStation: stationOrVirtual(from),
			ToStation:   stationOrVirtual(to),
			FromName:    from.StationName,
			ToName:      to.StationName,
			FromLat:     from.Lat,
			FromLon:     from.Lon,
			ToLat:       to.Lat,
			ToLon:       to.Lon,
			Mode:        e.Kind.Mode(),
		}

		switch e.Kind {
		case graph.EdgeBike:
			seg.EdgeType = "travel"
			seg.RawDurationMinutes = e.Duration
			seg.BufferMinutes = bikeBuffer(w, u, v, cfg)
			seg.DurationMinutes = e.Duration + seg.BufferMinutes
			seg.DistanceKm = e.DistanceKm
		case graph.EdgeLineChange:
			seg.EdgeType = "line_change"
			seg.DurationMinutes = cfg.LineChangeMinutes
			seg.RawDurationMinutes = cfg.LineChangeMinutes
			seg.FromLine = e.FromLine
			seg.ToLine = e.ToLine
		default:
			seg.EdgeType = "travel"
			seg.DurationMinutes = e.Duration
			seg.RawDurationMinutes = e.Duration
			seg.Line = e.Line
			seg.FromLine = from.Line
			seg.ToLine = to.Line
		}

		segments = append(segments, seg)
	}

	return &RouteResult{
		Path:          path,
		Segments:      segments,
		TotalDuration: total,
		IsDirectBike:  false,
	}
}

// stationOrVirtual returns the physical station ID, or the virtual node
// ID for start/end.
func stationOrVirtual(n *graph.Node) string {
	if n.Virtual() {
		return n.ID
	}
	return n.StationID
}
