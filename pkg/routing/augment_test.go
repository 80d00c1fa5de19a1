package routing

import (
	"context"
	"testing"

	"bike_transit/pkg/bike"
	"bike_transit/pkg/geo"
	"bike_transit/pkg/graph"
)

func startEdges(w *graph.Working, virtual int32) []*graph.Edge {
	var out []*graph.Edge
	w.Neighbors(virtual, func(e *graph.Edge) bool {
		out = append(out, e)
		return true
	})
	return out
}

func TestAugmentFansOutToEveryLineNode(t *testing.T) {
	g := newTestNetwork(t)
	rider := &scriptedBike{fn: func(_, _ geo.Coord) bike.Result {
		return bikeOK(10, 2.0)
	}}
	aug := NewAugmenter(g, rider)

	w := aug.Augment(context.Background(), startCoord, endCoord, DefaultConfig())

	// Alpha carries two lines, beta and gamma one each: four edges per
	// direction, from three queries per direction.
	for _, virtual := range []int32{w.StartIdx(), w.EndIdx()} {
		edges := startEdges(w, virtual)
		if len(edges) != 4 {
			t.Fatalf("virtual node %d has %d edges, want 4", virtual, len(edges))
		}
		for _, e := range edges {
			if e.Kind != graph.EdgeBike {
				t.Errorf("edge to node %d has kind %v, want bike", e.To, e.Kind)
			}
			if e.Duration != 10 {
				t.Errorf("edge to node %d has duration %f, want 10", e.To, e.Duration)
			}
			if e.DistanceKm == nil || *e.DistanceKm != 2.0 {
				t.Errorf("edge to node %d missing 2.0 km distance", e.To)
			}
		}
	}

	if got := rider.callCount(); got != 6 {
		t.Errorf("bicycle queries = %d, want 6 (one per station per direction)", got)
	}
}

func TestAugmentQueryDirections(t *testing.T) {
	g := newTestNetwork(t)

	var fromStart, toEnd, other int
	rider := &scriptedBike{fn: func(from, to geo.Coord) bike.Result {
		switch {
		case sameCoord(from, startCoord):
			fromStart++
		case sameCoord(to, endCoord):
			toEnd++
		default:
			other++
		}
		return bikeOK(10, 2.0)
	}}

	NewAugmenter(g, rider).Augment(context.Background(), startCoord, endCoord, DefaultConfig())

	// Start-side queries originate at the start point; end-side queries
	// terminate at the end point.
	if fromStart != 3 || toEnd != 3 || other != 0 {
		t.Errorf("query directions: from-start=%d to-end=%d other=%d, want 3/3/0",
			fromStart, toEnd, other)
	}
}

func TestAugmentDistanceFilter(t *testing.T) {
	g := newTestNetwork(t)

	// Threshold shrinks linearly with the bike-only cap. At 16 minutes the
	// radius is 2 km: alpha and beta stay in from the start point, gamma
	// (about 3.4 km away) drops out in both directions.
	cfg := DefaultConfig()
	cfg.MaxBikeOnlyMinutes = 16

	rider := &scriptedBike{fn: func(_, _ geo.Coord) bike.Result {
		return bikeOK(10, 2.0)
	}}
	NewAugmenter(g, rider).Augment(context.Background(), startCoord, endCoord, cfg)

	if got := rider.callCount(); got != 4 {
		t.Errorf("bicycle queries = %d, want 4 with the 2 km threshold", got)
	}
}

func TestAugmentBackendDown(t *testing.T) {
	g := newTestNetwork(t)
	rider := &scriptedBike{fn: func(_, _ geo.Coord) bike.Result {
		return bikeFail("connection refused")
	}}

	w := NewAugmenter(g, rider).Augment(context.Background(), startCoord, endCoord, DefaultConfig())
	if w == nil {
		t.Fatal("Augment returned nil on backend failure")
	}
	if edges := startEdges(w, w.StartIdx()); len(edges) != 0 {
		t.Errorf("start has %d edges after backend failure, want 0", len(edges))
	}
	if edges := startEdges(w, w.EndIdx()); len(edges) != 0 {
		t.Errorf("end has %d edges after backend failure, want 0", len(edges))
	}
}

func TestAugmentDropsNonPositiveDurations(t *testing.T) {
	g := newTestNetwork(t)
	rider := &scriptedBike{fn: func(from, to geo.Coord) bike.Result {
		if touches(from, to, betaCoord) {
			return bikeOK(0, 0) // degenerate answer from the backend
		}
		return bikeOK(10, 2.0)
	}}

	w := NewAugmenter(g, rider).Augment(context.Background(), startCoord, endCoord, DefaultConfig())

	br, _ := g.NodeIndex("beta_red")
	for _, e := range startEdges(w, w.StartIdx()) {
		if e.To == br {
			t.Error("zero-duration result still produced an edge to beta")
		}
	}
}

func TestAugmentLeavesBaseUntouched(t *testing.T) {
	g := newTestNetwork(t)
	before := g.NumEdges()

	rider := &scriptedBike{fn: func(_, _ geo.Coord) bike.Result {
		return bikeOK(10, 2.0)
	}}
	aug := NewAugmenter(g, rider)

	aug.Augment(context.Background(), startCoord, endCoord, DefaultConfig())
	aug.Augment(context.Background(), startCoord, endCoord, DefaultConfig())

	if g.NumEdges() != before {
		t.Errorf("base graph edge count changed: %d -> %d", before, g.NumEdges())
	}
	if g.NumNodes() != 4 {
		t.Errorf("base graph node count = %d, want 4", g.NumNodes())
	}
}
