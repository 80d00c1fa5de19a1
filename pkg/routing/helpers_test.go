package routing

import (
	"context"
	"math"
	"sync"
	"testing"

	"bike_transit/pkg/bike"
	"bike_transit/pkg/geo"
	"bike_transit/pkg/graph"
)

// Test coordinates: a small patch of central London.
var (
	alphaCoord = geo.Coord{Lon: -0.1571, Lat: 51.5226} // two lines
	betaCoord  = geo.Coord{Lon: -0.1494, Lat: 51.5142} // red line only
	gammaCoord = geo.Coord{Lon: -0.1278, Lat: 51.5074} // blue line only

	startCoord = geo.Coord{Lon: -0.1759, Lat: 51.5154}
	endCoord   = geo.Coord{Lon: -0.1574, Lat: 51.5226}
)

// newTestNetwork builds a three-station, two-line network:
//
//	alpha(red) --3.0-- beta(red)
//	alpha(blue) -4.0-- gamma(blue)
//	alpha: red <-> blue line change (5.0 stored)
func newTestNetwork(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()

	ar := g.AddNode(graph.Node{ID: "alpha_red", StationID: "alpha", StationName: "Alpha", Line: "red", Lat: alphaCoord.Lat, Lon: alphaCoord.Lon})
	ab := g.AddNode(graph.Node{ID: "alpha_blue", StationID: "alpha", StationName: "Alpha", Line: "blue", Lat: alphaCoord.Lat, Lon: alphaCoord.Lon})
	br := g.AddNode(graph.Node{ID: "beta_red", StationID: "beta", StationName: "Beta", Line: "red", Lat: betaCoord.Lat, Lon: betaCoord.Lon})
	gb := g.AddNode(graph.Node{ID: "gamma_blue", StationID: "gamma", StationName: "Gamma", Line: "blue", Lat: gammaCoord.Lat, Lon: gammaCoord.Lon})

	g.AddEdge(ar, br, graph.Edge{Kind: graph.EdgeRide, Duration: 3.0, Line: "red"})
	g.AddEdge(ab, gb, graph.Edge{Kind: graph.EdgeRide, Duration: 4.0, Line: "blue"})
	g.AddEdge(ar, ab, graph.Edge{Kind: graph.EdgeLineChange, Duration: 5.0, FromLine: "red", ToLine: "blue", StationName: "Alpha"})

	return g
}

// scriptedBike is a deterministic BikeRouter fake.
type scriptedBike struct {
	mu    sync.Mutex
	calls int
	fn    func(from, to geo.Coord) bike.Result
}

func (s *scriptedBike) GetRoute(_ context.Context, from, to geo.Coord) bike.Result {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.fn(from, to)
}

func (s *scriptedBike) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func bikeOK(minutes, km float64) bike.Result {
	return bike.Result{OK: true, DurationMinutes: minutes, DistanceKm: km}
}

func bikeFail(msg string) bike.Result {
	return bike.Result{OK: false, ErrorMessage: msg}
}

func sameCoord(a, b geo.Coord) bool {
	return math.Abs(a.Lat-b.Lat) < 1e-9 && math.Abs(a.Lon-b.Lon) < 1e-9
}

// touches reports whether either endpoint of the query is c.
func touches(from, to, c geo.Coord) bool {
	return sameCoord(from, c) || sameCoord(to, c)
}
