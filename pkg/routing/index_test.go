package routing

import (
	"sort"
	"testing"

	"bike_transit/pkg/geo"
)

func TestStationIndexWithin(t *testing.T) {
	g := newTestNetwork(t)
	idx := NewStationIndex(g)

	if idx.NumStations() != 3 {
		t.Fatalf("NumStations = %d, want 3", idx.NumStations())
	}

	// All three stations sit within ~4 km of the start point.
	all := idx.Within(startCoord, 10.0)
	if len(all) != 3 {
		t.Errorf("Within 10km = %d stations, want 3", len(all))
	}
	if !sort.IntsAreSorted(all) {
		t.Errorf("Within result not sorted: %v", all)
	}

	// A tight radius keeps only the nearest station.
	near := idx.Within(startCoord, 1.5)
	if len(near) >= len(all) {
		t.Errorf("tight radius returned %d stations, want fewer than %d", len(near), len(all))
	}

	none := idx.Within(geo.Coord{Lon: 0.5, Lat: 52.5}, 1.0)
	if len(none) != 0 {
		t.Errorf("distant point matched %d stations, want 0", len(none))
	}
}

func TestStationIndexExactDistanceCheck(t *testing.T) {
	g := newTestNetwork(t)
	idx := NewStationIndex(g)

	// The bounding box over-covers; verify a corner-of-box station is
	// rejected by the exact check. gamma is ~3.3 km from start; a radius
	// just under that must exclude it while the box may still contain it.
	d := geo.DistanceKm(startCoord, gammaCoord)
	hits := idx.Within(startCoord, d-0.05)
	for _, i := range hits {
		if idx.Station(i).ID == "gamma" {
			t.Error("gamma returned despite exceeding exact radius")
		}
	}
}
