package routing

import (
	"sort"

	"github.com/tidwall/rtree"

	"bike_transit/pkg/geo"
	"bike_transit/pkg/graph"
)

// StationIndex is an R-tree over unique physical stations, built once per
// graph and shared read-only across requests. It answers the "which
// stations are bikeable from here" pre-filter that bounds the external
// routing fan-out.
type StationIndex struct {
	tr       rtree.RTreeG[int]
	stations []graph.Station
}

// NewStationIndex indexes the graph's unique stations by coordinate.
func NewStationIndex(g *graph.Graph) *StationIndex {
	idx := &StationIndex{stations: g.Stations()}
	for i, st := range idx.stations {
		pt := [2]float64{st.Lon, st.Lat}
		idx.tr.Insert(pt, pt, i)
	}
	return idx
}

// NumStations returns the indexed station count.
func (si *StationIndex) NumStations() int {
	return len(si.stations)
}

// Station returns the station at index i.
func (si *StationIndex) Station(i int) *graph.Station {
	return &si.stations[i]
}

// Within returns the indices of stations whose great-circle distance from
// center is at most radiusKm, in ascending index order. The R-tree search
// over-covers with a bounding box; hits are verified with the exact
// distance.
func (si *StationIndex) Within(center geo.Coord, radiusKm float64) []int {
	min, max := geo.BoundingBox(center, radiusKm)

	var out []int
	si.tr.Search(min, max, func(_, _ [2]float64, i int) bool {
		st := &si.stations[i]
		if geo.DistanceKm(center, geo.Coord{Lon: st.Lon, Lat: st.Lat}) <= radiusKm {
			out = append(out, i)
		}
		return true
	})

	// R-tree traversal order is an implementation detail; sort so callers
	// see a stable candidate order.
	sort.Ints(out)
	return out
}
