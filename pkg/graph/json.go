package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Wire format for the persisted multi-layer graph, as produced by the
// offline build jobs. Node and edge attribute names follow the build
// pipeline's output; optional attributes (zone, distance_km) may be absent
// and stay unset, never defaulted to zero.

type nodeJSON struct {
	ID          string   `json:"id"`
	StationID   string   `json:"station_id"`
	StationName string   `json:"station_name"`
	Line        string   `json:"line"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	Zone        string   `json:"zone,omitempty"`
}

type edgeJSON struct {
	From            string   `json:"from"`
	To              string   `json:"to"`
	DurationMinutes *float64 `json:"duration_minutes"`
	TransportMode   string   `json:"transport_mode"`
	Line            string   `json:"line,omitempty"`
	FromLine        string   `json:"from_line,omitempty"`
	ToLine          string   `json:"to_line,omitempty"`
	StationName     string   `json:"station_name,omitempty"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
}

type graphJSON struct {
	Nodes []nodeJSON `json:"nodes"`
	Edges []edgeJSON `json:"edges"`
}

// Read decodes a multi-layer graph from r. Missing coordinates or
// durations indicate a broken upstream graph build and fail the load.
func Read(r io.Reader) (*Graph, error) {
	var wire graphJSON
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}

	g := New()
	for _, n := range wire.Nodes {
		if n.ID == "" || n.StationID == "" {
			return nil, fmt.Errorf("node %q: missing id or station_id", n.ID)
		}
		if n.Lat == nil || n.Lon == nil {
			return nil, fmt.Errorf("node %q: missing coordinates", n.ID)
		}
		g.AddNode(Node{
			ID:          n.ID,
			StationID:   n.StationID,
			StationName: n.StationName,
			Line:        n.Line,
			Lat:         *n.Lat,
			Lon:         *n.Lon,
			Zone:        n.Zone,
		})
	}

	for _, e := range wire.Edges {
		u, ok := g.NodeIndex(e.From)
		if !ok {
			return nil, fmt.Errorf("edge %s-%s: unknown node %q", e.From, e.To, e.From)
		}
		v, ok := g.NodeIndex(e.To)
		if !ok {
			return nil, fmt.Errorf("edge %s-%s: unknown node %q", e.From, e.To, e.To)
		}
		if e.DurationMinutes == nil {
			return nil, fmt.Errorf("edge %s-%s: missing duration_minutes", e.From, e.To)
		}
		if *e.DurationMinutes < 0 {
			return nil, fmt.Errorf("edge %s-%s: negative duration %f", e.From, e.To, *e.DurationMinutes)
		}

		var kind EdgeKind
		switch e.TransportMode {
		case "tube", "rail":
			kind = EdgeRide
		case "line_change":
			kind = EdgeLineChange
		case "bike":
			kind = EdgeBike
		default:
			return nil, fmt.Errorf("edge %s-%s: unknown transport_mode %q", e.From, e.To, e.TransportMode)
		}

		g.AddEdge(u, v, Edge{
			Kind:        kind,
			Duration:    *e.DurationMinutes,
			Line:        e.Line,
			FromLine:    e.FromLine,
			ToLine:      e.ToLine,
			StationName: e.StationName,
			DistanceKm:  e.DistanceKm,
		})
	}

	return g, nil
}

// ReadFile loads a graph from a JSON file on disk.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes the graph back to the wire format. Each undirected edge is
// written once, in the direction it was first inserted.
func (g *Graph) Write(w io.Writer) error {
	wire := graphJSON{}
	for _, n := range g.Nodes {
		lat, lon := n.Lat, n.Lon
		wire.Nodes = append(wire.Nodes, nodeJSON{
			ID:          n.ID,
			StationID:   n.StationID,
			StationName: n.StationName,
			Line:        n.Line,
			Lat:         &lat,
			Lon:         &lon,
			Zone:        n.Zone,
		})
	}

	type edgeKey struct {
		a, b int32
		kind EdgeKind
	}
	seen := make(map[edgeKey]bool)
	for u := int32(0); int(u) < g.NumNodes(); u++ {
		for _, e := range g.adj[u] {
			a, b := u, e.To
			if a > b {
				a, b = b, a
			}
			key := edgeKey{a, b, e.Kind}
			if seen[key] {
				continue
			}
			seen[key] = true

			d := e.Duration
			wire.Edges = append(wire.Edges, edgeJSON{
				From:            g.Nodes[u].ID,
				To:              g.Nodes[e.To].ID,
				DurationMinutes: &d,
				TransportMode:   e.Kind.Mode(),
				Line:            e.Line,
				FromLine:        e.FromLine,
				ToLine:          e.ToLine,
				StationName:     e.StationName,
				DistanceKm:      e.DistanceKm,
			})
		}
	}

	enc := json.NewEncoder(w)
	return enc.Encode(wire)
}
