package graph

// Reserved node identifiers for the per-request virtual endpoints.
const (
	StartNodeID = "start"
	EndNodeID   = "end"
)

// EdgeKind tags the three edge types of the multi-layer graph.
type EdgeKind uint8

const (
	// EdgeRide is travel along one line between two adjacent stops.
	EdgeRide EdgeKind = iota
	// EdgeLineChange is a same-station switch between two lines.
	EdgeLineChange
	// EdgeBike is a bicycle leg between two station nodes, or between a
	// virtual endpoint and a station node.
	EdgeBike
)

// Mode returns the transport-mode tag used in the wire format and API.
func (k EdgeKind) Mode() string {
	switch k {
	case EdgeRide:
		return "tube"
	case EdgeLineChange:
		return "line_change"
	case EdgeBike:
		return "bike"
	}
	return "unknown"
}

// Node is one (station, line) pair: a transit line's presence at one
// physical station. A station served by N operationally distinct lines has
// exactly N nodes. Virtual start/end nodes carry only a name and coordinate.
type Node struct {
	ID          string  // "<stationID>_<line>", or "start"/"end"
	StationID   string  // empty for virtual nodes
	StationName string  // display name
	Line        string  // empty for virtual nodes
	Lat         float64
	Lon         float64
	Zone        string // fare zone; empty = unset
}

// Virtual reports whether the node is a per-request start/end endpoint.
func (n *Node) Virtual() bool {
	return n.StationID == ""
}

// Edge is one undirected connection, stored per-direction in adjacency
// lists. Weights are minutes and non-negative.
type Edge struct {
	To   int32
	Kind EdgeKind

	// Duration is the stored travel time in minutes. For ride edges this is
	// the scheduled time; for line-change edges the build-time change
	// constant (overridden per request by Config); for bike edges the raw
	// provider duration without any station-access buffer.
	Duration float64

	// Bike-only fields.
	DistanceKm *float64 // nil = provider did not report a distance

	// Line-change-only fields.
	FromLine    string
	ToLine      string
	StationName string

	// Ride-only field.
	Line string
}

// Station is one physical station, collapsing all of its line nodes.
type Station struct {
	ID       string
	Name     string
	Lat, Lon float64
	NodeIdxs []int32 // every line node at this station
}

// Graph is the multi-layer transit graph: read-only shared state after
// load. Per-request mutations happen on a Working overlay, never here.
type Graph struct {
	Nodes []Node
	byID  map[string]int32
	adj   [][]Edge

	stations   []Station
	stationIdx map[string]int // StationID -> index into stations
	numEdges   int            // undirected edge count
}

// New returns an empty graph ready for AddNode/AddEdge.
func New() *Graph {
	return &Graph{
		byID:       make(map[string]int32),
		stationIdx: make(map[string]int),
	}
}

// AddNode inserts a station-line node and returns its index.
// Duplicate IDs return the existing index unchanged.
func (g *Graph) AddNode(n Node) int32 {
	if idx, ok := g.byID[n.ID]; ok {
		return idx
	}
	idx := int32(len(g.Nodes))
	g.byID[n.ID] = idx
	g.Nodes = append(g.Nodes, n)
	g.adj = append(g.adj, nil)

	if n.StationID != "" {
		si, ok := g.stationIdx[n.StationID]
		if !ok {
			si = len(g.stations)
			g.stationIdx[n.StationID] = si
			g.stations = append(g.stations, Station{
				ID:   n.StationID,
				Name: n.StationName,
				Lat:  n.Lat,
				Lon:  n.Lon,
			})
		}
		g.stations[si].NodeIdxs = append(g.stations[si].NodeIdxs, idx)
	}
	return idx
}

// AddEdge inserts an undirected edge between nodes u and v.
// The Edge's To field is filled per direction.
func (g *Graph) AddEdge(u, v int32, e Edge) {
	fwd := e
	fwd.To = v
	g.adj[u] = append(g.adj[u], fwd)

	bwd := e
	bwd.To = u
	g.adj[v] = append(g.adj[v], bwd)

	g.numEdges++
}

// NodeIndex returns the index for a node ID.
func (g *Graph) NodeIndex(id string) (int32, bool) {
	idx, ok := g.byID[id]
	return idx, ok
}

// Neighbors returns the adjacency list of node u.
func (g *Graph) Neighbors(u int32) []Edge {
	return g.adj[u]
}

// NumNodes returns the station-line node count.
func (g *Graph) NumNodes() int {
	return len(g.Nodes)
}

// NumEdges returns the undirected edge count.
func (g *Graph) NumEdges() int {
	return g.numEdges
}

// Stations returns the unique physical stations. Many lines share one
// station; bicycle queries are issued per station, not per node, so this
// collapsing is what keeps the external-call count bounded.
func (g *Graph) Stations() []Station {
	return g.stations
}
