package graph

// Working is the per-request view of the transit graph: the shared base
// plus two virtual endpoint nodes and their bicycle edges. The base is
// never touched, so concurrent requests need no locking; everything
// request-scoped lives in the overlay and is garbage once the request ends.
type Working struct {
	base    *Graph
	virtual []Node // [0] = start, [1] = end
	extra   map[int32][]Edge

	// bike edges added to the overlay, counted for logging/stats
	numExtraEdges int
}

// NewWorking builds a working graph over base with virtual start/end nodes
// at the given coordinates.
func NewWorking(base *Graph, startLon, startLat, endLon, endLat float64) *Working {
	return &Working{
		base: base,
		virtual: []Node{
			{ID: StartNodeID, StationName: "Start Location", Lat: startLat, Lon: startLon},
			{ID: EndNodeID, StationName: "End Location", Lat: endLat, Lon: endLon},
		},
		extra: make(map[int32][]Edge),
	}
}

// StartIdx returns the node index of the virtual start node.
func (w *Working) StartIdx() int32 {
	return int32(w.base.NumNodes())
}

// EndIdx returns the node index of the virtual end node.
func (w *Working) EndIdx() int32 {
	return int32(w.base.NumNodes()) + 1
}

// NumNodes counts base plus virtual nodes.
func (w *Working) NumNodes() int {
	return w.base.NumNodes() + len(w.virtual)
}

// NumExtraEdges counts edges added to the overlay.
func (w *Working) NumExtraEdges() int {
	return w.numExtraEdges
}

// Node returns the node at index u, resolving into the overlay for
// virtual indices.
func (w *Working) Node(u int32) *Node {
	if int(u) < w.base.NumNodes() {
		return &w.base.Nodes[u]
	}
	return &w.virtual[int(u)-w.base.NumNodes()]
}

// AddBikeEdge inserts an undirected bicycle edge into the overlay.
// Only the coordinating goroutine of an augmentation may call this.
func (w *Working) AddBikeEdge(u, v int32, e Edge) {
	fwd := e
	fwd.To = v
	w.extra[u] = append(w.extra[u], fwd)

	bwd := e
	bwd.To = u
	w.extra[v] = append(w.extra[v], bwd)

	w.numExtraEdges++
}

// Neighbors calls fn for every edge incident to u, base edges first,
// then overlay edges. Returning false stops the iteration.
func (w *Working) Neighbors(u int32, fn func(e *Edge) bool) {
	if int(u) < w.base.NumNodes() {
		base := w.base.adj[u]
		for i := range base {
			if !fn(&base[i]) {
				return
			}
		}
	}
	over := w.extra[u]
	for i := range over {
		if !fn(&over[i]) {
			return
		}
	}
}
