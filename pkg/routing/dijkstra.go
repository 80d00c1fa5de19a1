package routing

import (
	"math"

	"bike_transit/pkg/graph"
)

const noNode = int32(-1)

// minHeap is a concrete-typed min-heap for the Dijkstra priority queue.
// Avoids interface boxing overhead of container/heap.
type minHeap struct {
	items []pqItem
}

// pqItem is a priority queue entry.
type pqItem struct {
	node int32
	dist float64
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) Push(node int32, dist float64) {
	h.items = append(h.items, pqItem{node, dist})
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) Pop() pqItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].dist >= h.items[parent].dist {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.items[left].dist < h.items[smallest].dist {
			smallest = left
		}
		if right < n && h.items[right].dist < h.items[smallest].dist {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// edgeWeight is the Dijkstra weight of edge e traversed between nodes u
// and e.To, in minutes. Ride edges use their stored schedule time;
// line-change edges take the per-request change time; bicycle edges are
// the raw provider duration plus the station-access buffer for the pair
// of endpoints. Weights are symmetric, so traversal direction is
// irrelevant.
func edgeWeight(w *graph.Working, u int32, e *graph.Edge, cfg Config) float64 {
	switch e.Kind {
	case graph.EdgeLineChange:
		return cfg.LineChangeMinutes
	case graph.EdgeBike:
		return e.Duration + bikeBuffer(w, u, e.To, cfg)
	default:
		return e.Duration
	}
}

// bikeBuffer returns the station-access buffer for a bicycle edge between
// nodes u and v. The buffer is a property of which endpoints the edge
// touches, not of traversal direction:
//
//	start <-> station   enter: access + train wait
//	station <-> end     exit: access only
//	station <-> station exit + enter + train wait
//	start <-> end       none
func bikeBuffer(w *graph.Working, u, v int32, cfg Config) float64 {
	touchesStart := u == w.StartIdx() || v == w.StartIdx()
	touchesEnd := u == w.EndIdx() || v == w.EndIdx()

	switch {
	case touchesStart && touchesEnd:
		return 0
	case touchesStart:
		return cfg.enterBuffer()
	case touchesEnd:
		return cfg.exitBuffer()
	default:
		return cfg.interStationBuffer()
	}
}

// shortestPath runs single-source Dijkstra from source to target on the
// working graph. Returns the node path, the edge used into each path node
// (len(edges) == len(nodes)-1), and the total weight. ok is false when no
// path exists.
//
// Among equal-total paths the first-settled node wins; with a fixed graph
// and overlay insertion order the outcome is deterministic, but no
// preference (e.g. fewest changes) is imposed beyond the weights.
func shortestPath(w *graph.Working, cfg Config, source, target int32) (nodes []int32, edges []*graph.Edge, total float64, ok bool) {
	n := w.NumNodes()
	dist := make([]float64, n)
	predNode := make([]int32, n)
	predEdge := make([]*graph.Edge, n)
	settled := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		predNode[i] = noNode
	}

	var pq minHeap
	dist[source] = 0
	pq.Push(source, 0)

	for pq.Len() > 0 {
		item := pq.Pop()
		u := item.node
		if settled[u] {
			continue // stale entry
		}
		settled[u] = true

		if u == target {
			break
		}

		w.Neighbors(u, func(e *graph.Edge) bool {
			wt := edgeWeight(w, u, e, cfg)
			newDist := item.dist + wt
			if newDist < dist[e.To] {
				dist[e.To] = newDist
				predNode[e.To] = u
				predEdge[e.To] = e
				pq.Push(e.To, newDist)
			}
			return true
		})
	}

	if math.IsInf(dist[target], 1) {
		return nil, nil, 0, false
	}

	// Reconstruct target -> source, then reverse.
	for at := target; at != noNode; at = predNode[at] {
		nodes = append(nodes, at)
		if predEdge[at] != nil {
			edges = append(edges, predEdge[at])
		}
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	return nodes, edges, dist[target], true
}
