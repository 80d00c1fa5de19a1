package graph

import "sort"

// unionFind implements a disjoint-set structure with path halving and
// union by rank.
type unionFind struct {
	parent []int32
	rank   []byte
	size   []int32
}

func newUnionFind(n int) *unionFind {
	parent := make([]int32, n)
	size := make([]int32, n)
	for i := range parent {
		parent[i] = int32(i)
		size[i] = 1
	}
	return &unionFind{
		parent: parent,
		rank:   make([]byte, n),
		size:   size,
	}
}

func (uf *unionFind) find(x int32) int32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]] // path halving
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(x, y int32) bool {
	rx := uf.find(x)
	ry := uf.find(y)
	if rx == ry {
		return false
	}

	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// ComponentSizes returns the size of each connected component over the
// transit edges, largest first. A well-formed network has exactly one
// component; more than one means some stations are unreachable by rail
// alone and can only be bridged by bicycle legs.
func (g *Graph) ComponentSizes() []int {
	n := g.NumNodes()
	if n == 0 {
		return nil
	}

	uf := newUnionFind(n)
	for u := int32(0); u < int32(n); u++ {
		for _, e := range g.adj[u] {
			uf.union(u, e.To)
		}
	}

	counts := make(map[int32]int)
	for i := int32(0); i < int32(n); i++ {
		counts[uf.find(i)]++
	}

	sizes := make([]int, 0, len(counts))
	for _, c := range counts {
		sizes = append(sizes, c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	return sizes
}
