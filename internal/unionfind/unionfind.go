// Package unionfind provides a disjoint-set structure with path compression
// and union by rank, grounded on lvlath's prim_kruskal.Kruskal implementation
// but keyed by integer indices instead of vertex ids since the MST decomposer
// operates over a cluster's port slice, not a named graph.
package unionfind

// UnionFind is a disjoint-set forest over the integers [0, n).
type UnionFind struct {
	parent []int
	rank   []int
}

// New creates a disjoint-set over n singleton elements.
func New(n int) *UnionFind {
	uf := &UnionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

// Find returns the representative of u's set, compressing the path walked.
func (uf *UnionFind) Find(u int) int {
	for uf.parent[u] != u {
		uf.parent[u] = uf.parent[uf.parent[u]]
		u = uf.parent[u]
	}
	return u
}

// Union merges the sets containing u and v. Returns true if a merge
// happened (u and v were in different sets).
func (uf *UnionFind) Union(u, v int) bool {
	rootU := uf.Find(u)
	rootV := uf.Find(v)
	if rootU == rootV {
		return false
	}
	if uf.rank[rootU] < uf.rank[rootV] {
		uf.parent[rootU] = rootV
	} else {
		uf.parent[rootV] = rootU
		if uf.rank[rootU] == uf.rank[rootV] {
			uf.rank[rootU]++
		}
	}
	return true
}

// Connected reports whether u and v are in the same set.
func (uf *UnionFind) Connected(u, v int) bool {
	return uf.Find(u) == uf.Find(v)
}
