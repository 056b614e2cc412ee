package schlayout

import (
	"sort"
	"strconv"

	"github.com/jonfodi/diode-pcb-sub000/internal/unionfind"
	"github.com/jonfodi/diode-pcb-sub000/schgraph"
)

// mstEdgeCandidate is one pairwise distance, kept with its original input
// indices so ties sort by input order (§4.5: "stable tie-breaking on equal
// distances: use the pair's indices in the input order as a secondary key").
type mstEdgeCandidate struct {
	i, j     int
	distance float64
}

// DecomposeMST is the MST Decomposer (C6, §4.5). For a cluster of n ports it
// computes all n(n-1)/2 pairwise Euclidean distances, sorts them ascending
// (ties broken by input-order indices), and runs Kruskal's algorithm with
// union-find to select exactly n-1 tree edges. Each tree edge becomes a
// 2-port hyperedge whose context is copied from ctx (§4.5).
//
// Grounded on the disjoint-set/path-compression shape of lvlath's
// prim_kruskal.Kruskal, adapted to operate over a slice of port anchors
// instead of a named core.Graph.
func DecomposeMST(anchors []schgraph.PortAnchor, ctx schgraph.HyperedgeContext, idPrefix string) []schgraph.Hyperedge {
	n := len(anchors)
	if n < 2 {
		return nil
	}

	candidates := make([]mstEdgeCandidate, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			candidates = append(candidates, mstEdgeCandidate{
				i: i, j: j,
				distance: anchors[i].Pos.Dist(anchors[j].Pos),
			})
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].distance != candidates[b].distance {
			return candidates[a].distance < candidates[b].distance
		}
		if candidates[a].i != candidates[b].i {
			return candidates[a].i < candidates[b].i
		}
		return candidates[a].j < candidates[b].j
	})

	uf := unionfind.New(n)
	var hyperedges []schgraph.Hyperedge
	for _, c := range candidates {
		if len(hyperedges) == n-1 {
			break
		}
		if uf.Union(c.i, c.j) {
			hyperedges = append(hyperedges, schgraph.Hyperedge{
				ID:      idPrefix + "." + strconv.Itoa(len(hyperedges)+1),
				Anchors: []schgraph.PortAnchor{anchors[c.i], anchors[c.j]},
				Context: ctx,
			})
		}
	}
	return hyperedges
}
