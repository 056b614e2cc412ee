// Package orthoroute is the Orthogonal Router (C8, §4.7): given a fixed set
// of node and label obstacles and a list of 2-port hyperedges, it produces
// an orthogonal (axis-aligned) polyline for each edge, routed around
// obstacles and respecting each port's visibility-direction constraint.
//
// Grounded on the Hegemann & Wolff (2023) pipeline as adapted by
// d2gridrouter: port assignment, a partial routing grid built from
// obstacle-boundary coordinates, a modified Dijkstra minimizing
// (length, bends) lexicographically, and a corridor-nudging pass.
// d2gridrouter's own findChannels/buildRoutingGraph were not present in
// the retrieved source (only types.go, dijkstra.go, nudging.go, router.go,
// portassign.go were retrieved) — the routing-graph construction here is
// rebuilt from scratch against the contracts those files assume
// (RoutingGraph.Nodes/Adj, modified-Dijkstra DijkstraState), using the
// standard "gridify obstacle boundaries" technique the pipeline's comments
// describe rather than the Scala reference's maximal-empty-rectangle
// channel finder.
package orthoroute

import (
	"sort"

	"github.com/jonfodi/diode-pcb-sub000/schconfig"
	"github.com/jonfodi/diode-pcb-sub000/schgraph"
	"github.com/jonfodi/diode-pcb-sub000/sgeo"
)

// graphNode is a vertex of the routing grid.
type graphNode struct {
	id  int
	pos sgeo.Point
}

// graphEdge connects two adjacent grid nodes along a horizontal or
// vertical corridor.
type graphEdge struct {
	to          int
	weight      float64
	orientation sgeo.Orientation
}

// routingGraph is the partial grid the router searches.
type routingGraph struct {
	nodes []graphNode
	adj   map[int][]graphEdge
	index map[sgeo.Point]int
}

// buildRoutingGraph gridifies the obstacle boundaries (plus every anchor
// point, so ports always land exactly on a grid line) into a coordinate
// grid, then keeps only the intersections and connections whose adjoining
// cell is free of obstacles (inflated by cfg.RouterObstacleBuffer). Because
// every obstacle's edges lie exactly on grid lines, a grid cell is either
// wholly inside an obstacle or wholly outside it — so a straight hop
// between two adjacent grid nodes never clips through one.
func buildRoutingGraph(obstacles []schgraph.Obstacle, anchors []sgeo.Point, cfg schconfig.Config) *routingGraph {
	buffer := cfg.RouterObstacleBuffer
	rects := make([]sgeo.Rect, len(obstacles))
	for i, o := range obstacles {
		rects[i] = o.Rect.Inflate(buffer)
	}

	var xs, ys []float64
	for _, r := range rects {
		xs = append(xs, r.Left(), r.Right())
		ys = append(ys, r.Top(), r.Bottom())
	}
	for _, a := range anchors {
		xs = append(xs, a.X)
		ys = append(ys, a.Y)
	}
	xs = sortedUnique(xs)
	ys = sortedUnique(ys)
	if len(xs) == 0 || len(ys) == 0 {
		return &routingGraph{adj: map[int][]graphEdge{}, index: map[sgeo.Point]int{}}
	}

	nCols, nRows := len(xs), len(ys)
	free := func(col, row int) bool {
		if col < 0 || row < 0 || col >= nCols-1 || row >= nRows-1 {
			return true // outside the gridified obstacle extent is open space
		}
		cx := (xs[col] + xs[col+1]) / 2
		cy := (ys[row] + ys[row+1]) / 2
		for _, r := range rects {
			if r.Contains(sgeo.Point{X: cx, Y: cy}) {
				return false
			}
		}
		return true
	}

	rg := &routingGraph{adj: map[int][]graphEdge{}, index: map[sgeo.Point]int{}}
	nodeID := func(col, row int) int {
		p := sgeo.Point{X: xs[col], Y: ys[row]}
		if id, ok := rg.index[p]; ok {
			return id
		}
		id := len(rg.nodes)
		rg.nodes = append(rg.nodes, graphNode{id: id, pos: p})
		rg.index[p] = id
		return id
	}

	addEdge := func(a, b int, orientation sgeo.Orientation) {
		w := rg.nodes[a].pos.Dist(rg.nodes[b].pos)
		rg.adj[a] = append(rg.adj[a], graphEdge{to: b, weight: w, orientation: orientation})
		rg.adj[b] = append(rg.adj[b], graphEdge{to: a, weight: w, orientation: orientation})
	}

	for col := 0; col < nCols; col++ {
		for row := 0; row < nRows; row++ {
			// Horizontal hop col -> col+1 at this row, open if either
			// adjoining row-band is free.
			if col+1 < nCols && (free(col, row-1) || free(col, row)) {
				addEdge(nodeID(col, row), nodeID(col+1, row), sgeo.Horizontal)
			}
			// Vertical hop row -> row+1 at this column.
			if row+1 < nRows && (free(col-1, row) || free(col, row)) {
				addEdge(nodeID(col, row), nodeID(col, row+1), sgeo.Vertical)
			}
		}
	}
	return rg
}

func sortedUnique(vals []float64) []float64 {
	if len(vals) == 0 {
		return nil
	}
	sort.Float64s(vals)
	out := vals[:1]
	for _, v := range vals[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// nearest returns the id of the grid node closest to p.
func (rg *routingGraph) nearest(p sgeo.Point) (int, bool) {
	if len(rg.nodes) == 0 {
		return 0, false
	}
	best := 0
	bestDist := rg.nodes[0].pos.Dist(p)
	for i := 1; i < len(rg.nodes); i++ {
		if d := rg.nodes[i].pos.Dist(p); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best, true
}

// entryNode finds the grid node a port should enter the graph through: the
// nearest grid node on the side of the port's exact position that its
// visibility direction points to (a node level with the port counts), or
// simply the nearest node if the port has no direction constraint or no
// node lies on that side (§4.7, §3's visibility_direction).
func (rg *routingGraph) entryNode(pos sgeo.Point, vis schgraph.VisibilityDirection) (int, bool) {
	if vis == schgraph.VisAll || vis == "" {
		return rg.nearest(pos)
	}
	best := -1
	bestDist := 0.0
	for i, n := range rg.nodes {
		if !inDirection(pos, n.pos, vis) {
			continue
		}
		d := n.pos.Dist(pos)
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best == -1 {
		return rg.nearest(pos)
	}
	return best, true
}

func inDirection(from, to sgeo.Point, vis schgraph.VisibilityDirection) bool {
	switch vis {
	case schgraph.VisN:
		return to.Y <= from.Y
	case schgraph.VisS:
		return to.Y >= from.Y
	case schgraph.VisE:
		return to.X >= from.X
	case schgraph.VisW:
		return to.X <= from.X
	default:
		return true
	}
}
