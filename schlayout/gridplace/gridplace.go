// Package gridplace is the Placement Pass (C7, §4.6): a BFS grid placement
// that assigns every node in the graph an absolute position when the
// caller hasn't already fixed all of them.
//
// Grounded on d2wueortho's gridPlacement (layout.go): start from the
// highest-degree node, BFS-expand onto a virtual row/column grid biased
// toward the configured primary direction, size each row/column to the
// largest node it holds, then convert cells to pixels. Adapted from
// *d2graph.Object/geo.Point to schgraph.Node/sgeo.Point, and from D2's
// forward/backward edge bias (directed diagram edges) to plain undirected
// binary hyperedges, since schematic connectivity carries no direction.
package gridplace

import (
	"math"
	"sort"

	"github.com/jonfodi/diode-pcb-sub000/schconfig"
	"github.com/jonfodi/diode-pcb-sub000/schgraph"
	"github.com/jonfodi/diode-pcb-sub000/sgeo"
)

type cell struct{ row, col int }

// Place assigns an absolute position to every node in g, in place. edges is
// the placement-time binary edge set from the Connectivity Builder
// (BuildConnectivity with ignoreClusters=true) — used only to bias BFS
// order and cell choice, then discarded (§4.6: "placement edges are
// discarded after this pass; they play no further role").
func Place(g *schgraph.Graph, edges []schgraph.Hyperedge, cfg schconfig.Config) {
	n := len(g.Nodes)
	if n == 0 {
		return
	}

	idx := make(map[string]int, n)
	for i, node := range g.Nodes {
		idx[node.ID] = i
	}

	adj := make([][]int, n)
	seen := make([]map[int]bool, n)
	for i := range seen {
		seen[i] = make(map[int]bool)
	}
	for _, e := range edges {
		if len(e.Anchors) != 2 {
			continue
		}
		i, iok := idx[e.Anchors[0].NodeID]
		j, jok := idx[e.Anchors[1].NodeID]
		if !iok || !jok || i == j || seen[i][j] {
			continue
		}
		seen[i][j] = true
		seen[j][i] = true
		adj[i] = append(adj[i], j)
		adj[j] = append(adj[j], i)
	}

	degree := make([]int, n)
	for i := range adj {
		degree[i] = len(adj[i])
	}

	start := 0
	for i := 1; i < n; i++ {
		if degree[i] > degree[start] {
			start = i
		}
	}

	dirs := directionOrder(cfg.Direction)
	maxCols := int(math.Ceil(math.Sqrt(float64(n))))
	if maxCols < 2 {
		maxCols = 2
	}

	occupied := map[cell]bool{{0, 0}: true}
	placement := make(map[int]cell, n)
	placement[start] = cell{0, 0}

	visited := make([]bool, n)
	visited[start] = true
	queue := []int{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curCell := placement[cur]

		var neighbors []int
		for _, nb := range adj[cur] {
			if !visited[nb] {
				neighbors = append(neighbors, nb)
			}
		}
		sort.Slice(neighbors, func(a, b int) bool {
			if degree[neighbors[a]] != degree[neighbors[b]] {
				return degree[neighbors[a]] > degree[neighbors[b]]
			}
			return neighbors[a] < neighbors[b]
		})

		for _, nb := range neighbors {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			c := findBestCell(curCell, occupied, dirs, maxCols)
			placement[nb] = c
			occupied[c] = true
			queue = append(queue, nb)
		}
	}

	for i := 0; i < n; i++ {
		if !visited[i] {
			c := findFirstFree(occupied)
			placement[i] = c
			occupied[c] = true
			visited[i] = true
		}
	}

	localImprove(placement, occupied, adj, 5)
	assignPixels(g, placement, cfg)
}

// directionOrder maps the configured primary axis to a BFS expansion
// priority: the primary direction first, then one perpendicular direction,
// then the opposite of primary, then the other perpendicular direction last.
func directionOrder(d schconfig.Direction) []cell {
	switch d {
	case schconfig.DirRight:
		return []cell{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	case schconfig.DirUp:
		return []cell{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
	case schconfig.DirDown:
		return []cell{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	default: // DirLeft, the engine's default (§6)
		return []cell{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	}
}

func findBestCell(center cell, occupied map[cell]bool, dirs []cell, maxCols int) cell {
	for _, d := range dirs {
		c := cell{center.row + d.row, center.col + d.col}
		if !occupied[c] && abs(c.col) < maxCols {
			return c
		}
	}
	for _, d := range dirs {
		c := cell{center.row + d.row, center.col + d.col}
		if !occupied[c] {
			return c
		}
	}
	for radius := 2; radius <= 2*maxCols+20; radius++ {
		for dr := -radius; dr <= radius; dr++ {
			for dc := -radius; dc <= radius; dc++ {
				if abs(dr) != radius && abs(dc) != radius {
					continue
				}
				c := cell{center.row + dr, center.col + dc}
				if !occupied[c] {
					return c
				}
			}
		}
	}
	return cell{center.row, center.col + 100}
}

func findFirstFree(occupied map[cell]bool) cell {
	for radius := 0; radius <= 50; radius++ {
		for r := -radius; r <= radius; r++ {
			for c := -radius; c <= radius; c++ {
				cd := cell{r, c}
				if !occupied[cd] {
					return cd
				}
			}
		}
	}
	return cell{0, len(occupied)}
}

// localImprove swaps pairs of placed nodes when doing so reduces total
// Manhattan edge length, for a bounded number of passes. Simplified from
// d2wueortho's version: no crossing penalty, since the router (C8), not
// the placement pass, is responsible for actually avoiding overlaps.
func localImprove(placement map[int]cell, occupied map[cell]bool, adj [][]int, maxIters int) {
	n := len(placement)
	if n <= 2 {
		return
	}
	cost := func(i, j int) int {
		a, b := placement[i], placement[j]
		return abs(a.row-b.row) + abs(a.col-b.col)
	}
	totalCost := func() int {
		total := 0
		for i, nbs := range adj {
			for _, j := range nbs {
				if j > i {
					total += cost(i, j)
				}
			}
		}
		return total
	}

	for iter := 0; iter < maxIters; iter++ {
		improved := false
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				before := totalCost()
				placement[i], placement[j] = placement[j], placement[i]
				after := totalCost()
				if after < before {
					improved = true
				} else {
					placement[i], placement[j] = placement[j], placement[i]
				}
			}
		}
		if !improved {
			break
		}
	}
}

// assignPixels converts the normalized grid to absolute pixel positions,
// sizing each row/column to its largest occupant plus cfg.Spacing as the
// inter-cell channel, then offsetting everything by cfg.Padding and
// snapping to cfg.GridSnap if enabled (§4.10).
func assignPixels(g *schgraph.Graph, placement map[int]cell, cfg schconfig.Config) {
	minRow, minCol := math.MaxInt32, math.MaxInt32
	maxRow, maxCol := math.MinInt32, math.MinInt32
	for _, c := range placement {
		minRow, maxRow = minInt(minRow, c.row), maxInt(maxRow, c.row)
		minCol, maxCol = minInt(minCol, c.col), maxInt(maxCol, c.col)
	}

	colWidth := map[int]float64{}
	rowHeight := map[int]float64{}
	for i, node := range g.Nodes {
		c := placement[i]
		col, row := c.col-minCol, c.row-minRow
		w := node.Width + cfg.Spacing
		h := node.Height + cfg.Spacing
		if w > colWidth[col] {
			colWidth[col] = w
		}
		if h > rowHeight[row] {
			rowHeight[row] = h
		}
	}

	colX := map[int]float64{}
	rowY := map[int]float64{}
	x := cfg.Padding
	for c := 0; c <= maxCol-minCol; c++ {
		colX[c] = x
		x += colWidth[c]
	}
	y := cfg.Padding
	for r := 0; r <= maxRow-minRow; r++ {
		rowY[r] = y
		y += rowHeight[r]
	}

	for i, node := range g.Nodes {
		c := placement[i]
		col, row := c.col-minCol, c.row-minRow
		px := colX[col] + (colWidth[col]-node.Width)/2
		py := rowY[row] + (rowHeight[row]-node.Height)/2
		if cfg.GridSnap.Enabled {
			px = sgeo.Snap(px, cfg.GridSnap.Size)
			py = sgeo.Snap(py, cfg.GridSnap.Size)
		}
		node.SetPosition(px, py)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
