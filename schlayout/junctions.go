package schlayout

import (
	"fmt"
	"sort"

	"github.com/jonfodi/diode-pcb-sub000/schgraph"
	"github.com/jonfodi/diode-pcb-sub000/sgeo"
)

// FindJunctions is the Junction Finder (C9, §4.8). It looks, within each
// net's routed edges, for two kinds of point where wires actually meet:
//
//   - cross-intersections: a horizontal segment of one edge crosses a
//     vertical segment of a different edge on the same net;
//   - T-intersections: an endpoint of one edge's segment lands strictly
//     inside the interior of another edge's segment, on the same net, at
//     exactly matching coordinates (no tolerance, per the determinism
//     invariant).
//
// Points are deduplicated by exact (x, y) and annotated onto every edge of
// the net whose polyline passes through them. A bend point touched by only
// one distinct edge is not a junction (§9: count distinct edge ids, not
// segment traversals — an edge that merely bends at a point it also
// revisits elsewhere does not make that point a junction on its own).
func FindJunctions(edges []*schgraph.Edge) {
	byNet := map[string][]*schgraph.Edge{}
	for _, e := range edges {
		byNet[e.NetID] = append(byNet[e.NetID], e)
	}

	var netIDs []string
	for id := range byNet {
		netIDs = append(netIDs, id)
	}
	sort.Strings(netIDs)

	for _, netID := range netIDs {
		netEdges := byNet[netID]
		points := map[string]map[string]bool{} // "x,y" -> set of edge ids touching it

		touch := func(p sgeo.Point, edgeID string) {
			key := pointKey(p)
			if points[key] == nil {
				points[key] = map[string]bool{}
			}
			points[key][edgeID] = true
		}

		for i, a := range netEdges {
			for s := 0; s < len(a.Polyline)-1; s++ {
				if sgeo.SegmentOrientation(a.Polyline[s], a.Polyline[s+1]) != sgeo.Horizontal {
					continue
				}
				for j, b := range netEdges {
					if i == j {
						continue
					}
					for t := 0; t < len(b.Polyline)-1; t++ {
						if sgeo.SegmentOrientation(b.Polyline[t], b.Polyline[t+1]) != sgeo.Vertical {
							continue
						}
						if p, ok := sgeo.SegmentsIntersect(a.Polyline[s], a.Polyline[s+1], b.Polyline[t], b.Polyline[t+1]); ok {
							touch(p, a.ID)
							touch(p, b.ID)
						}
					}
				}
			}
		}

		for i, a := range netEdges {
			for _, p := range a.Polyline {
				for j, b := range netEdges {
					if i == j {
						continue
					}
					for s := 0; s < len(b.Polyline)-1; s++ {
						if sgeo.OnSegmentInterior(p, b.Polyline[s], b.Polyline[s+1]) {
							touch(p, a.ID)
							touch(p, b.ID)
						}
					}
				}
			}
		}

		var junctionPoints []sgeo.Point
		for key, edgeIDs := range points {
			if len(edgeIDs) > 1 {
				junctionPoints = append(junctionPoints, parsePointKey(key))
			}
		}
		sort.Slice(junctionPoints, func(i, j int) bool {
			if junctionPoints[i].X != junctionPoints[j].X {
				return junctionPoints[i].X < junctionPoints[j].X
			}
			return junctionPoints[i].Y < junctionPoints[j].Y
		})

		for _, e := range netEdges {
			for _, p := range junctionPoints {
				if edgePassesThrough(e, p) {
					e.Junctions = append(e.Junctions, p)
				}
			}
		}
	}
}

// edgePassesThrough reports whether p lies on edge's polyline, either as a
// vertex or strictly inside one of its segments.
func edgePassesThrough(e *schgraph.Edge, p sgeo.Point) bool {
	for _, v := range e.Polyline {
		if v.Equal(p) {
			return true
		}
	}
	for s := 0; s < len(e.Polyline)-1; s++ {
		if sgeo.OnSegmentInterior(p, e.Polyline[s], e.Polyline[s+1]) {
			return true
		}
	}
	return false
}

func pointKey(p sgeo.Point) string {
	return fmt.Sprintf("%g,%g", p.X, p.Y)
}

func parsePointKey(key string) sgeo.Point {
	var x, y float64
	fmt.Sscanf(key, "%g,%g", &x, &y)
	return sgeo.Point{X: x, Y: y}
}
