package orthoroute

import (
	"sort"

	"github.com/jonfodi/diode-pcb-sub000/sgeo"
)

// segment is one axis-aligned leg of a routed polyline.
type segment struct {
	routeIdx            int
	legIdx               int
	orientation          sgeo.Orientation
	fixed                float64 // shared coordinate: Y for horizontal, X for vertical
	rangeMin, rangeMax   float64
}

// nudge separates polylines that overlap along the same corridor (the same
// fixed coordinate and orientation) by spreading them evenly across a small
// band around that coordinate, so parallel wires don't render on top of
// each other (§4.7's corridor-sharing concern).
//
// Simplified from d2gridrouter/nudging.go's channel-width distribution:
// that version measures the true channel's free width from the router's
// maximal-empty-rectangle channels, which this package's grid-cell router
// doesn't produce. Here the spread is a fixed small increment around the
// shared coordinate instead of filling a known channel width — adequate
// for untangling overlapping legs without needing channel geometry this
// router doesn't compute.
const nudgeStep = 4.0

func nudge(routes [][]sgeo.Point) {
	if len(routes) <= 1 {
		return
	}

	var segs []segment
	for ri, pts := range routes {
		// Skip the first and last legs: their outer endpoint is an exact
		// port position (§4.7's endpoint-exact-match rule) and must not move.
		for i := 1; i < len(pts)-2; i++ {
			a, b := pts[i], pts[i+1]
			switch sgeo.SegmentOrientation(a, b) {
			case sgeo.Horizontal:
				segs = append(segs, segment{ri, i, sgeo.Horizontal, a.Y, minF(a.X, b.X), maxF(a.X, b.X)})
			case sgeo.Vertical:
				segs = append(segs, segment{ri, i, sgeo.Vertical, a.X, minF(a.Y, b.Y), maxF(a.Y, b.Y)})
			}
		}
	}

	bundles := bundleOverlapping(segs)
	for _, bundle := range bundles {
		if len(bundle) <= 1 {
			continue
		}
		routesInBundle := map[int]bool{}
		for _, s := range bundle {
			routesInBundle[s.routeIdx] = true
		}
		ordered := make([]int, 0, len(routesInBundle))
		for r := range routesInBundle {
			ordered = append(ordered, r)
		}
		sort.Ints(ordered)
		n := len(ordered)
		offset := map[int]float64{}
		for i, r := range ordered {
			offset[r] = nudgeStep * (float64(i) - float64(n-1)/2)
		}
		for _, s := range bundle {
			applyOffset(routes[s.routeIdx], s, offset[s.routeIdx])
		}
	}
}

// bundleOverlapping groups same-orientation, same-coordinate segments whose
// ranges overlap into corridors.
func bundleOverlapping(segs []segment) [][]segment {
	const tol = 1e-6
	byKey := map[sgeo.Orientation]map[float64][]segment{
		sgeo.Horizontal: {},
		sgeo.Vertical:   {},
	}
	for _, s := range segs {
		bucket := byKey[s.orientation]
		placed := false
		for coord, group := range bucket {
			if absF(coord-s.fixed) < tol {
				bucket[coord] = append(group, s)
				placed = true
				break
			}
		}
		if !placed {
			bucket[s.fixed] = []segment{s}
		}
	}

	var out [][]segment
	for _, bucket := range byKey {
		for _, group := range bucket {
			sort.Slice(group, func(i, j int) bool { return group[i].rangeMin < group[j].rangeMin })
			cur := []segment{group[0]}
			reach := group[0].rangeMax
			for _, s := range group[1:] {
				if s.rangeMin < reach {
					cur = append(cur, s)
					reach = maxF(reach, s.rangeMax)
					continue
				}
				out = append(out, cur)
				cur = []segment{s}
				reach = s.rangeMax
			}
			out = append(out, cur)
		}
	}
	return out
}

func applyOffset(pts []sgeo.Point, s segment, delta float64) {
	if delta == 0 {
		return
	}
	switch s.orientation {
	case sgeo.Horizontal:
		pts[s.legIdx].Y += delta
		pts[s.legIdx+1].Y += delta
	case sgeo.Vertical:
		pts[s.legIdx].X += delta
		pts[s.legIdx+1].X += delta
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
