package schlayout

import (
	"sort"

	"github.com/jonfodi/diode-pcb-sub000/internal/textmeasure"
	"github.com/jonfodi/diode-pcb-sub000/netlist"
	"github.com/jonfodi/diode-pcb-sub000/schconfig"
	"github.com/jonfodi/diode-pcb-sub000/schgraph"
	"github.com/jonfodi/diode-pcb-sub000/sgeo"
)

// PlaceLabels is the Label Placer (C10, §4.9). Edges are grouped by
// LabelGroupKey (the pre-MST hyperedge they were decomposed from, falling
// back to the net id for net-with-symbol edges that were never clustered —
// §9's caveat). Within each group, the single longest segment across all
// member edges is found; if it exceeds cfg.LabelSegmentThreshold, a
// net-name label is placed at its midpoint, offset 10px perpendicular to
// the segment (above the wire for a horizontal run, to the right for a
// vertical one) — the label is attached to whichever edge owns that
// segment.
func PlaceLabels(edges []*schgraph.Edge, nl *netlist.Netlist, cfg schconfig.Config) {
	groups := map[string][]*schgraph.Edge{}
	for _, e := range edges {
		key := e.LabelGroupKey()
		groups[key] = append(groups[key], e)
	}

	var keys []string
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		group := groups[key]
		owner, a, b, length := longestSegment(group)
		if owner == nil || length <= cfg.LabelSegmentThreshold {
			continue
		}

		netName := group[0].NetID
		if net, ok := nl.Nets[group[0].NetID]; ok {
			netName = net.Name
		}

		mid := sgeo.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
		const offset = 10.0
		var labelPos sgeo.Point
		if sgeo.SegmentOrientation(a, b) == sgeo.Horizontal {
			labelPos = sgeo.Point{X: mid.X, Y: mid.Y - offset} // above
		} else {
			labelPos = sgeo.Point{X: mid.X + offset, Y: mid.Y} // right
		}

		sz := textmeasure.Measure(netName)
		owner.Label = &schgraph.Label{
			Text:    netName,
			X:       labelPos.X,
			Y:       labelPos.Y,
			Width:   sz.Width,
			Height:  sz.Height,
			Purpose: schgraph.LabelNetNameOnWire,
		}
	}
}

// longestSegment finds the longest single segment across every edge in
// group, returning the owning edge and its two endpoints.
func longestSegment(group []*schgraph.Edge) (owner *schgraph.Edge, a, b sgeo.Point, length float64) {
	for _, e := range group {
		for i := 0; i < len(e.Polyline)-1; i++ {
			p, q := e.Polyline[i], e.Polyline[i+1]
			if d := sgeo.Length(p, q); d > length {
				length = d
				a, b = p, q
				owner = e
			}
		}
	}
	return owner, a, b, length
}
