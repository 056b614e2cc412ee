package schlayout

import (
	"testing"

	"github.com/jonfodi/diode-pcb-sub000/schgraph"
	"github.com/jonfodi/diode-pcb-sub000/sgeo"
)

func TestFindJunctionsCrossIntersection(t *testing.T) {
	horiz := &schgraph.Edge{
		ID:       "e1",
		NetID:    "N1",
		Polyline: []sgeo.Point{{X: 0, Y: 50}, {X: 100, Y: 50}},
	}
	vert := &schgraph.Edge{
		ID:       "e2",
		NetID:    "N1",
		Polyline: []sgeo.Point{{X: 50, Y: 0}, {X: 50, Y: 100}},
	}
	FindJunctions([]*schgraph.Edge{horiz, vert})

	if len(horiz.Junctions) != 1 || !horiz.Junctions[0].Equal(sgeo.Point{X: 50, Y: 50}) {
		t.Fatalf("expected horiz edge to carry the cross-junction, got %v", horiz.Junctions)
	}
	if len(vert.Junctions) != 1 || !vert.Junctions[0].Equal(sgeo.Point{X: 50, Y: 50}) {
		t.Fatalf("expected vert edge to carry the cross-junction, got %v", vert.Junctions)
	}
}

func TestFindJunctionsTIntersection(t *testing.T) {
	trunk := &schgraph.Edge{
		ID:       "trunk",
		NetID:    "N1",
		Polyline: []sgeo.Point{{X: 0, Y: 0}, {X: 200, Y: 0}},
	}
	branch := &schgraph.Edge{
		ID:       "branch",
		NetID:    "N1",
		Polyline: []sgeo.Point{{X: 100, Y: 0}, {X: 100, Y: 50}},
	}
	FindJunctions([]*schgraph.Edge{trunk, branch})

	if len(trunk.Junctions) != 1 || !trunk.Junctions[0].Equal(sgeo.Point{X: 100, Y: 0}) {
		t.Fatalf("expected trunk edge to carry the T-junction, got %v", trunk.Junctions)
	}
	if len(branch.Junctions) != 1 {
		t.Fatalf("expected branch edge to carry the T-junction, got %v", branch.Junctions)
	}
}

// TestFindJunctionsSingleEdgeBendIsNotAJunction mirrors §9's caveat: a bend
// touched by only one distinct edge id is not a junction, even if that
// edge's own polyline happens to pass through the same point twice.
func TestFindJunctionsSingleEdgeBendIsNotAJunction(t *testing.T) {
	e := &schgraph.Edge{
		ID:       "e1",
		NetID:    "N1",
		Polyline: []sgeo.Point{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}},
	}
	FindJunctions([]*schgraph.Edge{e})
	if len(e.Junctions) != 0 {
		t.Fatalf("expected no junctions for a single edge's own bend, got %v", e.Junctions)
	}
}

func TestFindJunctionsIgnoresDifferentNets(t *testing.T) {
	horiz := &schgraph.Edge{
		ID:       "e1",
		NetID:    "N1",
		Polyline: []sgeo.Point{{X: 0, Y: 50}, {X: 100, Y: 50}},
	}
	vert := &schgraph.Edge{
		ID:       "e2",
		NetID:    "N2",
		Polyline: []sgeo.Point{{X: 50, Y: 0}, {X: 50, Y: 100}},
	}
	FindJunctions([]*schgraph.Edge{horiz, vert})
	if len(horiz.Junctions) != 0 || len(vert.Junctions) != 0 {
		t.Fatalf("edges on different nets must not be joined into a junction")
	}
}
