package gridplace

import (
	"testing"

	"github.com/jonfodi/diode-pcb-sub000/schconfig"
	"github.com/jonfodi/diode-pcb-sub000/schgraph"
)

func node(id string, w, h float64) *schgraph.Node {
	return &schgraph.Node{ID: id, Kind: schgraph.NodeComponent, Width: w, Height: h}
}

func TestPlaceAssignsEveryNodeAPosition(t *testing.T) {
	g := schgraph.NewGraph()
	g.AddNode(node("a", 40, 20))
	g.AddNode(node("b", 40, 20))
	g.AddNode(node("c", 40, 20))

	edges := []schgraph.Hyperedge{
		{Anchors: []schgraph.PortAnchor{{NodeID: "a"}, {NodeID: "b"}}},
		{Anchors: []schgraph.PortAnchor{{NodeID: "b"}, {NodeID: "c"}}},
	}

	Place(g, edges, schconfig.Default())

	for _, n := range g.Nodes {
		if !n.HasPosition() {
			t.Errorf("node %s has no position after placement", n.ID)
		}
	}
}

func TestPlaceDoesNotOverlapNodes(t *testing.T) {
	g := schgraph.NewGraph()
	g.AddNode(node("a", 40, 20))
	g.AddNode(node("b", 40, 20))
	g.AddNode(node("c", 40, 20))
	g.AddNode(node("d", 40, 20))

	edges := []schgraph.Hyperedge{
		{Anchors: []schgraph.PortAnchor{{NodeID: "a"}, {NodeID: "b"}}},
		{Anchors: []schgraph.PortAnchor{{NodeID: "b"}, {NodeID: "c"}}},
		{Anchors: []schgraph.PortAnchor{{NodeID: "c"}, {NodeID: "d"}}},
	}
	Place(g, edges, schconfig.Default())

	for i := 0; i < len(g.Nodes); i++ {
		for j := i + 1; j < len(g.Nodes); j++ {
			if g.Nodes[i].Rect().Overlaps(g.Nodes[j].Rect()) {
				t.Errorf("nodes %s and %s overlap after placement", g.Nodes[i].ID, g.Nodes[j].ID)
			}
		}
	}
}

func TestPlaceIsDeterministic(t *testing.T) {
	build := func() *schgraph.Graph {
		g := schgraph.NewGraph()
		g.AddNode(node("a", 40, 20))
		g.AddNode(node("b", 40, 20))
		g.AddNode(node("c", 40, 20))
		return g
	}
	edges := []schgraph.Hyperedge{
		{Anchors: []schgraph.PortAnchor{{NodeID: "a"}, {NodeID: "b"}}},
		{Anchors: []schgraph.PortAnchor{{NodeID: "b"}, {NodeID: "c"}}},
	}

	g1 := build()
	Place(g1, edges, schconfig.Default())
	g2 := build()
	Place(g2, edges, schconfig.Default())

	for i := range g1.Nodes {
		if *g1.Nodes[i].X != *g2.Nodes[i].X || *g1.Nodes[i].Y != *g2.Nodes[i].Y {
			t.Errorf("placement is not deterministic for node %s", g1.Nodes[i].ID)
		}
	}
}

func TestPlaceEmptyGraphNoOp(t *testing.T) {
	g := schgraph.NewGraph()
	Place(g, nil, schconfig.Default())
	if len(g.Nodes) != 0 {
		t.Fatalf("expected empty graph to remain empty")
	}
}
