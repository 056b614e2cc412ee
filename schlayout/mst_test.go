package schlayout

import (
	"testing"

	"github.com/jonfodi/diode-pcb-sub000/internal/unionfind"
	"github.com/jonfodi/diode-pcb-sub000/schgraph"
)

// TestDecomposeMSTS2TriangularWeight mirrors scenario S2: four ports at the
// corners of a 100x100 square produce a 3-edge MST with total weight 300
// (two sides of 100 and one side of 100 — any spanning tree over a square
// using only unit-length sides, skipping the two diagonals, has this
// weight).
func TestDecomposeMSTS2TriangularWeight(t *testing.T) {
	anchors := []schgraph.PortAnchor{
		anchor("a", 0, 0),
		anchor("b", 100, 0),
		anchor("c", 0, 100),
		anchor("d", 100, 100),
	}
	ctx := schgraph.HyperedgeContext{NetID: "N1", NetName: "N1"}
	hyperedges := DecomposeMST(anchors, ctx, "cluster1")
	if len(hyperedges) != 3 {
		t.Fatalf("expected 3 MST edges for 4 ports, got %d", len(hyperedges))
	}

	var total float64
	for _, he := range hyperedges {
		if len(he.Anchors) != 2 {
			t.Fatalf("each MST hyperedge must be binary, got %d anchors", len(he.Anchors))
		}
		total += he.Anchors[0].Pos.Dist(he.Anchors[1].Pos)
		if he.Context.NetID != "N1" {
			t.Errorf("context not propagated: NetID = %q", he.Context.NetID)
		}
	}
	if total != 300 {
		t.Errorf("total MST weight = %v, want 300", total)
	}
}

// TestDecomposeMSTFormsSpanningTree checks property 6 of §8: for k ports,
// k-1 edges are emitted and union-find collapses to a single component.
func TestDecomposeMSTFormsSpanningTree(t *testing.T) {
	anchors := []schgraph.PortAnchor{
		anchor("a", 0, 0),
		anchor("b", 10, 0),
		anchor("c", 20, 0),
		anchor("d", 30, 0),
		anchor("e", 40, 0),
	}
	ctx := schgraph.HyperedgeContext{NetID: "N1"}
	hyperedges := DecomposeMST(anchors, ctx, "cluster1")
	if len(hyperedges) != len(anchors)-1 {
		t.Fatalf("edges = %d, want %d", len(hyperedges), len(anchors)-1)
	}

	idx := map[string]int{}
	for i, a := range anchors {
		idx[a.PortID] = i
	}
	uf := unionfind.New(len(anchors))
	for _, he := range hyperedges {
		uf.Union(idx[he.Anchors[0].PortID], idx[he.Anchors[1].PortID])
	}
	for i := 1; i < len(anchors); i++ {
		if !uf.Connected(0, i) {
			t.Errorf("MST should connect all ports into one component; %d not connected to 0", i)
		}
	}
}

func TestDecomposeMSTSinglePortYieldsNoEdges(t *testing.T) {
	anchors := []schgraph.PortAnchor{anchor("a", 0, 0)}
	hyperedges := DecomposeMST(anchors, schgraph.HyperedgeContext{}, "c")
	if len(hyperedges) != 0 {
		t.Errorf("expected no edges for a single port, got %d", len(hyperedges))
	}
}
