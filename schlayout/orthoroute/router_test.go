package orthoroute

import (
	"context"
	"testing"

	"github.com/jonfodi/diode-pcb-sub000/schconfig"
	"github.com/jonfodi/diode-pcb-sub000/schgraph"
	"github.com/jonfodi/diode-pcb-sub000/sgeo"
)

func anchor(id, nodeID string, x, y float64, vis schgraph.VisibilityDirection) schgraph.PortAnchor {
	return schgraph.PortAnchor{PortID: id, NodeID: nodeID, Pos: sgeo.NewPoint(x, y), Visibility: vis}
}

func TestRouteDirectEdgeIsOrthogonal(t *testing.T) {
	he := schgraph.Hyperedge{
		ID: "N1.1",
		Anchors: []schgraph.PortAnchor{
			anchor("r1.a", "r1", 0, 0, schgraph.VisE),
			anchor("r2.a", "r2", 200, 0, schgraph.VisW),
		},
		Context: schgraph.HyperedgeContext{NetID: "N1"},
	}
	edges := Route(context.Background(), []schgraph.Hyperedge{he}, nil, schconfig.Default())
	if len(edges) != 1 {
		t.Fatalf("expected 1 routed edge, got %d", len(edges))
	}
	e := edges[0]
	if !sgeo.IsOrthogonalPolyline(e.Polyline) {
		t.Errorf("route is not orthogonal: %v", e.Polyline)
	}
	if len(e.Polyline) < 2 {
		t.Fatalf("polyline too short: %v", e.Polyline)
	}
	if !e.Polyline[0].Equal(sgeo.NewPoint(0, 0)) {
		t.Errorf("route must start exactly at the source anchor, got %v", e.Polyline[0])
	}
	last := e.Polyline[len(e.Polyline)-1]
	if !last.Equal(sgeo.NewPoint(200, 0)) {
		t.Errorf("route must end exactly at the target anchor, got %v", last)
	}
}

func TestRouteAvoidsObstacleBetweenEndpoints(t *testing.T) {
	he := schgraph.Hyperedge{
		ID: "N1.1",
		Anchors: []schgraph.PortAnchor{
			anchor("r1.a", "r1", 0, 50, schgraph.VisE),
			anchor("r2.a", "r2", 200, 50, schgraph.VisW),
		},
		Context: schgraph.HyperedgeContext{NetID: "N1"},
	}
	obstacles := []schgraph.Obstacle{
		{ID: "blocker", Rect: sgeo.Rect{X: 80, Y: 0, W: 40, H: 100}},
	}
	edges := Route(context.Background(), []schgraph.Hyperedge{he}, obstacles, schconfig.Default())
	if len(edges) != 1 {
		t.Fatalf("expected 1 routed edge, got %d", len(edges))
	}
	e := edges[0]
	if !sgeo.IsOrthogonalPolyline(e.Polyline) {
		t.Fatalf("route is not orthogonal: %v", e.Polyline)
	}
	obstacleRect := obstacles[0].Rect
	for _, p := range e.Polyline {
		if obstacleRect.Contains(p) {
			t.Errorf("route point %v falls inside the obstacle", p)
		}
	}
}

func TestRouteDropsNonBinaryHyperedge(t *testing.T) {
	he := schgraph.Hyperedge{
		ID: "bad",
		Anchors: []schgraph.PortAnchor{
			anchor("a", "n1", 0, 0, schgraph.VisAll),
			anchor("b", "n2", 10, 0, schgraph.VisAll),
			anchor("c", "n3", 20, 0, schgraph.VisAll),
		},
	}
	edges := Route(context.Background(), []schgraph.Hyperedge{he}, nil, schconfig.Default())
	if len(edges) != 0 {
		t.Errorf("expected non-binary hyperedge to be dropped, got %d edges", len(edges))
	}
}

func TestRouteEmptyInputReturnsNil(t *testing.T) {
	edges := Route(context.Background(), nil, nil, schconfig.Default())
	if edges != nil {
		t.Errorf("expected nil for empty input, got %v", edges)
	}
}

func TestRoutePreservesHyperedgeContext(t *testing.T) {
	he := schgraph.Hyperedge{
		ID: "N1.cluster1.1",
		Anchors: []schgraph.PortAnchor{
			anchor("r1.a", "r1", 0, 0, schgraph.VisAll),
			anchor("r2.a", "r2", 50, 50, schgraph.VisAll),
		},
		Context: schgraph.HyperedgeContext{NetID: "N1", NetName: "N1", OriginalHyperedgeID: "N1.cluster1"},
	}
	edges := Route(context.Background(), []schgraph.Hyperedge{he}, nil, schconfig.Default())
	if len(edges) != 1 {
		t.Fatalf("expected 1 routed edge, got %d", len(edges))
	}
	if edges[0].OriginalHyperedgeID != "N1.cluster1" {
		t.Errorf("OriginalHyperedgeID not threaded through, got %q", edges[0].OriginalHyperedgeID)
	}
	if edges[0].NetID != "N1" {
		t.Errorf("NetID not threaded through, got %q", edges[0].NetID)
	}
}
