package schlayout

import (
	"testing"

	"github.com/jonfodi/diode-pcb-sub000/netlist"
	"github.com/jonfodi/diode-pcb-sub000/schconfig"
	"github.com/jonfodi/diode-pcb-sub000/schgraph"
)

func portNode(id string, kind schgraph.NodeKind, x, y float64, portIDs ...string) *schgraph.Node {
	n := &schgraph.Node{ID: id, Kind: kind, Width: 10, Height: 10}
	n.SetPosition(x, y)
	for i, pid := range portIDs {
		n.Ports = append(n.Ports, &schgraph.Port{ID: pid, X: 0, Y: float64(i), Side: schgraph.SideW, Index: i})
	}
	return n
}

func netlistWithNets(nets ...*netlist.Net) *netlist.Netlist {
	nl := &netlist.Netlist{
		Instances: map[string]*netlist.Instance{},
		Nets:      map[string]*netlist.Net{},
	}
	for _, n := range nets {
		nl.Nets[n.ID] = n
		nl.NetOrder = append(nl.NetOrder, n.ID)
	}
	return nl
}

// TestBuildConnectivityChainsForPlacement exercises the ignoreClusters=true
// invocation: a 3-port net should become a 2-edge chain, not an MST.
func TestBuildConnectivityChainsForPlacement(t *testing.T) {
	g := schgraph.NewGraph()
	g.AddNode(portNode("r1", schgraph.NodeComponent, 0, 0, "r1.a"))
	g.AddNode(portNode("r2", schgraph.NodeComponent, 100, 0, "r2.a"))
	g.AddNode(portNode("r3", schgraph.NodeComponent, 200, 0, "r3.a"))

	net := &netlist.Net{ID: "N1", Name: "N1", Ports: []string{"r1.a", "r2.a", "r3.a"}}
	nl := netlistWithNets(net)
	AssignPortNets(g, nl)

	edges := BuildConnectivity(g, nl, true, schconfig.Default())
	if len(edges) != 2 {
		t.Fatalf("expected 2 chained edges for 3 ports, got %d", len(edges))
	}
	for _, e := range edges {
		if len(e.Anchors) != 2 {
			t.Errorf("chain edge must be binary, got %d anchors", len(e.Anchors))
		}
	}
}

// TestBuildConnectivityWithoutSymbolUsesMST exercises the routing-time,
// net-without-symbol path: clustering followed by MST decomposition.
func TestBuildConnectivityWithoutSymbolUsesMST(t *testing.T) {
	g := schgraph.NewGraph()
	g.AddNode(portNode("r1", schgraph.NodeComponent, 0, 0, "r1.a"))
	g.AddNode(portNode("r2", schgraph.NodeComponent, 100, 0, "r2.a"))
	g.AddNode(portNode("r3", schgraph.NodeComponent, 0, 100, "r3.a"))
	g.AddNode(portNode("r4", schgraph.NodeComponent, 100, 100, "r4.a"))

	net := &netlist.Net{ID: "N1", Name: "N1", Ports: []string{"r1.a", "r2.a", "r3.a", "r4.a"}}
	nl := netlistWithNets(net)
	AssignPortNets(g, nl)

	cfg := schconfig.Default()
	edges := BuildConnectivity(g, nl, false, cfg)
	if len(edges) != 3 {
		t.Fatalf("expected a 3-edge MST over 4 ports, got %d", len(edges))
	}
	for _, e := range edges {
		if e.Context.OriginalHyperedgeID == "" {
			t.Errorf("MST edge should carry an originalHyperedgeId, got empty")
		}
	}
}

// TestBuildConnectivityWithSymbolAttractsNearestPin mirrors scenario S5: a
// net carrying a symbol attracts each component port to its nearest symbol
// pin, rather than collapsing to a single nearest-node edge.
func TestBuildConnectivityWithSymbolAttractsNearestPin(t *testing.T) {
	g := schgraph.NewGraph()
	sym := portNode("GND.symbol", schgraph.NodeNetSymbol, 500, 500, "GND.symbol.pin1", "GND.symbol.pin2")
	sym.NetID = "GND"
	g.AddNode(sym)
	g.AddNode(portNode("r1", schgraph.NodeComponent, 0, 0, "r1.gnd"))
	g.AddNode(portNode("r2", schgraph.NodeComponent, 0, 1000, "r2.gnd"))

	net := &netlist.Net{
		ID:         "GND",
		Name:       "GND",
		Ports:      []string{"r1.gnd", "r2.gnd"},
		Properties: map[string]netlist.AttributeValue{"__symbol_value": netlist.StringAttr("gnd.kicad_sym")},
	}
	nl := netlistWithNets(net)
	AssignPortNets(g, nl)

	edges := BuildConnectivity(g, nl, false, schconfig.Default())
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, one per component port, got %d", len(edges))
	}
	for _, e := range edges {
		if e.Anchors[1].NodeID != "GND.symbol" {
			t.Errorf("second anchor should be on the net-symbol node, got %q", e.Anchors[1].NodeID)
		}
	}
}

func TestAssignPortNetsLeavesUnconnectedPortsEmpty(t *testing.T) {
	g := schgraph.NewGraph()
	g.AddNode(portNode("r1", schgraph.NodeComponent, 0, 0, "r1.a", "r1.b"))
	net := &netlist.Net{ID: "N1", Name: "N1", Ports: []string{"r1.a"}}
	nl := netlistWithNets(net)
	AssignPortNets(g, nl)

	n := g.NodeByID["r1"]
	if n.PortByID("r1.a").NetID != "N1" {
		t.Errorf("r1.a should be assigned to N1")
	}
	if n.PortByID("r1.b").NetID != "" {
		t.Errorf("r1.b should remain unassigned, got %q", n.PortByID("r1.b").NetID)
	}
}
