package schlayout

import (
	"sort"
	"strconv"

	"github.com/jonfodi/diode-pcb-sub000/netlist"
	"github.com/jonfodi/diode-pcb-sub000/schconfig"
	"github.com/jonfodi/diode-pcb-sub000/schgraph"
)

// AssignPortNets is the "Port -> net mapping" step of the Connectivity
// Builder (§4.3): for every port in every laid-out node, if the port's id
// appears in net N, set port.NetID = N.
func AssignPortNets(g *schgraph.Graph, nl *netlist.Netlist) {
	portToNet := make(map[string]string)
	for _, net := range nl.NetsInOrder() {
		for _, portID := range net.Ports {
			portToNet[portID] = net.ID
		}
	}
	for _, n := range g.Nodes {
		for _, p := range n.Ports {
			if netID, ok := portToNet[p.ID]; ok {
				p.NetID = netID
			}
		}
	}
}

// BuildConnectivity is the Connectivity Builder (C4, §4.3). It always
// returns a flat list of binary (exactly-2-anchor) hyperedges:
//
//   - when ignoreClusters is true (the placement-time invocation), every
//     net becomes one logical connection: its ports, in netlist order, are
//     chained pairwise into n-1 binary edges — a deterministic topological
//     skeleton the placement backend needs, without the geometric
//     clustering that only matters once real positions exist;
//   - when ignoreClusters is false (the routing-time invocation), nets
//     without a symbol go through spatial clustering (C5) and MST
//     decomposition (C6); nets with a symbol use the nearest-symbol-port
//     rule (§4.3's net-with-symbol path) directly, bypassing clustering
//     entirely regardless of port count.
func BuildConnectivity(g *schgraph.Graph, nl *netlist.Netlist, ignoreClusters bool, cfg schconfig.Config) []schgraph.Hyperedge {
	var out []schgraph.Hyperedge
	for _, net := range nl.NetsInOrder() {
		anchors := netAnchors(g, net.ID)
		if len(anchors) == 0 {
			continue
		}

		if ignoreClusters {
			out = append(out, chainConnect(anchors, net)...)
			continue
		}

		if _, hasSymbol := net.SymbolSource(); hasSymbol {
			out = append(out, nearestSymbolEdges(g, net, anchors)...)
			continue
		}

		clusters := ClusterPorts(anchors, cfg.NetConnectionThreshold)
		for ci, cluster := range clusters {
			hyperedgeID := net.ID + ".cluster" + strconv.Itoa(ci+1)
			ctx := schgraph.HyperedgeContext{NetID: net.ID, NetName: net.Name}
			mst := DecomposeMST(cluster.Anchors, withOriginal(ctx, hyperedgeID), hyperedgeID)
			out = append(out, mst...)
		}
	}
	return out
}

func withOriginal(ctx schgraph.HyperedgeContext, originalID string) schgraph.HyperedgeContext {
	ctx.OriginalHyperedgeID = originalID
	return ctx
}

// netAnchors gathers every port anchor on net, across all non-net-symbol
// nodes, in deterministic netlist order. Net-symbol node ports are excluded
// here because §4.3's net-with-symbol path treats them as the attraction
// targets, not as ordinary connected ports.
func netAnchors(g *schgraph.Graph, netID string) []schgraph.PortAnchor {
	var anchors []schgraph.PortAnchor
	for _, n := range g.Nodes {
		if n.Kind == schgraph.NodeNetSymbol {
			continue
		}
		for _, p := range n.Ports {
			if p.NetID != netID {
				continue
			}
			anchors = append(anchors, schgraph.PortAnchor{
				PortID:     p.ID,
				NodeID:     n.ID,
				Pos:        schgraph.AbsolutePortPosition(n, p),
				Visibility: schgraph.PortVisibilityDirection(n, p),
			})
		}
	}
	return anchors
}

// symbolAnchors gathers every port anchor belonging to a net's symbol
// node(s), in a deterministic order (sorted by node id, then port order).
func symbolAnchors(g *schgraph.Graph, netID string) []schgraph.PortAnchor {
	var symbolNodes []*schgraph.Node
	for _, n := range g.Nodes {
		if n.Kind == schgraph.NodeNetSymbol && n.NetID == netID {
			symbolNodes = append(symbolNodes, n)
		}
	}
	sort.Slice(symbolNodes, func(i, j int) bool { return symbolNodes[i].ID < symbolNodes[j].ID })

	var anchors []schgraph.PortAnchor
	for _, n := range symbolNodes {
		for _, p := range n.Ports {
			anchors = append(anchors, schgraph.PortAnchor{
				PortID:     p.ID,
				NodeID:     n.ID,
				Pos:        schgraph.AbsolutePortPosition(n, p),
				Visibility: schgraph.PortVisibilityDirection(n, p),
			})
		}
	}
	// Symbol nodes with no declared ports of their own still need an
	// attraction point: fall back to the node's center.
	if len(anchors) == 0 {
		for _, n := range symbolNodes {
			anchors = append(anchors, schgraph.PortAnchor{
				PortID:     n.ID,
				NodeID:     n.ID,
				Pos:        n.Rect().Center(),
				Visibility: schgraph.VisAll,
			})
		}
	}
	return anchors
}

// chainConnect builds the placement-time topological skeleton: a simple
// chain through the anchors in order, producing len(anchors)-1 binary
// hyperedges. This is not an MST — the placement backend only needs
// connectivity, not an optimal geometric tree, since no positions beyond
// the caller's fixed ones exist yet.
func chainConnect(anchors []schgraph.PortAnchor, net *netlist.Net) []schgraph.Hyperedge {
	if len(anchors) < 2 {
		return nil
	}
	ctx := schgraph.HyperedgeContext{NetID: net.ID, NetName: net.Name}
	out := make([]schgraph.Hyperedge, 0, len(anchors)-1)
	for i := 0; i < len(anchors)-1; i++ {
		out = append(out, schgraph.Hyperedge{
			ID:      net.ID + ".chain." + strconv.Itoa(i+1),
			Anchors: []schgraph.PortAnchor{anchors[i], anchors[i+1]},
			Context: ctx,
		})
	}
	return out
}

// nearestSymbolEdges implements §4.3's net-with-symbol path: for every port
// on the net (excluding the symbol nodes themselves), find the nearest
// symbol-node port by Euclidean distance and emit a single 2-port
// hyperedge. Multiple symbol nodes are therefore equivalent anchor points
// that each attract their nearest ports (§9's open question: preserved
// verbatim, not simplified to nearest-node).
func nearestSymbolEdges(g *schgraph.Graph, net *netlist.Net, anchors []schgraph.PortAnchor) []schgraph.Hyperedge {
	targets := symbolAnchors(g, net.ID)
	if len(targets) == 0 {
		return nil
	}
	ctx := schgraph.HyperedgeContext{NetID: net.ID, NetName: net.Name}
	var out []schgraph.Hyperedge
	for i, a := range anchors {
		nearest := targets[0]
		best := a.Pos.Dist(nearest.Pos)
		for _, t := range targets[1:] {
			if d := a.Pos.Dist(t.Pos); d < best {
				best = d
				nearest = t
			}
		}
		out = append(out, schgraph.Hyperedge{
			ID:      net.ID + ".sym." + strconv.Itoa(i+1),
			Anchors: []schgraph.PortAnchor{a, nearest},
			Context: ctx,
		})
	}
	return out
}
