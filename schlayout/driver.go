package schlayout

import (
	"context"

	"github.com/jonfodi/diode-pcb-sub000/internal/logctx"
	"github.com/jonfodi/diode-pcb-sub000/internal/textmeasure"
	"github.com/jonfodi/diode-pcb-sub000/netlist"
	"github.com/jonfodi/diode-pcb-sub000/schconfig"
	"github.com/jonfodi/diode-pcb-sub000/schgraph"
	"github.com/jonfodi/diode-pcb-sub000/schlayout/gridplace"
	"github.com/jonfodi/diode-pcb-sub000/schlayout/orthoroute"
	"github.com/jonfodi/diode-pcb-sub000/sgeo"
	"github.com/jonfodi/diode-pcb-sub000/symbol"

	"oss.terrastruct.com/util-go/go2"
)

// Layout is the Layout Driver (C11, §4.10): the single entry point that
// sequences every other component in this package into one `layout()` call.
// It is the only exported function callers are expected to drive the engine
// through; everything else in this package is exposed mainly so the
// component-level tests can probe each pass in isolation.
func Layout(ctx context.Context, nl *netlist.Netlist, positions schgraph.NodePositions, oracle symbol.Oracle, cfg schconfig.Config) (schgraph.LayoutResult, error) {
	root, err := nl.Root()
	if err != nil {
		logctx.Error(ctx, "schlayout: root instance not found", "error", err)
		return schgraph.LayoutResult{}, err
	}

	// Input-malformed (§7): every port a net lists must be a netlist instance.
	for _, net := range nl.NetsInOrder() {
		for _, portID := range net.Ports {
			if _, ok := nl.Instances[portID]; !ok {
				err := &netlist.MalformedError{Kind: "port-not-found", Ref: portID}
				logctx.Error(ctx, "schlayout: net references a missing port", "net_id", net.ID, "error", err)
				return schgraph.LayoutResult{}, err
			}
		}
	}

	// 1-2: Auto-Exploder, then the Nodes Builder over its leaves.
	leaves, err := Explode(nl, root)
	if err != nil {
		logctx.Error(ctx, "schlayout: auto-exploder failed", "error", err)
		return schgraph.LayoutResult{}, err
	}
	g, err := BuildNodes(nl, leaves, positions, oracle, cfg)
	if err != nil {
		logctx.Error(ctx, "schlayout: nodes builder failed", "error", err)
		return schgraph.LayoutResult{}, err
	}

	// 3: net-symbol nodes, one per numbered id observed in positions (§4.10
	// step 3), defaulting to a single "1" instance when the caller never
	// positioned one.
	CreateNetSymbolNodes(nl, g, positions, oracle, ctx)
	for _, n := range g.Nodes {
		if n.Kind == schgraph.NodeNetSymbol {
			applyFixedPosition(n, n.ID, positions)
		}
	}

	// Port-to-net assignment has to happen before any BuildConnectivity call,
	// placement-time or routing-time, since both read port.NetID.
	AssignPortNets(g, nl)

	// 4: Placement Pass, only if some node still lacks a position. Place
	// assigns every node a position, fixed ones included, so step 5 below
	// restores the caller's fixed positions afterward.
	if !g.AllPositioned() {
		skeleton := BuildConnectivity(g, nl, true, cfg)
		gridplace.Place(g, skeleton, cfg)
	}

	// 5: caller positions win over the placement pass for fixed nodes.
	for _, n := range g.Nodes {
		if n.Fixed {
			applyFixedPosition(n, n.ID, positions)
		}
	}

	// 6: grid snapping.
	if cfg.GridSnap.Enabled {
		snapNodes(g, cfg.GridSnap.Size)
	}

	// 7: routing-time connectivity (port.NetID was already assigned above).
	routeEdges := BuildConnectivity(g, nl, false, cfg)
	attachNetReferenceLabels(g, nl, cfg)

	// 8: strip net-reference labels for ports about to get a wire.
	if cfg.HideLabelsOnConnectedPorts {
		planned := plannedConnectedPorts(routeEdges)
		stripNetReferenceLabels(g, planned)
	}

	// 9: obstacles, then route.
	obstacles := buildObstacles(g)
	edges := orthoroute.Route(ctx, routeEdges, obstacles, cfg)
	resolveEdgeOwners(ctx, g, edges)

	// 10: label placement, grouped by original hyperedge id.
	PlaceLabels(edges, nl, cfg)

	// 11: junction finder.
	FindJunctions(edges)

	// 12: restore per-port labels for anything that ended up with no wire.
	if cfg.HideLabelsOnConnectedPorts {
		restoreNetReferenceLabels(g, nl, edges)
	}

	// 13: extract final node positions and return.
	return schgraph.LayoutResult{
		Nodes:         g.Nodes,
		Edges:         edges,
		NodePositions: extractNodePositions(g),
	}, nil
}

// resolveEdgeOwners is the "Unknown-owning-node" check (§7): after routing,
// every edge endpoint's owning node must resolve via g.FindPort. It always
// does by construction (edges carry the NodeID their anchor was built
// with), but the lookup is a cheap downstream contract check, not a
// tautology the caller should have to trust blindly — a port id that
// doesn't resolve logs a warning and falls back to using the port id
// itself as the owner reference, so downstream code still has a string key.
func resolveEdgeOwners(ctx context.Context, g *schgraph.Graph, edges []*schgraph.Edge) {
	for _, e := range edges {
		if n, _ := g.FindPort(e.SourcePort); n != nil {
			e.SourceNode = n.ID
		} else {
			logctx.Warn(ctx, "schlayout: owning node not found for source port", "error", &schgraph.UnknownOwningNodeError{PortID: e.SourcePort})
			e.SourceNode = e.SourcePort
		}
		if n, _ := g.FindPort(e.TargetPort); n != nil {
			e.TargetNode = n.ID
		} else {
			logctx.Warn(ctx, "schlayout: owning node not found for target port", "error", &schgraph.UnknownOwningNodeError{PortID: e.TargetPort})
			e.TargetNode = e.TargetPort
		}
	}
}

func snapNodes(g *schgraph.Graph, size float64) {
	for _, n := range g.Nodes {
		if !n.HasPosition() {
			continue
		}
		tl := n.TopLeft()
		n.SetPosition(sgeo.Snap(tl.X, size), sgeo.Snap(tl.Y, size))
	}
}

// attachNetReferenceLabels gives every port with a resolved net a
// "net-reference" label carrying the net's display name, the baseline
// state before the routing pass decides which of them get struck by a
// wire instead (§4.10 steps 7-8).
func attachNetReferenceLabels(g *schgraph.Graph, nl *netlist.Netlist, cfg schconfig.Config) {
	for _, n := range g.Nodes {
		for _, p := range n.Ports {
			if p.NetID == "" || hasNetReferenceLabel(p) {
				continue
			}
			name := p.NetID
			if net, ok := nl.Nets[p.NetID]; ok && net.Name != "" {
				name = net.Name
			}
			sz := textmeasure.Measure(name)
			p.Labels = append(p.Labels, schgraph.Label{
				Text: name, Width: sz.Width, Height: sz.Height, Purpose: schgraph.LabelNetReference,
			})
		}
	}
}

func hasNetReferenceLabel(p *schgraph.Port) bool {
	for _, l := range p.Labels {
		if l.Purpose == schgraph.LabelNetReference {
			return true
		}
	}
	return false
}

// plannedConnectedPorts is the set of port ids that appear as an anchor of
// any routing-time hyperedge — §4.10 step 8's "ports that will have a
// wire", decided before the router runs and may yet fail for some of them.
func plannedConnectedPorts(hyperedges []schgraph.Hyperedge) map[string]bool {
	out := map[string]bool{}
	for _, he := range hyperedges {
		for _, a := range he.Anchors {
			out[a.PortID] = true
		}
	}
	return out
}

func stripNetReferenceLabels(g *schgraph.Graph, planned map[string]bool) {
	for _, n := range g.Nodes {
		for _, p := range n.Ports {
			if !planned[p.ID] {
				continue
			}
			p.Labels = removeNetReferenceLabel(p.Labels)
		}
	}
}

// restoreNetReferenceLabels re-adds a net-reference label to any port that
// carries a net but ended up with no incident edge after routing (§4.10
// step 12: the router rejected its path, or no cluster ever included it).
func restoreNetReferenceLabels(g *schgraph.Graph, nl *netlist.Netlist, edges []*schgraph.Edge) {
	connected := map[string]bool{}
	for _, e := range edges {
		connected[e.SourcePort] = true
		connected[e.TargetPort] = true
	}
	for _, n := range g.Nodes {
		for _, p := range n.Ports {
			if p.NetID == "" || connected[p.ID] || hasNetReferenceLabel(p) {
				continue
			}
			name := p.NetID
			if net, ok := nl.Nets[p.NetID]; ok && net.Name != "" {
				name = net.Name
			}
			sz := textmeasure.Measure(name)
			p.Labels = append(p.Labels, schgraph.Label{
				Text: name, Width: sz.Width, Height: sz.Height, Purpose: schgraph.LabelNetReference,
			})
		}
	}
}

func removeNetReferenceLabel(labels []schgraph.Label) []schgraph.Label {
	out := labels[:0]
	for _, l := range labels {
		if l.Purpose == schgraph.LabelNetReference {
			continue
		}
		out = append(out, l)
	}
	return out
}

// buildObstacles is §4.10 step 9's obstacle set: one rectangle per node,
// plus one per still-present port-reference label (a label box the router
// must also route around). Rectangles are reported un-inflated; the router
// applies cfg.RouterObstacleBuffer itself (§4.7).
func buildObstacles(g *schgraph.Graph) []schgraph.Obstacle {
	var out []schgraph.Obstacle
	for _, n := range g.Nodes {
		if !n.HasPosition() {
			continue
		}
		out = append(out, schgraph.Obstacle{ID: n.ID, Rect: n.Rect()})
		for _, p := range n.Ports {
			for _, l := range p.Labels {
				if l.Purpose != schgraph.LabelNetReference || l.Width == 0 {
					continue
				}
				abs := schgraph.AbsolutePortPosition(n, p)
				out = append(out, schgraph.Obstacle{
					ID:   p.ID + ".label",
					Rect: labelRectNear(abs, schgraph.PortVisibilityDirection(n, p), l).Inflate(textmeasure.Padding),
				})
			}
		}
	}
	return out
}

// labelRectNear places a label's bounding box just outside the port anchor
// it is attached to, in the direction the port faces.
func labelRectNear(anchor sgeo.Point, dir schgraph.VisibilityDirection, l schgraph.Label) sgeo.Rect {
	const gap = 4.0
	switch dir {
	case schgraph.VisW:
		return sgeo.Rect{X: anchor.X - gap - l.Width, Y: anchor.Y - l.Height/2, W: l.Width, H: l.Height}
	case schgraph.VisN:
		return sgeo.Rect{X: anchor.X - l.Width/2, Y: anchor.Y - gap - l.Height, W: l.Width, H: l.Height}
	case schgraph.VisS:
		return sgeo.Rect{X: anchor.X - l.Width/2, Y: anchor.Y + gap, W: l.Width, H: l.Height}
	default:
		return sgeo.Rect{X: anchor.X + gap, Y: anchor.Y - l.Height/2, W: l.Width, H: l.Height}
	}
}

func extractNodePositions(g *schgraph.Graph) schgraph.NodePositions {
	out := make(schgraph.NodePositions, len(g.Nodes))
	for _, n := range g.Nodes {
		if !n.HasPosition() {
			continue
		}
		out[n.ID] = schgraph.NodePositionEntry{
			X: *n.X, Y: *n.Y,
			Width:    go2.Pointer(n.Width),
			Height:   go2.Pointer(n.Height),
			Rotation: go2.Pointer(n.Rotation),
		}
	}
	return out
}
