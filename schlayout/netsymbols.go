package schlayout

import (
	"context"
	"sort"
	"strings"

	"github.com/jonfodi/diode-pcb-sub000/internal/logctx"
	"github.com/jonfodi/diode-pcb-sub000/netlist"
	"github.com/jonfodi/diode-pcb-sub000/schgraph"
	"github.com/jonfodi/diode-pcb-sub000/symbol"
)

// CreateNetSymbolNodes is §4.10 step 3 of the Layout Driver: every net that
// carries a "__symbol_value" property (the ground/power/rail-symbol path,
// §4.3) gets one net-symbol node per numbered instance the caller has
// already positioned, e.g. "design:Board.VCC.1" and "design:Board.VCC.2"
// keys in positions for two VCC symbols dropped onto the same net (§3
// invariant 4's "<root_ref>.<net_name>.<k>" id form). A net with no
// positioned instance observed gets exactly one, numbered "1", so the
// placement pass still has a node to place.
//
// Each node is built from the oracle exactly like a symbol-node instance
// would be (§4.1), except its ports are generic pin anchors rather than
// ones mapped back to a child instance — a net has no children to map pins
// onto.
func CreateNetSymbolNodes(nl *netlist.Netlist, g *schgraph.Graph, positions schgraph.NodePositions, oracle symbol.Oracle, ctx context.Context) {
	for _, net := range nl.NetsInOrder() {
		src, ok := net.SymbolSource()
		if !ok {
			continue
		}
		info, err := oracle.GetSymbolInfo(src)
		if err != nil {
			logctx.Debug(ctx, "schlayout: net-symbol oracle lookup failed, net gets no symbol node", "net_id", net.ID, "error", err)
			continue
		}

		for _, suffix := range observedSymbolInstances(positions, nl.RootRef, net.Name) {
			g.AddNode(buildNetSymbolNode(nl.RootRef, net, suffix, info))
		}
	}
}

// observedSymbolInstances returns the sorted, deduplicated set of numbered
// suffixes found in positions for keys of the form
// "<rootRef>.<netName>.<n>" (§3 invariant 4, §3 lifecycle), defaulting to
// {"1"} when none are present.
func observedSymbolInstances(positions schgraph.NodePositions, rootRef, netName string) []string {
	prefix := rootRef + "." + netName + "."
	var suffixes []string
	for id := range positions {
		if rest, ok := strings.CutPrefix(id, prefix); ok && rest != "" {
			suffixes = append(suffixes, rest)
		}
	}
	if len(suffixes) == 0 {
		return []string{"1"}
	}
	sort.Strings(suffixes)
	return suffixes
}

func buildNetSymbolNode(rootRef string, net *netlist.Net, suffix string, info symbol.Info) *schgraph.Node {
	n := &schgraph.Node{
		ID:     rootRef + "." + net.Name + "." + suffix,
		Kind:   schgraph.NodeNetSymbol,
		NetID:  net.ID,
		Width:  info.BBox.W * symbolScale,
		Height: info.BBox.H * symbolScale,
	}
	n.Labels = append(n.Labels, schgraph.Label{Text: net.Name, Purpose: schgraph.LabelMain})

	for i, pin := range info.PinEndpoints {
		px := pin.X * symbolScale
		py := pin.Y * symbolScale
		side, lx, ly := nearestSide(px, py, n.Width, n.Height)
		n.Ports = append(n.Ports, &schgraph.Port{
			ID:        n.ID + "." + pinPortSuffix(pin, i),
			X:         lx,
			Y:         ly,
			Side:      side,
			NetID:     net.ID,
			PinNumber: pin.Number,
			PinType:   string(pin.Type),
		})
	}
	assignSideIndices(n)
	return n
}
