package schlayout

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonfodi/diode-pcb-sub000/internal/textmeasure"
	"github.com/jonfodi/diode-pcb-sub000/netlist"
	"github.com/jonfodi/diode-pcb-sub000/schconfig"
	"github.com/jonfodi/diode-pcb-sub000/schgraph"
	"github.com/jonfodi/diode-pcb-sub000/symbol"
)

// symbolScale is the fixed scale applied to a symbol oracle's bounding box
// (§4.1: "set node size to b.w * s x b.h * s with a fixed scale s = 10").
const symbolScale = 10.0

// BuildNodes is the Nodes Builder (C2, §4.1). It builds one node per leaf
// instance in leaves (as produced by Explode), sizing and porting each
// according to whether the instance carries a symbol source.
func BuildNodes(nl *netlist.Netlist, leaves []*netlist.Instance, positions schgraph.NodePositions, oracle symbol.Oracle, cfg schconfig.Config) (*schgraph.Graph, error) {
	g := schgraph.NewGraph()
	for _, inst := range leaves {
		n, err := buildOneNode(nl, inst, positions, oracle, cfg)
		if err != nil {
			return nil, err
		}
		g.AddNode(n)
	}
	return g, nil
}

func buildOneNode(nl *netlist.Netlist, inst *netlist.Instance, positions schgraph.NodePositions, oracle symbol.Oracle, cfg schconfig.Config) (*schgraph.Node, error) {
	var n *schgraph.Node
	if src, ok := inst.SymbolSource(); ok {
		built, err := buildSymbolNode(nl, inst, src, oracle, cfg)
		if err != nil {
			// Symbol-oracle-failure (§7): fall back to a plain module node
			// with default sizing; the layout call still succeeds. The
			// failure is not logged: no context or logger reaches this
			// builder.
			built = buildModuleNode(nl, inst, cfg)
		}
		n = built
	} else {
		n = buildModuleNode(nl, inst, cfg)
	}

	applyFixedPosition(n, inst.Ref, positions)
	return n, nil
}

// applyFixedPosition implements §4.1's "fixed-position handling": if the
// caller supplied a position for this node's id, record it and mark the
// node fixed, so the Layout Driver restores it after the Placement Pass.
func applyFixedPosition(n *schgraph.Node, id string, positions schgraph.NodePositions) {
	entry, ok := positions[id]
	if !ok {
		return
	}
	n.SetPosition(entry.X, entry.Y)
	if entry.Width != nil {
		n.Width = *entry.Width
	}
	if entry.Height != nil {
		n.Height = *entry.Height
	}
	if entry.Rotation != nil {
		n.Rotation = normalizeRotation(*entry.Rotation)
	}
	n.Fixed = true
}

func normalizeRotation(deg int) int {
	return ((deg % 360) + 360) % 360
}

// buildSymbolNode builds a symbol node (§4.1): queries the oracle for
// bounding box and pin endpoints, assigns each pin to the nearest side, and
// maps pin names back to child instances.
func buildSymbolNode(nl *netlist.Netlist, inst *netlist.Instance, symbolSource string, oracle symbol.Oracle, cfg schconfig.Config) (*schgraph.Node, error) {
	info, err := oracle.GetSymbolInfo(symbolSource)
	if err != nil {
		return nil, fmt.Errorf("symbol oracle failed for %q: %w", symbolSource, err)
	}

	n := &schgraph.Node{
		ID:     inst.Ref,
		Kind:   schgraph.NodeSymbol,
		Width:  info.BBox.W * symbolScale,
		Height: info.BBox.H * symbolScale,
	}
	n.Labels = append(n.Labels, mainLabel(inst))
	if inst.ReferenceDesignator != "" {
		n.Labels = append(n.Labels, schgraph.Label{
			Text:    inst.ReferenceDesignator,
			Purpose: schgraph.LabelReferenceDesignator,
		})
	}

	for i, pin := range info.PinEndpoints {
		px := pin.X * symbolScale
		py := pin.Y * symbolScale
		side, lx, ly := nearestSide(px, py, n.Width, n.Height)
		port := &schgraph.Port{
			ID:        inst.Ref + "." + pinPortSuffix(pin, i),
			X:         lx,
			Y:         ly,
			Side:      side,
			PinNumber: pin.Number,
			PinType:   string(pin.Type),
		}
		childRef, ok := mapPinToChild(nl, inst, pin)
		if ok {
			port.ID = childRef
		}
		n.Ports = append(n.Ports, port)
	}
	assignSideIndices(n)
	return n, nil
}

// pinPortSuffix synthesizes a fallback port id suffix when no child
// instance maps to this pin (unusual, but keeps ids unique and stable).
func pinPortSuffix(pin symbol.PinEndpoint, idx int) string {
	if pin.Name != "" && pin.Name != "~" {
		return pin.Name
	}
	if pin.Number != "" {
		return "P" + pin.Number
	}
	return fmt.Sprintf("pin%d", idx)
}

// nearestSide assigns a pin at local (x,y) on a w x h box to the side N/S/E/W
// whose distance to the pin is smallest, snapping the local coordinate to
// that edge while preserving the other coordinate (§4.1).
func nearestSide(x, y, w, h float64) (schgraph.Side, float64, float64) {
	distN := y
	distS := h - y
	distE := w - x
	distW := x

	min := distN
	side := schgraph.SideN
	if distS < min {
		min = distS
		side = schgraph.SideS
	}
	if distE < min {
		min = distE
		side = schgraph.SideE
	}
	if distW < min {
		side = schgraph.SideW
	}

	switch side {
	case schgraph.SideN:
		return side, x, 0
	case schgraph.SideS:
		return side, x, h
	case schgraph.SideE:
		return side, w, y
	default:
		return side, 0, y
	}
}

// mapPinToChild maps a pin back to its owning child instance, trying in
// order: exact name match, case-insensitive match, pin_number attribute
// match, and for unnamed pins, P<number>/<number> (§4.1).
func mapPinToChild(nl *netlist.Netlist, inst *netlist.Instance, pin symbol.PinEndpoint) (string, bool) {
	if c, ok := inst.ChildByName(pin.Name); ok {
		return c.Ref, true
	}
	for _, c := range inst.Children {
		if strings.EqualFold(c.Name, pin.Name) {
			return c.Ref, true
		}
	}
	for _, c := range inst.Children {
		child, err := nl.Instance(c.Ref)
		if err != nil {
			continue
		}
		if v, ok := child.Attributes["pin_number"]; ok {
			if s, ok := v.AsString(); ok && s == pin.Number {
				return c.Ref, true
			}
		}
	}
	if pin.Name == "~" || pin.Name == "" {
		for _, cand := range []string{"P" + pin.Number, pin.Number} {
			if c, ok := inst.ChildByName(cand); ok {
				return c.Ref, true
			}
		}
	}
	return "", false
}

// buildModuleNode builds a module node (§4.1): size is the max of the
// configured minimum and the space required by labels and ports; ports come
// from port/interface children, split across W/E by natural sort order.
func buildModuleNode(nl *netlist.Netlist, inst *netlist.Instance, cfg schconfig.Config) *schgraph.Node {
	n := &schgraph.Node{
		ID:   inst.Ref,
		Kind: schgraph.NodeModule,
	}
	if inst.Kind == netlist.KindComponent {
		n.Kind = schgraph.NodeComponent
	}

	n.Labels = append(n.Labels, mainLabel(inst))
	if inst.ReferenceDesignator != "" {
		n.Labels = append(n.Labels, schgraph.Label{
			Text:    inst.ReferenceDesignator,
			Purpose: schgraph.LabelReferenceDesignator,
		})
	}
	if v, ok := inst.Attributes["mpn"]; ok {
		if s, ok := v.AsString(); ok {
			n.Labels = append(n.Labels, schgraph.Label{Text: s, Purpose: schgraph.LabelMPN})
		}
	}
	if v, ok := inst.Attributes["value"]; ok {
		if s, ok := v.AsString(); ok && cfg.ShowComponentValues {
			n.Labels = append(n.Labels, schgraph.Label{Text: s, Purpose: schgraph.LabelValue})
		}
	}
	if v, ok := inst.Attributes["footprint"]; ok {
		if s, ok := v.AsString(); ok && cfg.ShowFootprints {
			n.Labels = append(n.Labels, schgraph.Label{Text: s, Purpose: schgraph.LabelFootprint})
		}
	}
	for i := range n.Labels {
		sz := textmeasure.Measure(n.Labels[i].Text)
		n.Labels[i].Width = sz.Width
		n.Labels[i].Height = sz.Height
	}

	portNames := collectPortNames(nl, inst)
	buildModulePorts(n, portNames, cfg)

	minSize := cfg.NodeSizeFor(string(inst.Kind))
	n.Width = minSize.Width
	n.Height = minSize.Height
	for _, l := range n.Labels {
		if l.Width > n.Width {
			n.Width = l.Width
		}
	}
	requiredHeight := requiredPortHeight(n) + labelsHeight(n.Labels)
	if requiredHeight > n.Height {
		n.Height = requiredHeight
	}
	FinalizePortPositions(n)
	return n
}

func mainLabel(inst *netlist.Instance) schgraph.Label {
	name := inst.Ref
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	sz := textmeasure.Measure(name)
	return schgraph.Label{Text: name, Purpose: schgraph.LabelMain, Width: sz.Width, Height: sz.Height}
}

// portNameEntry is one port/interface-derived port label, pre-natural-sort.
type portNameEntry struct {
	label string
	ref   string
}

// collectPortNames gathers one entry per port child (labeled with the child
// name) and one per interface sub-port (labeled "<interface>.<sub_port>"),
// with no aggregation (§4.1).
func collectPortNames(nl *netlist.Netlist, inst *netlist.Instance) []portNameEntry {
	var entries []portNameEntry
	for _, c := range inst.Children {
		child, err := nl.Instance(c.Ref)
		if err != nil {
			continue
		}
		switch child.Kind {
		case netlist.KindPort:
			entries = append(entries, portNameEntry{label: c.Name, ref: c.Ref})
		case netlist.KindInterface:
			for _, sub := range child.Children {
				subInst, err := nl.Instance(sub.Ref)
				if err != nil || subInst.Kind != netlist.KindPort {
					continue
				}
				entries = append(entries, portNameEntry{
					label: c.Name + "." + sub.Name,
					ref:   sub.Ref,
				})
			}
		}
	}
	return entries
}

// naturalSort sorts port labels the way a human reads mixed alpha/numeric
// identifiers (e.g. "P2" before "P10"), the deterministic tie-break §4.1
// calls for before the W/E split.
func naturalSort(entries []portNameEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return naturalLess(entries[i].label, entries[j].label)
	})
}

func naturalLess(a, b string) bool {
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		ac, bc := a[ai], b[bi]
		if isDigit(ac) && isDigit(bc) {
			as, ae := ai, ai
			for ae < len(a) && isDigit(a[ae]) {
				ae++
			}
			bs, be := bi, bi
			for be < len(b) && isDigit(b[be]) {
				be++
			}
			an, _ := strconv.Atoi(a[as:ae])
			bn, _ := strconv.Atoi(b[bs:be])
			if an != bn {
				return an < bn
			}
			ai, bi = ae, be
			continue
		}
		if ac != bc {
			return ac < bc
		}
		ai++
		bi++
	}
	return len(a)-ai < len(b)-bi
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// buildModulePorts assigns initial sides by natural-sorting port names and
// splitting the list in half: first half to W, second half to E (§4.1).
// Port index within a side follows the sort order.
func buildModulePorts(n *schgraph.Node, entries []portNameEntry, cfg schconfig.Config) {
	sorted := make([]portNameEntry, len(entries))
	copy(sorted, entries)
	naturalSort(sorted)

	half := (len(sorted) + 1) / 2
	for i, e := range sorted {
		side := schgraph.SideW
		if i >= half {
			side = schgraph.SideE
		}
		label := schgraph.Label{Text: e.label}
		if cfg.ShowPortLabels {
			sz := textmeasure.Measure(e.label)
			label.Width = sz.Width
			label.Height = sz.Height
			label.Purpose = schgraph.LabelPortName
		}
		port := &schgraph.Port{
			ID:     e.ref,
			Side:   side,
			Labels: []schgraph.Label{label},
		}
		n.Ports = append(n.Ports, port)
	}
	assignSideIndices(n)
}

// assignSideIndices assigns each port's Index within its Side in current
// slice order (§4.1: "port indices within a side follow the sort order").
// For module nodes, local X/Y positions are filled in later by
// FinalizePortPositions, once the node's final Width/Height are known;
// symbol ports keep the X/Y set from their pin position by nearestSide.
func assignSideIndices(n *schgraph.Node) {
	counts := map[schgraph.Side]int{}
	for _, p := range n.Ports {
		p.Index = counts[p.Side]
		counts[p.Side]++
	}
}

func requiredPortHeight(n *schgraph.Node) float64 {
	counts := map[schgraph.Side]int{}
	for _, p := range n.Ports {
		counts[p.Side]++
	}
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	const portPitch = 20.0
	return float64(maxCount+1) * portPitch
}

func labelsHeight(labels []schgraph.Label) float64 {
	var h float64
	for _, l := range labels {
		if l.Purpose == schgraph.LabelMain || l.Purpose == schgraph.LabelReferenceDesignator || l.Purpose == schgraph.LabelValue {
			h += l.Height
		}
	}
	return h
}

// FinalizePortPositions evenly distributes each side's ports along the
// node's resolved width/height. buildModuleNode calls it once the node's
// dimensions are final, since the W/E side positions depend on the final
// Height. Symbol and net-symbol nodes do not use it: their ports stay at
// the oracle's pin positions.
func FinalizePortPositions(n *schgraph.Node) {
	bySide := map[schgraph.Side][]*schgraph.Port{}
	for _, p := range n.Ports {
		if p.Side == schgraph.SideW || p.Side == schgraph.SideE || p.Side == schgraph.SideN || p.Side == schgraph.SideS {
			bySide[p.Side] = append(bySide[p.Side], p)
		}
	}
	for side, ports := range bySide {
		total := len(ports)
		for i, p := range ports {
			frac := (float64(i) + 1) / (float64(total) + 1)
			switch side {
			case schgraph.SideW:
				p.X, p.Y = 0, frac*n.Height
			case schgraph.SideE:
				p.X, p.Y = n.Width, frac*n.Height
			case schgraph.SideN:
				p.X, p.Y = frac*n.Width, 0
			case schgraph.SideS:
				p.X, p.Y = frac*n.Width, n.Height
			}
		}
	}
}
