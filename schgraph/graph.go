// Package schgraph is the in-memory graph the layout engine builds, passes
// between components, and ultimately emits (§3). It carries no behavior of
// its own beyond small geometric helpers on Node/Port — all six algorithms
// in §4 operate on these types but live in package schlayout.
package schgraph

import (
	"github.com/jonfodi/diode-pcb-sub000/sgeo"
	"oss.terrastruct.com/util-go/go2"
)

// Side is a compass side of a node's rectangle.
type Side string

const (
	SideN   Side = "N"
	SideS   Side = "S"
	SideE   Side = "E"
	SideW   Side = "W"
	SideAll Side = "ALL" // ports without an assigned side report ALL (§4.3)
)

// RotateClockwise rotates a side by steps of 90 degrees clockwise, used both
// for a rotated node's port visibility direction (§4.3) and, conceptually,
// for its absolute port position (handled separately in rotation.go because
// it needs the node's geometry, not just the side label).
func (s Side) RotateClockwise(steps int) Side {
	order := []Side{SideN, SideE, SideS, SideW}
	idx := -1
	for i, o := range order {
		if o == s {
			idx = i
			break
		}
	}
	if idx == -1 {
		return s // SideAll, or anything not in the compass rotates to itself
	}
	steps = ((steps % 4) + 4) % 4
	return order[(idx+steps)%4]
}

// NodeKind discriminates the six node kinds (§3).
type NodeKind string

const (
	NodeModule      NodeKind = "module"
	NodeComponent   NodeKind = "component"
	NodeSymbol      NodeKind = "symbol"
	NodeNetJunction NodeKind = "net_junction"
	NodeNetSymbol   NodeKind = "net_symbol"
	NodeMeta        NodeKind = "meta"
)

// LabelPurpose tags a label's role (§3), used by the router to decide which
// rectangles are obstacle keep-outs and by §4.10 step 8 to find
// "net-reference" labels to strip/restore.
type LabelPurpose string

const (
	LabelMain               LabelPurpose = "main"
	LabelReferenceDesignator LabelPurpose = "reference-designator"
	LabelMPN                LabelPurpose = "mpn"
	LabelPortName           LabelPurpose = "port-name"
	LabelNetReference       LabelPurpose = "net-reference"
	LabelNetNameOnWire      LabelPurpose = "net-name-on-wire"
	LabelFootprint          LabelPurpose = "footprint"
	LabelValue              LabelPurpose = "value"
)

// Label is a piece of text anchored to a node or port (§3).
type Label struct {
	Text      string
	X, Y      float64 // local offset; zero value means "not yet positioned"
	Width     float64
	Height    float64
	Alignment string
	Purpose   LabelPurpose
}

// Port is a named electrical anchor on a node's rectangle (§3).
type Port struct {
	ID     string
	X, Y   float64 // local coordinates on the owning node's unrotated rectangle
	Side   Side
	Labels []Label
	NetID  string // set by the Connectivity Builder; empty until then

	// Index is this port's position within its Side, assigned by the Nodes
	// Builder (§4.1) and honored as a fixed order constraint by the
	// Placement Pass (§4.6).
	Index int

	// PinNumber/PinType are populated only for symbol-node ports (§4.1).
	PinNumber string
	PinType   string
}

// Node is one placed element of the schematic (§3).
type Node struct {
	ID       string
	Kind     NodeKind
	Width    float64
	Height   float64
	X, Y     *float64 // nil until fixed by caller or resolved by placement
	Rotation int       // degrees clockwise, one of {0, 90, 180, 270}
	NetID    string    // net-symbol nodes only
	Ports    []*Port
	Labels   []Label

	// Fixed marks that the caller supplied a position for this node. The
	// Placement Pass positions every node, fixed ones included; the Layout
	// Driver then re-applies the caller's position to every fixed node
	// (§4.1, §4.6).
	Fixed bool
}

// HasPosition reports whether the node has a resolved absolute position.
func (n *Node) HasPosition() bool {
	return n.X != nil && n.Y != nil
}

// TopLeft returns the node's absolute top-left corner, or the zero point if
// unresolved.
func (n *Node) TopLeft() sgeo.Point {
	if !n.HasPosition() {
		return sgeo.Point{}
	}
	return sgeo.Point{X: *n.X, Y: *n.Y}
}

// Rect returns the node's axis-aligned rectangle. Per §4.10's rotation
// note, the rectangle itself is never rotated in coordinate space — only
// ports and labels are.
func (n *Node) Rect() sgeo.Rect {
	tl := n.TopLeft()
	return sgeo.Rect{X: tl.X, Y: tl.Y, W: n.Width, H: n.Height}
}

// SetPosition fixes the node's absolute position.
func (n *Node) SetPosition(x, y float64) {
	n.X = go2.Pointer(x)
	n.Y = go2.Pointer(y)
}

// PortByID finds a port by id.
func (n *Node) PortByID(id string) *Port {
	for _, p := range n.Ports {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// VisibilityDirection is the compass direction a wire is constrained to
// leave a port anchor in (§3, §4.3).
type VisibilityDirection string

const (
	VisN   VisibilityDirection = "N"
	VisS   VisibilityDirection = "S"
	VisE   VisibilityDirection = "E"
	VisW   VisibilityDirection = "W"
	VisAll VisibilityDirection = "ALL"
)

// PortAnchor is a port's resolved position for routing/clustering purposes
// (§3's Hyperedge entity).
type PortAnchor struct {
	PortID      string
	NodeID      string
	Pos         sgeo.Point
	Visibility  VisibilityDirection
}

// HyperedgeContext carries the opaque fields a hyperedge needs downstream
// (§3): which net it belongs to, and — for MST children — which cluster it
// came from, used by the Label Placer's grouping (§4.10 step 10, §9).
type HyperedgeContext struct {
	NetID               string
	NetName             string
	OriginalHyperedgeID string // absent (empty) unless this is an MST child
}

// Hyperedge is a transient set of port anchors to be connected by one or
// more wires (§3).
type Hyperedge struct {
	ID      string
	Anchors []PortAnchor
	Context HyperedgeContext
}

// Obstacle is an axis-aligned keep-out rectangle for the router (§3).
type Obstacle struct {
	ID   string
	Rect sgeo.Rect
}

// Edge is a derived, output connection between two ports (§3).
type Edge struct {
	ID         string
	NetID      string
	SourcePort string
	TargetPort string
	SourceNode string
	TargetNode string
	Polyline   []sgeo.Point
	Junctions  []sgeo.Point
	Label      *Label

	// OriginalHyperedgeID threads back to the pre-MST hyperedge id so the
	// Label Placer can group sibling MST edges (§4.10 step 10). Falls back
	// to NetID when absent, per the design notes' net-with-symbol caveat (§9).
	OriginalHyperedgeID string
}

// LabelGroupKey returns the key the Label Placer groups edges by: the
// original hyperedge id when present, otherwise the net id (§9).
func (e *Edge) LabelGroupKey() string {
	if e.OriginalHyperedgeID != "" {
		return e.OriginalHyperedgeID
	}
	return e.NetID
}

// NodePositionEntry is one entry of the NodePositions contract (§3, §6).
type NodePositionEntry struct {
	X, Y     float64
	Width    *float64
	Height   *float64
	Rotation *int
}

// NodePositions is the external input/output contract: a mapping from
// node-id to a position entry (§3, §6). It is owned by the caller; the
// engine treats it as a value it consumes and a value it emits, never a
// reference it mutates in place.
type NodePositions map[string]NodePositionEntry

// Clone returns a deep-enough copy of p suitable for the engine to hand
// back to a caller without aliasing the caller's own map (§3's lifecycle
// rule: "it never mutates the caller's copy").
func (p NodePositions) Clone() NodePositions {
	out := make(NodePositions, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Graph is the working in-memory graph threaded through the pipeline.
type Graph struct {
	Nodes    []*Node
	NodeByID map[string]*Node
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{NodeByID: make(map[string]*Node)}
}

// AddNode appends n to the graph and indexes it by id.
func (g *Graph) AddNode(n *Node) {
	g.Nodes = append(g.Nodes, n)
	g.NodeByID[n.ID] = n
}

// FindPort searches every node for a port with the given id.
func (g *Graph) FindPort(portID string) (*Node, *Port) {
	for _, n := range g.Nodes {
		if p := n.PortByID(portID); p != nil {
			return n, p
		}
	}
	return nil, nil
}

// AllPositioned reports whether every node in the graph has a resolved
// position — the gate the Layout Driver uses to decide whether the
// Placement Pass runs at all (§4.6).
func (g *Graph) AllPositioned() bool {
	for _, n := range g.Nodes {
		if !n.HasPosition() {
			return false
		}
	}
	return true
}

// LayoutResult is the engine's output (§3, §6).
type LayoutResult struct {
	Nodes         []*Node
	Edges         []*Edge
	NodePositions NodePositions
}
