// Package netlist is the read-only input contract of the schematic layout
// engine (§6): a hierarchical netlist of instances and nets. It owns no
// layout behavior — it is the arena the rest of the engine indexes into by
// reference, per the "cyclic references" design note (§9): instances are
// stored once, in a flat map keyed by instance-reference, and every
// cross-reference (child, net port, type) is a string key into that map
// rather than an owning pointer.
package netlist

import "fmt"

// InstanceKind discriminates the four kinds of netlist instance (§3).
type InstanceKind string

const (
	KindModule    InstanceKind = "module"
	KindComponent InstanceKind = "component"
	KindPort      InstanceKind = "port"
	KindInterface InstanceKind = "interface"
)

// NetKind discriminates electrical intent. The core layout engine treats
// all three uniformly (§6) — kind is carried through for the rendering
// layer, which is out of scope here.
type NetKind string

const (
	NetNormal NetKind = "normal"
	NetPower  NetKind = "power"
	NetGround NetKind = "ground"
)

// AttributeValue is the tagged-sum replacement (§9) for the source's
// runtime-typed attribute values. Exactly one field is set; the as* methods
// are the typed accessors the design notes call for.
type AttributeValue struct {
	str     *string
	num     *float64
	boolean *bool
	phys    *Physical
}

// Physical is a dimensioned numeric attribute (e.g. a resistance value with
// a unit), carried opaquely by the layout engine.
type Physical struct {
	Value float64
	Unit  string
}

func StringAttr(s string) AttributeValue      { return AttributeValue{str: &s} }
func NumberAttr(n float64) AttributeValue     { return AttributeValue{num: &n} }
func BoolAttr(b bool) AttributeValue          { return AttributeValue{boolean: &b} }
func PhysicalAttr(p Physical) AttributeValue  { return AttributeValue{phys: &p} }

// AsString returns the string value, if this attribute holds one.
func (a AttributeValue) AsString() (string, bool) {
	if a.str == nil {
		return "", false
	}
	return *a.str, true
}

// AsNumber returns the numeric value, if this attribute holds one.
func (a AttributeValue) AsNumber() (float64, bool) {
	if a.num == nil {
		return 0, false
	}
	return *a.num, true
}

// AsBool returns the boolean value, if this attribute holds one.
func (a AttributeValue) AsBool() (bool, bool) {
	if a.boolean == nil {
		return false, false
	}
	return *a.boolean, true
}

// AsPhysical returns the physical value, if this attribute holds one.
func (a AttributeValue) AsPhysical() (Physical, bool) {
	if a.phys == nil {
		return Physical{}, false
	}
	return *a.phys, true
}

// TypeRef identifies the module definition an instance was instantiated
// from, used only for diagnostics in this core (module resolution itself
// happens upstream, before the netlist reaches the engine).
type TypeRef struct {
	SourcePath string
	ModuleName string
}

// Child is one entry in an instance's ordered children mapping. Order
// matters: the Auto-Exploder and the Nodes Builder's natural-sort-then-
// split port placement both depend on deterministic iteration order, so
// children are a slice of pairs rather than a Go map.
type Child struct {
	Name string
	Ref  string // instance-reference, indexes Netlist.Instances
}

// Instance is one node of the netlist hierarchy (§3).
type Instance struct {
	Ref                  string
	Kind                 InstanceKind
	Attributes           map[string]AttributeValue
	Children             []Child
	ReferenceDesignator  string
	TypeRef              *TypeRef
}

// SymbolSource returns the KiCad symbol source carried in the
// "__symbol_value" attribute, if present (§4.1's symbol-node test).
func (i *Instance) SymbolSource() (string, bool) {
	v, ok := i.Attributes["__symbol_value"]
	if !ok {
		return "", false
	}
	return v.AsString()
}

// ChildByName performs the exact-match lookup used by §4.1's pin-to-child
// mapping before the case-insensitive and pin-number fallbacks.
func (i *Instance) ChildByName(name string) (Child, bool) {
	for _, c := range i.Children {
		if c.Name == name {
			return c, true
		}
	}
	return Child{}, false
}

// Net is a named electrical connection between leaf ports (§3).
type Net struct {
	ID         string
	Name       string
	Ports      []string // leaf port-ids, in netlist iteration order
	Properties map[string]AttributeValue
	Kind       NetKind
}

// SymbolSource returns the net's "__symbol_value" property, if the net
// carries one (§4.3's net-with-symbol path test).
func (n *Net) SymbolSource() (string, bool) {
	v, ok := n.Properties["__symbol_value"]
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Netlist is the full input contract (§6).
type Netlist struct {
	Instances map[string]*Instance
	Nets      map[string]*Net
	// NetOrder preserves the deterministic iteration order nets were
	// declared in — map iteration in Go is randomized, and the engine's
	// determinism invariant (§8, property 1) requires stable ordering
	// wherever output order is observable.
	NetOrder   []string
	RootRef    string
}

// Instance looks up an instance by reference, returning an
// Input-malformed-flavored error (§7) when missing.
func (n *Netlist) Instance(ref string) (*Instance, error) {
	inst, ok := n.Instances[ref]
	if !ok {
		return nil, &MalformedError{Kind: "instance-not-found", Ref: ref}
	}
	return inst, nil
}

// Root returns the design root instance.
func (n *Netlist) Root() (*Instance, error) {
	return n.Instance(n.RootRef)
}

// NetsInOrder yields nets in declaration order for deterministic iteration.
func (n *Netlist) NetsInOrder() []*Net {
	nets := make([]*Net, 0, len(n.NetOrder))
	for _, id := range n.NetOrder {
		if net, ok := n.Nets[id]; ok {
			nets = append(nets, net)
		}
	}
	return nets
}

// MalformedError is the "Input-malformed" error taxonomy entry from §7: a
// reference the netlist claims to carry could not be resolved. The whole
// layout call aborts on this error.
type MalformedError struct {
	Kind string // "instance-not-found" | "port-not-found"
	Ref  string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("netlist: %s: %q", e.Kind, e.Ref)
}
