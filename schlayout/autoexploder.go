package schlayout

import "github.com/jonfodi/diode-pcb-sub000/netlist"

// Explode is the Auto-Exploder (C3, §4.2): given the root instance, yield a
// flat, deterministically ordered list of the instances that get their own
// node. A module is replaced by its descendants unless it has no
// module/component children, in which case it is emitted as a single leaf
// node itself.
//
// Recursion order follows the netlist's own child iteration order (§4.2),
// which netlist.Instance.Children already preserves.
//
// Design-root special case (resolves an Open Question left implicit by the
// source spec): a design root commonly carries its own top-level ports
// directly (e.g. an "IN" port child alongside component children like
// "R1"/"R2" — see scenario S1). The literal flatten rule would explode the
// root away entirely whenever it has any module/component child, stranding
// those top-level ports with no owning node. We resolve this by always also
// emitting the root itself, immediately before its exploded descendants,
// whenever it carries at least one port or interface child of its own — the
// Nodes Builder then builds it as a module node using only its port/
// interface children (§4.1's module-node port-placement rule already
// operates per child kind, so a root emitted this way and a root emitted via
// the "no module/component children" path build identical port sets).
func Explode(nl *netlist.Netlist, root *netlist.Instance) ([]*netlist.Instance, error) {
	var out []*netlist.Instance

	hasOwnPorts := false
	hasModuleOrComponentChild := false
	for _, c := range root.Children {
		child, err := nl.Instance(c.Ref)
		if err != nil {
			return nil, err
		}
		switch child.Kind {
		case netlist.KindPort, netlist.KindInterface:
			hasOwnPorts = true
		case netlist.KindModule, netlist.KindComponent:
			hasModuleOrComponentChild = true
		}
	}
	if hasOwnPorts && hasModuleOrComponentChild {
		out = append(out, root)
	}

	if err := explode(nl, root, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// explode applies the literal §4.2 rule to inst: components stop recursion
// immediately; modules recurse into their module/component children, or are
// emitted as a single node if they have none.
func explode(nl *netlist.Netlist, inst *netlist.Instance, out *[]*netlist.Instance) error {
	if inst.Kind != netlist.KindModule {
		*out = append(*out, inst)
		return nil
	}

	var moduleOrComponentChildren []*netlist.Instance
	for _, c := range inst.Children {
		child, err := nl.Instance(c.Ref)
		if err != nil {
			return err
		}
		if child.Kind == netlist.KindModule || child.Kind == netlist.KindComponent {
			moduleOrComponentChildren = append(moduleOrComponentChildren, child)
		}
	}

	if len(moduleOrComponentChildren) == 0 {
		// A module with no module/component children is emitted as a single
		// node (e.g. a module that is purely a bundle of ports/interfaces).
		*out = append(*out, inst)
		return nil
	}

	for _, child := range moduleOrComponentChildren {
		if err := explode(nl, child, out); err != nil {
			return err
		}
	}
	return nil
}
