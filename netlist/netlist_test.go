package netlist

import "testing"

func twoResistorsNetlist() *Netlist {
	return &Netlist{
		RootRef: "design:Board",
		Instances: map[string]*Instance{
			"design:Board": {
				Ref:  "design:Board",
				Kind: KindModule,
				Children: []Child{
					{Name: "R1", Ref: "design:Board.R1"},
					{Name: "R2", Ref: "design:Board.R2"},
					{Name: "IN", Ref: "design:Board.IN"},
				},
			},
			"design:Board.R1": {Ref: "design:Board.R1", Kind: KindComponent, ReferenceDesignator: "R1"},
			"design:Board.R2": {Ref: "design:Board.R2", Kind: KindComponent, ReferenceDesignator: "R2"},
			"design:Board.IN": {Ref: "design:Board.IN", Kind: KindPort},
		},
		Nets: map[string]*Net{
			"N1": {ID: "N1", Name: "N1", Ports: []string{"design:Board.R1.P1", "design:Board.R2.P1"}},
			"N2": {ID: "N2", Name: "N2", Ports: []string{"design:Board.R1.P2", "design:Board.IN"}},
			"N3": {ID: "N3", Name: "N3", Ports: []string{"design:Board.R2.P2"}},
		},
		NetOrder: []string{"N1", "N2", "N3"},
	}
}

func TestInstanceNotFoundIsMalformed(t *testing.T) {
	n := twoResistorsNetlist()
	_, err := n.Instance("design:Board.R99")
	if err == nil {
		t.Fatal("expected MalformedError for unknown instance")
	}
	var merr *MalformedError
	if !asMalformed(err, &merr) {
		t.Fatalf("expected *MalformedError, got %T", err)
	}
	if merr.Kind != "instance-not-found" {
		t.Errorf("Kind = %q", merr.Kind)
	}
}

func asMalformed(err error, target **MalformedError) bool {
	if e, ok := err.(*MalformedError); ok {
		*target = e
		return true
	}
	return false
}

func TestNetsInOrderIsDeterministic(t *testing.T) {
	n := twoResistorsNetlist()
	nets := n.NetsInOrder()
	if len(nets) != 3 {
		t.Fatalf("len = %d, want 3", len(nets))
	}
	for i, want := range []string{"N1", "N2", "N3"} {
		if nets[i].ID != want {
			t.Errorf("nets[%d].ID = %q, want %q", i, nets[i].ID, want)
		}
	}
}

func TestSymbolSourceAttribute(t *testing.T) {
	inst := &Instance{Attributes: map[string]AttributeValue{
		"__symbol_value": StringAttr("Device:R"),
	}}
	src, ok := inst.SymbolSource()
	if !ok || src != "Device:R" {
		t.Errorf("SymbolSource() = (%q, %v), want (Device:R, true)", src, ok)
	}

	plain := &Instance{Attributes: map[string]AttributeValue{}}
	if _, ok := plain.SymbolSource(); ok {
		t.Error("expected no symbol source on plain instance")
	}
}

func TestChildByNameExactMatch(t *testing.T) {
	n := twoResistorsNetlist()
	root, _ := n.Root()
	c, ok := root.ChildByName("R1")
	if !ok || c.Ref != "design:Board.R1" {
		t.Errorf("ChildByName(R1) = (%+v, %v)", c, ok)
	}
	if _, ok := root.ChildByName("r1"); ok {
		t.Error("ChildByName should be case-sensitive; case-insensitive fallback lives in nodesbuilder")
	}
}
