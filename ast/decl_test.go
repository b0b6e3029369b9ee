// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

import "testing"

func TestSignaturePortLookup(t *testing.T) {
	name := Intern("f")
	tvar := Intern("T")
	inPort := Intern("i")
	outPort := Intern("o")
	sig := Signature{
		Name:         name,
		AbstractVars: []Id{tvar},
		Inputs:       []PortDef{{Name: inPort, Interval: New(Abstract(tvar), Add(Abstract(tvar), Concrete(1))), Width: 1}},
		Outputs:      []PortDef{{Name: outPort, Interval: New(Add(Abstract(tvar), Concrete(1)), Add(Abstract(tvar), Concrete(2))), Width: 1}},
	}
	if _, ok := sig.Port(inPort); !ok {
		t.Error("expected to find input port")
	}
	if _, ok := sig.Port(outPort); !ok {
		t.Error("expected to find output port")
	}
	if _, ok := sig.Port(Intern("missing")); ok {
		t.Error("expected missing port to not be found")
	}
}

func TestGuardLeaves(t *testing.T) {
	a := ThisPort(Intern("a"), Span{})
	b := ThisPort(Intern("b"), Span{})
	g := &Guard{Port: a, Or: &Guard{Port: b}}
	leaves := g.Leaves()
	if len(leaves) != 2 {
		t.Fatalf("expected 2 leaves, got %d", len(leaves))
	}
	if leaves[0].Name != a.Name || leaves[1].Name != b.Name {
		t.Errorf("leaves = %v, want [a, b]", leaves)
	}
}

func TestPrintComponentIsDeterministic(t *testing.T) {
	tvar := Intern("T")
	comp := Component{
		Sig: Signature{
			Name:         Intern("f"),
			AbstractVars: []Id{tvar},
			Inputs:       []PortDef{{Name: Intern("i"), Interval: New(Abstract(tvar), Add(Abstract(tvar), Concrete(1))), Width: 1}},
			Outputs:      []PortDef{{Name: Intern("o"), Interval: New(Add(Abstract(tvar), Concrete(1)), Add(Abstract(tvar), Concrete(2))), Width: 1}},
		},
		Body: []Command{
			ConnectCommand(Connect{Dst: ThisPort(Intern("o"), Span{}), Src: ThisPort(Intern("i"), Span{})}),
		},
	}
	first := PrintComponent(comp)
	second := PrintComponent(comp)
	if first != second {
		t.Errorf("printing the same component twice produced different output:\n%s\nvs\n%s", first, second)
	}
}

func TestInterfaceSignalAsInterval(t *testing.T) {
	tvar := Intern("G")
	sig := InterfaceSignal{Name: Intern("go"), TimeVar: tvar}
	iv := sig.AsInterval()
	if !StructuralEq(iv.Start, Abstract(tvar)) {
		t.Errorf("interface signal start = %v, want %v", iv.Start, Abstract(tvar))
	}
	if !StructuralEq(iv.End, Add(Abstract(tvar), Concrete(1))) {
		t.Errorf("interface signal end = %v, want G+1", iv.End)
	}
}
