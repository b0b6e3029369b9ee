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

package symbols

import (
	"testing"

	"github.com/Jetbl/filament/ast"
	"github.com/Jetbl/filament/diag"
)

func TestRegisterAndResolve(t *testing.T) {
	r := NewRegistry()
	name := ast.Intern("reg-f")
	if d := r.RegisterComponent(ast.Signature{Name: name}); d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	sig, ok := r.Resolve(name)
	if !ok {
		t.Fatal("expected f to resolve")
	}
	if sig.Name != name {
		t.Errorf("resolved signature name = %v, want %v", sig.Name, name)
	}
}

func TestRegisterDuplicateIsAlreadyBound(t *testing.T) {
	r := NewRegistry()
	name := ast.Intern("reg-dup")
	if d := r.RegisterComponent(ast.Signature{Name: name}); d != nil {
		t.Fatalf("unexpected diagnostic on first register: %v", d)
	}
	d := r.RegisterComponent(ast.Signature{Name: name})
	if d == nil {
		t.Fatal("expected AlreadyBound diagnostic on duplicate register")
	}
	if d.Kind != diag.AlreadyBound {
		t.Errorf("diagnostic kind = %v, want AlreadyBound", d.Kind)
	}
}

func TestResolveMissingNotOk(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Resolve(ast.Intern("reg-missing")); ok {
		t.Error("expected unregistered name to not resolve")
	}
}

func TestBuildRegistryPreservesOrder(t *testing.T) {
	a := ast.Signature{Name: ast.Intern("reg-a")}
	b := ast.Signature{Name: ast.Intern("reg-b")}
	ns := ast.Namespace{
		Components: []ast.Component{{Sig: a}, {Sig: b}},
	}
	r, diags := BuildRegistry(ns)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	names := r.Names()
	if len(names) != 2 || names[0] != a.Name || names[1] != b.Name {
		t.Errorf("Names() = %v, want [reg-a, reg-b]", names)
	}
}

func TestVisibleFromEnforcesDeclarationOrder(t *testing.T) {
	r := NewRegistry()
	earlier := ast.Intern("reg-vis-earlier")
	later := ast.Intern("reg-vis-later")
	ext := ast.Intern("reg-vis-ext")
	r.RegisterExternal(ast.Signature{Name: ext})
	r.RegisterComponent(ast.Signature{Name: earlier})
	r.RegisterComponent(ast.Signature{Name: later})

	laterIdx, ok := r.ComponentIndex(later)
	if !ok {
		t.Fatal("expected later to have a component index")
	}
	earlierIdx, ok := r.ComponentIndex(earlier)
	if !ok {
		t.Fatal("expected earlier to have a component index")
	}

	if !r.VisibleFrom(earlier, laterIdx) {
		t.Error("a component declared earlier must be visible to one declared later")
	}
	if r.VisibleFrom(later, earlierIdx) {
		t.Error("a component declared later must not be visible to one declared earlier")
	}
	if !r.VisibleFrom(ext, earlierIdx) {
		t.Error("an external must be visible regardless of declaration order")
	}
	if _, ok := r.ComponentIndex(ext); ok {
		t.Error("an external must not carry a component index")
	}
}

func TestBuildRegistryCollectsAllDuplicates(t *testing.T) {
	dupName := ast.Intern("reg-collect-dup")
	ns := ast.Namespace{
		Externals: []ast.Signature{{Name: dupName}},
		Components: []ast.Component{
			{Sig: ast.Signature{Name: dupName}},
			{Sig: ast.Signature{Name: dupName}},
		},
	}
	_, diags := BuildRegistry(ns)
	if len(diags) != 2 {
		t.Fatalf("expected 2 AlreadyBound diagnostics, got %d: %v", len(diags), diags)
	}
}
