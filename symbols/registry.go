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

// Package symbols resolves component and external-primitive names to
// their Signature within a Namespace. Registry records each component's
// declaration position and exposes VisibleFrom so a caller that knows
// which component's body is doing the referencing (analysis.Collect, via
// the declaring component's own ComponentIndex) can enforce §9's
// forward-reference rule: a component may only instantiate a component
// declared earlier, or an external.
package symbols

import (
	"bitbucket.org/creachadair/stringset"

	"github.com/Jetbl/filament/ast"
	"github.com/Jetbl/filament/diag"
)

// Registry holds every Signature visible so far while a Namespace is
// processed component-by-component in declaration order.
type Registry struct {
	bound stringset.Set
	sigs  map[ast.Id]*ast.Signature
	order []ast.Id
	// compIndex records each registered component's position among
	// RegisterComponent calls (0-based). Externals never appear here:
	// they carry no body that could reference a later component, so
	// they're always visible regardless of order.
	compIndex map[ast.Id]int
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		bound:     stringset.New(),
		sigs:      make(map[ast.Id]*ast.Signature),
		compIndex: make(map[ast.Id]int),
	}
}

// RegisterExternal adds a pre-declared external Signature. Externals are
// always visible, regardless of declaration order, since they carry no
// body that could reference a later component.
func (r *Registry) RegisterExternal(sig ast.Signature) *diag.Diagnostic {
	return r.register(sig, false)
}

// RegisterComponent adds a Component's Signature, making it visible to
// components registered after it (but not to itself or earlier ones,
// per §9's forward-reference rule, enforced by VisibleFrom/ComponentIndex).
func (r *Registry) RegisterComponent(sig ast.Signature) *diag.Diagnostic {
	return r.register(sig, true)
}

func (r *Registry) register(sig ast.Signature, isComponent bool) *diag.Diagnostic {
	name := sig.Name.String()
	if r.bound.Contains(name) {
		return diag.AlreadyBoundf(sig.Name, "a signature", sig.Span)
	}
	r.bound.Add(name)
	cp := sig
	r.sigs[sig.Name] = &cp
	r.order = append(r.order, sig.Name)
	if isComponent {
		r.compIndex[sig.Name] = len(r.compIndex)
	}
	return nil
}

// Resolve looks up name's Signature. ok is false if name was never
// registered; callers turn that into an Undefined diagnostic, since
// Registry itself doesn't know what kind of reference (instance,
// component) triggered the lookup. Resolve alone does not enforce the
// forward-reference rule — pair it with ComponentIndex/VisibleFrom when
// the caller knows which component's body is making the reference.
func (r *Registry) Resolve(name ast.Id) (*ast.Signature, bool) {
	sig, ok := r.sigs[name]
	return sig, ok
}

// ComponentIndex returns name's position among RegisterComponent calls
// and whether name was ever registered as a component (as opposed to an
// external, or not registered at all).
func (r *Registry) ComponentIndex(name ast.Id) (int, bool) {
	idx, ok := r.compIndex[name]
	return idx, ok
}

// VisibleFrom reports whether name may be referenced by the component
// registered at declarationIndex (as returned by ComponentIndex for that
// referencing component): an external, or any name with no recorded
// component index, is always visible; a component is visible only to
// components registered strictly after it.
func (r *Registry) VisibleFrom(name ast.Id, declarationIndex int) bool {
	idx, isComponent := r.compIndex[name]
	if !isComponent {
		return true
	}
	return idx < declarationIndex
}

// Names returns every registered name in registration order.
func (r *Registry) Names() []ast.Id {
	out := make([]ast.Id, len(r.order))
	copy(out, r.order)
	return out
}

// BuildRegistry registers every external then every component of ns in
// order, returning the Registry and any AlreadyBound diagnostics
// encountered (collected, not short-circuited, so a namespace with
// several duplicate names reports all of them at once).
func BuildRegistry(ns ast.Namespace) (*Registry, []*diag.Diagnostic) {
	r := NewRegistry()
	var diags []*diag.Diagnostic
	for _, ext := range ns.Externals {
		if d := r.RegisterExternal(ext); d != nil {
			diags = append(diags, d)
		}
	}
	for _, c := range ns.Components {
		if d := r.RegisterComponent(c.Sig); d != nil {
			diags = append(diags, d)
		}
	}
	return r, diags
}
