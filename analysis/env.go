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

// Package analysis implements FactCollector: walking a Component's body
// in source order to produce the set of interval Facts whose conjoint
// truth is necessary and sufficient for the component to be temporally
// well-formed (§4.3).
package analysis

import (
	"github.com/Jetbl/filament/ast"
	"github.com/Jetbl/filament/symbols"
)

// boundInstance is an instance name bound to the resolved signature of
// the component it instantiates: the callee's abstract variables have
// not yet been substituted (that happens per-invocation, since the same
// instance can be invoked at different times).
type boundInstance struct {
	component ast.Id
	sig       *ast.Signature
	// bindings is the callee's abstract-variable substitution from the
	// most recent invocation; nil until the instance has been invoked at
	// least once.
	bindings map[ast.Id]ast.TimeExpr
	// outputs holds the most recently bound output intervals for this
	// instance, populated once the instance is invoked; nil until then.
	outputs map[ast.Id]ast.Interval
}

// env is the checking environment threaded through a single component's
// walk (§4.3's "Checking environment"): instance bindings plus the stack
// of enclosing When times, innermost last.
type env struct {
	instances map[ast.Id]*boundInstance
	// order records instance declaration order; the walk itself does not
	// read it.
	order []ast.Id

	sigs *symbols.Registry

	// selfIndex is the enclosing component's own ComponentIndex, and
	// selfIndexKnown reports whether one was found. It's unknown when
	// Collect is called against a Registry that never registered the
	// component under check as a component (e.g. a test that registers
	// only the externals/components an invocation references); in that
	// case there's no declaration position to gate against, so every
	// resolved name stays visible, matching Resolve's unrestricted
	// lookup.
	selfIndex      int
	selfIndexKnown bool

	// whenStack holds the logical time of every enclosing When block. It is
	// recorded but not read: no diagnostic cites it, and facts emitted from
	// inside a When body carry no premise about the block's time.
	whenStack []ast.TimeExpr
}

// newEnv seeds an environment for checking sig's body.
func newEnv(sig *ast.Signature, sigs *symbols.Registry) *env {
	idx, ok := sigs.ComponentIndex(sig.Name)
	return &env{
		instances:      make(map[ast.Id]*boundInstance),
		sigs:           sigs,
		selfIndex:      idx,
		selfIndexKnown: ok,
	}
}

// declareInstance binds name to the resolved signature of component,
// returning false if name is already bound in this environment (the
// caller turns that into an AlreadyBound diagnostic), if component is
// unresolvable, or if component names a component declared at or after
// this one (both Undefined, per §9's forward-reference rule — a
// namespace is topological by construction, so a forward reference is
// indistinguishable from an undefined name to the component making it).
func (e *env) declareInstance(name, component ast.Id) (*boundInstance, bool, bool) {
	if _, dup := e.instances[name]; dup {
		return nil, true, false
	}
	sig, ok := e.sigs.Resolve(component)
	if !ok {
		return nil, false, false
	}
	if e.selfIndexKnown && !e.sigs.VisibleFrom(component, e.selfIndex) {
		return nil, false, false
	}
	bi := &boundInstance{component: component, sig: sig, outputs: make(map[ast.Id]ast.Interval)}
	e.instances[name] = bi
	e.order = append(e.order, name)
	return bi, false, true
}

// lookupInstance returns the bound instance for name, and whether it was
// found; an unbound reference is an Undefined diagnostic at the call
// site.
func (e *env) lookupInstance(name ast.Id) (*boundInstance, bool) {
	bi, ok := e.instances[name]
	return bi, ok
}

// withWhen returns a child environment scoped to a When block at the
// given logical time. Instance bindings are shared with the parent (a
// When body sees every instance declared before it, per §4.3's ordering
// rule), and the When stack is extended with t.
func (e *env) withWhen(t ast.TimeExpr) *env {
	return &env{
		instances:      e.instances,
		sigs:           e.sigs,
		selfIndex:      e.selfIndex,
		selfIndexKnown: e.selfIndexKnown,
		whenStack:      append(append([]ast.TimeExpr{}, e.whenStack...), t),
	}
}
