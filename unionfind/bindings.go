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

// Package unionfind resolves a callee's abstract time variables against
// the concrete and abstract arguments supplied at an invocation site.
//
// Unlike the general unification the name recalls, a Filament invocation
// never unifies two of the caller's own variables: it only ever receives
// one TimeExpr argument per abstract variable of the callee's signature.
// Bindings therefore only needs a one-directional substitution map, not a
// full union-find forest with path compression.
package unionfind

import (
	"strings"

	"github.com/Jetbl/filament/ast"
)

// Bindings maps a callee's abstract time variables to the TimeExpr
// arguments supplied at an invocation site.
type Bindings struct {
	vals map[ast.Id]ast.TimeExpr
}

// New constructs an empty Bindings.
func New() Bindings {
	return Bindings{vals: make(map[ast.Id]ast.TimeExpr)}
}

// Bind records that v resolves to e. Bind panics if v is already bound:
// a signature's abstract variables are each bound exactly once per
// invocation, and a double-bind indicates a caller bug, not recoverable
// input.
func (b Bindings) Bind(v ast.Id, e ast.TimeExpr) {
	if _, ok := b.vals[v]; ok {
		panic("unionfind: variable " + v.String() + " already bound")
	}
	b.vals[v] = e
}

// FromArgs builds a Bindings from a signature's abstract variables and
// the time arguments supplied positionally at an invocation. It panics if
// the lengths differ; callers must validate arity (the *Malformed* "missing
// time argument" check of §4.3) before calling FromArgs.
func FromArgs(vars []ast.Id, args []ast.TimeExpr) Bindings {
	if len(vars) != len(args) {
		panic("unionfind: FromArgs called with mismatched arity")
	}
	b := New()
	for i, v := range vars {
		b.Bind(v, args[i])
	}
	return b
}

// Map returns the substitution as a plain map, the shape
// ast.SubstituteTime and ast.Interval.Substitute expect.
func (b Bindings) Map() map[ast.Id]ast.TimeExpr {
	return b.vals
}

// Resolve returns the TimeExpr bound to v, and whether v was bound.
func (b Bindings) Resolve(v ast.Id) (ast.TimeExpr, bool) {
	e, ok := b.vals[v]
	return e, ok
}

// String returns a readable debug string, e.g. "{ T->5 U->T+1 }".
func (b Bindings) String() string {
	var sb strings.Builder
	sb.WriteRune('{')
	for k, v := range b.vals {
		sb.WriteRune(' ')
		sb.WriteString(k.String())
		sb.WriteString("->")
		sb.WriteString(v.String())
	}
	sb.WriteString(" }")
	return sb.String()
}
