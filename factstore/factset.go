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

// Package factstore owns the lifecycle of the Facts FactCollector emits
// for a single component: an ordered, span-tagged collection held only
// for the duration of that component's checking and dropped once
// Discharge has consumed it (§3 "Lifecycle").
package factstore

import "github.com/Jetbl/filament/ast"

// FactSet is an ordered collection of Facts owned by one checking pass.
// It is not a persistent store: callers construct one per component,
// append to it during FactCollector's walk, hand it to Discharge, and
// let it go out of scope.
type FactSet struct {
	facts []ast.Fact
}

// NewFactSet constructs an empty FactSet, optionally pre-sized for n
// facts (pass 0 if the count isn't known in advance).
func NewFactSet(n int) *FactSet {
	return &FactSet{facts: make([]ast.Fact, 0, n)}
}

// Add appends f, preserving emission order (Discharge reports failures
// in the order the obligations arose, which is source order for
// FactCollector's output).
func (fs *FactSet) Add(f ast.Fact) {
	fs.facts = append(fs.facts, f)
}

// AddAll appends every fact in fns, in order.
func (fs *FactSet) AddAll(fns ...ast.Fact) {
	fs.facts = append(fs.facts, fns...)
}

// All returns every fact added so far, in emission order. The returned
// slice aliases fs's storage; callers must not mutate it.
func (fs *FactSet) All() []ast.Fact {
	return fs.facts
}

// Len returns the number of facts currently held.
func (fs *FactSet) Len() int {
	return len(fs.facts)
}

// NonTrivial returns the subset of facts that are not already known to
// hold by structural comparison alone (§8 invariant 4), i.e. the ones
// that actually require a solver round trip.
func (fs *FactSet) NonTrivial() []ast.Fact {
	out := make([]ast.Fact, 0, len(fs.facts))
	for _, f := range fs.facts {
		if !f.IsTriviallyTrue() {
			out = append(out, f)
		}
	}
	return out
}

// Clear drops every fact, returning the FactSet to its post-NewFactSet
// state while keeping its backing storage for reuse. The checking
// pipeline itself does not call it; a collected FactSet is simply dropped.
func (fs *FactSet) Clear() {
	fs.facts = fs.facts[:0]
}
