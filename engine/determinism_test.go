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

package engine

import (
	"testing"

	"github.com/Jetbl/filament/ast"
)

// TestDischargeDeterministicOnTrivialFacts is §8 invariant 6: running
// Discharge twice over the same fact/assumption set gives the same
// result. Since every fact here is trivially true, no solver session is
// ever opened, so this isolates the determinism of Discharge's own
// trivial-filtering logic from anything an external solver process
// might do differently across runs.
func TestDischargeDeterministicOnTrivialFacts(t *testing.T) {
	v := ast.Intern("discharge-det-T")
	iv := ast.New(ast.Abstract(v), ast.Add(ast.Abstract(v), ast.Concrete(1)))
	facts := []ast.Fact{ast.NewSubset(iv, iv, ast.Span{}), ast.NewEquality(iv, iv, ast.Span{})}
	opts := Options{SolverPath: "/nonexistent/solver-binary"}

	diags1, err1 := Discharge(facts, nil, opts)
	diags2, err2 := Discharge(facts, nil, opts)

	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if len(diags1) != len(diags2) || len(diags1) != 0 {
		t.Errorf("expected two empty, equal diagnostic sets, got %v and %v", diags1, diags2)
	}
}

// TestDischargeDeterministicTransportFailure checks the same determinism
// property on the fatal-error path: a non-trivial fact set against a
// nonexistent solver binary fails identically across repeated calls.
func TestDischargeDeterministicTransportFailure(t *testing.T) {
	v := ast.Intern("discharge-det-err-T")
	facts := []ast.Fact{
		ast.NewSubset(ast.New(ast.Abstract(v), ast.Concrete(1)), ast.New(ast.Concrete(5), ast.Concrete(6)), ast.Span{}),
	}
	opts := Options{SolverPath: "/nonexistent/solver-binary"}

	_, err1 := Discharge(facts, nil, opts)
	_, err2 := Discharge(facts, nil, opts)

	var te1, te2 *TransportError
	if !asTransportError(err1, &te1) || !asTransportError(err2, &te2) {
		t.Fatalf("expected both runs to fail with a *TransportError, got %v and %v", err1, err2)
	}
}
