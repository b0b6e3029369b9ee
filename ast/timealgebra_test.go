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

func TestConstantFolding(t *testing.T) {
	got := Add(Concrete(2), Concrete(3))
	want := Concrete(5)
	if !StructuralEq(got, want) {
		t.Errorf("Add(2,3) = %v, want %v", got, want)
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	v := Intern("T")
	exprs := []TimeExpr{
		Concrete(4),
		Abstract(v),
		Add(Abstract(v), Concrete(3)),
		Max(Add(Abstract(v), Concrete(1)), Add(Concrete(1), Abstract(v))),
		Max(Max(Concrete(1), Concrete(9)), Abstract(v)),
	}
	for _, e := range exprs {
		once := Canonicalize(e)
		twice := Canonicalize(once)
		if !StructuralEq(once, twice) {
			t.Errorf("canonicalize not idempotent for %v: once=%v twice=%v", e, once, twice)
		}
	}
}

func TestAddCommutesAfterCanonicalization(t *testing.T) {
	a, b := Intern("a"), Intern("b")
	lhs := Add(Abstract(a), Abstract(b))
	rhs := Add(Abstract(b), Abstract(a))
	if !StructuralEq(lhs, rhs) {
		t.Errorf("Add not commutative under canonical form: %v vs %v", lhs, rhs)
	}
}

func TestMaxIdempotent(t *testing.T) {
	v := Intern("T")
	got := Max(Abstract(v), Abstract(v))
	if !StructuralEq(got, Abstract(v)) {
		t.Errorf("Max(T,T) = %v, want T", got)
	}
}

func TestMaxConstantFolding(t *testing.T) {
	got := Max(Concrete(3), Concrete(7))
	if !StructuralEq(got, Concrete(7)) {
		t.Errorf("Max(3,7) = %v, want 7", got)
	}
}

func TestStructuralEqDistinguishesDifferentVars(t *testing.T) {
	a, b := Intern("a"), Intern("b")
	if StructuralEq(Abstract(a), Abstract(b)) {
		t.Error("distinct abstract variables compared structurally equal")
	}
}

func TestToSMTAdd(t *testing.T) {
	v := Intern("T")
	got := ToSMT(Add(Abstract(v), Concrete(1)))
	want := SExp("(+ T 1)")
	if got != want {
		t.Errorf("ToSMT = %q, want %q", got, want)
	}
}

func TestToSMTMaxPair(t *testing.T) {
	a, b := Intern("a"), Intern("b")
	got := ToSMT(Max(Abstract(a), Abstract(b)))
	want := SExp("(ite (<= a b) b a)")
	if got != want {
		t.Errorf("ToSMT(max) = %q, want %q", got, want)
	}
}

func TestSubstituteTime(t *testing.T) {
	v := Intern("T")
	e := Add(Abstract(v), Concrete(2))
	got := SubstituteTime(e, map[Id]TimeExpr{v: Concrete(3)})
	if !StructuralEq(got, Concrete(5)) {
		t.Errorf("substitute = %v, want 5", got)
	}
}

func TestFreeVars(t *testing.T) {
	a, b := Intern("a"), Intern("b")
	e := Add(Abstract(a), Max(Abstract(b), Concrete(1)))
	out := map[Id]bool{}
	e.FreeVars(out)
	if !out[a] || !out[b] || len(out) != 2 {
		t.Errorf("FreeVars = %v, want {a,b}", out)
	}
}
