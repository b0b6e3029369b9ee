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

import "fmt"

// FactTag distinguishes the two obligations FactCollector can emit on a
// pair of Intervals.
type FactTag int

const (
	// Subset means Left ⊆ Right.
	Subset FactTag = iota
	// Equality means Left and Right denote the same interval set.
	Equality
)

func (t FactTag) String() string {
	if t == Equality {
		return "=="
	}
	return "⊆"
}

// Fact is an obligation on two Intervals, paired with the Span that
// demanded it (the caller attaches the Span; Fact itself only carries the
// tag and operands, mirroring interval_checking/fact.rs's Fact).
type Fact struct {
	Tag         FactTag
	Left, Right Interval
	Span        Span
}

// NewSubset constructs a Subset fact: left ⊆ right.
func NewSubset(left, right Interval, sp Span) Fact {
	return Fact{Tag: Subset, Left: left, Right: right, Span: sp}
}

// NewEquality constructs an Equality fact: left == right.
func NewEquality(left, right Interval, sp Span) Fact {
	return Fact{Tag: Equality, Left: left, Right: right, Span: sp}
}

// IsTriviallyTrue reports whether the fact is reflexively satisfied by
// structural comparison alone, with no solver round-trip required
// (§8 invariant 4: subset is reflexive).
func (f Fact) IsTriviallyTrue() bool {
	switch f.Tag {
	case Subset:
		return StructuralEq(f.Left.Start, f.Right.Start) && StructuralEq(f.Left.End, f.Right.End) ||
			f.Left.IsEmpty()
	case Equality:
		return StructuralEq(f.Left.Start, f.Right.Start) && StructuralEq(f.Left.End, f.Right.End)
	default:
		return false
	}
}

func (f Fact) String() string {
	return fmt.Sprintf("%s %s %s", f.Left, f.Tag, f.Right)
}

// ConstraintToFact reduces a Constraint to a single interval Fact so that
// every obligation Discharge proves — whether it came from a port
// connection or from a declared constraint substituted at an invocation
// site (§4.3 rule 2) — goes through the same Subset/Equality machinery.
//
// The reduction embeds the comparison into intervals anchored at 0:
//
//	lhs <= rhs  ⇒ Subset([0,lhs+1) ⊆ [0,rhs+1))     (c=0<=a=0, d=rhs+1>=b=lhs+1 iff rhs>=lhs)
//	lhs <  rhs  ⇒ Subset([0,lhs+2) ⊆ [0,rhs+1))     (lhs+1<=rhs, integers)
//	lhs >= rhs  ⇒ Subset([0,rhs+1) ⊆ [0,lhs+1))
//	lhs >  rhs  ⇒ Subset([0,rhs+2) ⊆ [0,lhs+1))
//	lhs =  rhs  ⇒ Equality([0,lhs+1), [0,rhs+1))
func ConstraintToFact(c Constraint) Fact {
	zero := Concrete(0)
	switch c.Op {
	case OpLe:
		return NewSubset(New(zero, Add(c.Lhs, Concrete(1))), New(zero, Add(c.Rhs, Concrete(1))), c.Span)
	case OpLt:
		return NewSubset(New(zero, Add(c.Lhs, Concrete(2))), New(zero, Add(c.Rhs, Concrete(1))), c.Span)
	case OpGe:
		return NewSubset(New(zero, Add(c.Rhs, Concrete(1))), New(zero, Add(c.Lhs, Concrete(1))), c.Span)
	case OpGt:
		return NewSubset(New(zero, Add(c.Rhs, Concrete(2))), New(zero, Add(c.Lhs, Concrete(1))), c.Span)
	case OpEq:
		return NewEquality(New(zero, Add(c.Lhs, Concrete(1))), New(zero, Add(c.Rhs, Concrete(1))), c.Span)
	default:
		return NewEquality(New(zero, zero), New(zero, zero), c.Span)
	}
}

// ToSMTAssertion renders the negation of f's intended meaning, the
// formula Discharge asserts before check-sat (§4.4): an unsat result
// proves the fact.
//
// Subset  [a,b) ⊆ [c,d)  ⇒ ¬(c ≤ a ∧ b ≤ d)
// Equality [a,b) = [c,d) ⇒ ¬(a = c ∧ b = d)
//
// This completes the encoding the original implementation left
// unimplemented for Equality, by symmetry with the already-complete
// Subset case.
func (f Fact) ToSMTAssertion() SExp {
	ls, le := ToSMT(f.Left.Start), ToSMT(f.Left.End)
	rs, re := ToSMT(f.Right.Start), ToSMT(f.Right.End)
	switch f.Tag {
	case Subset:
		return SExp(fmt.Sprintf("(not (and (<= %s %s) (<= %s %s)))", rs, ls, le, re))
	case Equality:
		return SExp(fmt.Sprintf("(not (and (= %s %s) (= %s %s)))", ls, rs, le, re))
	default:
		return "false"
	}
}
