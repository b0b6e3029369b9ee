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

// Interval is the half-open range [Start, End) that annotates a signal's
// validity window, relative to the enclosing component's time variables.
// Exact, when non-nil, is a tighter sub-range nested inside [Start, End)
// giving the precise availability window; the complement is liveness
// slack. Exact is never itself further narrowed.
type Interval struct {
	Start, End TimeExpr
	Exact      *Range
}

// Range is a bare start/end pair, used for the Exact sub-range of an
// Interval (which has no further Exact field of its own).
type Range struct {
	Start, End TimeExpr
}

// New constructs an Interval [start, end) with no exact sub-range,
// canonicalizing both endpoints.
func New(start, end TimeExpr) Interval {
	return Interval{Start: Canonicalize(start), End: Canonicalize(end)}
}

// WithExact attaches an exact sub-range [es, ee) to outer. It fails with a
// Malformed diagnostic if the exact range is not a syntactic sub-range of
// outer, i.e. es is not syntactically >= outer.Start or ee is not
// syntactically <= outer.End, per §4.2. "Syntactically" here means after
// canonicalization: a semantic subset that isn't structurally provable is
// rejected here and left for Discharge to prove as a Fact instead.
func WithExact(outer Interval, es, ee TimeExpr) (Interval, error) {
	es, ee = Canonicalize(es), Canonicalize(ee)
	if !structurallyAtLeast(es, outer.Start) {
		return Interval{}, fmt.Errorf("ast: exact start %s is not within outer range %s", es, outer)
	}
	if !structurallyAtMost(ee, outer.End) {
		return Interval{}, fmt.Errorf("ast: exact end %s is not within outer range %s", ee, outer)
	}
	next := outer
	next.Exact = &Range{Start: es, End: ee}
	return next, nil
}

// structurallyAtLeast reports whether a is syntactically known to be >= b:
// either they canonicalize identically, or they share the same symbolic
// part (none, for two concrete times) and a's constant offset is not
// smaller. Any other symbolic pair is not decided here; that's
// Discharge's job.
func structurallyAtLeast(a, b TimeExpr) bool {
	if StructuralEq(a, b) {
		return true
	}
	ka, ca := offsetOf(a)
	kb, cb := offsetOf(b)
	return ka == kb && ca >= cb
}

// structurallyAtMost is the mirror of structurallyAtLeast.
func structurallyAtMost(a, b TimeExpr) bool {
	if StructuralEq(a, b) {
		return true
	}
	ka, ca := offsetOf(a)
	kb, cb := offsetOf(b)
	return ka == kb && ca <= cb
}

// offsetOf splits a TimeExpr into the canonical key of its symbolic part and
// its constant offset: T+3 yields (key of T, 3), a bare 4 yields ("", 4).
func offsetOf(e TimeExpr) (string, int64) {
	e = Canonicalize(e)
	switch {
	case e.Op == TimeConcrete:
		return "", e.Const
	case e.Op == TimeAdd && e.Operands[len(e.Operands)-1].Op == TimeConcrete:
		n := len(e.Operands) - 1
		return Canonicalize(TimeExpr{Op: TimeAdd, Operands: e.Operands[:n]}).canonicalKey(), e.Operands[n].Const
	}
	return e.canonicalKey(), 0
}

// Shift returns the interval translated by adding delta to start, end, and
// (if present) the exact endpoints, used when an invocation's time
// argument pushes every interface interval of the callee's signature
// forward.
func (iv Interval) Shift(delta TimeExpr) Interval {
	out := Interval{Start: Add(iv.Start, delta), End: Add(iv.End, delta)}
	if iv.Exact != nil {
		out.Exact = &Range{Start: Add(iv.Exact.Start, delta), End: Add(iv.Exact.End, delta)}
	}
	return out
}

// Substitute replaces abstract time variables per bindings in start, end,
// and (if present) the exact endpoints, used when skolemizing a callee's
// abstract intervals against the arguments supplied at an invocation.
func (iv Interval) Substitute(bindings map[Id]TimeExpr) Interval {
	out := Interval{
		Start: SubstituteTime(iv.Start, bindings),
		End:   SubstituteTime(iv.End, bindings),
	}
	if iv.Exact != nil {
		out.Exact = &Range{
			Start: SubstituteTime(iv.Exact.Start, bindings),
			End:   SubstituteTime(iv.Exact.End, bindings),
		}
	}
	return out
}

// IsExact reports whether iv is known at canonicalization time to span
// exactly one cycle (both endpoints concrete and End == Start+1).
func (iv Interval) IsExact() bool {
	return iv.Start.Op == TimeConcrete && iv.End.Op == TimeConcrete && iv.End.Const == iv.Start.Const+1
}

// IsEmpty reports whether iv is known at canonicalization time to be the
// empty interval (start == end structurally).
func (iv Interval) IsEmpty() bool {
	return StructuralEq(iv.Start, iv.End)
}

// String renders an interval in Filament's surface notation "[start, end)",
// including the exact sub-range when present.
func (iv Interval) String() string {
	base := fmt.Sprintf("[%s, %s)", iv.Start, iv.End)
	if iv.Exact == nil {
		return base
	}
	return fmt.Sprintf("%s{%s, %s}", base, iv.Exact.Start, iv.Exact.End)
}

// FreeVars appends every abstract time variable referenced by iv's
// endpoints (including the exact sub-range, if present) to out.
func (iv Interval) FreeVars(out map[Id]bool) {
	iv.Start.FreeVars(out)
	iv.End.FreeVars(out)
	if iv.Exact != nil {
		iv.Exact.Start.FreeVars(out)
		iv.Exact.End.FreeVars(out)
	}
}
