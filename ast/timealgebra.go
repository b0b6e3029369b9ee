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

import (
	"fmt"
	"sort"
	"strings"
)

// TimeOp is the tag of a TimeExpr node.
type TimeOp int

const (
	// TimeConcrete is a non-negative integer constant.
	TimeConcrete TimeOp = iota
	// TimeAbstract is a reference to an abstract time variable declared by
	// the enclosing signature.
	TimeAbstract
	// TimeAdd is pointwise addition; commutative and associative.
	TimeAdd
	// TimeMax is pointwise maximum; commutative, associative, idempotent.
	TimeMax
)

// TimeExpr is the symbolic time algebra: a tagged variant of a concrete
// constant, an abstract variable, or a flattened Add/Max of operands.
//
// Add and Max nodes hold their operands as a slice rather than a fixed pair
// so that Canonicalize can flatten nested sums/maxes into one multiset
// before sorting and folding; mk_add/mk_max always build through
// Canonicalize so a TimeExpr is canonical the moment it's constructed.
type TimeExpr struct {
	Op       TimeOp
	Const    int64      // valid when Op == TimeConcrete
	Var      Id         // valid when Op == TimeAbstract
	Operands []TimeExpr // valid when Op == TimeAdd or TimeMax
}

// Concrete constructs a TimeExpr for a non-negative integer constant.
func Concrete(n int64) TimeExpr {
	if n < 0 {
		panic(fmt.Sprintf("ast: negative time constant %d", n))
	}
	return TimeExpr{Op: TimeConcrete, Const: n}
}

// Abstract constructs a TimeExpr referencing an abstract time variable.
func Abstract(v Id) TimeExpr {
	return TimeExpr{Op: TimeAbstract, Var: v}
}

// Add constructs a canonical TimeExpr for a+b.
func Add(a, b TimeExpr) TimeExpr {
	return Canonicalize(TimeExpr{Op: TimeAdd, Operands: []TimeExpr{a, b}})
}

// Max constructs a canonical TimeExpr for max(a,b).
func Max(a, b TimeExpr) TimeExpr {
	return Canonicalize(TimeExpr{Op: TimeMax, Operands: []TimeExpr{a, b}})
}

// Canonicalize flattens nested Add/Max of the same operator, folds
// constants, sorts the resulting operand multiset by a total order
// (variables by name, then the folded constant last), and discards
// duplicated Max operands. Canonicalization is syntactic, not semantic: it
// turns obvious equalities into structural ones so the solver is invoked
// only for the non-trivial obligations.
func Canonicalize(e TimeExpr) TimeExpr {
	switch e.Op {
	case TimeConcrete, TimeAbstract:
		return e
	case TimeAdd:
		operands := flatten(TimeAdd, e.Operands)
		var sum int64
		var rest []TimeExpr
		for _, o := range operands {
			if o.Op == TimeConcrete {
				sum += o.Const
				continue
			}
			rest = append(rest, o)
		}
		sort.Sort(byTotalOrder(rest))
		if len(rest) == 0 {
			return Concrete(sum)
		}
		if sum != 0 {
			rest = append(rest, Concrete(sum))
		}
		if len(rest) == 1 {
			return rest[0]
		}
		return TimeExpr{Op: TimeAdd, Operands: rest}
	case TimeMax:
		operands := flatten(TimeMax, e.Operands)
		var maxConst int64 = -1
		haveConst := false
		seen := map[string]TimeExpr{}
		var order []string
		for _, o := range operands {
			if o.Op == TimeConcrete {
				if !haveConst || o.Const > maxConst {
					maxConst = o.Const
				}
				haveConst = true
				continue
			}
			key := o.canonicalKey()
			if _, ok := seen[key]; !ok {
				seen[key] = o
				order = append(order, key)
			}
		}
		var rest []TimeExpr
		for _, k := range order {
			rest = append(rest, seen[k])
		}
		sort.Sort(byTotalOrder(rest))
		if haveConst {
			// A constant operand is absorbed into the max of the rest only
			// if it cannot be shown smaller than every other operand; since
			// the other operands are symbolic, the constant is kept unless
			// it is literally the unique operand.
			if len(rest) == 0 {
				return Concrete(maxConst)
			}
			rest = append(rest, Concrete(maxConst))
		}
		if len(rest) == 0 {
			return Concrete(0)
		}
		if len(rest) == 1 {
			return rest[0]
		}
		return TimeExpr{Op: TimeMax, Operands: rest}
	default:
		return e
	}
}

// flatten collects the leaves of nested nodes tagged op, recursively
// canonicalizing children first.
func flatten(op TimeOp, operands []TimeExpr) []TimeExpr {
	var out []TimeExpr
	for _, o := range operands {
		c := Canonicalize(o)
		if c.Op == op {
			out = append(out, c.Operands...)
		} else {
			out = append(out, c)
		}
	}
	return out
}

// canonicalKey renders a canonical-form TimeExpr into a string suitable for
// deduplication and sorting; it is not meant for user-facing output.
func (e TimeExpr) canonicalKey() string {
	switch e.Op {
	case TimeConcrete:
		return fmt.Sprintf("#%d", e.Const)
	case TimeAbstract:
		return "$" + e.Var.String()
	case TimeAdd, TimeMax:
		parts := make([]string, len(e.Operands))
		for i, o := range e.Operands {
			parts[i] = o.canonicalKey()
		}
		tag := "+"
		if e.Op == TimeMax {
			tag = "max"
		}
		return tag + "(" + strings.Join(parts, ",") + ")"
	default:
		return "?"
	}
}

// byTotalOrder sorts TimeExprs by variable name, constants last.
type byTotalOrder []TimeExpr

func (b byTotalOrder) Len() int      { return len(b) }
func (b byTotalOrder) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
func (b byTotalOrder) Less(i, j int) bool {
	a, c := b[i], b[j]
	if a.Op == TimeConcrete && c.Op != TimeConcrete {
		return false
	}
	if a.Op != TimeConcrete && c.Op == TimeConcrete {
		return true
	}
	return a.canonicalKey() < c.canonicalKey()
}

// StructuralEq decides equality on canonical forms.
func StructuralEq(a, b TimeExpr) bool {
	return Canonicalize(a).canonicalKey() == Canonicalize(b).canonicalKey()
}

// SExp is a textual S-expression destined for the SMT solver's stdin.
type SExp string

// ToSMT emits an S-expression over a fixed signature: integer variables for
// each abstract time var, (+) for addition, and
// (ite (<= a b) b a) for max.
func ToSMT(e TimeExpr) SExp {
	switch e.Op {
	case TimeConcrete:
		return SExp(fmt.Sprintf("%d", e.Const))
	case TimeAbstract:
		return SExp(e.Var.String())
	case TimeAdd:
		return SExp("(+ " + joinSMT(e.Operands) + ")")
	case TimeMax:
		return maxSMT(e.Operands)
	default:
		return "0"
	}
}

func joinSMT(operands []TimeExpr) string {
	parts := make([]string, len(operands))
	for i, o := range operands {
		parts[i] = string(ToSMT(o))
	}
	return strings.Join(parts, " ")
}

// maxSMT reduces operands pairwise into nested ite expressions: for n>2
// operands this is max(o0, max(o1, max(o2, ...))).
func maxSMT(operands []TimeExpr) SExp {
	if len(operands) == 0 {
		return "0"
	}
	if len(operands) == 1 {
		return ToSMT(operands[0])
	}
	rest := maxSMT(operands[1:])
	a := ToSMT(operands[0])
	return SExp(fmt.Sprintf("(ite (<= %s %s) %s %s)", a, rest, rest, a))
}

// String renders a TimeExpr in Filament's abstract surface notation, used
// for diagnostics and the round-trip printer.
func (e TimeExpr) String() string {
	switch e.Op {
	case TimeConcrete:
		return fmt.Sprintf("%d", e.Const)
	case TimeAbstract:
		return e.Var.String()
	case TimeAdd:
		parts := make([]string, len(e.Operands))
		for i, o := range e.Operands {
			parts[i] = o.String()
		}
		return strings.Join(parts, "+")
	case TimeMax:
		parts := make([]string, len(e.Operands))
		for i, o := range e.Operands {
			parts[i] = o.String()
		}
		return "max(" + strings.Join(parts, ", ") + ")"
	default:
		return "?"
	}
}

// FreeVars appends every abstract variable referenced in e to out.
func (e TimeExpr) FreeVars(out map[Id]bool) {
	switch e.Op {
	case TimeAbstract:
		out[e.Var] = true
	case TimeAdd, TimeMax:
		for _, o := range e.Operands {
			o.FreeVars(out)
		}
	}
}

// SubstituteTime replaces every abstract variable in e that appears in
// bindings with its bound TimeExpr, then re-canonicalizes.
func SubstituteTime(e TimeExpr, bindings map[Id]TimeExpr) TimeExpr {
	switch e.Op {
	case TimeConcrete:
		return e
	case TimeAbstract:
		if repl, ok := bindings[e.Var]; ok {
			return repl
		}
		return e
	case TimeAdd:
		if len(e.Operands) == 0 {
			return e
		}
		acc := SubstituteTime(e.Operands[0], bindings)
		for _, o := range e.Operands[1:] {
			acc = Add(acc, SubstituteTime(o, bindings))
		}
		return acc
	case TimeMax:
		if len(e.Operands) == 0 {
			return e
		}
		acc := SubstituteTime(e.Operands[0], bindings)
		for _, o := range e.Operands[1:] {
			acc = Max(acc, SubstituteTime(o, bindings))
		}
		return acc
	default:
		return e
	}
}
