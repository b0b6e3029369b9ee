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

package analysis

import (
	"fmt"

	"github.com/Jetbl/filament/ast"
	"github.com/Jetbl/filament/diag"
	"github.com/Jetbl/filament/factstore"
	"github.com/Jetbl/filament/symbols"
	"github.com/Jetbl/filament/unionfind"
)

// resolved is what resolvePort returns for a Port reference: its
// Interval, declared bitwidth, and whether it's a bare constant (which
// has no meaningful timing interval and is always considered live).
type resolved struct {
	interval ast.Interval
	width    int
	constant bool
}

// resolvePort looks up the Interval and width a Port reference denotes
// under the current environment: a port of the enclosing component's own
// signature, an interface signal, or a named instance's port (substituted
// per the instance's most recent invocation, if any).
func resolvePort(e *env, sig *ast.Signature, p ast.Port) (resolved, *diag.Diagnostic) {
	switch p.Kind {
	case ast.PortConstant:
		return resolved{width: p.Constant, constant: true}, nil
	case ast.PortThis:
		if pd, ok := sig.Port(p.Name); ok {
			return resolved{interval: pd.Interval, width: pd.Width}, nil
		}
		for _, s := range sig.InterfaceSignals {
			if s.Name.Equals(p.Name) {
				return resolved{interval: s.AsInterval(), width: 1}, nil
			}
		}
		return resolved{}, diag.Undefinedf(p.Name, "port", p.Span)
	case ast.PortComp:
		bi, ok := e.lookupInstance(p.Instance)
		if !ok {
			return resolved{}, diag.Undefinedf(p.Instance, "instance", p.Span)
		}
		pd, ok := bi.sig.Port(p.Port)
		if !ok {
			return resolved{}, diag.Undefinedf(p.Port, "port", p.Span)
		}
		iv := pd.Interval
		if bi.bindings != nil {
			iv = iv.Substitute(bi.bindings)
		}
		return resolved{interval: iv, width: pd.Width}, nil
	default:
		return resolved{}, diag.Malformedf(p.Span, "unrecognized port reference")
	}
}

// Collect walks comp's body in source order, producing the Facts whose
// conjoint truth is necessary and sufficient for comp to be temporally
// well-formed under its declared constraints (§4.3).
//
// Facts accumulate in a factstore.FactSet owned for the duration of this
// call (§3 "Lifecycle"): the set is built fresh per component and handed
// back by value via All(), never retained across calls.
//
// Recoverable errors (Undefined, AlreadyBound, Malformed) are collected
// into diags and do not stop the walk, so a component with several
// independent problems reports all of them (§8 scenario S6). err is
// non-nil only for a malformed Command value that makes the rest of the
// walk meaningless (an unrecognized Command.Kind) — a condition that
// indicates a bug in the AST's construction, not a user-facing input
// error.
func Collect(comp ast.Component, sigs *symbols.Registry) ([]ast.Fact, []*diag.Diagnostic, error) {
	e := newEnv(&comp.Sig, sigs)
	fs := factstore.NewFactSet(len(comp.Sig.Constraints))
	var diags []*diag.Diagnostic

	for _, c := range comp.Sig.Constraints {
		fs.Add(ast.ConstraintToFact(c))
	}

	diags, err := walkCommands(e, &comp.Sig, comp.Body, fs, diags)
	return fs.All(), diags, err
}

func walkCommands(e *env, sig *ast.Signature, cmds []ast.Command, fs *factstore.FactSet, diags []*diag.Diagnostic) ([]*diag.Diagnostic, error) {
	for _, c := range cmds {
		var err error
		diags, err = walkCommand(e, sig, c, fs, diags)
		if err != nil {
			return diags, err
		}
	}
	return diags, nil
}

func walkCommand(e *env, sig *ast.Signature, c ast.Command, fs *factstore.FactSet, diags []*diag.Diagnostic) ([]*diag.Diagnostic, error) {
	switch c.Kind {
	case ast.CmdInstance:
		return collectInstance(e, *c.Instance, diags), nil
	case ast.CmdInvoke:
		return collectInvoke(e, sig, *c.Invoke, fs, diags), nil
	case ast.CmdConnect:
		return collectConnect(e, sig, *c.Connect, fs, diags), nil
	case ast.CmdWhen:
		return walkCommands(e.withWhen(c.When.Time), sig, c.When.Body, fs, diags)
	default:
		return diags, fmt.Errorf("analysis: command with unrecognized kind %d", c.Kind)
	}
}

// collectInstance implements walk rule 1: an Instance introduces a
// binding; no facts are emitted.
func collectInstance(e *env, inst ast.Instance, diags []*diag.Diagnostic) []*diag.Diagnostic {
	_, dup, resolvedOk := e.declareInstance(inst.Name, inst.Component)
	if dup {
		return append(diags, diag.AlreadyBoundf(inst.Name, "an instance", inst.Span))
	}
	if !resolvedOk {
		diags = append(diags, diag.Undefinedf(inst.Component, "component", inst.Span))
	}
	return diags
}

// collectInvoke implements walk rule 2.
func collectInvoke(e *env, sig *ast.Signature, inv ast.Invoke, fs *factstore.FactSet, diags []*diag.Diagnostic) []*diag.Diagnostic {
	bi, ok := e.lookupInstance(inv.Instance)
	if !ok {
		return append(diags, diag.Undefinedf(inv.Instance, "instance", inv.Span))
	}
	if len(inv.TimeArgs) != len(bi.sig.AbstractVars) {
		return append(diags, diag.Malformedf(inv.Span,
			"invocation of %s supplies %d time argument(s), signature declares %d",
			bi.component, len(inv.TimeArgs), len(bi.sig.AbstractVars)))
	}

	bindings := unionfind.FromArgs(bi.sig.AbstractVars, inv.TimeArgs)
	bi.bindings = bindings.Map()

	for _, c := range bi.sig.Constraints {
		fs.Add(ast.ConstraintToFact(c.Substitute(bi.bindings)))
	}

	for i, arg := range inv.PortArgs {
		if i >= len(bi.sig.Inputs) {
			diags = append(diags, diag.Malformedf(inv.Span,
				"invocation of %s supplies more port arguments than it has inputs", bi.component))
			break
		}
		want := bi.sig.Inputs[i].Interval.Substitute(bi.bindings)
		res, d := resolvePort(e, sig, arg)
		if d != nil {
			diags = append(diags, d)
			continue
		}
		if !res.constant && res.width != bi.sig.Inputs[i].Width {
			diags = append(diags, diag.Malformedf(arg.Span,
				"width mismatch: argument is %d bits, input %s expects %d",
				res.width, bi.sig.Inputs[i].Name, bi.sig.Inputs[i].Width))
			continue
		}
		if res.constant {
			continue
		}
		appendInvocationArgFact(fs, want, res.interval, inv.Span)
	}

	for _, out := range bi.sig.Outputs {
		bi.outputs[out.Name] = out.Interval.Substitute(bi.bindings)
	}
	return diags
}

// collectConnect implements walk rule 3.
func collectConnect(e *env, sig *ast.Signature, conn ast.Connect, fs *factstore.FactSet, diags []*diag.Diagnostic) []*diag.Diagnostic {
	dst, d := resolvePort(e, sig, conn.Dst)
	if d != nil {
		return append(diags, d)
	}

	sources := []ast.Port{conn.Src}
	if conn.Guard != nil {
		sources = conn.Guard.Leaves()
	}

	for _, srcPort := range sources {
		src, d := resolvePort(e, sig, srcPort)
		if d != nil {
			diags = append(diags, d)
			continue
		}
		if !src.constant && !dst.constant && src.width != dst.width {
			diags = append(diags, diag.Malformedf(conn.Span,
				"width mismatch: source is %d bits, destination %s expects %d",
				src.width, conn.Dst, dst.width))
			continue
		}
		if src.constant || dst.constant {
			continue
		}
		appendConnectionFact(fs, src.interval, dstOuter(dst.interval), conn.Span)
		if dst.interval.Exact != nil {
			fs.Add(ast.NewEquality(src.interval, ast.Interval{
				Start: dst.interval.Exact.Start, End: dst.interval.Exact.End,
			}, conn.Span))
		}
	}
	return diags
}

// dstOuter strips a destination's exact sub-range, leaving only the outer
// [Start, End) so appendConnectionFact compares against the declared
// range, not the tighter exact window (which is checked separately with
// an Equality fact).
func dstOuter(iv ast.Interval) ast.Interval {
	return ast.Interval{Start: iv.Start, End: iv.End}
}

// appendConnectionFact implements the two edge cases of §4.3's
// "Tie-breaks and edge cases": a connect against an empty destination is
// vacuously satisfied (no instance ever needs the signal, so no
// obligation is emitted), while a connect from an empty source into a
// non-empty destination is a guaranteed failure — nothing is ever
// supplied during the window the destination demands it, which plain
// interval-subset arithmetic would otherwise accept vacuously (∅ is a
// subset of everything). Both are decided structurally, without a solver
// round trip, the same way width mismatches are.
func appendConnectionFact(fs *factstore.FactSet, src, dst ast.Interval, sp ast.Span) {
	if dst.IsEmpty() {
		return
	}
	if src.IsEmpty() {
		// Force an unsatisfiable fact so Discharge reports it as a real
		// failure rather than silently dropping the obligation: assert
		// 0 == 1, which can never be proved.
		fs.Add(ast.NewEquality(ast.New(ast.Concrete(0), ast.Concrete(0)), ast.New(ast.Concrete(1), ast.Concrete(1)), sp))
		return
	}
	fs.Add(ast.NewSubset(src, dst, sp))
}

// appendInvocationArgFact implements §4.3 rule 2's per-argument
// obligation: for input pⱼ with substituted interval Iⱼ, the actual
// argument must be valid on an interval A such that Iⱼ ⊆ A — the reverse
// pairing from appendConnectionFact's Subset(supply, requirement), since
// here the callee's declared interval is the requirement (want) and the
// caller's argument is the supply. The same two tie-breaks apply, keyed
// to those roles rather than to argument position: an input the callee
// never actually requires (want empty) is vacuously satisfied no matter
// what is wired in, while an argument that is never valid (supplied
// empty) against a real requirement is a guaranteed failure.
func appendInvocationArgFact(fs *factstore.FactSet, want, supplied ast.Interval, sp ast.Span) {
	if want.IsEmpty() {
		return
	}
	if supplied.IsEmpty() {
		fs.Add(ast.NewEquality(ast.New(ast.Concrete(0), ast.Concrete(0)), ast.New(ast.Concrete(1), ast.Concrete(1)), sp))
		return
	}
	fs.Add(ast.NewSubset(want, supplied, sp))
}
