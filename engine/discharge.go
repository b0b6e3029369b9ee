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
	log "github.com/golang/glog"

	"github.com/Jetbl/filament/ast"
	"github.com/Jetbl/filament/diag"
)

// Options configures a Discharge run. SolverPath names the SMT solver
// binary to exec (§6: an SMT-LIB2-speaking process read over stdio).
type Options struct {
	SolverPath string
	// ShowModels requests counter-model extraction on a failed fact
	// (driver flag --show-models, §6).
	ShowModels bool
	// SkipDischarge makes Discharge a no-op, for bootstrapping/debugging
	// (driver flag --unsafe-skip-discharge, §6).
	SkipDischarge bool
}

// Discharge decides whether facts holds under assumptions, by opening one
// solver session, declaring every free abstract time variable the facts
// and assumptions mention, asserting the assumptions once, and then
// checking each non-trivial fact inside its own push/pop scope (§4.4).
//
// The returned diagnostics are exactly the facts the solver proved sat or
// unknown (§7's SmtFailure, a recoverable, collected kind); a non-nil
// error means a transport-level failure occurred and checking did not
// complete — per §7, that kind is fatal and short-circuits rather than
// being collected.
func Discharge(facts []ast.Fact, assumptions []ast.Constraint, opts Options) ([]*diag.Diagnostic, error) {
	if opts.SkipDischarge {
		log.V(1).Info("engine: discharge skipped (--unsafe-skip-discharge)")
		return nil, nil
	}

	toCheck := make([]ast.Fact, 0, len(facts))
	for _, f := range facts {
		if !f.IsTriviallyTrue() {
			toCheck = append(toCheck, f)
		}
	}
	if len(toCheck) == 0 && len(assumptions) == 0 {
		return nil, nil
	}

	vars := map[ast.Id]bool{}
	for _, f := range toCheck {
		f.Left.FreeVars(vars)
		f.Right.FreeVars(vars)
	}
	for _, c := range assumptions {
		c.Lhs.FreeVars(vars)
		c.Rhs.FreeVars(vars)
	}
	varList := make([]ast.Id, 0, len(vars))
	for v := range vars {
		varList = append(varList, v)
	}

	sess, err := NewSession(opts.SolverPath)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	if err := sess.Declare(varList, assumptions); err != nil {
		return nil, err
	}

	var diags []*diag.Diagnostic
	for _, f := range toCheck {
		d, err := dischargeOne(sess, f, opts.ShowModels)
		if err != nil {
			return diags, err
		}
		if d != nil {
			diags = append(diags, d)
		}
	}

	if err := sess.Exit(); err != nil {
		return diags, err
	}
	return diags, nil
}

// dischargeOne runs one fact's push/assert/check-sat/pop cycle, returning
// a SmtFailure diagnostic if the fact could not be proved.
func dischargeOne(sess *Session, f ast.Fact, showModels bool) (*diag.Diagnostic, error) {
	if err := sess.Push(); err != nil {
		return nil, err
	}
	if err := sess.Assert(f.ToSMTAssertion()); err != nil {
		return nil, err
	}
	result, err := sess.CheckSat()
	if err != nil {
		return nil, err
	}

	var d *diag.Diagnostic
	if result != Unsat {
		var model map[string]int64
		if showModels {
			model, err = sess.Model()
			if err != nil {
				return nil, err
			}
		}
		d = diag.SmtFailuref(f.Span, f.String(), model)
	}

	if err := sess.Pop(); err != nil {
		return nil, err
	}
	return d, nil
}
