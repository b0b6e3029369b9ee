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

// Package interpreter drives a single compiler pass over a Namespace:
// rewrite, then Collect, then Discharge, per component in declaration
// order, plus lint. It is the one place test golden scenarios and the
// interactive REPL both go through, so the two never drift apart on
// how a Namespace is actually checked.
package interpreter

import (
	log "github.com/golang/glog"

	"github.com/Jetbl/filament/analysis"
	"github.com/Jetbl/filament/ast"
	"github.com/Jetbl/filament/diag"
	"github.com/Jetbl/filament/engine"
	"github.com/Jetbl/filament/lint"
	"github.com/Jetbl/filament/rewrite"
	"github.com/Jetbl/filament/symbols"
)

// Options configures a Session's checking behavior; it is threaded
// straight through to engine.Discharge.
type Options struct {
	SolverPath    string
	ShowModels    bool
	SkipDischarge bool
}

// Result is one component's outcome: its recoverable diagnostics (§7),
// any lint findings, and whether it passed.
type Result struct {
	Component   string
	Diagnostics []*diag.Diagnostic
	Lint        []lint.Result
}

// Ok reports whether the component produced no diagnostics. Lint
// findings never affect this, since lint is advisory only.
func (r Result) Ok() bool {
	return len(r.Diagnostics) == 0
}

// Session holds a Namespace's registered signatures across a run of
// Check calls, one per component, in the namespace's declaration order.
type Session struct {
	ns     ast.Namespace
	sigs   *symbols.Registry
	linter *lint.Linter
	opts   Options
}

// Load registers every external and component signature in ns (§9's
// forward-reference rule), returning the AlreadyBound diagnostics
// encountered, if any. The Session is usable for Check calls even if
// diagnostics are returned, since a later, independent component may
// still be uniquely named.
func Load(ns ast.Namespace, opts Options) (*Session, []*diag.Diagnostic) {
	sigs, diags := symbols.BuildRegistry(ns)
	return &Session{
		ns:     ns,
		sigs:   sigs,
		linter: lint.NewLinter(lint.DefaultConfig()),
		opts:   opts,
	}, diags
}

// CheckAll runs Check over every component in the namespace, in
// declaration order, short-circuiting only on a fatal (transport-level)
// error.
func (s *Session) CheckAll() ([]Result, error) {
	out := make([]Result, 0, len(s.ns.Components))
	for _, comp := range s.ns.Components {
		r, err := s.Check(comp)
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Check runs rewrite.Normalize, analysis.Collect, and engine.Discharge
// over a single component, then lint.Linter over its un-normalized body
// (lint reports against what the author wrote, not the desugared form).
func (s *Session) Check(comp ast.Component) (Result, error) {
	log.V(1).Infof("interpreter: checking component %q", comp.Sig.Name)

	lintFindings := s.linter.LintComponent(comp)

	normalized := rewrite.Normalize(comp)
	facts, diags, err := analysis.Collect(normalized, s.sigs)
	if err != nil {
		return Result{Component: comp.Sig.Name.String(), Diagnostics: diags, Lint: lintFindings}, err
	}

	dischargeDiags, err := engine.Discharge(facts, comp.Sig.Constraints, engine.Options{
		SolverPath:    s.opts.SolverPath,
		ShowModels:    s.opts.ShowModels,
		SkipDischarge: s.opts.SkipDischarge,
	})
	diags = append(diags, dischargeDiags...)
	if err != nil {
		return Result{Component: comp.Sig.Name.String(), Diagnostics: diags, Lint: lintFindings}, err
	}

	return Result{Component: comp.Sig.Name.String(), Diagnostics: diags, Lint: lintFindings}, nil
}
