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

// Package lint runs advisory style checks against a Namespace. Unlike
// analysis.Collect and engine.Discharge, lint never blocks compilation
// and never produces a diag.Diagnostic: every finding here is something
// the original implementation would only have logged.
package lint

import "github.com/Jetbl/filament/ast"

// Severity classifies a finding's importance; it never affects whether
// checking a namespace succeeds.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// String returns the human-readable name of a severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// Result is a single finding from a lint rule.
type Result struct {
	RuleName  string
	Severity  Severity
	Message   string
	Component string
	Span      ast.Span
}

// Config holds the toggleable configuration for all lint rules.
type Config struct {
	// MaxNestingDepth is the threshold for the nested-when check. Zero
	// means DefaultConfig's value.
	MaxNestingDepth int
	// DisabledRules is a set of rule names to skip.
	DisabledRules map[string]bool
}

// DefaultConfig returns a Config with the defaults spec.md §4.3's
// nesting note implies.
func DefaultConfig() Config {
	return Config{
		MaxNestingDepth: 4,
		DisabledRules:   map[string]bool{},
	}
}

// Rule is the interface every lint check implements.
type Rule interface {
	Name() string
	Description() string
	DefaultSeverity() Severity
	Check(comp ast.Component, config Config) []Result
}

// AllRules returns all built-in lint rules.
func AllRules() []Rule {
	return []Rule{
		&DeadInstanceRule{},
		&NamingConventionRule{},
		&NestingDepthRule{},
		&GuardGapRule{},
	}
}

// Linter runs a configured set of rules against every component in a
// namespace.
type Linter struct {
	config Config
	rules  []Rule
}

// NewLinter creates a Linter with the given config and all registered
// rules.
func NewLinter(config Config) *Linter {
	return &Linter{config: config, rules: AllRules()}
}

// LintNamespace runs every enabled rule against every component,
// stamping each finding's Component field.
func (l *Linter) LintNamespace(ns ast.Namespace) []Result {
	var out []Result
	for _, comp := range ns.Components {
		out = append(out, l.LintComponent(comp)...)
	}
	return out
}

// LintComponent runs every enabled rule against a single component.
func (l *Linter) LintComponent(comp ast.Component) []Result {
	var out []Result
	for _, rule := range l.rules {
		if l.config.DisabledRules[rule.Name()] {
			continue
		}
		for _, r := range rule.Check(comp, l.config) {
			r.Component = comp.Sig.Name.String()
			out = append(out, r)
		}
	}
	return out
}
