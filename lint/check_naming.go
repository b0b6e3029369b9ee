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

package lint

import (
	"fmt"
	"regexp"

	"github.com/Jetbl/filament/ast"
)

// identNameRe matches lower_snake_case identifiers.
var identNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// NamingConventionRule checks that component, port, and instance names
// follow lower_snake_case.
type NamingConventionRule struct{}

func (r *NamingConventionRule) Name() string        { return "naming-convention" }
func (r *NamingConventionRule) Description() string { return "Checks component, port, and instance naming conventions" }
func (r *NamingConventionRule) DefaultSeverity() Severity { return SeverityWarning }

func (r *NamingConventionRule) Check(comp ast.Component, config Config) []Result {
	var out []Result
	check := func(kind string, id ast.Id, span ast.Span) {
		if !identNameRe.MatchString(id.String()) {
			out = append(out, Result{
				RuleName: r.Name(),
				Severity: r.DefaultSeverity(),
				Message:  fmt.Sprintf("%s %q does not follow lower_snake_case naming convention", kind, id.String()),
				Span:     span,
			})
		}
	}

	check("component", comp.Sig.Name, comp.Sig.Span)
	for _, p := range comp.Sig.Inputs {
		check("port", p.Name, p.Span)
	}
	for _, p := range comp.Sig.Outputs {
		check("port", p.Name, p.Span)
	}
	for _, s := range comp.Sig.InterfaceSignals {
		check("interface signal", s.Name, s.Span)
	}
	walkCommands(comp.Body, func(cmd ast.Command) {
		if cmd.Kind == ast.CmdInstance {
			check("instance", cmd.Instance.Name, cmd.Instance.Span)
		}
	})
	return out
}
