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

	"github.com/Jetbl/filament/ast"
)

// DeadInstanceRule flags instances that are declared but never invoked.
// spec.md §4.3 is explicit that FactCollector treats this as fine — no
// facts are ever derived from a dead instance's ports — so the check
// lives here rather than as a Diagnostic.
type DeadInstanceRule struct{}

func (r *DeadInstanceRule) Name() string             { return "dead-instance" }
func (r *DeadInstanceRule) Description() string      { return "Flags declared instances that are never invoked" }
func (r *DeadInstanceRule) DefaultSeverity() Severity { return SeverityInfo }

func (r *DeadInstanceRule) Check(comp ast.Component, config Config) []Result {
	declared := map[ast.Id]ast.Span{}
	invoked := map[ast.Id]bool{}
	walkCommands(comp.Body, func(cmd ast.Command) {
		switch cmd.Kind {
		case ast.CmdInstance:
			declared[cmd.Instance.Name] = cmd.Instance.Span
		case ast.CmdInvoke:
			invoked[cmd.Invoke.Instance] = true
		}
	})

	var out []Result
	for name, span := range declared {
		if invoked[name] {
			continue
		}
		out = append(out, Result{
			RuleName: r.Name(),
			Severity: r.DefaultSeverity(),
			Message:  fmt.Sprintf("instance %q is declared but never invoked", name.String()),
			Span:     span,
		})
	}
	return out
}

// walkCommands visits every command in body, recursing into When blocks,
// in source order.
func walkCommands(body []ast.Command, visit func(ast.Command)) {
	for _, cmd := range body {
		visit(cmd)
		if cmd.Kind == ast.CmdWhen {
			walkCommands(cmd.When.Body, visit)
		}
	}
}
