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

// NestingDepthRule flags When blocks nested deeper than config allows.
// Deep nesting is legal — FactCollector's walk rules place no bound on
// it — but in practice it reads as a sign the body should be split into
// a separate invoked component.
type NestingDepthRule struct{}

func (r *NestingDepthRule) Name() string             { return "nesting-depth" }
func (r *NestingDepthRule) Description() string      { return "Flags When blocks nested past the configured depth" }
func (r *NestingDepthRule) DefaultSeverity() Severity { return SeverityInfo }

func (r *NestingDepthRule) Check(comp ast.Component, config Config) []Result {
	threshold := config.MaxNestingDepth
	if threshold <= 0 {
		threshold = DefaultConfig().MaxNestingDepth
	}
	var out []Result
	var walk func(body []ast.Command, depth int)
	walk = func(body []ast.Command, depth int) {
		for _, cmd := range body {
			if cmd.Kind != ast.CmdWhen {
				continue
			}
			if depth+1 > threshold {
				out = append(out, Result{
					RuleName: r.Name(),
					Severity: r.DefaultSeverity(),
					Message:  fmt.Sprintf("when block nested %d levels deep (threshold: %d); consider extracting a component", depth+1, threshold),
					Span:     cmd.When.Span,
				})
			}
			walk(cmd.When.Body, depth+1)
		}
	}
	walk(comp.Body, 0)
	return out
}
