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
	"github.com/Jetbl/filament/factstore"
)

// GuardGapRule flags a guarded connect whose sources, restricted to
// plain ports of the enclosing component's own signature with concrete
// bounds, look like they leave part of the destination's interval
// uncovered. This is purely advisory: Discharge is still the only
// authority on whether the connect actually holds, so the rule only
// speaks up when factstore.CoversJointly can decide the question
// syntactically (every operand concrete); anything involving an
// instance port or an abstract bound is silently skipped, never guessed
// at.
type GuardGapRule struct{}

func (r *GuardGapRule) Name() string        { return "guard-gap" }
func (r *GuardGapRule) Description() string {
	return "Flags a guarded connect whose concrete-bounded sources appear not to jointly cover the destination"
}
func (r *GuardGapRule) DefaultSeverity() Severity { return SeverityWarning }

func (r *GuardGapRule) Check(comp ast.Component, config Config) []Result {
	var out []Result
	walkCommands(comp.Body, func(cmd ast.Command) {
		if cmd.Kind != ast.CmdConnect || cmd.Connect.Guard == nil {
			return
		}
		conn := cmd.Connect
		dstDef, ok := comp.Sig.Port(conn.Dst.Name)
		if conn.Dst.Kind != ast.PortThis || !ok {
			return
		}
		leaves := conn.Guard.Leaves()
		sources := make([]ast.Interval, 0, len(leaves))
		for _, p := range leaves {
			if p.Kind != ast.PortThis {
				return
			}
			pd, ok := comp.Sig.Port(p.Name)
			if !ok {
				return
			}
			sources = append(sources, pd.Interval)
		}
		covers, decided := factstore.CoversJointly(sources, dstDef.Interval)
		if !decided || covers {
			return
		}
		out = append(out, Result{
			RuleName: r.Name(),
			Severity: r.DefaultSeverity(),
			Message:  fmt.Sprintf("guarded sources for %q do not appear to jointly cover its declared interval", conn.Dst.Name.String()),
			Span:     conn.Span,
		})
	})
	return out
}
