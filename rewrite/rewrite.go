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

// Package rewrite normalizes a component's body before analysis.Collect
// walks it. Every transformation here is sugar: it changes how a body
// is shaped, never the set of facts a correct walk of the original body
// would derive.
package rewrite

import "github.com/Jetbl/filament/ast"

// Normalize returns comp with its body desugared: every guardless
// Connect gets an explicit single-leaf guard wrapping its Src, and
// adjacent When blocks sharing a structurally-equal time are merged into one.
// This lets later passes treat "guard" and "nested When" uniformly
// instead of special-casing the sugar forms.
func Normalize(comp ast.Component) ast.Component {
	comp.Body = normalizeBody(comp.Body)
	return comp
}

func normalizeBody(body []ast.Command) []ast.Command {
	out := make([]ast.Command, 0, len(body))
	for _, cmd := range body {
		out = append(out, normalizeCommand(cmd))
	}
	return mergeAdjacentWhens(out)
}

func normalizeCommand(cmd ast.Command) ast.Command {
	switch cmd.Kind {
	case ast.CmdConnect:
		conn := *cmd.Connect
		if conn.Guard == nil {
			conn.Guard = &ast.Guard{Port: conn.Src}
		}
		return ast.ConnectCommand(conn)
	case ast.CmdWhen:
		w := *cmd.When
		w.Body = normalizeBody(w.Body)
		return ast.WhenCommand(w)
	default:
		return cmd
	}
}

// mergeAdjacentWhens folds a run of consecutive When commands sharing a
// structurally-equal time into a single When whose body is their
// concatenation, preserving each command's relative order.
func mergeAdjacentWhens(body []ast.Command) []ast.Command {
	var out []ast.Command
	for _, cmd := range body {
		if cmd.Kind != ast.CmdWhen || len(out) == 0 {
			out = append(out, cmd)
			continue
		}
		last := out[len(out)-1]
		if last.Kind != ast.CmdWhen || !ast.StructuralEq(last.When.Time, cmd.When.Time) {
			out = append(out, cmd)
			continue
		}
		merged := *last.When
		merged.Body = append(append([]ast.Command{}, last.When.Body...), cmd.When.Body...)
		out[len(out)-1] = ast.WhenCommand(merged)
	}
	return out
}
