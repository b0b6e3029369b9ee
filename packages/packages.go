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

// Package packages resolves a Namespace's import list: de-duplicating
// repeated imports and rendering a make-style dependency file for the
// surrounding build system. Resolving an import path to a parsed
// Namespace is itself out of scope (spec.md leaves concrete syntax and
// file resolution to the parser/driver); this package only tracks which
// paths were named.
package packages

import (
	"fmt"

	"bitbucket.org/creachadair/stringset"
)

// Dedup returns imports with repeats removed, keeping the first
// occurrence's position (stable order matters: a dependency file lists
// each input once, in the order the driver first saw it).
func Dedup(imports []string) []string {
	seen := stringset.New()
	out := make([]string, 0, len(imports))
	for _, imp := range imports {
		if seen.Contains(imp) {
			continue
		}
		seen.Add(imp)
		out = append(out, imp)
	}
	return out
}

// DepFileLines renders a make-style dependency rule for out depending on
// imports, one returned string per output line (the caller joins with
// "\n" and writes the result to the dependency file). Mirrors the
// original driver's dump_dep_file: "out: " prefixes the first line,
// every line but the last ends in " \", and the last line has no " \"
// (nor the prefix, unless it is also the first line).
func DepFileLines(out string, imports []string) []string {
	if len(imports) == 0 {
		return []string{fmt.Sprintf("%s: ", out)}
	}
	last := imports[len(imports)-1]
	rest := imports[:len(imports)-1]
	if len(rest) == 0 {
		return []string{fmt.Sprintf("%s: %s", out, last)}
	}
	lines := make([]string, 0, len(rest)+1)
	lines = append(lines, fmt.Sprintf("%s: %s \\", out, rest[0]))
	for _, dep := range rest[1:] {
		lines = append(lines, fmt.Sprintf("%s \\", dep))
	}
	lines = append(lines, last)
	return lines
}
