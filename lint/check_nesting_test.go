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
	"testing"

	"github.com/Jetbl/filament/ast"
)

// nestWhen builds n levels of nested When blocks around an empty body.
func nestWhen(n int) []ast.Command {
	body := []ast.Command{}
	for i := 0; i < n; i++ {
		body = []ast.Command{ast.WhenCommand(ast.When{Time: ast.Concrete(0), Body: body})}
	}
	return body
}

func TestNestingDepthRuleUnderThresholdIsQuiet(t *testing.T) {
	comp := ast.Component{Sig: ast.Signature{Name: ast.Intern("lint_nest_ok")}, Body: nestWhen(4)}
	r := &NestingDepthRule{}
	got := r.Check(comp, DefaultConfig())
	if len(got) != 0 {
		t.Fatalf("expected no findings at exactly the threshold, got %v", got)
	}
}

func TestNestingDepthRuleFlagsOverThreshold(t *testing.T) {
	comp := ast.Component{Sig: ast.Signature{Name: ast.Intern("lint_nest_bad")}, Body: nestWhen(5)}
	r := &NestingDepthRule{}
	got := r.Check(comp, DefaultConfig())
	if len(got) != 1 {
		t.Fatalf("expected 1 finding for the 5th nesting level, got %d: %v", len(got), got)
	}
}

func TestNestingDepthRuleRespectsCustomThreshold(t *testing.T) {
	comp := ast.Component{Sig: ast.Signature{Name: ast.Intern("lint_nest_custom")}, Body: nestWhen(2)}
	r := &NestingDepthRule{}
	got := r.Check(comp, Config{MaxNestingDepth: 1})
	if len(got) != 1 {
		t.Fatalf("expected 1 finding past a depth-1 threshold, got %d: %v", len(got), got)
	}
}
