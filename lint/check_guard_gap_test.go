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

func guardGapComponent(aStart, aEnd, bStart, bEnd, dStart, dEnd int64) ast.Component {
	return ast.Component{
		Sig: ast.Signature{
			Name: ast.Intern("lint-gap"),
			Inputs: []ast.PortDef{
				{Name: ast.Intern("a"), Interval: ast.New(ast.Concrete(aStart), ast.Concrete(aEnd)), Width: 1},
				{Name: ast.Intern("b"), Interval: ast.New(ast.Concrete(bStart), ast.Concrete(bEnd)), Width: 1},
			},
			Outputs: []ast.PortDef{
				{Name: ast.Intern("o"), Interval: ast.New(ast.Concrete(dStart), ast.Concrete(dEnd)), Width: 1},
			},
		},
		Body: []ast.Command{
			ast.ConnectCommand(ast.Connect{
				Dst: ast.ThisPort(ast.Intern("o"), ast.Span{}),
				Src: ast.ThisPort(ast.Intern("a"), ast.Span{}),
				Guard: &ast.Guard{
					Port: ast.ThisPort(ast.Intern("a"), ast.Span{}),
					Or:   &ast.Guard{Port: ast.ThisPort(ast.Intern("b"), ast.Span{})},
				},
			}),
		},
	}
}

func TestGuardGapRuleFlagsUncoveredDestination(t *testing.T) {
	comp := guardGapComponent(0, 2, 2, 3, 0, 4)
	r := &GuardGapRule{}
	got := r.Check(comp, DefaultConfig())
	if len(got) != 1 {
		t.Fatalf("expected 1 finding for a gap at [3,4), got %d: %v", len(got), got)
	}
}

func TestGuardGapRuleIsQuietWhenFullyCovered(t *testing.T) {
	comp := guardGapComponent(0, 2, 2, 4, 0, 4)
	r := &GuardGapRule{}
	got := r.Check(comp, DefaultConfig())
	if len(got) != 0 {
		t.Fatalf("expected no findings, got %v", got)
	}
}

func TestGuardGapRuleSkipsUnguardedConnect(t *testing.T) {
	comp := ast.Component{
		Sig: ast.Signature{
			Name: ast.Intern("lint-gap-unguarded"),
			Inputs: []ast.PortDef{
				{Name: ast.Intern("a"), Interval: ast.New(ast.Concrete(0), ast.Concrete(1)), Width: 1},
			},
			Outputs: []ast.PortDef{
				{Name: ast.Intern("o"), Interval: ast.New(ast.Concrete(0), ast.Concrete(1)), Width: 1},
			},
		},
		Body: []ast.Command{
			ast.ConnectCommand(ast.Connect{
				Dst: ast.ThisPort(ast.Intern("o"), ast.Span{}),
				Src: ast.ThisPort(ast.Intern("a"), ast.Span{}),
			}),
		},
	}
	r := &GuardGapRule{}
	got := r.Check(comp, DefaultConfig())
	if len(got) != 0 {
		t.Fatalf("unguarded connects are never checked for coverage, got %v", got)
	}
}

func TestGuardGapRuleSkipsAbstractBounds(t *testing.T) {
	tvar := ast.Intern("lint-gap-abstract-T")
	comp := ast.Component{
		Sig: ast.Signature{
			Name:         ast.Intern("lint-gap-abstract"),
			AbstractVars: []ast.Id{tvar},
			Inputs: []ast.PortDef{
				{Name: ast.Intern("a"), Interval: ast.New(ast.Abstract(tvar), ast.Add(ast.Abstract(tvar), ast.Concrete(1))), Width: 1},
			},
			Outputs: []ast.PortDef{
				{Name: ast.Intern("o"), Interval: ast.New(ast.Abstract(tvar), ast.Add(ast.Abstract(tvar), ast.Concrete(1))), Width: 1},
			},
		},
		Body: []ast.Command{
			ast.ConnectCommand(ast.Connect{
				Dst:   ast.ThisPort(ast.Intern("o"), ast.Span{}),
				Src:   ast.ThisPort(ast.Intern("a"), ast.Span{}),
				Guard: &ast.Guard{Port: ast.ThisPort(ast.Intern("a"), ast.Span{})},
			}),
		},
	}
	r := &GuardGapRule{}
	got := r.Check(comp, DefaultConfig())
	if len(got) != 0 {
		t.Fatalf("an abstract-bounded interval is never decidable, expected no findings, got %v", got)
	}
}
