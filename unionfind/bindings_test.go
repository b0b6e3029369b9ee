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

package unionfind

import (
	"testing"

	"github.com/Jetbl/filament/ast"
)

func TestFromArgsResolve(t *testing.T) {
	tvar := ast.Intern("T")
	b := FromArgs([]ast.Id{tvar}, []ast.TimeExpr{ast.Concrete(5)})
	got, ok := b.Resolve(tvar)
	if !ok {
		t.Fatal("expected T to be bound")
	}
	if !ast.StructuralEq(got, ast.Concrete(5)) {
		t.Errorf("resolved = %v, want 5", got)
	}
}

func TestFromArgsArityMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on arity mismatch")
		}
	}()
	FromArgs([]ast.Id{ast.Intern("T"), ast.Intern("U")}, []ast.TimeExpr{ast.Concrete(1)})
}

func TestDoubleBindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on double bind")
		}
	}()
	b := New()
	v := ast.Intern("T")
	b.Bind(v, ast.Concrete(1))
	b.Bind(v, ast.Concrete(2))
}

func TestMapUsableForSubstitution(t *testing.T) {
	tvar := ast.Intern("T")
	b := FromArgs([]ast.Id{tvar}, []ast.TimeExpr{ast.Concrete(7)})
	e := ast.Add(ast.Abstract(tvar), ast.Concrete(1))
	got := ast.SubstituteTime(e, b.Map())
	if !ast.StructuralEq(got, ast.Concrete(8)) {
		t.Errorf("substitute via Bindings.Map = %v, want 8", got)
	}
}
