// Copyright 2023 Google LLC
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

package fixtures

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Jetbl/filament/ast"
)

// idComparer lets cmp.Diff recurse through ast.Id (an interned key, not
// exported) by its own equality notion instead of panicking on an
// unexported field.
var idComparer = cmp.Comparer(func(a, b ast.Id) bool { return a.Equals(b) })

// roundtripNamespace builds a namespace exercising every command form
// and a guard OR-tree, so the round-trip test walks every branch
// fromCommand/toAST share.
func roundtripNamespace() ast.Namespace {
	tvar := ast.Intern("rt-T")
	ext := ast.Signature{
		Name:         ast.Intern("rt-ext"),
		AbstractVars: []ast.Id{tvar},
		Inputs: []ast.PortDef{
			{Name: ast.Intern("in"), Interval: ast.New(ast.Abstract(tvar), ast.Add(ast.Abstract(tvar), ast.Concrete(1))), Width: 4},
		},
		Constraints: []ast.Constraint{
			{Lhs: ast.Abstract(tvar), Op: ast.OpGe, Rhs: ast.Concrete(0)},
		},
	}
	outer := ast.New(ast.Concrete(0), ast.Concrete(8))
	withExact, err := ast.WithExact(outer, ast.Concrete(2), ast.Concrete(4))
	if err != nil {
		panic(err)
	}
	comp := ast.Component{
		Sig: ast.Signature{
			Name: ast.Intern("rt-comp"),
			InterfaceSignals: []ast.InterfaceSignal{
				{Name: ast.Intern("go"), TimeVar: tvar},
			},
			Inputs: []ast.PortDef{
				{Name: ast.Intern("a"), Interval: withExact, Width: 4},
				{Name: ast.Intern("b"), Interval: ast.New(ast.Concrete(0), ast.Concrete(2)), Width: 4},
			},
			Outputs: []ast.PortDef{
				{Name: ast.Intern("o"), Interval: ast.New(ast.Concrete(0), ast.Concrete(2)), Width: 4},
			},
		},
		Body: []ast.Command{
			ast.InstanceCommand(ast.Instance{Name: ast.Intern("x"), Component: ext.Name}),
			ast.InvokeCommand(ast.Invoke{
				Bind:     ast.Intern("bound"),
				Instance: ast.Intern("x"),
				TimeArgs: []ast.TimeExpr{ast.Max(ast.Concrete(1), ast.Concrete(2))},
				PortArgs: []ast.Port{ast.ThisPort(ast.Intern("a"), ast.Span{})},
			}),
			ast.ConnectCommand(ast.Connect{
				Dst: ast.ThisPort(ast.Intern("o"), ast.Span{}),
				Src: ast.CompPort(ast.Intern("x"), ast.Intern("out"), ast.Span{}),
				Guard: &ast.Guard{
					Port: ast.ThisPort(ast.Intern("a"), ast.Span{}),
					Or:   &ast.Guard{Port: ast.ThisPort(ast.Intern("b"), ast.Span{})},
				},
			}),
			ast.WhenCommand(ast.When{
				Time: ast.Abstract(tvar),
				Body: []ast.Command{
					ast.ConnectCommand(ast.Connect{
						Dst: ast.ThisPort(ast.Intern("o"), ast.Span{}),
						Src: ast.ConstantPort(3, ast.Span{}),
					}),
				},
			}),
		},
	}
	return ast.Namespace{
		Imports:    []string{"rt-pkg"},
		Externals:  []ast.Signature{ext},
		Components: []ast.Component{comp},
	}
}

// TestNamespaceRoundTripsThroughWireFormat is spec.md §8's round-trip
// property for the subset of syntax this package's JSON wire format can
// represent: decode(encode(ns)) is structurally equal to ns.
func TestNamespaceRoundTripsThroughWireFormat(t *testing.T) {
	want := roundtripNamespace()
	blob, err := EncodeNamespace(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeNamespace(blob)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(want, got, idComparer); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// TestEncodeThenDecodeIsIdempotent checks that re-encoding the decoded
// result reproduces the same JSON shape, i.e. a second round trip is a
// no-op once the first has stabilized.
func TestEncodeThenDecodeIsIdempotent(t *testing.T) {
	ns := roundtripNamespace()
	blob1, err := EncodeNamespace(ns)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeNamespace(blob1)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	blob2, err := EncodeNamespace(decoded)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if string(blob1) != string(blob2) {
		t.Fatalf("re-encoding the decoded namespace changed the wire form:\n%s\nvs\n%s", blob1, blob2)
	}
}
