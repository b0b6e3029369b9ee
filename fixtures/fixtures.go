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

// Package fixtures decodes a JSON-encoded Namespace. The core is
// oblivious to concrete syntax, so Filament's real parser never passes
// through this package; it stands in for that parser at the core's
// input boundary for tests and the CLI driver's JSON fixture mode.
package fixtures

import (
	"encoding/json"
	"fmt"

	"github.com/Jetbl/filament/ast"
)

type timeExprJSON struct {
	Op       string         `json:"op"`
	Const    int64          `json:"const"`
	Var      string         `json:"var"`
	Operands []timeExprJSON `json:"operands"`
}

func (t timeExprJSON) toAST() (ast.TimeExpr, error) {
	switch t.Op {
	case "concrete":
		return ast.Concrete(t.Const), nil
	case "abstract":
		return ast.Abstract(ast.Intern(t.Var)), nil
	case "add", "max":
		if len(t.Operands) < 2 {
			return ast.TimeExpr{}, fmt.Errorf("fixtures: %s needs at least 2 operands, got %d", t.Op, len(t.Operands))
		}
		acc, err := t.Operands[0].toAST()
		if err != nil {
			return ast.TimeExpr{}, err
		}
		for _, o := range t.Operands[1:] {
			next, err := o.toAST()
			if err != nil {
				return ast.TimeExpr{}, err
			}
			if t.Op == "add" {
				acc = ast.Add(acc, next)
			} else {
				acc = ast.Max(acc, next)
			}
		}
		return acc, nil
	default:
		return ast.TimeExpr{}, fmt.Errorf("fixtures: unknown time expr op %q", t.Op)
	}
}

type rangeJSON struct {
	Start timeExprJSON `json:"start"`
	End   timeExprJSON `json:"end"`
}

type intervalJSON struct {
	Start timeExprJSON `json:"start"`
	End   timeExprJSON `json:"end"`
	Exact *rangeJSON   `json:"exact,omitempty"`
}

func (iv intervalJSON) toAST() (ast.Interval, error) {
	start, err := iv.Start.toAST()
	if err != nil {
		return ast.Interval{}, err
	}
	end, err := iv.End.toAST()
	if err != nil {
		return ast.Interval{}, err
	}
	out := ast.New(start, end)
	if iv.Exact == nil {
		return out, nil
	}
	es, err := iv.Exact.Start.toAST()
	if err != nil {
		return ast.Interval{}, err
	}
	ee, err := iv.Exact.End.toAST()
	if err != nil {
		return ast.Interval{}, err
	}
	return ast.WithExact(out, es, ee)
}

type portDefJSON struct {
	Name     string       `json:"name"`
	Interval intervalJSON `json:"interval"`
	Width    int          `json:"width"`
}

func (p portDefJSON) toAST() (ast.PortDef, error) {
	iv, err := p.Interval.toAST()
	if err != nil {
		return ast.PortDef{}, err
	}
	return ast.PortDef{Name: ast.Intern(p.Name), Interval: iv, Width: p.Width}, nil
}

type interfaceSignalJSON struct {
	Name    string `json:"name"`
	TimeVar string `json:"time_var"`
}

func (s interfaceSignalJSON) toAST() ast.InterfaceSignal {
	return ast.InterfaceSignal{Name: ast.Intern(s.Name), TimeVar: ast.Intern(s.TimeVar)}
}

type constraintJSON struct {
	Lhs timeExprJSON `json:"lhs"`
	Op  string       `json:"op"`
	Rhs timeExprJSON `json:"rhs"`
}

func (c constraintJSON) toAST() (ast.Constraint, error) {
	lhs, err := c.Lhs.toAST()
	if err != nil {
		return ast.Constraint{}, err
	}
	rhs, err := c.Rhs.toAST()
	if err != nil {
		return ast.Constraint{}, err
	}
	op, err := parseOp(c.Op)
	if err != nil {
		return ast.Constraint{}, err
	}
	return ast.Constraint{Lhs: lhs, Op: op, Rhs: rhs}, nil
}

func parseOp(s string) (ast.OrderOp, error) {
	switch s {
	case "<=":
		return ast.OpLe, nil
	case "<":
		return ast.OpLt, nil
	case ">=":
		return ast.OpGe, nil
	case ">":
		return ast.OpGt, nil
	case "=":
		return ast.OpEq, nil
	default:
		return 0, fmt.Errorf("fixtures: unknown constraint op %q", s)
	}
}

type signatureJSON struct {
	Name             string                `json:"name"`
	AbstractVars     []string              `json:"abstract_vars"`
	InterfaceSignals []interfaceSignalJSON `json:"interface_signals"`
	Inputs           []portDefJSON         `json:"inputs"`
	Outputs          []portDefJSON         `json:"outputs"`
	Constraints      []constraintJSON      `json:"constraints"`
}

func (s signatureJSON) toAST() (ast.Signature, error) {
	out := ast.Signature{Name: ast.Intern(s.Name)}
	for _, v := range s.AbstractVars {
		out.AbstractVars = append(out.AbstractVars, ast.Intern(v))
	}
	for _, sig := range s.InterfaceSignals {
		out.InterfaceSignals = append(out.InterfaceSignals, sig.toAST())
	}
	for _, p := range s.Inputs {
		pd, err := p.toAST()
		if err != nil {
			return ast.Signature{}, err
		}
		out.Inputs = append(out.Inputs, pd)
	}
	for _, p := range s.Outputs {
		pd, err := p.toAST()
		if err != nil {
			return ast.Signature{}, err
		}
		out.Outputs = append(out.Outputs, pd)
	}
	for _, c := range s.Constraints {
		cc, err := c.toAST()
		if err != nil {
			return ast.Signature{}, err
		}
		out.Constraints = append(out.Constraints, cc)
	}
	return out, nil
}

type portJSON struct {
	Kind     string `json:"kind"`
	Value    int    `json:"value"`
	Name     string `json:"name"`
	Instance string `json:"instance"`
	Port     string `json:"port"`
}

func (p portJSON) toAST() (ast.Port, error) {
	switch p.Kind {
	case "const":
		return ast.ConstantPort(p.Value, ast.Span{}), nil
	case "this":
		return ast.ThisPort(ast.Intern(p.Name), ast.Span{}), nil
	case "comp":
		return ast.CompPort(ast.Intern(p.Instance), ast.Intern(p.Port), ast.Span{}), nil
	default:
		return ast.Port{}, fmt.Errorf("fixtures: unknown port kind %q", p.Kind)
	}
}

type guardJSON struct {
	Port portJSON   `json:"port"`
	Or   *guardJSON `json:"or,omitempty"`
}

func (g *guardJSON) toAST() (*ast.Guard, error) {
	if g == nil {
		return nil, nil
	}
	p, err := g.Port.toAST()
	if err != nil {
		return nil, err
	}
	or, err := g.Or.toAST()
	if err != nil {
		return nil, err
	}
	return &ast.Guard{Port: p, Or: or}, nil
}

type commandJSON struct {
	Kind     string        `json:"kind"`
	Instance *instanceJSON `json:"instance,omitempty"`
	Invoke   *invokeJSON   `json:"invoke,omitempty"`
	Connect  *connectJSON  `json:"connect,omitempty"`
	When     *whenJSON     `json:"when,omitempty"`
}

type instanceJSON struct {
	Name      string `json:"name"`
	Component string `json:"component"`
}

type invokeJSON struct {
	Bind     string         `json:"bind"`
	Instance string         `json:"instance"`
	TimeArgs []timeExprJSON `json:"time_args"`
	PortArgs []portJSON     `json:"port_args"`
}

type connectJSON struct {
	Dst   portJSON   `json:"dst"`
	Src   portJSON   `json:"src"`
	Guard *guardJSON `json:"guard,omitempty"`
}

type whenJSON struct {
	Time timeExprJSON  `json:"time"`
	Body []commandJSON `json:"body"`
}

func (c commandJSON) toAST() (ast.Command, error) {
	switch c.Kind {
	case "instance":
		if c.Instance == nil {
			return ast.Command{}, fmt.Errorf("fixtures: instance command missing instance field")
		}
		return ast.InstanceCommand(ast.Instance{
			Name:      ast.Intern(c.Instance.Name),
			Component: ast.Intern(c.Instance.Component),
		}), nil
	case "invoke":
		if c.Invoke == nil {
			return ast.Command{}, fmt.Errorf("fixtures: invoke command missing invoke field")
		}
		timeArgs := make([]ast.TimeExpr, 0, len(c.Invoke.TimeArgs))
		for _, t := range c.Invoke.TimeArgs {
			te, err := t.toAST()
			if err != nil {
				return ast.Command{}, err
			}
			timeArgs = append(timeArgs, te)
		}
		var portArgs []ast.Port
		for _, p := range c.Invoke.PortArgs {
			pa, err := p.toAST()
			if err != nil {
				return ast.Command{}, err
			}
			portArgs = append(portArgs, pa)
		}
		return ast.InvokeCommand(ast.Invoke{
			Bind:     ast.Intern(c.Invoke.Bind),
			Instance: ast.Intern(c.Invoke.Instance),
			TimeArgs: timeArgs,
			PortArgs: portArgs,
		}), nil
	case "connect":
		if c.Connect == nil {
			return ast.Command{}, fmt.Errorf("fixtures: connect command missing connect field")
		}
		dst, err := c.Connect.Dst.toAST()
		if err != nil {
			return ast.Command{}, err
		}
		src, err := c.Connect.Src.toAST()
		if err != nil {
			return ast.Command{}, err
		}
		guard, err := c.Connect.Guard.toAST()
		if err != nil {
			return ast.Command{}, err
		}
		return ast.ConnectCommand(ast.Connect{Dst: dst, Src: src, Guard: guard}), nil
	case "when":
		if c.When == nil {
			return ast.Command{}, fmt.Errorf("fixtures: when command missing when field")
		}
		t, err := c.When.Time.toAST()
		if err != nil {
			return ast.Command{}, err
		}
		body, err := decodeBody(c.When.Body)
		if err != nil {
			return ast.Command{}, err
		}
		return ast.WhenCommand(ast.When{Time: t, Body: body}), nil
	default:
		return ast.Command{}, fmt.Errorf("fixtures: unknown command kind %q", c.Kind)
	}
}

func decodeBody(cmds []commandJSON) ([]ast.Command, error) {
	out := make([]ast.Command, 0, len(cmds))
	for _, c := range cmds {
		cc, err := c.toAST()
		if err != nil {
			return nil, err
		}
		out = append(out, cc)
	}
	return out, nil
}

type componentJSON struct {
	Sig  signatureJSON `json:"sig"`
	Body []commandJSON `json:"body"`
}

func (c componentJSON) toAST() (ast.Component, error) {
	sig, err := c.Sig.toAST()
	if err != nil {
		return ast.Component{}, err
	}
	body, err := decodeBody(c.Body)
	if err != nil {
		return ast.Component{}, err
	}
	return ast.Component{Sig: sig, Body: body}, nil
}

type namespaceJSON struct {
	Imports    []string        `json:"imports"`
	Externals  []signatureJSON `json:"externals"`
	Components []componentJSON `json:"components"`
}

// DecodeNamespace parses a JSON-encoded Namespace, the fixed wire
// format this package stands in for a real parser with.
func DecodeNamespace(blob []byte) (ast.Namespace, error) {
	var raw namespaceJSON
	if err := json.Unmarshal(blob, &raw); err != nil {
		return ast.Namespace{}, fmt.Errorf("fixtures: decode namespace: %w", err)
	}
	out := ast.Namespace{Imports: raw.Imports}
	for _, e := range raw.Externals {
		sig, err := e.toAST()
		if err != nil {
			return ast.Namespace{}, err
		}
		out.Externals = append(out.Externals, sig)
	}
	for _, c := range raw.Components {
		comp, err := c.toAST()
		if err != nil {
			return ast.Namespace{}, err
		}
		out.Components = append(out.Components, comp)
	}
	return out, nil
}
