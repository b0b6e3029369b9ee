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
	"encoding/json"
	"fmt"

	"github.com/Jetbl/filament/ast"
)

// fromTimeExpr is timeExprJSON.toAST's inverse, used by EncodeNamespace
// and by the round-trip property test to check that decode(encode(ns))
// reproduces ns.
func fromTimeExpr(e ast.TimeExpr) timeExprJSON {
	switch e.Op {
	case ast.TimeConcrete:
		return timeExprJSON{Op: "concrete", Const: e.Const}
	case ast.TimeAbstract:
		return timeExprJSON{Op: "abstract", Var: e.Var.String()}
	case ast.TimeAdd, ast.TimeMax:
		op := "add"
		if e.Op == ast.TimeMax {
			op = "max"
		}
		operands := make([]timeExprJSON, len(e.Operands))
		for i, o := range e.Operands {
			operands[i] = fromTimeExpr(o)
		}
		return timeExprJSON{Op: op, Operands: operands}
	default:
		return timeExprJSON{}
	}
}

func fromInterval(iv ast.Interval) intervalJSON {
	out := intervalJSON{Start: fromTimeExpr(iv.Start), End: fromTimeExpr(iv.End)}
	if iv.Exact != nil {
		out.Exact = &rangeJSON{Start: fromTimeExpr(iv.Exact.Start), End: fromTimeExpr(iv.Exact.End)}
	}
	return out
}

func fromPortDef(p ast.PortDef) portDefJSON {
	return portDefJSON{Name: p.Name.String(), Interval: fromInterval(p.Interval), Width: p.Width}
}

func fromInterfaceSignal(s ast.InterfaceSignal) interfaceSignalJSON {
	return interfaceSignalJSON{Name: s.Name.String(), TimeVar: s.TimeVar.String()}
}

func fromOp(op ast.OrderOp) (string, error) {
	switch op {
	case ast.OpLe:
		return "<=", nil
	case ast.OpLt:
		return "<", nil
	case ast.OpGe:
		return ">=", nil
	case ast.OpGt:
		return ">", nil
	case ast.OpEq:
		return "=", nil
	default:
		return "", fmt.Errorf("fixtures: unknown OrderOp %d", op)
	}
}

func fromConstraint(c ast.Constraint) (constraintJSON, error) {
	op, err := fromOp(c.Op)
	if err != nil {
		return constraintJSON{}, err
	}
	return constraintJSON{Lhs: fromTimeExpr(c.Lhs), Op: op, Rhs: fromTimeExpr(c.Rhs)}, nil
}

func fromSignature(s ast.Signature) (signatureJSON, error) {
	out := signatureJSON{Name: s.Name.String()}
	for _, v := range s.AbstractVars {
		out.AbstractVars = append(out.AbstractVars, v.String())
	}
	for _, sig := range s.InterfaceSignals {
		out.InterfaceSignals = append(out.InterfaceSignals, fromInterfaceSignal(sig))
	}
	for _, p := range s.Inputs {
		out.Inputs = append(out.Inputs, fromPortDef(p))
	}
	for _, p := range s.Outputs {
		out.Outputs = append(out.Outputs, fromPortDef(p))
	}
	for _, c := range s.Constraints {
		cj, err := fromConstraint(c)
		if err != nil {
			return signatureJSON{}, err
		}
		out.Constraints = append(out.Constraints, cj)
	}
	return out, nil
}

func fromPort(p ast.Port) (portJSON, error) {
	switch p.Kind {
	case ast.PortConstant:
		return portJSON{Kind: "const", Value: p.Constant}, nil
	case ast.PortThis:
		return portJSON{Kind: "this", Name: p.Name.String()}, nil
	case ast.PortComp:
		return portJSON{Kind: "comp", Instance: p.Instance.String(), Port: p.Port.String()}, nil
	default:
		return portJSON{}, fmt.Errorf("fixtures: unknown port kind %d", p.Kind)
	}
}

func fromGuard(g *ast.Guard) (*guardJSON, error) {
	if g == nil {
		return nil, nil
	}
	p, err := fromPort(g.Port)
	if err != nil {
		return nil, err
	}
	or, err := fromGuard(g.Or)
	if err != nil {
		return nil, err
	}
	return &guardJSON{Port: p, Or: or}, nil
}

func fromCommand(c ast.Command) (commandJSON, error) {
	switch c.Kind {
	case ast.CmdInstance:
		return commandJSON{Kind: "instance", Instance: &instanceJSON{
			Name:      c.Instance.Name.String(),
			Component: c.Instance.Component.String(),
		}}, nil
	case ast.CmdInvoke:
		timeArgs := make([]timeExprJSON, len(c.Invoke.TimeArgs))
		for i, t := range c.Invoke.TimeArgs {
			timeArgs[i] = fromTimeExpr(t)
		}
		portArgs := make([]portJSON, len(c.Invoke.PortArgs))
		for i, p := range c.Invoke.PortArgs {
			pj, err := fromPort(p)
			if err != nil {
				return commandJSON{}, err
			}
			portArgs[i] = pj
		}
		return commandJSON{Kind: "invoke", Invoke: &invokeJSON{
			Bind:     c.Invoke.Bind.String(),
			Instance: c.Invoke.Instance.String(),
			TimeArgs: timeArgs,
			PortArgs: portArgs,
		}}, nil
	case ast.CmdConnect:
		dst, err := fromPort(c.Connect.Dst)
		if err != nil {
			return commandJSON{}, err
		}
		src, err := fromPort(c.Connect.Src)
		if err != nil {
			return commandJSON{}, err
		}
		guard, err := fromGuard(c.Connect.Guard)
		if err != nil {
			return commandJSON{}, err
		}
		return commandJSON{Kind: "connect", Connect: &connectJSON{Dst: dst, Src: src, Guard: guard}}, nil
	case ast.CmdWhen:
		body, err := encodeBody(c.When.Body)
		if err != nil {
			return commandJSON{}, err
		}
		return commandJSON{Kind: "when", When: &whenJSON{Time: fromTimeExpr(c.When.Time), Body: body}}, nil
	default:
		return commandJSON{}, fmt.Errorf("fixtures: unknown command kind %d", c.Kind)
	}
}

func encodeBody(cmds []ast.Command) ([]commandJSON, error) {
	out := make([]commandJSON, len(cmds))
	for i, c := range cmds {
		cj, err := fromCommand(c)
		if err != nil {
			return nil, err
		}
		out[i] = cj
	}
	return out, nil
}

func fromComponent(c ast.Component) (componentJSON, error) {
	sig, err := fromSignature(c.Sig)
	if err != nil {
		return componentJSON{}, err
	}
	body, err := encodeBody(c.Body)
	if err != nil {
		return componentJSON{}, err
	}
	return componentJSON{Sig: sig, Body: body}, nil
}

// EncodeNamespace renders ns into the same JSON shape DecodeNamespace
// parses, so that DecodeNamespace(EncodeNamespace(ns)) round-trips any
// namespace built from this package's wire format (spec.md §8's
// round-trip property, restricted to the syntax this package can
// represent at all — Span positions are not part of the wire format and
// are not expected to survive the round trip).
func EncodeNamespace(ns ast.Namespace) ([]byte, error) {
	out := namespaceJSON{Imports: ns.Imports}
	for _, e := range ns.Externals {
		sig, err := fromSignature(e)
		if err != nil {
			return nil, err
		}
		out.Externals = append(out.Externals, sig)
	}
	for _, c := range ns.Components {
		cj, err := fromComponent(c)
		if err != nil {
			return nil, err
		}
		out.Components = append(out.Components, cj)
	}
	blob, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("fixtures: encode namespace: %w", err)
	}
	return blob, nil
}
