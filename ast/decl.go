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

package ast

// PortDef is a named port with a validity Interval and a positive
// bitwidth.
type PortDef struct {
	Name     Id
	Interval Interval
	Width    int
	Span     Span
}

// InterfaceSignal is a one-bit control pulse that fires at TimeVar;
// conceptually a degenerate port of interval [TimeVar, TimeVar+1).
type InterfaceSignal struct {
	Name    Id
	TimeVar Id
	Span    Span
}

// AsInterval returns the degenerate interval this signal occupies.
func (s InterfaceSignal) AsInterval() Interval {
	return New(Abstract(s.TimeVar), Add(Abstract(s.TimeVar), Concrete(1)))
}

// OrderOp is a comparison operator appearing in a Constraint.
type OrderOp int

const (
	OpLe OrderOp = iota
	OpLt
	OpGe
	OpGt
	OpEq
)

func (op OrderOp) String() string {
	switch op {
	case OpLe:
		return "<="
	case OpLt:
		return "<"
	case OpGe:
		return ">="
	case OpGt:
		return ">"
	case OpEq:
		return "="
	default:
		return "?"
	}
}

// Constraint is a relation between two TimeExprs, assumed true while
// checking the enclosing component's body and required to hold at every
// invocation site.
type Constraint struct {
	Lhs  TimeExpr
	Op   OrderOp
	Rhs  TimeExpr
	Span Span
}

// ToSMT renders the constraint as an S-expression assertion.
func (c Constraint) ToSMT() SExp {
	lhs, rhs := ToSMT(c.Lhs), ToSMT(c.Rhs)
	var sym string
	switch c.Op {
	case OpLe:
		sym = "<="
	case OpLt:
		sym = "<"
	case OpGe:
		sym = ">="
	case OpGt:
		sym = ">"
	case OpEq:
		sym = "="
	}
	return SExp("(" + sym + " " + string(lhs) + " " + string(rhs) + ")")
}

// Substitute replaces abstract time variables in both operands per
// bindings, returning a new Constraint.
func (c Constraint) Substitute(bindings map[Id]TimeExpr) Constraint {
	return Constraint{
		Lhs:  SubstituteTime(c.Lhs, bindings),
		Op:   c.Op,
		Rhs:  SubstituteTime(c.Rhs, bindings),
		Span: c.Span,
	}
}

// Signature is a component's externally visible contract: its abstract
// time variables, interface signals, input/output ports, and declared
// constraints.
type Signature struct {
	Name             Id
	AbstractVars     []Id
	InterfaceSignals []InterfaceSignal
	Inputs           []PortDef
	Outputs          []PortDef
	Constraints      []Constraint
	Span             Span
}

// Port returns the PortDef for name among either Inputs or Outputs, and
// whether it was found.
func (sig *Signature) Port(name Id) (PortDef, bool) {
	for _, p := range sig.Inputs {
		if p.Name.Equals(name) {
			return p, true
		}
	}
	for _, p := range sig.Outputs {
		if p.Name.Equals(name) {
			return p, true
		}
	}
	return PortDef{}, false
}

// Port is a reference to a signal: a literal bit-width constant, a port
// of the enclosing component's own signature, or a port of a named
// instance.
type Port struct {
	Kind     PortKind
	Constant int
	Name     Id // valid when Kind == ThisPort
	Instance Id // valid when Kind == CompPort
	Port     Id // valid when Kind == CompPort
	Span     Span
}

// PortKind tags the variant of a Port reference.
type PortKind int

const (
	PortConstant PortKind = iota
	PortThis
	PortComp
)

// ConstantPort constructs a literal bit-width constant port reference.
func ConstantPort(n int, sp Span) Port {
	return Port{Kind: PortConstant, Constant: n, Span: sp}
}

// ThisPort constructs a reference to a port of the enclosing component.
func ThisPort(name Id, sp Span) Port {
	return Port{Kind: PortThis, Name: name, Span: sp}
}

// CompPort constructs a reference to a named instance's port.
func CompPort(instance, port Id, sp Span) Port {
	return Port{Kind: PortComp, Instance: instance, Port: port, Span: sp}
}

func (p Port) String() string {
	switch p.Kind {
	case PortConstant:
		return "const"
	case PortThis:
		return p.Name.String()
	case PortComp:
		return p.Instance.String() + "." + p.Port.String()
	default:
		return "?"
	}
}

// Guard is an OR-tree of ports widening a connect's source to the union
// of the times any operand is live.
type Guard struct {
	Port Port
	Or   *Guard // nil for a leaf
}

// Leaves returns every Port reachable by walking the OR-tree.
func (g *Guard) Leaves() []Port {
	var out []Port
	for n := g; n != nil; {
		out = append(out, n.Port)
		n = n.Or
	}
	return out
}

// Instance declares a sub-component instance bound to name, of the
// component referenced by Component.
type Instance struct {
	Name      Id
	Component Id
	Span      Span
}

// Invoke activates an instance at the given time arguments, optionally
// wiring input ports, and binds the result to Bind.
type Invoke struct {
	Bind      Id
	Instance  Id
	TimeArgs  []TimeExpr
	PortArgs  []Port // nil if the invocation supplies no port arguments
	Span      Span
}

// Connect is a pointwise assignment of Src into Dst, optionally only
// while Guard is live.
type Connect struct {
	Dst   Port
	Src   Port
	Guard *Guard // nil if unconditional
	Span  Span
}

// When scopes Body to be active only at the logical time Time.
type When struct {
	Time TimeExpr
	Body []Command
	Span Span
}

// CommandKind tags the variant of a Command.
type CommandKind int

const (
	CmdInstance CommandKind = iota
	CmdInvoke
	CmdConnect
	CmdWhen
)

// Command is a tagged union over the four statement forms a component
// body may contain.
type Command struct {
	Kind     CommandKind
	Instance *Instance
	Invoke   *Invoke
	Connect  *Connect
	When     *When
}

func InstanceCommand(i Instance) Command { return Command{Kind: CmdInstance, Instance: &i} }
func InvokeCommand(i Invoke) Command     { return Command{Kind: CmdInvoke, Invoke: &i} }
func ConnectCommand(c Connect) Command   { return Command{Kind: CmdConnect, Connect: &c} }
func WhenCommand(w When) Command         { return Command{Kind: CmdWhen, When: &w} }

// Span returns the command's own span, recursing into whichever variant
// is populated.
func (c Command) Span() Span {
	switch c.Kind {
	case CmdInstance:
		return c.Instance.Span
	case CmdInvoke:
		return c.Invoke.Span
	case CmdConnect:
		return c.Connect.Span
	case CmdWhen:
		return c.When.Span
	default:
		return Span{}
	}
}

// Component is a Signature plus an ordered list of Commands making up its
// body.
type Component struct {
	Sig  Signature
	Body []Command
}

// Namespace is a compilation unit: an import list, a set of external
// (pre-declared primitive) signatures, and an ordered list of components.
// Component order is the namespace's authority for forward-reference
// checking (§9): an instance may only reference a component declared
// earlier in the same namespace, or an external signature.
type Namespace struct {
	Imports    []string
	Externals  []Signature
	Components []Component
}
