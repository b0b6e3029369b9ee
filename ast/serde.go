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

import (
	"fmt"
	"strings"
)

// PrintSignature renders a Signature in Filament's surface notation. This
// is the canonical printer for the subset of syntax spec.md §8's
// round-trip property covers: spans and the concrete grammar are not
// reproduced, only the structural content a fixtures-decoded Namespace
// carries.
func PrintSignature(sig Signature) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s<", sig.Name)
	for i, v := range sig.AbstractVars {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(v.String())
	}
	b.WriteString(">(")
	for i, p := range sig.Inputs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s @%db", p.Name, p.Interval, p.Width)
	}
	b.WriteString(") -> (")
	for i, p := range sig.Outputs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s @%db", p.Name, p.Interval, p.Width)
	}
	b.WriteString(")")
	if len(sig.Constraints) > 0 {
		b.WriteString(" where ")
		for i, c := range sig.Constraints {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s %s %s", c.Lhs, c.Op, c.Rhs)
		}
	}
	return b.String()
}

// PrintCommand renders a single Command.
func PrintCommand(c Command) string {
	switch c.Kind {
	case CmdInstance:
		return fmt.Sprintf("%s = new %s;", c.Instance.Name, c.Instance.Component)
	case CmdInvoke:
		return printInvoke(*c.Invoke)
	case CmdConnect:
		return printConnect(*c.Connect)
	case CmdWhen:
		return printWhen(*c.When)
	default:
		return ""
	}
}

func printInvoke(inv Invoke) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %s<", inv.Bind, inv.Instance)
	for i, t := range inv.TimeArgs {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(t.String())
	}
	b.WriteString(">(")
	for i, p := range inv.PortArgs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(");")
	return b.String()
}

func printConnect(c Connect) string {
	if c.Guard == nil {
		return fmt.Sprintf("%s = %s;", c.Dst, c.Src)
	}
	leaves := c.Guard.Leaves()
	parts := make([]string, len(leaves))
	for i, p := range leaves {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s = %s when %s;", c.Dst, c.Src, strings.Join(parts, " | "))
}

func printWhen(w When) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@%s {", w.Time)
	for _, cmd := range w.Body {
		b.WriteString(" ")
		b.WriteString(PrintCommand(cmd))
	}
	b.WriteString(" }")
	return b.String()
}

// PrintComponent renders a full Component: its signature and body in
// source order.
func PrintComponent(c Component) string {
	var b strings.Builder
	b.WriteString(PrintSignature(c.Sig))
	b.WriteString(" {\n")
	for _, cmd := range c.Body {
		b.WriteString("  ")
		b.WriteString(PrintCommand(cmd))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// PrintNamespace renders an entire Namespace: imports, externals, then
// components, each in declaration order.
func PrintNamespace(ns Namespace) string {
	var b strings.Builder
	for _, imp := range ns.Imports {
		fmt.Fprintf(&b, "import %q;\n", imp)
	}
	for _, ext := range ns.Externals {
		fmt.Fprintf(&b, "extern %s;\n", PrintSignature(ext))
	}
	for _, c := range ns.Components {
		b.WriteString(PrintComponent(c))
		b.WriteString("\n")
	}
	return b.String()
}
