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

// Package diag implements the recoverable-error model shared by analysis
// and engine: a Diagnostic carries a primary message, a kind, a span, and
// zero or more secondary notes, and is collected rather than returned as a
// short-circuiting error.
package diag

import (
	"fmt"

	"github.com/Jetbl/filament/ast"
)

// Kind tags a Diagnostic with the recoverable error kind it represents
// (§7). Fatal kinds (SmtTransport, Io) are not modeled here: they are
// returned as plain Go errors, not collected as Diagnostics.
type Kind int

const (
	// Undefined is a reference to an unbound identifier.
	Undefined Kind = iota
	// AlreadyBound is a duplicate definition in the same scope.
	AlreadyBound
	// Malformed is a structural error: bad interval, width mismatch,
	// missing time argument.
	Malformed
	// SmtFailure is a fact that could not be proved; may carry a model.
	SmtFailure
)

func (k Kind) String() string {
	switch k {
	case Undefined:
		return "undefined"
	case AlreadyBound:
		return "already-bound"
	case Malformed:
		return "malformed"
	case SmtFailure:
		return "smt-failure"
	default:
		return "unknown"
	}
}

// Note is a secondary annotation attached to a Diagnostic, e.g.
// "introduced here" pointing at an earlier declaration.
type Note struct {
	Message string
	Span    ast.Span
}

// Diagnostic is a single recoverable compiler error (§6, §7): a primary
// message and kind, the span it's attributed to, and zero or more notes.
type Diagnostic struct {
	Kind    Kind
	Message string
	Span    ast.Span
	Notes   []Note
	// Model holds a counter-model's bindings when Kind == SmtFailure and
	// --show-models was requested; nil otherwise.
	Model map[string]int64
}

// Error satisfies the error interface so a Diagnostic can be wrapped by
// multierr alongside plain errors when useful, though the primary
// collection path is []Diagnostic, not error.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// WithNote returns d with an additional note appended; d is not mutated.
func (d *Diagnostic) WithNote(msg string, sp ast.Span) *Diagnostic {
	next := *d
	next.Notes = append(append([]Note{}, d.Notes...), Note{Message: msg, Span: sp})
	return &next
}

// Undefinedf builds an Undefined diagnostic for name of the given kind
// description (e.g. "instance", "component").
func Undefinedf(name ast.Id, kindDesc string, sp ast.Span) *Diagnostic {
	return &Diagnostic{
		Kind:    Undefined,
		Message: fmt.Sprintf("undefined %s name: %s", kindDesc, name),
		Span:    sp,
	}
}

// AlreadyBoundf builds an AlreadyBound diagnostic.
func AlreadyBoundf(name ast.Id, boundBy string, sp ast.Span) *Diagnostic {
	return &Diagnostic{
		Kind:    AlreadyBound,
		Message: fmt.Sprintf("name %q is already bound by %s", name.String(), boundBy),
		Span:    sp,
	}
}

// Malformedf builds a Malformed diagnostic from a format string.
func Malformedf(sp ast.Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind:    Malformed,
		Message: fmt.Sprintf(format, args...),
		Span:    sp,
	}
}

// SmtFailuref builds an SmtFailure diagnostic for a fact that the solver
// reported sat (or unknown) for, optionally carrying a counter-model.
func SmtFailuref(sp ast.Span, factDesc string, model map[string]int64) *Diagnostic {
	return &Diagnostic{
		Kind:    SmtFailure,
		Message: fmt.Sprintf("could not prove %s", factDesc),
		Span:    sp,
		Model:   model,
	}
}
