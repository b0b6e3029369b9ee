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

// Package ast contains the abstract syntax tree and interval type-system
// value types for Filament: identifiers, spans, time expressions,
// intervals, signatures, commands, components, namespaces and facts.
package ast

// Id is an interned identifier. Two Ids compare equal iff they were interned
// from equal strings; the original spelling is kept for diagnostics.
type Id struct {
	key int32
}

var (
	internTable = map[string]int32{}
	internNames = []string{}
)

// Intern returns the canonical Id for name. Repeated calls with the same
// name return Ids that compare equal.
func Intern(name string) Id {
	if key, ok := internTable[name]; ok {
		return Id{key}
	}
	key := int32(len(internNames))
	internNames = append(internNames, name)
	internTable[name] = key
	return Id{key}
}

// String returns the original spelling this Id was interned from.
func (id Id) String() string {
	if int(id.key) >= len(internNames) {
		return "<invalid-id>"
	}
	return internNames[id.key]
}

// Equals reports whether id and other were interned from the same name.
func (id Id) Equals(other Id) bool {
	return id.key == other.key
}

// IsZero reports whether id is the zero value (never interned).
func (id Id) IsZero() bool {
	return id == Id{}
}

// SourceFile is a named, shared handle to an input program's text. Spans
// hold a reference to a SourceFile rather than copying the text, mirroring
// the Rc<str> sharing in the original Rust implementation's errors::Span.
type SourceFile struct {
	Name string
	Text string
}

// Span is a byte range into a SourceFile, attached to any AST node that can
// produce a diagnostic. Spans are immutable and cheap to copy: the File
// pointer is shared, not cloned.
type Span struct {
	File       *SourceFile
	Start, End int
}

// NewSpan constructs a Span over file.
func NewSpan(file *SourceFile, start, end int) Span {
	return Span{File: file, Start: start, End: end}
}

// Text returns the substring of the source file this span covers, or "" if
// the span has no associated file (e.g. a synthetic span).
func (s Span) Text() string {
	if s.File == nil || s.Start < 0 || s.End > len(s.File.Text) || s.Start > s.End {
		return ""
	}
	return s.File.Text[s.Start:s.End]
}

// IsSynthetic reports whether this span was not produced by the parser
// (e.g. attached by a rewrite pass to a node it introduced).
func (s Span) IsSynthetic() bool {
	return s.File == nil
}
