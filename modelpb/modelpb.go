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

// Package modelpb turns a failed fact's counter-model — a flat map from
// abstract time variable name to its solver-assigned integer value
// (§4.4) — into a structured value the outer driver can render without
// this package knowing the output format (JSON, protobuf text, a plain
// table). Narrowed from proto2struct's general reflective proto-to-
// struct conversion to the one fixed shape a counter-model has: string
// keys, integer values.
package modelpb

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// ToStruct converts a counter-model into a structpb.Struct with one
// numeric field per binding. Returns an error only if structpb itself
// rejects a value, which cannot happen for plain int64 bindings but is
// still surfaced rather than silently swallowed, since the result is
// headed for serialization at a driver boundary.
func ToStruct(bindings map[string]int64) (*structpb.Struct, error) {
	fields := make(map[string]interface{}, len(bindings))
	for name, v := range bindings {
		fields[name] = float64(v)
	}
	return structpb.NewStruct(fields)
}
