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

package packages

import (
	"reflect"
	"testing"
)

func TestDedupPreservesFirstOccurrenceOrder(t *testing.T) {
	got := Dedup([]string{"a.fil", "b.fil", "a.fil", "c.fil", "b.fil"})
	want := []string{"a.fil", "b.fil", "c.fil"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dedup = %v, want %v", got, want)
	}
}

func TestDepFileLinesNoImports(t *testing.T) {
	got := DepFileLines("out.fil", nil)
	want := []string{"out.fil: "}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DepFileLines = %v, want %v", got, want)
	}
}

func TestDepFileLinesSingleImport(t *testing.T) {
	got := DepFileLines("out.fil", []string{"a.fil"})
	want := []string{"out.fil: a.fil"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DepFileLines = %v, want %v", got, want)
	}
}

func TestDepFileLinesMultipleImports(t *testing.T) {
	got := DepFileLines("out.fil", []string{"a.fil", "b.fil", "c.fil"})
	want := []string{"out.fil: a.fil \\", "b.fil \\", "c.fil"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DepFileLines = %v, want %v", got, want)
	}
}
