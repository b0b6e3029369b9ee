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

package modelpb

import "testing"

func TestToStructRoundTripsValues(t *testing.T) {
	s, err := ToStruct(map[string]int64{"T": 1, "U": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fields := s.GetFields()
	if got := fields["T"].GetNumberValue(); got != 1 {
		t.Errorf("T = %v, want 1", got)
	}
	if got := fields["U"].GetNumberValue(); got != 3 {
		t.Errorf("U = %v, want 3", got)
	}
}

func TestToStructEmptyBindings(t *testing.T) {
	s, err := ToStruct(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.GetFields()) != 0 {
		t.Errorf("expected no fields, got %v", s.GetFields())
	}
}
