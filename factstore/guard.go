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

package factstore

import (
	"sort"

	"github.com/Jetbl/filament/ast"
)

// concreteBounds extracts iv's start/end as int64, reporting ok=false if
// either endpoint isn't a bare concrete constant (e.g. it still
// references an abstract time variable). Mirrors the teacher's
// GetStartTime/GetEndTime, but returns a decided/undecided flag instead
// of silently defaulting to 0, since an undecided overlap here must fall
// through to Discharge rather than being asserted one way or the other.
func concreteBounds(iv ast.Interval) (start, end int64, ok bool) {
	if iv.Start.Op != ast.TimeConcrete || iv.End.Op != ast.TimeConcrete {
		return 0, 0, false
	}
	return iv.Start.Const, iv.End.Const, true
}

// Overlaps reports whether a and b's half-open ranges intersect, and
// whether that was structurally decidable at all (both concrete).
// Mirrors interval_tree.go's queryRange overlap test, specialized to a
// pair instead of a tree traversal.
func Overlaps(a, b ast.Interval) (overlap, decided bool) {
	as, ae, aok := concreteBounds(a)
	bs, be, bok := concreteBounds(b)
	if !aok || !bok {
		return false, false
	}
	return as < be && bs < ae, true
}

// CoversJointly reports whether the union of sources, each a half-open
// interval, covers dst entirely — used to render an advisory note when a
// guarded connect's sources look like they might leave a gap (§4.3's
// guard-widening tie-break: FactCollector still emits one Subset fact per
// guarded source and lets Discharge decide correctness; this helper only
// improves the diagnostic, it never substitutes for Discharge). decided
// is false, and coverage meaningless, unless dst and every source are
// concrete; a program with abstract guard bounds gets no such note.
func CoversJointly(sources []ast.Interval, dst ast.Interval) (covers, decided bool) {
	ds, de, ok := concreteBounds(dst)
	if !ok {
		return false, false
	}
	type bound struct{ start, end int64 }
	bounds := make([]bound, 0, len(sources))
	for _, s := range sources {
		ss, se, ok := concreteBounds(s)
		if !ok {
			return false, false
		}
		bounds = append(bounds, bound{ss, se})
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i].start < bounds[j].start })

	cursor := ds
	for _, b := range bounds {
		if b.start > cursor {
			break
		}
		if b.end > cursor {
			cursor = b.end
		}
		if cursor >= de {
			return true, true
		}
	}
	return false, true
}
