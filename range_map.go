// Copyright 2024 The University of Queensland
// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ranges

import (
	"fmt"
	"iter"
	"strings"
)

// Entry pairs a range with the value it maps to.
type Entry[K, V any] struct {
	Range Range[K]
	Value V
}

func (e Entry[K, V]) String() string {
	return fmt.Sprintf("%s=%v", e.Range, e.Value)
}

// RangeMap maps disjoint, non-empty ranges of keys to values. Unlike a RangeSet,
// neighbouring entries are never merged, even when they touch and carry equal values:
// putting [1..3) -> "a" and [3..5) -> "a" keeps two entries.
//
// TreeRangeMap is the mutable implementation, RangeMapView a live window onto one,
// and ImmutableRangeMap never changes once built.
type RangeMap[K, V any] interface {
	// Ordering returns the ordering of the keys.
	Ordering() Ordering[K]

	// Get returns the value mapped to key.
	Get(key K) (V, bool)

	// GetEntry returns the range containing key together with its value.
	GetEntry(key K) (Entry[K, V], bool)

	// Entries returns a copy of the entries in ascending order of range.
	Entries() []Entry[K, V]

	// All returns an iterator over the entries in ascending order of range.
	All() iter.Seq2[Range[K], V]

	// Descending returns an iterator over the entries in descending order of range.
	Descending() iter.Seq2[Range[K], V]

	// Span returns the minimal range enclosing every entry, or false if there is none.
	Span() (Range[K], bool)

	// IsEmpty returns true if the map holds no entry.
	IsEmpty() bool

	// String returns the entries in braces, such as {[3..7)=1, [9..10]=2}.
	String() string
}

// EqualRangeMaps returns true if a and b hold equal ranges mapped to values that eq
// considers equal.
func EqualRangeMaps[K, V any](a, b RangeMap[K, V], eq func(x, y V) bool) bool {
	ea, eb := a.Entries(), b.Entries()
	if len(ea) != len(eb) {
		return false
	}
	for i := range ea {
		if !ea[i].Range.Equal(eb[i].Range) || !eq(ea[i].Value, eb[i].Value) {
			return false
		}
	}
	return true
}

func entriesAscending[K, V any](entries []Entry[K, V]) iter.Seq2[Range[K], V] {
	return func(yield func(Range[K], V) bool) {
		for _, e := range entries {
			if !yield(e.Range, e.Value) {
				return
			}
		}
	}
}

func entriesDescending[K, V any](entries []Entry[K, V]) iter.Seq2[Range[K], V] {
	return func(yield func(Range[K], V) bool) {
		for i := len(entries) - 1; i >= 0; i-- {
			if !yield(entries[i].Range, entries[i].Value) {
				return
			}
		}
	}
}

func spanOfEntries[K, V any](order Ordering[K], entries []Entry[K, V]) (Range[K], bool) {
	if len(entries) == 0 {
		return Range[K]{}, false
	}
	return Range[K]{
		lower: entries[0].Range.lower,
		upper: entries[len(entries)-1].Range.upper,
		order: order,
	}, true
}

// clipEntries intersects sorted entries with view, dropping empty results.
func clipEntries[K, V any](entries []Entry[K, V], view Range[K]) []Entry[K, V] {
	clipped := make([]Entry[K, V], 0, len(entries))
	for _, e := range entries {
		if e.Range.IsConnected(view) {
			if r := e.Range.intersect(view); !r.IsEmpty() {
				clipped = append(clipped, Entry[K, V]{Range: r, Value: e.Value})
			}
		}
	}
	return clipped
}

func formatEntries[K, V any](entries iter.Seq2[Range[K], V]) string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for r, v := range entries {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%s=%v", r, v)
	}
	sb.WriteByte('}')
	return sb.String()
}
