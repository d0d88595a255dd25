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
	"iter"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// RangeSet is a set of values described as a sorted collection of disjoint, non-empty
// ranges. No two stored ranges are connected: adding [1..3) to a set holding [3..5]
// yields the single range [1..5].
//
// Two implementations exist: TreeRangeSet is mutable, ImmutableRangeSet never changes
// after it is built.
type RangeSet[T any] interface {
	// Ordering returns the ordering shared by every stored range.
	Ordering() Ordering[T]

	// Contains tests if a specific value is in the set.
	Contains(value T) bool

	// RangeContaining returns the stored range holding value, if any.
	RangeContaining(value T) (Range[T], bool)

	// Encloses returns true if a single stored range encloses r.
	Encloses(r Range[T]) bool

	// EnclosesAll returns true if every range of other is enclosed by this set.
	EnclosesAll(other RangeSet[T]) bool

	// Intersects returns true if some non-empty range is enclosed by both r and
	// this set.
	Intersects(r Range[T]) bool

	// IsEmpty returns true if the set holds no range.
	IsEmpty() bool

	// Ranges returns a copy of the stored ranges in ascending order.
	Ranges() []Range[T]

	// All returns an iterator over the stored ranges in ascending order.
	All() iter.Seq[Range[T]]

	// Descending returns an iterator over the stored ranges in descending order.
	Descending() iter.Seq[Range[T]]

	// Span returns the minimal range enclosing the whole set, or false when the set
	// is empty.
	Span() (Range[T], bool)

	// Equal returns true if both sets hold equal ranges.
	Equal(other RangeSet[T]) bool

	// Hash returns a hash of the stored ranges, consistent with Equal as long as equal
	// endpoints format identically with %v.
	Hash() uint64

	// String returns the stored ranges in braces, such as {[1..4)[6..8]}.
	String() string
}

// normalizeRanges canonicalises a slice of ranges by:
//  1. Removing empty ranges
//  2. Sorting by lower bound
//  3. Coalescing connected ranges
//
// The input is left untouched.
func normalizeRanges[T any](order Ordering[T], input []Range[T]) []Range[T] {
	filtered := make([]Range[T], 0, len(input))
	for _, r := range input {
		if !r.IsEmpty() {
			filtered = append(filtered, r)
		}
	}

	if len(filtered) == 0 {
		return nil
	}

	slices.SortFunc(filtered, func(a, b Range[T]) int {
		return compareCuts(order, a.lower, b.lower)
	})

	merged := filtered[:1]
	for i := 1; i < len(filtered); i++ {
		last := &merged[len(merged)-1]
		current := filtered[i]
		if last.IsConnected(current) {
			*last = last.Span(current)
		} else {
			merged = append(merged, current)
		}
	}

	return slices.Clip(merged)
}

// complementRanges returns the gaps around sorted, disjoint ranges: before the first,
// between neighbours and after the last.
func complementRanges[T any](order Ordering[T], ranges []Range[T]) []Range[T] {
	gaps := make([]Range[T], 0, len(ranges)+1)
	current := belowAll[T]()
	for _, r := range ranges {
		if gap := (Range[T]{lower: current, upper: r.lower, order: order}); !gap.IsEmpty() {
			gaps = append(gaps, gap)
		}
		current = r.upper
	}
	if tail := (Range[T]{lower: current, upper: aboveAll[T](), order: order}); !tail.IsEmpty() {
		gaps = append(gaps, tail)
	}
	return gaps
}

// clipRanges intersects sorted ranges with view, dropping empty results.
func clipRanges[T any](ranges []Range[T], view Range[T]) []Range[T] {
	clipped := make([]Range[T], 0, len(ranges))
	for _, r := range ranges {
		if r.IsConnected(view) {
			if c := r.intersect(view); !c.IsEmpty() {
				clipped = append(clipped, c)
			}
		}
	}
	return clipped
}

// intersectRanges walks two sorted, disjoint range lists in step.
func intersectRanges[T any](order Ordering[T], a, b []Range[T]) []Range[T] {
	result := make([]Range[T], 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].IsConnected(b[j]) {
			if r := a[i].intersect(b[j]); !r.IsEmpty() {
				result = append(result, r)
			}
		}

		if compareCuts(order, a[i].upper, b[j].upper) < 0 {
			i++
		} else {
			j++
		}
	}
	return result
}

func enclosesAll[T any](set RangeSet[T], other RangeSet[T]) bool {
	for r := range other.All() {
		if !set.Encloses(r) {
			return false
		}
	}
	return true
}

func rangesEqual[T any](a, b iter.Seq[Range[T]]) bool {
	nextB, stop := iter.Pull(b)
	defer stop()
	for ra := range a {
		rb, ok := nextB()
		if !ok || !ra.Equal(rb) {
			return false
		}
	}
	_, more := nextB()
	return !more
}

func hashRanges[T any](ranges iter.Seq[Range[T]]) uint64 {
	digest := xxhash.New()
	for r := range ranges {
		_, _ = digest.Write([]byte(r.String()))
		_, _ = digest.Write([]byte{0})
	}
	return digest.Sum64()
}

func formatRanges[T any](ranges iter.Seq[Range[T]]) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for r := range ranges {
		sb.WriteString(r.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
