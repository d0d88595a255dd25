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
)

// ImmutableRangeSet is a RangeSet that never changes once built. It stores its ranges
// in a sorted slice searched by binary search, and every derived set (Complement,
// SubRangeSet, Union, ...) is a freshly allocated ImmutableRangeSet, so values may be
// shared between goroutines without synchronisation.
type ImmutableRangeSet[T any] struct {
	order  Ordering[T]
	ranges []Range[T]
}

// ImmutableRangeSetOf returns the immutable set holding the union of ranges.
func ImmutableRangeSetOf[T any](order Ordering[T], ranges ...Range[T]) *ImmutableRangeSet[T] {
	return &ImmutableRangeSet[T]{order: order, ranges: normalizeRanges(order, ranges)}
}

// CopyOfRangeSet returns an immutable copy of set.
func CopyOfRangeSet[T any](set RangeSet[T]) *ImmutableRangeSet[T] {
	if s, ok := set.(*ImmutableRangeSet[T]); ok {
		return s
	}
	return &ImmutableRangeSet[T]{order: set.Ordering(), ranges: set.Ranges()}
}

// ImmutableRangeSetBuilder collects ranges for an ImmutableRangeSet. Connected ranges
// are coalesced and empty ranges ignored when the set is built.
type ImmutableRangeSetBuilder[T any] struct {
	order  Ordering[T]
	ranges []Range[T]
}

// NewImmutableRangeSetBuilder returns an empty builder.
func NewImmutableRangeSetBuilder[T any](order Ordering[T]) *ImmutableRangeSetBuilder[T] {
	return &ImmutableRangeSetBuilder[T]{order: order}
}

// Add queues a range.
func (b *ImmutableRangeSetBuilder[T]) Add(r Range[T]) *ImmutableRangeSetBuilder[T] {
	b.ranges = append(b.ranges, r)
	return b
}

// AddAll queues every range of set.
func (b *ImmutableRangeSetBuilder[T]) AddAll(set RangeSet[T]) *ImmutableRangeSetBuilder[T] {
	b.ranges = append(b.ranges, set.Ranges()...)
	return b
}

// Build returns the set. The builder may keep being used afterwards.
func (b *ImmutableRangeSetBuilder[T]) Build() *ImmutableRangeSet[T] {
	return ImmutableRangeSetOf(b.order, b.ranges...)
}

func (s *ImmutableRangeSet[T]) Ordering() Ordering[T] {
	return s.order
}

// floorIndex returns the index of the last range whose lower bound is <= c, or -1.
func (s *ImmutableRangeSet[T]) floorIndex(c cut[T]) int {
	idx, _ := slices.BinarySearchFunc(s.ranges, c, func(r Range[T], c cut[T]) int {
		if compareCuts(s.order, r.lower, c) <= 0 {
			return -1
		}
		return 1
	})
	return idx - 1
}

func (s *ImmutableRangeSet[T]) Contains(value T) bool {
	_, ok := s.RangeContaining(value)
	return ok
}

func (s *ImmutableRangeSet[T]) RangeContaining(value T) (Range[T], bool) {
	if i := s.floorIndex(belowValue(value)); i >= 0 && s.ranges[i].Contains(value) {
		return s.ranges[i], true
	}
	return Range[T]{}, false
}

func (s *ImmutableRangeSet[T]) Encloses(r Range[T]) bool {
	i := s.floorIndex(r.lower)
	return i >= 0 && s.ranges[i].Encloses(r)
}

func (s *ImmutableRangeSet[T]) EnclosesAll(other RangeSet[T]) bool {
	return enclosesAll[T](s, other)
}

func (s *ImmutableRangeSet[T]) Intersects(r Range[T]) bool {
	i := s.floorIndex(r.lower)
	if i >= 0 && s.ranges[i].overlaps(r) {
		return true
	}
	return i+1 < len(s.ranges) && s.ranges[i+1].overlaps(r)
}

func (s *ImmutableRangeSet[T]) IsEmpty() bool {
	return len(s.ranges) == 0
}

func (s *ImmutableRangeSet[T]) Ranges() []Range[T] {
	return slices.Clone(s.ranges)
}

func (s *ImmutableRangeSet[T]) All() iter.Seq[Range[T]] {
	return slices.Values(s.ranges)
}

func (s *ImmutableRangeSet[T]) Descending() iter.Seq[Range[T]] {
	return func(yield func(Range[T]) bool) {
		for i := len(s.ranges) - 1; i >= 0; i-- {
			if !yield(s.ranges[i]) {
				return
			}
		}
	}
}

func (s *ImmutableRangeSet[T]) Span() (Range[T], bool) {
	if len(s.ranges) == 0 {
		return Range[T]{}, false
	}
	return Range[T]{
		lower: s.ranges[0].lower,
		upper: s.ranges[len(s.ranges)-1].upper,
		order: s.order,
	}, true
}

func (s *ImmutableRangeSet[T]) Equal(other RangeSet[T]) bool {
	return rangesEqual(s.All(), other.All())
}

func (s *ImmutableRangeSet[T]) Hash() uint64 {
	return hashRanges(s.All())
}

func (s *ImmutableRangeSet[T]) String() string {
	return formatRanges(s.All())
}

// Complement returns the set of values NOT in s.
func (s *ImmutableRangeSet[T]) Complement() *ImmutableRangeSet[T] {
	return &ImmutableRangeSet[T]{order: s.order, ranges: complementRanges(s.order, s.ranges)}
}

// SubRangeSet returns the values of s that lie in view.
func (s *ImmutableRangeSet[T]) SubRangeSet(view Range[T]) *ImmutableRangeSet[T] {
	return &ImmutableRangeSet[T]{order: s.order, ranges: clipRanges(s.ranges, view)}
}

// Union returns the set of values in either s or other.
func (s *ImmutableRangeSet[T]) Union(other RangeSet[T]) *ImmutableRangeSet[T] {
	return ImmutableRangeSetOf(s.order, slices.Concat(s.ranges, other.Ranges())...)
}

// Intersection returns the set of values in both s and other.
func (s *ImmutableRangeSet[T]) Intersection(other RangeSet[T]) *ImmutableRangeSet[T] {
	return &ImmutableRangeSet[T]{order: s.order, ranges: intersectRanges(s.order, s.ranges, other.Ranges())}
}

// Difference returns the set of values in s but not in other.
func (s *ImmutableRangeSet[T]) Difference(other RangeSet[T]) *ImmutableRangeSet[T] {
	gaps := complementRanges(s.order, other.Ranges())
	return &ImmutableRangeSet[T]{order: s.order, ranges: intersectRanges(s.order, s.ranges, gaps)}
}

var (
	_ RangeSet[int] = (*ImmutableRangeSet[int])(nil)
)
