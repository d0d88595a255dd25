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
	"math"
	"strings"

	"github.com/cockroachdb/errors"
)

// Range is a contiguous span of values of an ordered type, possibly unbounded on
// either side. Ranges are immutable values; every operation that derives a new range
// returns a fresh one, so ranges may be shared freely between goroutines.
//
// Examples:
//   - [1..4) holds 1 <= x < 4
//   - (1..4] holds 1 < x <= 4
//   - [1..+inf) holds x >= 1
//
// Ranges are built through the factories on Ordering or their package-level
// shortcuts. The zero Range has no Ordering and must not be used.
type Range[T any] struct {
	lower cut[T]
	upper cut[T]
	order Ordering[T]
}

// Ordering returns the ordering the range was built with.
func (r Range[T]) Ordering() Ordering[T] {
	return r.order
}

// LowerBound describes the lower edge of the range.
func (r Range[T]) LowerBound() Bound[T] {
	return r.lower.asLowerBound()
}

// UpperBound describes the upper edge of the range.
func (r Range[T]) UpperBound() Bound[T] {
	return r.upper.asUpperBound()
}

// HasLowerBound reports whether the range is bounded below.
func (r Range[T]) HasLowerBound() bool {
	return r.lower.isFinite()
}

// HasUpperBound reports whether the range is bounded above.
func (r Range[T]) HasUpperBound() bool {
	return r.upper.isFinite()
}

// LowerEndpoint returns the lower endpoint, or false when the range is unbounded below.
func (r Range[T]) LowerEndpoint() (T, bool) {
	return r.LowerBound().Value()
}

// UpperEndpoint returns the upper endpoint, or false when the range is unbounded above.
func (r Range[T]) UpperEndpoint() (T, bool) {
	return r.UpperBound().Value()
}

// IsEmpty reports whether the range has the form [v..v) or (v..v].
//
// The test is syntactic: over a discrete type a range such as (3..4) holds no value
// yet is not empty. Use Canonical to normalise discrete ranges first.
func (r Range[T]) IsEmpty() bool {
	return compareCuts(r.order, r.lower, r.upper) == 0
}

// Contains returns true if value lies within the range.
func (r Range[T]) Contains(value T) bool {
	return r.lower.isLessThan(r.order, value) && !r.upper.isLessThan(r.order, value)
}

// ContainsAll returns true if every value lies within the range.
func (r Range[T]) ContainsAll(values ...T) bool {
	for _, v := range values {
		if !r.Contains(v) {
			return false
		}
	}
	return true
}

// Encloses returns true if every value of other is also in r. Only the edges are
// compared; [3..6] encloses [4..4) even though the latter is empty, and over the
// integers [3..6] does not enclose (3..7) although both hold the same values.
func (r Range[T]) Encloses(other Range[T]) bool {
	return compareCuts(r.order, r.lower, other.lower) <= 0 &&
		compareCuts(r.order, r.upper, other.upper) >= 0
}

// IsConnected returns true if some (possibly empty) range is enclosed by both r and
// other. [2..4) and [4..5] are connected, [2..4) and (4..5] are not.
//
// The relation is reflexive and symmetric but not transitive: [1..2] and [3..4] are
// both connected to [2..3] without being connected to each other.
func (r Range[T]) IsConnected(other Range[T]) bool {
	return compareCuts(r.order, r.lower, other.upper) <= 0 &&
		compareCuts(r.order, other.lower, r.upper) <= 0
}

// Intersection returns the largest range enclosed by both r and other. The ranges
// must be connected; otherwise ErrRangesNotConnected is returned.
func (r Range[T]) Intersection(other Range[T]) (Range[T], error) {
	if !r.IsConnected(other) {
		return Range[T]{}, errors.Wrapf(ErrRangesNotConnected, "%s and %s", r, other)
	}
	return r.intersect(other), nil
}

// intersect assumes r and other are connected.
func (r Range[T]) intersect(other Range[T]) Range[T] {
	lowerCmp := compareCuts(r.order, r.lower, other.lower)
	upperCmp := compareCuts(r.order, r.upper, other.upper)
	switch {
	case lowerCmp >= 0 && upperCmp <= 0:
		return r
	case lowerCmp <= 0 && upperCmp >= 0:
		return other
	}
	return Range[T]{
		lower: maxCut(r.order, r.lower, other.lower),
		upper: minCut(r.order, r.upper, other.upper),
		order: r.order,
	}
}

// overlaps returns true if r and other share a non-empty intersection.
func (r Range[T]) overlaps(other Range[T]) bool {
	return r.IsConnected(other) && !r.intersect(other).IsEmpty()
}

// Span returns the minimal range enclosing both r and other.
func (r Range[T]) Span(other Range[T]) Range[T] {
	lowerCmp := compareCuts(r.order, r.lower, other.lower)
	upperCmp := compareCuts(r.order, r.upper, other.upper)
	switch {
	case lowerCmp <= 0 && upperCmp >= 0:
		return r
	case lowerCmp >= 0 && upperCmp <= 0:
		return other
	}
	return Range[T]{
		lower: minCut(r.order, r.lower, other.lower),
		upper: maxCut(r.order, r.upper, other.upper),
		order: r.order,
	}
}

// Gap returns the range lying between r and other. The gap of [1..3) and [5..7] is
// [3..5), and the gap of touching ranges is empty. Ranges sharing a non-empty
// intersection have no gap and ErrRangesOverlap is returned.
func (r Range[T]) Gap(other Range[T]) (Range[T], error) {
	if compareCuts(r.order, r.lower, other.upper) < 0 &&
		compareCuts(r.order, other.lower, r.upper) < 0 {
		return Range[T]{}, errors.Wrapf(ErrRangesOverlap, "%s and %s", r, other)
	}
	first, second := r, other
	if compareCuts(r.order, r.upper, other.lower) > 0 {
		first, second = other, r
	}
	return Range[T]{lower: first.upper, upper: second.lower, order: r.order}, nil
}

// Canonical returns the canonical form of r over a discrete domain. The result takes
// one of the shapes [a..b), [a..+inf), (-inf..b) or (-inf..+inf); the unbounded lower
// shapes only appear when the domain has no minimum. Ranges holding the same values of
// the domain have equal canonical forms, and Canonical is idempotent.
func (r Range[T]) Canonical(domain DiscreteDomain[T]) Range[T] {
	lower := r.lower.canonical(domain)
	upper := r.upper.canonical(domain)
	if lower.infinite == cutPositiveInfinity {
		// (max..max] or similar: nothing of the domain lies inside
		if greatest, ok := domain.MaxValue(); ok {
			lower, upper = belowValue(greatest), belowValue(greatest)
		}
	}
	return Range[T]{lower: lower, upper: upper, order: r.order}
}

// Values enumerates the members of r over a discrete domain in ascending order. The
// sequence is infinite when r has no upper bound and the domain no maximum.
func (r Range[T]) Values(domain DiscreteDomain[T]) (iter.Seq[T], error) {
	c := r.Canonical(domain)
	if c.lower.infinite == cutNegativeInfinity {
		return nil, errors.Wrapf(ErrUnboundedRange, "%s", r)
	}
	return func(yield func(T) bool) {
		if !c.lower.isFinite() {
			return
		}
		for v := c.lower.value; c.Contains(v); {
			if !yield(v) {
				return
			}
			next, ok := domain.Next(v)
			if !ok {
				return
			}
			v = next
		}
	}, nil
}

// Count returns the number of members of r over a discrete domain, saturating at
// math.MaxInt64.
func (r Range[T]) Count(domain DiscreteDomain[T]) int64 {
	c := r.Canonical(domain)
	if c.IsEmpty() {
		return 0
	}
	if !c.lower.isFinite() {
		return math.MaxInt64
	}
	if c.upper.isFinite() {
		return domain.Distance(c.lower.value, c.upper.value)
	}
	greatest, ok := domain.MaxValue()
	if !ok {
		return math.MaxInt64
	}
	n := domain.Distance(c.lower.value, greatest)
	if n == math.MaxInt64 {
		return n
	}
	return n + 1
}

// Equal returns true if r and other have the same edges. Ranges are compared
// syntactically; over the integers [1..3] and [1..4) are not equal.
func (r Range[T]) Equal(other Range[T]) bool {
	return compareCuts(r.order, r.lower, other.lower) == 0 &&
		compareCuts(r.order, r.upper, other.upper) == 0
}

// String returns the range in interval notation, such as [1..4) or (-inf..2].
func (r Range[T]) String() string {
	return describe(r.lower, r.upper)
}

func describe[T any](lower, upper cut[T]) string {
	var sb strings.Builder
	lower.describeAsLower(&sb)
	sb.WriteString("..")
	upper.describeAsUpper(&sb)
	return sb.String()
}
