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
	"strings"
)

// BoundType indicates whether an endpoint of a Range is contained in the Range itself
// ("closed") or not ("open"). If a range is unbounded on a side, it is neither open nor
// closed on that side; the bound simply does not exist.
type BoundType uint8

const (
	// BoundTypeOpen indicates that the endpoint value is not part of the Range.
	BoundTypeOpen BoundType = iota

	// BoundTypeClosed indicates that the endpoint value is part of the Range.
	BoundTypeClosed
)

// String returns "OPEN" or "CLOSED".
func (t BoundType) String() string {
	switch t {
	case BoundTypeOpen:
		return "OPEN"
	case BoundTypeClosed:
		return "CLOSED"
	default:
		return fmt.Sprintf("BoundType(%d)", uint8(t))
	}
}

// Flip returns the opposite bound type.
func (t BoundType) Flip() BoundType {
	if t == BoundTypeOpen {
		return BoundTypeClosed
	}
	return BoundTypeOpen
}

// Bound describes one edge of a Range: either a finite endpoint together with its
// BoundType, or an infinite edge. Bounds are read-only views of a Range and are
// never used to build one.
type Bound[T any] struct {
	value    T
	kind     BoundType
	infinite bool
}

// IsInfinite reports whether the edge is unbounded.
func (b Bound[T]) IsInfinite() bool {
	return b.infinite
}

// Value returns the endpoint of a finite bound. The second result is false for an
// infinite bound.
func (b Bound[T]) Value() (T, bool) {
	if b.infinite {
		var zero T
		return zero, false
	}
	return b.value, true
}

// Type returns the bound type of a finite bound. Infinite bounds report BoundTypeOpen.
func (b Bound[T]) Type() BoundType {
	if b.infinite {
		return BoundTypeOpen
	}
	return b.kind
}

func (b Bound[T]) String() string {
	if b.infinite {
		return "inf"
	}
	return fmt.Sprintf("%v (%s)", b.value, b.kind)
}

// cut is a position on the ordered line that sits either just below or just above a
// value, or beyond every value. Both edges of a Range are cuts, so lower and upper
// edges share one total order:
//
//	belowAll < below(v) < above(v) < below(w) < aboveAll    for every v < w
//
// A closed lower edge at v is below(v) and an open one is above(v); a closed upper
// edge at v is above(v) and an open one is below(v).
//
// The `infinite` field uses sentinel values:
//   - cutNegativeInfinity (-1): below every value
//   - cutFinite (0): next to `value`
//   - cutPositiveInfinity (1): above every value
type cut[T any] struct {
	value    T
	above    bool
	infinite int
}

const (
	cutNegativeInfinity = -1
	cutFinite           = 0
	cutPositiveInfinity = 1
)

func belowAll[T any]() cut[T] {
	return cut[T]{infinite: cutNegativeInfinity}
}

func aboveAll[T any]() cut[T] {
	return cut[T]{infinite: cutPositiveInfinity}
}

func belowValue[T any](v T) cut[T] {
	return cut[T]{value: v}
}

func aboveValue[T any](v T) cut[T] {
	return cut[T]{value: v, above: true}
}

// lowerCut returns the cut for a lower edge at v.
func lowerCut[T any](v T, t BoundType) cut[T] {
	if t == BoundTypeClosed {
		return belowValue(v)
	}
	return aboveValue(v)
}

// upperCut returns the cut for an upper edge at v.
func upperCut[T any](v T, t BoundType) cut[T] {
	if t == BoundTypeClosed {
		return aboveValue(v)
	}
	return belowValue(v)
}

func (c cut[T]) isFinite() bool {
	return c.infinite == cutFinite
}

// isLessThan reports whether v lies above the cut.
func (c cut[T]) isLessThan(order Ordering[T], v T) bool {
	switch c.infinite {
	case cutNegativeInfinity:
		return true
	case cutPositiveInfinity:
		return false
	}
	if c.above {
		return order(c.value, v) < 0
	}
	return order(c.value, v) <= 0
}

// compareCuts compares two cuts.
// Returns negative if a < b, zero if equal, positive if a > b.
func compareCuts[T any](order Ordering[T], a, b cut[T]) int {
	if a.infinite != cutFinite || b.infinite != cutFinite {
		return a.infinite - b.infinite
	}
	if c := order(a.value, b.value); c != 0 {
		return c
	}
	// below(v) comes before above(v)
	switch {
	case a.above == b.above:
		return 0
	case a.above:
		return 1
	default:
		return -1
	}
}

func minCut[T any](order Ordering[T], a, b cut[T]) cut[T] {
	if compareCuts(order, a, b) <= 0 {
		return a
	}
	return b
}

func maxCut[T any](order Ordering[T], a, b cut[T]) cut[T] {
	if compareCuts(order, a, b) >= 0 {
		return a
	}
	return b
}

// canonical rewrites the cut so that open finite edges become closed edges one step
// inward, using the domain's successor function.
func (c cut[T]) canonical(domain DiscreteDomain[T]) cut[T] {
	switch c.infinite {
	case cutNegativeInfinity:
		if least, ok := domain.MinValue(); ok {
			return belowValue(least)
		}
		return c
	case cutPositiveInfinity:
		return c
	}
	if !c.above {
		return c
	}
	if next, ok := domain.Next(c.value); ok {
		return belowValue(next)
	}
	return aboveAll[T]()
}

func (c cut[T]) asLowerBound() Bound[T] {
	if !c.isFinite() {
		return Bound[T]{infinite: true}
	}
	if c.above {
		return Bound[T]{value: c.value, kind: BoundTypeOpen}
	}
	return Bound[T]{value: c.value, kind: BoundTypeClosed}
}

func (c cut[T]) asUpperBound() Bound[T] {
	if !c.isFinite() {
		return Bound[T]{infinite: true}
	}
	if c.above {
		return Bound[T]{value: c.value, kind: BoundTypeClosed}
	}
	return Bound[T]{value: c.value, kind: BoundTypeOpen}
}

func (c cut[T]) describeAsLower(sb *strings.Builder) {
	switch {
	case c.infinite == cutNegativeInfinity:
		sb.WriteString("(-inf")
	case c.infinite == cutPositiveInfinity:
		sb.WriteString("(+inf")
	case c.above:
		fmt.Fprintf(sb, "(%v", c.value)
	default:
		fmt.Fprintf(sb, "[%v", c.value)
	}
}

func (c cut[T]) describeAsUpper(sb *strings.Builder) {
	switch {
	case c.infinite == cutPositiveInfinity:
		sb.WriteString("+inf)")
	case c.infinite == cutNegativeInfinity:
		sb.WriteString("-inf)")
	case c.above:
		fmt.Fprintf(sb, "%v]", c.value)
	default:
		fmt.Fprintf(sb, "%v)", c.value)
	}
}
