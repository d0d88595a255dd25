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
	"cmp"
	"math/big"

	"github.com/cockroachdb/errors"
)

// Ordering is a total order over T. It returns a negative number when a < b, zero when
// a == b and a positive number when a > b.
//
// Every Range, RangeSet and RangeMap carries the Ordering it was built with, and every
// value derived from them (intersections, spans, complements, views) carries it along.
// Ranges combined with each other must share an equivalent Ordering.
//
// Range factories are methods on Ordering:
//
//	byLength := ranges.Ordering[string](func(a, b string) int { return len(a) - len(b) })
//	r, err := byLength.Closed("a", "abc")
type Ordering[T any] func(a, b T) int

// Natural returns the natural ordering of an ordered type.
func Natural[T cmp.Ordered]() Ordering[T] {
	return cmp.Compare[T]
}

// BigIntOrdering orders arbitrary-precision integers.
func BigIntOrdering() Ordering[*big.Int] {
	return func(a, b *big.Int) int {
		return a.Cmp(b)
	}
}

// create checks the range invariants before building a Range.
func (o Ordering[T]) create(lower, upper cut[T]) (Range[T], error) {
	if lower.infinite == cutPositiveInfinity || upper.infinite == cutNegativeInfinity ||
		compareCuts(o, lower, upper) > 0 {
		return Range[T]{}, errors.Wrapf(ErrInvalidRangeBounds, "%s", describe(lower, upper))
	}
	return Range[T]{lower: lower, upper: upper, order: o}, nil
}

// Open returns the range of values strictly greater than lower and strictly less than upper.
func (o Ordering[T]) Open(lower, upper T) (Range[T], error) {
	return o.create(aboveValue(lower), belowValue(upper))
}

// Closed returns the range of values greater than or equal to lower and less than or
// equal to upper.
func (o Ordering[T]) Closed(lower, upper T) (Range[T], error) {
	return o.create(belowValue(lower), aboveValue(upper))
}

// ClosedOpen returns [lower..upper).
func (o Ordering[T]) ClosedOpen(lower, upper T) (Range[T], error) {
	return o.create(belowValue(lower), belowValue(upper))
}

// OpenClosed returns (lower..upper].
func (o Ordering[T]) OpenClosed(lower, upper T) (Range[T], error) {
	return o.create(aboveValue(lower), aboveValue(upper))
}

// Range returns the range with the given endpoints and bound types.
func (o Ordering[T]) Range(lower T, lowerType BoundType, upper T, upperType BoundType) (Range[T], error) {
	return o.create(lowerCut(lower, lowerType), upperCut(upper, upperType))
}

// AtLeast returns [endpoint..+inf).
func (o Ordering[T]) AtLeast(endpoint T) Range[T] {
	return Range[T]{lower: belowValue(endpoint), upper: aboveAll[T](), order: o}
}

// AtMost returns (-inf..endpoint].
func (o Ordering[T]) AtMost(endpoint T) Range[T] {
	return Range[T]{lower: belowAll[T](), upper: aboveValue(endpoint), order: o}
}

// GreaterThan returns (endpoint..+inf).
func (o Ordering[T]) GreaterThan(endpoint T) Range[T] {
	return Range[T]{lower: aboveValue(endpoint), upper: aboveAll[T](), order: o}
}

// LessThan returns (-inf..endpoint).
func (o Ordering[T]) LessThan(endpoint T) Range[T] {
	return Range[T]{lower: belowAll[T](), upper: belowValue(endpoint), order: o}
}

// DownTo returns a range bounded only from below.
func (o Ordering[T]) DownTo(endpoint T, t BoundType) Range[T] {
	return Range[T]{lower: lowerCut(endpoint, t), upper: aboveAll[T](), order: o}
}

// UpTo returns a range bounded only from above.
func (o Ordering[T]) UpTo(endpoint T, t BoundType) Range[T] {
	return Range[T]{lower: belowAll[T](), upper: upperCut(endpoint, t), order: o}
}

// Singleton returns [value..value].
func (o Ordering[T]) Singleton(value T) Range[T] {
	return Range[T]{lower: belowValue(value), upper: aboveValue(value), order: o}
}

// All returns (-inf..+inf).
func (o Ordering[T]) All() Range[T] {
	return Range[T]{lower: belowAll[T](), upper: aboveAll[T](), order: o}
}

// EncloseAll returns the minimal closed range containing every value.
func (o Ordering[T]) EncloseAll(values ...T) (Range[T], error) {
	if len(values) == 0 {
		return Range[T]{}, ErrNoValues
	}
	least, greatest := values[0], values[0]
	for _, v := range values[1:] {
		if o(v, least) < 0 {
			least = v
		}
		if o(v, greatest) > 0 {
			greatest = v
		}
	}
	return o.Closed(least, greatest)
}

// Open is Natural[T]().Open.
func Open[T cmp.Ordered](lower, upper T) (Range[T], error) {
	return Natural[T]().Open(lower, upper)
}

// Closed is Natural[T]().Closed.
func Closed[T cmp.Ordered](lower, upper T) (Range[T], error) {
	return Natural[T]().Closed(lower, upper)
}

// ClosedOpen is Natural[T]().ClosedOpen.
func ClosedOpen[T cmp.Ordered](lower, upper T) (Range[T], error) {
	return Natural[T]().ClosedOpen(lower, upper)
}

// OpenClosed is Natural[T]().OpenClosed.
func OpenClosed[T cmp.Ordered](lower, upper T) (Range[T], error) {
	return Natural[T]().OpenClosed(lower, upper)
}

// NewRange is Natural[T]().Range.
func NewRange[T cmp.Ordered](lower T, lowerType BoundType, upper T, upperType BoundType) (Range[T], error) {
	return Natural[T]().Range(lower, lowerType, upper, upperType)
}

// AtLeast is Natural[T]().AtLeast.
func AtLeast[T cmp.Ordered](endpoint T) Range[T] {
	return Natural[T]().AtLeast(endpoint)
}

// AtMost is Natural[T]().AtMost.
func AtMost[T cmp.Ordered](endpoint T) Range[T] {
	return Natural[T]().AtMost(endpoint)
}

// GreaterThan is Natural[T]().GreaterThan.
func GreaterThan[T cmp.Ordered](endpoint T) Range[T] {
	return Natural[T]().GreaterThan(endpoint)
}

// LessThan is Natural[T]().LessThan.
func LessThan[T cmp.Ordered](endpoint T) Range[T] {
	return Natural[T]().LessThan(endpoint)
}

// DownTo is Natural[T]().DownTo.
func DownTo[T cmp.Ordered](endpoint T, t BoundType) Range[T] {
	return Natural[T]().DownTo(endpoint, t)
}

// UpTo is Natural[T]().UpTo.
func UpTo[T cmp.Ordered](endpoint T, t BoundType) Range[T] {
	return Natural[T]().UpTo(endpoint, t)
}

// Singleton is Natural[T]().Singleton.
func Singleton[T cmp.Ordered](value T) Range[T] {
	return Natural[T]().Singleton(value)
}

// All is Natural[T]().All.
func All[T cmp.Ordered]() Range[T] {
	return Natural[T]().All()
}

// EncloseAll is Natural[T]().EncloseAll.
func EncloseAll[T cmp.Ordered](values ...T) (Range[T], error) {
	return Natural[T]().EncloseAll(values...)
}

// Must returns r or panics if err is non-nil. It is meant for ranges built from
// constants:
//
//	r := ranges.Must(ranges.Closed(1, 4))
func Must[T any](r Range[T], err error) Range[T] {
	if err != nil {
		panic(err)
	}
	return r
}
