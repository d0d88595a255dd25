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
	"math"
	"math/big"

	"golang.org/x/exp/constraints"
)

// DiscreteDomain describes how to step through the values of a type. It is used to
// canonicalise and enumerate ranges over types such as integers, where (3..5) and
// [4..4] hold the same values.
//
// Implementations must satisfy Next(Previous(v)) == v wherever both are defined.
type DiscreteDomain[T any] interface {
	// Next returns the least value greater than v, or false if v is the maximum.
	Next(v T) (T, bool)

	// Previous returns the greatest value less than v, or false if v is the minimum.
	Previous(v T) (T, bool)

	// Distance returns the signed number of steps from a to b, saturating at
	// math.MinInt64 and math.MaxInt64.
	Distance(a, b T) int64

	// MinValue returns the least value, or false for a type unbounded below.
	MinValue() (T, bool)

	// MaxValue returns the greatest value, or false for a type unbounded above.
	MaxValue() (T, bool)
}

type integerDomain[T constraints.Integer] struct {
	least    T
	greatest T
}

// IntegerDomain returns the domain of a fixed-width integer type restricted to
// [least..greatest].
func IntegerDomain[T constraints.Integer](least, greatest T) DiscreteDomain[T] {
	return integerDomain[T]{least: least, greatest: greatest}
}

// Int32s is the domain of all int32 values.
func Int32s() DiscreteDomain[int32] {
	return IntegerDomain[int32](math.MinInt32, math.MaxInt32)
}

// Int64s is the domain of all int64 values.
func Int64s() DiscreteDomain[int64] {
	return IntegerDomain[int64](math.MinInt64, math.MaxInt64)
}

// Ints is the domain of all int values.
func Ints() DiscreteDomain[int] {
	return IntegerDomain[int](math.MinInt, math.MaxInt)
}

// Uint64s is the domain of all uint64 values.
func Uint64s() DiscreteDomain[uint64] {
	return IntegerDomain[uint64](0, math.MaxUint64)
}

func (d integerDomain[T]) Next(v T) (T, bool) {
	if v >= d.greatest {
		return 0, false
	}
	return v + 1, true
}

func (d integerDomain[T]) Previous(v T) (T, bool) {
	if v <= d.least {
		return 0, false
	}
	return v - 1, true
}

func (d integerDomain[T]) Distance(a, b T) int64 {
	return saturate(new(big.Int).Sub(bigOf(b), bigOf(a)))
}

func (d integerDomain[T]) MinValue() (T, bool) {
	return d.least, true
}

func (d integerDomain[T]) MaxValue() (T, bool) {
	return d.greatest, true
}

func bigOf[T constraints.Integer](v T) *big.Int {
	if ^T(0) < 0 {
		return big.NewInt(int64(v))
	}
	return new(big.Int).SetUint64(uint64(v))
}

func saturate(d *big.Int) int64 {
	switch {
	case d.IsInt64():
		return d.Int64()
	case d.Sign() < 0:
		return math.MinInt64
	default:
		return math.MaxInt64
	}
}

type bigIntDomain struct{}

var bigOne = big.NewInt(1)

// BigIntegers is the domain of arbitrary-precision integers. It is unbounded on both
// sides. Pair it with BigIntOrdering.
func BigIntegers() DiscreteDomain[*big.Int] {
	return bigIntDomain{}
}

func (bigIntDomain) Next(v *big.Int) (*big.Int, bool) {
	return new(big.Int).Add(v, bigOne), true
}

func (bigIntDomain) Previous(v *big.Int) (*big.Int, bool) {
	return new(big.Int).Sub(v, bigOne), true
}

func (bigIntDomain) Distance(a, b *big.Int) int64 {
	return saturate(new(big.Int).Sub(b, a))
}

func (bigIntDomain) MinValue() (*big.Int, bool) {
	return nil, false
}

func (bigIntDomain) MaxValue() (*big.Int, bool) {
	return nil, false
}
