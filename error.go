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

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidRangeBounds is returned when a range is built with a lower endpoint above
	// its upper endpoint, or with equal endpoints that are both open.
	ErrInvalidRangeBounds = errors.New("invalid range bounds")
	// ErrRangesNotConnected is returned by Range.Intersection for ranges that neither
	// overlap nor touch.
	ErrRangesNotConnected = errors.New("ranges are not connected")
	// ErrRangesOverlap is returned by Range.Gap for ranges sharing a non-empty intersection.
	ErrRangesOverlap = errors.New("ranges have a non-empty intersection")
	// ErrOutOfViewBounds is returned by a sub-range-map write whose range is not enclosed
	// by the view.
	ErrOutOfViewBounds = errors.New("range is not enclosed by the view")
	// ErrOverlappingRanges is returned by ImmutableRangeMapBuilder.Build when two entries
	// overlap.
	ErrOverlappingRanges = errors.New("overlapping ranges")
	// ErrEmptyRange is returned when an empty range is given where a non-empty one is required.
	ErrEmptyRange = errors.New("range must not be empty")
	// ErrNoValues is returned by EncloseAll when called without values.
	ErrNoValues = errors.New("no values to enclose")
	// ErrUnboundedRange is returned when enumerating a range with no least member.
	ErrUnboundedRange = errors.New("range has no lower bound in the domain")
	// ErrParse is returned for malformed interval notation.
	ErrParse = errors.New("malformed range notation")
)
