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

import "iter"

// TreeRangeSet is a mutable RangeSet backed by a red-black tree keyed by the lower
// bound of each stored range. Add and Remove cost O(log n + k) where k is the number
// of stored ranges they touch; point queries cost O(log n).
//
// TreeRangeSet is not safe for concurrent use. Callers sharing one between goroutines
// must guard every call, reads included, with their own lock.
//
// Example:
//
//	set := ranges.NewTreeRangeSet(ranges.Natural[int]())
//	set.Add(ranges.Must(ranges.Closed(1, 4)))
//	set.Add(ranges.Must(ranges.Open(2, 6)))
//	fmt.Println(set) // {[1..6)}
type TreeRangeSet[T any] struct {
	order   Ordering[T]
	byLower *cutTree[T]
	options Options
}

// NewTreeRangeSet creates an empty mutable range set.
func NewTreeRangeSet[T any](order Ordering[T], opts ...Option) *TreeRangeSet[T] {
	return &TreeRangeSet[T]{
		order:   order,
		byLower: newCutTree(order),
		options: buildOptions(opts),
	}
}

// TreeRangeSetOf creates a mutable range set holding the union of ranges.
func TreeRangeSetOf[T any](order Ordering[T], ranges ...Range[T]) *TreeRangeSet[T] {
	s := NewTreeRangeSet(order)
	s.fill(normalizeRanges(order, ranges))
	return s
}

// fill stores ranges that are already sorted and disjoint.
func (s *TreeRangeSet[T]) fill(ranges []Range[T]) {
	for _, r := range ranges {
		s.byLower.put(r.lower, r)
	}
}

func (s *TreeRangeSet[T]) Ordering() Ordering[T] {
	return s.order
}

func (s *TreeRangeSet[T]) Contains(value T) bool {
	_, ok := s.RangeContaining(value)
	return ok
}

func (s *TreeRangeSet[T]) RangeContaining(value T) (Range[T], bool) {
	if node := s.byLower.floor(belowValue(value)); node != nil {
		if r := node.Value.(Range[T]); r.Contains(value) {
			return r, true
		}
	}
	return Range[T]{}, false
}

func (s *TreeRangeSet[T]) Encloses(r Range[T]) bool {
	node := s.byLower.floor(r.lower)
	return node != nil && node.Value.(Range[T]).Encloses(r)
}

func (s *TreeRangeSet[T]) EnclosesAll(other RangeSet[T]) bool {
	return enclosesAll[T](s, other)
}

func (s *TreeRangeSet[T]) Intersects(r Range[T]) bool {
	if node := s.byLower.ceiling(r.lower); node != nil && node.Value.(Range[T]).overlaps(r) {
		return true
	}
	node := s.byLower.lower(r.lower)
	return node != nil && node.Value.(Range[T]).overlaps(r)
}

func (s *TreeRangeSet[T]) IsEmpty() bool {
	return s.byLower.size() == 0
}

func (s *TreeRangeSet[T]) Ranges() []Range[T] {
	out := make([]Range[T], 0, s.byLower.size())
	for r := range s.All() {
		out = append(out, r)
	}
	return out
}

func (s *TreeRangeSet[T]) All() iter.Seq[Range[T]] {
	return func(yield func(Range[T]) bool) {
		s.byLower.ascend(func(v interface{}) bool {
			return yield(v.(Range[T]))
		})
	}
}

func (s *TreeRangeSet[T]) Descending() iter.Seq[Range[T]] {
	return func(yield func(Range[T]) bool) {
		s.byLower.descend(func(v interface{}) bool {
			return yield(v.(Range[T]))
		})
	}
}

func (s *TreeRangeSet[T]) Span() (Range[T], bool) {
	first, last := s.byLower.first(), s.byLower.last()
	if first == nil {
		return Range[T]{}, false
	}
	return Range[T]{
		lower: first.Value.(Range[T]).lower,
		upper: last.Value.(Range[T]).upper,
		order: s.order,
	}, true
}

func (s *TreeRangeSet[T]) Equal(other RangeSet[T]) bool {
	return rangesEqual(s.All(), other.All())
}

func (s *TreeRangeSet[T]) Hash() uint64 {
	return hashRanges(s.All())
}

func (s *TreeRangeSet[T]) String() string {
	return formatRanges(s.All())
}

// Add inserts every value of r, coalescing it with the stored ranges it is connected
// to. Adding an empty range does nothing.
func (s *TreeRangeSet[T]) Add(r Range[T]) {
	if r.IsEmpty() {
		return
	}

	lower, upper := r.lower, r.upper

	if node := s.byLower.lower(lower); node != nil {
		below := node.Value.(Range[T])
		if compareCuts(s.order, below.upper, lower) >= 0 {
			if compareCuts(s.order, below.upper, upper) >= 0 {
				upper = below.upper
			}
			lower = below.lower
		}
	}

	if node := s.byLower.floor(upper); node != nil {
		below := node.Value.(Range[T])
		if compareCuts(s.order, below.upper, upper) >= 0 {
			upper = below.upper
		}
	}

	touched := s.byLower.clearRange(lower, upper)
	merged := Range[T]{lower: lower, upper: upper, order: s.order}
	s.replaceWithSameLowerBound(merged)

	s.options.debug("range set add",
		"range", r.String(),
		"stored", merged.String(),
		"touched", touched,
	)
}

// Remove deletes every value of r, trimming or splitting the stored ranges it
// overlaps. Removing an empty range does nothing.
func (s *TreeRangeSet[T]) Remove(r Range[T]) {
	if r.IsEmpty() {
		return
	}

	if node := s.byLower.lower(r.lower); node != nil {
		below := node.Value.(Range[T])
		if compareCuts(s.order, below.upper, r.lower) >= 0 {
			if r.HasUpperBound() && compareCuts(s.order, below.upper, r.upper) >= 0 {
				s.replaceWithSameLowerBound(Range[T]{lower: r.upper, upper: below.upper, order: s.order})
			}
			s.replaceWithSameLowerBound(Range[T]{lower: below.lower, upper: r.lower, order: s.order})
		}
	}

	if node := s.byLower.floor(r.upper); node != nil {
		below := node.Value.(Range[T])
		if r.HasUpperBound() && compareCuts(s.order, below.upper, r.upper) >= 0 {
			s.replaceWithSameLowerBound(Range[T]{lower: r.upper, upper: below.upper, order: s.order})
		}
	}

	touched := s.byLower.clearRange(r.lower, r.upper)

	s.options.debug("range set remove",
		"range", r.String(),
		"touched", touched,
	)
}

// replaceWithSameLowerBound stores r, or drops the entry at r's lower bound when r is
// empty.
func (s *TreeRangeSet[T]) replaceWithSameLowerBound(r Range[T]) {
	if r.IsEmpty() {
		s.byLower.remove(r.lower)
		return
	}
	s.byLower.put(r.lower, r)
}

// Clear removes every range.
func (s *TreeRangeSet[T]) Clear() {
	s.byLower.clear()
	s.options.debug("range set clear")
}

// AddAll adds every range of other.
func (s *TreeRangeSet[T]) AddAll(other RangeSet[T]) {
	for _, r := range other.Ranges() {
		s.Add(r)
	}
}

// RemoveAll removes every range of other.
func (s *TreeRangeSet[T]) RemoveAll(other RangeSet[T]) {
	for _, r := range other.Ranges() {
		s.Remove(r)
	}
}

// Complement returns a new, independent set holding every value not in s.
func (s *TreeRangeSet[T]) Complement() *TreeRangeSet[T] {
	out := &TreeRangeSet[T]{order: s.order, byLower: newCutTree(s.order), options: s.options}
	out.fill(complementRanges(s.order, s.Ranges()))
	return out
}

// SubRangeSet returns a new, independent set holding the values of s that lie in view.
func (s *TreeRangeSet[T]) SubRangeSet(view Range[T]) *TreeRangeSet[T] {
	out := &TreeRangeSet[T]{order: s.order, byLower: newCutTree(s.order), options: s.options}
	out.fill(clipRanges(s.rangesConnectedTo(view), view))
	return out
}

// rangesConnectedTo returns, in order, the stored ranges that may intersect view.
func (s *TreeRangeSet[T]) rangesConnectedTo(view Range[T]) []Range[T] {
	var out []Range[T]
	node := s.byLower.lower(view.lower)
	if node == nil {
		node = s.byLower.first()
	}
	for ; node != nil; node = successor(node) {
		r := node.Value.(Range[T])
		if compareCuts(s.order, r.lower, view.upper) > 0 {
			break
		}
		out = append(out, r)
	}
	return out
}

var (
	_ RangeSet[int] = (*TreeRangeSet[int])(nil)
)
