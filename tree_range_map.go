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

// TreeRangeMap is a mutable RangeMap backed by a red-black tree keyed by the lower
// bound of each entry. Put and Remove cost O(log n + k) where k is the number of
// entries they overlap.
//
// TreeRangeMap is not safe for concurrent use. Callers sharing one between goroutines
// must guard every call, including calls through its views, with their own lock.
type TreeRangeMap[K, V any] struct {
	order   Ordering[K]
	byLower *cutTree[K]
	options Options
}

// NewTreeRangeMap creates an empty mutable range map.
func NewTreeRangeMap[K, V any](order Ordering[K], opts ...Option) *TreeRangeMap[K, V] {
	return &TreeRangeMap[K, V]{
		order:   order,
		byLower: newCutTree(order),
		options: buildOptions(opts),
	}
}

func (m *TreeRangeMap[K, V]) Ordering() Ordering[K] {
	return m.order
}

func (m *TreeRangeMap[K, V]) Get(key K) (V, bool) {
	e, ok := m.GetEntry(key)
	return e.Value, ok
}

func (m *TreeRangeMap[K, V]) GetEntry(key K) (Entry[K, V], bool) {
	if node := m.byLower.floor(belowValue(key)); node != nil {
		if e := node.Value.(Entry[K, V]); e.Range.Contains(key) {
			return e, true
		}
	}
	return Entry[K, V]{}, false
}

func (m *TreeRangeMap[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], 0, m.byLower.size())
	m.byLower.ascend(func(v interface{}) bool {
		out = append(out, v.(Entry[K, V]))
		return true
	})
	return out
}

func (m *TreeRangeMap[K, V]) All() iter.Seq2[Range[K], V] {
	return func(yield func(Range[K], V) bool) {
		m.byLower.ascend(func(v interface{}) bool {
			e := v.(Entry[K, V])
			return yield(e.Range, e.Value)
		})
	}
}

func (m *TreeRangeMap[K, V]) Descending() iter.Seq2[Range[K], V] {
	return func(yield func(Range[K], V) bool) {
		m.byLower.descend(func(v interface{}) bool {
			e := v.(Entry[K, V])
			return yield(e.Range, e.Value)
		})
	}
}

func (m *TreeRangeMap[K, V]) Span() (Range[K], bool) {
	first, last := m.byLower.first(), m.byLower.last()
	if first == nil {
		return Range[K]{}, false
	}
	return Range[K]{
		lower: first.Value.(Entry[K, V]).Range.lower,
		upper: last.Value.(Entry[K, V]).Range.upper,
		order: m.order,
	}, true
}

func (m *TreeRangeMap[K, V]) IsEmpty() bool {
	return m.byLower.size() == 0
}

func (m *TreeRangeMap[K, V]) String() string {
	return formatEntries(m.All())
}

// Put maps every key of r to value, trimming or splitting the entries r overlaps
// whatever their values. Putting an empty range does nothing.
func (m *TreeRangeMap[K, V]) Put(r Range[K], value V) {
	if r.IsEmpty() {
		return
	}
	touched := m.remove(r)
	m.byLower.put(r.lower, Entry[K, V]{Range: r, Value: value})

	m.options.debug("range map put",
		"range", r.String(),
		"touched", touched,
	)
}

// PutAll puts every entry of other.
func (m *TreeRangeMap[K, V]) PutAll(other RangeMap[K, V]) {
	for _, e := range other.Entries() {
		m.Put(e.Range, e.Value)
	}
}

// Remove unmaps every key of r, trimming or splitting the entries r overlaps.
func (m *TreeRangeMap[K, V]) Remove(r Range[K]) {
	if r.IsEmpty() {
		return
	}
	touched := m.remove(r)

	m.options.debug("range map remove",
		"range", r.String(),
		"touched", touched,
	)
}

// remove clears r from the map and returns how many entries were dropped outright.
func (m *TreeRangeMap[K, V]) remove(r Range[K]) int {
	if node := m.byLower.lower(r.lower); node != nil {
		e := node.Value.(Entry[K, V])
		if compareCuts(m.order, e.Range.upper, r.lower) > 0 {
			if compareCuts(m.order, e.Range.upper, r.upper) > 0 {
				m.putFragment(r.upper, e.Range.upper, e.Value)
			}
			m.putFragment(e.Range.lower, r.lower, e.Value)
		}
	}

	if node := m.byLower.lower(r.upper); node != nil {
		e := node.Value.(Entry[K, V])
		if compareCuts(m.order, e.Range.upper, r.upper) > 0 {
			m.putFragment(r.upper, e.Range.upper, e.Value)
		}
	}

	return m.byLower.clearRange(r.lower, r.upper)
}

// putFragment stores the leftover part of a trimmed entry. Callers guarantee
// lower < upper.
func (m *TreeRangeMap[K, V]) putFragment(lower, upper cut[K], value V) {
	m.byLower.put(lower, Entry[K, V]{
		Range: Range[K]{lower: lower, upper: upper, order: m.order},
		Value: value,
	})
}

// Clear removes every entry.
func (m *TreeRangeMap[K, V]) Clear() {
	m.byLower.clear()
	m.options.debug("range map clear")
}

// Merge combines value into every key of r. Keys of r already mapped get
// remap(existing, value), or are unmapped when remap returns false; keys of r not
// mapped get value. Entries are split at r's edges as Put would split them.
func (m *TreeRangeMap[K, V]) Merge(r Range[K], value V, remap func(existing, value V) (V, bool)) {
	if r.IsEmpty() {
		return
	}

	var pieces []Entry[K, V]
	cursor := r.lower
	for _, e := range m.entriesIn(r) {
		if gap := (Range[K]{lower: cursor, upper: e.Range.lower, order: m.order}); !gap.IsEmpty() {
			pieces = append(pieces, Entry[K, V]{Range: gap, Value: value})
		}
		if merged, keep := remap(e.Value, value); keep {
			pieces = append(pieces, Entry[K, V]{Range: e.Range, Value: merged})
		}
		cursor = e.Range.upper
	}
	if tail := (Range[K]{lower: cursor, upper: r.upper, order: m.order}); !tail.IsEmpty() {
		pieces = append(pieces, Entry[K, V]{Range: tail, Value: value})
	}

	touched := m.remove(r)
	for _, p := range pieces {
		m.byLower.put(p.Range.lower, p)
	}

	m.options.debug("range map merge",
		"range", r.String(),
		"touched", touched,
		"pieces", len(pieces),
	)
}

// entriesIn returns, in order, the entries overlapping view clipped to it.
func (m *TreeRangeMap[K, V]) entriesIn(view Range[K]) []Entry[K, V] {
	var candidates []Entry[K, V]
	node := m.byLower.lower(view.lower)
	if node == nil {
		node = m.byLower.first()
	}
	for ; node != nil; node = successor(node) {
		e := node.Value.(Entry[K, V])
		if compareCuts(m.order, e.Range.lower, view.upper) >= 0 {
			break
		}
		candidates = append(candidates, e)
	}
	return clipEntries(candidates, view)
}

// SubRangeMap returns a live view of the entries of m within view. Reads through the
// view see entries clipped to it, and writes through it land in m.
func (m *TreeRangeMap[K, V]) SubRangeMap(view Range[K]) *RangeMapView[K, V] {
	return &RangeMapView[K, V]{parent: m, view: view}
}

var (
	_ RangeMap[int, string] = (*TreeRangeMap[int, string])(nil)
)
