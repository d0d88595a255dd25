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

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
)

// ImmutableRangeMap is a RangeMap that never changes once built. Entries are kept in a
// sorted slice searched by binary search; SubRangeMap returns a freshly allocated map,
// so values may be shared between goroutines without synchronisation.
type ImmutableRangeMap[K, V any] struct {
	order   Ordering[K]
	entries []Entry[K, V]
}

// CopyOfRangeMap returns an immutable copy of m.
func CopyOfRangeMap[K, V any](m RangeMap[K, V]) *ImmutableRangeMap[K, V] {
	if im, ok := m.(*ImmutableRangeMap[K, V]); ok {
		return im
	}
	return &ImmutableRangeMap[K, V]{order: m.Ordering(), entries: m.Entries()}
}

// ImmutableRangeMapBuilder collects entries for an ImmutableRangeMap. Entries must be
// non-empty and must not overlap; touching entries are fine.
type ImmutableRangeMapBuilder[K, V any] struct {
	order   Ordering[K]
	entries []Entry[K, V]
	errs    *multierror.Error
}

// NewImmutableRangeMapBuilder returns an empty builder.
func NewImmutableRangeMapBuilder[K, V any](order Ordering[K]) *ImmutableRangeMapBuilder[K, V] {
	return &ImmutableRangeMapBuilder[K, V]{order: order}
}

// Put queues an entry. An empty range is recorded as an error reported by Build.
func (b *ImmutableRangeMapBuilder[K, V]) Put(r Range[K], value V) *ImmutableRangeMapBuilder[K, V] {
	if r.IsEmpty() {
		b.errs = multierror.Append(b.errs, errors.Wrapf(ErrEmptyRange, "%s", r))
		return b
	}
	b.entries = append(b.entries, Entry[K, V]{Range: r, Value: value})
	return b
}

// PutAll queues every entry of m.
func (b *ImmutableRangeMapBuilder[K, V]) PutAll(m RangeMap[K, V]) *ImmutableRangeMapBuilder[K, V] {
	for _, e := range m.Entries() {
		b.Put(e.Range, e.Value)
	}
	return b
}

// Build returns the map, or every problem found among the queued entries.
func (b *ImmutableRangeMapBuilder[K, V]) Build() (*ImmutableRangeMap[K, V], error) {
	entries := slices.Clone(b.entries)
	slices.SortStableFunc(entries, func(x, y Entry[K, V]) int {
		return compareCuts(b.order, x.Range.lower, y.Range.lower)
	})

	var errs *multierror.Error
	if b.errs != nil {
		errs = multierror.Append(errs, b.errs.Errors...)
	}
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1].Range, entries[i].Range
		if prev.overlaps(cur) {
			errs = multierror.Append(errs, errors.Wrapf(ErrOverlappingRanges, "%s overlaps with %s", prev, cur))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return &ImmutableRangeMap[K, V]{order: b.order, entries: slices.Clip(entries)}, nil
}

func (m *ImmutableRangeMap[K, V]) Ordering() Ordering[K] {
	return m.order
}

func (m *ImmutableRangeMap[K, V]) Get(key K) (V, bool) {
	e, ok := m.GetEntry(key)
	return e.Value, ok
}

func (m *ImmutableRangeMap[K, V]) GetEntry(key K) (Entry[K, V], bool) {
	idx, _ := slices.BinarySearchFunc(m.entries, key, func(e Entry[K, V], key K) int {
		if e.Range.lower.isLessThan(m.order, key) {
			return -1
		}
		return 1
	})
	if idx > 0 && m.entries[idx-1].Range.Contains(key) {
		return m.entries[idx-1], true
	}
	return Entry[K, V]{}, false
}

func (m *ImmutableRangeMap[K, V]) Entries() []Entry[K, V] {
	return slices.Clone(m.entries)
}

func (m *ImmutableRangeMap[K, V]) All() iter.Seq2[Range[K], V] {
	return entriesAscending(m.entries)
}

func (m *ImmutableRangeMap[K, V]) Descending() iter.Seq2[Range[K], V] {
	return entriesDescending(m.entries)
}

func (m *ImmutableRangeMap[K, V]) Span() (Range[K], bool) {
	return spanOfEntries(m.order, m.entries)
}

func (m *ImmutableRangeMap[K, V]) IsEmpty() bool {
	return len(m.entries) == 0
}

func (m *ImmutableRangeMap[K, V]) String() string {
	return formatEntries(m.All())
}

// SubRangeMap returns a new map holding the entries of m clipped to view.
func (m *ImmutableRangeMap[K, V]) SubRangeMap(view Range[K]) *ImmutableRangeMap[K, V] {
	return &ImmutableRangeMap[K, V]{order: m.order, entries: clipEntries(m.entries, view)}
}

var (
	_ RangeMap[int, string] = (*ImmutableRangeMap[int, string])(nil)
)
