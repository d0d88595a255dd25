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

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
)

// RangeMapView is a live window onto a TreeRangeMap, restricted to a view range.
// It holds no entries of its own: reads consult the parent and clip what they return
// to the view, and writes are checked against the view and then applied to the
// parent. Changes made to the parent directly are visible through the view.
type RangeMapView[K, V any] struct {
	parent *TreeRangeMap[K, V]
	view   Range[K]
	// detached is set for a view nested into a disjoint one; it sees nothing and
	// accepts no write.
	detached bool
}

func (v *RangeMapView[K, V]) Ordering() Ordering[K] {
	return v.parent.order
}

// View returns the range the view is restricted to.
func (v *RangeMapView[K, V]) View() Range[K] {
	return v.view
}

func (v *RangeMapView[K, V]) Get(key K) (V, bool) {
	if v.detached || !v.view.Contains(key) {
		var zero V
		return zero, false
	}
	return v.parent.Get(key)
}

func (v *RangeMapView[K, V]) GetEntry(key K) (Entry[K, V], bool) {
	if v.detached || !v.view.Contains(key) {
		return Entry[K, V]{}, false
	}
	e, ok := v.parent.GetEntry(key)
	if !ok {
		return Entry[K, V]{}, false
	}
	return Entry[K, V]{Range: e.Range.intersect(v.view), Value: e.Value}, true
}

func (v *RangeMapView[K, V]) Entries() []Entry[K, V] {
	if v.detached {
		return nil
	}
	return v.parent.entriesIn(v.view)
}

func (v *RangeMapView[K, V]) All() iter.Seq2[Range[K], V] {
	return func(yield func(Range[K], V) bool) {
		entriesAscending(v.Entries())(yield)
	}
}

func (v *RangeMapView[K, V]) Descending() iter.Seq2[Range[K], V] {
	return func(yield func(Range[K], V) bool) {
		entriesDescending(v.Entries())(yield)
	}
}

func (v *RangeMapView[K, V]) Span() (Range[K], bool) {
	return spanOfEntries(v.parent.order, v.Entries())
}

func (v *RangeMapView[K, V]) IsEmpty() bool {
	return len(v.Entries()) == 0
}

func (v *RangeMapView[K, V]) String() string {
	return formatEntries(v.All())
}

func (v *RangeMapView[K, V]) checkEnclosed(r Range[K]) error {
	if v.detached {
		return errors.Wrapf(ErrOutOfViewBounds, "%s: view is detached from its parent", r)
	}
	if !v.view.Encloses(r) {
		return errors.Wrapf(ErrOutOfViewBounds, "%s is not enclosed by %s", r, v.view)
	}
	return nil
}

// Put maps r to value in the parent map. It fails with ErrOutOfViewBounds, leaving
// the parent unchanged, when r is not enclosed by the view.
func (v *RangeMapView[K, V]) Put(r Range[K], value V) error {
	if err := v.checkEnclosed(r); err != nil {
		return err
	}
	v.parent.Put(r, value)
	return nil
}

// PutAll puts every entry of other into the parent map. Every range is checked first;
// if any falls outside the view nothing is written and all offending ranges are
// reported.
func (v *RangeMapView[K, V]) PutAll(other RangeMap[K, V]) error {
	entries := other.Entries()

	var errs *multierror.Error
	for _, e := range entries {
		if err := v.checkEnclosed(e.Range); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}

	for _, e := range entries {
		v.parent.Put(e.Range, e.Value)
	}
	return nil
}

// Remove unmaps r in the parent map. It fails with ErrOutOfViewBounds, leaving the
// parent unchanged, when r is not enclosed by the view.
func (v *RangeMapView[K, V]) Remove(r Range[K]) error {
	if err := v.checkEnclosed(r); err != nil {
		return err
	}
	v.parent.Remove(r)
	return nil
}

// Merge is TreeRangeMap.Merge restricted to the view.
func (v *RangeMapView[K, V]) Merge(r Range[K], value V, remap func(existing, value V) (V, bool)) error {
	if err := v.checkEnclosed(r); err != nil {
		return err
	}
	v.parent.Merge(r, value, remap)
	return nil
}

// Clear unmaps the whole view in the parent map.
func (v *RangeMapView[K, V]) Clear() {
	if v.detached {
		return
	}
	v.parent.Remove(v.view)
}

// SubRangeMap narrows the view further. Narrowing to a range not connected to the
// current view yields a view that sees nothing and rejects every write.
func (v *RangeMapView[K, V]) SubRangeMap(view Range[K]) *RangeMapView[K, V] {
	if v.detached || !view.IsConnected(v.view) {
		return &RangeMapView[K, V]{parent: v.parent, view: view, detached: true}
	}
	return &RangeMapView[K, V]{parent: v.parent, view: v.view.intersect(view)}
}

var (
	_ RangeMap[int, string] = (*RangeMapView[int, string])(nil)
)
