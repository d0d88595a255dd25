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

import "github.com/emirpasic/gods/trees/redblacktree"

// cutTree is a red-black tree keyed by the lower cut of stored ranges. Values are
// Range[T] for a TreeRangeSet and Entry[K, V] for a TreeRangeMap.
type cutTree[T any] struct {
	order Ordering[T]
	tree  *redblacktree.Tree
}

func newCutTree[T any](order Ordering[T]) *cutTree[T] {
	return &cutTree[T]{
		order: order,
		tree: redblacktree.NewWith(func(a, b interface{}) int {
			return compareCuts(order, a.(cut[T]), b.(cut[T]))
		}),
	}
}

func (t *cutTree[T]) put(key cut[T], value interface{}) {
	t.tree.Put(key, value)
}

func (t *cutTree[T]) remove(key cut[T]) {
	t.tree.Remove(key)
}

func (t *cutTree[T]) size() int {
	return t.tree.Size()
}

func (t *cutTree[T]) clear() {
	t.tree.Clear()
}

func (t *cutTree[T]) first() *redblacktree.Node {
	return t.tree.Left()
}

func (t *cutTree[T]) last() *redblacktree.Node {
	return t.tree.Right()
}

// floor returns the node with the greatest key <= key, or nil.
func (t *cutTree[T]) floor(key cut[T]) *redblacktree.Node {
	node, ok := t.tree.Floor(key)
	if !ok {
		return nil
	}
	return node
}

// lower returns the node with the greatest key < key, or nil.
func (t *cutTree[T]) lower(key cut[T]) *redblacktree.Node {
	node := t.floor(key)
	if node != nil && compareCuts(t.order, node.Key.(cut[T]), key) == 0 {
		return predecessor(node)
	}
	return node
}

// ceiling returns the node with the least key >= key, or nil.
func (t *cutTree[T]) ceiling(key cut[T]) *redblacktree.Node {
	node, ok := t.tree.Ceiling(key)
	if !ok {
		return nil
	}
	return node
}

// clearRange removes every key in [from, to) and returns how many were removed.
func (t *cutTree[T]) clearRange(from, to cut[T]) int {
	removed := 0
	for {
		node := t.ceiling(from)
		if node == nil || compareCuts(t.order, node.Key.(cut[T]), to) >= 0 {
			return removed
		}
		t.tree.Remove(node.Key)
		removed++
	}
}

// ascend yields stored values from the first node onwards.
func (t *cutTree[T]) ascend(yield func(interface{}) bool) {
	it := t.tree.Iterator()
	for it.Next() {
		if !yield(it.Value()) {
			return
		}
	}
}

// descend yields stored values from the last node backwards.
func (t *cutTree[T]) descend(yield func(interface{}) bool) {
	it := t.tree.Iterator()
	it.End()
	for it.Prev() {
		if !yield(it.Value()) {
			return
		}
	}
}

func predecessor(node *redblacktree.Node) *redblacktree.Node {
	if node.Left != nil {
		node = node.Left
		for node.Right != nil {
			node = node.Right
		}
		return node
	}
	parent := node.Parent
	for parent != nil && node == parent.Left {
		node, parent = parent, parent.Parent
	}
	return parent
}

func successor(node *redblacktree.Node) *redblacktree.Node {
	if node.Right != nil {
		node = node.Right
		for node.Left != nil {
			node = node.Left
		}
		return node
	}
	parent := node.Parent
	for parent != nil && node == parent.Right {
		node, parent = parent, parent.Parent
	}
	return parent
}
