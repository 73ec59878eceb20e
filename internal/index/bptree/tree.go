// Package bptree implements OrderedMap: an order-preserving B+-tree
// key->value mapping supporting point lookup, ordered range scans, and
// first/last key access. Grounded on original_source/src/BpTreeMap.java,
// reworked as a pure in-memory node structure rather than disk/page-backed.
package bptree

import (
	"log/slog"

	"github.com/tuannm99/reldb/internal/index"
	"github.com/tuannm99/reldb/internal/scalar"
)

// DefaultOrder is the design-default branching factor: up to 4 keys per
// node and 5 children per internal node.
const DefaultOrder = 5

// Tree is an OrderedMap backed by a B+-tree.
type Tree[V any] struct {
	order int
	root  *node[V]
}

// New constructs an empty B+-tree with the given branching factor ORDER.
// order < 3 falls back to DefaultOrder (an ORDER of 2 cannot hold a useful
// separator).
func New[V any](order int) *Tree[V] {
	if order < 3 {
		order = DefaultOrder
	}
	return &Tree[V]{order: order, root: newLeaf[V]()}
}

var (
	_ index.Map[int]      = (*Tree[int])(nil)
	_ index.RangeMap[int] = (*Tree[int])(nil)
)

// Get traverses root-to-leaf following the first child whose separator
// exceeds key, else the rightmost child, and returns the value at an equal
// key in that leaf.
func (t *Tree[V]) Get(key scalar.KeyType) (V, bool) {
	n := t.root
	for !n.isLeaf {
		n = n.children[childIndex(n, key)]
	}
	pos, found := leafInsertPos(n, key)
	if !found {
		var zero V
		return zero, false
	}
	return n.values[pos], true
}

// Put inserts key->value. A key already present is rejected with a no-op
// and ErrDuplicateKey rather than overwriting the existing value.
func (t *Tree[V]) Put(key scalar.KeyType, value V) error {
	var path []*node[V]
	n := t.root
	for !n.isLeaf {
		path = append(path, n)
		n = n.children[childIndex(n, key)]
	}

	pos, dup := leafInsertPos(n, key)
	if dup {
		slog.Debug("bptree.put.duplicate", "key", key.String())
		return index.ErrDuplicateKey
	}

	if len(n.keys) < t.order-1 {
		insertLeafAt(n, pos, key, value)
		return nil
	}

	sib, sepKey := splitLeaf(n, pos, key, value)
	slog.Debug("bptree.leaf.split", "key", key.String(), "separator", sepKey.String())
	t.propagate(path, sib, sepKey)
	return nil
}

// propagate wedges (sepKey, right) into the parent recorded at the top of
// path, splitting and recursing upward as needed, and growing the tree by
// one level if the root itself splits.
func (t *Tree[V]) propagate(path []*node[V], right *node[V], sepKey scalar.KeyType) {
	for {
		if len(path) == 0 {
			newRoot := newInternal[V]()
			newRoot.keys = []scalar.KeyType{sepKey}
			newRoot.children = []*node[V]{t.root, right}
			t.root = newRoot
			return
		}

		parent := path[len(path)-1]
		path = path[:len(path)-1]
		pos := childIndex(parent, sepKey)

		if len(parent.keys) < t.order-1 {
			insertInternalAt(parent, pos, sepKey, right)
			return
		}

		sib, newSep := splitInternal(parent, pos, sepKey, right)
		slog.Debug("bptree.internal.split", "separator", newSep.String())
		right = sib
		sepKey = newSep
	}
}

// FirstKey returns the smallest stored key.
func (t *Tree[V]) FirstKey() (scalar.KeyType, error) {
	n := t.leftmostLeaf()
	if len(n.keys) == 0 {
		return scalar.KeyType{}, index.ErrEmptyStructure
	}
	return n.keys[0], nil
}

// LastKey returns the largest stored key.
func (t *Tree[V]) LastKey() (scalar.KeyType, error) {
	n := t.root
	for !n.isLeaf {
		n = n.children[len(n.children)-1]
	}
	if len(n.keys) == 0 {
		return scalar.KeyType{}, index.ErrEmptyStructure
	}
	return n.keys[len(n.keys)-1], nil
}

func (t *Tree[V]) leftmostLeaf() *node[V] {
	n := t.root
	for !n.isLeaf {
		n = n.children[0]
	}
	return n
}

// EntrySet returns all entries in ascending key order, walking the leaf
// chain.
func (t *Tree[V]) EntrySet() []index.Entry[V] {
	var out []index.Entry[V]
	for n := t.leftmostLeaf(); n != nil; n = n.next {
		for i, k := range n.keys {
			out = append(out, index.Entry[V]{Key: k, Value: n.values[i]})
		}
	}
	return out
}

// Size returns the total key count, computed by walking the leaf chain.
func (t *Tree[V]) Size() int {
	n := 0
	for l := t.leftmostLeaf(); l != nil; l = l.next {
		n += len(l.keys)
	}
	return n
}

// HeadMap returns entries with key < to.
func (t *Tree[V]) HeadMap(to scalar.KeyType) []index.Entry[V] {
	return t.rangeScan(nil, &to, false)
}

// TailMap returns entries with key >= from, inclusive of the last key.
func (t *Tree[V]) TailMap(from scalar.KeyType) []index.Entry[V] {
	return t.rangeScan(&from, nil, true)
}

// SubMap returns entries with from <= key < to.
func (t *Tree[V]) SubMap(from, to scalar.KeyType) []index.Entry[V] {
	return t.rangeScan(&from, &to, false)
}

// rangeScan walks the leaf chain collecting entries in [from, to) (or with
// to inclusive when inclusiveTo is set, matching TailMap's semantics of
// [from, lastKey] without special-casing the last key).
func (t *Tree[V]) rangeScan(from, to *scalar.KeyType, inclusiveTo bool) []index.Entry[V] {
	var out []index.Entry[V]
	for n := t.leftmostLeaf(); n != nil; n = n.next {
		for i, k := range n.keys {
			if from != nil && k.Compare(*from) < 0 {
				continue
			}
			if to != nil {
				c := k.Compare(*to)
				if inclusiveTo && c > 0 {
					continue
				}
				if !inclusiveTo && c >= 0 {
					continue
				}
			}
			out = append(out, index.Entry[V]{Key: k, Value: n.values[i]})
		}
	}
	return out
}
