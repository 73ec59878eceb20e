package bptree

import "github.com/tuannm99/reldb/internal/scalar"

// node is a B+-tree node. Leaves carry values and a next-leaf link; internal
// nodes carry one more child than key (children[i] holds keys < keys[i],
// children[i+1] holds keys >= keys[i]).
type node[V any] struct {
	isLeaf   bool
	keys     []scalar.KeyType
	values   []V       // leaf only
	children []*node[V] // internal only
	next     *node[V]   // leaf only: next leaf in ascending-key order
}

func newLeaf[V any]() *node[V] {
	return &node[V]{isLeaf: true}
}

func newInternal[V any]() *node[V] {
	return &node[V]{isLeaf: false}
}

// childIndex returns the index of the child to descend into to find key:
// the first child whose separator exceeds key, else the rightmost child.
func childIndex[V any](n *node[V], key scalar.KeyType) int {
	for i, k := range n.keys {
		if key.Compare(k) < 0 {
			return i
		}
	}
	return len(n.keys)
}

// leafInsertPos returns the sorted insertion index for key among a leaf's
// keys, and whether key is already present at that index.
func leafInsertPos[V any](n *node[V], key scalar.KeyType) (pos int, dup bool) {
	for pos = 0; pos < len(n.keys); pos++ {
		c := key.Compare(n.keys[pos])
		if c == 0 {
			return pos, true
		}
		if c < 0 {
			return pos, false
		}
	}
	return pos, false
}

// insertLeafAt wedges (key, value) into leaf n at position pos.
func insertLeafAt[V any](n *node[V], pos int, key scalar.KeyType, value V) {
	n.keys = append(n.keys, key)
	copy(n.keys[pos+1:], n.keys[pos:len(n.keys)-1])
	n.keys[pos] = key

	n.values = append(n.values, value)
	copy(n.values[pos+1:], n.values[pos:len(n.values)-1])
	n.values[pos] = value
}

// insertInternalAt wedges key into internal node n at position pos, with
// child becoming children[pos+1] (the subtree for keys >= key).
func insertInternalAt[V any](n *node[V], pos int, key scalar.KeyType, child *node[V]) {
	n.keys = append(n.keys, key)
	copy(n.keys[pos+1:], n.keys[pos:len(n.keys)-1])
	n.keys[pos] = key

	n.children = append(n.children, nil)
	copy(n.children[pos+2:], n.children[pos+1:len(n.children)-1])
	n.children[pos+1] = child
}

// splitLeaf splits a full leaf n, having already located the insertion
// position pos for (key, value). It moves the upper half of n's entries to
// a new sibling, wedges the new pair into whichever half it falls in, links
// the sibling into the leaf chain, and returns (sibling, promoted key).
// Grounded on original_source/src/BpTreeMap.java's split(), translated to
// slices instead of fixed ORDER-sized arrays.
func splitLeaf[V any](n *node[V], pos int, key scalar.KeyType, value V) (*node[V], scalar.KeyType) {
	total := len(n.keys)
	mid := total / 2

	sib := newLeaf[V]()
	sib.keys = append(sib.keys, n.keys[mid:]...)
	sib.values = append(sib.values, n.values[mid:]...)
	n.keys = n.keys[:mid:mid]
	n.values = n.values[:mid:mid]

	if pos >= mid {
		insertLeafAt(sib, pos-mid, key, value)
	} else {
		insertLeafAt(n, pos, key, value)
	}

	sib.next = n.next
	n.next = sib

	return sib, sib.keys[0]
}

// splitInternal splits a full internal node n, having already located the
// insertion position pos for (key, child) (child becomes the subtree for
// keys >= key). The promoted separator is not duplicated into the sibling:
// it moves up to the parent, and the sibling's first child is the child
// pointer that matched it.
func splitInternal[V any](n *node[V], pos int, key scalar.KeyType, child *node[V]) (*node[V], scalar.KeyType) {
	combinedKeys := make([]scalar.KeyType, 0, len(n.keys)+1)
	combinedKeys = append(combinedKeys, n.keys[:pos]...)
	combinedKeys = append(combinedKeys, key)
	combinedKeys = append(combinedKeys, n.keys[pos:]...)

	combinedChildren := make([]*node[V], 0, len(n.children)+1)
	combinedChildren = append(combinedChildren, n.children[:pos+1]...)
	combinedChildren = append(combinedChildren, child)
	combinedChildren = append(combinedChildren, n.children[pos+1:]...)

	mid := len(combinedKeys) / 2
	sepKey := combinedKeys[mid]

	n.keys = append([]scalar.KeyType{}, combinedKeys[:mid]...)
	n.children = append([]*node[V]{}, combinedChildren[:mid+1]...)

	sib := newInternal[V]()
	sib.keys = append([]scalar.KeyType{}, combinedKeys[mid+1:]...)
	sib.children = append([]*node[V]{}, combinedChildren[mid+1:]...)

	return sib, sepKey
}
