// Package exthash implements ExtHashMap: an unordered key->value mapping
// using extendible hashing, growing by directory doubling and local-depth
// correct bucket splits. Grounded on original_source/src/ExtHashMap.java,
// adding the local-depth tracking the original lacks so a split only
// reassigns the directory slots that actually moved.
package exthash

import (
	"log/slog"

	"github.com/tuannm99/reldb/internal/index"
	"github.com/tuannm99/reldb/internal/scalar"
)

// DefaultSlots is the design default number of key-value slots per bucket.
const DefaultSlots = 4

// DefaultDirSize is the design default initial directory size.
const DefaultDirSize = 4

type bucket[V any] struct {
	keys       []scalar.KeyType
	vals       []V
	localDepth int
}

// Map is an ExtHashMap.
type Map[V any] struct {
	slots       int
	globalDepth int
	dir         []*bucket[V]
}

// New constructs an ExtHashMap with the given initial directory size
// (rounded up to the next power of two; defaults to DefaultDirSize) and
// slots-per-bucket (defaults to DefaultSlots).
func New[V any](initDirSize, slots int) *Map[V] {
	if slots < 1 {
		slots = DefaultSlots
	}
	size, depth := normalizeDirSize(initDirSize)

	dir := make([]*bucket[V], size)
	for i := range dir {
		dir[i] = &bucket[V]{localDepth: depth}
	}
	return &Map[V]{slots: slots, globalDepth: depth, dir: dir}
}

func normalizeDirSize(initDirSize int) (size, depth int) {
	if initDirSize < 1 {
		initDirSize = DefaultDirSize
	}
	size = 1
	for size < initDirSize {
		size <<= 1
	}
	for 1<<depth < size {
		depth++
	}
	return size, depth
}

var _ index.Map[int] = (*Map[int])(nil)

func (m *Map[V]) dirIndex(key scalar.KeyType) int {
	return int(key.Hash() & uint32(len(m.dir)-1))
}

// Get looks the key up via hash(key) mod 2^D to select the directory slot,
// then scans the referenced bucket.
func (m *Map[V]) Get(key scalar.KeyType) (V, bool) {
	b := m.dir[m.dirIndex(key)]
	for i, kk := range b.keys {
		if kk.Equal(key) {
			return b.vals[i], true
		}
	}
	var zero V
	return zero, false
}

// Put inserts key->value, overwriting an existing key rather than the
// original's append-permits-duplicates behavior. A full bucket is split
// in place if its local depth allows; otherwise the directory is doubled
// first.
func (m *Map[V]) Put(key scalar.KeyType, value V) error {
	for {
		i := m.dirIndex(key)
		b := m.dir[i]

		for idx, kk := range b.keys {
			if kk.Equal(key) {
				b.vals[idx] = value
				return nil
			}
		}

		if len(b.keys) < m.slots {
			b.keys = append(b.keys, key)
			b.vals = append(b.vals, value)
			return nil
		}

		m.split(b)
	}
}

// split grows the directory (if the bucket's local depth has caught up to
// the global depth) and then divides the bucket's entries between it and a
// freshly allocated sibling by the next hash bit.
func (m *Map[V]) split(b *bucket[V]) {
	if b.localDepth == m.globalDepth {
		m.doubleDirectory()
	}

	oldDepth := b.localDepth
	newDepth := oldDepth + 1
	sib := &bucket[V]{localDepth: newDepth}
	b.localDepth = newDepth

	oldKeys, oldVals := b.keys, b.vals
	b.keys, b.vals = nil, nil
	for idx, kk := range oldKeys {
		if (kk.Hash()>>uint(oldDepth))&1 == 1 {
			sib.keys = append(sib.keys, kk)
			sib.vals = append(sib.vals, oldVals[idx])
		} else {
			b.keys = append(b.keys, kk)
			b.vals = append(b.vals, oldVals[idx])
		}
	}

	for idx := range m.dir {
		if m.dir[idx] == b && (idx>>uint(oldDepth))&1 == 1 {
			m.dir[idx] = sib
		}
	}

	slog.Debug("exthash.bucket.split",
		"oldLocalDepth", oldDepth,
		"newLocalDepth", newDepth,
		"globalDepth", m.globalDepth,
	)
}

func (m *Map[V]) doubleDirectory() {
	old := m.dir
	m.dir = make([]*bucket[V], len(old)*2)
	copy(m.dir, old)
	copy(m.dir[len(old):], old)
	m.globalDepth++

	slog.Debug("exthash.directory.doubled", "globalDepth", m.globalDepth, "size", len(m.dir))
}

// uniqueBuckets returns each physical bucket exactly once, in directory
// order of first appearance.
func (m *Map[V]) uniqueBuckets() []*bucket[V] {
	seen := make(map[*bucket[V]]bool, len(m.dir))
	var out []*bucket[V]
	for _, b := range m.dir {
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}

// EntrySet returns every stored entry (unordered).
func (m *Map[V]) EntrySet() []index.Entry[V] {
	var out []index.Entry[V]
	for _, b := range m.uniqueBuckets() {
		for i, kk := range b.keys {
			out = append(out, index.Entry[V]{Key: kk, Value: b.vals[i]})
		}
	}
	return out
}

// Size returns the number of stored keys.
func (m *Map[V]) Size() int {
	n := 0
	for _, b := range m.uniqueBuckets() {
		n += len(b.keys)
	}
	return n
}

// DirectorySize and GlobalDepth expose internal growth state for tests and
// diagnostics.
func (m *Map[V]) DirectorySize() int { return len(m.dir) }
func (m *Map[V]) GlobalDepth() int   { return m.globalDepth }

// LocalDepth returns the local depth of the bucket key currently hashes to.
func (m *Map[V]) LocalDepth(key scalar.KeyType) int {
	return m.dir[m.dirIndex(key)].localDepth
}
