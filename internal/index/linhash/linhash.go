// Package linhash implements LinHashMap: an unordered key->value mapping
// using linear hashing, growing gradually via a split pointer and overflow
// chains rather than an all-at-once directory doubling. Grounded on
// original_source/src/LinHashMap.java's bucket/split-pointer state, with
// its incomplete rehash logic replaced by a working split algorithm: each
// overload rehashes exactly the bucket at the split pointer under the
// doubled modulus, advancing the pointer until a full round completes.
package linhash

import (
	"log/slog"

	"github.com/tuannm99/reldb/internal/index"
	"github.com/tuannm99/reldb/internal/scalar"
)

// DefaultSlots is the design default number of key-value slots per bucket.
const DefaultSlots = 4

// DefaultInitSize is the design default initial home-bucket count.
const DefaultInitSize = 4

type bucket[V any] struct {
	keys []scalar.KeyType
	vals []V
	next *bucket[V]
}

// Map is a LinHashMap.
type Map[V any] struct {
	slots   int
	mod1    int
	mod2    int
	split   int
	buckets []*bucket[V]
	total   int
}

// New constructs a LinHashMap with initSize home buckets (default
// DefaultInitSize) and slots-per-bucket (default DefaultSlots).
func New[V any](initSize, slots int) *Map[V] {
	if slots < 1 {
		slots = DefaultSlots
	}
	if initSize < 1 {
		initSize = DefaultInitSize
	}
	buckets := make([]*bucket[V], initSize)
	for i := range buckets {
		buckets[i] = &bucket[V]{}
	}
	return &Map[V]{
		slots:   slots,
		mod1:    initSize,
		mod2:    2 * initSize,
		buckets: buckets,
	}
}

var _ index.Map[int] = (*Map[int])(nil)

// homeIndex computes i = h(k) mod mod1; if i < split the key has already
// been redistributed under mod2 this round, so use h(k) mod mod2 instead.
func (m *Map[V]) homeIndex(key scalar.KeyType) int {
	i := int(key.Hash() % uint32(m.mod1))
	if i < m.split {
		i = int(key.Hash() % uint32(m.mod2))
	}
	return i
}

// Get walks the target bucket's overflow chain comparing keys.
func (m *Map[V]) Get(key scalar.KeyType) (V, bool) {
	for b := m.buckets[m.homeIndex(key)]; b != nil; b = b.next {
		for i, kk := range b.keys {
			if kk.Equal(key) {
				return b.vals[i], true
			}
		}
	}
	var zero V
	return zero, false
}

// placeIn walks a bucket chain starting at head to the first slot with
// room, allocating a new overflow bucket if the whole chain is full.
func placeIn[V any](head *bucket[V], key scalar.KeyType, value V, slots int) {
	b := head
	for {
		if len(b.keys) < slots {
			b.keys = append(b.keys, key)
			b.vals = append(b.vals, value)
			return
		}
		if b.next == nil {
			b.next = &bucket[V]{}
		}
		b = b.next
	}
}

// Put inserts key->value, overwriting an existing key. After insertion, if
// the load factor (keys / (slots*mod1)) reaches 1, one controlled split is
// performed.
func (m *Map[V]) Put(key scalar.KeyType, value V) error {
	home := m.buckets[m.homeIndex(key)]
	for b := home; b != nil; b = b.next {
		for i, kk := range b.keys {
			if kk.Equal(key) {
				b.vals[i] = value
				return nil
			}
		}
	}

	placeIn(home, key, value, m.slots)
	m.total++
	m.maybeSplit()
	return nil
}

// maybeSplit rehashes the home bucket at index split under mod2, allocates
// a fresh home bucket at mod1+split to receive the redistributed half, and
// advances the split pointer, doubling the round when it wraps.
func (m *Map[V]) maybeSplit() {
	alpha := float64(m.total) / float64(m.slots*m.mod1)
	if alpha < 1 {
		return
	}

	newIdx := m.mod1 + m.split
	m.buckets = append(m.buckets, &bucket[V]{})

	var keys []scalar.KeyType
	var vals []V
	for b := m.buckets[m.split]; b != nil; b = b.next {
		keys = append(keys, b.keys...)
		vals = append(vals, b.vals...)
	}
	m.buckets[m.split] = &bucket[V]{}

	for i, kk := range keys {
		target := int(kk.Hash() % uint32(m.mod2))
		if target == m.split {
			placeIn(m.buckets[m.split], kk, vals[i], m.slots)
		} else {
			placeIn(m.buckets[newIdx], kk, vals[i], m.slots)
		}
	}

	if m.split == m.mod1-1 {
		m.mod1 *= 2
		m.mod2 = 2 * m.mod1
		m.split = 0
		slog.Debug("linhash.round.doubled", "mod1", m.mod1)
	} else {
		m.split++
		slog.Debug("linhash.bucket.split", "split", m.split, "mod1", m.mod1)
	}
}

func (m *Map[V]) uniqueChainHeads() []*bucket[V] {
	out := make([]*bucket[V], len(m.buckets))
	copy(out, m.buckets)
	return out
}

// EntrySet returns every stored entry (unordered).
func (m *Map[V]) EntrySet() []index.Entry[V] {
	var out []index.Entry[V]
	for _, head := range m.uniqueChainHeads() {
		for b := head; b != nil; b = b.next {
			for i, kk := range b.keys {
				out = append(out, index.Entry[V]{Key: kk, Value: b.vals[i]})
			}
		}
	}
	return out
}

// Size returns the number of stored keys.
func (m *Map[V]) Size() int { return m.total }

// Mod1, Split, and HomeBucketCount expose internal growth state for tests
// and diagnostics.
func (m *Map[V]) Mod1() int            { return m.mod1 }
func (m *Map[V]) Split() int           { return m.split }
func (m *Map[V]) HomeBucketCount() int { return len(m.buckets) }
