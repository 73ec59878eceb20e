// Package index defines the capability contracts the three associative
// index structures (B+-tree OrderedMap, ExtHashMap, LinHashMap) all
// implement, so that relation.Table can be parameterized by whichever one
// backs its primary-key index.
package index

import "github.com/tuannm99/reldb/internal/scalar"

// Entry is one key/value pair, as returned by EntrySet.
type Entry[V any] struct {
	Key   scalar.KeyType
	Value V
}

// Map is the common mapping contract shared by all three index structures.
type Map[V any] interface {
	// Get returns the value stored at key, and whether it was present.
	Get(key scalar.KeyType) (V, bool)

	// Put inserts key->value. Behavior on a duplicate key is
	// implementation-defined: the B+-tree rejects it, the hash maps
	// overwrite.
	Put(key scalar.KeyType, value V) error

	// EntrySet returns every stored entry. Ordering is implementation
	// defined except for RangeMap implementations, which guarantee
	// ascending key order.
	EntrySet() []Entry[V]

	// Size returns the number of stored keys.
	Size() int
}

// RangeMap is the additional capability the B+-tree OrderedMap offers:
// ordered scans over the key space. Gate range operators on this
// capability rather than assuming every Map supports it.
type RangeMap[V any] interface {
	Map[V]

	// FirstKey returns the smallest stored key. Error if empty.
	FirstKey() (scalar.KeyType, error)

	// LastKey returns the largest stored key. Error if empty.
	LastKey() (scalar.KeyType, error)

	// HeadMap returns entries with key < to, in ascending key order.
	HeadMap(to scalar.KeyType) []Entry[V]

	// TailMap returns entries with key >= from, in ascending key order,
	// inclusive of the largest key.
	TailMap(from scalar.KeyType) []Entry[V]

	// SubMap returns entries with from <= key < to, in ascending key order.
	SubMap(from, to scalar.KeyType) []Entry[V]
}
