package scalar

import (
	"hash/crc32"
	"strings"
)

// KeyType is the ordered sequence of scalar values forming the primary-key
// projection of a tuple. Two KeyTypes are equal iff component-wise equal;
// comparison is lexicographic left-to-right using each component's natural
// order. Comparing KeyTypes of differing arities is undefined (callers of
// Compare across differing arities get an arbitrary but deterministic
// result; see Compare's doc).
type KeyType struct {
	vals []Scalar
}

// NewKeyType builds a KeyType from its component scalars, in order.
func NewKeyType(vals ...Scalar) KeyType {
	cp := make([]Scalar, len(vals))
	copy(cp, vals)
	return KeyType{vals: cp}
}

// Arity returns the number of components in the key.
func (k KeyType) Arity() int { return len(k.vals) }

// At returns the i-th component scalar.
func (k KeyType) At(i int) Scalar { return k.vals[i] }

// Equal reports component-wise value equality. Differing-arity keys are
// never equal.
func (k KeyType) Equal(o KeyType) bool {
	if len(k.vals) != len(o.vals) {
		return false
	}
	for i := range k.vals {
		if !k.vals[i].Equal(o.vals[i]) {
			return false
		}
	}
	return true
}

// Compare performs a lexicographic left-to-right comparison. Comparing
// KeyTypes of differing arities has no fixed contract; this implementation
// treats a shorter key as less than a longer one that agrees on the shared
// prefix, which is deterministic and total but must not be relied on by
// callers mixing arities.
func (k KeyType) Compare(o KeyType) int {
	n := len(k.vals)
	if len(o.vals) < n {
		n = len(o.vals)
	}
	for i := 0; i < n; i++ {
		if c := k.vals[i].Compare(o.vals[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(k.vals) < len(o.vals):
		return -1
	case len(k.vals) > len(o.vals):
		return 1
	default:
		return 0
	}
}

// Hash returns a bucket-selection hash combining every component, for use
// by ExtHashMap/LinHashMap.
func (k KeyType) Hash() uint32 {
	h := crc32.NewIEEE()
	for _, v := range k.vals {
		var b [4]byte
		vh := v.Hash()
		b[0], b[1], b[2], b[3] = byte(vh), byte(vh>>8), byte(vh>>16), byte(vh>>24)
		_, _ = h.Write(b[:])
	}
	return h.Sum32()
}

// String renders the key as "(v1, v2, ...)" for diagnostics.
func (k KeyType) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, v := range k.vals {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
