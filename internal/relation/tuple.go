package relation

import (
	"strings"

	"github.com/tuannm99/reldb/internal/scalar"
)

// Tuple is an ordered fixed-length sequence of scalar values, immutable
// after being handed to Table.Insert.
type Tuple []scalar.Scalar

// Equal reports position-wise value equality of every attribute. Used by
// Union/Minus, which the original source compares by reference instead.
func (t Tuple) Equal(o Tuple) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if !t[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// String renders a tuple as "(v1, v2, ...)".
func (t Tuple) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, v := range t {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// contains reports whether needle is value-equal to any tuple in haystack.
func contains(haystack []Tuple, needle Tuple) bool {
	for _, t := range haystack {
		if t.Equal(needle) {
			return true
		}
	}
	return false
}
