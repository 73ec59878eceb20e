package relation

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/tuannm99/reldb/internal/scalar"
)

// Schema records a relation's name, its ordered attributes and their
// domains, and the primary-key attribute subsequence. Grounded on
// original_source/src/Table.java's attribute/domain/key fields, folded
// together with tuannm99-novasql/internal/record.Schema's struct shape.
type Schema struct {
	RelName string
	Attrs   []string
	Domains []scalar.Domain
	Key     []string
}

// NewSchema validates and constructs a Schema. All structural violations
// found are aggregated into a single multierr error rather than reporting
// only the first.
func NewSchema(relName string, attrs []string, domains []scalar.Domain, key []string) (*Schema, error) {
	var errs error

	if len(attrs) != len(domains) {
		errs = multierr.Append(errs, fmt.Errorf(
			"relation: schema %q has %d attributes but %d domains", relName, len(attrs), len(domains)))
	}

	seen := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		if seen[a] {
			errs = multierr.Append(errs, fmt.Errorf(
				"relation: schema %q has duplicate attribute %q", relName, a))
		}
		seen[a] = true
	}

	if len(key) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("relation: schema %q has an empty primary key", relName))
	}
	for _, k := range key {
		if !seen[k] {
			errs = multierr.Append(errs, fmt.Errorf(
				"relation: schema %q primary key references unknown attribute %q", relName, k))
		}
	}

	if errs != nil {
		return nil, errs
	}

	s := &Schema{
		RelName: relName,
		Attrs:   append([]string(nil), attrs...),
		Domains: append([]scalar.Domain(nil), domains...),
		Key:     append([]string(nil), key...),
	}
	return s, nil
}

// Rename returns a shallow copy of s under a new relation name, reusing its
// already-validated attribute/domain/key slices. Used by operators that
// produce a result table with the same structure as their source.
func (s *Schema) Rename(newName string) *Schema {
	return &Schema{RelName: newName, Attrs: s.Attrs, Domains: s.Domains, Key: s.Key}
}

// ColumnIndex returns the column position of attr in the schema, or -1 if
// absent. Grounded on Table.java's col().
func (s *Schema) ColumnIndex(attr string) int {
	for i, a := range s.Attrs {
		if a == attr {
			return i
		}
	}
	return -1
}

// Match resolves each name in columns to its positional index. An unmatched
// name is reported as an UnknownAttributeError; the caller must treat it as
// a failure rather than a partial result.
func (s *Schema) Match(columns []string) ([]int, error) {
	pos := make([]int, len(columns))
	for i, c := range columns {
		idx := s.ColumnIndex(c)
		if idx < 0 {
			return nil, &UnknownAttributeError{Table: s.RelName, Attribute: c}
		}
		pos[i] = idx
	}
	return pos, nil
}

// Extract builds a projected tuple by positional copy according to columns.
func (s *Schema) Extract(t Tuple, columns []string) (Tuple, error) {
	pos, err := s.Match(columns)
	if err != nil {
		return nil, err
	}
	out := make(Tuple, len(pos))
	for i, p := range pos {
		out[i] = t[p]
	}
	return out, nil
}

// TypeCheck confirms t's arity and per-position domain match the schema.
// Passes on a match, rejects on mismatch — the corrected reading of the
// original's inverted typeCheck, which returned false on a match.
func (s *Schema) TypeCheck(t Tuple) error {
	if len(t) != len(s.Attrs) {
		return &TypeMismatchError{Table: s.RelName, Msg: fmt.Sprintf(
			"tuple has arity %d, schema expects %d", len(t), len(s.Attrs))}
	}
	for i, v := range t {
		if v.Domain() != s.Domains[i] {
			return &TypeMismatchError{Table: s.RelName, Msg: fmt.Sprintf(
				"attribute %q expects domain %s, got %s", s.Attrs[i], s.Domains[i], v.Domain())}
		}
	}
	return nil
}

// Compatible reports whether s and other have equal arity and
// position-wise equal domains, gating union and minus.
func (s *Schema) Compatible(other *Schema) bool {
	if len(s.Domains) != len(other.Domains) {
		return false
	}
	for i := range s.Domains {
		if s.Domains[i] != other.Domains[i] {
			return false
		}
	}
	return true
}

// KeyOf projects t onto the schema's primary-key attributes.
func (s *Schema) KeyOf(t Tuple) (scalar.KeyType, error) {
	pos, err := s.Match(s.Key)
	if err != nil {
		return scalar.KeyType{}, err
	}
	vals := make([]scalar.Scalar, len(pos))
	for i, p := range pos {
		vals[i] = t[p]
	}
	return scalar.NewKeyType(vals...), nil
}
