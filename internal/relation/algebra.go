package relation

import (
	"fmt"

	"github.com/tuannm99/reldb/internal/scalar"
)

// Project produces a new table retaining only attrs, carrying the schema's
// primary key if fully retained, otherwise adopting attrs as the new key
// (uniqueness not re-enforced on a non-key projection, per the open
// question's recorded resolution).
func (t *Table) Project(attrs []string) (*Table, error) {
	pos, err := t.schema.Match(attrs)
	if err != nil {
		return nil, err
	}

	domains := make([]scalar.Domain, len(pos))
	for i, p := range pos {
		domains[i] = t.schema.Domains[p]
	}

	newKey := t.schema.Key
	if !containsAll(attrs, t.schema.Key) {
		newKey = attrs
	}

	newSchema, err := NewSchema(nextTempName(t.schema.RelName), attrs, domains, newKey)
	if err != nil {
		return nil, err
	}

	rows := make([]Tuple, len(t.tuples))
	for i, tup := range t.tuples {
		proj := make(Tuple, len(pos))
		for j, p := range pos {
			proj[j] = tup[p]
		}
		rows[i] = proj
	}

	return newTableWithTuples(newSchema, t.idxFactory, rows), nil
}

func containsAll(haystack, needles []string) bool {
	set := make(map[string]bool, len(haystack))
	for _, h := range haystack {
		set[h] = true
	}
	for _, n := range needles {
		if !set[n] {
			return false
		}
	}
	return true
}

// Select returns a table of the tuples satisfying predicate, a pure total
// function from tuple to boolean, preserving order.
func (t *Table) Select(predicate func(Tuple) bool) *Table {
	var rows []Tuple
	for _, tup := range t.tuples {
		if predicate(tup) {
			rows = append(rows, tup)
		}
	}
	newSchema := t.schema.Rename(nextTempName(t.schema.RelName))
	return newTableWithTuples(newSchema, t.idxFactory, rows)
}

// SelectKey returns a table containing the single tuple matching keyVal via
// the primary-key index, or an empty table if absent.
func (t *Table) SelectKey(keyVal KeyType) *Table {
	var rows []Tuple
	if v, ok := t.idx.Get(keyVal); ok {
		rows = []Tuple{v}
	}
	newSchema := t.schema.Rename(nextTempName(t.schema.RelName))
	return newTableWithTuples(newSchema, t.idxFactory, rows)
}

// Union returns this table's tuples followed by other's tuples whose value
// is not already present in this table, by value equality. Requires
// Compatible(other).
func (t *Table) Union(other *Table) (*Table, error) {
	if !t.schema.Compatible(other.schema) {
		return nil, &SchemaMismatchError{Left: t.schema.RelName, Right: other.schema.RelName, Msg: "incompatible domains for union"}
	}

	rows := append([]Tuple{}, t.tuples...)
	for _, o := range other.tuples {
		if !contains(t.tuples, o) {
			rows = append(rows, o)
		}
	}

	newSchema := t.schema.Rename(nextTempName(t.schema.RelName))
	return newTableWithTuples(newSchema, t.idxFactory, rows), nil
}

// Minus returns this table's tuples whose value is not equal to any tuple
// in other. Requires Compatible(other).
func (t *Table) Minus(other *Table) (*Table, error) {
	if !t.schema.Compatible(other.schema) {
		return nil, &SchemaMismatchError{Left: t.schema.RelName, Right: other.schema.RelName, Msg: "incompatible domains for minus"}
	}

	var rows []Tuple
	for _, tup := range t.tuples {
		if !contains(other.tuples, tup) {
			rows = append(rows, tup)
		}
	}

	newSchema := t.schema.Rename(nextTempName(t.schema.RelName))
	return newTableWithTuples(newSchema, t.idxFactory, rows), nil
}

// mergedSchema builds the concatenated schema for join/indexJoin: this
// table's attributes followed by other's, with any of other's names that
// collide with this table's renamed by appending "2". The joined key is
// this table's own key, unchanged (Table.java passes its own key through
// to the joined result rather than computing a new one).
func (t *Table) mergedSchema(other *Table, name string) (*Schema, error) {
	attrs := append([]string{}, t.schema.Attrs...)
	domains := append([]scalar.Domain{}, t.schema.Domains...)

	for i, a := range other.schema.Attrs {
		if t.schema.ColumnIndex(a) >= 0 {
			a = a + "2"
		}
		attrs = append(attrs, a)
		domains = append(domains, other.schema.Domains[i])
	}

	return NewSchema(name, attrs, domains, t.schema.Key)
}

// Join performs an equi-join: attrsL and attrsR must have equal length;
// tuples (l, r) are emitted where l[attrsL[k]] == r[attrsR[k]] for every k.
// Outer loop over this table, inner loop over other, preserving insertion
// order of both.
func (t *Table) Join(attrsL, attrsR []string, other *Table) (*Table, error) {
	if len(attrsL) != len(attrsR) {
		return nil, &SchemaMismatchError{Left: t.schema.RelName, Right: other.schema.RelName, Msg: "join attribute lists have different arity"}
	}

	posL, err := t.schema.Match(attrsL)
	if err != nil {
		return nil, err
	}
	posR, err := other.schema.Match(attrsR)
	if err != nil {
		return nil, err
	}

	newSchema, err := t.mergedSchema(other, nextTempName(t.schema.RelName))
	if err != nil {
		return nil, err
	}

	var rows []Tuple
	for _, l := range t.tuples {
		for _, r := range other.tuples {
			if equiMatch(l, r, posL, posR) {
				combined := make(Tuple, 0, len(l)+len(r))
				combined = append(combined, l...)
				combined = append(combined, r...)
				rows = append(rows, combined)
			}
		}
	}

	return newTableWithTuples(newSchema, t.idxFactory, rows), nil
}

func equiMatch(l, r Tuple, posL, posR []int) bool {
	for k := range posL {
		if !l[posL[k]].Equal(r[posR[k]]) {
			return false
		}
	}
	return true
}

// IndexJoin performs the equivalent of Join("attrL", "attrR", other) by
// probing other's primary-key index instead of a nested linear scan.
// attrR must name other's (single-attribute) primary key.
func (t *Table) IndexJoin(attrL, attrR string, other *Table) (*Table, error) {
	posL, err := t.schema.Match([]string{attrL})
	if err != nil {
		return nil, err
	}
	if other.schema.ColumnIndex(attrR) < 0 {
		return nil, &UnknownAttributeError{Table: other.schema.RelName, Attribute: attrR}
	}
	if len(other.schema.Key) != 1 || other.schema.Key[0] != attrR {
		return nil, &SchemaMismatchError{
			Left:  t.schema.RelName,
			Right: other.schema.RelName,
			Msg:   fmt.Sprintf("%q is not the primary key of %q", attrR, other.schema.RelName),
		}
	}

	newSchema, err := t.mergedSchema(other, nextTempName(t.schema.RelName))
	if err != nil {
		return nil, err
	}

	var rows []Tuple
	for _, l := range t.tuples {
		key := scalar.NewKeyType(l[posL[0]])
		if r, ok := other.idx.Get(key); ok {
			combined := make(Tuple, 0, len(l)+len(r))
			combined = append(combined, l...)
			combined = append(combined, r...)
			rows = append(rows, combined)
		}
	}

	return newTableWithTuples(newSchema, t.idxFactory, rows), nil
}
