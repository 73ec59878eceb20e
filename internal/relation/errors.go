package relation

import "fmt"

// SchemaMismatchError reports differing arities or domain sequences between
// two schemas being combined by union, minus, or join, and an IndexJoin
// attribute that is not the other table's single-attribute primary key.
type SchemaMismatchError struct {
	Left  string
	Right string
	Msg   string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("relation: schema mismatch between %q and %q: %s", e.Left, e.Right, e.Msg)
}

// TypeMismatchError reports a tuple whose arity or per-position value class
// does not match the schema on insert.
type TypeMismatchError struct {
	Table string
	Msg   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("relation: type mismatch inserting into %q: %s", e.Table, e.Msg)
}

// UnknownAttributeError reports an attribute name absent from a schema,
// encountered during project, join, or column resolution.
type UnknownAttributeError struct {
	Table     string
	Attribute string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("relation: unknown attribute %q on table %q", e.Attribute, e.Table)
}
