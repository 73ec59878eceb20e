package index

import "errors"

// ErrEmptyStructure is returned by FirstKey/LastKey on an empty RangeMap.
var ErrEmptyStructure = errors.New("index: structure is empty")

// ErrDuplicateKey is returned by Put when an index structure rejects a
// duplicate key outright. Only the B+-tree OrderedMap does this; the hash
// maps overwrite instead.
var ErrDuplicateKey = errors.New("index: duplicate key")
