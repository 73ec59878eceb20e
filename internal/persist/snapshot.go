// Package persist implements the opaque snapshot save/load boundary: an
// engine-chosen byte format (little-endian bx header length/tuple-count
// framing plus a JSON schema header), committing to no externally-specified
// bit layout. A table round-trips through Save and Load when no two of its
// tuples share a primary-key value; see Load for the other case. The Java original's
// Table.save/load used raw Java object serialization, which has no Go
// equivalent; this format is new, grounded on internal/bx's byte-packing
// idiom and the ordinary stdlib encoding/json for the schema header.
package persist

import (
	"encoding/json"
	"io"

	"github.com/tuannm99/reldb/internal/bx"
	"github.com/tuannm99/reldb/internal/index"
	"github.com/tuannm99/reldb/internal/relation"
	"github.com/tuannm99/reldb/internal/scalar"
)

type header struct {
	RelName string   `json:"rel_name"`
	Attrs   []string `json:"attrs"`
	Domains []uint8  `json:"domains"`
	Key     []string `json:"key"`
}

// Save writes t's schema and tuples to w.
func Save(t *relation.Table, w io.Writer) error {
	s := t.Schema()
	domains := make([]uint8, len(s.Domains))
	for i, d := range s.Domains {
		domains[i] = uint8(d)
	}

	hb, err := json.Marshal(header{RelName: s.RelName, Attrs: s.Attrs, Domains: domains, Key: s.Key})
	if err != nil {
		return &IOError{Op: "save", Msg: err.Error()}
	}

	var lenBuf [4]byte
	bx.PutU32(lenBuf[:], uint32(len(hb)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return &IOError{Op: "save", Msg: err.Error()}
	}
	if _, err := w.Write(hb); err != nil {
		return &IOError{Op: "save", Msg: err.Error()}
	}

	tuples := t.Tuples()
	var countBuf [4]byte
	bx.PutU32(countBuf[:], uint32(len(tuples)))
	if _, err := w.Write(countBuf[:]); err != nil {
		return &IOError{Op: "save", Msg: err.Error()}
	}

	for _, tup := range tuples {
		for _, v := range tup {
			if err := writeScalar(w, v); err != nil {
				return &IOError{Op: "save", Msg: err.Error()}
			}
		}
	}
	return nil
}

// Load reads a table back from r, rebuilding its primary-key index with
// idxFactory (the caller's choice of bptree/exthash/linhash, matching
// whichever index kind the table was originally constructed with).
// Every tuple is re-inserted through Table.Insert, so a snapshot holding two
// tuples with the same primary-key value (which a many-to-many join or a
// non-key projection can produce) fails to load with an *IOError carrying
// index.ErrDuplicateKey's message.
func Load(r io.Reader, idxFactory func() index.Map[relation.Tuple]) (*relation.Table, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, &IOError{Op: "load", Msg: err.Error()}
	}
	hb := make([]byte, bx.U32(lenBuf[:]))
	if _, err := io.ReadFull(r, hb); err != nil {
		return nil, &IOError{Op: "load", Msg: err.Error()}
	}

	var h header
	if err := json.Unmarshal(hb, &h); err != nil {
		return nil, &IOError{Op: "load", Msg: err.Error()}
	}

	domains := make([]scalar.Domain, len(h.Domains))
	for i, d := range h.Domains {
		domains[i] = scalar.Domain(d)
	}

	schema, err := relation.NewSchema(h.RelName, h.Attrs, domains, h.Key)
	if err != nil {
		return nil, &IOError{Op: "load", Msg: err.Error()}
	}

	var countBuf [4]byte
	if _, err := io.ReadFull(r, countBuf[:]); err != nil {
		return nil, &IOError{Op: "load", Msg: err.Error()}
	}
	count := bx.U32(countBuf[:])

	tbl := relation.NewTable(schema, idxFactory)
	for i := uint32(0); i < count; i++ {
		tup := make(relation.Tuple, len(domains))
		for j, dom := range domains {
			v, err := readScalar(r, dom)
			if err != nil {
				return nil, &IOError{Op: "load", Msg: err.Error()}
			}
			tup[j] = v
		}
		if err := tbl.Insert(tup); err != nil {
			return nil, &IOError{Op: "load", Msg: err.Error()}
		}
	}
	return tbl, nil
}
