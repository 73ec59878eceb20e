package persist

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/reldb/internal/index"
	"github.com/tuannm99/reldb/internal/index/bptree"
	"github.com/tuannm99/reldb/internal/relation"
	"github.com/tuannm99/reldb/internal/scalar"
)

func factory() func() index.Map[relation.Tuple] {
	return func() index.Map[relation.Tuple] { return bptree.New[relation.Tuple](bptree.DefaultOrder) }
}

func TestRoundTrip_PreservesSchemaAndTuples(t *testing.T) {
	schema, err := relation.NewSchema("movie",
		[]string{"title", "year", "rating", "studio"},
		[]scalar.Domain{scalar.Str, scalar.I32, scalar.F64, scalar.Str},
		[]string{"title"})
	require.NoError(t, err)

	tbl := relation.NewTable(schema, factory())
	require.NoError(t, tbl.Insert(relation.Tuple{
		scalar.StrVal("Star Wars"), scalar.I32Val(1977), scalar.F64Val(8.6), scalar.StrVal("Fox"),
	}))
	require.NoError(t, tbl.Insert(relation.Tuple{
		scalar.StrVal("Alien"), scalar.I32Val(1979), scalar.F64Val(8.4), scalar.StrVal("Fox"),
	}))

	var buf bytes.Buffer
	require.NoError(t, Save(tbl, &buf))

	loaded, err := Load(&buf, factory())
	require.NoError(t, err)

	assert.Equal(t, tbl.Schema().Attrs, loaded.Schema().Attrs)
	assert.Equal(t, tbl.Schema().Domains, loaded.Schema().Domains)
	assert.Equal(t, tbl.Schema().Key, loaded.Schema().Key)

	orig := tbl.Tuples()
	got := loaded.Tuples()
	require.Len(t, got, len(orig))
	for i := range orig {
		assert.True(t, orig[i].Equal(got[i]), "tuple %d mismatch", i)
	}
}

func TestLoad_TruncatedHeaderIsIOError(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte{1, 2}), factory())
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
}

func TestRoundTrip_EmptyTable(t *testing.T) {
	schema, err := relation.NewSchema("empty", []string{"id"}, []scalar.Domain{scalar.I64}, []string{"id"})
	require.NoError(t, err)
	tbl := relation.NewTable(schema, factory())

	var buf bytes.Buffer
	require.NoError(t, Save(tbl, &buf))

	loaded, err := Load(&buf, factory())
	require.NoError(t, err)
	assert.Empty(t, loaded.Tuples())
}
