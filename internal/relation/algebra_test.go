package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/reldb/internal/scalar"
)

func enrollSchema(t *testing.T) *Schema {
	s, err := NewSchema("enroll", []string{"sid", "cid"}, []scalar.Domain{scalar.I64, scalar.Str}, []string{"sid", "cid"})
	require.NoError(t, err)
	return s
}

func TestProject_Identity(t *testing.T) {
	tbl := NewTable(studentSchema(t), bptreeFactory())
	require.NoError(t, tbl.Insert(Tuple{scalar.I64Val(1), scalar.StrVal("A")}))
	require.NoError(t, tbl.Insert(Tuple{scalar.I64Val(2), scalar.StrVal("B")}))

	proj, err := tbl.Project([]string{"id", "name"})
	require.NoError(t, err)
	assert.Equal(t, tbl.Tuples(), proj.Tuples())
}

func TestProject_DropsKeyWhenNotRetained(t *testing.T) {
	tbl := NewTable(studentSchema(t), bptreeFactory())
	require.NoError(t, tbl.Insert(Tuple{scalar.I64Val(1), scalar.StrVal("A")}))

	proj, err := tbl.Project([]string{"name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, proj.schema.Key)
}

func TestProject_UnknownAttribute(t *testing.T) {
	tbl := NewTable(studentSchema(t), bptreeFactory())
	_, err := tbl.Project([]string{"bogus"})
	var unknown *UnknownAttributeError
	require.ErrorAs(t, err, &unknown)
}

func TestSelect_AlwaysTrueIsIdentity(t *testing.T) {
	tbl := NewTable(studentSchema(t), bptreeFactory())
	require.NoError(t, tbl.Insert(Tuple{scalar.I64Val(1), scalar.StrVal("A")}))
	require.NoError(t, tbl.Insert(Tuple{scalar.I64Val(2), scalar.StrVal("B")}))

	sel := tbl.Select(func(Tuple) bool { return true })
	assert.Equal(t, tbl.Tuples(), sel.Tuples())
}

func TestSelectKey_HitAndMiss(t *testing.T) {
	tbl := NewTable(studentSchema(t), bptreeFactory())
	require.NoError(t, tbl.Insert(Tuple{scalar.I64Val(1), scalar.StrVal("A")}))

	hit := tbl.SelectKey(scalar.NewKeyType(scalar.I64Val(1)))
	require.Len(t, hit.Tuples(), 1)

	miss := tbl.SelectKey(scalar.NewKeyType(scalar.I64Val(99)))
	assert.Empty(t, miss.Tuples())
}

func TestUnion_Idempotent(t *testing.T) {
	tbl := NewTable(studentSchema(t), bptreeFactory())
	require.NoError(t, tbl.Insert(Tuple{scalar.I64Val(1), scalar.StrVal("A")}))
	require.NoError(t, tbl.Insert(Tuple{scalar.I64Val(2), scalar.StrVal("B")}))

	u, err := tbl.Union(tbl)
	require.NoError(t, err)
	assert.Equal(t, tbl.Tuples(), u.Tuples())
}

func TestUnion_IncompatibleRejected(t *testing.T) {
	tbl := NewTable(studentSchema(t), bptreeFactory())
	courseSchema, err := NewSchema("course", []string{"cid", "credits"}, []scalar.Domain{scalar.Str, scalar.I32}, []string{"cid"})
	require.NoError(t, err)
	other := NewTable(courseSchema, bptreeFactory())

	_, err = tbl.Union(other)
	var mismatch *SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestMinus_Self(t *testing.T) {
	tbl := NewTable(studentSchema(t), bptreeFactory())
	require.NoError(t, tbl.Insert(Tuple{scalar.I64Val(1), scalar.StrVal("A")}))
	require.NoError(t, tbl.Insert(Tuple{scalar.I64Val(2), scalar.StrVal("B")}))

	m, err := tbl.Minus(tbl)
	require.NoError(t, err)
	assert.Empty(t, m.Tuples())
}

func TestJoin_WithEmptyTableYieldsEmpty(t *testing.T) {
	tbl := NewTable(studentSchema(t), bptreeFactory())
	require.NoError(t, tbl.Insert(Tuple{scalar.I64Val(1), scalar.StrVal("A")}))

	empty := NewTable(enrollSchema(t), bptreeFactory())

	joined, err := tbl.Join([]string{"id"}, []string{"sid"}, empty)
	require.NoError(t, err)
	assert.Empty(t, joined.Tuples())
}

func TestJoin_StudentEnrollScenario(t *testing.T) {
	student := NewTable(studentSchema(t), bptreeFactory())
	require.NoError(t, student.Insert(Tuple{scalar.I64Val(1), scalar.StrVal("A")}))
	require.NoError(t, student.Insert(Tuple{scalar.I64Val(2), scalar.StrVal("B")}))

	enroll := NewTable(enrollSchema(t), bptreeFactory())
	require.NoError(t, enroll.Insert(Tuple{scalar.I64Val(1), scalar.StrVal("c1")}))
	require.NoError(t, enroll.Insert(Tuple{scalar.I64Val(1), scalar.StrVal("c2")}))
	require.NoError(t, enroll.Insert(Tuple{scalar.I64Val(3), scalar.StrVal("c3")}))

	joined, err := student.Join([]string{"id"}, []string{"sid"}, enroll)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "sid", "cid"}, joined.schema.Attrs)

	require.Len(t, joined.Tuples(), 2)
	want := []Tuple{
		{scalar.I64Val(1), scalar.StrVal("A"), scalar.I64Val(1), scalar.StrVal("c1")},
		{scalar.I64Val(1), scalar.StrVal("A"), scalar.I64Val(1), scalar.StrVal("c2")},
	}
	for i, tup := range joined.Tuples() {
		assert.True(t, tup.Equal(want[i]), "tuple %d: got %s want %s", i, tup, want[i])
	}
}

func TestIndexJoin_MatchesJoin(t *testing.T) {
	student := NewTable(studentSchema(t), bptreeFactory())
	require.NoError(t, student.Insert(Tuple{scalar.I64Val(1), scalar.StrVal("A")}))

	enrollSid, err := NewSchema("enrollSid", []string{"sid", "cid"}, []scalar.Domain{scalar.I64, scalar.Str}, []string{"sid"})
	require.NoError(t, err)
	enroll := NewTable(enrollSid, bptreeFactory())
	require.NoError(t, enroll.Insert(Tuple{scalar.I64Val(1), scalar.StrVal("c1")}))

	joined, err := student.IndexJoin("id", "sid", enroll)
	require.NoError(t, err)
	require.Len(t, joined.Tuples(), 1)
	assert.True(t, joined.Tuples()[0].Equal(Tuple{
		scalar.I64Val(1), scalar.StrVal("A"), scalar.I64Val(1), scalar.StrVal("c1"),
	}))
}

func TestIndexJoin_RejectsNonKeyAttribute(t *testing.T) {
	student := NewTable(studentSchema(t), bptreeFactory())
	enroll := NewTable(enrollSchema(t), bptreeFactory())

	_, err := student.IndexJoin("id", "sid", enroll)
	var mismatch *SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
}
