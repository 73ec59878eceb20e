package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/reldb/internal/scalar"
)

func TestNewSchema_DuplicateAttributeRejected(t *testing.T) {
	_, err := NewSchema("t", []string{"id", "id"}, []scalar.Domain{scalar.I64, scalar.Str}, []string{"id"})
	require.Error(t, err)
}

func TestNewSchema_ArityMismatchRejected(t *testing.T) {
	_, err := NewSchema("t", []string{"id"}, []scalar.Domain{scalar.I64, scalar.Str}, []string{"id"})
	require.Error(t, err)
}

func TestNewSchema_UnknownKeyAttributeRejected(t *testing.T) {
	_, err := NewSchema("t", []string{"id"}, []scalar.Domain{scalar.I64}, []string{"bogus"})
	require.Error(t, err)
}

func TestSchema_MatchAndTypeCheck(t *testing.T) {
	s, err := NewSchema("student", []string{"id", "name"}, []scalar.Domain{scalar.I64, scalar.Str}, []string{"id"})
	require.NoError(t, err)

	pos, err := s.Match([]string{"name", "id"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, pos)

	_, err = s.Match([]string{"bogus"})
	var unknown *UnknownAttributeError
	require.ErrorAs(t, err, &unknown)

	require.NoError(t, s.TypeCheck(Tuple{scalar.I64Val(1), scalar.StrVal("A")}))
	require.Error(t, s.TypeCheck(Tuple{scalar.StrVal("A"), scalar.I64Val(1)}))
	require.Error(t, s.TypeCheck(Tuple{scalar.I64Val(1)}))
}

func TestSchema_Compatible(t *testing.T) {
	a, err := NewSchema("a", []string{"x", "y"}, []scalar.Domain{scalar.I64, scalar.Str}, []string{"x"})
	require.NoError(t, err)
	b, err := NewSchema("b", []string{"p", "q"}, []scalar.Domain{scalar.I64, scalar.Str}, []string{"p"})
	require.NoError(t, err)
	c, err := NewSchema("c", []string{"p"}, []scalar.Domain{scalar.I64}, []string{"p"})
	require.NoError(t, err)

	assert.True(t, a.Compatible(b))
	assert.False(t, a.Compatible(c))
}
