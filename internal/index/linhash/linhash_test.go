package linhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/reldb/internal/scalar"
)

func k(i int64) scalar.KeyType { return scalar.NewKeyType(scalar.I64Val(i)) }

func TestMap_PutGetRoundTrip(t *testing.T) {
	m := New[int64](DefaultInitSize, DefaultSlots)
	for i := int64(0); i < 30; i++ {
		require.NoError(t, m.Put(k(i), i*i))
	}

	assert.Equal(t, 30, m.Size())
	for i := int64(0); i < 30; i++ {
		v, ok := m.Get(k(i))
		require.True(t, ok, "key %d missing", i)
		assert.Equal(t, i*i, v)
	}

	_, ok := m.Get(k(999))
	assert.False(t, ok)
}

func TestMap_OverwriteExisting(t *testing.T) {
	m := New[int64](DefaultInitSize, DefaultSlots)
	require.NoError(t, m.Put(k(1), 10))
	require.NoError(t, m.Put(k(1), 20))

	assert.Equal(t, 1, m.Size())
	v, ok := m.Get(k(1))
	require.True(t, ok)
	assert.Equal(t, int64(20), v)
}

func TestMap_SplitPointerAdvancesUnderLoad(t *testing.T) {
	m := New[int64](4, 4)
	startMod1 := m.Mod1()

	for i := int64(0); i < 20; i++ {
		require.NoError(t, m.Put(k(i), i))
	}

	assert.Greater(t, m.HomeBucketCount(), startMod1)
	assert.Equal(t, 20, m.Size())

	for i := int64(0); i < 20; i++ {
		_, ok := m.Get(k(i))
		assert.True(t, ok, "key %d missing after split", i)
	}
}

func TestMap_Mod1DoublesAfterFullRound(t *testing.T) {
	m := New[int64](4, 4)
	initialMod1 := m.Mod1()

	for i := int64(0); i < 100; i++ {
		require.NoError(t, m.Put(k(i), i))
	}

	assert.Greater(t, m.Mod1(), initialMod1)
	assert.Less(t, m.Split(), m.Mod1())

	for i := int64(0); i < 100; i++ {
		_, ok := m.Get(k(i))
		assert.True(t, ok, "key %d missing after mod1 doubling", i)
	}
}

func TestMap_EntrySetCoversAllInsertedKeys(t *testing.T) {
	m := New[int64](4, 4)
	want := map[int64]bool{}
	for i := int64(0); i < 50; i++ {
		require.NoError(t, m.Put(k(i), i))
		want[i] = true
	}

	got := map[int64]bool{}
	for _, e := range m.EntrySet() {
		got[e.Key.At(0).Int()] = true
	}
	assert.Equal(t, want, got)
}
