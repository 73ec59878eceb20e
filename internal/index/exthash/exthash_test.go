package exthash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/reldb/internal/scalar"
)

func k(i int64) scalar.KeyType { return scalar.NewKeyType(scalar.I64Val(i)) }

func TestMap_PutGetRoundTrip(t *testing.T) {
	m := New[int64](DefaultDirSize, DefaultSlots)
	for i := int64(0); i < 17; i++ {
		require.NoError(t, m.Put(k(i), i*i))
	}

	assert.Equal(t, 17, m.Size())
	for i := int64(0); i < 17; i++ {
		v, ok := m.Get(k(i))
		require.True(t, ok, "key %d missing", i)
		assert.Equal(t, i*i, v)
	}

	_, ok := m.Get(k(999))
	assert.False(t, ok)
}

func TestMap_OverwriteExisting(t *testing.T) {
	m := New[int64](DefaultDirSize, DefaultSlots)
	require.NoError(t, m.Put(k(1), 10))
	require.NoError(t, m.Put(k(1), 20))

	assert.Equal(t, 1, m.Size())
	v, ok := m.Get(k(1))
	require.True(t, ok)
	assert.Equal(t, int64(20), v)
}

func TestMap_DirectoryGrowsUnderLoad(t *testing.T) {
	m := New[int64](4, 4)
	startDir := m.DirectorySize()
	startDepth := m.GlobalDepth()

	for i := int64(0); i < 40; i++ {
		require.NoError(t, m.Put(k(i), i))
	}

	assert.Greater(t, m.DirectorySize(), startDir)
	assert.Greater(t, m.GlobalDepth(), startDepth)
	assert.Equal(t, 40, m.Size())

	for i := int64(0); i < 40; i++ {
		_, ok := m.Get(k(i))
		assert.True(t, ok, "key %d missing after growth", i)
	}
}

func TestMap_LocalDepthNeverExceedsGlobalDepth(t *testing.T) {
	m := New[int64](4, 4)
	for i := int64(0); i < 60; i++ {
		require.NoError(t, m.Put(k(i), i))
		assert.LessOrEqual(t, m.LocalDepth(k(i)), m.GlobalDepth())
	}
}

func TestMap_EntrySetCoversAllUniqueBuckets(t *testing.T) {
	m := New[int64](4, 4)
	want := map[int64]bool{}
	for i := int64(0); i < 25; i++ {
		require.NoError(t, m.Put(k(i), i))
		want[i] = true
	}

	got := map[int64]bool{}
	for _, e := range m.EntrySet() {
		got[e.Key.At(0).Int()] = true
	}
	assert.Equal(t, want, got)
}
