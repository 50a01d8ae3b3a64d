package probemap

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeMap_Basic(t *testing.T) {
	pm, err := New()
	require.NoError(t, err)

	// Set and Get
	err = pm.Set("foo", "42")
	require.NoError(t, err)

	v, ok := pm.Get("foo")
	require.True(t, ok)
	assert.Equal(t, "42", v)

	// Update existing key
	err = pm.Set("foo", "100")
	require.NoError(t, err)

	v, ok = pm.Get("foo")
	require.True(t, ok)
	assert.Equal(t, "100", v)

	// Get non-existent key
	_, ok = pm.Get("bar")
	assert.False(t, ok)

	// Delete
	err = pm.Delete("foo")
	assert.NoError(t, err)

	_, ok = pm.Get("foo")
	assert.False(t, ok)

	// Delete non-existent key
	err = pm.Delete("foo")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestProbeMap_Overwrite(t *testing.T) {
	pm, err := New()
	require.NoError(t, err)

	require.NoError(t, pm.Set("a", "1"))
	require.NoError(t, pm.Set("a", "2"))

	v, ok := pm.Get("a")
	require.True(t, ok)
	assert.Equal(t, "2", v)
	assert.Equal(t, 1, pm.Len())
}

func TestProbeMap_ReuseAfterDelete(t *testing.T) {
	pm, err := New()
	require.NoError(t, err)

	require.NoError(t, pm.Set("x", "1"))
	require.NoError(t, pm.Delete("x"))

	_, ok := pm.Get("x")
	require.False(t, ok)

	require.NoError(t, pm.Set("x", "2"))

	v, ok := pm.Get("x")
	require.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestProbeMap_Grow(t *testing.T) {
	pm, err := NewWithSize(53)
	require.NoError(t, err)
	require.Equal(t, 53, pm.Capacity())

	for i := 0; i < 38; i++ {
		require.NoError(t, pm.Set(strconv.Itoa(i), "v"+strconv.Itoa(i)))
	}
	require.Equal(t, 53, pm.Capacity())

	require.NoError(t, pm.Set("38", "v38"))
	assert.Greater(t, pm.Capacity(), 53)

	for i := 0; i < 39; i++ {
		v, ok := pm.Get(strconv.Itoa(i))
		require.True(t, ok)
		assert.Equal(t, "v"+strconv.Itoa(i), v)
	}
}

func TestProbeMap_NewWithSize_Invalid(t *testing.T) {
	_, err := NewWithSize(1)
	require.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewWithSize(0)
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestProbeMap_ForEach(t *testing.T) {
	pm, err := New()
	require.NoError(t, err)

	want := map[string]string{"a": "1", "b": "2", "c": "3", "d": "4"}
	for k, v := range want {
		require.NoError(t, pm.Set(k, v))
	}
	require.NoError(t, pm.Set("gone", "x"))
	require.NoError(t, pm.Delete("gone"))

	got := make(map[string]string)
	pm.ForEach(func(key, value string) bool {
		got[key] = value
		return true
	})
	assert.Equal(t, want, got)

	// Stops early
	visited := 0
	pm.ForEach(func(string, string) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}

func TestProbeMap_Stats(t *testing.T) {
	pm, err := New()
	require.NoError(t, err)

	stats := pm.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Equal(t, 53, stats.Capacity)
	assert.Equal(t, 53, stats.BaseCapacity)

	for i := 0; i < 10; i++ {
		require.NoError(t, pm.Set(strconv.Itoa(i), "v"))
	}

	for i := 0; i < 5; i++ {
		require.NoError(t, pm.Delete(strconv.Itoa(i)))
	}

	stats = pm.Stats()
	assert.Equal(t, 5, stats.Size)
	assert.Equal(t, 5, stats.Tombstones)
	assert.Equal(t, 5*100/53, stats.LoadFactor)
	assert.InDelta(t, float32(5)/53, stats.TombstonesCapacityRatio, 1e-6)
	assert.InDelta(t, float32(1), stats.TombstonesSizeRatio, 1e-6)
}

func TestProbeMap_Compact(t *testing.T) {
	pm, err := New()
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, pm.Set(strconv.Itoa(i), strconv.Itoa(i*10)))
	}

	for i := 0; i < 5; i++ {
		require.NoError(t, pm.Delete(strconv.Itoa(i)))
	}

	require.NoError(t, pm.Compact())

	stats := pm.Stats()
	assert.Equal(t, 0, stats.Tombstones)
	assert.Equal(t, 5, stats.Size)

	// Verify remaining values
	for i := 5; i < 10; i++ {
		v, ok := pm.Get(strconv.Itoa(i))
		require.True(t, ok)
		assert.Equal(t, strconv.Itoa(i*10), v)
	}
}

func TestProbeMap_Reset(t *testing.T) {
	pm, err := New()
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, pm.Set(strconv.Itoa(i), "v"))
	}

	assert.Equal(t, 5, pm.Len())

	pm.Reset()

	assert.Equal(t, 0, pm.Len())

	_, ok := pm.Get("0")
	assert.False(t, ok)
}

func TestProbeMap_Destroy(t *testing.T) {
	pm, err := New()
	require.NoError(t, err)
	require.NoError(t, pm.Set("foo", "bar"))

	pm.Destroy()

	_, ok := pm.Get("foo")
	assert.False(t, ok)
	assert.ErrorIs(t, pm.Set("foo", "bar"), ErrDestroyed)
	assert.ErrorIs(t, pm.Delete("foo"), ErrDestroyed)
}

func TestProbeMap_WithHashFunc(t *testing.T) {
	constHash := func(string, uint64, uint64) uint64 {
		return 7
	}

	pm, err := New(WithHashFunc(constHash))
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		require.NoError(t, pm.Set(strconv.Itoa(i), strconv.Itoa(i)))
	}

	for i := 0; i < 30; i++ {
		v, ok := pm.Get(strconv.Itoa(i))
		require.True(t, ok)
		assert.Equal(t, strconv.Itoa(i), v)
	}
}

func TestProbeMap_WithThresholds(t *testing.T) {
	pm, err := New(WithThresholds(50, 5))
	require.NoError(t, err)

	// 27*100/53 = 50, 28*100/53 = 52
	for i := 0; i < 28; i++ {
		require.NoError(t, pm.Set(strconv.Itoa(i), "v"))
	}
	require.Equal(t, 53, pm.Capacity())

	require.NoError(t, pm.Set("28", "v"))
	require.Equal(t, 107, pm.Capacity())
}

func TestNewFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseSize = 1000
	cfg.MinBaseSize = 500

	pm, err := NewFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1009, pm.Capacity())
	assert.Equal(t, 1000, pm.BaseCapacity())

	cfg.BaseSize = 1
	_, err = NewFromConfig(cfg)
	require.ErrorIs(t, err, ErrInvalidSize)
}
