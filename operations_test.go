package packedmap

import (
	"github.com/gostonefire/packedmap/internal/intint"
	"github.com/stretchr/testify/assert"
	"testing"
)

// countingIndex - Wraps the internal bucket index and counts lookup calls, used to
// verify that the move-to-front cache short-circuits the bucket index entirely
type countingIndex struct {
	*intint.Map
	getCalls      int
	getFrontCalls int
}

func (C *countingIndex) Get(key int64) (int64, bool) {
	C.getCalls++
	return C.Map.Get(key)
}

func (C *countingIndex) GetFront(key int64) (int64, bool) {
	C.getFrontCalls++
	return C.Map.GetFront(key)
}

func TestIntMap_Set(t *testing.T) {
	t.Run("reports first insertion per key", func(t *testing.T) {
		// Prepare
		m, err := New[string](8, 8)
		assert.NoError(t, err, "creates map")

		// Execute
		first := m.Set(1, "a")
		second := m.Set(1, "b")

		// Check
		assert.True(t, first, "first insertion reported")
		assert.False(t, second, "duplicate insertion reported")
		assert.Equal(t, 2, m.Size(), "both pairs stored")
		assert.Equal(t, 2, m.Count(1), "both pairs under same key")
	})

	t.Run("panics when the reserved sentinel is used as key", func(t *testing.T) {
		// Prepare
		m, err := New[string](8, 8)
		assert.NoError(t, err, "creates map")

		// Execute and Check
		assert.Panics(t, func() { m.Set(KeyAbsent, "a") }, "sentinel key rejected")
	})
}

func TestIntMap_SetIfAbsent(t *testing.T) {
	t.Run("second call for same key is a no-op", func(t *testing.T) {
		// Prepare
		m, err := New[string](8, 8)
		assert.NoError(t, err, "creates map")

		// Execute
		first := m.SetIfAbsent(7, "a")
		second := m.SetIfAbsent(7, "b")

		// Check
		assert.True(t, first, "first call inserts")
		assert.False(t, second, "second call is a no-op")
		v, ok := m.Get(7)
		assert.True(t, ok, "key present")
		assert.Equal(t, "a", v, "first value kept")
		assert.Equal(t, 1, m.Size(), "single pair stored")
	})
}

func TestIntMap_Get(t *testing.T) {
	t.Run("returns false for unmapped key", func(t *testing.T) {
		// Prepare
		m, err := New[string](8, 8)
		assert.NoError(t, err, "creates map")
		m.Set(1, "a")

		// Execute
		v, ok := m.Get(2)

		// Check
		assert.False(t, ok, "unmapped key not found")
		assert.Zero(t, v, "zero value returned")
	})
}

func TestIntMap_GetFront(t *testing.T) {
	t.Run("repeated lookup is served from the cache without consulting the index", func(t *testing.T) {
		// Prepare
		ci := &countingIndex{Map: intint.New(8, 8)}
		m, err := NewWithIndex[string](ci, 8)
		assert.NoError(t, err, "creates map")
		m.Set(1, "a")
		m.Set(2, "b")

		// Execute
		v1, ok1 := m.GetFront(1)
		callsAfterFirst := ci.getFrontCalls
		v2, ok2 := m.GetFront(1)

		// Check
		assert.True(t, ok1, "first lookup hits")
		assert.True(t, ok2, "second lookup hits")
		assert.Equal(t, v1, v2, "identical results")
		assert.Equal(t, 1, callsAfterFirst, "first lookup consults the index")
		assert.Equal(t, 1, ci.getFrontCalls, "second lookup does not consult the index")
	})

	t.Run("cache is invalidated by mutation", func(t *testing.T) {
		// Prepare
		ci := &countingIndex{Map: intint.New(8, 8)}
		m, err := NewWithIndex[string](ci, 8)
		assert.NoError(t, err, "creates map")
		m.Set(1, "a")

		// Execute
		m.GetFront(1)
		m.Set(2, "b")
		m.GetFront(1)

		// Check
		assert.Equal(t, 2, ci.getFrontCalls, "index consulted again after mutation")
	})

	t.Run("returns false for unmapped key", func(t *testing.T) {
		// Prepare
		m, err := New[string](8, 8)
		assert.NoError(t, err, "creates map")

		// Execute
		_, ok := m.GetFront(5)

		// Check
		assert.False(t, ok, "unmapped key not found")
	})
}

func TestIntMap_GetAll(t *testing.T) {
	t.Run("returns all values under a duplicated key", func(t *testing.T) {
		// Prepare
		m, err := New[string](8, 8)
		assert.NoError(t, err, "creates map")
		m.Set(3, "a")
		m.Set(3, "b")
		m.Set(4, "c")

		// Execute
		values := m.GetAll(3)

		// Check
		assert.ElementsMatch(t, []string{"a", "b"}, values, "all values for key returned")
		assert.Nil(t, m.GetAll(9), "nil for unmapped key")
	})
}

func TestIntMap_Remap(t *testing.T) {
	t.Run("overwrites first value without touching chain structure", func(t *testing.T) {
		// Prepare
		m, err := New[string](8, 8)
		assert.NoError(t, err, "creates map")
		m.Set(1, "a")

		// Execute
		ok := m.Remap(1, "z")

		// Check
		assert.True(t, ok, "remap succeeds")
		v, _ := m.Get(1)
		assert.Equal(t, "z", v, "value overwritten")
		assert.Equal(t, 1, m.Size(), "size unchanged")
	})

	t.Run("returns false for unmapped key", func(t *testing.T) {
		// Prepare
		m, err := New[string](8, 8)
		assert.NoError(t, err, "creates map")

		// Execute
		ok := m.Remap(1, "z")

		// Check
		assert.False(t, ok, "remap of unmapped key fails")
	})
}

func TestIntMap_Delete(t *testing.T) {
	t.Run("removes first occurrence only", func(t *testing.T) {
		// Prepare
		m, err := New[string](8, 8)
		assert.NoError(t, err, "creates map")
		m.Set(1, "a")
		m.Set(1, "b")

		// Execute
		removed := m.Delete(1)

		// Check
		assert.True(t, removed, "delete reports removal")
		assert.Equal(t, 1, m.Count(1), "one value left under key")
		assert.True(t, m.HasKey(1), "key still present")
	})

	t.Run("returns false for unmapped key", func(t *testing.T) {
		// Prepare
		m, err := New[string](8, 8)
		assert.NoError(t, err, "creates map")

		// Execute
		removed := m.Delete(1)

		// Check
		assert.False(t, removed, "nothing removed")
	})
}

func TestIntMap_ValueScans(t *testing.T) {
	eq := func(a, b string) bool { return a == b }

	t.Run("finds values by linear scan", func(t *testing.T) {
		// Prepare
		m, err := New[string](8, 8)
		assert.NoError(t, err, "creates map")
		m.Set(1, "a")
		m.Set(2, "b")

		// Execute and Check
		assert.True(t, m.HasValue("b", eq), "stored value found")
		assert.True(t, m.ContainsValue("b", eq), "alias agrees")
		assert.False(t, m.HasValue("x", eq), "missing value not found")
	})

	t.Run("removes all keys whose value matches", func(t *testing.T) {
		// Prepare
		m, err := New[string](8, 8)
		assert.NoError(t, err, "creates map")
		m.Set(1, "x")
		m.Set(2, "x")
		m.Set(3, "y")

		// Execute
		removed := m.RemoveValue("x", eq)

		// Check
		assert.Equal(t, 2, removed, "both matching pairs removed")
		assert.False(t, m.HasKey(1), "first key gone")
		assert.False(t, m.HasKey(2), "second key gone")
		assert.True(t, m.HasKey(3), "unrelated key kept")
	})
}

func TestIntMap_Clear(t *testing.T) {
	t.Run("clear keeping capacity", func(t *testing.T) {
		// Prepare
		m, err := New[string](4, 4)
		assert.NoError(t, err, "creates map")
		for i := int64(0); i < 9; i++ {
			m.Set(i, "v")
		}
		grown := m.Capacity()

		// Execute
		m.Clear(false)

		// Check
		assert.Zero(t, m.Size(), "map empty")
		assert.Equal(t, grown, m.Capacity(), "capacity kept")
		assert.False(t, m.HasKey(3), "entries gone")
	})

	t.Run("clear resetting capacity", func(t *testing.T) {
		// Prepare
		m, err := New[string](4, 4)
		assert.NoError(t, err, "creates map")
		for i := int64(0); i < 9; i++ {
			m.Set(i, "v")
		}

		// Execute
		m.Clear(true)

		// Check
		assert.Zero(t, m.Size(), "map empty")
		assert.Equal(t, 4, m.Capacity(), "capacity back at construction floor")

		it := m.Iterator()
		assert.False(t, it.HasNext(), "iteration yields zero entries")
	})

	t.Run("map is usable after clear", func(t *testing.T) {
		// Prepare
		m, err := New[string](4, 4)
		assert.NoError(t, err, "creates map")
		m.Set(1, "a")
		m.Clear(true)

		// Execute
		m.Set(2, "b")

		// Check
		v, ok := m.Get(2)
		assert.True(t, ok, "key found after clear")
		assert.Equal(t, "b", v, "correct value after clear")
	})
}

func TestIntMap_Rehash(t *testing.T) {
	t.Run("changes hash distribution width only", func(t *testing.T) {
		// Prepare
		m, err := New[string](2, 8)
		assert.NoError(t, err, "creates map")
		for i := int64(0); i < 8; i++ {
			m.Set(i, "v")
		}

		// Execute
		m.Rehash(64)

		// Check
		assert.Equal(t, 64, m.Stat().SlotCount, "new slot count")
		assert.Equal(t, 8, m.Capacity(), "storage capacity untouched")
		for i := int64(0); i < 8; i++ {
			assert.True(t, m.HasKey(i), "key retrievable after rehash")
		}
	})
}

func TestIntMap_Snapshots(t *testing.T) {
	eq := func(a, b string) bool { return a == b }

	t.Run("converts to arrays and sets", func(t *testing.T) {
		// Prepare
		m, err := New[string](8, 8)
		assert.NoError(t, err, "creates map")
		m.Set(1, "a")
		m.Set(2, "b")
		m.Set(2, "b")
		m.Set(3, "c")

		// Execute
		values := m.ToArray()
		keys := m.ToKeyArray()
		valSet := m.ToValSet(eq)
		keySet := m.ToKeySet()

		// Check
		assert.ElementsMatch(t, []string{"a", "b", "b", "c"}, values, "all values in snapshot")
		assert.ElementsMatch(t, []int64{1, 2, 2, 3}, keys, "all keys in snapshot, duplicates included")
		assert.ElementsMatch(t, []string{"a", "b", "c"}, valSet, "distinct values only")
		assert.Equal(t, 3, keySet.Size(), "distinct keys only")
		for _, k := range []int64{1, 2, 3} {
			assert.True(t, keySet.Has(k), "key in key set")
		}
	})
}
