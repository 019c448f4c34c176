package elastic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHashTable(t *testing.T) {
	t.Run("level sizes; should halve geometrically and sum to capacity", func(t *testing.T) {
		tbl := NewHashTable[int, int](16, 0.1)

		var sizes []int
		total := 0
		for _, lvl := range tbl.levels {
			sizes = append(sizes, len(lvl))
			total += len(lvl)
		}
		assert.Equal(t, []int{8, 4, 2, 1, 1}, sizes)
		assert.Equal(t, 16, total)
	})

	t.Run("small capacity; should be clamped to the minimum", func(t *testing.T) {
		tbl := NewHashTable[int, int](2, 0.1)
		assert.Equal(t, minCapacity, tbl.Cap())
	})

	t.Run("invalid arguments; should panic", func(t *testing.T) {
		assert.Panics(t, func() { NewHashTable[int, int](0, 0.1) })
		assert.Panics(t, func() { NewHashTable[int, int](16, 0) })
		assert.Panics(t, func() { NewHashTable[int, int](16, 1.5) })
	})
}

func TestInsert(t *testing.T) {
	t.Run("insert and lookup; should return value by key", func(t *testing.T) {
		tbl := NewHashTableDefault[int, int]()

		tbl.Insert(42, 100)
		tbl.Insert(84, 200)
		tbl.Insert(42, 300)

		v, ok := tbl.Lookup(42)
		assert.True(t, ok)
		assert.Equal(t, 300, v)
		v, ok = tbl.Lookup(84)
		assert.True(t, ok)
		assert.Equal(t, 200, v)
		assert.Equal(t, 2, tbl.Len())
	})

	t.Run("insert far past the initial budget; should grow and keep entries", func(t *testing.T) {
		tbl := NewHashTableDefault[int, int]()

		for i := 0; i < 2000; i++ {
			tbl.Insert(i, i)
		}

		assert.Equal(t, 2000, tbl.Len())
		assert.GreaterOrEqual(t, tbl.Cap(), 2000)
		for i := 0; i < 2000; i++ {
			v, ok := tbl.Lookup(i)
			require.True(t, ok, "key %v", i)
			require.Equal(t, i, v)
		}
	})
}

func TestRemove(t *testing.T) {
	t.Run("remove even keys; should keep the odd ones reachable", func(t *testing.T) {
		tbl := NewHashTableDefault[int, int]()
		for i := 0; i < 2000; i++ {
			tbl.Insert(i, i)
		}

		for i := 0; i < 2000; i += 2 {
			require.True(t, tbl.Remove(i), "key %v", i)
		}

		assert.Equal(t, 1000, tbl.Len())
		for i := 1; i < 2000; i += 2 {
			v, ok := tbl.Lookup(i)
			require.True(t, ok, "key %v", i)
			require.Equal(t, i, v)
		}
		for i := 0; i < 2000; i += 2 {
			_, ok := tbl.Lookup(i)
			require.False(t, ok, "key %v", i)
			require.False(t, tbl.Remove(i))
		}
	})

	t.Run("remove missing key; should fail", func(t *testing.T) {
		tbl := NewHashTableDefault[int, int]()
		assert.False(t, tbl.Remove(5))
	})

	t.Run("tombstones; should be reusable by later inserts", func(t *testing.T) {
		tbl := NewHashTableDefault[int, int]()
		for i := 0; i < 10; i++ {
			tbl.Insert(i, i)
		}
		for i := 0; i < 10; i++ {
			require.True(t, tbl.Remove(i))
		}

		for i := 100; i < 110; i++ {
			tbl.Insert(i, i)
		}

		assert.Equal(t, 10, tbl.Len())
		for i := 100; i < 110; i++ {
			v, ok := tbl.Lookup(i)
			require.True(t, ok, "key %v", i)
			require.Equal(t, i, v)
		}
	})
}

func TestUpdate(t *testing.T) {
	t.Run("update existing key; should replace value in place", func(t *testing.T) {
		tbl := NewHashTableDefault[int, string]()
		tbl.Insert(1, "a")

		assert.True(t, tbl.Update(1, "b"))

		v, _ := tbl.Lookup(1)
		assert.Equal(t, "b", v)
		assert.Equal(t, 1, tbl.Len())
	})

	t.Run("update missing key; should fail without inserting", func(t *testing.T) {
		tbl := NewHashTableDefault[int, string]()
		assert.False(t, tbl.Update(1, "a"))
		assert.Equal(t, 0, tbl.Len())
	})
}

func TestClear(t *testing.T) {
	t.Run("clear; should drop entries and keep capacity", func(t *testing.T) {
		tbl := NewHashTableDefault[int, int]()
		for i := 0; i < 500; i++ {
			tbl.Insert(i, i)
		}
		grown := tbl.Cap()

		tbl.Clear()

		assert.Equal(t, 0, tbl.Len())
		assert.Equal(t, grown, tbl.Cap())
		for i := 0; i < 500; i++ {
			_, ok := tbl.Lookup(i)
			require.False(t, ok)
		}
	})
}

func TestProbeBudget(t *testing.T) {
	t.Run("empty level; should cost a single probe", func(t *testing.T) {
		tbl := NewHashTable[int, int](64, 0.1)
		assert.Equal(t, 1, tbl.probeBudget(0))
	})

	t.Run("budget; should never exceed the hard cap", func(t *testing.T) {
		tbl := NewHashTable[int, int](64, 0.1)
		for i := 0; i < 40; i++ {
			tbl.Insert(i, i)
		}
		for lvl := range tbl.levels {
			assert.LessOrEqual(t, tbl.probeBudget(lvl), tbl.maxProbes, "level %v", lvl)
		}
	})

	t.Run("full level; should have no budget", func(t *testing.T) {
		tbl := NewHashTable[int, int](16, 0.1)
		tbl.occupied[0] = len(tbl.levels[0])
		assert.Equal(t, 0, tbl.probeBudget(0))
		tbl.occupied[0] = 0
	})
}
