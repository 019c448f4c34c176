package ipbt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

	t.Run("insert past the load threshold; should grow instead of failing", func(t *testing.T) {
		tbl := NewHashTableDefault[int, int]()

		for i := 0; i < 3000; i++ {
			tbl.Insert(i, i*2)
		}

		assert.Equal(t, 3000, tbl.Len())
		// The pre-insert check keeps the load within one entry of the threshold
		assert.LessOrEqual(t, tbl.LoadFactor(), growThreshold+1.0/float64(tbl.Cap()))
		for i := 0; i < 3000; i++ {
			v, ok := tbl.Lookup(i)
			require.True(t, ok, "key %v", i)
			require.Equal(t, i*2, v)
		}
	})

	t.Run("invalid arguments; should panic", func(t *testing.T) {
		assert.Panics(t, func() { NewHashTable[int, int](0, 2.0) })
		assert.Panics(t, func() { NewHashTable[int, int](16, 0) })
	})
}

func TestLeftJustification(t *testing.T) {
	t.Run("buckets; should stay left-justified with a bijective index", func(t *testing.T) {
		tbl := NewHashTable[int, int](64, 2.0)
		for i := 0; i < 40; i++ {
			tbl.Insert(i, i)
		}
		for i := 0; i < 40; i += 3 {
			require.True(t, tbl.Remove(i))
		}

		for bi := range tbl.buckets {
			b := &tbl.buckets[bi]
			require.Equal(t, b.count, b.index.Len(), "bucket %v index size", bi)
			seen := make(map[int]bool)
			b.index.Ascend(func(it fpEntry) bool {
				require.GreaterOrEqual(t, it.pos, 0)
				require.Less(t, it.pos, b.count, "bucket %v: index points past count", bi)
				require.False(t, seen[it.pos], "bucket %v: slot %v indexed twice", bi, it.pos)
				seen[it.pos] = true
				return true
			})
		}
	})
}

func TestUpdate(t *testing.T) {
	t.Run("update existing key; should replace value", func(t *testing.T) {
		tbl := NewHashTableDefault[string, int]()
		tbl.Insert("k", 1)

		assert.True(t, tbl.Update("k", 2))

		v, _ := tbl.Lookup("k")
		assert.Equal(t, 2, v)
		assert.Equal(t, 1, tbl.Len())
	})

	t.Run("update missing key; should fail without inserting", func(t *testing.T) {
		tbl := NewHashTableDefault[string, int]()
		assert.False(t, tbl.Update("k", 1))
		assert.Equal(t, 0, tbl.Len())
	})
}

func TestRemove(t *testing.T) {
	t.Run("remove; should move the bucket's last entry into the hole", func(t *testing.T) {
		tbl := NewHashTable[int, int](16, 2.0) // a handful of buckets at most
		for i := 0; i < 10; i++ {
			tbl.Insert(i, i*10)
		}

		require.True(t, tbl.Remove(4))

		assert.Equal(t, 9, tbl.Len())
		for i := 0; i < 10; i++ {
			v, ok := tbl.Lookup(i)
			if i == 4 {
				require.False(t, ok)
				continue
			}
			require.True(t, ok, "key %v", i)
			require.Equal(t, i*10, v)
		}
	})

	t.Run("remove missing key; should fail", func(t *testing.T) {
		tbl := NewHashTableDefault[int, int]()
		assert.False(t, tbl.Remove(1))
	})

	t.Run("remove and reinsert repeatedly; should not leak slots", func(t *testing.T) {
		tbl := NewHashTableDefault[int, int]()
		for round := 0; round < 50; round++ {
			for i := 0; i < 10; i++ {
				tbl.Insert(i, round)
			}
			for i := 0; i < 10; i++ {
				require.True(t, tbl.Remove(i))
			}
		}
		assert.Equal(t, 0, tbl.Len())
	})
}

func TestClear(t *testing.T) {
	t.Run("clear; should drop entries and keep the bucket shape", func(t *testing.T) {
		tbl := NewHashTableDefault[int, int]()
		for i := 0; i < 100; i++ {
			tbl.Insert(i, i)
		}
		grown := tbl.Cap()

		tbl.Clear()

		assert.Equal(t, 0, tbl.Len())
		assert.Equal(t, grown, tbl.Cap())
		for i := 0; i < 100; i++ {
			_, ok := tbl.Lookup(i)
			require.False(t, ok)
		}
	})
}
