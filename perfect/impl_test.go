package perfect

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

	t.Run("insert many into few buckets; should rebuild without loss", func(t *testing.T) {
		tbl := NewHashTable[int, int](2)
		for i := 0; i < 500; i++ {
			tbl.Insert(i, i+7)
		}

		assert.Equal(t, 500, tbl.Len())
		for i := 0; i < 500; i++ {
			v, ok := tbl.Lookup(i)
			require.True(t, ok, "key %v", i)
			require.Equal(t, i+7, v)
		}
	})

	t.Run("invalid bucket count; should panic", func(t *testing.T) {
		assert.Panics(t, func() { NewHashTable[int, int](-1) })
	})
}

func TestSecondarySizing(t *testing.T) {
	t.Run("bucket capacity; should be quadratic in live entries after rebuild", func(t *testing.T) {
		tbl := NewHashTable[int, int](1) // everything lands in one bucket
		for i := 0; i < 64; i++ {
			tbl.Insert(i, i)
		}

		b := &tbl.buckets[0]
		assert.Equal(t, 64, b.live)
		// A rebuild at n entries sizes the bucket at max(2n², 4); later
		// inserts may add up to half the capacity before the next rebuild,
		// so the current capacity is bounded by those two rebuild points.
		assert.GreaterOrEqual(t, len(b.slots), 2*b.live)
		assert.LessOrEqual(t, b.live, len(b.slots)/2)
	})

	t.Run("fresh bucket; should start at the minimum capacity", func(t *testing.T) {
		tbl := NewHashTable[int, int](1)
		tbl.Insert(1, 1)
		assert.Equal(t, 4, len(tbl.buckets[0].slots))
	})
}

func TestUpdate(t *testing.T) {
	t.Run("update existing key; should replace value without growth", func(t *testing.T) {
		tbl := NewHashTableDefault[int, string]()
		tbl.Insert(5, "five")

		assert.True(t, tbl.Update(5, "cinq"))

		v, _ := tbl.Lookup(5)
		assert.Equal(t, "cinq", v)
		assert.Equal(t, 1, tbl.Len())
	})

	t.Run("update missing key; should fail without inserting", func(t *testing.T) {
		tbl := NewHashTableDefault[int, string]()
		assert.False(t, tbl.Update(5, "five"))
		assert.Equal(t, 0, tbl.Len())
	})
}

func TestRemove(t *testing.T) {
	t.Run("remove; should keep probe chains for the remaining keys", func(t *testing.T) {
		tbl := NewHashTable[int, int](1)
		for i := 0; i < 40; i++ {
			tbl.Insert(i, i)
		}

		for i := 0; i < 40; i += 2 {
			require.True(t, tbl.Remove(i))
		}

		assert.Equal(t, 20, tbl.Len())
		for i := 1; i < 40; i += 2 {
			v, ok := tbl.Lookup(i)
			require.True(t, ok, "key %v", i)
			require.Equal(t, i, v)
		}
		for i := 0; i < 40; i += 2 {
			_, ok := tbl.Lookup(i)
			require.False(t, ok, "key %v", i)
		}
	})

	t.Run("remove missing key; should fail", func(t *testing.T) {
		tbl := NewHashTableDefault[int, int]()
		assert.False(t, tbl.Remove(9))
	})

	t.Run("reinsert after remove; should restore lookup", func(t *testing.T) {
		tbl := NewHashTableDefault[int, int]()
		tbl.Insert(9, 90)
		require.True(t, tbl.Remove(9))

		tbl.Insert(9, 91)

		v, ok := tbl.Lookup(9)
		assert.True(t, ok)
		assert.Equal(t, 91, v)
		assert.Equal(t, 1, tbl.Len())
	})
}

func TestClear(t *testing.T) {
	t.Run("clear; should empty all buckets and keep the bucket count", func(t *testing.T) {
		tbl := NewHashTable[int, int](4)
		for i := 0; i < 100; i++ {
			tbl.Insert(i, i)
		}

		tbl.Clear()

		assert.Equal(t, 0, tbl.Len())
		assert.Equal(t, 4, tbl.Cap())
		for i := 0; i < 100; i++ {
			_, ok := tbl.Lookup(i)
			require.False(t, ok)
		}
	})
}
