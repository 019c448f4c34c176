// Package elastic implements elastic hashing: a stack of geometrically
// halving levels where the probe effort spent on a level adapts to its free
// fraction, and a two-level rule decides whether a new entry goes to the
// current level or the one below it.
package elastic

import (
	"fmt"
	"math"

	hashing "github.com/XinyaoQiu/modern-hashing"
)

const minCapacity = 16

// NewHashTableDefault creates a new hash table with default parameters.
func NewHashTableDefault[K comparable, V any]() *HashTable[K, V] {
	return NewHashTable[K, V](16, 0.1)
}

// NewHashTable creates a new hash table. Capacity is the total slot budget;
// delta (δ) is the target fraction of slots kept free, must be in range
// (0,1).
func NewHashTable[K comparable, V any](capacity int, delta float64) *HashTable[K, V] {
	if capacity <= 0 {
		panic(fmt.Errorf("capacity must be positive"))
	}
	if delta <= 0 || delta >= 1 {
		panic(fmt.Errorf("delta must be in range (0, 1)"))
	}
	if capacity < minCapacity {
		capacity = minCapacity
	}

	t := &HashTable[K, V]{
		hasher:    hashing.NewHasher[K](),
		delta:     delta,
		capacity:  capacity,
		maxProbes: int(math.Max(1, math.Ceil(probeFactor*math.Log2(1/delta)))),
	}
	t.buildLevels()
	return t
}

// HashTable splits its slot budget into levels of ⌈C/2⌉, ⌈C/4⌉, … slots.
// Scans address slots through a per-level pseudo-random probe sequence; a
// level's probe budget grows as it fills, up to ⌈log₂(1/δ)⌉, and drops to
// zero once the level is full.
type HashTable[K comparable, V any] struct {
	hasher    hashing.Hash[K]
	delta     float64
	capacity  int // total slot budget, n parameter
	maxProbes int // hard probe cap per level, used by lookups and full scans
	count     int

	levels   [][]slot[K, V]
	occupied []int // live entries per level
}

// Insert sets a value for a key. An existing key is overwritten in place;
// otherwise the placement rule picks a level and the table grows whenever
// every chosen scan exhausts its probes.
func (t *HashTable[K, V]) Insert(key K, value V) {
	if lvl, idx, ok := t.find(key); ok {
		t.levels[lvl][idx].value = value
		return
	}
	for !t.insertNew(key, value) {
		t.grow()
	}
	t.count++
}

// Lookup returns a value for a key. If the key does not exist, it returns
// the zero value and false.
func (t *HashTable[K, V]) Lookup(key K) (V, bool) {
	if lvl, idx, ok := t.find(key); ok {
		return t.levels[lvl][idx].value, true
	}
	var zero V
	return zero, false
}

// Update replaces the value of an existing key. It returns false if the key
// does not exist.
func (t *HashTable[K, V]) Update(key K, value V) bool {
	lvl, idx, ok := t.find(key)
	if ok {
		t.levels[lvl][idx].value = value
	}
	return ok
}

// Remove deletes a key, leaving a tombstone that insertions may reuse but
// lookups skip without stopping. It returns false if the key does not
// exist.
func (t *HashTable[K, V]) Remove(key K) bool {
	lvl, idx, ok := t.find(key)
	if ok {
		t.levels[lvl][idx] = slot[K, V]{state: slotDeleted}
		t.occupied[lvl]--
		t.count--
	}
	return ok
}

// Len returns the number of elements in the hash table.
func (t *HashTable[K, V]) Len() int {
	return t.count
}

// Clear removes all elements, keeping the current capacity and level shape.
func (t *HashTable[K, V]) Clear() {
	for i := range t.levels {
		clear(t.levels[i])
		t.occupied[i] = 0
	}
	t.count = 0
}

// LoadFactor returns the number of elements divided by the capacity budget.
func (t *HashTable[K, V]) LoadFactor() float64 {
	return float64(t.count) / float64(t.capacity)
}

// Cap returns the capacity budget.
func (t *HashTable[K, V]) Cap() int {
	return t.capacity
}
