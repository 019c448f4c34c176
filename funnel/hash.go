// Package funnel implements funnel hashing: a cascade of geometrically
// shrinking levels of fixed-width buckets, finished by a two-section
// overflow level. Placement is greedy first-fit and entries never move after
// placement except on growth.
package funnel

import (
	"fmt"
	"math"

	hashing "github.com/XinyaoQiu/modern-hashing"
)

const minCapacity = 64

// NewHashTableDefault creates a new hash table with default parameters.
func NewHashTableDefault[K comparable, V any]() *HashTable[K, V] {
	return NewHashTable[K, V](1024, 0.1)
}

// NewHashTable creates a new hash table. Capacity is the total slot budget;
// delta (δ) is the fraction of slots kept free, must be in range (0,1).
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
		hasher:   hashing.NewHasher[K](),
		delta:    delta,
		capacity: capacity,
		alpha:    int(math.Ceil(4*math.Log2(1/delta) + 10)),
		beta:     int(math.Ceil(math.Log2(1 / delta))),
	}
	t.buildLevels()
	return t
}

// HashTable holds α primary levels sized proportionally to 0.75^i, each a
// row of β-slot buckets, plus one overflow level split into a uniform-probe
// half and a two-choice half.
type HashTable[K comparable, V any] struct {
	hasher   hashing.Hash[K]
	delta    float64
	capacity int // total slot budget, n parameter
	alpha    int // primary levels count
	beta     int // bucket size on primary levels
	count    int

	levels   [][]slot[K, V] // alpha primary levels, then the overflow level
	occupied []int
}

// Insert sets a value for a key. An existing key is overwritten in place; a
// new key is placed greedily on the first level with room in its bucket,
// then in the overflow level. The table doubles once occupancy passes 1−δ
// of the budget or no scheme can place the key.
func (t *HashTable[K, V]) Insert(key K, value V) {
	if lvl, idx, ok := t.find(key); ok {
		t.levels[lvl][idx].value = value
		return
	}
	if t.count+1 > int(float64(t.capacity)*(1-t.delta)) {
		t.expand()
	}
	for !t.placeNew(key, value) {
		t.expand()
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

// Update replaces the value of an existing key via the insert path. It
// returns false if the key does not exist.
func (t *HashTable[K, V]) Update(key K, value V) bool {
	if _, _, ok := t.find(key); !ok {
		return false
	}
	t.Insert(key, value)
	return true
}

// Remove deletes a key, leaving a tombstone so probe scans are not cut
// short. It returns false if the key does not exist.
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
