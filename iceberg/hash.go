// Package iceberg implements a three-level iceberg hash table. The bulk of
// the entries sit in wide level-1 blocks; a small level-2 block addressed by
// a second hash absorbs level-1 overflow, and per-block level-3 lists catch
// the rest. Occupancy is a per-slot bit, so the whole key domain — the zero
// key included — is legal.
package iceberg

import (
	"fmt"

	hashing "github.com/XinyaoQiu/modern-hashing"
)

const (
	level1Slots = 64
	level2Slots = 8

	// resizeThreshold is the load at which an insert doubles the block count
	// first.
	resizeThreshold = 0.85
)

// NewHashTableDefault creates a new hash table with the default block count.
func NewHashTableDefault[K comparable, V any]() *HashTable[K, V] {
	return NewHashTable[K, V](64)
}

// NewHashTable creates a new hash table with the given initial block count.
func NewHashTable[K comparable, V any](initialBlocks int) *HashTable[K, V] {
	if initialBlocks <= 0 {
		panic(fmt.Errorf("initialBlocks must be positive"))
	}
	t := &HashTable[K, V]{
		hasher: hashing.NewHasher[K](),
		blocks: initialBlocks,
	}
	t.alloc()
	return t
}

type entry[K comparable, V any] struct {
	key      K
	value    V
	occupied bool
}

type pair[K comparable, V any] struct {
	key   K
	value V
}

// HashTable keeps three structures sharing one block count: level-1 blocks
// of 64 slots, level-2 blocks of 8 slots and level-3 overflow lists indexed
// by the level-1 hash.
type HashTable[K comparable, V any] struct {
	hasher hashing.Hash[K]
	blocks int
	count  int
	level1 [][]entry[K, V]
	level2 [][]entry[K, V]
	level3 [][]pair[K, V]
}

// Insert sets a value for a key. An existing key is overwritten wherever it
// lives; a new key takes the first free level-1 slot, then a level-2 slot,
// then the level-3 list. The table doubles its block count beforehand once
// occupancy reaches the threshold.
func (t *HashTable[K, V]) Insert(key K, value V) {
	// An existing key must be overwritten in place: placing it anew could
	// shadow a copy demoted to level 2 or 3 while level 1 was full.
	if t.overwrite(key, value) {
		return
	}
	if float64(t.count)/float64(t.blocks*(level1Slots+level2Slots)) >= resizeThreshold {
		t.resize()
	}
	t.placeNew(key, value)
	t.count++
}

// Lookup returns a value for a key. If the key does not exist, it returns
// the zero value and false.
func (t *HashTable[K, V]) Lookup(key K) (V, bool) {
	idx1 := t.hashA(key)
	for i := range t.level1[idx1] {
		if e := &t.level1[idx1][i]; e.occupied && e.key == key {
			return e.value, true
		}
	}
	idx2 := t.hashB(key)
	for i := range t.level2[idx2] {
		if e := &t.level2[idx2][i]; e.occupied && e.key == key {
			return e.value, true
		}
	}
	for i := range t.level3[idx1] {
		if t.level3[idx1][i].key == key {
			return t.level3[idx1][i].value, true
		}
	}
	var zero V
	return zero, false
}

// Update replaces the value of an existing key. It returns false if the key
// does not exist.
func (t *HashTable[K, V]) Update(key K, value V) bool {
	return t.Modify(key, value)
}

// Modify replaces the value of an existing key. Callers must not rely on the
// entry keeping its storage location across Modify.
func (t *HashTable[K, V]) Modify(key K, value V) bool {
	return t.overwrite(key, value)
}

// Remove deletes a key from whichever level holds it. It returns false if
// the key does not exist.
func (t *HashTable[K, V]) Remove(key K) bool {
	idx1 := t.hashA(key)
	for i := range t.level1[idx1] {
		if e := &t.level1[idx1][i]; e.occupied && e.key == key {
			*e = entry[K, V]{}
			t.count--
			return true
		}
	}
	idx2 := t.hashB(key)
	for i := range t.level2[idx2] {
		if e := &t.level2[idx2][i]; e.occupied && e.key == key {
			*e = entry[K, V]{}
			t.count--
			return true
		}
	}
	for i := range t.level3[idx1] {
		if t.level3[idx1][i].key == key {
			t.level3[idx1] = append(t.level3[idx1][:i], t.level3[idx1][i+1:]...)
			t.count--
			return true
		}
	}
	return false
}

// Len returns the number of elements in the hash table.
func (t *HashTable[K, V]) Len() int {
	return t.count
}

// Clear removes all elements, keeping the current block count.
func (t *HashTable[K, V]) Clear() {
	t.alloc()
	t.count = 0
}

// LoadFactor returns the number of elements divided by the total slot count
// of levels 1 and 2.
func (t *HashTable[K, V]) LoadFactor() float64 {
	return float64(t.count) / float64(t.blocks*(level1Slots+level2Slots))
}

// Cap returns the total slot count of levels 1 and 2.
func (t *HashTable[K, V]) Cap() int {
	return t.blocks * (level1Slots + level2Slots)
}
