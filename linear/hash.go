// Package linear implements an open-addressing hash table with linear
// probing, lazy deletion and geometric resizing.
package linear

import (
	"fmt"

	hashing "github.com/XinyaoQiu/modern-hashing"
)

// loadFactorThreshold is the occupancy at which an insert resizes first.
const loadFactorThreshold = 0.6

// NewHashTableDefault creates a new hash table with the default initial slot
// count.
func NewHashTableDefault[K comparable, V any]() *HashTable[K, V] {
	return NewHashTable[K, V](8)
}

// NewHashTable creates a new hash table with the given initial slot count.
func NewHashTable[K comparable, V any](initialCapacity int) *HashTable[K, V] {
	if initialCapacity <= 0 {
		panic(fmt.Errorf("initialCapacity must be positive"))
	}
	return &HashTable[K, V]{
		hasher: hashing.NewHasher[K](),
		slots:  make([]slot[K, V], initialCapacity),
	}
}

// HashTable is a single contiguous slot array probed sequentially from the
// key's hash position. Removed entries leave tombstones that keep probe
// chains intact; resizing drops them.
type HashTable[K comparable, V any] struct {
	hasher hashing.Hash[K]
	slots  []slot[K, V]
	count  int
}

// Insert sets a value for a key. If the key already exists, it updates the
// value in place. The table doubles beforehand once the projected occupancy
// passes the load threshold.
func (t *HashTable[K, V]) Insert(key K, value V) {
	if float64(t.count+1)/float64(len(t.slots)) > loadFactorThreshold {
		t.resize()
	}
	if !t.place(key, value) {
		// The probe wrapped without finding a free slot
		t.resize()
		t.place(key, value)
	}
}

// Lookup returns a value for a key. If the key does not exist, it returns
// the zero value and false.
func (t *HashTable[K, V]) Lookup(key K) (V, bool) {
	if idx, ok := t.find(key); ok {
		return t.slots[idx].value, true
	}
	var zero V
	return zero, false
}

// Update replaces the value of an existing key. It returns false if the key
// does not exist.
func (t *HashTable[K, V]) Update(key K, value V) bool {
	idx, ok := t.find(key)
	if ok {
		t.slots[idx].value = value
	}
	return ok
}

// Remove deletes a key, leaving a tombstone in its slot. It returns false if
// the key does not exist.
func (t *HashTable[K, V]) Remove(key K) bool {
	idx, ok := t.find(key)
	if ok {
		t.slots[idx] = slot[K, V]{state: slotDeleted}
		t.count--
	}
	return ok
}

// Len returns the number of elements in the hash table.
func (t *HashTable[K, V]) Len() int {
	return t.count
}

// Clear removes all elements, keeping the current slot count.
func (t *HashTable[K, V]) Clear() {
	clear(t.slots)
	t.count = 0
}

// LoadFactor returns the number of elements divided by the slot count.
func (t *HashTable[K, V]) LoadFactor() float64 {
	return float64(t.count) / float64(len(t.slots))
}

// Cap returns the slot count.
func (t *HashTable[K, V]) Cap() int {
	return len(t.slots)
}
