// Package perfect implements a two-level hash table in the FKS style: a
// fixed array of buckets, each backed by an open-addressing sub-table whose
// capacity is quadratic in its entry count. A bucket rebuilds itself whenever
// it grows past half occupancy or an insert probe traverses it fully, which
// keeps lookups close to the static worst-case O(1) guarantee.
package perfect

import (
	"fmt"

	hashing "github.com/XinyaoQiu/modern-hashing"
)

// NewHashTableDefault creates a new hash table with the default top-level
// bucket count.
func NewHashTableDefault[K comparable, V any]() *HashTable[K, V] {
	return NewHashTable[K, V](16)
}

// NewHashTable creates a new hash table with the given fixed top-level bucket
// count.
func NewHashTable[K comparable, V any](bucketCount int) *HashTable[K, V] {
	if bucketCount <= 0 {
		panic(fmt.Errorf("bucketCount must be positive"))
	}
	return &HashTable[K, V]{
		hasher:  hashing.NewHasher[K](),
		buckets: make([]secondary[K, V], bucketCount),
	}
}

// HashTable routes each key by hash to one secondary sub-table and delegates
// the operation to it.
type HashTable[K comparable, V any] struct {
	hasher  hashing.Hash[K]
	buckets []secondary[K, V]
	count   int
}

// Insert sets a value for a key, rebuilding the key's bucket if the insert
// pushes it past half occupancy or finds no free slot on a full probe cycle.
func (t *HashTable[K, V]) Insert(key K, value V) {
	if t.buckets[t.bucketIndex(key)].insertOrModify(t.hasher, key, value) {
		t.count++
	}
}

// Lookup returns a value for a key. If the key does not exist, it returns
// the zero value and false.
func (t *HashTable[K, V]) Lookup(key K) (V, bool) {
	return t.buckets[t.bucketIndex(key)].lookup(t.hasher, key)
}

// Update replaces the value of an existing key. It returns false if the key
// does not exist.
func (t *HashTable[K, V]) Update(key K, value V) bool {
	b := &t.buckets[t.bucketIndex(key)]
	if _, ok := b.lookup(t.hasher, key); !ok {
		return false
	}
	b.insertOrModify(t.hasher, key, value)
	return true
}

// Remove deletes a key from its bucket. It returns false if the key does not
// exist.
func (t *HashTable[K, V]) Remove(key K) bool {
	if t.buckets[t.bucketIndex(key)].remove(t.hasher, key) {
		t.count--
		return true
	}
	return false
}

// Len returns the number of elements in the hash table.
func (t *HashTable[K, V]) Len() int {
	return t.count
}

// Clear removes all elements. The top-level bucket count and each bucket's
// current slot capacity are kept.
func (t *HashTable[K, V]) Clear() {
	for i := range t.buckets {
		clear(t.buckets[i].slots)
		t.buckets[i].live = 0
	}
	t.count = 0
}

// LoadFactor returns the number of elements divided by the top-level bucket
// count. Values above 1 are normal: buckets hold multiple entries.
func (t *HashTable[K, V]) LoadFactor() float64 {
	return float64(t.count) / float64(len(t.buckets))
}

// Cap returns the top-level bucket count.
func (t *HashTable[K, V]) Cap() int {
	return len(t.buckets)
}

func (t *HashTable[K, V]) bucketIndex(key K) int {
	return int(t.hasher(key) % uint64(len(t.buckets)))
}
