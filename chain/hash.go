// Package chain implements a fixed-size hash table with separate chaining.
// Each bucket keeps its entries in insertion order; the table never resizes.
package chain

import (
	"fmt"

	hashing "github.com/XinyaoQiu/modern-hashing"
)

// NewHashTableDefault creates a new hash table with the default bucket count.
func NewHashTableDefault[K comparable, V any]() *HashTable[K, V] {
	return NewHashTable[K, V](17)
}

// NewHashTable creates a new hash table with the given fixed bucket count.
func NewHashTable[K comparable, V any](bucketCount int) *HashTable[K, V] {
	if bucketCount <= 0 {
		panic(fmt.Errorf("bucketCount must be positive"))
	}
	return &HashTable[K, V]{
		hasher:  hashing.NewHasher[K](),
		buckets: make([][]entry[K, V], bucketCount),
	}
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// HashTable routes each key to one bucket and scans the bucket's chain
// linearly. A bucket never holds two entries with the same key.
type HashTable[K comparable, V any] struct {
	hasher  hashing.Hash[K]
	buckets [][]entry[K, V]
	count   int
}

// Insert sets a value for a key. If the key already exists in its bucket,
// the value is replaced; otherwise the pair is appended to the chain.
func (t *HashTable[K, V]) Insert(key K, value V) {
	b := t.bucketIndex(key)
	for i := range t.buckets[b] {
		if t.buckets[b][i].key == key {
			t.buckets[b][i].value = value
			return
		}
	}
	t.buckets[b] = append(t.buckets[b], entry[K, V]{key: key, value: value})
	t.count++
}

// Lookup returns a value for a key. If the key does not exist, it returns
// the zero value and false.
func (t *HashTable[K, V]) Lookup(key K) (V, bool) {
	b := t.bucketIndex(key)
	for i := range t.buckets[b] {
		if t.buckets[b][i].key == key {
			return t.buckets[b][i].value, true
		}
	}
	var zero V
	return zero, false
}

// Update replaces the value of an existing key. It returns false if the key
// does not exist.
func (t *HashTable[K, V]) Update(key K, value V) bool {
	b := t.bucketIndex(key)
	for i := range t.buckets[b] {
		if t.buckets[b][i].key == key {
			t.buckets[b][i].value = value
			return true
		}
	}
	return false
}

// Remove deletes a key from its chain, keeping the order of the remaining
// entries. It returns false if the key does not exist.
func (t *HashTable[K, V]) Remove(key K) bool {
	b := t.bucketIndex(key)
	for i := range t.buckets[b] {
		if t.buckets[b][i].key == key {
			t.buckets[b] = append(t.buckets[b][:i], t.buckets[b][i+1:]...)
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

// Clear removes all elements, keeping the bucket count.
func (t *HashTable[K, V]) Clear() {
	for i := range t.buckets {
		t.buckets[i] = nil
	}
	t.count = 0
}

// LoadFactor returns the number of elements divided by the bucket count.
func (t *HashTable[K, V]) LoadFactor() float64 {
	return float64(t.count) / float64(len(t.buckets))
}

// Cap returns the bucket count.
func (t *HashTable[K, V]) Cap() int {
	return len(t.buckets)
}

func (t *HashTable[K, V]) bucketIndex(key K) int {
	return int(t.hasher(key) % uint64(len(t.buckets)))
}
