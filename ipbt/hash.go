// Package ipbt implements a partitioned hash table with a per-bucket
// fingerprint index. Entries sit left-justified in fixed-capacity bucket
// vectors; a B-tree maps each entry's salted fingerprint to its slot, so a
// lookup costs one index search plus one key comparison.
package ipbt

import (
	"fmt"

	hashing "github.com/XinyaoQiu/modern-hashing"
)

const (
	minCapacity = 16

	// growThreshold is the load at which an insert doubles the table first.
	// Growth, not an error, is also the answer to a full bucket: the table
	// never reports bucket overflow to the caller.
	growThreshold = 0.7

	// maxSaltAttempts bounds fingerprint-rebuild retries; exhausting it on
	// one bucket means the key set defeats the fingerprint domain and the
	// insert fails loudly.
	maxSaltAttempts = 32
)

// NewHashTableDefault creates a new hash table with default parameters.
func NewHashTableDefault[K comparable, V any]() *HashTable[K, V] {
	return NewHashTable[K, V](16, 2.0)
}

// NewHashTable creates a new hash table. Capacity is the total entry budget;
// the shape constant c widens each bucket beyond its (ln n)³ base.
func NewHashTable[K comparable, V any](capacity int, c float64) *HashTable[K, V] {
	if capacity <= 0 {
		panic(fmt.Errorf("capacity must be positive"))
	}
	if c <= 0 {
		panic(fmt.Errorf("shape constant must be positive"))
	}
	if capacity < minCapacity {
		capacity = minCapacity
	}

	t := &HashTable[K, V]{
		hasher:   hashing.NewHasher[K](),
		capacity: capacity,
		shapeC:   c,
	}
	t.alloc()
	return t
}

// HashTable derives its bucket shape from ln(n): bucket capacity
// ⌊(ln n)³ + c·(ln n)²⌋ over max(1, ⌊n/(ln n)³⌋) buckets.
type HashTable[K comparable, V any] struct {
	hasher    hashing.Hash[K]
	capacity  int // total entry budget, n parameter
	shapeC    float64
	bucketCap int
	count     int
	buckets   []bucket[K, V]
}

// Insert sets a value for a key. The table doubles beforehand once the load
// reaches the growth threshold, and grows instead of failing when the key's
// bucket is full.
func (t *HashTable[K, V]) Insert(key K, value V) {
	if float64(t.count)/float64(t.capacity) >= growThreshold {
		t.grow()
	}
	for !t.insertOne(key, value) {
		t.grow()
	}
}

// Lookup returns a value for a key. If the key does not exist, it returns
// the zero value and false.
func (t *HashTable[K, V]) Lookup(key K) (V, bool) {
	b := &t.buckets[t.bucketIndex(key)]
	var zero V
	pos, ok := b.position(t.fingerprint(b.salt, key))
	if !ok || b.entries[pos].key != key {
		return zero, false
	}
	return b.entries[pos].value, true
}

// Update replaces the value of an existing key. It returns false if the key
// does not exist.
func (t *HashTable[K, V]) Update(key K, value V) bool {
	b := &t.buckets[t.bucketIndex(key)]
	pos, ok := b.position(t.fingerprint(b.salt, key))
	if !ok || b.entries[pos].key != key {
		return false
	}
	b.entries[pos].value = value
	return true
}

// Remove deletes a key. The last entry of the bucket moves into the freed
// slot so the bucket stays left-justified; the index follows the move. It
// returns false if the key does not exist.
func (t *HashTable[K, V]) Remove(key K) bool {
	b := &t.buckets[t.bucketIndex(key)]
	fp := t.fingerprint(b.salt, key)
	pos, ok := b.position(fp)
	if !ok || b.entries[pos].key != key {
		return false
	}

	last := b.count - 1
	if pos != last {
		b.entries[pos] = b.entries[last]
		movedFp := t.fingerprint(b.salt, b.entries[pos].key)
		b.index.ReplaceOrInsert(fpEntry{fp: movedFp, pos: pos})
	}
	b.index.Delete(fpEntry{fp: fp})
	b.entries[last] = entry[K, V]{}
	b.count--
	t.count--
	return true
}

// Len returns the number of elements in the hash table.
func (t *HashTable[K, V]) Len() int {
	return t.count
}

// Clear removes all elements, keeping the current capacity and bucket
// shape.
func (t *HashTable[K, V]) Clear() {
	for i := range t.buckets {
		clear(t.buckets[i].entries)
		t.buckets[i].count = 0
		t.buckets[i].index.Clear(false)
	}
	t.count = 0
}

// LoadFactor returns the number of elements divided by the entry budget.
func (t *HashTable[K, V]) LoadFactor() float64 {
	return float64(t.count) / float64(t.capacity)
}

// Cap returns the entry budget.
func (t *HashTable[K, V]) Cap() int {
	return t.capacity
}
