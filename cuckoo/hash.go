// Package cuckoo implements two-table cuckoo hashing. A key lives in exactly
// one of its two candidate slots, so lookups probe at most two positions.
package cuckoo

import (
	"fmt"

	hashing "github.com/XinyaoQiu/modern-hashing"
)

// NewHashTableDefault creates a new hash table with the default per-table
// capacity.
func NewHashTableDefault[K comparable, V any]() *HashTable[K, V] {
	return NewHashTable[K, V](16)
}

// NewHashTable creates a new hash table with the given initial per-table
// capacity.
//
// Both candidate positions derive from a single base hash: the second takes
// the base hash XORed with itself shifted right by 16 bits. The pair is not an
// independent family; workloads that must withstand adversarial keys should
// construct the table with NewHashTableHasher and a hash of their own.
func NewHashTable[K comparable, V any](initialCapacity int) *HashTable[K, V] {
	return NewHashTableHasher[K, V](initialCapacity, hashing.NewHasher[K]())
}

// NewHashTableHasher creates a new hash table using a caller-supplied base
// hash.
func NewHashTableHasher[K comparable, V any](initialCapacity int, hasher hashing.Hash[K]) *HashTable[K, V] {
	if initialCapacity <= 0 {
		panic(fmt.Errorf("initialCapacity must be positive"))
	}
	if hasher == nil {
		panic(fmt.Errorf("hasher must not be nil"))
	}
	return &HashTable[K, V]{
		hasher:   hasher,
		capacity: initialCapacity,
		table1:   make([]entry[K, V], initialCapacity),
		table2:   make([]entry[K, V], initialCapacity),
	}
}

type entry[K comparable, V any] struct {
	key      K
	value    V
	occupied bool
}

// HashTable holds two equally sized slot arrays. An insert whose table-1
// slot is taken displaces the occupant and rehomes it in the other table,
// up to capacity displacements; exhausting the chain doubles both arrays.
type HashTable[K comparable, V any] struct {
	hasher   hashing.Hash[K]
	capacity int // slots per table
	count    int
	table1   []entry[K, V]
	table2   []entry[K, V]
}

// Insert sets a value for a key. If the key already occupies one of its two
// candidate slots, the value is replaced in place; otherwise a displacement
// chain places it, growing the table when the chain exceeds the per-table
// capacity.
func (t *HashTable[K, V]) Insert(key K, value V) {
	i1 := t.hash1(key)
	if t.table1[i1].occupied && t.table1[i1].key == key {
		t.table1[i1].value = value
		return
	}
	i2 := t.hash2(key)
	if t.table2[i2].occupied && t.table2[i2].key == key {
		t.table2[i2].value = value
		return
	}
	t.insertNew(key, value)
}

// Lookup returns a value for a key. If the key does not exist, it returns
// the zero value and false.
func (t *HashTable[K, V]) Lookup(key K) (V, bool) {
	i1 := t.hash1(key)
	if t.table1[i1].occupied && t.table1[i1].key == key {
		return t.table1[i1].value, true
	}
	i2 := t.hash2(key)
	if t.table2[i2].occupied && t.table2[i2].key == key {
		return t.table2[i2].value, true
	}
	var zero V
	return zero, false
}

// Update replaces the value of an existing key. It returns false if the key
// does not exist.
func (t *HashTable[K, V]) Update(key K, value V) bool {
	i1 := t.hash1(key)
	if t.table1[i1].occupied && t.table1[i1].key == key {
		t.table1[i1].value = value
		return true
	}
	i2 := t.hash2(key)
	if t.table2[i2].occupied && t.table2[i2].key == key {
		t.table2[i2].value = value
		return true
	}
	return false
}

// Remove deletes a key from whichever candidate slot holds it. It returns
// false if the key does not exist.
func (t *HashTable[K, V]) Remove(key K) bool {
	i1 := t.hash1(key)
	if t.table1[i1].occupied && t.table1[i1].key == key {
		t.table1[i1] = entry[K, V]{}
		t.count--
		return true
	}
	i2 := t.hash2(key)
	if t.table2[i2].occupied && t.table2[i2].key == key {
		t.table2[i2] = entry[K, V]{}
		t.count--
		return true
	}
	return false
}

// Len returns the number of elements in the hash table.
func (t *HashTable[K, V]) Len() int {
	return t.count
}

// Clear removes all elements, keeping the current per-table capacity.
func (t *HashTable[K, V]) Clear() {
	clear(t.table1)
	clear(t.table2)
	t.count = 0
}

// LoadFactor returns the number of elements divided by the total slot count
// of both tables.
func (t *HashTable[K, V]) LoadFactor() float64 {
	return float64(t.count) / (2 * float64(t.capacity))
}

// Cap returns the per-table slot count.
func (t *HashTable[K, V]) Cap() int {
	return t.capacity
}
