// Package hashing provides a family of in-memory hash table designs behind a
// single mapping contract. Each design lives in its own subpackage (linear,
// chain, cuckoo, perfect, iceberg, funnel, elastic, ipbt) and differs only in
// collision resolution, probe discipline and memory layout; all of them
// satisfy the Table interface defined here.
//
// Tables are single-threaded. A table instance is not safe for concurrent
// mutation; concurrent read-only use is safe only if the caller guarantees no
// writer.
package hashing

// Table is the mapping contract every table variant implements.
//
// Keys are unique: a table never holds more than one live entry per key.
// Insert on an existing key overwrites its value in place. Growth, where a
// variant supports it, preserves every live entry.
type Table[K comparable, V any] interface {
	// Insert stores the key-value pair. If the key is already present, its
	// value is replaced and the size does not change.
	Insert(key K, value V)

	// Lookup returns the value stored for the key, or the zero value and
	// false if the key is absent.
	Lookup(key K) (V, bool)

	// Update replaces the value of an existing key. It returns false and
	// inserts nothing if the key is absent.
	Update(key K, value V) bool

	// Remove deletes the key. It returns false if the key is absent.
	Remove(key K) bool

	// Len returns the number of live entries.
	Len() int

	// Clear removes all entries, keeping the table's capacity.
	Clear()

	// LoadFactor returns the number of live entries divided by the variant's
	// capacity measure.
	LoadFactor() float64

	// Cap returns the variant-specific capacity measure: slot count (linear),
	// bucket count (chain, perfect), per-table slot count (cuckoo), total
	// slot count (iceberg) or total capacity budget (funnel, elastic, ipbt).
	Cap() int
}
