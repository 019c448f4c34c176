package hashing

import "github.com/dolthub/maphash"

// Hash computes a 64-bit hash of a key. A table keeps the same Hash for its
// whole lifetime; replacing it on a populated table loses every entry.
type Hash[K comparable] func(key K) uint64

// NewHasher returns a Hash backed by the runtime map hash, seeded randomly
// per hasher. Two hashers produced by separate NewHasher calls hash the same
// key to different values.
func NewHasher[K comparable]() Hash[K] {
	h := maphash.NewHasher[K]()
	return h.Hash
}

// Mix64 is the splitmix64 finalizer. Variants derive per-level and per-probe
// hashes from one base hash with it.
func Mix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
