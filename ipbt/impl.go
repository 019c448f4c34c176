package ipbt

import (
	"fmt"
	"math"

	"github.com/google/btree"

	hashing "github.com/XinyaoQiu/modern-hashing"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// fpEntry is one index record: a bucket-salted fingerprint and the slot it
// points at.
type fpEntry struct {
	fp  uint32
	pos int
}

func fpLess(a, b fpEntry) bool { return a.fp < b.fp }

// bucket stores entries left-justified in [0, count) plus the
// fingerprint→slot index. Fingerprints of live entries are unique within a
// bucket; the salt changes whenever a new entry breaks that.
type bucket[K comparable, V any] struct {
	entries []entry[K, V]
	count   int
	salt    uint64
	index   *btree.BTreeG[fpEntry]
}

func (b *bucket[K, V]) position(fp uint32) (int, bool) {
	item, ok := b.index.Get(fpEntry{fp: fp})
	if !ok {
		return 0, false
	}
	return item.pos, true
}

func (t *HashTable[K, V]) bucketIndex(key K) int {
	return int(t.hasher(key) % uint64(len(t.buckets)))
}

// fingerprint reduces a key's hash, mixed with the bucket salt, to the
// 32-bit fingerprint domain.
func (t *HashTable[K, V]) fingerprint(salt uint64, key K) uint32 {
	return uint32(hashing.Mix64(t.hasher(key) ^ salt))
}

// insertOne places or overwrites one key in its bucket. False means the
// bucket is out of slots and the table must grow.
func (t *HashTable[K, V]) insertOne(key K, value V) bool {
	b := &t.buckets[t.bucketIndex(key)]

	fp := t.fingerprint(b.salt, key)
	for attempt := 0; ; attempt++ {
		pos, ok := b.position(fp)
		if !ok {
			break
		}
		if b.entries[pos].key == key {
			b.entries[pos].value = value
			return true
		}
		// A different live key shares the fingerprint: re-salt the bucket
		// until the new key's fingerprint is unique too.
		if attempt == maxSaltAttempts {
			panic(fmt.Errorf("fingerprint collision persisted over %d salts", maxSaltAttempts))
		}
		t.rebuildFingerprints(b)
		fp = t.fingerprint(b.salt, key)
	}

	if b.count == t.bucketCap {
		return false
	}

	b.entries[b.count] = entry[K, V]{key: key, value: value}
	b.index.ReplaceOrInsert(fpEntry{fp: fp, pos: b.count})
	b.count++
	t.count++
	return true
}

// rebuildFingerprints walks a deterministic salt schedule until every live
// entry in the bucket gets a distinct fingerprint.
func (t *HashTable[K, V]) rebuildFingerprints(b *bucket[K, V]) {
	salt := b.salt
	for attempt := 0; attempt < maxSaltAttempts; attempt++ {
		salt = hashing.Mix64(salt + 1)
		index := btree.NewG(t.btreeDegree(), fpLess)
		ok := true
		for i := 0; i < b.count; i++ {
			fp := t.fingerprint(salt, b.entries[i].key)
			if index.Has(fpEntry{fp: fp}) {
				ok = false
				break
			}
			index.ReplaceOrInsert(fpEntry{fp: fp, pos: i})
		}
		if ok {
			b.salt = salt
			b.index = index
			return
		}
	}
	panic(fmt.Errorf("fingerprint rebuild exhausted %d salts", maxSaltAttempts))
}

// btreeDegree follows the original √(ln n) index order, floored at the
// B-tree minimum.
func (t *HashTable[K, V]) btreeDegree() int {
	d := int(math.Sqrt(math.Log(float64(t.capacity))))
	if d < 2 {
		d = 2
	}
	return d
}

// alloc derives the bucket shape from the current capacity and builds empty
// buckets.
func (t *HashTable[K, V]) alloc() {
	logN := math.Log(float64(t.capacity))
	t.bucketCap = int(math.Pow(logN, 3) + t.shapeC*math.Pow(logN, 2))
	numBuckets := int(float64(t.capacity) / math.Pow(logN, 3))
	if numBuckets < 1 {
		numBuckets = 1
	}

	t.buckets = make([]bucket[K, V], numBuckets)
	for i := range t.buckets {
		t.buckets[i] = bucket[K, V]{
			entries: make([]entry[K, V], t.bucketCap),
			index:   btree.NewG(t.btreeDegree(), fpLess),
		}
	}
}

// grow doubles the entry budget, rebuilds the bucket shape and reinserts
// every entry. Reinsertion goes through insertOne directly, so it bypasses
// the load check and cannot nest another growth through it; a bucket that
// still overflows mid-growth doubles again.
func (t *HashTable[K, V]) grow() {
	entries := make([]entry[K, V], 0, t.count)
	for i := range t.buckets {
		b := &t.buckets[i]
		entries = append(entries, b.entries[:b.count]...)
	}

	for {
		t.capacity *= 2
		t.alloc()
		t.count = 0
		replaced := true
		for i := range entries {
			if !t.insertOne(entries[i].key, entries[i].value) {
				replaced = false
				break
			}
		}
		if replaced {
			return
		}
	}
}
