package funnel

import (
	"math"

	hashing "github.com/XinyaoQiu/modern-hashing"
)

const goldenGamma = 0x9e3779b97f4a7c15

type slotState uint8

const (
	slotEmpty slotState = iota
	slotOccupied
	slotDeleted
)

type slot[K comparable, V any] struct {
	key   K
	value V
	state slotState
}

// bucketHash picks a bucket for a key on the given level.
func bucketHash(lvl int, h uint64) uint64 {
	return hashing.Mix64(h ^ uint64(lvl)*goldenGamma)
}

// posHash is the t-th independent probe position for the overflow level's
// uniform section.
func (t *HashTable[K, V]) posHash(h uint64, probe int) uint64 {
	a := hashing.Mix64(h ^ uint64(t.alpha))
	b := hashing.Mix64(h ^ uint64(probe))
	return hashing.Mix64(a ^ b)
}

// probeLimit is the per-key probe count in the overflow level's uniform
// section: ⌈log₂(log₂(n+2))⌉.
func (t *HashTable[K, V]) probeLimit() int {
	return int(math.Ceil(math.Log2(math.Log2(float64(t.capacity) + 2))))
}

// buildLevels sizes the primary levels proportionally to 0.75^i of the
// budget left after the overflow reservation, each rounded down to a
// multiple of β, and gives the remainder (at least ⌈δn/2⌉) to the overflow
// level.
func (t *HashTable[K, V]) buildLevels() {
	alpha := int(math.Ceil(4*math.Log2(1/t.delta) + 10))
	minOverflow := int(math.Ceil(t.delta * float64(t.capacity) / 2))
	rem := t.capacity - minOverflow

	var sum float64
	geom := make([]float64, alpha)
	for i := range geom {
		geom[i] = math.Pow(0.75, float64(i))
		sum += geom[i]
	}

	var sizes []int
	assigned := 0
	for i := 0; i < alpha; i++ {
		sz := int(math.Floor(float64(rem) * geom[i] / sum))
		if sz < t.beta {
			break
		}
		sz -= sz % t.beta
		sizes = append(sizes, sz)
		assigned += sz
	}
	t.alpha = len(sizes)

	overflow := t.capacity - assigned
	if overflow < minOverflow {
		overflow = minOverflow
	}
	sizes = append(sizes, overflow)

	t.levels = make([][]slot[K, V], len(sizes))
	t.occupied = make([]int, len(sizes))
	for i, sz := range sizes {
		t.levels[i] = make([]slot[K, V], sz)
	}
}

// placeNew stores a key known to be absent: greedy first-fit over the
// primary levels, then the overflow level. Returns false when every scheme
// exhausted its slots.
func (t *HashTable[K, V]) placeNew(key K, value V) bool {
	h := t.hasher(key)

	for lvl := 0; lvl < t.alpha; lvl++ {
		buckets := len(t.levels[lvl]) / t.beta
		start := int(bucketHash(lvl, h)%uint64(buckets)) * t.beta
		for j := 0; j < t.beta; j++ {
			if t.levels[lvl][start+j].state != slotOccupied {
				t.levels[lvl][start+j] = slot[K, V]{key: key, value: value, state: slotOccupied}
				t.occupied[lvl]++
				return true
			}
		}
	}

	return t.placeOverflow(h, key, value)
}

// placeOverflow tries the uniform section, then two-choice buckets on the
// second half. An overflow too small for two buckets of 2L slots falls back
// to scanning the whole second half.
func (t *HashTable[K, V]) placeOverflow(h uint64, key K, value V) bool {
	ovf := t.levels[t.alpha]
	m := len(ovf)
	half := m / 2
	if half == 0 {
		return t.placeRange(ovf, 0, m, key, value)
	}

	limit := t.probeLimit()
	for p := 0; p < limit; p++ {
		idx := t.posHash(h, p) % uint64(half)
		if ovf[idx].state != slotOccupied {
			ovf[idx] = slot[K, V]{key: key, value: value, state: slotOccupied}
			t.occupied[t.alpha]++
			return true
		}
	}

	bucketSize := 2 * limit
	if half < 2*bucketSize {
		return t.placeRange(ovf, half, m, key, value)
	}

	buckets := half / bucketSize
	b1 := int(bucketHash(t.alpha, h) % uint64(buckets))
	b2 := int(bucketHash(t.alpha, h^goldenGamma) % uint64(buckets))
	for j := 0; j < bucketSize; j++ {
		for _, idx := range [2]int{half + b1*bucketSize + j, half + b2*bucketSize + j} {
			if ovf[idx].state != slotOccupied {
				ovf[idx] = slot[K, V]{key: key, value: value, state: slotOccupied}
				t.occupied[t.alpha]++
				return true
			}
		}
	}
	return false
}

func (t *HashTable[K, V]) placeRange(ovf []slot[K, V], lo, hi int, key K, value V) bool {
	for idx := lo; idx < hi; idx++ {
		if ovf[idx].state != slotOccupied {
			ovf[idx] = slot[K, V]{key: key, value: value, state: slotOccupied}
			t.occupied[t.alpha]++
			return true
		}
	}
	return false
}

// find mirrors the insert scan. On primary levels an empty slot ends that
// level's bucket scan; tombstones are skipped.
func (t *HashTable[K, V]) find(key K) (int, int, bool) {
	h := t.hasher(key)

	for lvl := 0; lvl < t.alpha; lvl++ {
		buckets := len(t.levels[lvl]) / t.beta
		start := int(bucketHash(lvl, h)%uint64(buckets)) * t.beta
		for j := 0; j < t.beta; j++ {
			s := &t.levels[lvl][start+j]
			if s.state == slotEmpty {
				break
			}
			if s.state == slotOccupied && s.key == key {
				return lvl, start + j, true
			}
		}
	}

	return t.findOverflow(h, key)
}

func (t *HashTable[K, V]) findOverflow(h uint64, key K) (int, int, bool) {
	ovf := t.levels[t.alpha]
	m := len(ovf)
	half := m / 2
	if half == 0 {
		return t.findRange(ovf, 0, m, key)
	}

	limit := t.probeLimit()
	for p := 0; p < limit; p++ {
		idx := int(t.posHash(h, p) % uint64(half))
		if ovf[idx].state == slotEmpty {
			break
		}
		if ovf[idx].state == slotOccupied && ovf[idx].key == key {
			return t.alpha, idx, true
		}
	}

	bucketSize := 2 * limit
	if half < 2*bucketSize {
		return t.findRange(ovf, half, m, key)
	}

	buckets := half / bucketSize
	b1 := int(bucketHash(t.alpha, h) % uint64(buckets))
	b2 := int(bucketHash(t.alpha, h^goldenGamma) % uint64(buckets))
	for j := 0; j < bucketSize; j++ {
		for _, idx := range [2]int{half + b1*bucketSize + j, half + b2*bucketSize + j} {
			if ovf[idx].state == slotEmpty {
				return 0, 0, false
			}
			if ovf[idx].state == slotOccupied && ovf[idx].key == key {
				return t.alpha, idx, true
			}
		}
	}
	return 0, 0, false
}

func (t *HashTable[K, V]) findRange(ovf []slot[K, V], lo, hi int, key K) (int, int, bool) {
	for idx := lo; idx < hi; idx++ {
		if ovf[idx].state == slotOccupied && ovf[idx].key == key {
			return t.alpha, idx, true
		}
	}
	return 0, 0, false
}

// expand doubles the capacity budget, rebuilds the level geometry and
// reinserts every live entry.
func (t *HashTable[K, V]) expand() {
	entries := make([]slot[K, V], 0, t.count)
	for i := range t.levels {
		for j := range t.levels[i] {
			if t.levels[i][j].state == slotOccupied {
				entries = append(entries, t.levels[i][j])
			}
		}
	}

	for {
		t.capacity *= 2
		t.buildLevels()
		t.count = 0
		replaced := true
		for i := range entries {
			if !t.placeNew(entries[i].key, entries[i].value) {
				replaced = false
				break
			}
			t.count++
		}
		if replaced {
			return
		}
	}
}
