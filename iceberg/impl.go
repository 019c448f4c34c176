package iceberg

// hashA addresses level 1 and the level-3 overflow list; hashB addresses
// level 2. Dividing by 37 before the modulo keeps the pair distinct at the
// low-order bits without a second hash pass.
func (t *HashTable[K, V]) hashA(key K) uint64 {
	return t.hasher(key) % uint64(t.blocks)
}

func (t *HashTable[K, V]) hashB(key K) uint64 {
	return (t.hasher(key) / 37) % uint64(t.blocks)
}

// overwrite replaces the value of a live key in place, wherever it lives.
func (t *HashTable[K, V]) overwrite(key K, value V) bool {
	idx1 := t.hashA(key)
	for i := range t.level1[idx1] {
		if e := &t.level1[idx1][i]; e.occupied && e.key == key {
			e.value = value
			return true
		}
	}
	idx2 := t.hashB(key)
	for i := range t.level2[idx2] {
		if e := &t.level2[idx2][i]; e.occupied && e.key == key {
			e.value = value
			return true
		}
	}
	for i := range t.level3[idx1] {
		if t.level3[idx1][i].key == key {
			t.level3[idx1][i].value = value
			return true
		}
	}
	return false
}

// placeNew stores a key known to be absent: first free level-1 slot, else
// first free level-2 slot, else the level-3 list at the level-1 index.
func (t *HashTable[K, V]) placeNew(key K, value V) {
	idx1 := t.hashA(key)
	for i := range t.level1[idx1] {
		if !t.level1[idx1][i].occupied {
			t.level1[idx1][i] = entry[K, V]{key: key, value: value, occupied: true}
			return
		}
	}
	idx2 := t.hashB(key)
	for i := range t.level2[idx2] {
		if !t.level2[idx2][i].occupied {
			t.level2[idx2][i] = entry[K, V]{key: key, value: value, occupied: true}
			return
		}
	}
	t.level3[idx1] = append(t.level3[idx1], pair[K, V]{key: key, value: value})
}

// alloc builds fresh level arrays for the current block count.
func (t *HashTable[K, V]) alloc() {
	t.level1 = make([][]entry[K, V], t.blocks)
	t.level2 = make([][]entry[K, V], t.blocks)
	t.level3 = make([][]pair[K, V], t.blocks)
	for i := 0; i < t.blocks; i++ {
		t.level1[i] = make([]entry[K, V], level1Slots)
		t.level2[i] = make([]entry[K, V], level2Slots)
	}
}

// resize doubles the block count and replaces every entry. Keys are unique
// across the old levels, so reinsertion skips the presence check.
func (t *HashTable[K, V]) resize() {
	old1, old2, old3 := t.level1, t.level2, t.level3

	t.blocks *= 2
	t.alloc()

	for b := range old1 {
		for i := range old1[b] {
			if old1[b][i].occupied {
				t.placeNew(old1[b][i].key, old1[b][i].value)
			}
		}
		for i := range old2[b] {
			if old2[b][i].occupied {
				t.placeNew(old2[b][i].key, old2[b][i].value)
			}
		}
		for i := range old3[b] {
			t.placeNew(old3[b][i].key, old3[b][i].value)
		}
	}
}
