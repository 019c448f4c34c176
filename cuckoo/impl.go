package cuckoo

// hash1 and hash2 pick the candidate slots. Keeping the exact pair — the
// base hash, and the base hash XORed with itself shifted right by 16 bits — makes insert
// traces reproducible across runs with the same hasher.
func (t *HashTable[K, V]) hash1(key K) uint64 {
	return t.hasher(key) % uint64(t.capacity)
}

func (t *HashTable[K, V]) hash2(key K) uint64 {
	h := t.hasher(key)
	return ((h >> 16) ^ h) % uint64(t.capacity)
}

// insertNew places a key known to be absent. At each step the pair lands in
// its table-1 slot, kicking out any occupant, which then targets its table-2
// slot, and so on alternating tables. The chain is capped at the per-table
// capacity in displacements; past the cap the table doubles and the
// still-displaced pair is reinserted.
func (t *HashTable[K, V]) insertNew(key K, value V) {
	curKey, curValue := key, value

	for kicks := 0; kicks < t.capacity; kicks += 2 {
		i1 := t.hash1(curKey)
		if !t.table1[i1].occupied {
			t.table1[i1] = entry[K, V]{key: curKey, value: curValue, occupied: true}
			t.count++
			return
		}
		curKey, t.table1[i1].key = t.table1[i1].key, curKey
		curValue, t.table1[i1].value = t.table1[i1].value, curValue
		if kicks+1 == t.capacity {
			break
		}

		i2 := t.hash2(curKey)
		if !t.table2[i2].occupied {
			t.table2[i2] = entry[K, V]{key: curKey, value: curValue, occupied: true}
			t.count++
			return
		}
		curKey, t.table2[i2].key = t.table2[i2].key, curKey
		curValue, t.table2[i2].value = t.table2[i2].value, curValue
	}

	t.rehash()
	t.Insert(curKey, curValue)
}

// rehash doubles both tables and reinserts every occupied entry.
func (t *HashTable[K, V]) rehash() {
	old1, old2 := t.table1, t.table2

	t.capacity *= 2
	t.count = 0
	t.table1 = make([]entry[K, V], t.capacity)
	t.table2 = make([]entry[K, V], t.capacity)

	for i := range old1 {
		if old1[i].occupied {
			t.Insert(old1[i].key, old1[i].value)
		}
	}
	for i := range old2 {
		if old2[i].occupied {
			t.Insert(old2[i].key, old2[i].value)
		}
	}
}
