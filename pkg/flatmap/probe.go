package flatmap

// probe.go implements the linear-probe engine of spec §4.4: the probe
// sequence (h&m, (h&m+1)&m, ...), the fingerprint-filtered lookup, and the
// grow machinery. Grounded on the teacher's shard.get/put/delete
// optimistic-probe-by-hash shape and on the fingerprint-before-key-compare
// discipline shown by the swiss-table and CLHT-style examples in the
// retrieval pack.

type probeResult struct {
	idx       int // slot to act on: the match, or (if !found) the terminating empty slot
	found     bool
	firstTomb int // first tombstone seen on the chain, or -1
}

// find walks the probe chain for key/h. It stops at the first empty slot
// (proof of absence) and reports the first tombstone encountered along the
// way, so insertion can choose to reclaim it instead of the empty slot —
// one of the two disciplines spec §4.4 permits.
func (m *Map[K, V]) find(key K, h uint64) probeResult {
	if m.tbl.capacity == 0 {
		return probeResult{idx: -1, found: false, firstTomb: -1}
	}
	mask := uint64(m.tbl.capacity - 1)
	fp := fingerprint(h)
	firstTomb := -1

	i := h & mask
	for {
		b := *m.tbl.metadataAt(int(i))
		switch {
		case isEmpty(b):
			return probeResult{idx: int(i), found: false, firstTomb: firstTomb}
		case isTombstone(b):
			if firstTomb == -1 {
				firstTomb = int(i)
			}
		default: // used
			if fingerprintOf(b) == fp {
				ent := m.tbl.entryAt(int(i))
				if m.eq(ent.Key, key) {
					return probeResult{idx: int(i), found: true, firstTomb: firstTomb}
				}
			}
		}
		i = (i + 1) & mask
	}
}

// getOrPut is the shared engine behind GetOrPut/Put/PutNoClobber and their
// AssumeCapacity variants. allowAlloc selects whether a grow is permitted;
// when false and a grow would be required, that is a precondition
// violation (spec §4.5).
func (m *Map[K, V]) getOrPut(key K, allowAlloc bool) (*Entry[K, V], bool, error) {
	m.assertAlive("GetOrPut")
	h := m.hash(key)

	if m.tbl.capacity == 0 {
		if !allowAlloc {
			assertPrecondition(false, "GetOrPutAssumeCapacity",
				"flatmap: insert into an unallocated table requires allocation", nil)
		}
		if err := m.grow(MinimalCapacity); err != nil {
			return nil, false, err
		}
	}

	res := m.find(key, h)
	if res.found {
		return m.tbl.entryAt(res.idx), true, nil
	}

	if m.available == 0 {
		if !allowAlloc {
			assertPrecondition(false, "GetOrPutAssumeCapacity",
				"flatmap: available capacity exhausted", map[string]interface{}{"capacity": m.tbl.capacity})
		}
		newCap := m.growTargetCapacity(1)
		if err := m.grow(newCap); err != nil {
			return nil, false, err
		}
		res = m.find(key, h)
	}

	// Re-verify per spec §9's open question: available must be positive on
	// the insertion path even though MaxLoadPercentage is configurable.
	assertPrecondition(m.available > 0, "GetOrPut",
		"flatmap: available must be positive immediately before insertion", nil)

	idx := res.idx
	usingTomb := res.firstTomb != -1
	if usingTomb {
		idx = res.firstTomb
	}

	*m.tbl.metadataAt(idx) = newMetaUsed(fingerprint(h))
	ent := m.tbl.entryAt(idx)
	ent.Key = key
	var zero V
	ent.Value = zero

	m.size++
	if usingTomb {
		m.tombstones--
	} else {
		m.available--
	}

	return ent, false, nil
}

func (m *Map[K, V]) get(key K) (V, bool) {
	m.assertAlive("Get")
	if m.tbl.capacity == 0 {
		var zero V
		return zero, false
	}
	res := m.find(key, m.hash(key))
	if !res.found {
		var zero V
		return zero, false
	}
	return m.tbl.entryAt(res.idx).Value, true
}

func (m *Map[K, V]) remove(key K) (Entry[K, V], bool) {
	m.assertAlive("Remove")
	if m.tbl.capacity == 0 {
		var zero Entry[K, V]
		return zero, false
	}
	res := m.find(key, m.hash(key))
	if !res.found {
		var zero Entry[K, V]
		return zero, false
	}

	ent := m.tbl.entryAt(res.idx)
	removed := *ent
	*ent = Entry[K, V]{} // overwrite with the defined no-value state

	*m.tbl.metadataAt(res.idx) = metaTombstone
	m.size--
	m.tombstones++
	return removed, true
}

// grow replaces the table's allocation with one of newCap, rehashing every
// live entry and discarding tombstones. The previous allocation is released
// before grow returns; if the new allocation fails, m is left completely
// unchanged (invariants hold, no partial insertion visible).
func (m *Map[K, V]) grow(newCap int) error {
	var fresh table[K, V]
	if err := fresh.allocate(m.allocator, newCap); err != nil {
		return err
	}

	old := m.tbl
	mask := uint64(newCap - 1)

	for i := 0; i < old.capacity; i++ {
		b := *old.metadataAt(i)
		if !isUsed(b) {
			continue
		}
		src := old.entryAt(i)
		h := m.hash(src.Key)
		fp := fingerprint(h)

		j := h & mask
		for {
			nb := fresh.metadataAt(int(j))
			if isEmpty(*nb) {
				*nb = newMetaUsed(fp)
				dst := fresh.entryAt(int(j))
				dst.Key = src.Key
				dst.Value = src.Value
				break
			}
			j = (j + 1) & mask
		}
	}

	if old.capacity > 0 {
		old.release(m.allocator)
	}

	m.tbl = fresh
	m.tombstones = 0
	m.available = maxLoadSlots(newCap, m.maxLoad) - m.size
	return nil
}
