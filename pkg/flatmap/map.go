package flatmap

// map.go is the public API surface (spec §4.5): five insert variants plus
// lookup, removal, reserve, clone and the two clear/deinit forms. Method
// shapes follow the teacher's small-directly-named-methods style rather
// than a builder chain.

// GetOrPut returns the entry for key, inserting a zero-valued one if
// absent. May allocate. If !found, the returned entry's Value is the zero
// value and must be set by the caller before any other call on m.
func (m *Map[K, V]) GetOrPut(key K) (*Entry[K, V], bool, error) {
	return m.getOrPut(key, true)
}

// GetOrPutAssumeCapacity is GetOrPut without allocation. Precondition:
// Available() >= 1 if key is absent; violating it panics.
func (m *Map[K, V]) GetOrPutAssumeCapacity(key K) (*Entry[K, V], bool) {
	ent, found, err := m.getOrPut(key, false)
	if err != nil {
		// allowAlloc=false never allocates, so getOrPut never returns a
		// non-nil error on this path.
		assertPrecondition(false, "GetOrPutAssumeCapacity", "flatmap: unexpected allocation error", nil)
	}
	return ent, found
}

// Put inserts or overwrites key with value. May allocate.
func (m *Map[K, V]) Put(key K, value V) error {
	ent, _, err := m.getOrPut(key, true)
	if err != nil {
		return err
	}
	ent.Value = value
	return nil
}

// PutNoClobber inserts key with value. Precondition: key is absent;
// violating it panics. May allocate.
func (m *Map[K, V]) PutNoClobber(key K, value V) error {
	ent, found, err := m.getOrPut(key, true)
	if err != nil {
		return err
	}
	assertPrecondition(!found, "PutNoClobber", "flatmap: key already present", nil)
	ent.Value = value
	return nil
}

// PutAssumeCapacityNoClobber is PutNoClobber without allocation.
// Precondition: key is absent and Available() >= 1; violating either
// panics.
func (m *Map[K, V]) PutAssumeCapacityNoClobber(key K, value V) {
	ent, found := m.GetOrPutAssumeCapacity(key)
	assertPrecondition(!found, "PutAssumeCapacityNoClobber", "flatmap: key already present", nil)
	ent.Value = value
}

// Get returns the value for key, if present. Never allocates, never fails.
func (m *Map[K, V]) Get(key K) (V, bool) { return m.get(key) }

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.get(key)
	return ok
}

// Remove deletes key if present, returning its entry. Tombstones the slot;
// Available() is unchanged (the slot stays counted against load until the
// next grow).
func (m *Map[K, V]) Remove(key K) (Entry[K, V], bool) { return m.remove(key) }

// RemoveAssert is Remove but panics if key is absent.
func (m *Map[K, V]) RemoveAssert(key K) Entry[K, V] {
	ent, ok := m.remove(key)
	assertPrecondition(ok, "RemoveAssert", "flatmap: key not present", nil)
	return ent
}

// Reserve guarantees that n subsequent insertions of new keys will not
// allocate, provided no intervening removal pushes tombstone load back over
// budget. A no-op if the current capacity already satisfies that.
func (m *Map[K, V]) Reserve(n int) error {
	m.assertAlive("Reserve")
	if n <= m.available {
		return nil
	}
	needed := capacityForSize(m.size+n, m.maxLoad)
	if needed < MinimalCapacity {
		needed = MinimalCapacity
	}
	if needed < m.tbl.capacity {
		needed = m.tbl.capacity
	}
	return m.grow(needed)
}

// Clone produces an independent Map with the same (K,V) multiset, built at
// a capacity sized for Len() entries with zero tombstones. Keys and values
// are copied with ordinary Go assignment — the only copy discipline the
// language offers, and the one spec §4.7 delegates to for types out of its
// scope (non-trivially-copyable values).
func (m *Map[K, V]) Clone() (*Map[K, V], error) {
	m.assertAlive("Clone")
	clone := &Map[K, V]{
		hash:      m.hash,
		eq:        m.eq,
		allocator: m.allocator,
		maxLoad:   m.maxLoad,
	}
	if m.size == 0 {
		return clone, nil
	}

	newCap := capacityForSize(m.size, m.maxLoad)
	if newCap < MinimalCapacity {
		newCap = MinimalCapacity
	}
	if err := clone.tbl.allocate(clone.allocator, newCap); err != nil {
		return nil, err
	}

	mask := uint64(newCap - 1)
	for i := 0; i < m.tbl.capacity; i++ {
		b := *m.tbl.metadataAt(i)
		if !isUsed(b) {
			continue
		}
		src := m.tbl.entryAt(i)
		h := clone.hash(src.Key)
		fp := fingerprint(h)

		j := h & mask
		for {
			nb := clone.tbl.metadataAt(int(j))
			if isEmpty(*nb) {
				*nb = newMetaUsed(fp)
				dst := clone.tbl.entryAt(int(j))
				dst.Key = src.Key
				dst.Value = src.Value
				break
			}
			j = (j + 1) & mask
		}
	}

	clone.size = m.size
	clone.available = maxLoadSlots(newCap, m.maxLoad) - clone.size
	return clone, nil
}

// ClearRetainingCapacity resets every slot to empty and zeroes Len(),
// keeping the current allocation.
func (m *Map[K, V]) ClearRetainingCapacity() {
	m.assertAlive("ClearRetainingCapacity")
	if m.tbl.capacity == 0 {
		return
	}
	meta := m.tbl.metadataSlice()
	for i := range meta {
		meta[i] = metaEmpty
	}
	var zero Entry[K, V]
	for i := 0; i < m.tbl.capacity; i++ {
		*m.tbl.entryAt(i) = zero
	}
	m.size = 0
	m.tombstones = 0
	m.available = maxLoadSlots(m.tbl.capacity, m.maxLoad)
}

// ClearAndFree releases the allocation, returning m to its zero-capacity
// state. Always uses m's own allocator — spec §9's open question about
// clearAndFree taking an allocator parameter is resolved by never exposing
// one: one convention, documented here.
func (m *Map[K, V]) ClearAndFree() {
	m.assertAlive("ClearAndFree")
	m.tbl.release(m.allocator)
	m.size = 0
	m.tombstones = 0
	m.available = 0
}

// Deinit is ClearAndFree plus marking m consumed; further use panics.
func (m *Map[K, V]) Deinit() {
	m.ClearAndFree()
	m.deinited = true
}
