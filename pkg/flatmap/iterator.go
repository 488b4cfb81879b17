package flatmap

// Iterator is a single-pass cursor over the metadata array, advancing to
// the next used slot on each call to Next. Not restartable in place — get a
// fresh Iterator to restart — and invalidated by any modifying call on the
// parent Map. Iteration order is an implementation detail.
type Iterator[K comparable, V any] struct {
	m   *Map[K, V]
	idx int
}

// Iterator returns a fresh cursor positioned before the first slot.
func (m *Map[K, V]) Iterator() *Iterator[K, V] {
	m.assertAlive("Iterator")
	return &Iterator[K, V]{m: m}
}

// Next advances to the next used slot, returning its entry, or (nil, false)
// once the scan is exhausted.
func (it *Iterator[K, V]) Next() (*Entry[K, V], bool) {
	for it.idx < it.m.tbl.capacity {
		i := it.idx
		it.idx++
		if isUsed(*it.m.tbl.metadataAt(i)) {
			return it.m.tbl.entryAt(i), true
		}
	}
	return nil, false
}

// ForEach calls fn for every live entry in unspecified order, stopping
// early if fn returns false.
func (m *Map[K, V]) ForEach(fn func(*Entry[K, V]) bool) {
	it := m.Iterator()
	for {
		ent, ok := it.Next()
		if !ok {
			return
		}
		if !fn(ent) {
			return
		}
	}
}
