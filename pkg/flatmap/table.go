// Package flatmap implements an open-addressing hash table with linear
// probing and a single-byte per-slot control word, trading memory layout,
// probing discipline and fingerprint filtering to keep lookup and insertion
// typically within two cache misses at load factors up to 80%.
//
// The table is a single-owner structure with no internal synchronization;
// see pkg/cache for a sharded, mutex-protected consumer.
package flatmap

// Entry is an unordered (key, value) pair held by value in a slot. No
// modifying operation guarantees that a previously returned *Entry remains
// valid — callers needing address stability must copy out before mutating.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is a generic K -> V hash table. The zero value is not usable; build
// one with New.
type Map[K comparable, V any] struct {
	hash      HashFunc[K]
	eq        EqFunc[K]
	allocator Allocator
	maxLoad   int // percent, validated to be in (0,100) at construction

	tbl table[K, V]

	size       int
	tombstones int
	available  int

	deinited bool
}

// Option configures a Map at construction time.
type Option[K comparable, V any] func(*Map[K, V])

// WithMaxLoadPercentage overrides the default 80% load factor. Values
// outside (0,100) are a precondition violation.
func WithMaxLoadPercentage[K comparable, V any](pct int) Option[K, V] {
	return func(m *Map[K, V]) {
		assertPrecondition(pct > 0 && pct < 100, "WithMaxLoadPercentage",
			"flatmap: MaxLoadPercentage must be in (0,100)", map[string]interface{}{"value": pct})
		m.maxLoad = pct
	}
}

// WithAllocator overrides the default HeapAllocator. nil is ignored.
func WithAllocator[K comparable, V any](a Allocator) Option[K, V] {
	return func(m *Map[K, V]) {
		if a != nil {
			m.allocator = a
		}
	}
}

// New constructs an empty Map. No allocation happens until the first
// insertion or an explicit Reserve.
func New[K comparable, V any](hash HashFunc[K], eq EqFunc[K], opts ...Option[K, V]) *Map[K, V] {
	m := &Map[K, V]{
		hash:      hash,
		eq:        eq,
		allocator: HeapAllocator{},
		maxLoad:   DefaultMaxLoadPercentage,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Map[K, V]) assertAlive(op string) {
	assertPrecondition(!m.deinited, op, "flatmap: use of a deinitialized table", nil)
}

// Len returns the number of live entries.
func (m *Map[K, V]) Len() int { return m.size }

// Cap returns the current capacity (a power of two, or 0 for an
// unallocated table).
func (m *Map[K, V]) Cap() int { return m.tbl.capacity }

// Available returns the remaining budget of load-increasing insertions
// before the next one would trigger a grow.
func (m *Map[K, V]) Available() int { return m.available }
