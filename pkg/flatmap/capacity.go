package flatmap

// capacity.go implements the load management rules of spec §4.3: the
// MinimalCapacity bootstrap, capacityForSize, and the grow-trigger formula.
// Mirrors pkg/config.go's validate-then-derive pattern (applyOptions
// validating a knob and precomputing a derived value) applied to capacity
// instead of TTL.

// MinimalCapacity is the smallest capacity a non-empty table ever takes.
const MinimalCapacity = 8

// DefaultMaxLoadPercentage matches the teacher's default (and spec §9's
// resolution of MaxLoadPercentage as a validated runtime construction
// parameter rather than a type parameter Go has no clean way to express).
const DefaultMaxLoadPercentage = 80

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// capacityForSize returns the smallest power of two >= ceil(n*100/maxLoad)+1.
func capacityForSize(n, maxLoad int) int {
	if n <= 0 {
		return 0
	}
	need := (n*100+maxLoad-1)/maxLoad + 1
	return nextPowerOfTwo(need)
}

// maxLoadSlots returns floor(capacity*maxLoad/100), the occupancy ceiling
// invariant 2 (spec §3) enforces.
func maxLoadSlots(capacity, maxLoad int) int {
	return (capacity * maxLoad) / 100
}

// growTargetCapacity implements spec §4.3's grow trigger: the new capacity
// is max(MinimalCapacity, capacityForSize(load+extra)), where load is the
// current used+tombstone count.
func (m *Map[K, V]) growTargetCapacity(extra int) int {
	load := m.size + m.tombstones
	target := capacityForSize(load+extra, m.maxLoad)
	if target < MinimalCapacity {
		target = MinimalCapacity
	}
	return target
}
