package flatmap

// property_test.go covers the boundary scenarios of spec §8 that aren't
// the six literal end-to-end cases already in map_test.go: reverse
// removal, growth-at-the-trigger, and tombstone chains across a grow
// boundary.

import "testing"

func TestReverseRemoval(t *testing.T) {
	const n = 200
	m := newIntMap()
	for i := 0; i < n; i++ {
		if err := m.Put(i, i); err != nil {
			t.Fatal(err)
		}
	}

	for i := n - 1; i >= 0; i-- {
		if _, ok := m.Remove(i); !ok {
			t.Fatalf("Remove(%d): missing", i)
		}
		for j := 0; j < i; j++ {
			v, ok := m.Get(j)
			if !ok || v != j {
				t.Fatalf("after removing %d: Get(%d) = (%d, %v), want (%d, true)", i, j, v, ok, j)
			}
		}
	}
	if m.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", m.Len())
	}
}

func TestGrowthAtTrigger(t *testing.T) {
	m := newIntMap()
	if err := m.Reserve(1); err != nil {
		t.Fatal(err)
	}

	capBefore := m.Cap()
	inserted := 0
	for m.Available() > 0 {
		if err := m.Put(inserted, inserted); err != nil {
			t.Fatal(err)
		}
		inserted++
	}
	if m.Cap() != capBefore {
		t.Fatalf("capacity changed before Available() reached 0: %d -> %d", capBefore, m.Cap())
	}

	// The next insert of a new key must grow.
	if err := m.Put(inserted, inserted); err != nil {
		t.Fatal(err)
	}
	if m.Cap() <= capBefore {
		t.Fatalf("Cap() = %d after exhausting Available(), want > %d", m.Cap(), capBefore)
	}
	for i := 0; i <= inserted; i++ {
		v, ok := m.Get(i)
		if !ok || v != i {
			t.Fatalf("Get(%d) = (%d, %v), want (%d, true)", i, v, ok, i)
		}
	}
}

func TestTombstoneChainsSurviveGrowth(t *testing.T) {
	m := newIntMap()
	const rounds = 6
	const perRound = 30

	live := map[int]int{}
	next := 0
	for r := 0; r < rounds; r++ {
		for i := 0; i < perRound; i++ {
			k := next
			next++
			if err := m.Put(k, k*2); err != nil {
				t.Fatal(err)
			}
			live[k] = k * 2
		}
		// remove perRound/2 of the currently live keys to build tombstone chains
		removed := 0
		for k := range live {
			if removed >= perRound/2 {
				break
			}
			if _, ok := m.Remove(k); !ok {
				t.Fatalf("Remove(%d): missing", k)
			}
			delete(live, k)
			removed++
		}
	}

	if m.Len() != len(live) {
		t.Fatalf("Len() = %d, want %d", m.Len(), len(live))
	}
	for k, v := range live {
		got, ok := m.Get(k)
		if !ok || got != v {
			t.Fatalf("Get(%d) = (%d, %v), want (%d, true)", k, got, ok, v)
		}
	}

	maxLoad := maxLoadSlots(m.Cap(), m.maxLoad)
	if m.size+m.tombstones > maxLoad {
		t.Fatalf("size+tombstones = %d exceeds max load %d", m.size+m.tombstones, maxLoad)
	}
}

func TestAssumeCapacityVariants(t *testing.T) {
	m := newIntMap()
	if err := m.Reserve(4); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3 && m.Available() > 0; i++ {
		m.PutAssumeCapacityNoClobber(i, i)
	}

	for i := 0; i < 3; i++ {
		v, ok := m.Get(i)
		if !ok || v != i {
			t.Fatalf("Get(%d) = (%d, %v), want (%d, true)", i, v, ok, i)
		}
	}
}

func TestCapacityForSizeProperties(t *testing.T) {
	for _, maxLoad := range []int{50, 80, 95} {
		for n := 1; n < 5000; n += 37 {
			c := capacityForSize(n, maxLoad)
			if c&(c-1) != 0 {
				t.Fatalf("capacityForSize(%d,%d) = %d, not a power of two", n, maxLoad, c)
			}
			if c < n {
				t.Fatalf("capacityForSize(%d,%d) = %d, want >= %d", n, maxLoad, c, n)
			}
			if maxLoadSlots(c, maxLoad) < n {
				t.Fatalf("capacityForSize(%d,%d) = %d yields maxLoadSlots %d < %d", n, maxLoad, c, maxLoadSlots(c, maxLoad), n)
			}
		}
	}
}
