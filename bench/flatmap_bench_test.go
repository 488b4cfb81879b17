// flatmap_bench_test.go benchmarks pkg/flatmap directly, without the
// sharding/eviction/arena machinery layered on top of it by pkg/cache. This
// isolates the cost of the open-addressing table itself.

package bench

import (
	"testing"

	"github.com/flatcache/flatcache/pkg/flatmap"
)

func newUint64Map() *flatmap.Map[uint64, value64] {
	hash := func(k uint64) uint64 { return k * 0x9E3779B97F4A7C15 }
	return flatmap.New[uint64, value64](hash, flatmap.ComparableEq[uint64]())
}

func BenchmarkFlatmapPut(b *testing.B) {
	m := newUint64Map()
	val := value64{}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := ds[i&(keys-1)]
		_ = m.Put(key, val)
	}
}

func BenchmarkFlatmapGet(b *testing.B) {
	m := newUint64Map()
	val := value64{}
	for _, k := range ds {
		_ = m.Put(k, val)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := ds[i&(keys-1)]
		_, _ = m.Get(k)
	}
}

func BenchmarkFlatmapRemoveReinsert(b *testing.B) {
	m := newUint64Map()
	val := value64{}
	for _, k := range ds {
		_ = m.Put(k, val)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := ds[i&(keys-1)]
		m.Remove(k)
		_ = m.Put(k, val)
	}
}
