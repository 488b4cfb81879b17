package cache

import (
	"context"

	"github.com/flatcache/flatcache/pkg/flatmap"
)

// shard.go contains the sharded segment of flatcache. A Cache is split into N
// independent shards to minimise lock contention.  Each shard keeps its own
// key‑>entry index, CLOCK‑Pro metadata ring and pointer to the current
// *generation (arena) it writes to.
//
// The code relies only on the standard library and this module's own
// packages; there is **no cgo** and everything is safe for cross‑compilation.
//
// The shard is *not* exposed from the public API: the shard type and the
// public Cache type are declared in pkg/cache/cache.go.  Shards are created
// and managed by the top‑level Cache object.
//
// © 2025 flatcache authors. MIT License.

// getOrLoad retrieves a value from the shard or loads it using the provided loader function.
func (s *shard[K, V]) getOrLoad(ctx context.Context, key K, loader LoaderFunc[K, V]) (V, error) {
	// Attempt to get the value from the shard
	if val, ok := s.get(key); ok {
		return val, nil
	}
	// Load the value using the loader function
	return loader(ctx, key)
}

// sizeBytes returns the total size in bytes of the shard.
func (s *shard[K, V]) sizeBytes() int64 {
	// Calculate the size based on the entries in the shard.
	var total int64
	s.mu.RLock()
	s.index.ForEach(func(e *flatmap.Entry[uint64, *entry[K, V]]) bool {
		total += int64(e.Value.weight)
		return true
	})
	s.mu.RUnlock()
	return total
}

// close releases resources used by the shard.
func (s *shard[K, V]) close() {
	// Perform any necessary cleanup for the shard: release the index's
	// backing allocation before dropping the other references.
	s.index.Deinit()
	s.index = nil
	s.clock = nil
	s.genRing = nil
}
