package cache

// Package loaderfunc defines the LoaderFunc type used in flatcache.
// It specifies the signature for cache loading functions.

// loaderfunc.go defines LoaderFunc – the user‑supplied callback that produces a
// value when Cache.GetOrLoad misses.  We place it in its own file so that the
// files of this package that use it (cache.go, shard.go, loader.go) share one
// definition.
//
// • The function must be **pure** and side‑effect free with regard to the
//   cache itself: it MUST NOT call Cache.Put or re‑enter the same Cache it
//   serves, otherwise deadlock or inconsistent state may occur.
// • It should honour the provided context for cancellation and deadlines.
// • GetOrLoad returns the loaded value to its caller without storing it in
//   the cache; if the loader returns an error, that error is propagated to the
//   caller of GetOrLoad.
//
// K – key type, comparable (same as Cache).
// V – value type.
//
// © 2025 flatcache authors. MIT License.

import "context"

// LoaderFunc is invoked by GetOrLoad when a key is absent. Implementations
// return the value for the key or an error.  The same LoaderFunc instance
// may be invoked concurrently by different keys; it must therefore be
// thread‑safe.

type LoaderFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)
