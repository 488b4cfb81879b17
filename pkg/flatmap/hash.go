package flatmap

// hash.go declares the hash/eq collaborator types spec §6 requires callers
// to supply, plus a fast default for []byte/string keys. Promoted from an
// indirect (badger-only) dependency to a direct one: see SPEC_FULL.md §C.

import "github.com/cespare/xxhash/v2"

// HashFunc computes a 64-bit hash of a key. Must be deterministic and pure.
type HashFunc[K any] func(key K) uint64

// EqFunc reports whether two keys are equal. Must be reflexive, symmetric,
// transitive, and consistent with the HashFunc used alongside it.
type EqFunc[K any] func(a, b K) bool

// BytesHasher hashes a []byte key with xxhash.
func BytesHasher(key []byte) uint64 { return xxhash.Sum64(key) }

// StringHasher hashes a string key with xxhash.
func StringHasher(key string) uint64 { return xxhash.Sum64String(key) }

// ComparableEq returns the trivial EqFunc for any comparable type, for
// callers that don't need a specialized comparison.
func ComparableEq[K comparable]() EqFunc[K] {
	return func(a, b K) bool { return a == b }
}
