package flatmap

// storage.go implements the single-allocation layout mandated by spec §4.1:
//
//	[ tableHeader ][ metadata[capacity] ][ padding ][ entries[capacity] ]
//
// table only ever keeps an interior pointer to the start of the metadata
// region (the "handle"); the header is recovered by stepping backward, and
// the entries base is recovered from the header. Per the design note in
// §9, the capacity is also cached directly on the struct rather than
// re-read from the header on every call — the header exists for layout
// fidelity and is only consulted to locate the entries region.
//
// This is the one file in the repository that is necessarily stdlib-only:
// manual control over struct layout is exactly what `unsafe` is for, and no
// third-party library in the retrieval pack substitutes for it.

import (
	"unsafe"

	"github.com/flatcache/flatcache/internal/unsafehelpers"
)

type tableHeader struct {
	entriesOffset uintptr // from the metadata region start to the entries region start
	capacity      int
}

var (
	headerSize  = unsafe.Sizeof(tableHeader{})
	headerAlign = unsafe.Alignof(tableHeader{})
)

// table owns the single backing allocation for one generation of a Map's
// storage. The zero value represents an unallocated (capacity 0) table.
type table[K comparable, V any] struct {
	meta       unsafe.Pointer // interior pointer: start of the metadata region, or nil
	capacity   int
	blockSize  uintptr
	blockAlign uintptr
}

// layoutFor computes the total block size, required alignment, and the
// metadata-relative offset of the entries region for a table of the given
// capacity holding Entry[K,V] values.
func layoutFor[K comparable, V any](capacity int) (blockSize, blockAlign, entriesOffset uintptr) {
	var e Entry[K, V]
	entryAlign := unsafe.Alignof(e)
	entrySize := unsafe.Sizeof(e)

	metaSize := uintptr(capacity)
	entriesOffset = unsafehelpers.AlignUp(metaSize, entryAlign)

	blockAlign = headerAlign
	if entryAlign > blockAlign {
		blockAlign = entryAlign
	}
	blockSize = headerSize + entriesOffset + entrySize*uintptr(capacity)
	return
}

// allocate requests a fresh block from a and initializes the header and
// metadata region (all slots start empty). t must be the zero value.
func (t *table[K, V]) allocate(a Allocator, capacity int) error {
	blockSize, blockAlign, entriesOffset := layoutFor[K, V](capacity)

	ptr, err := a.Alloc(blockSize, blockAlign)
	if err != nil {
		return newAllocationFailure("table.allocate", blockSize, blockAlign, err)
	}

	hdr := (*tableHeader)(ptr)
	hdr.entriesOffset = entriesOffset
	hdr.capacity = capacity

	t.meta = unsafe.Pointer(uintptr(ptr) + headerSize)
	t.capacity = capacity
	t.blockSize = blockSize
	t.blockAlign = blockAlign

	meta := t.metadataSlice()
	for i := range meta {
		meta[i] = metaEmpty
	}
	return nil
}

// release returns the block to a and resets t to its zero value. A no-op on
// an already-unallocated table.
func (t *table[K, V]) release(a Allocator) {
	if t.meta == nil {
		return
	}
	block := unsafe.Pointer(uintptr(t.meta) - headerSize)
	a.Free(block, t.blockSize, t.blockAlign)
	*t = table[K, V]{}
}

func (t *table[K, V]) header() *tableHeader {
	return (*tableHeader)(unsafe.Pointer(uintptr(t.meta) - headerSize))
}

func (t *table[K, V]) metadataAt(i int) *uint8 {
	return (*uint8)(unsafe.Pointer(uintptr(t.meta) + uintptr(i)))
}

func (t *table[K, V]) metadataSlice() []byte {
	if t.capacity == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(t.meta), t.capacity)
}

func (t *table[K, V]) entriesBase() unsafe.Pointer {
	return unsafe.Pointer(uintptr(t.meta) + t.header().entriesOffset)
}

func (t *table[K, V]) entryAt(i int) *Entry[K, V] {
	var e Entry[K, V]
	return (*Entry[K, V])(unsafe.Pointer(uintptr(t.entriesBase()) + uintptr(i)*unsafe.Sizeof(e)))
}
