//go:build goexperiment.arenas

package flatmap

// arena_alloc.go adapts internal/arena (the teacher's experimental-arena
// wrapper, originally written to back cache *values*) into a flatmap
// Allocator, so a Map's single backing block can be released all at once
// instead of waiting on the garbage collector.

import (
	"unsafe"

	"github.com/flatcache/flatcache/internal/arena"
	"github.com/flatcache/flatcache/internal/unsafehelpers"
)

// ArenaAllocator backs a Map's storage with a Go arena. One ArenaAllocator
// owns exactly one arena: Close releases every block ever handed out
// through it at once, so it must not be shared between Maps that need to be
// freed independently of one another.
type ArenaAllocator struct {
	ar *arena.Arena
}

// NewArenaAllocator constructs an empty arena-backed allocator.
func NewArenaAllocator() *ArenaAllocator {
	return &ArenaAllocator{ar: arena.New()}
}

func (a *ArenaAllocator) Alloc(size, align uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, nil
	}
	buf := arena.MakeSlice[byte](a.ar, int(size+align))
	base := uintptr(unsafe.Pointer(&buf[0]))
	aligned := unsafehelpers.AlignUp(base, align)
	return unsafe.Pointer(&buf[aligned-base]), nil
}

// Free is a no-op: arenas release memory in bulk, not per-block. Individual
// Map grows still call it (to satisfy the Allocator interface) but the
// space is only actually reclaimed by Close.
func (a *ArenaAllocator) Free(ptr unsafe.Pointer, size, align uintptr) {}

// Close releases every allocation made through this allocator. Any Map
// still using it must be Deinit'd first; using it afterward is undefined.
func (a *ArenaAllocator) Close() {
	a.ar.Free()
}
