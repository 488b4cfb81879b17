package flatmap

// alloc.go defines the externally-supplied allocator collaborator (spec §6)
// and a default implementation. Real manual allocators are out of this
// repository's scope (spec §1); HeapAllocator is the Go-idiomatic stand-in,
// backed by the garbage collector instead of a free list.

import (
	"runtime"
	"unsafe"

	"github.com/flatcache/flatcache/internal/unsafehelpers"
)

// Allocator is the caller-supplied collaborator a Map uses for its single
// backing allocation. Alloc must return memory aligned to at least align
// bytes; Free releases a block previously returned by Alloc with the exact
// same size and align.
type Allocator interface {
	Alloc(size, align uintptr) (unsafe.Pointer, error)
	Free(ptr unsafe.Pointer, size, align uintptr)
}

// HeapAllocator is the default Allocator: every block is an ordinary Go
// byte slice, over-allocated by align bytes so the returned pointer can be
// rounded up to the requested alignment. Free is a no-op — the garbage
// collector reclaims the block once the Map drops its last interior pointer
// into it, which is exactly what table.release does.
type HeapAllocator struct{}

func (HeapAllocator) Alloc(size, align uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, nil
	}
	buf := make([]byte, size+align)
	base := uintptr(unsafe.Pointer(&buf[0]))
	aligned := unsafehelpers.AlignUp(base, align)
	p := unsafe.Pointer(&buf[aligned-base])
	// buf itself goes out of scope here; p is an interior pointer into its
	// backing array and is what keeps the allocation reachable from now on.
	runtime.KeepAlive(buf)
	return p, nil
}

func (HeapAllocator) Free(ptr unsafe.Pointer, size, align uintptr) {}
