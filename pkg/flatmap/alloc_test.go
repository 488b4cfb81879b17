package flatmap

import (
	"testing"
	"unsafe"
)

func TestHeapAllocatorAlignment(t *testing.T) {
	var a HeapAllocator
	for _, align := range []uintptr{1, 2, 4, 8, 16, 32} {
		ptr, err := a.Alloc(64, align)
		if err != nil {
			t.Fatalf("Alloc(64,%d): %v", align, err)
		}
		if uintptr(ptr)%align != 0 {
			t.Fatalf("Alloc(64,%d) returned misaligned pointer %v", align, ptr)
		}
	}
}

func TestHeapAllocatorZeroSize(t *testing.T) {
	var a HeapAllocator
	ptr, err := a.Alloc(0, 8)
	if err != nil {
		t.Fatalf("Alloc(0,8): %v", err)
	}
	if ptr != nil {
		t.Fatalf("Alloc(0,8) = %v, want nil", ptr)
	}
}

func TestWithMaxLoadPercentageRejectsOutOfRange(t *testing.T) {
	for _, pct := range []int{0, -1, 100, 101} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("WithMaxLoadPercentage(%d) did not panic", pct)
				}
			}()
			newIntMap(WithMaxLoadPercentage[int, int](pct))
		}()
	}
}

func TestLayoutEntriesAlignment(t *testing.T) {
	type kv = Entry[int, int]
	_, _, entriesOffset := layoutFor[int, int](16)
	if entriesOffset%unsafe.Alignof(kv{}) != 0 {
		t.Fatalf("entriesOffset %d not aligned to %d", entriesOffset, unsafe.Alignof(kv{}))
	}
}
