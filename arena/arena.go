// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package arena implements a monotonic bump allocator over a fixed
// backing region.
//
// The allocator only ever advances a cursor: granted ranges are never
// reclaimed, and there is no free operation. It exists to bootstrap a
// system before a real allocator is available, so the rules are strict:
// init exactly once, allocate forward, fail cleanly at capacity.
package arena

import (
	"golang.org/x/exp/constraints"

	"github.com/ezrec/ucore/mem"
)

// Align rounds `value` up to the next multiple of `align`, which must be
// a power of two.
func Align[I constraints.Unsigned](value, align I) I {
	return (value + align - 1) &^ (align - 1)
}

// Arena is the bump allocator state: a backing region and a cursor. The
// zero Arena is uninitialized. All methods are single-threaded by
// contract; the cursor bump in Allocate is the one step a concurrent
// extension would have to make atomic.
type Arena struct {
	region      mem.Region
	used        uint64
	initialized bool
}

// NewArena creates an initialized arena over `region`.
func NewArena(region mem.Region) (ar *Arena, err error) {
	ar = &Arena{}
	err = ar.Init(region)
	if err != nil {
		ar = nil
	}
	return
}

// Init establishes the backing region and zeroes the cursor. Init may be
// called exactly once per arena; re-initialization fails with
// ErrAlreadyInitialized.
func (ar *Arena) Init(region mem.Region) (err error) {
	if ar.initialized {
		return ErrAlreadyInitialized
	}

	ar.region, err = mem.NewRegion(region.Start, region.Size)
	if err != nil {
		return
	}

	ar.used = 0
	ar.initialized = true
	return
}

// Used is the number of bytes granted so far, including alignment padding.
func (ar *Arena) Used() uint64 {
	return ar.used
}

// Capacity is the total size of the backing region.
func (ar *Arena) Capacity() uint64 {
	return ar.region.Size
}

// Remaining is the number of bytes still available.
func (ar *Arena) Remaining() uint64 {
	return ar.region.Size - ar.used
}

// Allocate grants the next `size` bytes. On failure the cursor does not
// move, so a smaller later allocation may still succeed.
func (ar *Arena) Allocate(size uint64) (rg mem.Region, err error) {
	return ar.AllocateAligned(size, 1)
}

// AllocateAligned grants `size` bytes starting at the cursor rounded up
// to `align` (a power of two). The padding skipped by the rounding is
// consumed. On failure neither the cursor nor the padding advances.
func (ar *Arena) AllocateAligned(size uint64, align uint64) (rg mem.Region, err error) {
	if !ar.initialized {
		err = ErrNotInitialized
		return
	}
	if size == 0 {
		err = ErrZeroSize
		return
	}
	if align == 0 || align&(align-1) != 0 {
		err = ErrBadAlign
		return
	}

	start := Align(ar.used, align)
	if start < ar.used || start > ar.region.Size || size > ar.region.Size-start {
		err = ErrOutOfMemory
		return
	}

	rg = mem.Region{Start: ar.region.Start + start, Size: size}
	ar.used = start + size
	return
}
