package mem

import (
	"math"
)

// Region is a contiguous span of addressable bytes.
type Region struct {
	Start uint64 // First address in the region.
	Size  uint64 // Length in bytes.
}

// NewRegion validates and creates a region. The size must be non-zero
// and the span must not wrap the address space.
func NewRegion(start uint64, size uint64) (rg Region, err error) {
	if size == 0 || start > math.MaxUint64-size+1 {
		err = ErrBadRegion
		return
	}

	rg = Region{Start: start, Size: size}
	return
}

// End is the first address past the region. A region ending exactly at
// the top of the address space wraps End to 0; use Last for an inclusive
// bound that cannot wrap.
func (rg Region) End() uint64 {
	return rg.Start + rg.Size
}

// Last is the region's final address, inclusive.
func (rg Region) Last() uint64 {
	return rg.Start + rg.Size - 1
}

// Contains reports whether a span of `size` bytes at `address` lies
// entirely within the region.
func (rg Region) Contains(address uint64, size uint64) bool {
	if address < rg.Start || size > rg.Size {
		return false
	}
	return address-rg.Start <= rg.Size-size
}

// Overlaps reports whether two regions share any address. Inclusive
// bounds keep the comparison valid for regions ending at the top of the
// address space.
func (rg Region) Overlaps(other Region) bool {
	return rg.Start <= other.Last() && other.Start <= rg.Last()
}
