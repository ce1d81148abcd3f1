// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package mem provides exact-width, address-based access to a simulated
// address space.
//
// A Space models raw memory as an in-process byte array, so every access
// is observable and bounds-checked. A real freestanding target would back
// the same operations with physical memory and no range tracking; there
// the caller alone guarantees address validity.
package mem

import (
	"encoding/binary"
)

// Order selects the byte order used to assemble multi-byte values.
type Order int

const (
	LITTLE_ENDIAN Order = iota // Least significant byte first.
	BIG_ENDIAN                 // Most significant byte first.
)

// ByteOrder maps the order to its encoding/binary equivalent.
func (o Order) ByteOrder() binary.ByteOrder {
	if o == BIG_ENDIAN {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Space is a simulated address space: a backing byte array mapped at a
// base address. The zero Space is empty; use NewSpace.
type Space struct {
	base uint64
	data []byte
}

// NewSpace creates an address space of `size` bytes mapped at `base`.
func NewSpace(base uint64, size uint64) (sp *Space, err error) {
	region, err := NewRegion(base, size)
	if err != nil {
		return
	}

	sp = &Space{
		base: region.Start,
		data: make([]byte, region.Size),
	}
	return
}

// Region is the span of addresses the space backs.
func (sp *Space) Region() Region {
	return Region{Start: sp.base, Size: uint64(len(sp.data))}
}

// Bytes exposes the backing store. Device models and tests mutate memory
// through this slice; ordinary callers use the width accessors.
func (sp *Space) Bytes() []byte {
	return sp.data
}

// Reset zeroes the entire backing store.
func (sp *Space) Reset() {
	clear(sp.data)
}

// window bounds-checks a `size`-byte access at `address` and returns the
// backing bytes for it.
func (sp *Space) window(address uint64, size uint64) (b []byte, err error) {
	if !sp.Region().Contains(address, size) {
		err = ErrOutOfRange{Address: address, Bits: uint(size * 8)}
		return
	}

	offset := address - sp.base
	b = sp.data[offset : offset+size]
	return
}

// ReadBytes copies `size` bytes starting at `address`.
func (sp *Space) ReadBytes(address uint64, size uint64) (value []byte, err error) {
	b, err := sp.window(address, size)
	if err != nil {
		return
	}
	value = append([]byte{}, b...)
	return
}

// WriteBytes copies `value` into the space starting at `address`.
func (sp *Space) WriteBytes(address uint64, value []byte) (err error) {
	b, err := sp.window(address, uint64(len(value)))
	if err != nil {
		return
	}
	copy(b, value)
	return
}

// Read8 reads one byte at `address`.
func (sp *Space) Read8(address uint64) (value uint8, err error) {
	b, err := sp.window(address, 1)
	if err != nil {
		return
	}
	value = b[0]
	return
}

// Read16 reads two bytes at `address`, assembled per `order`.
func (sp *Space) Read16(address uint64, order Order) (value uint16, err error) {
	b, err := sp.window(address, 2)
	if err != nil {
		return
	}
	value = order.ByteOrder().Uint16(b)
	return
}

// Read32 reads four bytes at `address`, assembled per `order`.
func (sp *Space) Read32(address uint64, order Order) (value uint32, err error) {
	b, err := sp.window(address, 4)
	if err != nil {
		return
	}
	value = order.ByteOrder().Uint32(b)
	return
}

// Read64 reads eight bytes at `address`, assembled per `order`.
func (sp *Space) Read64(address uint64, order Order) (value uint64, err error) {
	b, err := sp.window(address, 8)
	if err != nil {
		return
	}
	value = order.ByteOrder().Uint64(b)
	return
}

// Write8 writes one byte at `address`.
func (sp *Space) Write8(address uint64, value uint8) (err error) {
	b, err := sp.window(address, 1)
	if err != nil {
		return
	}
	b[0] = value
	return
}

// Write16 writes two bytes at `address`, laid out per `order`.
func (sp *Space) Write16(address uint64, value uint16, order Order) (err error) {
	b, err := sp.window(address, 2)
	if err != nil {
		return
	}
	order.ByteOrder().PutUint16(b, value)
	return
}

// Write32 writes four bytes at `address`, laid out per `order`.
func (sp *Space) Write32(address uint64, value uint32, order Order) (err error) {
	b, err := sp.window(address, 4)
	if err != nil {
		return
	}
	order.ByteOrder().PutUint32(b, value)
	return
}

// Write64 writes eight bytes at `address`, laid out per `order`.
func (sp *Space) Write64(address uint64, value uint64, order Order) (err error) {
	b, err := sp.window(address, 8)
	if err != nil {
		return
	}
	order.ByteOrder().PutUint64(b, value)
	return
}
