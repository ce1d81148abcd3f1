// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package port gates access to memory-mapped registers.
//
// Every Read and Write is a distinct bus transaction in the model: accesses
// go through sync/atomic loads and stores on the backing store, so they are
// never cached, coalesced, or elided, and a register mutated by a device
// model between two Reads is observed by the second Read. Freshness is an
// ordering guarantee, not mutual exclusion; serializing concurrent callers
// of the same register is the caller's problem, as it is on real hardware.
package port

import (
	"encoding/binary"
	"sync/atomic"
	"unsafe"

	"github.com/ezrec/ucore/mem"
)

// hostOrder is the byte order of uintN values in this process's memory.
var hostOrder = func() binary.ByteOrder {
	probe := uint16(0x0102)
	if *(*byte)(unsafe.Pointer(&probe)) == 0x01 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}()

// Port is a read/write gate to one register of exact width at a fixed
// address within a Space. The handle aliases the space's memory; it never
// holds a copy of the register value.
type Port struct {
	bits  uint
	order binary.ByteOrder

	// The naturally aligned machine word containing the register.
	// Registers of 8 or 16 bits share their word32 with neighbors.
	word32 *uint32
	word64 *uint64
	sub    uint // Byte offset of the register within its word.
}

// NewPort binds a register handle to `addr` within `sp`. The address must
// lie in the space and be naturally aligned for the access width.
func NewPort(sp *mem.Space, addr mem.Addr) (p *Port, err error) {
	size := uint64(addr.Bits / 8)
	switch addr.Bits {
	case 8, 16, 32, 64:
	default:
		err = ErrBadWidth
		return
	}

	if addr.Address%size != 0 {
		err = ErrUnaligned
		return
	}

	region := sp.Region()
	if !region.Contains(addr.Address, size) {
		err = mem.ErrOutOfRange{Address: addr.Address, Bits: addr.Bits}
		return
	}

	// The atomic access happens on the host pointer &data[offset], so the
	// offset into the backing store must be naturally aligned as well; a
	// space mapped at an unaligned base cannot host wide registers.
	offset := addr.Address - region.Start
	if offset%size != 0 {
		err = ErrUnaligned
		return
	}
	p = &Port{
		bits:  addr.Bits,
		order: addr.Order.ByteOrder(),
	}

	data := sp.Bytes()
	if addr.Bits == 64 {
		p.word64 = (*uint64)(unsafe.Pointer(&data[offset]))
		return
	}

	// Sub-word registers are accessed through their containing aligned
	// 32-bit word, which must itself lie within the space.
	word := offset &^ 3
	if !region.Contains(region.Start+word, 4) {
		p = nil
		err = mem.ErrOutOfRange{Address: addr.Address, Bits: addr.Bits}
		return
	}
	p.word32 = (*uint32)(unsafe.Pointer(&data[word]))
	p.sub = uint(offset - word)
	return
}

// Bits is the access width of the register.
func (p *Port) Bits() uint {
	return p.bits
}

// Read performs a fresh load of the register. Two consecutive calls may
// legitimately return different values.
func (p *Port) Read() (value uint64) {
	if p.bits == 64 {
		var lane [8]byte
		hostOrder.PutUint64(lane[:], atomic.LoadUint64(p.word64))
		return p.order.Uint64(lane[:])
	}

	var lane [4]byte
	hostOrder.PutUint32(lane[:], atomic.LoadUint32(p.word32))

	switch p.bits {
	case 8:
		value = uint64(lane[p.sub])
	case 16:
		value = uint64(p.order.Uint16(lane[p.sub:]))
	case 32:
		value = uint64(p.order.Uint32(lane[:]))
	}
	return
}

// Write performs a fresh store of the register. Sub-word registers update
// their containing word with a compare-and-swap so neighboring register
// bytes are preserved.
func (p *Port) Write(value uint64) {
	if p.bits == 64 {
		var lane [8]byte
		p.order.PutUint64(lane[:], value)
		atomic.StoreUint64(p.word64, hostOrder.Uint64(lane[:]))
		return
	}

	if p.bits == 32 {
		var lane [4]byte
		p.order.PutUint32(lane[:], uint32(value))
		atomic.StoreUint32(p.word32, hostOrder.Uint32(lane[:]))
		return
	}

	for {
		old := atomic.LoadUint32(p.word32)

		var lane [4]byte
		hostOrder.PutUint32(lane[:], old)
		if p.bits == 8 {
			lane[p.sub] = uint8(value)
		} else {
			p.order.PutUint16(lane[p.sub:], uint16(value))
		}

		if atomic.CompareAndSwapUint32(p.word32, old, hostOrder.Uint32(lane[:])) {
			return
		}
	}
}
