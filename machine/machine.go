// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package machine composes the core into one simulated target: RAM with a
// vector table and a bump-allocated heap, a VGA-style text window, and a
// memory-mapped timer register.
package machine

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ucore/arena"
	"github.com/ezrec/ucore/internal"
	"github.com/ezrec/ucore/mem"
	"github.com/ezrec/ucore/port"
	"github.com/ezrec/ucore/record"
)

// Standard memory map. RAM, the text window, and the device register
// block are disjoint spaces, as they would be on the bus.
const (
	VECTOR_BASE  = 0x0000 // Vector table of 8-byte descriptors.
	VECTOR_COUNT = 16     // Descriptor slots.
	HEAP_BASE    = 0x1000 // Bump-allocated heap.
	HEAP_SIZE    = 0x4000
	RAM_SIZE     = HEAP_BASE + HEAP_SIZE

	VGA_BASE = 0xB8000 // VGA text buffer of 16-bit cells.
	VGA_COLS = 80
	VGA_ROWS = 25

	MMIO_BASE = 0xFFFF0000 // Device register block.
	MMIO_SIZE = 0x100
	TIMER_REG = MMIO_BASE // 32-bit timer tick register.
)

var _machine_defines = map[string]string{
	"VECTOR_BASE":  fmt.Sprintf("0x%x", VECTOR_BASE),
	"VECTOR_COUNT": fmt.Sprintf("%v", VECTOR_COUNT),
	"HEAP_BASE":    fmt.Sprintf("0x%x", HEAP_BASE),
	"HEAP_SIZE":    fmt.Sprintf("0x%x", HEAP_SIZE),
	"VGA_BASE":     fmt.Sprintf("0x%x", VGA_BASE),
	"TIMER_REG":    fmt.Sprintf("0x%x", TIMER_REG),
}

// Descriptor flags byte bits.
const (
	FLAGS_PRESENT = 0x80 // Descriptor is valid.
	FLAGS_RING_3  = 0x60 // Callable from ring 3.
	FLAGS_GATE    = 0x0E // 32-bit gate type.
)

var _flags_defines = map[string]string{
	"FLAGS_PRESENT": fmt.Sprintf("0x%x", FLAGS_PRESENT),
	"FLAGS_RING_3":  fmt.Sprintf("0x%x", FLAGS_RING_3),
	"FLAGS_GATE":    fmt.Sprintf("0x%x", FLAGS_GATE),
}

// Machine state. RAM + VGA text window + device registers + heap.
type Machine struct {
	Verbose bool // If set, enables verbose logging.

	Ram  *mem.Space // RAM: vector table and heap.
	Vga  *mem.Space // Text window backing store.
	Mmio *mem.Space // Device register block backing store.

	Heap  *arena.Arena // Bump allocator over the heap region.
	Timer *port.Port   // Timer register handle.

	descriptor *record.Layout
}

// NewMachine creates a machine with the standard memory map.
func NewMachine() (ma *Machine, err error) {
	ma = &Machine{
		descriptor: record.Descriptor(),
	}

	ma.Ram, err = mem.NewSpace(0, RAM_SIZE)
	if err != nil {
		return
	}
	ma.Vga, err = mem.NewSpace(VGA_BASE, VGA_COLS*VGA_ROWS*2)
	if err != nil {
		return
	}
	ma.Mmio, err = mem.NewSpace(MMIO_BASE, MMIO_SIZE)
	if err != nil {
		return
	}

	ma.Heap, err = arena.NewArena(mem.Region{Start: HEAP_BASE, Size: HEAP_SIZE})
	if err != nil {
		return
	}

	ma.Timer, err = port.NewPort(ma.Mmio, mem.Addr{
		Address: TIMER_REG,
		Bits:    32,
		Order:   mem.LITTLE_ENDIAN,
	})
	return
}

// Defines returns an iterator over all of the machine's exported
// constants, for use as layout parser predefines.
func (ma *Machine) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		maps.All(_machine_defines),
		maps.All(_flags_defines),
	)
}

// Reset zeroes all memory and replaces the heap with a fresh arena.
// Reboot semantics: the old arena stays init-once; the machine simply
// stops referencing it.
func (ma *Machine) Reset() (err error) {
	ma.Ram.Reset()
	ma.Vga.Reset()
	ma.Mmio.Reset()

	ma.Heap, err = arena.NewArena(mem.Region{Start: HEAP_BASE, Size: HEAP_SIZE})
	return
}

// StoreRecord encodes a record and writes it at `address` in RAM.
func (ma *Machine) StoreRecord(address uint64, ly *record.Layout, rec record.Record) (err error) {
	b, err := ly.Encode(rec)
	if err != nil {
		return
	}
	return ma.Ram.WriteBytes(address, b)
}

// LoadRecord reads a record's bytes at `address` in RAM and decodes it.
func (ma *Machine) LoadRecord(address uint64, ly *record.Layout) (rec record.Record, err error) {
	b, err := ma.Ram.ReadBytes(address, uint64(ly.Size()))
	if err != nil {
		return
	}
	return ly.Decode(b)
}

// AllocRecord reserves heap space for one record of the layout and
// returns the granted region.
func (ma *Machine) AllocRecord(ly *record.Layout) (rg mem.Region, err error) {
	return ma.Heap.Allocate(uint64(ly.Size()))
}

// StoreDescriptor encodes a descriptor record into a vector table slot.
func (ma *Machine) StoreDescriptor(slot uint, rec record.Record) (err error) {
	if slot >= VECTOR_COUNT {
		return ErrBadSlot
	}

	if ma.Verbose {
		log.Printf("vector %v: %+v\n", slot, rec)
	}

	address := uint64(VECTOR_BASE) + uint64(slot)*uint64(ma.descriptor.Size())
	return ma.StoreRecord(address, ma.descriptor, rec)
}

// LoadDescriptor decodes the descriptor record in a vector table slot.
func (ma *Machine) LoadDescriptor(slot uint) (rec record.Record, err error) {
	if slot >= VECTOR_COUNT {
		err = ErrBadSlot
		return
	}

	address := uint64(VECTOR_BASE) + uint64(slot)*uint64(ma.descriptor.Size())
	return ma.LoadRecord(address, ma.descriptor)
}

// TickTimer advances the timer register by one tick, modeling the device
// side of the port.
func (ma *Machine) TickTimer() {
	ma.Timer.Write(ma.Timer.Read() + 1)
}

// WriteText stores one character cell into the text window.
func (ma *Machine) WriteText(col uint, row uint, ch byte, attr byte) (err error) {
	if col >= VGA_COLS || row >= VGA_ROWS {
		return ErrBadCell
	}

	address := uint64(VGA_BASE) + 2*(uint64(row)*VGA_COLS+uint64(col))
	return ma.Vga.Write16(address, uint16(attr)<<8|uint16(ch), mem.LITTLE_ENDIAN)
}

// ReadText loads one character cell from the text window.
func (ma *Machine) ReadText(col uint, row uint) (ch byte, attr byte, err error) {
	if col >= VGA_COLS || row >= VGA_ROWS {
		err = ErrBadCell
		return
	}

	address := uint64(VGA_BASE) + 2*(uint64(row)*VGA_COLS+uint64(col))
	cell, err := ma.Vga.Read16(address, mem.LITTLE_ENDIAN)
	ch = byte(cell)
	attr = byte(cell >> 8)
	return
}
