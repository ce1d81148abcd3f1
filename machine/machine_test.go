// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ucore/arena"
	"github.com/ezrec/ucore/mem"
	"github.com/ezrec/ucore/record"
)

func TestMachine(t *testing.T) {
	assert := assert.New(t)

	ma, err := NewMachine()
	assert.NoError(err)

	assert.False(ma.Verbose)
	assert.Equal(uint64(HEAP_SIZE), ma.Heap.Capacity())
	assert.Equal(uint(32), ma.Timer.Bits())
}

func TestMachine_Descriptors(t *testing.T) {
	assert := assert.New(t)

	ma, err := NewMachine()
	assert.NoError(err)

	rec := record.Record{
		"offset_lo": 0x1234,
		"selector":  0x0008,
		"reserved":  0,
		"flags":     FLAGS_PRESENT | FLAGS_GATE,
		"offset_hi": 0x0800,
	}

	err = ma.StoreDescriptor(2, rec)
	assert.NoError(err)

	// The slot holds the exact packed bytes.
	b, err := ma.Ram.ReadBytes(VECTOR_BASE+2*8, 8)
	assert.NoError(err)
	assert.Equal([]byte{0x34, 0x12, 0x08, 0x00, 0x00, 0x8E, 0x00, 0x08}, b)

	back, err := ma.LoadDescriptor(2)
	assert.NoError(err)
	assert.Equal(rec, back)

	// Neighboring slots stay zero.
	neighbor, err := ma.LoadDescriptor(3)
	assert.NoError(err)
	assert.Equal(uint64(0), neighbor["flags"])

	err = ma.StoreDescriptor(VECTOR_COUNT, rec)
	assert.ErrorIs(err, ErrBadSlot)

	_, err = ma.LoadDescriptor(VECTOR_COUNT)
	assert.ErrorIs(err, ErrBadSlot)
}

func TestMachine_HeapRecords(t *testing.T) {
	assert := assert.New(t)

	ma, err := NewMachine()
	assert.NoError(err)

	ly := record.Descriptor()

	rg, err := ma.AllocRecord(ly)
	assert.NoError(err)
	assert.Equal(uint64(HEAP_BASE), rg.Start)
	assert.Equal(uint64(8), rg.Size)

	rec := record.Record{"offset_lo": 0xBEEF, "flags": 0x8E}
	err = ma.StoreRecord(rg.Start, ly, rec)
	assert.NoError(err)

	back, err := ma.LoadRecord(rg.Start, ly)
	assert.NoError(err)
	assert.Equal(uint64(0xBEEF), back["offset_lo"])
	assert.Equal(uint64(0x8E), back["flags"])

	// The next record lands just past the first.
	rg, err = ma.AllocRecord(ly)
	assert.NoError(err)
	assert.Equal(uint64(HEAP_BASE+8), rg.Start)

	// Exhaust the heap.
	_, err = ma.Heap.Allocate(HEAP_SIZE)
	assert.ErrorIs(err, arena.ErrOutOfMemory)
}

func TestMachine_Timer(t *testing.T) {
	assert := assert.New(t)

	ma, err := NewMachine()
	assert.NoError(err)

	assert.Equal(uint64(0), ma.Timer.Read())

	ma.TickTimer()
	ma.TickTimer()
	assert.Equal(uint64(2), ma.Timer.Read())

	// A device-side change between reads is observed.
	copy(ma.Mmio.Bytes(), []byte{0xFF, 0x00, 0x00, 0x00})
	assert.Equal(uint64(0xFF), ma.Timer.Read())
}

func TestMachine_Text(t *testing.T) {
	assert := assert.New(t)

	ma, err := NewMachine()
	assert.NoError(err)

	// White-on-black 'A' in the top-left cell.
	err = ma.WriteText(0, 0, 'A', 0x0F)
	assert.NoError(err)

	cell, err := ma.Vga.Read16(VGA_BASE, mem.LITTLE_ENDIAN)
	assert.NoError(err)
	assert.Equal(uint16(0x0F00|'A'), cell)

	ch, attr, err := ma.ReadText(0, 0)
	assert.NoError(err)
	assert.Equal(byte('A'), ch)
	assert.Equal(byte(0x0F), attr)

	err = ma.WriteText(VGA_COLS, 0, 'X', 0)
	assert.ErrorIs(err, ErrBadCell)

	_, _, err = ma.ReadText(0, VGA_ROWS)
	assert.ErrorIs(err, ErrBadCell)
}

func TestMachine_Defines(t *testing.T) {
	assert := assert.New(t)

	ma, err := NewMachine()
	assert.NoError(err)

	defines := maps.Collect(ma.Defines())
	assert.Equal("0xb8000", defines["VGA_BASE"])
	assert.Equal("0xffff0000", defines["TIMER_REG"])
	assert.Equal("0x80", defines["FLAGS_PRESENT"])
}

func TestMachine_Reset(t *testing.T) {
	assert := assert.New(t)

	ma, err := NewMachine()
	assert.NoError(err)

	_, err = ma.Heap.Allocate(16)
	assert.NoError(err)

	err = ma.StoreDescriptor(0, record.Record{"flags": 0x8E})
	assert.NoError(err)

	err = ma.Reset()
	assert.NoError(err)

	assert.Equal(uint64(0), ma.Heap.Used())

	rec, err := ma.LoadDescriptor(0)
	assert.NoError(err)
	assert.Equal(uint64(0), rec["flags"])
}
