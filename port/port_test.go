package port

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ucore/mem"
)

func newSpace(t *testing.T) *mem.Space {
	sp, err := mem.NewSpace(0xFFFF0000, 0x100)
	assert.NoError(t, err)
	return sp
}

func TestPort_Freshness(t *testing.T) {
	assert := assert.New(t)

	sp := newSpace(t)
	p, err := NewPort(sp, mem.Addr{Address: 0xFFFF0000, Bits: 32, Order: mem.LITTLE_ENDIAN})
	assert.NoError(err)

	assert.Equal(uint64(0), p.Read())

	// The device changes the register between reads; the second read
	// must observe it.
	copy(sp.Bytes(), []byte{0x78, 0x56, 0x34, 0x12})
	assert.Equal(uint64(0x12345678), p.Read())

	copy(sp.Bytes(), []byte{0x79, 0x56, 0x34, 0x12})
	assert.Equal(uint64(0x12345679), p.Read())
}

func TestPort_WriteVisible(t *testing.T) {
	assert := assert.New(t)

	sp := newSpace(t)
	p, err := NewPort(sp, mem.Addr{Address: 0xFFFF0010, Bits: 32, Order: mem.LITTLE_ENDIAN})
	assert.NoError(err)

	p.Write(0xCAFEBABE)
	assert.Equal([]byte{0xBE, 0xBA, 0xFE, 0xCA}, sp.Bytes()[0x10:0x14])
	assert.Equal(uint64(0xCAFEBABE), p.Read())

	// Writes are not coalesced; each store lands.
	p.Write(0x1)
	p.Write(0x2)
	assert.Equal(uint64(0x2), p.Read())
}

func TestPort_SubWord(t *testing.T) {
	assert := assert.New(t)

	sp := newSpace(t)
	copy(sp.Bytes()[0x20:], []byte{0x11, 0x22, 0x33, 0x44})

	p8, err := NewPort(sp, mem.Addr{Address: 0xFFFF0021, Bits: 8})
	assert.NoError(err)
	assert.Equal(uint64(0x22), p8.Read())

	// Writing one byte register leaves its word neighbors alone.
	p8.Write(0xEE)
	assert.Equal([]byte{0x11, 0xEE, 0x33, 0x44}, sp.Bytes()[0x20:0x24])

	p16, err := NewPort(sp, mem.Addr{Address: 0xFFFF0022, Bits: 16, Order: mem.LITTLE_ENDIAN})
	assert.NoError(err)
	assert.Equal(uint64(0x4433), p16.Read())

	p16.Write(0xBEEF)
	assert.Equal([]byte{0x11, 0xEE, 0xEF, 0xBE}, sp.Bytes()[0x20:0x24])
}

func TestPort_Wide(t *testing.T) {
	assert := assert.New(t)

	sp := newSpace(t)
	p, err := NewPort(sp, mem.Addr{Address: 0xFFFF0040, Bits: 64, Order: mem.BIG_ENDIAN})
	assert.NoError(err)

	p.Write(0x0102030405060708)
	assert.Equal([]byte{1, 2, 3, 4, 5, 6, 7, 8}, sp.Bytes()[0x40:0x48])
	assert.Equal(uint64(0x0102030405060708), p.Read())
}

func TestPort_UnalignedBase(t *testing.T) {
	assert := assert.New(t)

	// A space mapped at an unaligned base skews every guest address off
	// its backing-store offset; wide registers must be rejected even when
	// the guest address itself is naturally aligned.
	sp, err := mem.NewSpace(0xFFFF0002, 0x20)
	assert.NoError(err)

	_, err = NewPort(sp, mem.Addr{Address: 0xFFFF0008, Bits: 64, Order: mem.LITTLE_ENDIAN})
	assert.ErrorIs(err, ErrUnaligned)

	_, err = NewPort(sp, mem.Addr{Address: 0xFFFF0008, Bits: 32, Order: mem.LITTLE_ENDIAN})
	assert.ErrorIs(err, ErrUnaligned)

	// Byte registers have no alignment to violate.
	p, err := NewPort(sp, mem.Addr{Address: 0xFFFF0008, Bits: 8})
	assert.NoError(err)
	p.Write(0x5A)
	assert.Equal(uint64(0x5A), p.Read())
}

func TestPort_Binding(t *testing.T) {
	assert := assert.New(t)

	sp := newSpace(t)

	table := [](struct {
		Addr mem.Addr
		Err  error
	}){
		{Addr: mem.Addr{Address: 0xFFFF0000, Bits: 12}, Err: ErrBadWidth},
		{Addr: mem.Addr{Address: 0xFFFF0001, Bits: 16}, Err: ErrUnaligned},
		{Addr: mem.Addr{Address: 0xFFFF0002, Bits: 32}, Err: ErrUnaligned},
		{Addr: mem.Addr{Address: 0xFFFF0004, Bits: 64}, Err: ErrUnaligned},
		{Addr: mem.Addr{Address: 0xFFFF0100, Bits: 8}, Err: mem.ErrOutOfRange{}},
		{Addr: mem.Addr{Address: 0xFFFE0000, Bits: 32}, Err: mem.ErrOutOfRange{}},
		{Addr: mem.Addr{Address: 0xFFFF00FC, Bits: 32}, Err: nil},
	}

	for _, testcase := range table {
		p, err := NewPort(sp, testcase.Addr)
		if testcase.Err == nil {
			assert.NoError(err, "%+v", testcase)
			assert.NotNil(p, "%+v", testcase)
		} else {
			assert.ErrorIs(err, testcase.Err, "%+v", testcase)
			assert.Nil(p, "%+v", testcase)
		}
	}
}
