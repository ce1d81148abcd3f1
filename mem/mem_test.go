package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpace_WidthAccess(t *testing.T) {
	assert := assert.New(t)

	sp, err := NewSpace(0x1000, 0x100)
	assert.NoError(err)

	err = sp.Write32(0x1000, 0x12345678, LITTLE_ENDIAN)
	assert.NoError(err)

	// The same bytes, read back at every width and order.
	v8, err := sp.Read8(0x1000)
	assert.NoError(err)
	assert.Equal(uint8(0x78), v8)

	v16, err := sp.Read16(0x1000, LITTLE_ENDIAN)
	assert.NoError(err)
	assert.Equal(uint16(0x5678), v16)

	v16, err = sp.Read16(0x1000, BIG_ENDIAN)
	assert.NoError(err)
	assert.Equal(uint16(0x7856), v16)

	v32, err := sp.Read32(0x1000, BIG_ENDIAN)
	assert.NoError(err)
	assert.Equal(uint32(0x78563412), v32)

	err = sp.Write64(0x1008, 0x1122334455667788, BIG_ENDIAN)
	assert.NoError(err)

	v64, err := sp.Read64(0x1008, BIG_ENDIAN)
	assert.NoError(err)
	assert.Equal(uint64(0x1122334455667788), v64)

	b, err := sp.ReadBytes(0x1008, 2)
	assert.NoError(err)
	assert.Equal([]byte{0x11, 0x22}, b)
}

func TestSpace_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	sp, err := NewSpace(0x1000, 0x10)
	assert.NoError(err)

	table := [](struct {
		Address uint64
		Size    uint64
	}){
		{Address: 0x0fff, Size: 1},
		{Address: 0x1010, Size: 1},
		{Address: 0x100f, Size: 2},
		{Address: 0x100d, Size: 4},
		{Address: 0x1009, Size: 8},
	}

	for _, testcase := range table {
		_, err := sp.ReadBytes(testcase.Address, testcase.Size)
		assert.ErrorIs(err, ErrOutOfRange{}, "%+v", testcase)
	}

	_, err = sp.Read32(0x100d, LITTLE_ENDIAN)
	assert.ErrorIs(err, ErrOutOfRange{})

	err = sp.Write16(0x100f, 0xffff, LITTLE_ENDIAN)
	assert.ErrorIs(err, ErrOutOfRange{})
}

func TestSpace_Reset(t *testing.T) {
	assert := assert.New(t)

	sp, err := NewSpace(0, 8)
	assert.NoError(err)

	err = sp.WriteBytes(0, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	assert.NoError(err)

	sp.Reset()

	v64, err := sp.Read64(0, LITTLE_ENDIAN)
	assert.NoError(err)
	assert.Equal(uint64(0), v64)
}

func TestSpace_BadSpace(t *testing.T) {
	assert := assert.New(t)

	_, err := NewSpace(0, 0)
	assert.ErrorIs(err, ErrBadRegion)
}
