package mem

import (
	"errors"

	"github.com/ezrec/ucore/translate"
)

var f = translate.From

var (
	// Region errors
	ErrBadRegion = errors.New(f("bad region"))
	ErrBadWidth  = errors.New(f("bad access width"))
)

// ErrOutOfRange reports an access outside the space's backing region.
type ErrOutOfRange struct {
	Address uint64
	Bits    uint
}

func (err ErrOutOfRange) Error() string {
	return f("address 0x%x (%d bit) out of range", err.Address, err.Bits)
}

func (err ErrOutOfRange) Is(target error) (ok bool) {
	_, ok = target.(ErrOutOfRange)
	return
}
