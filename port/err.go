package port

import (
	"errors"

	"github.com/ezrec/ucore/translate"
)

var f = translate.From

var (
	// Port binding errors
	ErrBadWidth  = errors.New(f("register width must be 8, 16, 32 or 64 bits"))
	ErrUnaligned = errors.New(f("register address not naturally aligned"))
)
