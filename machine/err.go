package machine

import (
	"errors"

	"github.com/ezrec/ucore/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrBadSlot = errors.New(f("vector slot out of range"))
	ErrBadCell = errors.New(f("text cell out of range"))
)
