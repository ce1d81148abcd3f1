package arena

import (
	"errors"

	"github.com/ezrec/ucore/translate"
)

var f = translate.From

var (
	// Arena errors
	ErrOutOfMemory        = errors.New(f("out of memory"))
	ErrAlreadyInitialized = errors.New(f("arena already initialized"))
	ErrNotInitialized     = errors.New(f("arena not initialized"))
	ErrZeroSize           = errors.New(f("zero size allocation"))
	ErrBadAlign           = errors.New(f("alignment must be a power of two"))
)
