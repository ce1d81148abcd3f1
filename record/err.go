package record

import (
	"errors"

	"github.com/ezrec/ucore/translate"
)

var f = translate.From

var (
	// Layout errors
	ErrNoFields       = errors.New(f("layout has no fields"))
	ErrFieldWidth     = errors.New(f("field width must be 1..64 bits"))
	ErrFieldDuplicate = errors.New(f("field duplicated"))

	// Layout definition parser errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrFieldSyntax     = errors.New(f("field syntax"))
)

// ErrFieldOverlap reports two layout fields claiming the same bits.
type ErrFieldOverlap struct {
	A string
	B string
}

func (err ErrFieldOverlap) Error() string {
	return f("fields %v and %v overlap", err.A, err.B)
}

func (err ErrFieldOverlap) Is(target error) (ok bool) {
	_, ok = target.(ErrFieldOverlap)
	return
}

// ErrFieldOverflow reports a value that does not fit its field's bit width.
type ErrFieldOverflow struct {
	Name  string
	Value uint64
	Bits  uint
}

func (err ErrFieldOverflow) Error() string {
	return f("field %v value 0x%x exceeds %d bits", err.Name, err.Value, err.Bits)
}

func (err ErrFieldOverflow) Is(target error) (ok bool) {
	_, ok = target.(ErrFieldOverflow)
	return
}

// ErrTruncatedInput reports a decode buffer shorter than the layout.
type ErrTruncatedInput struct {
	Got  uint
	Want uint
}

func (err ErrTruncatedInput) Error() string {
	return f("input is %d bytes, layout needs %d", err.Got, err.Want)
}

func (err ErrTruncatedInput) Is(target error) (ok bool) {
	_, ok = target.(ErrTruncatedInput)
	return
}

// ErrFieldUnknown names a record key with no layout field.
type ErrFieldUnknown string

func (err ErrFieldUnknown) Error() string {
	return f("field %v not in layout", string(err))
}

// ErrBindField names a layout field with no usable struct counterpart.
type ErrBindField string

func (err ErrBindField) Error() string {
	return f("field %v has no unsigned struct field", string(err))
}

// ErrBindStruct reports a Bind prototype that is not a struct.
var ErrBindStruct = errors.New(f("prototype is not a struct"))

// ErrParseExpression reports a $(...) expression that did not evaluate
// to an integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrEquateCycle names an equate whose definition refers back to itself.
type ErrEquateCycle string

func (err ErrEquateCycle) Error() string {
	return f(".equ %v is circular", string(err))
}

// ErrParseNumber reports a token that is neither a number, an equate,
// nor a define.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrSyntax locates a parse error within the layout definition.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
