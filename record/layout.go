// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package record

import (
	"iter"
	"slices"
)

// Field is one member of a packed record layout.
type Field struct {
	Name      string
	Offset    uint // Byte offset of the field's first byte.
	Bits      uint // Bit width, 1..64.
	BitOffset uint // Bit position within the byte span (0 for whole bytes).
}

// lo is the field's first bit, numbered LSB-first across the buffer.
func (fd Field) lo() uint {
	return fd.Offset*8 + fd.BitOffset
}

// hi is the first bit past the field.
func (fd Field) hi() uint {
	return fd.lo() + fd.Bits
}

// mask is the field's value mask.
func (fd Field) mask() uint64 {
	if fd.Bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << fd.Bits) - 1
}

// Layout is a validated, ordered packed-record description. Layouts are
// immutable once constructed.
type Layout struct {
	fields []Field
	size   uint
}

// NewLayout validates the field set and constructs a layout. Fields are
// kept in ascending bit position, so bitfields sharing a byte always
// combine in a deterministic order.
func NewLayout(fields ...Field) (ly *Layout, err error) {
	if len(fields) == 0 {
		err = ErrNoFields
		return
	}

	ordered := slices.Clone(fields)
	slices.SortStableFunc(ordered, func(a, b Field) int {
		return int(a.lo()) - int(b.lo())
	})

	names := map[string]bool{}
	var size uint
	for n, fd := range ordered {
		if fd.Bits == 0 || fd.Bits > 64 {
			err = ErrFieldWidth
			return
		}
		if names[fd.Name] {
			err = ErrFieldDuplicate
			return
		}
		names[fd.Name] = true

		if n > 0 && fd.lo() < ordered[n-1].hi() {
			err = ErrFieldOverlap{A: ordered[n-1].Name, B: fd.Name}
			return
		}

		size = max(size, (fd.hi()+7)/8)
	}

	ly = &Layout{fields: ordered, size: size}
	return
}

// Size is the fixed total byte size of the encoded record.
func (ly *Layout) Size() uint {
	return ly.size
}

// Fields iterates the layout's fields in ascending bit position.
func (ly *Layout) Fields() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for _, fd := range ly.fields {
			if !yield(fd) {
				return
			}
		}
	}
}

// Lookup finds a field by name.
func (ly *Layout) Lookup(name string) (fd Field, ok bool) {
	for _, fd = range ly.fields {
		if fd.Name == name {
			ok = true
			return
		}
	}
	fd = Field{}
	return
}
