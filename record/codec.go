// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package record

// Record is a field-value assignment for a layout.
type Record map[string]uint64

// deposit OR-accumulates the low `bits` of `value` into the buffer at bit
// position `lo`, LSB first.
func deposit(b []byte, lo uint, bits uint, value uint64) {
	for n := range bits {
		if value&(1<<n) != 0 {
			pos := lo + n
			b[pos/8] |= 1 << (pos % 8)
		}
	}
}

// extract reads `bits` bits from the buffer at bit position `lo`, LSB first.
func extract(b []byte, lo uint, bits uint) (value uint64) {
	for n := range bits {
		pos := lo + n
		if b[pos/8]&(1<<(pos%8)) != 0 {
			value |= 1 << n
		}
	}
	return
}

// Encode produces the record's exact binary form: always Size() bytes,
// every unclaimed bit zero. A record key with no layout field fails with
// ErrFieldUnknown; a value wider than its field fails with
// ErrFieldOverflow. Fields absent from the record encode as zero.
func (ly *Layout) Encode(rec Record) (b []byte, err error) {
	for name := range rec {
		if _, ok := ly.Lookup(name); !ok {
			err = ErrFieldUnknown(name)
			return
		}
	}

	b = make([]byte, ly.size)
	for _, fd := range ly.fields {
		value := rec[fd.Name]
		if value&^fd.mask() != 0 {
			b = nil
			err = ErrFieldOverflow{Name: fd.Name, Value: value, Bits: fd.Bits}
			return
		}
		deposit(b, fd.lo(), fd.Bits, value)
	}
	return
}

// EncodeTruncate is Encode with overflowing values silently masked to
// their field width. Callers opting in accept that out-of-range values
// lose their high bits.
func (ly *Layout) EncodeTruncate(rec Record) (b []byte, err error) {
	for name := range rec {
		if _, ok := ly.Lookup(name); !ok {
			err = ErrFieldUnknown(name)
			return
		}
	}

	b = make([]byte, ly.size)
	for _, fd := range ly.fields {
		deposit(b, fd.lo(), fd.Bits, rec[fd.Name]&fd.mask())
	}
	return
}

// Decode recovers the record from its binary form. The buffer must hold at
// least Size() bytes; a shorter buffer fails with ErrTruncatedInput.
// Extra trailing bytes are ignored.
func (ly *Layout) Decode(b []byte) (rec Record, err error) {
	if uint(len(b)) < ly.size {
		err = ErrTruncatedInput{Got: uint(len(b)), Want: ly.size}
		return
	}

	rec = Record{}
	for _, fd := range ly.fields {
		rec[fd.Name] = extract(b, fd.lo(), fd.Bits)
	}
	return
}
