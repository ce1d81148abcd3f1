package record

// Descriptor is the 8-byte interrupt-gate style record layout used by the
// machine's vector table: two 16-bit handler offset halves split around a
// segment selector, a reserved byte, and a flags byte. Field values encode
// little-endian within their byte spans, and the encoded form is exactly
// 8 bytes for every field assignment.
func Descriptor() *Layout {
	ly, err := NewLayout(
		Field{Name: "offset_lo", Offset: 0, Bits: 16},
		Field{Name: "selector", Offset: 2, Bits: 16},
		Field{Name: "reserved", Offset: 4, Bits: 8},
		Field{Name: "flags", Offset: 5, Bits: 8},
		Field{Name: "offset_hi", Offset: 6, Bits: 16},
	)
	if err != nil {
		panic(err)
	}
	return ly
}
