package mem

// Addr binds an integer address to a fixed access width and byte order,
// so that every access site states its interpretation explicitly.
type Addr struct {
	Address uint64 // Raw address.
	Bits    uint   // Access width: 8, 16, 32 or 64.
	Order   Order  // Byte order for multi-byte widths.
}

// Add returns the address advanced by `offset` bytes, same width and order.
func (a Addr) Add(offset uint64) Addr {
	a.Address += offset
	return a
}

// Load reads the value at the address, width-dispatched.
func (a Addr) Load(sp *Space) (value uint64, err error) {
	switch a.Bits {
	case 8:
		var v8 uint8
		v8, err = sp.Read8(a.Address)
		value = uint64(v8)
	case 16:
		var v16 uint16
		v16, err = sp.Read16(a.Address, a.Order)
		value = uint64(v16)
	case 32:
		var v32 uint32
		v32, err = sp.Read32(a.Address, a.Order)
		value = uint64(v32)
	case 64:
		value, err = sp.Read64(a.Address, a.Order)
	default:
		err = ErrBadWidth
	}
	return
}

// Store writes the value at the address, width-dispatched. Bits above the
// access width are discarded.
func (a Addr) Store(sp *Space, value uint64) (err error) {
	switch a.Bits {
	case 8:
		err = sp.Write8(a.Address, uint8(value))
	case 16:
		err = sp.Write16(a.Address, uint16(value), a.Order)
	case 32:
		err = sp.Write32(a.Address, uint32(value), a.Order)
	case 64:
		err = sp.Write64(a.Address, value, a.Order)
	default:
		err = ErrBadWidth
	}
	return
}

// Reinterpret reads the same span of bytes at two different widths and
// returns both groupings. The span covers the wider of the two widths.
// Nothing is mutated; this exists to make width reinterpretation
// observable in tests and documentation.
func Reinterpret(sp *Space, address uint64, fromBits uint, toBits uint, order Order) (from []uint64, to []uint64, err error) {
	switch fromBits {
	case 8, 16, 32, 64:
	default:
		err = ErrBadWidth
		return
	}
	switch toBits {
	case 8, 16, 32, 64:
	default:
		err = ErrBadWidth
		return
	}

	span := max(fromBits, toBits) / 8

	group := func(bits uint) (values []uint64, err error) {
		addr := Addr{Address: address, Bits: bits, Order: order}
		for n := uint64(0); n < uint64(span); n += uint64(bits / 8) {
			var value uint64
			value, err = addr.Add(n).Load(sp)
			if err != nil {
				return
			}
			values = append(values, value)
		}
		return
	}

	from, err = group(fromBits)
	if err != nil {
		return
	}
	to, err = group(toBits)
	return
}
