// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package record

import (
	"reflect"

	"github.com/modern-go/reflect2"
)

// kindBits maps unsigned integer kinds to their bit widths.
var kindBits = map[reflect.Kind]uint{
	reflect.Uint8:  8,
	reflect.Uint16: 16,
	reflect.Uint32: 32,
	reflect.Uint64: 64,
}

// Binder pairs a layout with a Go struct type, so records can be encoded
// from and decoded into plain structs. Layout fields match struct fields
// by `record:"..."` tag, or by exact field name when untagged.
type Binder struct {
	layout *Layout
	typ    reflect2.Type
	field  map[string]reflect2.StructField
}

// Bind validates that every layout field has an unsigned integer struct
// field at least as wide, and returns the binder. The prototype may be a
// struct value or a pointer to one.
func Bind(ly *Layout, prototype any) (bd *Binder, err error) {
	typ := reflect2.TypeOf(prototype)
	if typ.Kind() == reflect.Ptr {
		typ = typ.(reflect2.PtrType).Elem()
	}
	st, ok := typ.(reflect2.StructType)
	if !ok {
		err = ErrBindStruct
		return
	}

	// Index struct fields by their record name.
	byName := map[string]reflect2.StructField{}
	for n := 0; n < st.NumField(); n++ {
		sf := st.Field(n)
		name := sf.Tag().Get("record")
		if name == "" {
			name = sf.Name()
		}
		byName[name] = sf
	}

	bd = &Binder{
		layout: ly,
		typ:    typ,
		field:  map[string]reflect2.StructField{},
	}

	for fd := range ly.Fields() {
		sf, ok := byName[fd.Name]
		if !ok {
			bd = nil
			err = ErrBindField(fd.Name)
			return
		}
		bits, ok := kindBits[sf.Type().Kind()]
		if !ok || bits < fd.Bits {
			bd = nil
			err = ErrBindField(fd.Name)
			return
		}
		bd.field[fd.Name] = sf
	}
	return
}

// Layout is the bound layout.
func (bd *Binder) Layout() *Layout {
	return bd.layout
}

// check verifies that obj is a pointer to the bound struct type.
func (bd *Binder) check(obj any) (err error) {
	typ := reflect2.TypeOf(obj)
	pt, ok := typ.(reflect2.PtrType)
	if !ok || pt.Elem().Type1() != bd.typ.Type1() {
		err = ErrBindStruct
	}
	return
}

// Encode reads the bound struct fields and encodes them per the layout.
// obj must be a pointer to the bound struct type.
func (bd *Binder) Encode(obj any) (b []byte, err error) {
	err = bd.check(obj)
	if err != nil {
		return
	}

	rec := Record{}
	for name, sf := range bd.field {
		switch sf.Type().Kind() {
		case reflect.Uint8:
			rec[name] = uint64(*sf.Get(obj).(*uint8))
		case reflect.Uint16:
			rec[name] = uint64(*sf.Get(obj).(*uint16))
		case reflect.Uint32:
			rec[name] = uint64(*sf.Get(obj).(*uint32))
		case reflect.Uint64:
			rec[name] = *sf.Get(obj).(*uint64)
		}
	}
	return bd.layout.Encode(rec)
}

// Decode decodes the buffer per the layout and assigns the bound struct
// fields. obj must be a pointer to the bound struct type.
func (bd *Binder) Decode(b []byte, obj any) (err error) {
	err = bd.check(obj)
	if err != nil {
		return
	}

	rec, err := bd.layout.Decode(b)
	if err != nil {
		return
	}

	for name, sf := range bd.field {
		value := rec[name]
		switch sf.Type().Kind() {
		case reflect.Uint8:
			v := uint8(value)
			sf.Set(obj, &v)
		case reflect.Uint16:
			v := uint16(value)
			sf.Set(obj, &v)
		case reflect.Uint32:
			v := uint32(value)
			sf.Set(obj, &v)
		case reflect.Uint64:
			v := value
			sf.Set(obj, &v)
		}
	}
	return
}
