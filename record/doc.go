// Package record converts between field-value records and their exact
// fixed-byte binary layouts, matching a hardware or protocol specification
// byte for byte.
//
// A Layout is an explicit description of every field's byte offset, bit
// offset, and bit width. The codec never relies on Go's native struct
// layout, compiler bitfield allocation, or implicit padding: the encoded
// form of a layout is the same on every platform, and every bit of it is
// defined (bits not claimed by a field encode as zero).
//
// Values that exceed their field's declared bit width fail the encode with
// ErrFieldOverflow rather than being truncated; silent truncation at a
// hardware boundary hides real bugs. EncodeTruncate is the opt-in
// truncating variant for callers that want the masking behavior.
package record
