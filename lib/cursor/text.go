// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cursor

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// String encoding kinds used by the slot format.
const (
	KindText8  uint8 = 0
	KindText16 uint8 = 1
)

var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// KindString reads a slot string: a one-byte encoding kind followed by
// a 32-bit length and the encoded text. For 8-bit text the length is a
// byte count; for UTF-16 it is a count of 16-bit code units. UTF-16
// text is transcoded to UTF-8.
func (r *Reader) KindString() string {
	start := r.offset
	kind := r.Uint8()
	if r.err != nil {
		return ""
	}
	switch kind {
	case KindText8:
		n := int(r.Int32())
		b := r.take(n)
		if b == nil {
			return ""
		}
		return string(b)
	case KindText16:
		units := int(r.Int32())
		if r.err != nil {
			return ""
		}
		if units < 0 {
			r.err = fmt.Errorf("%w: %d code units at offset %d", ErrInvalidLength, units, start)
			return ""
		}
		b := r.take(units * 2)
		if b == nil {
			return ""
		}
		decoded, err := utf16Decoder.NewDecoder().Bytes(b)
		if err != nil {
			r.err = fmt.Errorf("decoding UTF-16 string at offset %d: %w", start, err)
			return ""
		}
		return string(decoded)
	default:
		r.err = fmt.Errorf("%w: %d at offset %d", ErrUnsupportedStringKind, kind, start)
		return ""
	}
}

// KindString writes s as 8-bit slot text: kind 0, a 32-bit byte length,
// then the bytes.
func (w *Writer) KindString(s string) {
	w.Uint8(KindText8)
	w.Int32(int32(len(s)))
	w.Raw([]byte(s))
}

// KindStringSize returns the number of bytes [Writer.KindString] emits
// for s.
func KindStringSize(s string) int {
	return 1 + 4 + len(s)
}
