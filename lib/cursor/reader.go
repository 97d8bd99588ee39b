// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cursor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEndOfStream is returned when a read needs more bytes than
	// remain in the buffer.
	ErrEndOfStream = errors.New("end of stream")

	// ErrInvalidLength is returned when a length or element count
	// prefix is negative.
	ErrInvalidLength = errors.New("invalid length prefix")

	// ErrUnsupportedStringKind is returned when a slot string carries
	// an encoding kind other than 8-bit or UTF-16 text.
	ErrUnsupportedStringKind = errors.New("unsupported string encoding kind")
)

// Reader reads fixed-width values sequentially from a byte slice.
type Reader struct {
	data   []byte
	offset int
	order  binary.ByteOrder
	err    error
}

// NewReader returns a Reader positioned at the start of data that
// decodes multi-byte values in the given byte order.
func NewReader(data []byte, order binary.ByteOrder) *Reader {
	return &Reader{data: data, order: order}
}

// Err returns the first error encountered by any read, or nil.
func (r *Reader) Err() error {
	return r.err
}

// SetError records err as the reader's error if no error has been
// recorded yet. Higher layers use this to stop a decode for reasons
// the reader cannot detect itself (an unsupported tag, for example).
func (r *Reader) SetError(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Order returns the byte order used for multi-byte values.
func (r *Reader) Order() binary.ByteOrder {
	return r.order
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.offset
}

// Len returns the total size of the underlying buffer.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.offset
}

// AtEnd reports whether every byte of the buffer has been consumed.
func (r *Reader) AtEnd() bool {
	return r.offset >= len(r.data)
}

// take returns the next n bytes as a view into the buffer and advances
// past them, or records an error and returns nil.
func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 {
		r.err = fmt.Errorf("%w: %d at offset %d", ErrInvalidLength, n, r.offset)
		return nil
	}
	if n > len(r.data)-r.offset {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrEndOfStream, n, r.offset, len(r.data)-r.offset)
		return nil
	}
	view := r.data[r.offset : r.offset+n : r.offset+n]
	r.offset += n
	return view
}

// Uint8 reads one byte.
func (r *Reader) Uint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// Int8 reads one byte as a signed value.
func (r *Reader) Int8() int8 {
	return int8(r.Uint8())
}

// Bool reads one byte; any non-zero value is true.
func (r *Reader) Bool() bool {
	return r.Uint8() != 0
}

// Bytes reads n bytes and returns a copy of them.
func (r *Reader) Bytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	return bytes.Clone(b)
}

// Skip advances past n bytes without copying them.
func (r *Reader) Skip(n int) {
	r.take(n)
}

// Uint16 reads a 16-bit unsigned integer.
func (r *Reader) Uint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return r.order.Uint16(b)
}

// Int16 reads a 16-bit signed integer.
func (r *Reader) Int16() int16 {
	return int16(r.Uint16())
}

// Uint32 reads a 32-bit unsigned integer.
func (r *Reader) Uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return r.order.Uint32(b)
}

// Int32 reads a 32-bit signed integer.
func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

// Uint64 reads a 64-bit unsigned integer.
func (r *Reader) Uint64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return r.order.Uint64(b)
}

// Int64 reads a 64-bit signed integer.
func (r *Reader) Int64() int64 {
	return int64(r.Uint64())
}

// Float32 reads an IEEE 754 single-precision float.
func (r *Reader) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}

// Float64 reads an IEEE 754 double-precision float.
func (r *Reader) Float64() float64 {
	return math.Float64frombits(r.Uint64())
}

// Count reads a 32-bit element count. A negative count, or one larger
// than the number of remaining bytes, cannot describe elements that
// are all at least one byte wide, so it is rejected before a caller
// loops over it.
func (r *Reader) Count() int {
	start := r.offset
	n := int(r.Int32())
	if r.err != nil {
		return 0
	}
	if n < 0 {
		r.err = fmt.Errorf("%w: count %d at offset %d", ErrInvalidLength, n, start)
		return 0
	}
	if n > r.Remaining() {
		r.err = fmt.Errorf("%w: count %d at offset %d exceeds %d remaining bytes",
			ErrEndOfStream, n, start, r.Remaining())
		return 0
	}
	return n
}

// String16 reads a string prefixed with a 16-bit byte length. The
// bytes are returned as-is with no text decoding or trimming.
func (r *Reader) String16() string {
	n := int(r.Uint16())
	b := r.take(n)
	if b == nil {
		return ""
	}
	return string(b)
}

// ByteArray reads a byte slice prefixed with a 32-bit length.
func (r *Reader) ByteArray() []byte {
	n := int(r.Int32())
	if r.err != nil {
		return nil
	}
	return r.Bytes(n)
}

// Vec2 reads two floats.
func (r *Reader) Vec2() Vec2 {
	return Vec2{X: r.Float32(), Y: r.Float32()}
}

// Vec3 reads three floats.
func (r *Reader) Vec3() Vec3 {
	return Vec3{X: r.Float32(), Y: r.Float32(), Z: r.Float32()}
}

// Quaternion reads four floats in x, y, z, w order.
func (r *Reader) Quaternion() Quaternion {
	return Quaternion{X: r.Float32(), Y: r.Float32(), Z: r.Float32(), W: r.Float32()}
}

// Color reads three channel bytes, scales each into [0,1], and sets
// alpha to 1.
func (r *Reader) Color() Color {
	red, green, blue := r.Uint8(), r.Uint8(), r.Uint8()
	return Color{
		R: float32(red) / 255,
		G: float32(green) / 255,
		B: float32(blue) / 255,
		A: 1,
	}
}
