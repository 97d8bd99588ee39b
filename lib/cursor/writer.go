// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cursor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBufferOverflow is returned when a write would exceed the
	// capacity a fixed Writer was created with.
	ErrBufferOverflow = errors.New("buffer overflow")

	// ErrStringTooLong is returned when a string does not fit its
	// length prefix.
	ErrStringTooLong = errors.New("string too long for length prefix")
)

// Writer appends fixed-width values to a buffer.
type Writer struct {
	buf      []byte
	order    binary.ByteOrder
	growable bool
	err      error
}

// NewWriter returns a Writer backed by a single allocation of capacity
// bytes. Writes beyond that capacity fail with [ErrBufferOverflow].
func NewWriter(capacity int, order binary.ByteOrder) *Writer {
	return &Writer{buf: make([]byte, 0, capacity), order: order}
}

// NewGrowableWriter returns a Writer whose buffer grows as needed. It is
// meant for assembling small buffers where no size estimate exists.
func NewGrowableWriter(order binary.ByteOrder) *Writer {
	return &Writer{order: order, growable: true}
}

// Err returns the first error encountered by any write, or nil.
func (w *Writer) Err() error {
	return w.err
}

// SetError records err as the writer's error if no error has been
// recorded yet. Later writes become no-ops.
func (w *Writer) SetError(err error) {
	if w.err == nil {
		w.err = err
	}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Cap returns the capacity of the underlying allocation.
func (w *Writer) Cap() int {
	return cap(w.buf)
}

// Bytes returns the written bytes. For a fixed Writer this is the
// written prefix of the original allocation, not a copy.
func (w *Writer) Bytes() []byte {
	return w.buf[:len(w.buf):len(w.buf)]
}

// extend reserves n bytes at the end of the buffer and returns them.
func (w *Writer) extend(n int) []byte {
	if w.err != nil {
		return nil
	}
	start := len(w.buf)
	if start+n > cap(w.buf) {
		if !w.growable {
			w.err = fmt.Errorf("%w: writing %d bytes at offset %d with capacity %d",
				ErrBufferOverflow, n, start, cap(w.buf))
			return nil
		}
		w.buf = append(w.buf, make([]byte, n)...)
		return w.buf[start:]
	}
	w.buf = w.buf[:start+n]
	return w.buf[start:]
}

// Raw writes b without a length prefix.
func (w *Writer) Raw(b []byte) {
	if dst := w.extend(len(b)); dst != nil {
		copy(dst, b)
	}
}

// Uint8 writes one byte.
func (w *Writer) Uint8(v uint8) {
	if dst := w.extend(1); dst != nil {
		dst[0] = v
	}
}

// Int8 writes one signed byte.
func (w *Writer) Int8(v int8) {
	w.Uint8(uint8(v))
}

// Bool writes 1 for true and 0 for false.
func (w *Writer) Bool(v bool) {
	if v {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
}

// Uint16 writes a 16-bit unsigned integer.
func (w *Writer) Uint16(v uint16) {
	if dst := w.extend(2); dst != nil {
		w.order.PutUint16(dst, v)
	}
}

// Int16 writes a 16-bit signed integer.
func (w *Writer) Int16(v int16) {
	w.Uint16(uint16(v))
}

// Uint32 writes a 32-bit unsigned integer.
func (w *Writer) Uint32(v uint32) {
	if dst := w.extend(4); dst != nil {
		w.order.PutUint32(dst, v)
	}
}

// Int32 writes a 32-bit signed integer.
func (w *Writer) Int32(v int32) {
	w.Uint32(uint32(v))
}

// Uint64 writes a 64-bit unsigned integer.
func (w *Writer) Uint64(v uint64) {
	if dst := w.extend(8); dst != nil {
		w.order.PutUint64(dst, v)
	}
}

// Int64 writes a 64-bit signed integer.
func (w *Writer) Int64(v int64) {
	w.Uint64(uint64(v))
}

// Float32 writes an IEEE 754 single-precision float.
func (w *Writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}

// Float64 writes an IEEE 754 double-precision float.
func (w *Writer) Float64(v float64) {
	w.Uint64(math.Float64bits(v))
}

// Count writes a 32-bit element count.
func (w *Writer) Count(n int) {
	w.Int32(int32(n))
}

// String16 writes s prefixed with its 16-bit byte length.
func (w *Writer) String16(s string) {
	if w.err != nil {
		return
	}
	if len(s) > math.MaxUint16 {
		w.err = fmt.Errorf("%w: %d bytes at offset %d", ErrStringTooLong, len(s), len(w.buf))
		return
	}
	w.Uint16(uint16(len(s)))
	w.Raw([]byte(s))
}

// ByteArray writes b prefixed with its 32-bit length.
func (w *Writer) ByteArray(b []byte) {
	w.Int32(int32(len(b)))
	w.Raw(b)
}

// Vec2 writes two floats.
func (w *Writer) Vec2(v Vec2) {
	w.Float32(v.X)
	w.Float32(v.Y)
}

// Vec3 writes three floats.
func (w *Writer) Vec3(v Vec3) {
	w.Float32(v.X)
	w.Float32(v.Y)
	w.Float32(v.Z)
}

// Quaternion writes four floats in x, y, z, w order.
func (w *Writer) Quaternion(q Quaternion) {
	w.Float32(q.X)
	w.Float32(q.Y)
	w.Float32(q.Z)
	w.Float32(q.W)
}

// Color writes the red, green and blue channels as bytes, scaling by
// 255 and truncating. Alpha is dropped.
func (w *Writer) Color(c Color) {
	w.Uint8(channelToByte(c.R))
	w.Uint8(channelToByte(c.G))
	w.Uint8(channelToByte(c.B))
}

// Sizes of the fixed-width values, for callers computing buffer
// estimates.
const (
	SizeBool       = 1
	SizeInt16      = 2
	SizeInt32      = 4
	SizeInt64      = 8
	SizeFloat32    = 4
	SizeVec2       = 8
	SizeVec3       = 12
	SizeQuaternion = 16
	SizeColor      = 3
)

// String16Size returns the number of bytes [Writer.String16] emits for s.
func String16Size(s string) int {
	return SizeInt16 + len(s)
}
