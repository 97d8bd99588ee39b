// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cursor provides sequential binary readers and writers over a
// fixed in-memory buffer.
//
// A [Reader] owns a single read offset and a byte order chosen when it
// is constructed: the layout format stores multi-byte values in one
// order and the slot format in the other, and no call site ever picks
// an order per value. Errors are sticky. The first read that runs past
// the end of the buffer records an error wrapping [ErrEndOfStream], and
// every later read returns a zero value without advancing. Callers
// check [Reader.Err] at the granularity they care about (per field,
// per section) instead of after every primitive.
//
// A [Writer] appends into a buffer whose capacity is fixed up front.
// Writing past that capacity records [ErrBufferOverflow] instead of
// reallocating, so an undersized estimate surfaces as an error rather
// than a silent copy. [Writer.Bytes] returns the written prefix of the
// original allocation.
//
// Two string conventions are supported. [Reader.String16] is the layout
// convention: a 16-bit length followed by raw bytes. [Reader.KindString]
// is the slot convention: a one-byte encoding kind (0 for 8-bit text,
// 1 for UTF-16) followed by a 32-bit length.
package cursor
