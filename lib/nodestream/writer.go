// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nodestream

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/bureau-foundation/polyparse/lib/cursor"
)

// TypeEntry is the type descriptor written after a reference-node
// start. Build one with [TypeName], [TypeID] or [NullType].
type TypeEntry struct {
	tag       Tag
	key       int32
	qualified string
}

// TypeName registers key for the assembly-qualified type name, such
// as "System.Byte[], mscorlib".
func TypeName(key int32, qualified string) TypeEntry {
	return TypeEntry{tag: TagTypeName, key: key, qualified: qualified}
}

// TypeID refers to a key registered earlier in the stream.
func TypeID(key int32) TypeEntry {
	return TypeEntry{tag: TagTypeID, key: key}
}

// NullType writes no type information.
func NullType() TypeEntry {
	return TypeEntry{tag: TagUnnamedNull}
}

func (e TypeEntry) size() int {
	switch e.tag {
	case TagTypeName:
		return 1 + cursor.SizeInt32 + cursor.KindStringSize(e.qualified)
	case TagTypeID:
		return 1 + cursor.SizeInt32
	default:
		return 1
	}
}

// Record sizes for callers that estimate a buffer before writing.
const (
	// SizeEndNode is the size of an end-of-node record.
	SizeEndNode = 1

	// SizeArrayHeader is the tag, count and width preceding the
	// elements of a primitive array.
	SizeArrayHeader = 1 + 2*cursor.SizeInt32
)

// StartNodeSize returns the size of a reference-node start record.
// An empty name sizes the unnamed form.
func StartNodeSize(name string, entry TypeEntry) int {
	n := 1 + entry.size() + cursor.SizeInt32
	if name != "" {
		n += cursor.KindStringSize(name)
	}
	return n
}

// ScalarSize returns the size of a named scalar record whose payload
// is valueSize bytes.
func ScalarSize(name string, valueSize int) int {
	return 1 + cursor.KindStringSize(name) + valueSize
}

// Writer emits node stream records into a fixed-capacity buffer.
// Errors are sticky: after the first failure every write is a no-op
// and [Writer.Err] reports it.
type Writer struct {
	w     *cursor.Writer
	depth int
}

// NewWriter returns a Writer whose buffer holds capacity bytes.
func NewWriter(capacity int) *Writer {
	return &Writer{w: cursor.NewWriter(capacity, binary.LittleEndian)}
}

// Err returns the first write error or an unbalanced-scope error when
// nodes remain open.
func (w *Writer) Err() error {
	if err := w.w.Err(); err != nil {
		return err
	}
	if w.depth != 0 {
		return fmt.Errorf("%w: %d node(s) left open", ErrUnbalanced, w.depth)
	}
	return nil
}

// Bytes returns the records written so far.
func (w *Writer) Bytes() []byte {
	return w.w.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.w.Len()
}

func (w *Writer) tag(t Tag) {
	w.w.Uint8(byte(t))
}

func (w *Writer) typeEntry(e TypeEntry) {
	w.tag(e.tag)
	switch e.tag {
	case TagTypeName:
		w.w.Int32(e.key)
		w.w.KindString(e.qualified)
	case TagTypeID:
		w.w.Int32(e.key)
	}
}

// StartReferenceNode opens an unnamed reference node.
func (w *Writer) StartReferenceNode(entry TypeEntry, id int32) {
	w.tag(TagUnnamedStartOfReferenceNode)
	w.typeEntry(entry)
	w.w.Int32(id)
	w.depth++
}

// StartNamedReferenceNode opens a reference node under name.
func (w *Writer) StartNamedReferenceNode(name string, entry TypeEntry, id int32) {
	w.tag(TagNamedStartOfReferenceNode)
	w.w.KindString(name)
	w.typeEntry(entry)
	w.w.Int32(id)
	w.depth++
}

// EndNode closes the innermost open node.
func (w *Writer) EndNode() {
	if w.depth == 0 {
		w.w.SetError(fmt.Errorf("%w: end of node with no open node", ErrUnbalanced))
		return
	}
	w.tag(TagEndOfNode)
	w.depth--
}

// Int writes a named 32-bit integer.
func (w *Writer) Int(name string, v int32) {
	w.tag(TagNamedInt)
	w.w.KindString(name)
	w.w.Int32(v)
}

// Long writes a named 64-bit integer.
func (w *Writer) Long(name string, v int64) {
	w.tag(TagNamedLong)
	w.w.KindString(name)
	w.w.Int64(v)
}

// String writes a named 8-bit text string.
func (w *Writer) String(name, v string) {
	w.tag(TagNamedString)
	w.w.KindString(name)
	w.w.KindString(v)
}

// Bool writes a named boolean.
func (w *Writer) Bool(name string, v bool) {
	w.tag(TagNamedBoolean)
	w.w.KindString(name)
	w.w.Bool(v)
}

// Guid writes a named GUID in its in-memory byte layout.
func (w *Writer) Guid(name string, v uuid.UUID) {
	w.tag(TagNamedGuid)
	w.w.KindString(name)
	w.w.Raw(guidBytes(v))
}

// Null writes a named null.
func (w *Writer) Null(name string) {
	w.tag(TagNamedNull)
	w.w.KindString(name)
}

// PrimitiveArray writes a primitive array whose elements are width
// bytes each. data must hold a whole number of elements.
func (w *Writer) PrimitiveArray(width int, data []byte) {
	switch width {
	case 1, 2, 4, 8:
	default:
		w.w.SetError(fmt.Errorf("%w: %d bytes", ErrUnsupportedWidth, width))
		return
	}
	if len(data)%width != 0 {
		w.w.SetError(fmt.Errorf("%w: %d bytes is not a whole number of %d-byte elements", ErrMalformed, len(data), width))
		return
	}
	w.tag(TagPrimitiveArray)
	w.w.Count(len(data) / width)
	w.w.Int32(int32(width))
	w.w.Raw(data)
}
