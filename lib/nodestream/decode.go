// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nodestream

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bureau-foundation/polyparse/lib/cursor"
	"github.com/bureau-foundation/polyparse/lib/diagnostic"
)

var (
	// ErrUnsupportedNode is returned for a record tag the decoder does
	// not handle: unnamed scalars, struct nodes, arrays of nodes,
	// internal and external references, and decimals.
	ErrUnsupportedNode = errors.New("unsupported node record")

	// ErrUnsupportedWidth is returned for a primitive array whose
	// element width is not 1, 2, 4 or 8 bytes.
	ErrUnsupportedWidth = errors.New("unsupported primitive array element width")

	// ErrUnsupportedString is returned for a string whose encoding
	// kind is neither 8-bit nor UTF-16 text.
	ErrUnsupportedString = cursor.ErrUnsupportedStringKind

	// ErrUnbalanced is returned when an end-of-node record has no open
	// scope to close, or the stream ends with scopes still open.
	ErrUnbalanced = errors.New("unbalanced node scopes")

	// ErrMalformed is returned for records that cannot be placed in
	// the tree: values inside a node whose contents were replaced by
	// a primitive array, an array outside any node, or a stream that
	// never opens a root node.
	ErrMalformed = errors.New("malformed node stream")
)

// Decode reads a complete node stream and returns its tree. Decoding
// stops at an end-of-stream record or when the buffer is exhausted.
// Any fatal error discards the partial tree.
func Decode(data []byte) (*Tree, error) {
	d := &decoder{
		r:     cursor.NewReader(data, binary.LittleEndian),
		types: make(map[int32]*Type),
		stack: []*Node{{}},
	}
	if err := d.run(); err != nil {
		return nil, err
	}
	root := d.stack[0].Child(RootName)
	if root == nil {
		return nil, fmt.Errorf("%w: no root node", ErrMalformed)
	}
	return &Tree{Root: root, Types: d.types, Diagnostics: d.diagnostics}, nil
}

type decoder struct {
	r           *cursor.Reader
	types       map[int32]*Type
	diagnostics diagnostic.List

	// stack[0] is the sentinel frame that collects the root node.
	stack []*Node
}

func (d *decoder) top() *Node {
	return d.stack[len(d.stack)-1]
}

func (d *decoder) run() error {
	for !d.r.AtEnd() {
		start := d.r.Offset()
		tag := Tag(d.r.Uint8())
		stop, err := d.record(tag, start)
		if err != nil {
			return err
		}
		if err := d.r.Err(); err != nil {
			return fmt.Errorf("reading %s record at offset %d: %w", tag, start, err)
		}
		if stop {
			break
		}
	}
	if open := len(d.stack) - 1; open > 0 {
		return fmt.Errorf("%w: stream ended with %d open node(s), innermost %q", ErrUnbalanced, open, d.top().Name)
	}
	return nil
}

// record decodes one record after its tag byte. It reports whether the
// record ends the stream.
func (d *decoder) record(tag Tag, start int) (bool, error) {
	switch tag {
	case TagInvalid:
		return false, nil
	case TagEndOfStream:
		return true, nil
	case TagNamedStartOfReferenceNode:
		name := d.r.KindString()
		d.push(name)
	case TagUnnamedStartOfReferenceNode:
		d.push(RootName)
	case TagEndOfNode:
		if len(d.stack) == 1 {
			return false, fmt.Errorf("%w: end of node at offset %d with no open node", ErrUnbalanced, start)
		}
		node := d.top()
		d.stack = d.stack[:len(d.stack)-1]
		if err := d.attach(node.Name, node, start); err != nil {
			return false, err
		}
	case TagPrimitiveArray:
		return false, d.primitiveArray(start)
	default:
		if !isNamedScalar(tag) {
			return false, fmt.Errorf("%w: %s at offset %d", ErrUnsupportedNode, tag, start)
		}
		name := d.r.KindString()
		value := d.scalar(tag)
		if d.r.Err() != nil {
			return false, nil
		}
		return false, d.attach(name, value, start)
	}
	return false, nil
}

// push opens a reference node. The type entry and the node id follow
// the name in the record.
func (d *decoder) push(name string) {
	typ := d.typeEntry()
	id := d.r.Int32()
	d.stack = append(d.stack, &Node{Name: name, Type: typ, ID: id})
}

func (d *decoder) attach(name string, value any, start int) error {
	parent := d.top()
	if parent.Array != nil {
		return fmt.Errorf("%w: %q at offset %d follows a primitive array in %q", ErrMalformed, name, start, parent.Name)
	}
	parent.Set(name, value)
	return nil
}

// typeEntry reads the type descriptor of a reference node. Unknown
// entry tags and unregistered ids are diagnostics, not errors: the
// node gets a null type and decoding continues.
func (d *decoder) typeEntry() *Type {
	start := d.r.Offset()
	tag := Tag(d.r.Uint8())
	switch tag {
	case TagTypeName:
		key := d.r.Int32()
		qualified := d.r.KindString()
		if d.r.Err() != nil {
			return nil
		}
		typ := parseQualifiedName(key, qualified)
		d.types[key] = typ
		return typ
	case TagTypeID:
		key := d.r.Int32()
		if d.r.Err() != nil {
			return nil
		}
		typ, ok := d.types[key]
		if !ok {
			d.diagnostics.Add(diagnostic.UnknownTypeEntry, start, "type id %d was never registered", key)
			return nil
		}
		return typ
	case TagUnnamedNull:
		return nil
	default:
		if d.r.Err() != nil {
			return nil
		}
		d.diagnostics.Add(diagnostic.UnknownTypeEntry, start, "unknown type entry: %d", byte(tag))
		return nil
	}
}

func (d *decoder) primitiveArray(start int) error {
	if len(d.stack) == 1 {
		return fmt.Errorf("%w: primitive array at offset %d outside any node", ErrMalformed, start)
	}
	count := d.r.Count()
	width := int(d.r.Int32())
	if d.r.Err() != nil {
		return nil
	}
	switch width {
	case 1, 2, 4, 8:
	default:
		return fmt.Errorf("%w: %d bytes at offset %d", ErrUnsupportedWidth, width, start)
	}
	data := d.r.Bytes(count * width)
	if d.r.Err() != nil {
		return nil
	}
	node := d.top()
	node.Fields = nil
	node.Array = &Array{Width: width, Count: count, data: data}
	return nil
}

func isNamedScalar(tag Tag) bool {
	switch tag {
	case TagNamedNull, TagNamedBoolean, TagNamedSByte, TagNamedByte,
		TagNamedShort, TagNamedUShort, TagNamedInt, TagNamedUInt,
		TagNamedLong, TagNamedULong, TagNamedFloat, TagNamedDouble,
		TagNamedChar, TagNamedString, TagNamedGuid:
		return true
	}
	return false
}

func (d *decoder) scalar(tag Tag) any {
	switch tag {
	case TagNamedBoolean:
		return d.r.Bool()
	case TagNamedSByte:
		return d.r.Int8()
	case TagNamedByte, TagNamedChar:
		return d.r.Uint8()
	case TagNamedShort:
		return d.r.Int16()
	case TagNamedUShort:
		return d.r.Uint16()
	case TagNamedInt:
		return d.r.Int32()
	case TagNamedUInt:
		return d.r.Uint32()
	case TagNamedLong:
		return d.r.Int64()
	case TagNamedULong:
		return d.r.Uint64()
	case TagNamedFloat:
		return d.r.Float32()
	case TagNamedDouble:
		return d.r.Float64()
	case TagNamedString:
		return d.r.KindString()
	case TagNamedGuid:
		return guidFromBytes(d.r.Bytes(16))
	default:
		return nil
	}
}

// guidFromBytes converts a GUID in its in-memory byte layout (the
// first three groups little-endian) to RFC 4122 byte order.
func guidFromBytes(b []byte) uuid.UUID {
	var id uuid.UUID
	if len(b) != len(id) {
		return id
	}
	copy(id[:], b)
	id[0], id[1], id[2], id[3] = b[3], b[2], b[1], b[0]
	id[4], id[5] = b[5], b[4]
	id[6], id[7] = b[7], b[6]
	return id
}

// guidBytes is the inverse of guidFromBytes.
func guidBytes(id uuid.UUID) []byte {
	b := make([]byte, len(id))
	copy(b, id[:])
	b[0], b[1], b[2], b[3] = id[3], id[2], id[1], id[0]
	b[4], b[5] = id[5], id[4]
	b[6], b[7] = id[7], id[6]
	return b
}
