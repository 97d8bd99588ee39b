// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nodestream

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bureau-foundation/polyparse/lib/codec"
	"github.com/bureau-foundation/polyparse/lib/diagnostic"
)

// RootName is the name given to reference nodes opened by an unnamed
// start record. The outermost node of a stream is unnamed, so a
// decoded tree's root is registered under this name.
const RootName = "root"

// Type describes the runtime type attached to a reference node.
type Type struct {
	Key      int32  `json:"key"`
	Name     string `json:"typeName"`
	Assembly string `json:"assemblyName"`
}

// String returns the qualified "Type, Assembly" form.
func (t *Type) String() string {
	if t == nil {
		return "<null>"
	}
	if t.Assembly == "" {
		return t.Name
	}
	return t.Name + ", " + t.Assembly
}

// parseQualifiedName splits "Type, Assembly" at the first ", " that is
// not inside a generic argument list. Assembly-qualified names carry
// further ", "-separated attributes (Version, Culture); those stay in
// the assembly part.
func parseQualifiedName(key int32, qualified string) *Type {
	depth := 0
	for i := 0; i < len(qualified); i++ {
		switch qualified[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 && strings.HasPrefix(qualified[i:], ", ") {
				return &Type{Key: key, Name: qualified[:i], Assembly: qualified[i+2:]}
			}
		}
	}
	return &Type{Key: key, Name: qualified}
}

// Field is one named child of a node. Value is nil for a named null,
// a *Node for a nested reference node, or one of bool, int8, uint8,
// int16, uint16, int32, uint32, int64, uint64, float32, float64,
// string, or uuid.UUID for scalar records.
type Field struct {
	Name  string
	Value any
}

// Node is a reference node: a typed scope holding either named fields
// or, after a primitive-array record, a positional array.
type Node struct {
	Name string
	Type *Type
	ID   int32

	// Fields in stream order. A repeated name replaces the earlier
	// value in place.
	Fields []Field

	// Array is set when a primitive-array record replaced the node's
	// contents. Fields recorded before the array are discarded.
	Array *Array
}

// Get returns the value of the named field and whether it exists.
func (n *Node) Get(name string) (any, bool) {
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Child returns the named field as a node, or nil when the field is
// absent or holds a scalar.
func (n *Node) Child(name string) *Node {
	v, _ := n.Get(name)
	child, _ := v.(*Node)
	return child
}

// Set assigns the named field, replacing an existing value in place or
// appending a new field.
func (n *Node) Set(name string, value any) {
	for i := range n.Fields {
		if n.Fields[i].Name == name {
			n.Fields[i].Value = value
			return
		}
	}
	n.Fields = append(n.Fields, Field{Name: name, Value: value})
}

// MarshalJSON renders the node's contents: its array when one replaced
// the fields, otherwise an object whose keys keep stream order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.Array != nil {
		return json.Marshal(n.Array)
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range n.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalCBOR encodes the node's [Node.Map] form. CBOR maps are
// written with sorted keys, so stream order is not kept.
func (n *Node) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(n.Map())
}

// Map returns the node's contents as plain Go values: nested nodes
// become map[string]any (or the array's element slice), scalars are
// returned as decoded.
func (n *Node) Map() any {
	if n.Array != nil {
		return n.Array.Values()
	}
	out := make(map[string]any, len(n.Fields))
	for _, f := range n.Fields {
		if child, ok := f.Value.(*Node); ok {
			out[f.Name] = child.Map()
			continue
		}
		out[f.Name] = f.Value
	}
	return out
}

// Array is the payload of a primitive-array record: Count elements of
// Width bytes each, kept as the raw little-endian bytes.
type Array struct {
	Width int
	Count int
	data  []byte
}

// NewArray wraps a byte payload as a width-1 array.
func NewArray(data []byte) *Array {
	return &Array{Width: 1, Count: len(data), data: data}
}

// Bytes returns the raw element bytes.
func (a *Array) Bytes() []byte {
	return a.data
}

// Uint16s decodes the elements of a width-2 array.
func (a *Array) Uint16s() []uint16 {
	if a.Width != 2 {
		return nil
	}
	out := make([]uint16, a.Count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(a.data[i*2:])
	}
	return out
}

// Uint32s decodes the elements of a width-4 array.
func (a *Array) Uint32s() []uint32 {
	if a.Width != 4 {
		return nil
	}
	out := make([]uint32, a.Count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(a.data[i*4:])
	}
	return out
}

// Uint64s decodes the elements of a width-8 array.
func (a *Array) Uint64s() []uint64 {
	if a.Width != 8 {
		return nil
	}
	out := make([]uint64, a.Count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(a.data[i*8:])
	}
	return out
}

// Values returns the elements as the slice type matching the width.
func (a *Array) Values() any {
	switch a.Width {
	case 2:
		return a.Uint16s()
	case 4:
		return a.Uint32s()
	case 8:
		return a.Uint64s()
	default:
		return a.data
	}
}

// MarshalJSON renders byte arrays as base64 and wider arrays as
// number lists.
func (a *Array) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Values())
}

// Tree is a decoded node stream.
type Tree struct {
	// Root is the node opened by the stream's outermost record.
	Root *Node

	// Types holds every type registered by a type-name entry, by key.
	Types map[int32]*Type

	// Diagnostics lists unresolved type entries, in stream order.
	Diagnostics diagnostic.List
}
