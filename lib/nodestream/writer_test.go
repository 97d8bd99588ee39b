// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nodestream

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bureau-foundation/polyparse/lib/cursor"
)

func TestWriterRecordBytes(t *testing.T) {
	w := NewWriter(64)
	w.StartNamedReferenceNode("b", TypeID(1), 2)
	w.PrimitiveArray(1, []byte{0xAA})
	w.EndNode()
	if err := w.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	want := []byte{
		// Named reference node "b", type id 1, node id 2.
		0x01,
		0x00, 1, 0, 0, 0, 'b',
		0x30, 1, 0, 0, 0,
		2, 0, 0, 0,
		// One 1-byte element.
		0x08, 1, 0, 0, 0, 1, 0, 0, 0, 0xAA,
		0x05,
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("bytes = % x\nwant    % x", w.Bytes(), want)
	}
}

func TestWriterSizes(t *testing.T) {
	entry := TypeName(0, "BridgeSaveSlotData, Assembly-CSharp")
	w := NewWriter(512)
	w.StartReferenceNode(entry, 0)
	if w.Len() != StartNodeSize("", entry) {
		t.Errorf("unnamed start = %d bytes, StartNodeSize = %d", w.Len(), StartNodeSize("", entry))
	}
	before := w.Len()
	w.StartNamedReferenceNode("m_Thumb", TypeID(1), 2)
	if got := w.Len() - before; got != StartNodeSize("m_Thumb", TypeID(1)) {
		t.Errorf("named start = %d bytes, StartNodeSize = %d", got, StartNodeSize("m_Thumb", TypeID(1)))
	}
	before = w.Len()
	w.Int("m_SlotID", 4)
	if got := w.Len() - before; got != ScalarSize("m_SlotID", cursor.SizeInt32) {
		t.Errorf("int record = %d bytes, ScalarSize = %d", got, ScalarSize("m_SlotID", cursor.SizeInt32))
	}
	before = w.Len()
	w.PrimitiveArray(2, []byte{1, 2, 3, 4})
	if got := w.Len() - before; got != SizeArrayHeader+4 {
		t.Errorf("array record = %d bytes, want %d", got, SizeArrayHeader+4)
	}
}

func TestWriterErrors(t *testing.T) {
	t.Run("open node", func(t *testing.T) {
		w := NewWriter(64)
		w.StartReferenceNode(NullType(), 0)
		if !errors.Is(w.Err(), ErrUnbalanced) {
			t.Errorf("Err = %v, want ErrUnbalanced", w.Err())
		}
	})
	t.Run("extra end", func(t *testing.T) {
		w := NewWriter(64)
		w.EndNode()
		if !errors.Is(w.Err(), ErrUnbalanced) {
			t.Errorf("Err = %v, want ErrUnbalanced", w.Err())
		}
	})
	t.Run("width", func(t *testing.T) {
		w := NewWriter(64)
		w.PrimitiveArray(3, []byte{1, 2, 3})
		if !errors.Is(w.Err(), ErrUnsupportedWidth) {
			t.Errorf("Err = %v, want ErrUnsupportedWidth", w.Err())
		}
	})
	t.Run("partial element", func(t *testing.T) {
		w := NewWriter(64)
		w.PrimitiveArray(4, []byte{1, 2, 3})
		if !errors.Is(w.Err(), ErrMalformed) {
			t.Errorf("Err = %v, want ErrMalformed", w.Err())
		}
	})
	t.Run("capacity", func(t *testing.T) {
		w := NewWriter(4)
		w.String("name", "value")
		if !errors.Is(w.Err(), cursor.ErrBufferOverflow) {
			t.Errorf("Err = %v, want ErrBufferOverflow", w.Err())
		}
	})
}
