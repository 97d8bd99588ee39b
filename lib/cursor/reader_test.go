// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cursor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestReaderByteOrder(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x26}

	big := NewReader(data, binary.BigEndian)
	if got := big.Int32(); got != 38 {
		t.Errorf("big-endian Int32 = %d, want 38", got)
	}

	little := NewReader(data, binary.LittleEndian)
	if got := little.Int32(); got != 0x26000000 {
		t.Errorf("little-endian Int32 = %#x, want %#x", got, 0x26000000)
	}
}

func TestReaderNegativeInt32(t *testing.T) {
	writer := NewGrowableWriter(binary.BigEndian)
	writer.Int32(-38)

	reader := NewReader(writer.Bytes(), binary.BigEndian)
	if got := reader.Int32(); got != -38 {
		t.Errorf("Int32 = %d, want -38", got)
	}
}

func TestReaderEndOfStreamIsSticky(t *testing.T) {
	reader := NewReader([]byte{0x01, 0x02, 0x03}, binary.BigEndian)

	if got := reader.Int32(); got != 0 {
		t.Errorf("short Int32 = %d, want 0", got)
	}
	if !errors.Is(reader.Err(), ErrEndOfStream) {
		t.Fatalf("Err() = %v, want ErrEndOfStream", reader.Err())
	}
	if reader.Offset() != 0 {
		t.Errorf("Offset() = %d after failed read, want 0", reader.Offset())
	}

	// One byte would be available, but the error is sticky.
	if got := reader.Uint8(); got != 0 {
		t.Errorf("Uint8 after error = %d, want 0", got)
	}
	if reader.Offset() != 0 {
		t.Errorf("Offset() = %d after sticky read, want 0", reader.Offset())
	}
}

func TestReaderString16(t *testing.T) {
	data := []byte{0x00, 0x05, 'h', 'e', 'l', 'l', 'o', 0xFF}
	reader := NewReader(data, binary.BigEndian)

	if got := reader.String16(); got != "hello" {
		t.Errorf("String16 = %q, want %q", got, "hello")
	}
	if reader.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1", reader.Remaining())
	}
}

func TestReaderString16KeepsRawBytes(t *testing.T) {
	// No trimming and no text decoding: embedded NULs and invalid
	// UTF-8 survive unchanged.
	raw := []byte{'a', 0x00, 0xC3, ' '}
	writer := NewGrowableWriter(binary.BigEndian)
	writer.String16(string(raw))

	reader := NewReader(writer.Bytes(), binary.BigEndian)
	if got := reader.String16(); got != string(raw) {
		t.Errorf("String16 = %q, want %q", got, string(raw))
	}
}

func TestReaderColor(t *testing.T) {
	reader := NewReader([]byte{0, 255, 51}, binary.BigEndian)
	color := reader.Color()

	if color.R != 0 || color.G != 1 || color.B != float32(51)/255 || color.A != 1 {
		t.Errorf("Color = %+v, want {0 1 0.2 1}", color)
	}
}

func TestColorByteRoundTrip(t *testing.T) {
	// Every channel byte survives read-then-write even though the
	// write truncates.
	for value := range 256 {
		reader := NewReader([]byte{byte(value), byte(value), byte(value)}, binary.BigEndian)
		color := reader.Color()

		writer := NewGrowableWriter(binary.BigEndian)
		writer.Color(color)
		got := writer.Bytes()
		if !bytes.Equal(got, []byte{byte(value), byte(value), byte(value)}) {
			t.Fatalf("channel %d wrote %v", value, got)
		}
	}
}

func TestColorWriteTruncatesAndClamps(t *testing.T) {
	writer := NewGrowableWriter(binary.BigEndian)
	writer.Color(Color{R: 0.999, G: -0.5, B: 3})

	want := []byte{254, 0, 255}
	if got := writer.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("Color bytes = %v, want %v", got, want)
	}
}

func TestReaderCountRejectsImpossibleCounts(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"negative", []byte{0xFF, 0xFF, 0xFF, 0xFF}, ErrInvalidLength},
		{"larger than buffer", []byte{0x00, 0x00, 0x01, 0x00, 0x00}, ErrEndOfStream},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			reader := NewReader(test.data, binary.BigEndian)
			if got := reader.Count(); got != 0 {
				t.Errorf("Count() = %d, want 0", got)
			}
			if !errors.Is(reader.Err(), test.want) {
				t.Errorf("Err() = %v, want %v", reader.Err(), test.want)
			}
		})
	}
}

func TestReaderBytesCopies(t *testing.T) {
	data := []byte{1, 2, 3}
	reader := NewReader(data, binary.LittleEndian)
	got := reader.Bytes(3)
	data[0] = 9
	if got[0] != 1 {
		t.Error("Bytes returned a view into the input buffer")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{
			name: "8-bit",
			data: []byte{0x00, 0x03, 0x00, 0x00, 0x00, 'a', 'b', 'c'},
			want: "abc",
		},
		{
			name: "UTF-16",
			data: []byte{0x01, 0x02, 0x00, 0x00, 0x00, 'h', 0x00, 0xE9, 0x00},
			want: "hé",
		},
		{
			name: "empty",
			data: []byte{0x00, 0x00, 0x00, 0x00, 0x00},
			want: "",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			reader := NewReader(test.data, binary.LittleEndian)
			got := reader.KindString()
			if err := reader.Err(); err != nil {
				t.Fatalf("KindString: %v", err)
			}
			if got != test.want {
				t.Errorf("KindString = %q, want %q", got, test.want)
			}
			if !reader.AtEnd() {
				t.Errorf("%d bytes left unread", reader.Remaining())
			}
		})
	}
}

func TestKindStringUnsupportedKind(t *testing.T) {
	reader := NewReader([]byte{0x07, 0x00, 0x00, 0x00, 0x00}, binary.LittleEndian)
	reader.KindString()
	if !errors.Is(reader.Err(), ErrUnsupportedStringKind) {
		t.Errorf("Err() = %v, want ErrUnsupportedStringKind", reader.Err())
	}
}
