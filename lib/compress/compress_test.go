// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bytes"
	"errors"
	"testing"
)

func sampleData() []byte {
	// Repetitive like a real layout: many fixed-width records.
	var buffer bytes.Buffer
	for i := 0; i < 500; i++ {
		buffer.Write([]byte{0, 0, 0x80, 0x3F, byte(i), 0, 0, 0})
	}
	return buffer.Bytes()
}

func TestRoundTrip(t *testing.T) {
	data := sampleData()
	for _, format := range []Format{None, Zstd, LZ4} {
		t.Run(format.String(), func(t *testing.T) {
			compressed, err := Compress(data, format)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if got := Detect(compressed); got != format {
				t.Errorf("Detect = %s, want %s", got, format)
			}
			if format != None && len(compressed) >= len(data) {
				t.Errorf("compressed %d bytes to %d", len(data), len(compressed))
			}

			decompressed, detected, err := Decompress(compressed)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if detected != format {
				t.Errorf("Decompress detected %s, want %s", detected, format)
			}
			if !bytes.Equal(decompressed, data) {
				t.Errorf("round trip changed the data")
			}
		})
	}
}

func TestDetectRawLayout(t *testing.T) {
	// A big-endian layout header for version 80.
	raw := []byte{0, 0, 0, 80, 0, 0, 0, 16}
	if got := Detect(raw); got != None {
		t.Errorf("Detect = %s, want none", got)
	}
	out, format, err := Decompress(raw)
	if err != nil || format != None || !bytes.Equal(out, raw) {
		t.Errorf("Decompress(raw) = %v, %s, %v", out, format, err)
	}
}

func TestDecompressCorrupt(t *testing.T) {
	for _, data := range [][]byte{
		append(append([]byte{}, zstdMagic...), 0xFF, 0xFF, 0xFF),
		append(append([]byte{}, lz4Magic...), 0xFF, 0xFF, 0xFF),
	} {
		if _, _, err := Decompress(data); err == nil {
			t.Errorf("Decompress(% x) should fail", data)
		}
	}
}

func TestDecompressTruncatedLZ4(t *testing.T) {
	compressed, err := Compress(sampleData(), LZ4)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	tests := []struct {
		name string
		data []byte
	}{
		{"header only", compressed[:7]},
		{"inside first block", compressed[:len(compressed)/2]},
		{"missing content checksum", compressed[:len(compressed)-2]},
		{"missing end mark", compressed[:len(compressed)-8]},
		{"trailing bytes", append(append([]byte{}, compressed...), 0)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, format, err := Decompress(test.data)
			if !errors.Is(err, ErrCorrupt) {
				t.Fatalf("Decompress = %d bytes, %v; want ErrCorrupt", len(out), err)
			}
			if format != LZ4 {
				t.Errorf("format = %s, want lz4", format)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, format := range []Format{None, Zstd, LZ4} {
		parsed, err := ParseFormat(format.String())
		if err != nil || parsed != format {
			t.Errorf("ParseFormat(%q) = %s, %v", format.String(), parsed, err)
		}
	}
	if _, err := ParseFormat("gzip"); err == nil {
		t.Error("ParseFormat(gzip) should fail")
	}
}
