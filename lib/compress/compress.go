// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies a compression framing.
type Format uint8

const (
	// None is raw, uncompressed data.
	None Format = iota

	// Zstd is a zstd frame (RFC 8878).
	Zstd

	// LZ4 is an LZ4 frame.
	LZ4
)

// MaxDecompressedSize bounds the output of [Decompress].
const MaxDecompressedSize = 256 << 20

// ErrTooLarge is returned when decompressed data would exceed
// [MaxDecompressedSize].
var ErrTooLarge = errors.New("decompressed data too large")

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

// String returns the name accepted by [ParseFormat].
func (f Format) String() string {
	switch f {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", f)
	}
}

// ParseFormat parses "none", "zstd" or "lz4".
func ParseFormat(name string) (Format, error) {
	switch name {
	case "none", "":
		return None, nil
	case "zstd":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return None, fmt.Errorf("unknown compression format %q (want none, zstd or lz4)", name)
	}
}

// Detect returns the framing of data from its leading magic bytes.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return Zstd
	case bytes.HasPrefix(data, lz4Magic):
		return LZ4
	default:
		return None
	}
}

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("compress: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecompressedSize))
	if err != nil {
		panic("compress: zstd decoder initialization failed: " + err.Error())
	}
}

// Decompress removes the framing detected on data and reports which
// framing it was. Uncompressed data is returned as-is.
func Decompress(data []byte) ([]byte, Format, error) {
	format := Detect(data)
	switch format {
	case Zstd:
		out, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, format, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(out) > MaxDecompressedSize {
			return nil, format, fmt.Errorf("zstd decompress: %w", ErrTooLarge)
		}
		return out, format, nil
	case LZ4:
		if err := checkLZ4Frame(data); err != nil {
			return nil, format, fmt.Errorf("lz4 decompress: %w", err)
		}
		reader := lz4.NewReader(bytes.NewReader(data))
		out, err := io.ReadAll(io.LimitReader(reader, MaxDecompressedSize+1))
		if err != nil {
			return nil, format, fmt.Errorf("lz4 decompress: %w", err)
		}
		if len(out) > MaxDecompressedSize {
			return nil, format, fmt.Errorf("lz4 decompress: %w", ErrTooLarge)
		}
		return out, format, nil
	default:
		return data, None, nil
	}
}

// ErrCorrupt is returned for a frame that is malformed or ends before
// its end mark.
var ErrCorrupt = errors.New("corrupt or truncated frame")

// LZ4 frame descriptor flags.
const (
	lz4FlagDictID        = 1 << 0
	lz4FlagReserved      = 1 << 1
	lz4FlagContentSum    = 1 << 2
	lz4FlagContentSize   = 1 << 3
	lz4FlagBlockChecksum = 1 << 4
	lz4VersionMask       = 0xC0
	lz4Version           = 0x40
	lz4UncompressedBlock = 1 << 31
)

// checkLZ4Frame walks the block structure of a single LZ4 frame. The
// lz4 reader stops quietly at an early EOF, so a frame is only handed
// to it once every block, the end mark and the trailing checksum are
// present and nothing follows them.
func checkLZ4Frame(data []byte) error {
	offset := len(lz4Magic)
	if len(data) < offset+3 {
		return fmt.Errorf("%w: short frame header", ErrCorrupt)
	}
	flags, blockDescriptor := data[offset], data[offset+1]
	if flags&lz4VersionMask != lz4Version || flags&lz4FlagReserved != 0 {
		return fmt.Errorf("%w: frame flags %#02x", ErrCorrupt, flags)
	}
	if blockDescriptor&0x8F != 0 || blockDescriptor>>4 < 4 {
		return fmt.Errorf("%w: block descriptor %#02x", ErrCorrupt, blockDescriptor)
	}
	offset += 2
	if flags&lz4FlagContentSize != 0 {
		offset += 8
	}
	if flags&lz4FlagDictID != 0 {
		offset += 4
	}
	// Header checksum.
	offset++
	if offset > len(data) {
		return fmt.Errorf("%w: short frame header", ErrCorrupt)
	}

	for {
		if len(data)-offset < 4 {
			return fmt.Errorf("%w: missing end mark", ErrCorrupt)
		}
		size := binary.LittleEndian.Uint32(data[offset:])
		offset += 4
		if size == 0 {
			break
		}
		length := int(size &^ lz4UncompressedBlock)
		if flags&lz4FlagBlockChecksum != 0 {
			length += 4
		}
		if len(data)-offset < length {
			return fmt.Errorf("%w: block at offset %d is truncated", ErrCorrupt, offset-4)
		}
		offset += length
	}
	if flags&lz4FlagContentSum != 0 {
		offset += 4
	}
	switch {
	case offset > len(data):
		return fmt.Errorf("%w: missing content checksum", ErrCorrupt)
	case offset < len(data):
		return fmt.Errorf("%w: %d bytes after frame", ErrCorrupt, len(data)-offset)
	}
	return nil
}

// Compress frames data in the given format. None returns data
// unchanged.
func Compress(data []byte, format Format) ([]byte, error) {
	switch format {
	case None:
		return data, nil
	case Zstd:
		return zstdEncoder.EncodeAll(data, nil), nil
	case LZ4:
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported compression format %s", format)
	}
}
