// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// cborMode writes Core Deterministic Encoding (RFC 8949 §4.2), so a
// decoded file renders to the same bytes on every run.
var cborMode cbor.EncMode

func init() {
	options := cbor.CoreDetEncOptions()
	// GUIDs (uuid.UUID) render as their canonical text form. uuid.UUID
	// is also a BinaryMarshaler, which fxamacker checks first, so the
	// binary path is switched off.
	options.TextMarshaler = cbor.TextMarshalerTextString
	options.BinaryMarshaler = cbor.BinaryMarshalerNone

	var err error
	cborMode, err = options.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v as deterministic CBOR.
func Marshal(v any) ([]byte, error) {
	return cborMode.Marshal(v)
}

// NewEncoder returns a deterministic CBOR stream encoder writing to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return cborMode.NewEncoder(w)
}

// Diagnose returns the diagnostic notation (RFC 8949 §8) of the single
// CBOR item in data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
