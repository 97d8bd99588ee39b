// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec renders decoded save models as JSON, YAML or CBOR, and
// reads hand-edited JSONC models back.
//
// JSON is the primary interface: every model type carries json struct
// tags with the game's field names (m_Version, m_Bridge, ...), and
// [Render] produces YAML from the JSON rendering so the two always
// agree on names and key order.
//
// CBOR uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items. Same
// logical data always produces identical bytes. fxamacker/cbor v2 reads
// `json` tags as fallback when `cbor` tags are absent, so the model
// types need no second set of tags.
//
//	data, err := codec.Marshal(value)
//	err = codec.UnmarshalJSONC(input, &value)
//	err = codec.Render(os.Stdout, codec.FormatYAML, value, 2)
package codec
