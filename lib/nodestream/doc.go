// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package nodestream reads and writes the tagged-node binary protocol
// used for save slots.
//
// A node stream is a flat sequence of records. Each record starts with
// a one-byte [Tag] and carries a tag-specific payload: reference-node
// starts open a scope, [TagEndOfNode] closes it, named scalar records
// attach a value to the open scope, and [TagPrimitiveArray] replaces
// the open scope's contents with a positional array. [Decode] rebuilds
// the tree with an explicit stack of frames and returns the node
// opened by the stream's outermost record.
//
// All multi-byte values are little-endian. Strings carry a one-byte
// encoding kind (8-bit or UTF-16) and a 32-bit length; [Writer] always
// emits 8-bit strings.
//
// The encoder side is deliberately record-level. There is no generic
// tree-to-stream encoder: callers that produce a document (package
// slot) emit a fixed record sequence through [Writer].
package nodestream
