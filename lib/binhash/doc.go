// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash computes BLAKE3 digests of save files and encoded
// buffers.
//
// The round-trip and info commands print digests of the input file and
// of the re-encoded output so that byte-identical re-encodes can be
// confirmed at a glance and compared across runs:
//
//   - [Sum] hashes an in-memory buffer
//   - [HashFile] streams a file through the hasher
//   - [Digest.String] and [ParseDigest] convert to and from hex
package binhash
