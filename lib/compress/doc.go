// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress detects and removes zstd or LZ4 framing around save
// files, and applies it to encoded output on request.
//
// Compressed inputs are recognised by their frame magic, so callers
// never need to be told which format a file uses. [Decompress] returns
// uncompressed input unchanged.
package compress
