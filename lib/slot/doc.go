// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package slot reads and writes save-slot files.
//
// A slot is a node stream (package nodestream) whose root carries the
// save metadata as named scalars, an optional thumbnail image, and the
// bridge itself as a byte array holding a standalone bridge section in
// the layout format. [Decode] parses the stream, decodes that embedded
// bridge with package layout, and substitutes the structured bridge
// into the tree. [Encode] emits the fixed record sequence the game
// writes, embedding a bridge section produced by [EmbedBridge].
package slot
