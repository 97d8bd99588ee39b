// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package diagnostic collects non-fatal findings produced while
// decoding save files. Decoders append to a [List] and return it next
// to a successfully decoded model; fatal conditions are returned as
// errors instead and never appear here.
package diagnostic
