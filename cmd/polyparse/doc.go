// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Polyparse decodes and encodes Poly Bridge 2 level layouts (.layout)
// and save slots (.slot).
//
//	polyparse layout|slot FILE
//	polyparse encode layout|slot [-o OUT] FILE
//	polyparse roundtrip layout|slot FILE
//	polyparse info layout|slot [--check-refs] FILE
//	polyparse new [-o OUT]
//	polyparse version
//
// Run "polyparse --help" for the full command list.
package main
