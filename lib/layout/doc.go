// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package layout decodes and encodes Poly Bridge 2 layout files and the
// bridge sections embedded in slot files.
//
// The format is a fixed sequence of sections whose fields come and go
// with the layout version and, inside the bridge, the bridge version.
// Each section is described once as a table of fields, and each field
// carries a [Gate] over the [Versions] in scope. The same tables drive
// both directions: [Decode] walks them against a [cursor.Reader], and
// [Encode] walks them against a fixed-size [cursor.Writer] at the
// newest versions.
//
// Decoding is a single forward pass. A read past the end of the input
// is fatal and is reported as a [*FieldError] naming the field. The
// exception is the trailing optional sections (decor and mod data),
// which older writers omit: input that ends cleanly before one of them
// decodes successfully. A version above the newest known one produces a
// [diagnostic.VersionTooNew] entry and decoding continues with the
// newest schema.
//
// Piston values stored before version 8 use a legacy convention and are
// converted with [RemapPistonValue] on decode. Encoding always writes
// the canonical form.
package layout
