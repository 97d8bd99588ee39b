// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package diagnostic

import (
	"fmt"
	"log/slog"
)

// Kind classifies a diagnostic.
type Kind string

const (
	// VersionTooNew marks a version number above the newest one the
	// decoder knows. Decoding continued with the newest known schema.
	VersionTooNew Kind = "version_too_new"

	// UnknownTypeEntry marks a tagged-node type entry with an
	// unrecognised tag, or a type id that was never registered.
	// Decoding continued with a null type descriptor.
	UnknownTypeEntry Kind = "unknown_type_entry"

	// UnexpectedValue marks a tagged-node field whose value kind does
	// not match what the slot document expects.
	UnexpectedValue Kind = "unexpected_value"

	// DanglingReference marks an identifier that refers to no entity
	// in the model. Only the optional reference check produces these.
	DanglingReference Kind = "dangling_reference"
)

// NoOffset is the Offset of a diagnostic about a decoded value rather
// than a position in the input.
const NoOffset = -1

// Diagnostic is a single non-fatal finding.
type Diagnostic struct {
	Kind    Kind   `json:"kind"`
	Offset  int    `json:"offset"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Offset == NoOffset {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s at offset %d: %s", d.Kind, d.Offset, d.Message)
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

// Add appends a diagnostic built from a format string.
func (l *List) Add(kind Kind, offset int, format string, args ...any) {
	*l = append(*l, Diagnostic{Kind: kind, Offset: offset, Message: fmt.Sprintf(format, args...)})
}

// Has reports whether any diagnostic of the given kind is present.
func (l List) Has(kind Kind) bool {
	for _, d := range l {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// Log writes every diagnostic to logger at warn level.
func (l List) Log(logger *slog.Logger) {
	for _, d := range l {
		logger.Warn(d.Message, "kind", string(d.Kind), "offset", d.Offset)
	}
}
