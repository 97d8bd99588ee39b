// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

// field is one row of a field table: a named value of T, the gate
// deciding whether the current versions carry it, the code that moves
// it through the cursor, and an optional fallback applied on decode
// when the gate is closed.
type field[T any] struct {
	name     string
	gate     Gate
	code     func(c *codec, v *T)
	fallback func(c *codec, v *T)

	// tail marks a trailing section. When the input is exhausted
	// exactly at a tail boundary the decode ends there successfully.
	tail bool
}

// when returns f gated on gate.
func (f field[T]) when(gate Gate) field[T] {
	f.gate = gate
	return f
}

// otherwise returns f with a decode fallback for absent versions.
func (f field[T]) otherwise(fallback func(v *T)) field[T] {
	f.fallback = func(_ *codec, v *T) { fallback(v) }
	return f
}

// atTail returns f marked as a trailing section.
func (f field[T]) atTail() field[T] {
	f.tail = true
	return f
}

// walk runs a field table over v. It returns false when the pass
// should stop: on error, or after a tail boundary at end of input.
func walk[T any](c *codec, fields []field[T], v *T) bool {
	for _, f := range fields {
		if f.gate != nil && !f.gate(c.versions) {
			if f.fallback != nil && c.decoding() {
				f.fallback(c, v)
			}
			continue
		}
		if f.tail && c.decoding() && c.reader.AtEnd() {
			return false
		}
		c.trace(f.name)
		c.push(f.name)
		f.code(c, v)
		if c.err() != nil {
			return false
		}
		c.pop()
	}
	return true
}

// member builds a field for a value reached through ref and coded by
// primitive.
func member[T, V any](name string, primitive func(*codec, *V), ref func(*T) *V) field[T] {
	return field[T]{
		name: name,
		code: func(c *codec, v *T) { primitive(c, ref(v)) },
	}
}

// listOf builds a field for a counted list reached through ref.
func listOf[T, E any](name string, element func(*codec, *E), ref func(*T) *[]E) field[T] {
	return field[T]{
		name: name,
		code: func(c *codec, v *T) { list(c, ref(v), element) },
	}
}

// nested builds a field for a sub-structure described by its own table.
func nested[T, S any](name string, fields []field[S], ref func(*T) *S) field[T] {
	return field[T]{
		name: name,
		code: func(c *codec, v *T) { walk(c, fields, ref(v)) },
	}
}

// garbage builds a field that is read and discarded.
func garbage[T any](name string, discard func(*codec)) field[T] {
	return field[T]{
		name: name,
		code: func(c *codec, _ *T) { discard(c) },
	}
}

// custom builds a field with hand-written code.
func custom[T any](name string, code func(c *codec, v *T)) field[T] {
	return field[T]{name: name, code: code}
}

// entity adapts a table into a list element function.
func entity[E any](fields []field[E]) func(*codec, *E) {
	return func(c *codec, v *E) { walk(c, fields, v) }
}
