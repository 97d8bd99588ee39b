// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bureau-foundation/polyparse/lib/cursor"
	"github.com/bureau-foundation/polyparse/lib/diagnostic"
)

// FieldError reports the field a decode or encode failed in.
type FieldError struct {
	// Path names the field, e.g. "vehicles[2].checkpointGuids[0]".
	Path   string
	Offset int
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", e.Path, e.Offset, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// codec runs field tables in one direction. Exactly one of reader and
// writer is set. All table code goes through its primitives, so the
// same table describes both the decode and the encode pass.
type codec struct {
	reader *cursor.Reader
	writer *cursor.Writer

	config   Config
	versions Versions

	// bridgeOnly is set when a bridge section is coded without its
	// surrounding layout, which changes the piston remap context.
	bridgeOnly bool

	path        []string
	failure     error
	diagnostics diagnostic.List
}

func newDecoder(reader *cursor.Reader, config Config) *codec {
	return &codec{reader: reader, config: config}
}

func newEncoder(writer *cursor.Writer, config Config, versions Versions) *codec {
	return &codec{writer: writer, config: config, versions: versions}
}

func (c *codec) decoding() bool {
	return c.reader != nil
}

func (c *codec) offset() int {
	if c.decoding() {
		return c.reader.Offset()
	}
	return c.writer.Len()
}

// err returns the first failure, capturing the field path at the
// moment the underlying cursor first reported it.
func (c *codec) err() error {
	if c.failure != nil {
		return c.failure
	}
	var cause error
	if c.decoding() {
		cause = c.reader.Err()
	} else {
		cause = c.writer.Err()
	}
	if cause != nil {
		c.failure = &FieldError{Path: c.pathString(), Offset: c.offset(), Err: cause}
	}
	return c.failure
}

// fail stops the pass with err at the current field.
func (c *codec) fail(err error) {
	if c.failure != nil {
		return
	}
	c.failure = &FieldError{Path: c.pathString(), Offset: c.offset(), Err: err}
}

func (c *codec) push(segment string) {
	c.path = append(c.path, segment)
}

func (c *codec) pop() {
	c.path = c.path[:len(c.path)-1]
}

func (c *codec) pathString() string {
	var builder strings.Builder
	for i, segment := range c.path {
		if i > 0 && !strings.HasPrefix(segment, "[") {
			builder.WriteByte('.')
		}
		builder.WriteString(segment)
	}
	if builder.Len() == 0 {
		return "layout"
	}
	return builder.String()
}

func (c *codec) trace(section string) {
	if c.config.Logger == nil || len(c.path) != 0 {
		return
	}
	mode := "encode"
	if c.decoding() {
		mode = "decode"
	}
	c.config.Logger.Debug("layout section",
		slog.String("section", section),
		slog.String("mode", mode),
		slog.Int("offset", c.offset()),
	)
}

// pistonContext is the version compared against pistonRemapBefore. A
// bridge decoded on its own has no layout version, so the legacy piston
// convention is recognized by the bridge section's version instead.
// Inside a full layout the layout version decides, as the game does.
func (c *codec) pistonContext() int {
	if c.bridgeOnly {
		return c.versions.Bridge
	}
	return c.versions.Layout
}

// Bidirectional primitives. Each reads into *v when decoding and writes
// *v when encoding.

func (c *codec) boolean(v *bool) {
	if c.decoding() {
		*v = c.reader.Bool()
	} else {
		c.writer.Bool(*v)
	}
}

func (c *codec) integer(v *int32) {
	if c.decoding() {
		*v = c.reader.Int32()
	} else {
		c.writer.Int32(*v)
	}
}

func (c *codec) float(v *float32) {
	if c.decoding() {
		*v = c.reader.Float32()
	} else {
		c.writer.Float32(*v)
	}
}

func (c *codec) text(v *string) {
	if c.decoding() {
		*v = c.reader.String16()
	} else {
		c.writer.String16(*v)
	}
}

func (c *codec) vec2(v *Vec2) {
	if c.decoding() {
		*v = c.reader.Vec2()
	} else {
		c.writer.Vec2(*v)
	}
}

func (c *codec) vec3(v *Vec3) {
	if c.decoding() {
		*v = c.reader.Vec3()
	} else {
		c.writer.Vec3(*v)
	}
}

func (c *codec) quaternion(v *Quaternion) {
	if c.decoding() {
		*v = c.reader.Quaternion()
	} else {
		c.writer.Quaternion(*v)
	}
}

func (c *codec) color(v *Color) {
	if c.decoding() {
		*v = c.reader.Color()
	} else {
		c.writer.Color(*v)
	}
}

func (c *codec) byteArray(v *[]byte) {
	if c.decoding() {
		*v = c.reader.ByteArray()
	} else {
		c.writer.ByteArray(*v)
	}
}

// Garbage primitives keep the cursor aligned over values the format
// still carries but nothing uses. Encoding writes a zero value; the
// encoder targets the newest schema, where none of these are present.

func (c *codec) discardBool() {
	var v bool
	c.boolean(&v)
}

func (c *codec) discardInt32() {
	var v int32
	c.integer(&v)
}

func (c *codec) discardFloat32() {
	var v float32
	c.float(&v)
}

func (c *codec) discardStrings() {
	var v []string
	list(c, &v, (*codec).text)
}

// list codes a 32-bit count followed by that many elements.
func list[E any](c *codec, items *[]E, element func(*codec, *E)) {
	if !c.decoding() {
		c.writer.Count(len(*items))
		for i := range *items {
			c.push(indexSegment(i))
			element(c, &(*items)[i])
			if c.err() != nil {
				return
			}
			c.pop()
		}
		return
	}

	n := c.reader.Count()
	if c.err() != nil {
		return
	}
	decoded := make([]E, n)
	for i := range decoded {
		c.push(indexSegment(i))
		element(c, &decoded[i])
		if c.err() != nil {
			return
		}
		c.pop()
	}
	*items = decoded
}

func indexSegment(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
