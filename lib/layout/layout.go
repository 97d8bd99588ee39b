// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/google/uuid"

	"github.com/bureau-foundation/polyparse/lib/cursor"
	"github.com/bureau-foundation/polyparse/lib/diagnostic"
)

const (
	// MaxLayoutVersion is the newest layout version this package knows.
	MaxLayoutVersion = 80

	// MaxBridgeVersion is the newest bridge version this package knows.
	// Version 16 adds the edge color table; files written by games that
	// stop at 15 decode with that table empty.
	MaxBridgeVersion = 16
)

// Config controls a decode or encode pass. The zero value is usable:
// unset fields take the values of [DefaultConfig].
type Config struct {
	// MaxLayoutVersion and MaxBridgeVersion bound the schema. Decoding
	// a newer version reports a diagnostic and continues with the
	// maximum; encoding always writes the maximum.
	MaxLayoutVersion int
	MaxBridgeVersion int

	// ByteOrder is the order of multi-byte values on the wire.
	ByteOrder binary.ByteOrder

	// Logger, when set, receives a debug record per top-level section
	// and a warning per diagnostic.
	Logger *slog.Logger

	// FillMissingEdgeGUIDs makes Encode write a fresh identifier for
	// every edge whose Guid is empty. The caller's model is not
	// modified.
	FillMissingEdgeGUIDs bool

	// NewGUID generates edge identifiers. Defaults to random UUIDs.
	NewGUID func() string
}

// DefaultConfig returns the configuration used for fields left unset.
func DefaultConfig() Config {
	return Config{
		MaxLayoutVersion: MaxLayoutVersion,
		MaxBridgeVersion: MaxBridgeVersion,
		ByteOrder:        binary.BigEndian,
		NewGUID:          uuid.NewString,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.MaxLayoutVersion <= 0 {
		c.MaxLayoutVersion = defaults.MaxLayoutVersion
	}
	if c.MaxBridgeVersion <= 0 {
		c.MaxBridgeVersion = defaults.MaxBridgeVersion
	}
	if c.ByteOrder == nil {
		c.ByteOrder = defaults.ByteOrder
	}
	if c.NewGUID == nil {
		c.NewGUID = defaults.NewGUID
	}
	return c
}

// Result is a decoded layout together with the non-fatal findings of
// the decode.
type Result struct {
	Layout      *Layout
	Diagnostics diagnostic.List
}

// Decode parses a complete layout file. A read past the end of data
// inside a section is fatal and returns an error wrapping
// [cursor.ErrEndOfStream] and a [*FieldError]; no partial model is
// returned. Input that ends exactly before an optional trailing section
// decodes successfully with that section empty.
func Decode(data []byte, config Config) (*Result, error) {
	config = config.withDefaults()
	c := newDecoder(cursor.NewReader(data, config.ByteOrder), config)

	var l Layout
	walk(c, layoutFields, &l)
	if err := c.err(); err != nil {
		return nil, fmt.Errorf("decoding layout: %w", err)
	}
	normalize(&l)

	if config.Logger != nil {
		c.diagnostics.Log(config.Logger)
	}
	return &Result{Layout: &l, Diagnostics: c.diagnostics}, nil
}

// Encode serializes l at the configured maximum versions. Only the
// sign of l.Version is used; everything else is written in the newest
// schema.
func Encode(l *Layout, config Config) ([]byte, error) {
	if l == nil {
		return nil, errors.New("encoding layout: nil layout")
	}
	config = config.withDefaults()
	if config.FillMissingEdgeGUIDs {
		filled := *l
		filled.Bridge = withEdgeGUIDs(l.Bridge, config.NewGUID)
		l = &filled
	}

	// Outside the bridge section the bridge version in scope is the
	// header copy, which older targets do not write.
	bridge := config.MaxBridgeVersion
	if config.MaxLayoutVersion < headerBridgeVersionSince {
		bridge = 0
	}

	writer := cursor.NewWriter(EstimateSize(l), config.ByteOrder)
	c := newEncoder(writer, config, Versions{
		Layout: config.MaxLayoutVersion,
		Bridge: bridge,
		Modded: l.IsModded,
	})
	walk(c, layoutFields, l)
	if err := c.err(); err != nil {
		return nil, fmt.Errorf("encoding layout: %w", err)
	}
	return writer.Bytes(), nil
}

// DecodeBridge parses a bridge section on its own, as embedded in slot
// files. Piston values are remapped according to the bridge version.
// Bytes after the section are reported as a diagnostic.
func DecodeBridge(data []byte, config Config) (*Bridge, diagnostic.List, error) {
	config = config.withDefaults()
	reader := cursor.NewReader(data, config.ByteOrder)
	c := newDecoder(reader, config)
	c.bridgeOnly = true
	c.versions.Layout = config.MaxLayoutVersion

	var b Bridge
	c.push("bridge")
	bridgeSection(c, &b)
	if err := c.err(); err != nil {
		return nil, nil, fmt.Errorf("decoding bridge: %w", err)
	}
	if remaining := reader.Remaining(); remaining > 0 {
		c.diagnostics.Add(diagnostic.UnexpectedValue, reader.Offset(),
			"%d bytes after the bridge section", remaining)
	}
	normalize(&b)

	if config.Logger != nil {
		c.diagnostics.Log(config.Logger)
	}
	return &b, c.diagnostics, nil
}

// EncodeBridge serializes b as a standalone bridge section at the
// configured maximum bridge version.
func EncodeBridge(b *Bridge, config Config) ([]byte, error) {
	if b == nil {
		return nil, errors.New("encoding bridge: nil bridge")
	}
	config = config.withDefaults()
	if config.FillMissingEdgeGUIDs {
		filled := withEdgeGUIDs(*b, config.NewGUID)
		b = &filled
	}

	writer := cursor.NewWriter(EstimateBridgeSize(b), config.ByteOrder)
	c := newEncoder(writer, config, Versions{
		Layout: config.MaxLayoutVersion,
		Bridge: config.MaxBridgeVersion,
	})
	c.bridgeOnly = true
	c.push("bridge")
	bridgeSection(c, b)
	if err := c.err(); err != nil {
		return nil, fmt.Errorf("encoding bridge: %w", err)
	}
	return writer.Bytes(), nil
}

// EncodeBridgeOnly serializes only the bridge section of l. Every other
// part of the layout is ignored.
func EncodeBridgeOnly(l *Layout, config Config) ([]byte, error) {
	if l == nil {
		return nil, errors.New("encoding bridge: nil layout")
	}
	return EncodeBridge(&l.Bridge, config)
}

// withEdgeGUIDs returns b with a fresh identifier on every edge that has
// none. The edge slice is copied when any edge changes.
func withEdgeGUIDs(b Bridge, generate func() string) Bridge {
	copied := false
	for i, edge := range b.Edges {
		if edge.Guid != "" {
			continue
		}
		if !copied {
			b.Edges = append([]Edge(nil), b.Edges...)
			copied = true
		}
		b.Edges[i].Guid = generate()
	}
	return b
}

// normalize replaces every nil slice reachable from v with an empty
// one, so that absent collections render as [] rather than null.
func normalize(v any) {
	normalizeValue(reflect.ValueOf(v).Elem())
}

func normalizeValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.Struct:
		for i := range v.NumField() {
			normalizeValue(v.Field(i))
		}
	case reflect.Slice:
		if v.IsNil() {
			v.Set(reflect.MakeSlice(v.Type(), 0, 0))
			return
		}
		for i := range v.Len() {
			normalizeValue(v.Index(i))
		}
	}
}
