// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package slot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bureau-foundation/polyparse/lib/diagnostic"
	"github.com/bureau-foundation/polyparse/lib/layout"
	"github.com/bureau-foundation/polyparse/lib/nodestream"
)

// Field names of the slot root node.
const (
	fieldVersion                 = "m_Version"
	fieldPhysicsVersion          = "m_PhysicsVersion"
	fieldSlotID                  = "m_SlotID"
	fieldDisplayName             = "m_DisplayName"
	fieldSlotFilename            = "m_SlotFilename"
	fieldBudget                  = "m_Budget"
	fieldLastWriteTimeTicks      = "m_LastWriteTimeTicks"
	fieldBridge                  = "m_Bridge"
	fieldThumbnail               = "m_Thumb"
	fieldUsingUnlimitedMaterials = "m_UsingUnlimitedMaterials"
	fieldUsingUnlimitedBudget    = "m_UsingUnlimitedBudget"
)

// ErrMissingBridge is returned when the slot root has no byte-array
// bridge node.
var ErrMissingBridge = errors.New("slot has no embedded bridge")

// Document is a decoded slot.
type Document struct {
	// Tree is the decoded node stream. Its m_Bridge field holds the
	// decoded *layout.Bridge in place of the raw payload.
	Tree *nodestream.Tree

	// Slot is the typed view of the root node.
	Slot *Slot

	// Diagnostics collects node stream, embedded bridge and slot
	// findings, in that order.
	Diagnostics diagnostic.List
}

// MarshalJSON renders the root node of the tree.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Tree.Root)
}

// MarshalCBOR renders the root node of the tree.
func (d *Document) MarshalCBOR() ([]byte, error) {
	return d.Tree.Root.MarshalCBOR()
}

// Decode parses a slot file and its embedded bridge. Root fields whose
// value has an unexpected kind are reported as diagnostics and left at
// their zero value in the typed view.
func Decode(data []byte, config Config) (*Document, error) {
	config = config.withDefaults()
	tree, err := nodestream.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding slot: %w", err)
	}
	diagnostics := append(diagnostic.List(nil), tree.Diagnostics...)
	root := tree.Root

	payload, err := bridgePayload(root)
	if err != nil {
		return nil, fmt.Errorf("decoding slot: %w", err)
	}
	bridge, bridgeDiagnostics, err := ExtractBridge(payload, config.Layout)
	if err != nil {
		return nil, fmt.Errorf("decoding slot: %w", err)
	}
	diagnostics = append(diagnostics, bridgeDiagnostics...)
	root.Set(fieldBridge, bridge)

	x := extractor{root: root, diagnostics: &diagnostics}
	s := &Slot{
		Version:                 x.intField(fieldVersion),
		PhysicsVersion:          x.intField(fieldPhysicsVersion),
		SlotID:                  x.intField(fieldSlotID),
		DisplayName:             x.stringField(fieldDisplayName),
		SlotFilename:            x.stringField(fieldSlotFilename),
		Budget:                  x.intField(fieldBudget),
		LastWriteTimeTicks:      x.longField(fieldLastWriteTimeTicks),
		Bridge:                  *bridge,
		Thumbnail:               x.bytesField(fieldThumbnail),
		UsingUnlimitedMaterials: x.boolField(fieldUsingUnlimitedMaterials),
		UsingUnlimitedBudget:    x.boolField(fieldUsingUnlimitedBudget),
	}
	if int(s.Version) > config.MaxSlotVersion {
		diagnostics.Add(diagnostic.VersionTooNew, diagnostic.NoOffset,
			"slot version %d is newer than %d", s.Version, config.MaxSlotVersion)
	}
	if int(s.PhysicsVersion) > config.MaxPhysicsVersion {
		diagnostics.Add(diagnostic.VersionTooNew, diagnostic.NoOffset,
			"physics version %d is newer than %d", s.PhysicsVersion, config.MaxPhysicsVersion)
	}

	if config.Logger != nil {
		diagnostics.Log(config.Logger)
	}
	return &Document{Tree: tree, Slot: s, Diagnostics: diagnostics}, nil
}

func bridgePayload(root *nodestream.Node) ([]byte, error) {
	value, ok := root.Get(fieldBridge)
	if !ok {
		return nil, fmt.Errorf("%w: no %s field", ErrMissingBridge, fieldBridge)
	}
	node, ok := value.(*nodestream.Node)
	if !ok || node.Array == nil || node.Array.Width != 1 {
		return nil, fmt.Errorf("%w: %s is %s, want a byte array", ErrMissingBridge, fieldBridge, describe(value))
	}
	return node.Array.Bytes(), nil
}

// extractor reads typed root fields. Absent fields yield zero values;
// fields of the wrong kind add an UnexpectedValue diagnostic.
type extractor struct {
	root        *nodestream.Node
	diagnostics *diagnostic.List
}

func (x extractor) mismatch(name, want string, value any) {
	x.diagnostics.Add(diagnostic.UnexpectedValue, diagnostic.NoOffset,
		"%s is %s, want %s", name, describe(value), want)
}

func (x extractor) intField(name string) int32 {
	value, ok := x.root.Get(name)
	if !ok {
		return 0
	}
	n, ok := value.(int32)
	if !ok {
		x.mismatch(name, "int", value)
	}
	return n
}

func (x extractor) longField(name string) int64 {
	value, ok := x.root.Get(name)
	if !ok {
		return 0
	}
	switch n := value.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	default:
		x.mismatch(name, "long", value)
		return 0
	}
}

func (x extractor) stringField(name string) string {
	value, ok := x.root.Get(name)
	if !ok {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		x.mismatch(name, "string", value)
	}
	return s
}

func (x extractor) boolField(name string) bool {
	value, ok := x.root.Get(name)
	if !ok {
		return false
	}
	b, ok := value.(bool)
	if !ok {
		x.mismatch(name, "boolean", value)
	}
	return b
}

// bytesField reads a byte-array node. A named null yields nil.
func (x extractor) bytesField(name string) []byte {
	value, ok := x.root.Get(name)
	if !ok || value == nil {
		return nil
	}
	node, ok := value.(*nodestream.Node)
	if !ok || node.Array == nil || node.Array.Width != 1 {
		x.mismatch(name, "byte array or null", value)
		return nil
	}
	return node.Array.Bytes()
}

func describe(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case *nodestream.Node:
		if v.Array != nil {
			return fmt.Sprintf("an array of %d-byte elements", v.Array.Width)
		}
		return "a node"
	case *layout.Bridge:
		return "a decoded bridge"
	default:
		return fmt.Sprintf("%T", value)
	}
}
