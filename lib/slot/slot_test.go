// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package slot

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/polyparse/lib/cursor"
	"github.com/bureau-foundation/polyparse/lib/diagnostic"
	"github.com/bureau-foundation/polyparse/lib/layout"
	"github.com/bureau-foundation/polyparse/lib/nodestream"
)

func sampleBridge() layout.Bridge {
	return layout.Bridge{
		Version: layout.MaxBridgeVersion,
		Joints:  []layout.Joint{{Pos: layout.Vec3{X: 1, Y: 2}, Guid: "joint-1"}},
		Edges: []layout.Edge{{
			MaterialType: 2, NodeAGuid: "joint-1", NodeBGuid: "anchor-1", Guid: "edge-1",
		}},
		Anchors: []layout.Joint{{Pos: layout.Vec3{X: -1}, IsAnchor: true, Guid: "anchor-1"}},
	}
}

func sampleSlot() *Slot {
	return &Slot{
		SlotID:                  4,
		DisplayName:             "Drawbridge",
		SlotFilename:            "slot_4.slot",
		Budget:                  25000,
		LastWriteTimeTicks:      638_400_000_000_000_000,
		Bridge:                  sampleBridge(),
		Thumbnail:               []byte{0x89, 'P', 'N', 'G', 0, 1, 2},
		UsingUnlimitedMaterials: true,
	}
}

func mustEncode(t *testing.T, s *Slot) []byte {
	t.Helper()
	data, err := Encode(s, DefaultConfig())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}

func mustDecode(t *testing.T, data []byte) *Document {
	t.Helper()
	document, err := Decode(data, DefaultConfig())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return document
}

func TestRoundTrip(t *testing.T) {
	original := sampleSlot()
	data := mustEncode(t, original)
	document := mustDecode(t, data)

	if len(document.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", document.Diagnostics)
	}
	got := document.Slot
	if got.Version != MaxSlotVersion || got.PhysicsVersion != MaxPhysicsVersion {
		t.Errorf("versions = %d/%d, want %d/%d", got.Version, got.PhysicsVersion, MaxSlotVersion, MaxPhysicsVersion)
	}
	if got.SlotID != original.SlotID || got.DisplayName != original.DisplayName ||
		got.SlotFilename != original.SlotFilename || got.Budget != original.Budget {
		t.Errorf("metadata = %+v", got)
	}
	if got.LastWriteTimeTicks != original.LastWriteTimeTicks {
		t.Errorf("LastWriteTimeTicks = %d, want %d", got.LastWriteTimeTicks, original.LastWriteTimeTicks)
	}
	if !bytes.Equal(got.Thumbnail, original.Thumbnail) {
		t.Errorf("Thumbnail = %v, want %v", got.Thumbnail, original.Thumbnail)
	}
	if !got.UsingUnlimitedMaterials || got.UsingUnlimitedBudget {
		t.Errorf("unlimited flags = %v/%v", got.UsingUnlimitedMaterials, got.UsingUnlimitedBudget)
	}
	if len(got.Bridge.Joints) != 1 || got.Bridge.Joints[0].Guid != "joint-1" {
		t.Errorf("bridge joints = %+v", got.Bridge.Joints)
	}
	if len(got.Bridge.Edges) != 1 || got.Bridge.Edges[0].NodeBGuid != "anchor-1" {
		t.Errorf("bridge edges = %+v", got.Bridge.Edges)
	}

	substituted, _ := document.Tree.Root.Get(fieldBridge)
	if _, ok := substituted.(*layout.Bridge); !ok {
		t.Errorf("tree m_Bridge = %T, want *layout.Bridge", substituted)
	}

	again := mustEncode(t, got)
	if !bytes.Equal(again, data) {
		t.Errorf("re-encoded slot differs: %d bytes vs %d", len(again), len(data))
	}
}

func TestEncodeTemplate(t *testing.T) {
	s := sampleSlot()
	data := mustEncode(t, s)

	payload, err := EmbedBridge(&s.Bridge, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("EmbedBridge: %v", err)
	}
	if len(data) != estimateSize(s, payload) {
		t.Errorf("encoded %d bytes, estimate %d", len(data), estimateSize(s, payload))
	}

	w := cursor.NewGrowableWriter(binary.LittleEndian)
	w.Uint8(byte(nodestream.TagUnnamedStartOfReferenceNode))
	w.Uint8(byte(nodestream.TagTypeName))
	w.Int32(0)
	w.KindString("BridgeSaveSlotData, Assembly-CSharp")
	w.Int32(0)
	w.Uint8(byte(nodestream.TagNamedInt))
	w.KindString("m_Version")
	w.Int32(MaxSlotVersion)
	prefix := w.Bytes()
	if !bytes.HasPrefix(data, prefix) {
		t.Errorf("slot prefix = % x\nwant          % x", data[:len(prefix)], prefix)
	}
	if data[len(data)-1] != byte(nodestream.TagEndOfNode) {
		t.Errorf("last byte = %#x, want end of node", data[len(data)-1])
	}

	// The thumbnail array header is count then width.
	header := cursor.NewGrowableWriter(binary.LittleEndian)
	header.Uint8(byte(nodestream.TagPrimitiveArray))
	header.Int32(int32(len(s.Thumbnail)))
	header.Int32(1)
	header.Raw(s.Thumbnail)
	if !bytes.Contains(data, header.Bytes()) {
		t.Errorf("thumbnail array with count %d and width 1 not found", len(s.Thumbnail))
	}
}

func TestNullThumbnail(t *testing.T) {
	s := sampleSlot()
	s.Thumbnail = nil
	document := mustDecode(t, mustEncode(t, s))

	if document.Slot.Thumbnail != nil {
		t.Errorf("Thumbnail = %v, want nil", document.Slot.Thumbnail)
	}
	value, ok := document.Tree.Root.Get(fieldThumbnail)
	if !ok || value != nil {
		t.Errorf("m_Thumb = %#v, %v; want named null", value, ok)
	}
}

func TestEncodeWritesConfiguredVersions(t *testing.T) {
	s := sampleSlot()
	s.Version = 99
	s.PhysicsVersion = 42
	document := mustDecode(t, mustEncode(t, s))
	if document.Slot.Version != MaxSlotVersion || document.Slot.PhysicsVersion != MaxPhysicsVersion {
		t.Errorf("versions = %d/%d, want configured maximums", document.Slot.Version, document.Slot.PhysicsVersion)
	}
}

// writeSlot builds a slot stream by hand around a valid bridge payload.
func writeSlot(t *testing.T, fields func(w *nodestream.Writer)) []byte {
	t.Helper()
	bridge := sampleBridge()
	payload, err := EmbedBridge(&bridge, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("EmbedBridge: %v", err)
	}
	w := nodestream.NewWriter(4096)
	w.StartReferenceNode(nodestream.TypeName(slotTypeKey, slotTypeName), rootNodeID)
	fields(w)
	w.StartNamedReferenceNode(fieldBridge, nodestream.TypeName(byteArrayTypeKey, byteArrayTypeName), bridgeNodeID)
	w.PrimitiveArray(1, payload)
	w.EndNode()
	w.EndNode()
	if err := w.Err(); err != nil {
		t.Fatalf("writing slot: %v", err)
	}
	return w.Bytes()
}

func TestDecodeVersionTooNew(t *testing.T) {
	data := writeSlot(t, func(w *nodestream.Writer) {
		w.Int(fieldVersion, MaxSlotVersion+1)
		w.Int(fieldPhysicsVersion, MaxPhysicsVersion)
	})
	document := mustDecode(t, data)
	if !document.Diagnostics.Has(diagnostic.VersionTooNew) {
		t.Errorf("diagnostics = %v, want %s", document.Diagnostics, diagnostic.VersionTooNew)
	}
	if document.Slot.Version != MaxSlotVersion+1 {
		t.Errorf("Version = %d, want the decoded value", document.Slot.Version)
	}
}

func TestDecodeUnexpectedValue(t *testing.T) {
	data := writeSlot(t, func(w *nodestream.Writer) {
		w.String(fieldSlotID, "four")
		w.Int(fieldBudget, 10)
		w.Int(fieldThumbnail, 1)
	})
	document := mustDecode(t, data)

	var mismatches []string
	for _, d := range document.Diagnostics {
		if d.Kind == diagnostic.UnexpectedValue {
			mismatches = append(mismatches, d.Message)
		}
	}
	if len(mismatches) != 2 {
		t.Fatalf("mismatches = %v, want m_SlotID and m_Thumb", mismatches)
	}
	if !strings.HasPrefix(mismatches[0], fieldSlotID) || !strings.HasPrefix(mismatches[1], fieldThumbnail) {
		t.Errorf("mismatches = %v", mismatches)
	}
	if document.Slot.SlotID != 0 || document.Slot.Budget != 10 {
		t.Errorf("SlotID = %d, Budget = %d", document.Slot.SlotID, document.Slot.Budget)
	}
}

func TestDecodeErrors(t *testing.T) {
	noBridge := nodestream.NewWriter(256)
	noBridge.StartReferenceNode(nodestream.TypeName(slotTypeKey, slotTypeName), rootNodeID)
	noBridge.Int(fieldSlotID, 1)
	noBridge.EndNode()

	scalarBridge := nodestream.NewWriter(256)
	scalarBridge.StartReferenceNode(nodestream.TypeName(slotTypeKey, slotTypeName), rootNodeID)
	scalarBridge.Int(fieldBridge, 1)
	scalarBridge.EndNode()

	truncated := nodestream.NewWriter(256)
	truncated.StartReferenceNode(nodestream.TypeName(slotTypeKey, slotTypeName), rootNodeID)
	truncated.StartNamedReferenceNode(fieldBridge, nodestream.TypeName(byteArrayTypeKey, byteArrayTypeName), bridgeNodeID)
	truncated.PrimitiveArray(1, []byte{0, 0})
	truncated.EndNode()
	truncated.EndNode()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"no bridge", noBridge.Bytes(), ErrMissingBridge},
		{"scalar bridge", scalarBridge.Bytes(), ErrMissingBridge},
		{"truncated bridge", truncated.Bytes(), cursor.ErrEndOfStream},
		{"unbalanced stream", []byte{byte(nodestream.TagEndOfNode)}, nodestream.ErrUnbalanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			document, err := Decode(tt.data, DefaultConfig())
			if !errors.Is(err, tt.want) {
				t.Fatalf("Decode error = %v, want %v", err, tt.want)
			}
			if document != nil {
				t.Error("document returned with error")
			}
		})
	}
}

func TestEmbedBridgeIgnoresOtherSections(t *testing.T) {
	bridge := sampleBridge()
	payload, err := EmbedBridge(&bridge, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("EmbedBridge: %v", err)
	}
	direct, err := layout.EncodeBridge(&bridge, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("EncodeBridge: %v", err)
	}
	if !bytes.Equal(payload, direct) {
		t.Errorf("embedded payload differs from a standalone bridge section")
	}

	decoded, diagnostics, err := ExtractBridge(payload, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("ExtractBridge: %v", err)
	}
	if len(diagnostics) != 0 {
		t.Errorf("diagnostics = %v", diagnostics)
	}
	if len(decoded.Anchors) != 1 || decoded.Anchors[0].Guid != "anchor-1" {
		t.Errorf("anchors = %+v", decoded.Anchors)
	}
}

func TestDocumentJSON(t *testing.T) {
	document := mustDecode(t, mustEncode(t, sampleSlot()))
	data, err := json.Marshal(document)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	var thumbnail []byte
	if err := json.Unmarshal(fields[fieldThumbnail], &thumbnail); err != nil {
		t.Fatalf("m_Thumb is not base64 text: %s", fields[fieldThumbnail])
	}
	if !bytes.Equal(thumbnail, sampleSlot().Thumbnail) {
		t.Errorf("m_Thumb = %v", thumbnail)
	}

	var bridge layout.Bridge
	if err := json.Unmarshal(fields[fieldBridge], &bridge); err != nil {
		t.Fatalf("m_Bridge: %v", err)
	}
	if bridge.Version != layout.MaxBridgeVersion || len(bridge.Joints) != 1 {
		t.Errorf("m_Bridge = %+v", bridge)
	}

	// The document's JSON form is also the input form of Encode.
	var s Slot
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("Unmarshal into Slot: %v", err)
	}
	if s.DisplayName != "Drawbridge" || !bytes.Equal(s.Thumbnail, sampleSlot().Thumbnail) {
		t.Errorf("slot from JSON = %+v", s)
	}
}

func TestLastWriteTime(t *testing.T) {
	var s Slot
	millennium := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	s.SetLastWriteTime(millennium)
	if s.LastWriteTimeTicks != 630_822_816_000_000_000 {
		t.Errorf("ticks = %d, want 630822816000000000", s.LastWriteTimeTicks)
	}
	later := millennium.Add(1500 * time.Millisecond)
	s.SetLastWriteTime(later)
	if got := s.LastWriteTime(); !got.Equal(later) {
		t.Errorf("LastWriteTime = %v, want %v", got, later)
	}
}
