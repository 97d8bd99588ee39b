// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package slot

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/polyparse/lib/cursor"
	"github.com/bureau-foundation/polyparse/lib/nodestream"
)

// Type names registered by the slot template.
const (
	slotTypeName      = "BridgeSaveSlotData, Assembly-CSharp"
	byteArrayTypeName = "System.Byte[], mscorlib"
)

// Type keys and node ids assigned by the slot template.
const (
	slotTypeKey      = 0
	byteArrayTypeKey = 1

	rootNodeID      = 0
	bridgeNodeID    = 1
	thumbnailNodeID = 2
)

// Encode writes s in the record layout the game produces. The slot and
// physics versions are the configured maximums; the bridge is embedded
// with [EmbedBridge] under the layout configuration.
func Encode(s *Slot, config Config) ([]byte, error) {
	if s == nil {
		return nil, errors.New("encoding slot: nil slot")
	}
	config = config.withDefaults()

	payload, err := EmbedBridge(&s.Bridge, config.Layout)
	if err != nil {
		return nil, fmt.Errorf("encoding slot: %w", err)
	}

	w := nodestream.NewWriter(estimateSize(s, payload))
	w.StartReferenceNode(nodestream.TypeName(slotTypeKey, slotTypeName), rootNodeID)
	w.Int(fieldVersion, int32(config.MaxSlotVersion))
	w.Int(fieldPhysicsVersion, int32(config.MaxPhysicsVersion))
	w.Int(fieldSlotID, s.SlotID)
	w.String(fieldDisplayName, s.DisplayName)
	w.String(fieldSlotFilename, s.SlotFilename)
	w.Int(fieldBudget, s.Budget)
	w.Long(fieldLastWriteTimeTicks, s.LastWriteTimeTicks)

	w.StartNamedReferenceNode(fieldBridge, nodestream.TypeName(byteArrayTypeKey, byteArrayTypeName), bridgeNodeID)
	w.PrimitiveArray(1, payload)
	w.EndNode()

	if s.Thumbnail == nil {
		w.Null(fieldThumbnail)
	} else {
		w.StartNamedReferenceNode(fieldThumbnail, nodestream.TypeID(byteArrayTypeKey), thumbnailNodeID)
		w.PrimitiveArray(1, s.Thumbnail)
		w.EndNode()
	}

	w.Bool(fieldUsingUnlimitedMaterials, s.UsingUnlimitedMaterials)
	w.Bool(fieldUsingUnlimitedBudget, s.UsingUnlimitedBudget)
	w.EndNode()

	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("encoding slot: %w", err)
	}
	return w.Bytes(), nil
}

// estimateSize returns the exact size of the template for s with the
// given bridge payload.
func estimateSize(s *Slot, payload []byte) int {
	size := nodestream.StartNodeSize("", nodestream.TypeName(slotTypeKey, slotTypeName))
	for _, name := range []string{fieldVersion, fieldPhysicsVersion, fieldSlotID, fieldBudget} {
		size += nodestream.ScalarSize(name, cursor.SizeInt32)
	}
	size += nodestream.ScalarSize(fieldDisplayName, cursor.KindStringSize(s.DisplayName))
	size += nodestream.ScalarSize(fieldSlotFilename, cursor.KindStringSize(s.SlotFilename))
	size += nodestream.ScalarSize(fieldLastWriteTimeTicks, cursor.SizeInt64)

	size += nodestream.StartNodeSize(fieldBridge, nodestream.TypeName(byteArrayTypeKey, byteArrayTypeName))
	size += nodestream.SizeArrayHeader + len(payload) + nodestream.SizeEndNode

	if s.Thumbnail == nil {
		size += nodestream.ScalarSize(fieldThumbnail, 0)
	} else {
		size += nodestream.StartNodeSize(fieldThumbnail, nodestream.TypeID(byteArrayTypeKey))
		size += nodestream.SizeArrayHeader + len(s.Thumbnail) + nodestream.SizeEndNode
	}

	size += nodestream.ScalarSize(fieldUsingUnlimitedMaterials, cursor.SizeBool)
	size += nodestream.ScalarSize(fieldUsingUnlimitedBudget, cursor.SizeBool)
	return size + nodestream.SizeEndNode
}
