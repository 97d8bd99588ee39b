// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package slot

import (
	"github.com/bureau-foundation/polyparse/lib/diagnostic"
	"github.com/bureau-foundation/polyparse/lib/layout"
)

// EmbedBridge encodes b as the standalone bridge section a slot embeds.
// The bridge is placed in an otherwise empty layout, so no other
// collection or workshop text can reach the payload.
func EmbedBridge(b *layout.Bridge, config layout.Config) ([]byte, error) {
	holder := &layout.Layout{Bridge: *b}
	return layout.EncodeBridgeOnly(holder, config)
}

// ExtractBridge decodes the bridge section embedded in a slot.
func ExtractBridge(payload []byte, config layout.Config) (*layout.Bridge, diagnostic.List, error) {
	return layout.DecodeBridge(payload, config)
}
