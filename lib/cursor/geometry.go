// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cursor

// Vec2 is a two-component float vector.
type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Vec3 is a three-component float vector.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Quaternion is a rotation stored as four floats in x, y, z, w order.
type Quaternion struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

// Color is an RGBA color with channels in [0,1]. Only the red, green
// and blue channels exist on the wire, as one byte each; alpha is
// always 1 after a read and is never written.
type Color struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

// channelToByte converts a [0,1] channel to its wire byte by scaling
// and truncating. Out of range values are clamped.
func channelToByte(channel float32) uint8 {
	scaled := channel * 255
	if scaled <= 0 {
		return 0
	}
	if scaled >= 255 {
		return 255
	}
	return uint8(scaled)
}
