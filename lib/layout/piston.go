// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import "math"

// pistonRemapBefore is the version below which piston values are stored
// in the legacy convention. In layout mode it is compared against the
// layout version; when a bridge is decoded on its own, against the
// bridge version.
const pistonRemapBefore = 8

// RemapPistonValue converts a legacy piston value to the canonical
// [0,1] convention. The legacy encoding is piecewise linear around
// 0.25 and 0.75:
//
//	0.00 -> 1.0   0.25 -> 0.5   0.50 -> 0.0   0.75 -> 0.5   1.00 -> 1.0
//
// Values outside [0,1] clamp to the nearest end of their branch.
func RemapPistonValue(value float32) float32 {
	v := float64(value)
	switch {
	case v < 0.25:
		return float32(lerp(1.0, 0.5, clamp01(v/0.25)))
	case v > 0.75:
		return float32(lerp(0.5, 1.0, clamp01((v-0.75)/0.25)))
	default:
		return float32(lerp(0.0, 0.5, clamp01(math.Abs(v-0.5)/0.25)))
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
