// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

// NewDefault returns the layout the game creates for a new level: a
// Steampunk theme, generous budgets, no water simulation, and two
// hidden book-end terrain pieces around a single water block.
func NewDefault() *Layout {
	l := &Layout{
		Version:       MaxLayoutVersion,
		BridgeVersion: MaxBridgeVersion,
		ThemeStubKey:  "Steampunk",
		Bridge:        Bridge{Version: MaxBridgeVersion},
		Budget: Budget{
			Cash:                10_000_000,
			Road:                100,
			Wood:                100,
			Steel:               100,
			Hydraulics:          100,
			Rope:                100,
			Cable:               100,
			Spring:              100,
			BungeeRope:          100,
			AllowWood:           true,
			AllowSteel:          true,
			AllowHydraulics:     true,
			AllowRope:           true,
			AllowCable:          true,
			AllowSpring:         true,
			AllowReinforcedRoad: true,
		},
		Settings: Settings{NoWater: true},
		WaterBlocks: []WaterBlock{{
			Pos:    Vec3{X: 6, Y: 1.5},
			Width:  12,
			Height: 3,
		}},
		TerrainStretches: []TerrainStretch{
			bookEnd(0, 3, false),
			bookEnd(12, 1, true),
		},
	}
	normalize(l)
	return l
}

func bookEnd(x, waterHeight float32, flipped bool) TerrainStretch {
	return TerrainStretch{
		Pos:                  Vec3{X: x},
		PrefabName:           "Terrain_BookEndD",
		RightEdgeWaterHeight: waterHeight,
		VariantIndex:         3,
		Flipped:              flipped,
		Hidden:               true,
	}
}
