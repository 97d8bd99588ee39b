// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import "github.com/bureau-foundation/polyparse/lib/cursor"

// The estimates below count every field any schema version can write,
// including the legacy fields that only older targets emit, so they
// remain upper bounds whatever maximum the encoder is configured with.

const (
	sizeBool    = cursor.SizeBool
	sizeInt16   = cursor.SizeInt16
	sizeInt32   = cursor.SizeInt32
	sizeFloat   = cursor.SizeFloat32
	sizeVec2    = cursor.SizeVec2
	sizeVec3    = cursor.SizeVec3
	sizeQuat    = cursor.SizeQuaternion
	sizeColor   = cursor.SizeColor
	sizeCount   = sizeInt32
	sizeVersion = sizeInt32

	// estimateSlack absorbs small fixed-width additions.
	estimateSlack = 64
)

func sizeString(s string) int {
	return cursor.String16Size(s)
}

func sizeStrings(list []string) int {
	total := sizeCount
	for _, s := range list {
		total += sizeString(s)
	}
	return total
}

func sizeList[E any](items []E, element func(*E) int) int {
	total := sizeCount
	for i := range items {
		total += element(&items[i])
	}
	return total
}

// sizeFixed returns an element size function for a list with a
// fixed width element.
func sizeFixed[E any](width int) func(*E) int {
	return func(*E) int { return width }
}

func sizeJoint(j *Joint) int {
	return sizeVec3 + 3*sizeBool + sizeString(j.Guid)
}

func sizeEdge(e *Edge) int {
	return 4*sizeInt32 + sizeString(e.NodeAGuid) + sizeString(e.NodeBGuid) + sizeString(e.Guid)
}

func sizeSpring(s *Spring) int {
	return sizeFloat + sizeString(s.NodeAGuid) + sizeString(s.NodeBGuid) + sizeString(s.Guid)
}

func sizePiston(p *Piston) int {
	return sizeFloat + sizeString(p.NodeAGuid) + sizeString(p.NodeBGuid) + sizeString(p.Guid)
}

func sizeBridgePhase(p *BridgePhase) int {
	return sizeString(p.HydraulicPhaseGuid) +
		sizeStrings(p.PistonGuids) +
		sizeList(p.SplitJoints, func(s *SplitJoint) int { return sizeString(s.Guid) + sizeInt32 }) +
		sizeCount + sizeBool
}

func sizeBridgePillar(p *BridgePillar) int {
	return sizeVec3 + sizeFloat + sizeString(p.PrefabName) + sizeString(p.Guid) +
		sizeString(p.AnchorGuid) + sizeInt32
}

// EstimateBridgeSize returns an upper bound on the encoded size of b as
// a bridge section.
func EstimateBridgeSize(b *Bridge) int {
	return sizeVersion +
		sizeList(b.Joints, sizeJoint) +
		sizeList(b.Edges, sizeEdge) +
		sizeList(b.Springs, sizeSpring) +
		sizeList(b.Pistons, sizePiston) +
		sizeList(b.Phases, sizeBridgePhase) +
		sizeCount + // legacy phase identifiers
		sizeList(b.Anchors, sizeJoint) +
		sizeBool +
		sizeList(b.Pillars, sizeBridgePillar) +
		sizeList(b.PillarAnchors, sizeJoint) +
		sizeList(b.EdgeColors, func(e *EdgeColor) int { return sizeString(e.Key) + sizeString(e.Value) }) +
		estimateSlack
}

func sizeZedAxisVehicle(v *ZedAxisVehicle) int {
	return sizeVec2 + sizeString(v.PrefabName) + sizeString(v.Guid) + 2*sizeFloat +
		sizeQuat + 2*sizeFloat + sizeString(v.ModId) + 2*sizeBool
}

func sizeVehicle(v *Vehicle) int {
	return sizeString(v.DisplayName) + sizeVec2 + sizeQuat + sizeString(v.PrefabName) +
		3*sizeFloat + sizeInt32 + 6*sizeFloat + 3*sizeBool + sizeString(v.Guid) +
		sizeFloat + sizeString(v.SkinId) + sizeString(v.ModId) + sizeStrings(v.CheckpointGuids)
}

func sizeStopTrigger(t *VehicleStopTrigger) int {
	return sizeVec2 + sizeQuat + 2*sizeFloat + 2*sizeBool +
		sizeString(t.PrefabName) + sizeString(t.StopVehicleGuid)
}

func sizeThemeObject(o *ThemeObject) int {
	return sizeVec2 + sizeString(o.PrefabName) + sizeBool
}

func sizeEventTimeline(t *EventTimeline) int {
	return sizeString(t.CheckpointGuid) + sizeList(t.Stages, func(s *EventStage) int {
		// Legacy units carry two extra empty strings.
		return sizeList(s.Units, func(u *EventUnit) int { return sizeString(u.Guid) + 2*sizeString("") })
	})
}

func sizeCheckpoint(p *Checkpoint) int {
	return sizeVec2 + sizeString(p.PrefabName) + sizeString(p.VehicleGuid) +
		sizeString(p.VehicleRestartPhaseGuid) + 4*sizeBool + sizeString(p.Guid)
}

func sizeTerrainStretch(t *TerrainStretch) int {
	return sizeVec3 + sizeString(t.PrefabName) + 2*sizeFloat + 2*sizeInt32 + 3*sizeBool + sizeFloat
}

func sizeRamp(r *Ramp) int {
	return sizeVec2 + sizeCount + len(r.ControlPoints)*sizeVec2 + sizeFloat + 2*sizeInt32 +
		4*sizeBool + sizeInt32 + sizeCount + len(r.LinePoints)*sizeVec2
}

func sizeRestartPhase(p *VehicleRestartPhase) int {
	return sizeFloat + sizeString(p.Guid) + sizeString(p.VehicleGuid)
}

func sizeFlyingObject(o *FlyingObject) int {
	return 2*sizeVec3 + sizeString(o.PrefabName)
}

func sizeRock(r *Rock) int {
	return 2*sizeVec3 + sizeString(r.PrefabName) + 3*sizeBool
}

// Budget and settings, legacy garbage included.
const (
	sizeBudget   = 10*sizeInt32 + 8*sizeBool
	sizeSettings = 7*sizeBool + 4*sizeFloat + 2*sizeFloat + sizeFloat +
		sizeBool + sizeVec3 + sizeQuat + sizeFloat
)

func sizeCustomShape(s *CustomShape) int {
	total := sizeInt32 + sizeVec3 + sizeQuat + 2*sizeVec3 + 8*sizeBool + sizeFloat +
		sizeColor + sizeInt32 + 2*sizeFloat + sizeFloat + 4*sizeFloat +
		sizeString(s.TextureId) + sizeString(s.MeshId) + sizeVec3 +
		sizeFloat + sizeInt32 + sizeVec2 +
		sizeCount + len(s.PointsLocalSpace)*sizeVec2 +
		sizeCount + len(s.StaticPins)*sizeVec3 +
		sizeCount
	for i, guid := range s.DynamicAnchorGuids {
		total += sizeString(guid) + sizeCount
		if i < len(s.DynamicAnchors) {
			total += len(s.DynamicAnchors[i]) * sizeVec3
		}
	}
	return total
}

func sizeWorkshop(l *Layout) int {
	w := &l.Workshop
	return sizeString(w.Id) + sizeString(w.LeaderboardId) + 2*sizeBool + sizeStrings(w.Tags)
}

func sizeModData(d *ModData) int {
	total := sizeInt16 + sizeCount
	for _, mod := range d.Mods {
		total += sizeString(mod.String())
	}
	for _, save := range d.ModSaveData {
		total += sizeString(save.identifier()) + sizeCount + len(save.Data)
	}
	return total
}

// EstimateSize returns an upper bound on the encoded size of l. Encode
// allocates exactly this much and never grows the buffer.
func EstimateSize(l *Layout) int {
	return sizeVersion + sizeInt32 + sizeString(l.ThemeStubKey) +
		sizeList(l.Anchors, sizeJoint) +
		sizeList(l.Phases, func(p *HydraulicPhase) int { return sizeFloat + sizeString(p.Guid) }) +
		sizeCount + // legacy phase list
		EstimateBridgeSize(&l.Bridge) +
		sizeList(l.ZedAxisVehicles, sizeZedAxisVehicle) +
		sizeList(l.Vehicles, sizeVehicle) +
		sizeList(l.VehicleStopTriggers, sizeStopTrigger) +
		sizeList(l.ThemeObjectsObsolete, sizeThemeObject) +
		sizeList(l.EventTimelines, sizeEventTimeline) +
		sizeList(l.Checkpoints, sizeCheckpoint) +
		sizeList(l.TerrainStretches, sizeTerrainStretch) +
		sizeList(l.Platforms, sizeFixed[Platform](sizeVec2+2*sizeFloat+2*sizeBool+sizeInt32)) +
		sizeList(l.Ramps, sizeRamp) +
		sizeList(l.VehicleRestartPhases, sizeRestartPhase) +
		sizeList(l.FlyingObjects, sizeFlyingObject) +
		sizeList(l.Rocks, sizeRock) +
		sizeList(l.WaterBlocks, sizeFixed[WaterBlock](sizeVec3+2*sizeFloat+sizeBool)) +
		sizeCount + // legacy groups
		sizeBudget +
		sizeString(l.Title) + sizeString(l.Description) +
		sizeSettings +
		sizeList(l.CustomShapes, sizeCustomShape) +
		sizeWorkshop(l) +
		sizeList(l.SupportPillars, func(p *SupportPillar) int { return 2*sizeVec3 + sizeString(p.PrefabName) }) +
		sizeList(l.Pillars, func(p *Pillar) int { return sizeVec3 + sizeFloat + sizeString(p.PrefabName) }) +
		sizeList(l.BuildZones, func(z *BuildZone) int {
			return 2*sizeVec2 + sizeBool + sizeFloat + sizeInt32 + sizeCount + len(z.Vertices)*sizeVec3
		}) +
		sizeList(l.TrainTracks, func(t *TrainTrack) int { return sizeVec3 + sizeFloat + sizeString(t.Guid) }) +
		sizeList(l.Decors, func(d *Decor) int {
			return 2*sizeVec3 + 3*sizeFloat + sizeString(d.Id) + 2*sizeBool + sizeString(d.ModId)
		}) +
		sizeModData(&l.ModData) +
		estimateSlack
}
