// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"errors"
	"math"

	"github.com/bureau-foundation/polyparse/lib/diagnostic"
)

// Layout-level tables. Gates in this file are on the layout version
// unless they say otherwise.

// headerBridgeVersionSince is the first layout version whose header
// carries a copy of the bridge version.
const headerBridgeVersionSince = 38

var errInvalidVersion = errors.New("invalid layout version")

// layoutVersion codes the signed version number. A negative value marks
// a modded layout.
func layoutVersion(c *codec, l *Layout) {
	if !c.decoding() {
		version := int32(c.config.MaxLayoutVersion)
		if l.IsModded {
			version = -version
		}
		c.writer.Int32(version)
		return
	}

	raw := c.reader.Int32()
	if c.err() != nil {
		return
	}
	if raw == math.MinInt32 {
		c.fail(errInvalidVersion)
		return
	}
	if raw < 0 {
		l.IsModded = true
		raw = -raw
	}
	l.Version = raw

	version := int(raw)
	if version > c.config.MaxLayoutVersion {
		c.diagnostics.Add(diagnostic.VersionTooNew, 0,
			"layout version %d is newer than the latest supported version %d",
			version, c.config.MaxLayoutVersion)
		version = c.config.MaxLayoutVersion
	}
	c.versions.Layout = version
	c.versions.Modded = l.IsModded
}

// headerBridgeVersion codes the header copy of the bridge version,
// which scopes the bridge-versioned fields of layout anchors.
func headerBridgeVersion(c *codec, l *Layout) {
	if !c.decoding() {
		c.writer.Int32(int32(c.config.MaxBridgeVersion))
		return
	}
	l.BridgeVersion = c.reader.Int32()
	c.versions.Bridge = min(int(l.BridgeVersion), c.config.MaxBridgeVersion)
}

var hydraulicPhaseFields = []field[HydraulicPhase]{
	member("timeDelay", (*codec).float, func(p *HydraulicPhase) *float32 { return &p.TimeDelay }),
	member("guid", (*codec).text, func(p *HydraulicPhase) *string { return &p.Guid }),
}

// legacyPhases codes the phase list that layouts before version 5
// store after the ramps. Decoded entries are appended to the phases
// read earlier.
func legacyPhases(c *codec, l *Layout) {
	if !c.decoding() {
		list(c, &l.Phases, entity(hydraulicPhaseFields))
		return
	}
	var phases []HydraulicPhase
	list(c, &phases, entity(hydraulicPhaseFields))
	l.Phases = append(l.Phases, phases...)
}

var zedAxisVehicleFields = []field[ZedAxisVehicle]{
	member("pos", (*codec).vec2, func(v *ZedAxisVehicle) *Vec2 { return &v.Pos }),
	member("prefabName", (*codec).text, func(v *ZedAxisVehicle) *string { return &v.PrefabName }),
	member("guid", (*codec).text, func(v *ZedAxisVehicle) *string { return &v.Guid }),
	member("timeDelay", (*codec).float, func(v *ZedAxisVehicle) *float32 { return &v.TimeDelay }),
	member("speed", (*codec).float, func(v *ZedAxisVehicle) *float32 { return &v.Speed }).
		when(OnLayout(Since(8))),
	member("rot", (*codec).quaternion, func(v *ZedAxisVehicle) *Quaternion { return &v.Rot }).
		when(OnLayout(Since(26))),
	member("rotationDegrees", (*codec).float, func(v *ZedAxisVehicle) *float32 { return &v.RotationDegrees }).
		when(OnLayout(Since(26))),
	member("uniformScale", (*codec).float, func(v *ZedAxisVehicle) *float32 { return &v.UniformScale }).
		when(OnLayout(Since(49))),
	member("modId", (*codec).text, func(v *ZedAxisVehicle) *string { return &v.ModId }).
		when(OnLayout(Since(54))),
	member("snapToWaterLine", (*codec).boolean, func(v *ZedAxisVehicle) *bool { return &v.SnapToWaterLine }).
		when(OnLayout(Since(54))),
	member("reverse", (*codec).boolean, func(v *ZedAxisVehicle) *bool { return &v.Reverse }).
		when(OnLayout(Since(57))),
}

var vehicleFields = []field[Vehicle]{
	member("displayName", (*codec).text, func(v *Vehicle) *string { return &v.DisplayName }),
	member("pos", (*codec).vec2, func(v *Vehicle) *Vec2 { return &v.Pos }),
	member("rot", (*codec).quaternion, func(v *Vehicle) *Quaternion { return &v.Rot }),
	member("prefabName", (*codec).text, func(v *Vehicle) *string { return &v.PrefabName }),
	member("targetSpeed", (*codec).float, func(v *Vehicle) *float32 { return &v.TargetSpeed }),
	member("mass", (*codec).float, func(v *Vehicle) *float32 { return &v.Mass }),
	member("brakingForceMultiplier", (*codec).float, func(v *Vehicle) *float32 { return &v.BrakingForceMultiplier }),
	member("strengthMethod", (*codec).integer, func(v *Vehicle) *int32 { return &v.StrengthMethod }),
	member("acceleration", (*codec).float, func(v *Vehicle) *float32 { return &v.Acceleration }),
	member("maxSlope", (*codec).float, func(v *Vehicle) *float32 { return &v.MaxSlope }),
	member("desiredAccleration", (*codec).float, func(v *Vehicle) *float32 { return &v.DesiredAccleration }),
	member("shocksMultiplier", (*codec).float, func(v *Vehicle) *float32 { return &v.ShocksMultiplier }),
	member("rotationDegrees", (*codec).float, func(v *Vehicle) *float32 { return &v.RotationDegrees }),
	member("timeDelay", (*codec).float, func(v *Vehicle) *float32 { return &v.TimeDelay }),
	member("idleOnDownhill", (*codec).boolean, func(v *Vehicle) *bool { return &v.IdleOnDownhill }),
	member("flipped", (*codec).boolean, func(v *Vehicle) *bool { return &v.Flipped }),
	member("orderedCheckpoints", (*codec).boolean, func(v *Vehicle) *bool { return &v.OrderedCheckpoints }),
	member("guid", (*codec).text, func(v *Vehicle) *string { return &v.Guid }),
	member("uniformScale", (*codec).float, func(v *Vehicle) *float32 { return &v.UniformScale }).
		when(OnLayout(Since(50))),
	member("skinId", (*codec).text, func(v *Vehicle) *string { return &v.SkinId }).
		when(OnLayout(Since(51))),
	member("modId", (*codec).text, func(v *Vehicle) *string { return &v.ModId }).
		when(OnLayout(Since(54))),
	listOf("checkpointGuids", (*codec).text, func(v *Vehicle) *[]string { return &v.CheckpointGuids }),
}

var vehicleStopTriggerFields = []field[VehicleStopTrigger]{
	member("pos", (*codec).vec2, func(t *VehicleStopTrigger) *Vec2 { return &t.Pos }),
	member("rot", (*codec).quaternion, func(t *VehicleStopTrigger) *Quaternion { return &t.Rot }),
	member("height", (*codec).float, func(t *VehicleStopTrigger) *float32 { return &t.Height }),
	member("rotationDegrees", (*codec).float, func(t *VehicleStopTrigger) *float32 { return &t.RotationDegrees }),
	member("flipped", (*codec).boolean, func(t *VehicleStopTrigger) *bool { return &t.Flipped }),
	member("invisibleInSim", (*codec).boolean, func(t *VehicleStopTrigger) *bool { return &t.InvisibleInSim }).
		when(OnLayout(Since(73))),
	member("prefabName", (*codec).text, func(t *VehicleStopTrigger) *string { return &t.PrefabName }),
	member("stopVehicleGuid", (*codec).text, func(t *VehicleStopTrigger) *string { return &t.StopVehicleGuid }),
}

var themeObjectFields = []field[ThemeObject]{
	member("pos", (*codec).vec2, func(o *ThemeObject) *Vec2 { return &o.Pos }),
	member("prefabName", (*codec).text, func(o *ThemeObject) *string { return &o.PrefabName }),
	member("unknownValue", (*codec).boolean, func(o *ThemeObject) *bool { return &o.UnknownValue }),
}

// eventUnit codes one timeline unit. Before layout version 7 a unit was
// three strings and the last non-empty one is its identifier.
func eventUnit(c *codec, u *EventUnit) {
	if c.versions.Layout >= 7 {
		c.text(&u.Guid)
		return
	}
	if !c.decoding() {
		c.writer.String16(u.Guid)
		c.writer.String16("")
		c.writer.String16("")
		return
	}
	for range 3 {
		if text := c.reader.String16(); text != "" {
			u.Guid = text
		}
	}
}

var eventStageFields = []field[EventStage]{
	listOf("units", eventUnit, func(s *EventStage) *[]EventUnit { return &s.Units }),
}

var eventTimelineFields = []field[EventTimeline]{
	member("checkpointGuid", (*codec).text, func(t *EventTimeline) *string { return &t.CheckpointGuid }),
	listOf("stages", entity(eventStageFields), func(t *EventTimeline) *[]EventStage { return &t.Stages }),
}

var checkpointFields = []field[Checkpoint]{
	member("pos", (*codec).vec2, func(p *Checkpoint) *Vec2 { return &p.Pos }),
	member("prefabName", (*codec).text, func(p *Checkpoint) *string { return &p.PrefabName }),
	member("vehicleGuid", (*codec).text, func(p *Checkpoint) *string { return &p.VehicleGuid }),
	member("vehicleRestartPhaseGuid", (*codec).text, func(p *Checkpoint) *string { return &p.VehicleRestartPhaseGuid }),
	member("triggerTimeline", (*codec).boolean, func(p *Checkpoint) *bool { return &p.TriggerTimeline }),
	member("stopVehicle", (*codec).boolean, func(p *Checkpoint) *bool { return &p.StopVehicle }),
	member("reverseVehicleOnRestart", (*codec).boolean, func(p *Checkpoint) *bool { return &p.ReverseVehicleOnRestart }),
	member("invisibleInSim", (*codec).boolean, func(p *Checkpoint) *bool { return &p.InvisibleInSim }).
		when(OnLayout(Since(73))),
	member("guid", (*codec).text, func(p *Checkpoint) *string { return &p.Guid }),
}

var terrainStretchFields = []field[TerrainStretch]{
	member("pos", (*codec).vec3, func(t *TerrainStretch) *Vec3 { return &t.Pos }),
	member("prefabName", (*codec).text, func(t *TerrainStretch) *string { return &t.PrefabName }),
	member("heightAdded", (*codec).float, func(t *TerrainStretch) *float32 { return &t.HeightAdded }),
	member("rightEdgeWaterHeight", (*codec).float, func(t *TerrainStretch) *float32 { return &t.RightEdgeWaterHeight }),
	member("terrainIslandType", (*codec).integer, func(t *TerrainStretch) *int32 { return &t.TerrainIslandType }),
	member("variantIndex", (*codec).integer, func(t *TerrainStretch) *int32 { return &t.VariantIndex }),
	member("flipped", (*codec).boolean, func(t *TerrainStretch) *bool { return &t.Flipped }),
	member("lockPosition", (*codec).boolean, func(t *TerrainStretch) *bool { return &t.LockPosition }).
		when(OnLayout(Since(6))),
	member("hidden", (*codec).boolean, func(t *TerrainStretch) *bool { return &t.Hidden }).
		when(OnLayout(Or(Between(27, 31), Since(52)))),
	member("height", (*codec).float, func(t *TerrainStretch) *float32 { return &t.Height }).
		when(OnLayout(Since(34))),
}

var platformFields = []field[Platform]{
	member("pos", (*codec).vec2, func(p *Platform) *Vec2 { return &p.Pos }),
	member("width", (*codec).float, func(p *Platform) *float32 { return &p.Width }),
	member("height", (*codec).float, func(p *Platform) *float32 { return &p.Height }),
	member("flipped", (*codec).boolean, func(p *Platform) *bool { return &p.Flipped }),
	member("solid", (*codec).boolean, func(p *Platform) *bool { return &p.Solid }).
		when(OnLayout(Since(22))),
	garbage[Platform]("legacyInt", (*codec).discardInt32).
		when(OnLayout(Before(22))),
}

// rampHeight codes the ramp height. Decoding stores its magnitude.
func rampHeight(c *codec, r *Ramp) {
	c.float(&r.Height)
	if c.decoding() {
		r.Height = float32(math.Abs(float64(r.Height)))
	}
}

var rampFields = []field[Ramp]{
	member("pos", (*codec).vec2, func(r *Ramp) *Vec2 { return &r.Pos }),
	listOf("controlPoints", (*codec).vec2, func(r *Ramp) *[]Vec2 { return &r.ControlPoints }),
	custom("height", rampHeight),
	member("numSegments", (*codec).integer, func(r *Ramp) *int32 { return &r.NumSegments }),
	member("splineType", (*codec).integer, func(r *Ramp) *int32 { return &r.SplineType }),
	member("flippedVertical", (*codec).boolean, func(r *Ramp) *bool { return &r.FlippedVertical }),
	member("flippedHorizontal", (*codec).boolean, func(r *Ramp) *bool { return &r.FlippedHorizontal }),
	member("hideLegs", (*codec).boolean, func(r *Ramp) *bool { return &r.HideLegs }).
		when(OnLayout(Since(23))),
	member("flippedLegs", (*codec).boolean, func(r *Ramp) *bool { return &r.FlippedLegs }).
		when(OnLayout(Since(25))),
	garbage[Ramp]("legacyFlag", (*codec).discardBool).
		when(OnLayout(Between(22, 25))),
	garbage[Ramp]("legacyInt", (*codec).discardInt32).
		when(OnLayout(Before(22))),
	listOf("linePoints", (*codec).vec2, func(r *Ramp) *[]Vec2 { return &r.LinePoints }).
		when(OnLayout(Since(13))),
}

var vehicleRestartPhaseFields = []field[VehicleRestartPhase]{
	member("timeDelay", (*codec).float, func(p *VehicleRestartPhase) *float32 { return &p.TimeDelay }),
	member("guid", (*codec).text, func(p *VehicleRestartPhase) *string { return &p.Guid }),
	member("vehicleGuid", (*codec).text, func(p *VehicleRestartPhase) *string { return &p.VehicleGuid }),
}

var flyingObjectFields = []field[FlyingObject]{
	member("pos", (*codec).vec3, func(o *FlyingObject) *Vec3 { return &o.Pos }),
	member("scale", (*codec).vec3, func(o *FlyingObject) *Vec3 { return &o.Scale }),
	member("prefabName", (*codec).text, func(o *FlyingObject) *string { return &o.PrefabName }),
}

var rockFields = []field[Rock]{
	member("pos", (*codec).vec3, func(r *Rock) *Vec3 { return &r.Pos }),
	member("scale", (*codec).vec3, func(r *Rock) *Vec3 { return &r.Scale }),
	member("prefabName", (*codec).text, func(r *Rock) *string { return &r.PrefabName }),
	member("flipped", (*codec).boolean, func(r *Rock) *bool { return &r.Flipped }),
	member("lockToBottom", (*codec).boolean, func(r *Rock) *bool { return &r.LockToBottom }).
		when(OnLayout(Since(60))),
	member("uniformScale", (*codec).boolean, func(r *Rock) *bool { return &r.UniformScale }).
		when(OnLayout(Since(66))),
}

var waterBlockFields = []field[WaterBlock]{
	member("pos", (*codec).vec3, func(w *WaterBlock) *Vec3 { return &w.Pos }),
	member("width", (*codec).float, func(w *WaterBlock) *float32 { return &w.Width }),
	member("height", (*codec).float, func(w *WaterBlock) *float32 { return &w.Height }),
	member("lockPosition", (*codec).boolean, func(w *WaterBlock) *bool { return &w.LockPosition }).
		when(OnLayout(Since(12))),
}

// discardLegacyGroups skips the list of (string, string list) pairs
// that layouts before version 5 store after the water blocks.
func discardLegacyGroups(c *codec) {
	var groups []struct{}
	list(c, &groups, func(c *codec, _ *struct{}) {
		var name string
		c.text(&name)
		c.discardStrings()
	})
}

var budgetFields = []field[Budget]{
	member("cash", (*codec).integer, func(b *Budget) *int32 { return &b.Cash }),
	member("road", (*codec).integer, func(b *Budget) *int32 { return &b.Road }),
	member("wood", (*codec).integer, func(b *Budget) *int32 { return &b.Wood }),
	member("steel", (*codec).integer, func(b *Budget) *int32 { return &b.Steel }),
	member("hydraulics", (*codec).integer, func(b *Budget) *int32 { return &b.Hydraulics }),
	member("rope", (*codec).integer, func(b *Budget) *int32 { return &b.Rope }),
	member("cable", (*codec).integer, func(b *Budget) *int32 { return &b.Cable }),
	member("spring", (*codec).integer, func(b *Budget) *int32 { return &b.Spring }),
	member("bungeeRope", (*codec).integer, func(b *Budget) *int32 { return &b.BungeeRope }),
	member("pillar", (*codec).integer, func(b *Budget) *int32 { return &b.Pillar }).
		when(OnLayout(Since(30))),
	member("allowWood", (*codec).boolean, func(b *Budget) *bool { return &b.AllowWood }),
	member("allowSteel", (*codec).boolean, func(b *Budget) *bool { return &b.AllowSteel }),
	member("allowHydraulics", (*codec).boolean, func(b *Budget) *bool { return &b.AllowHydraulics }),
	member("allowRope", (*codec).boolean, func(b *Budget) *bool { return &b.AllowRope }),
	member("allowCable", (*codec).boolean, func(b *Budget) *bool { return &b.AllowCable }),
	member("allowSpring", (*codec).boolean, func(b *Budget) *bool { return &b.AllowSpring }),
	member("allowReinforcedRoad", (*codec).boolean, func(b *Budget) *bool { return &b.AllowReinforcedRoad }).
		when(OnLayout(Through(28))),
	member("allowPillar", (*codec).boolean, func(b *Budget) *bool { return &b.AllowPillar }).
		when(OnLayout(Since(31))),
}

var settingsFields = []field[Settings]{
	member("hydraulicsControllerEnabled", (*codec).boolean, func(s *Settings) *bool { return &s.HydraulicsControllerEnabled }),
	member("unbreakable", (*codec).boolean, func(s *Settings) *bool { return &s.Unbreakable }),
	member("unlimitedHeightFoundations", (*codec).boolean, func(s *Settings) *bool { return &s.UnlimitedHeightFoundations }).
		when(OnLayout(Since(55))),
	member("noWater", (*codec).boolean, func(s *Settings) *bool { return &s.NoWater }).
		when(OnLayout(Since(28))),
	member("noReinforcedRoad", (*codec).boolean, func(s *Settings) *bool { return &s.NoReinforcedRoad }).
		when(OnLayout(Since(31))),
	member("springAdjustmentsAllowed", (*codec).boolean, func(s *Settings) *bool { return &s.SpringAdjustmentsAllowed }).
		when(OnLayout(Since(30))),
	member("hideDecor", (*codec).boolean, func(s *Settings) *bool { return &s.HideDecor }).
		when(OnLayout(Since(36))),
	member("fogHeight", (*codec).float, func(s *Settings) *float32 { return &s.FogHeight }).
		when(OnLayout(Since(46))),
	member("fogHeightMinWorldY", (*codec).float, func(s *Settings) *float32 { return &s.FogHeightMinWorldY }).
		when(OnLayout(Since(71))),
	member("fogHeightMaxWorldY", (*codec).float, func(s *Settings) *float32 { return &s.FogHeightMaxWorldY }).
		when(OnLayout(Since(71))),
	member("fogHeightEndRelativeY", (*codec).float, func(s *Settings) *float32 { return &s.FogHeightEndRelativeY }).
		when(OnLayout(Since(71))),
	garbage[Settings]("legacyFogLow", (*codec).discardFloat32).
		when(OnLayout(Between(68, 71))),
	garbage[Settings]("legacyFogHigh", (*codec).discardFloat32).
		when(OnLayout(Between(68, 71))),
	member("multiSelectMovementIncrement", (*codec).float, func(s *Settings) *float32 { return &s.MultiSelectMovementIncrement }).
		when(OnLayout(Since(59))),
	member("thumbnailCameraSaved", (*codec).boolean, func(s *Settings) *bool { return &s.ThumbnailCameraSaved }).
		when(OnLayout(Since(69))),
	member("thumbnailCameraPos", (*codec).vec3, func(s *Settings) *Vec3 { return &s.ThumbnailCameraPos }).
		when(OnLayout(Since(69))),
	member("thumbnailCameraRot", (*codec).quaternion, func(s *Settings) *Quaternion { return &s.ThumbnailCameraRot }).
		when(OnLayout(Since(69))),
	member("thumbnailCameraOrthographicSize", (*codec).float, func(s *Settings) *float32 { return &s.ThumbnailCameraOrthographicSize }).
		when(OnLayout(Since(69))),
}

// legacyTextureTiling reads the vec2 tiling of layout versions 42 to 44
// and keeps its x component.
func legacyTextureTiling(c *codec, s *CustomShape) {
	tiling := Vec2{X: s.TextureTiling}
	c.vec2(&tiling)
	s.TextureTiling = tiling.X
}

// dynamicAnchors codes the anchor identifiers of a custom shape, each
// followed from layout version 48 by its list of positions.
func dynamicAnchors(c *codec, s *CustomShape) {
	withPositions := c.versions.Layout >= 48
	if !c.decoding() {
		c.writer.Count(len(s.DynamicAnchorGuids))
		for i, guid := range s.DynamicAnchorGuids {
			c.writer.String16(guid)
			if withPositions {
				var positions []Vec3
				if i < len(s.DynamicAnchors) {
					positions = s.DynamicAnchors[i]
				}
				list(c, &positions, (*codec).vec3)
			}
		}
		return
	}

	n := c.reader.Count()
	guids := make([]string, n)
	anchors := make([][]Vec3, n)
	for i := range n {
		guids[i] = c.reader.String16()
		if withPositions {
			list(c, &anchors[i], (*codec).vec3)
		}
		if c.err() != nil {
			return
		}
	}
	s.DynamicAnchorGuids = guids
	s.DynamicAnchors = anchors
}

var customShapeFields = []field[CustomShape]{
	member("version", (*codec).integer, func(s *CustomShape) *int32 { return &s.Version }).
		when(OnLayout(Since(64))),
	member("pos", (*codec).vec3, func(s *CustomShape) *Vec3 { return &s.Pos }),
	member("rot", (*codec).quaternion, func(s *CustomShape) *Quaternion { return &s.Rot }),
	member("scale", (*codec).vec3, func(s *CustomShape) *Vec3 { return &s.Scale }),
	member("meshScale", (*codec).vec3, func(s *CustomShape) *Vec3 { return &s.MeshScale }).
		when(OnLayout(Since(72))),
	member("flipped", (*codec).boolean, func(s *CustomShape) *bool { return &s.Flipped }),
	member("lowFriction", (*codec).boolean, func(s *CustomShape) *bool { return &s.LowFriction }).
		when(OnLayout(Since(74))),
	member("dynamic", (*codec).boolean, func(s *CustomShape) *bool { return &s.Dynamic }).
		when(OnLayout(Before(45))),
	member("collidesWithRoad", (*codec).boolean, func(s *CustomShape) *bool { return &s.CollidesWithRoad }),
	member("collidesWithNodes", (*codec).boolean, func(s *CustomShape) *bool { return &s.CollidesWithNodes }),
	member("collidesWithRamps", (*codec).boolean, func(s *CustomShape) *bool { return &s.CollidesWithRamps }).
		when(OnLayout(Since(53))),
	member("collidesWithVehicles", (*codec).boolean, func(s *CustomShape) *bool { return &s.CollidesWithVehicles }).
		when(OnLayout(And(Since(30), Or(Before(34), Since(64))))),
	member("collidesWithSplitNodes", (*codec).boolean, func(s *CustomShape) *bool { return &s.CollidesWithSplitNodes }).
		when(OnLayout(Since(25))),
	member("rotationDegrees", (*codec).float, func(s *CustomShape) *float32 { return &s.RotationDegrees }),
	member("color", (*codec).color, func(s *CustomShape) *Color { return &s.Color }).
		when(OnLayout(Since(10))),
	garbage[CustomShape]("legacyColor", (*codec).discardInt32).
		when(OnLayout(Before(10))),
	garbage[CustomShape]("legacyMass", (*codec).discardFloat32).
		when(OnLayout(Before(11))),
	member("mass", (*codec).float, func(s *CustomShape) *float32 { return &s.Mass }).
		when(OnLayout(Since(11))).
		otherwise(func(s *CustomShape) { s.Mass = 40 }),
	member("bounciness", (*codec).float, func(s *CustomShape) *float32 { return &s.Bounciness }).
		when(OnLayout(Since(14))).
		otherwise(func(s *CustomShape) { s.Bounciness = 0.5 }),
	member("pinMotorStrength", (*codec).float, func(s *CustomShape) *float32 { return &s.PinMotorStrength }).
		when(OnLayout(Since(24))),
	member("pinTargetVelocity", (*codec).float, func(s *CustomShape) *float32 { return &s.PinTargetVelocity }).
		when(OnLayout(Since(24))),
	member("pinTargetAcceleration", (*codec).float, func(s *CustomShape) *float32 { return &s.PinTargetAcceleration }).
		when(OnLayout(Since(63))),
	member("thickness", (*codec).float, func(s *CustomShape) *float32 { return &s.Thickness }).
		when(OnLayout(Since(44))),
	member("textureId", (*codec).text, func(s *CustomShape) *string { return &s.TextureId }).
		when(OnLayout(Since(41))),
	member("meshId", (*codec).text, func(s *CustomShape) *string { return &s.MeshId }).
		when(OnLayout(Since(47))),
	member("meshLocalPos", (*codec).vec3, func(s *CustomShape) *Vec3 { return &s.MeshLocalPos }).
		when(OnLayout(Since(47))),
	member("textureTiling", (*codec).float, func(s *CustomShape) *float32 { return &s.TextureTiling }).
		when(OnLayout(Since(45))),
	member("behaviour", (*codec).integer, func(s *CustomShape) *int32 { return &s.Behaviour }).
		when(OnLayout(Since(45))),
	custom("textureTiling", legacyTextureTiling).
		when(OnLayout(Between(42, 45))),
	listOf("pointsLocalSpace", (*codec).vec2, func(s *CustomShape) *[]Vec2 { return &s.PointsLocalSpace }),
	listOf("staticPins", (*codec).vec3, func(s *CustomShape) *[]Vec3 { return &s.StaticPins }),
	custom("dynamicAnchors", dynamicAnchors),
}

// workshopFields covers the workshop section, which also holds the
// layout title and description before version 61.
var workshopFields = []field[Layout]{
	member("id", (*codec).text, func(l *Layout) *string { return &l.Workshop.Id }),
	member("leaderboardId", (*codec).text, func(l *Layout) *string { return &l.Workshop.LeaderboardId }).
		when(OnLayout(And(Since(16), Through(38)))),
	member("title", (*codec).text, func(l *Layout) *string { return &l.Title }).
		when(OnLayout(Before(61))),
	member("description", (*codec).text, func(l *Layout) *string { return &l.Description }).
		when(OnLayout(Before(61))),
	member("autoplay", (*codec).boolean, func(l *Layout) *bool { return &l.Workshop.Autoplay }),
	member("allowFeatured", (*codec).boolean, func(l *Layout) *bool { return &l.Workshop.AllowFeatured }).
		when(OnLayout(Since(67))),
	listOf("tags", (*codec).text, func(l *Layout) *[]string { return &l.Workshop.Tags }).
		when(OnLayout(Before(70))),
}

var supportPillarFields = []field[SupportPillar]{
	member("pos", (*codec).vec3, func(p *SupportPillar) *Vec3 { return &p.Pos }),
	member("scale", (*codec).vec3, func(p *SupportPillar) *Vec3 { return &p.Scale }),
	member("prefabName", (*codec).text, func(p *SupportPillar) *string { return &p.PrefabName }),
}

var pillarFields = []field[Pillar]{
	member("pos", (*codec).vec3, func(p *Pillar) *Vec3 { return &p.Pos }),
	member("height", (*codec).float, func(p *Pillar) *float32 { return &p.Height }),
	member("prefabName", (*codec).text, func(p *Pillar) *string { return &p.PrefabName }),
}

// buildZoneVertices codes the vertex list of a triangular zone. It is
// the one field whose presence depends on a decoded value: the zone
// type, which itself exists only from layout version 62.
func buildZoneVertices(c *codec, z *BuildZone) {
	if z.Type != BuildZoneTriangle {
		return
	}
	list(c, &z.Vertices, (*codec).vec3)
}

var buildZoneFields = []field[BuildZone]{
	member("pos", (*codec).vec2, func(z *BuildZone) *Vec2 { return &z.Pos }),
	member("size", (*codec).vec2, func(z *BuildZone) *Vec2 { return &z.Size }),
	member("lockPosition", (*codec).boolean, func(z *BuildZone) *bool { return &z.LockPosition }),
	member("rotationDegrees", (*codec).float, func(z *BuildZone) *float32 { return &z.RotationDegrees }).
		when(OnLayout(Since(43))),
	member("type", (*codec).integer, func(z *BuildZone) *int32 { return &z.Type }).
		when(OnLayout(Since(62))),
	custom("vertices", buildZoneVertices).
		when(OnLayout(Since(62))),
}

var trainTrackFields = []field[TrainTrack]{
	member("pos", (*codec).vec3, func(t *TrainTrack) *Vec3 { return &t.Pos }),
	member("length", (*codec).float, func(t *TrainTrack) *float32 { return &t.Length }),
	member("guid", (*codec).text, func(t *TrainTrack) *string { return &t.Guid }),
}

var decorFields = []field[Decor]{
	member("pos", (*codec).vec3, func(d *Decor) *Vec3 { return &d.Pos }),
	member("scale", (*codec).vec3, func(d *Decor) *Vec3 { return &d.Scale }).
		when(OnLayout(Since(65))),
	member("yaw", (*codec).float, func(d *Decor) *float32 { return &d.Yaw }),
	member("pitch", (*codec).float, func(d *Decor) *float32 { return &d.Pitch }).
		when(OnLayout(Since(58))),
	member("roll", (*codec).float, func(d *Decor) *float32 { return &d.Roll }).
		when(OnLayout(Since(58))),
	member("id", (*codec).text, func(d *Decor) *string { return &d.Id }),
	member("showInBuildMode", (*codec).boolean, func(d *Decor) *bool { return &d.ShowInBuildMode }).
		when(OnLayout(Since(40))),
	member("uniformScale", (*codec).boolean, func(d *Decor) *bool { return &d.UniformScale }).
		when(OnLayout(Since(66))),
	member("modId", (*codec).text, func(d *Decor) *string { return &d.ModId }).
		when(OnLayout(Since(54))),
}

// layoutFields is the complete layout in file order.
var layoutFields = []field[Layout]{
	custom("version", layoutVersion),
	custom("bridgeVersion", headerBridgeVersion).
		when(OnLayout(Since(headerBridgeVersionSince))),
	member("themeStubKey", (*codec).text, func(l *Layout) *string { return &l.ThemeStubKey }),
	listOf("anchors", entity(jointFields), func(l *Layout) *[]Joint { return &l.Anchors }).
		when(OnLayout(Since(19))),
	listOf("phases", entity(hydraulicPhaseFields), func(l *Layout) *[]HydraulicPhase { return &l.Phases }).
		when(OnLayout(Since(5))),
	member("bridge", bridgeSection, func(l *Layout) *Bridge { return &l.Bridge }).
		when(OnLayout(After(4))),
	member("bridge", legacyBridge, func(l *Layout) *Bridge { return &l.Bridge }).
		when(OnLayout(Through(4))),
	listOf("zedAxisVehicles", entity(zedAxisVehicleFields), func(l *Layout) *[]ZedAxisVehicle { return &l.ZedAxisVehicles }).
		when(OnLayout(Since(7))),
	listOf("vehicles", entity(vehicleFields), func(l *Layout) *[]Vehicle { return &l.Vehicles }),
	listOf("vehicleStopTriggers", entity(vehicleStopTriggerFields), func(l *Layout) *[]VehicleStopTrigger { return &l.VehicleStopTriggers }),
	listOf("themeObjectsObsolete", entity(themeObjectFields), func(l *Layout) *[]ThemeObject { return &l.ThemeObjectsObsolete }).
		when(OnLayout(Before(20))),
	listOf("eventTimelines", entity(eventTimelineFields), func(l *Layout) *[]EventTimeline { return &l.EventTimelines }),
	listOf("checkpoints", entity(checkpointFields), func(l *Layout) *[]Checkpoint { return &l.Checkpoints }),
	listOf("terrainStretches", entity(terrainStretchFields), func(l *Layout) *[]TerrainStretch { return &l.TerrainStretches }),
	listOf("platforms", entity(platformFields), func(l *Layout) *[]Platform { return &l.Platforms }),
	listOf("ramps", entity(rampFields), func(l *Layout) *[]Ramp { return &l.Ramps }),
	custom("legacyPhases", legacyPhases).
		when(OnLayout(Before(5))),
	listOf("vehicleRestartPhases", entity(vehicleRestartPhaseFields), func(l *Layout) *[]VehicleRestartPhase { return &l.VehicleRestartPhases }),
	listOf("flyingObjects", entity(flyingObjectFields), func(l *Layout) *[]FlyingObject { return &l.FlyingObjects }),
	listOf("rocks", entity(rockFields), func(l *Layout) *[]Rock { return &l.Rocks }),
	listOf("waterBlocks", entity(waterBlockFields), func(l *Layout) *[]WaterBlock { return &l.WaterBlocks }),
	garbage[Layout]("legacyGroups", discardLegacyGroups).
		when(OnLayout(Before(5))),
	nested("budget", budgetFields, func(l *Layout) *Budget { return &l.Budget }),
	member("title", (*codec).text, func(l *Layout) *string { return &l.Title }).
		when(OnLayout(Since(61))),
	member("description", (*codec).text, func(l *Layout) *string { return &l.Description }).
		when(OnLayout(Since(61))),
	nested("settings", settingsFields, func(l *Layout) *Settings { return &l.Settings }),
	listOf("customShapes", entity(customShapeFields), func(l *Layout) *[]CustomShape { return &l.CustomShapes }).
		when(OnLayout(After(9))),
	custom("workshop", func(c *codec, l *Layout) { walk(c, workshopFields, l) }).
		when(OnLayout(Since(15))),
	listOf("supportPillars", entity(supportPillarFields), func(l *Layout) *[]SupportPillar { return &l.SupportPillars }).
		when(OnLayout(And(Since(17), Through(30)))),
	listOf("pillars", entity(pillarFields), func(l *Layout) *[]Pillar { return &l.Pillars }).
		when(OnLayout(Since(18))),
	listOf("buildZones", entity(buildZoneFields), func(l *Layout) *[]BuildZone { return &l.BuildZones }).
		when(OnLayout(Since(32))),
	listOf("trainTracks", entity(trainTrackFields), func(l *Layout) *[]TrainTrack { return &l.TrainTracks }).
		when(OnLayout(Since(33))),
	listOf("decors", entity(decorFields), func(l *Layout) *[]Decor { return &l.Decors }).
		when(OnLayout(Since(35))).
		atTail(),
	member("modData", modDataSection, func(l *Layout) *ModData { return &l.ModData }).
		when(Modded).
		atTail(),
}
