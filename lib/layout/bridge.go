// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import "github.com/bureau-foundation/polyparse/lib/diagnostic"

// Bridge section tables. Gates in this file are on the bridge version
// in scope.

// bridgeDataSince is the first bridge version that carries any
// collections. Older bridge sections are only a version number.
const bridgeDataSince = 2

var jointFields = []field[Joint]{
	member("pos", (*codec).vec3, func(j *Joint) *Vec3 { return &j.Pos }),
	member("isAnchor", (*codec).boolean, func(j *Joint) *bool { return &j.IsAnchor }),
	member("isSplit", (*codec).boolean, func(j *Joint) *bool { return &j.IsSplit }),
	member("guid", (*codec).text, func(j *Joint) *string { return &j.Guid }),
	member("noBuild", (*codec).boolean, func(j *Joint) *bool { return &j.NoBuild }).
		when(OnBridge(Since(13))),
}

var edgeFields = []field[Edge]{
	member("materialType", (*codec).integer, func(e *Edge) *int32 { return &e.MaterialType }),
	member("nodeAGuid", (*codec).text, func(e *Edge) *string { return &e.NodeAGuid }),
	member("nodeBGuid", (*codec).text, func(e *Edge) *string { return &e.NodeBGuid }),
	member("jointAPart", (*codec).integer, func(e *Edge) *int32 { return &e.JointAPart }),
	member("jointBPart", (*codec).integer, func(e *Edge) *int32 { return &e.JointBPart }),
	member("bridgePrebuiltState", (*codec).integer, func(e *Edge) *int32 { return &e.BridgePrebuiltState }).
		when(OnBridge(Since(12))),
	member("guid", (*codec).text, func(e *Edge) *string { return &e.Guid }).
		when(OnBridge(Since(11))),
}

var springFields = []field[Spring]{
	member("normalizedValue", (*codec).float, func(s *Spring) *float32 { return &s.NormalizedValue }),
	member("nodeAGuid", (*codec).text, func(s *Spring) *string { return &s.NodeAGuid }),
	member("nodeBGuid", (*codec).text, func(s *Spring) *string { return &s.NodeBGuid }),
	member("guid", (*codec).text, func(s *Spring) *string { return &s.Guid }),
}

var pistonFields = []field[Piston]{
	member("normalizedValue", (*codec).float, func(p *Piston) *float32 { return &p.NormalizedValue }),
	member("nodeAGuid", (*codec).text, func(p *Piston) *string { return &p.NodeAGuid }),
	member("nodeBGuid", (*codec).text, func(p *Piston) *string { return &p.NodeBGuid }),
	member("guid", (*codec).text, func(p *Piston) *string { return &p.Guid }),
}

// piston codes one piston. Legacy values are remapped on decode only.
func piston(c *codec, p *Piston) {
	if !walk(c, pistonFields, p) {
		return
	}
	if c.decoding() && c.pistonContext() < pistonRemapBefore {
		p.NormalizedValue = RemapPistonValue(p.NormalizedValue)
	}
}

var splitJointFields = []field[SplitJoint]{
	member("guid", (*codec).text, func(s *SplitJoint) *string { return &s.Guid }),
	member("state", (*codec).integer, func(s *SplitJoint) *int32 { return &s.State }),
}

var bridgePhaseFields = []field[BridgePhase]{
	member("hydraulicPhaseGuid", (*codec).text, func(p *BridgePhase) *string { return &p.HydraulicPhaseGuid }),
	listOf("pistonGuids", (*codec).text, func(p *BridgePhase) *[]string { return &p.PistonGuids }),
	listOf("splitJoints", entity(splitJointFields), func(p *BridgePhase) *[]SplitJoint { return &p.SplitJoints }).
		when(OnBridge(After(2))),
	garbage[BridgePhase]("legacySplitJoints", (*codec).discardStrings).
		when(OnBridge(Through(2))),
	member("disableNewAdditions", (*codec).boolean, func(p *BridgePhase) *bool { return &p.DisableNewAdditions }).
		when(OnBridge(After(9))),
}

var bridgePillarFields = []field[BridgePillar]{
	member("pos", (*codec).vec3, func(p *BridgePillar) *Vec3 { return &p.Pos }),
	member("height", (*codec).float, func(p *BridgePillar) *float32 { return &p.Height }),
	member("prefabName", (*codec).text, func(p *BridgePillar) *string { return &p.PrefabName }),
	member("guid", (*codec).text, func(p *BridgePillar) *string { return &p.Guid }),
	member("anchorGuid", (*codec).text, func(p *BridgePillar) *string { return &p.AnchorGuid }),
	member("bridgePrebuiltState", (*codec).integer, func(p *BridgePillar) *int32 { return &p.BridgePrebuiltState }).
		when(OnBridge(Since(12))),
}

var edgeColorFields = []field[EdgeColor]{
	member("key", (*codec).text, func(e *EdgeColor) *string { return &e.Key }),
	member("value", (*codec).text, func(e *EdgeColor) *string { return &e.Value }),
}

// bridgeFields is everything after the bridge version number.
var bridgeFields = []field[Bridge]{
	listOf("joints", entity(jointFields), func(b *Bridge) *[]Joint { return &b.Joints }),
	listOf("edges", entity(edgeFields), func(b *Bridge) *[]Edge { return &b.Edges }),
	listOf("springs", entity(springFields), func(b *Bridge) *[]Spring { return &b.Springs }).
		when(OnBridge(Since(7))),
	listOf("pistons", piston, func(b *Bridge) *[]Piston { return &b.Pistons }),
	listOf("phases", entity(bridgePhaseFields), func(b *Bridge) *[]BridgePhase { return &b.Phases }),
	garbage[Bridge]("legacyPhaseGuids", (*codec).discardStrings).
		when(OnBridge(Exactly(5))),
	listOf("anchors", entity(jointFields), func(b *Bridge) *[]Joint { return &b.Anchors }).
		when(OnBridge(Since(6))),
	garbage[Bridge]("legacyFlag", (*codec).discardBool).
		when(OnBridge(Between(4, 9))),
	listOf("pillars", entity(bridgePillarFields), func(b *Bridge) *[]BridgePillar { return &b.Pillars }).
		when(OnBridge(After(11))),
	listOf("pillarAnchors", entity(jointFields), func(b *Bridge) *[]Joint { return &b.PillarAnchors }).
		when(OnBridge(After(11))),
	listOf("edgeColors", entity(edgeColorFields), func(b *Bridge) *[]EdgeColor { return &b.EdgeColors }).
		when(OnBridge(Since(16))),
}

// legacyBridgeFields is the bridge as stored inline by layouts up to
// version 4: joints, edges and pistons only, with no version number.
// It is walked with a bridge version of 0 in scope, which closes every
// bridge-versioned joint and edge field.
var legacyBridgeFields = []field[Bridge]{
	listOf("joints", entity(jointFields), func(b *Bridge) *[]Joint { return &b.Joints }),
	listOf("edges", entity(edgeFields), func(b *Bridge) *[]Edge { return &b.Edges }),
	listOf("pistons", piston, func(b *Bridge) *[]Piston { return &b.Pistons }),
}

// bridgeSection codes a versioned bridge section. The version written
// is always the configured maximum; the version read is kept on the
// model and, clamped to the maximum, scopes the rest of the section.
func bridgeSection(c *codec, b *Bridge) {
	c.push("version")
	if c.decoding() {
		b.Version = c.reader.Int32()
	} else {
		c.writer.Int32(int32(c.config.MaxBridgeVersion))
	}
	if c.err() != nil {
		return
	}
	c.pop()

	scoped := c.versions.Bridge
	defer func() { c.versions.Bridge = scoped }()

	if c.decoding() {
		version := int(b.Version)
		if version > c.config.MaxBridgeVersion {
			c.diagnostics.Add(diagnostic.VersionTooNew, c.offset()-4,
				"bridge version %d is newer than the latest supported version %d",
				version, c.config.MaxBridgeVersion)
			version = c.config.MaxBridgeVersion
		}
		c.versions.Bridge = version
	} else {
		c.versions.Bridge = c.config.MaxBridgeVersion
	}

	if c.versions.Bridge < bridgeDataSince {
		return
	}
	walk(c, bridgeFields, b)
}

// legacyBridge codes the inline bridge of layouts up to version 4.
func legacyBridge(c *codec, b *Bridge) {
	scoped := c.versions.Bridge
	c.versions.Bridge = 0
	walk(c, legacyBridgeFields, b)
	c.versions.Bridge = scoped
}
