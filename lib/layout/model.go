// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import "github.com/bureau-foundation/polyparse/lib/cursor"

// Geometry types shared with the cursor.
type (
	Vec2       = cursor.Vec2
	Vec3       = cursor.Vec3
	Quaternion = cursor.Quaternion
	Color      = cursor.Color
)

// Layout is a decoded layout file. Fields that a given version does not
// carry keep their zero value (or the documented fallback) after a
// decode. JSON field names follow the game's m_PascalCase convention.
type Layout struct {
	// Version is the absolute layout version. The sign of the encoded
	// value is carried separately in IsModded.
	Version  int32 `json:"m_Version"`
	IsModded bool  `json:"m_IsModded"`

	// BridgeVersion is the header copy of the bridge version, present
	// from layout version 38. It is 0 for older layouts.
	BridgeVersion int32  `json:"m_BridgeVersion"`
	ThemeStubKey  string `json:"m_ThemeStubKey"`

	Anchors              []Joint               `json:"m_Anchors"`
	Phases               []HydraulicPhase      `json:"m_Phases"`
	Bridge               Bridge                `json:"m_Bridge"`
	ZedAxisVehicles      []ZedAxisVehicle      `json:"m_ZedAxisVehicles"`
	Vehicles             []Vehicle             `json:"m_Vehicles"`
	VehicleStopTriggers  []VehicleStopTrigger  `json:"m_VehicleStopTriggers"`
	ThemeObjectsObsolete []ThemeObject         `json:"m_ThemeObjectsObsolete"`
	EventTimelines       []EventTimeline       `json:"m_EventTimelines"`
	Checkpoints          []Checkpoint          `json:"m_Checkpoints"`
	TerrainStretches     []TerrainStretch      `json:"m_TerrainStretches"`
	Platforms            []Platform            `json:"m_Platforms"`
	Ramps                []Ramp                `json:"m_Ramps"`
	VehicleRestartPhases []VehicleRestartPhase `json:"m_VehicleRestartPhases"`
	FlyingObjects        []FlyingObject        `json:"m_FlyingObjects"`
	Rocks                []Rock                `json:"m_Rocks"`
	WaterBlocks          []WaterBlock          `json:"m_WaterBlocks"`
	Budget               Budget                `json:"m_Budget"`
	Settings             Settings              `json:"m_Settings"`
	CustomShapes         []CustomShape         `json:"m_CustomShapes"`
	Workshop             Workshop              `json:"m_Workshop"`
	SupportPillars       []SupportPillar       `json:"m_SupportPillars"`
	Pillars              []Pillar              `json:"m_Pillars"`
	BuildZones           []BuildZone           `json:"m_BuildZones"`
	TrainTracks          []TrainTrack          `json:"m_TrainTracks"`
	Decors               []Decor               `json:"m_Decors"`

	// Title and Description live in the workshop section before layout
	// version 61 and ahead of the settings afterwards. The model keeps
	// them at the top level for every version.
	Title       string `json:"m_Title"`
	Description string `json:"m_Description"`

	ModData ModData `json:"m_ModData"`
}

// Bridge is the independently versioned bridge sub-section. It is the
// part of a layout embedded in slot files.
type Bridge struct {
	Version       int32          `json:"m_Version"`
	Joints        []Joint        `json:"m_Joints"`
	Edges         []Edge         `json:"m_Edges"`
	Springs       []Spring       `json:"m_Springs"`
	Pistons       []Piston       `json:"m_Pistons"`
	Phases        []BridgePhase  `json:"m_Phases"`
	Anchors       []Joint        `json:"m_Anchors"`
	Pillars       []BridgePillar `json:"m_Pillars"`
	PillarAnchors []Joint        `json:"m_PillarAnchors"`
	EdgeColors    []EdgeColor    `json:"m_EdgeColors"`
}

// Joint is a bridge node. Layout anchors, bridge anchors and pillar
// anchors share the same shape.
type Joint struct {
	Pos      Vec3   `json:"m_Pos"`
	IsAnchor bool   `json:"m_IsAnchor"`
	IsSplit  bool   `json:"m_IsSplit"`
	Guid     string `json:"m_Guid"`
	NoBuild  bool   `json:"m_NoBuild"`
}

// Edge is a structural member between two joints.
type Edge struct {
	MaterialType        int32  `json:"m_MaterialType"`
	NodeAGuid           string `json:"m_NodeAGuid"`
	NodeBGuid           string `json:"m_NodeBGuid"`
	JointAPart          int32  `json:"m_JointAPart"`
	JointBPart          int32  `json:"m_JointBPart"`
	BridgePrebuiltState int32  `json:"m_BridgePrebuiltState"`
	Guid                string `json:"m_Guid"`
}

// Spring connects two joints with a tunable rest length.
type Spring struct {
	NormalizedValue float32 `json:"m_NormalizedValue"`
	NodeAGuid       string  `json:"m_NodeAGuid"`
	NodeBGuid       string  `json:"m_NodeBGuid"`
	Guid            string  `json:"m_Guid"`
}

// Piston is a hydraulic member. NormalizedValue is always in the
// canonical [0,1] convention after a decode.
type Piston struct {
	NormalizedValue float32 `json:"m_NormalizedValue"`
	NodeAGuid       string  `json:"m_NodeAGuid"`
	NodeBGuid       string  `json:"m_NodeBGuid"`
	Guid            string  `json:"m_Guid"`
}

// BridgePhase is a hydraulic phase inside the bridge: the pistons it
// drives and the joints it splits or unsplits.
type BridgePhase struct {
	HydraulicPhaseGuid  string       `json:"m_HydraulicPhaseGuid"`
	PistonGuids         []string     `json:"m_PistonGuids"`
	SplitJoints         []SplitJoint `json:"m_SplitJoints"`
	DisableNewAdditions bool         `json:"m_DisableNewAdditions"`
}

// SplitJoint is one joint state change within a phase.
type SplitJoint struct {
	Guid  string `json:"m_Guid"`
	State int32  `json:"m_State"`
}

// BridgePillar is a pillar placed as part of the bridge.
type BridgePillar struct {
	Pos                 Vec3    `json:"m_Pos"`
	Height              float32 `json:"m_Height"`
	PrefabName          string  `json:"m_PrefabName"`
	Guid                string  `json:"m_Guid"`
	AnchorGuid          string  `json:"m_AnchorGuid"`
	BridgePrebuiltState int32   `json:"m_BridgePrebuiltState"`
}

// EdgeColor overrides the color of one edge.
type EdgeColor struct {
	Key   string `json:"m_Key"`
	Value string `json:"m_Value"`
}

// HydraulicPhase is a layout-level phase timing entry.
type HydraulicPhase struct {
	TimeDelay float32 `json:"m_TimeDelay"`
	Guid      string  `json:"m_Guid"`
}

type ZedAxisVehicle struct {
	Pos             Vec2       `json:"m_Pos"`
	PrefabName      string     `json:"m_PrefabName"`
	Guid            string     `json:"m_Guid"`
	TimeDelay       float32    `json:"m_TimeDelay"`
	Speed           float32    `json:"m_Speed"`
	Rot             Quaternion `json:"m_Rot"`
	RotationDegrees float32    `json:"m_RotationDegrees"`
	UniformScale    float32    `json:"m_UniformScale"`
	ModId           string     `json:"m_ModId"`
	SnapToWaterLine bool       `json:"m_SnapToWaterLine"`
	Reverse         bool       `json:"m_Reverse"`
}

type Vehicle struct {
	DisplayName            string     `json:"m_DisplayName"`
	Pos                    Vec2       `json:"m_Pos"`
	Rot                    Quaternion `json:"m_Rot"`
	PrefabName             string     `json:"m_PrefabName"`
	TargetSpeed            float32    `json:"m_TargetSpeed"`
	Mass                   float32    `json:"m_Mass"`
	BrakingForceMultiplier float32    `json:"m_BrakingForceMultiplier"`
	StrengthMethod         int32      `json:"m_StrengthMethod"`
	Acceleration           float32    `json:"m_Acceleration"`
	MaxSlope               float32    `json:"m_MaxSlope"`
	// The misspelling matches the game's own field name.
	DesiredAccleration float32  `json:"m_DesiredAccleration"`
	ShocksMultiplier   float32  `json:"m_ShocksMultiplier"`
	RotationDegrees    float32  `json:"m_RotationDegrees"`
	TimeDelay          float32  `json:"m_TimeDelay"`
	IdleOnDownhill     bool     `json:"m_IdleOnDownhill"`
	Flipped            bool     `json:"m_Flipped"`
	OrderedCheckpoints bool     `json:"m_OrderedCheckpoints"`
	Guid               string   `json:"m_Guid"`
	UniformScale       float32  `json:"m_UniformScale"`
	SkinId             string   `json:"m_SkinId"`
	ModId              string   `json:"m_ModId"`
	CheckpointGuids    []string `json:"m_CheckpointGuids"`
}

type VehicleStopTrigger struct {
	Pos             Vec2       `json:"m_Pos"`
	Rot             Quaternion `json:"m_Rot"`
	Height          float32    `json:"m_Height"`
	RotationDegrees float32    `json:"m_RotationDegrees"`
	Flipped         bool       `json:"m_Flipped"`
	InvisibleInSim  bool       `json:"m_InvisibleInSim"`
	PrefabName      string     `json:"m_PrefabName"`
	StopVehicleGuid string     `json:"m_StopVehicleGuid"`
}

// ThemeObject is a scenery object from layouts before version 20.
type ThemeObject struct {
	Pos          Vec2   `json:"m_Pos"`
	PrefabName   string `json:"m_PrefabName"`
	UnknownValue bool   `json:"m_UnknownValue"`
}

type EventTimeline struct {
	CheckpointGuid string       `json:"m_CheckpointGuid"`
	Stages         []EventStage `json:"m_Stages"`
}

type EventStage struct {
	Units []EventUnit `json:"m_Units"`
}

type EventUnit struct {
	Guid string `json:"m_Guid"`
}

type Checkpoint struct {
	Pos                     Vec2   `json:"m_Pos"`
	PrefabName              string `json:"m_PrefabName"`
	VehicleGuid             string `json:"m_VehicleGuid"`
	VehicleRestartPhaseGuid string `json:"m_VehicleRestartPhaseGuid"`
	TriggerTimeline         bool   `json:"m_TriggerTimeline"`
	StopVehicle             bool   `json:"m_StopVehicle"`
	ReverseVehicleOnRestart bool   `json:"m_ReverseVehicleOnRestart"`
	InvisibleInSim          bool   `json:"m_InvisibleInSim"`
	Guid                    string `json:"m_Guid"`
}

type TerrainStretch struct {
	Pos                  Vec3    `json:"m_Pos"`
	PrefabName           string  `json:"m_PrefabName"`
	HeightAdded          float32 `json:"m_HeightAdded"`
	RightEdgeWaterHeight float32 `json:"m_RightEdgeWaterHeight"`
	TerrainIslandType    int32   `json:"m_TerrainIslandType"`
	VariantIndex         int32   `json:"m_VariantIndex"`
	Flipped              bool    `json:"m_Flipped"`
	LockPosition         bool    `json:"m_LockPosition"`
	Hidden               bool    `json:"m_Hidden"`
	Height               float32 `json:"m_Height"`
}

type Platform struct {
	Pos     Vec2    `json:"m_Pos"`
	Width   float32 `json:"m_Width"`
	Height  float32 `json:"m_Height"`
	Flipped bool    `json:"m_Flipped"`
	Solid   bool    `json:"m_Solid"`
}

type Ramp struct {
	Pos               Vec2    `json:"m_Pos"`
	ControlPoints     []Vec2  `json:"m_ControlPoints"`
	Height            float32 `json:"m_Height"`
	NumSegments       int32   `json:"m_NumSegments"`
	SplineType        int32   `json:"m_SplineType"`
	FlippedVertical   bool    `json:"m_FlippedVertical"`
	FlippedHorizontal bool    `json:"m_FlippedHorizontal"`
	HideLegs          bool    `json:"m_HideLegs"`
	FlippedLegs       bool    `json:"m_FlippedLegs"`
	LinePoints        []Vec2  `json:"m_LinePoints"`
}

type VehicleRestartPhase struct {
	TimeDelay   float32 `json:"m_TimeDelay"`
	Guid        string  `json:"m_Guid"`
	VehicleGuid string  `json:"m_VehicleGuid"`
}

type FlyingObject struct {
	Pos        Vec3   `json:"m_Pos"`
	Scale      Vec3   `json:"m_Scale"`
	PrefabName string `json:"m_PrefabName"`
}

type Rock struct {
	Pos          Vec3   `json:"m_Pos"`
	Scale        Vec3   `json:"m_Scale"`
	PrefabName   string `json:"m_PrefabName"`
	Flipped      bool   `json:"m_Flipped"`
	LockToBottom bool   `json:"m_LockToBottom"`
	UniformScale bool   `json:"m_UniformScale"`
}

type WaterBlock struct {
	Pos          Vec3    `json:"m_Pos"`
	Width        float32 `json:"m_Width"`
	Height       float32 `json:"m_Height"`
	LockPosition bool    `json:"m_LockPosition"`
}

// Budget holds the material allowances for a level.
type Budget struct {
	Cash                int32 `json:"m_Cash"`
	Road                int32 `json:"m_Road"`
	Wood                int32 `json:"m_Wood"`
	Steel               int32 `json:"m_Steel"`
	Hydraulics          int32 `json:"m_Hydraulics"`
	Rope                int32 `json:"m_Rope"`
	Cable               int32 `json:"m_Cable"`
	Spring              int32 `json:"m_Spring"`
	BungeeRope          int32 `json:"m_BungeeRope"`
	Pillar              int32 `json:"m_Pillar"`
	AllowWood           bool  `json:"m_AllowWood"`
	AllowSteel          bool  `json:"m_AllowSteel"`
	AllowHydraulics     bool  `json:"m_AllowHydraulics"`
	AllowRope           bool  `json:"m_AllowRope"`
	AllowCable          bool  `json:"m_AllowCable"`
	AllowSpring         bool  `json:"m_AllowSpring"`
	AllowReinforcedRoad bool  `json:"m_AllowReinforcedRoad"`
	AllowPillar         bool  `json:"m_AllowPillar"`
}

type Settings struct {
	HydraulicsControllerEnabled     bool       `json:"m_HydraulicsControllerEnabled"`
	Unbreakable                     bool       `json:"m_Unbreakable"`
	UnlimitedHeightFoundations      bool       `json:"m_UnlimitedHeightFoundations"`
	NoWater                         bool       `json:"m_NoWater"`
	NoReinforcedRoad                bool       `json:"m_NoReinforcedRoad"`
	SpringAdjustmentsAllowed        bool       `json:"m_SpringAdjustmentsAllowed"`
	HideDecor                       bool       `json:"m_HideDecor"`
	FogHeight                       float32    `json:"m_FogHeight"`
	FogHeightMinWorldY              float32    `json:"m_FogHeightMinWorldY"`
	FogHeightMaxWorldY              float32    `json:"m_FogHeightMaxWorldY"`
	FogHeightEndRelativeY           float32    `json:"m_FogHeightEndRelativeY"`
	MultiSelectMovementIncrement    float32    `json:"m_MultiSelectMovementIncrement"`
	ThumbnailCameraSaved            bool       `json:"m_ThumbnailCameraSaved"`
	ThumbnailCameraPos              Vec3       `json:"m_ThumbnailCameraPos"`
	ThumbnailCameraRot              Quaternion `json:"m_ThumbnailCameraRot"`
	ThumbnailCameraOrthographicSize float32    `json:"m_ThumbnailCameraOrthographicSize"`
}

type CustomShape struct {
	Version                int32      `json:"m_Version"`
	Pos                    Vec3       `json:"m_Pos"`
	Rot                    Quaternion `json:"m_Rot"`
	Scale                  Vec3       `json:"m_Scale"`
	MeshScale              Vec3       `json:"m_MeshScale"`
	Flipped                bool       `json:"m_Flipped"`
	LowFriction            bool       `json:"m_LowFriction"`
	Dynamic                bool       `json:"m_Dynamic"`
	CollidesWithRoad       bool       `json:"m_CollidesWithRoad"`
	CollidesWithNodes      bool       `json:"m_CollidesWithNodes"`
	CollidesWithRamps      bool       `json:"m_CollidesWithRamps"`
	CollidesWithVehicles   bool       `json:"m_CollidesWithVehicles"`
	CollidesWithSplitNodes bool       `json:"m_CollidesWithSplitNodes"`
	RotationDegrees        float32    `json:"m_RotationDegrees"`
	Color                  Color      `json:"m_Color"`
	Mass                   float32    `json:"m_Mass"`
	Bounciness             float32    `json:"m_Bounciness"`
	PinMotorStrength       float32    `json:"m_PinMotorStrength"`
	PinTargetVelocity      float32    `json:"m_PinTargetVelocity"`
	PinTargetAcceleration  float32    `json:"m_PinTargetAcceleration"`
	Thickness              float32    `json:"m_Thickness"`
	TextureId              string     `json:"m_TextureId"`
	MeshId                 string     `json:"m_MeshId"`
	MeshLocalPos           Vec3       `json:"m_MeshLocalPos"`
	TextureTiling          float32    `json:"m_TextureTiling"`
	Behaviour              int32      `json:"m_Behaviour"`
	PointsLocalSpace       []Vec2     `json:"m_PointsLocalSpace"`
	StaticPins             []Vec3     `json:"m_StaticPins"`

	// DynamicAnchorGuids and DynamicAnchors are parallel: entry i of
	// DynamicAnchors holds the positions recorded for anchor i (from
	// layout version 48; empty before).
	DynamicAnchorGuids []string `json:"m_DynamicAnchorGuids"`
	DynamicAnchors     [][]Vec3 `json:"m_DynamicAnchors"`
}

// Workshop is the Steam workshop metadata block.
type Workshop struct {
	Id            string   `json:"m_Id"`
	LeaderboardId string   `json:"m_LeaderboardId"`
	Autoplay      bool     `json:"m_Autoplay"`
	AllowFeatured bool     `json:"m_AllowFeatured"`
	Tags          []string `json:"m_Tags"`
}

// SupportPillar is the pillar shape used between layout versions 17
// and 30.
type SupportPillar struct {
	Pos        Vec3   `json:"m_Pos"`
	Scale      Vec3   `json:"m_Scale"`
	PrefabName string `json:"m_PrefabName"`
}

type Pillar struct {
	Pos        Vec3    `json:"m_Pos"`
	Height     float32 `json:"m_Height"`
	PrefabName string  `json:"m_PrefabName"`
}

// Build zone shapes.
const (
	BuildZoneRectangle int32 = 0
	BuildZoneTriangle  int32 = 1
)

type BuildZone struct {
	Pos             Vec2    `json:"m_Pos"`
	Size            Vec2    `json:"m_Size"`
	LockPosition    bool    `json:"m_LockPosition"`
	RotationDegrees float32 `json:"m_RotationDegrees"`
	Type            int32   `json:"m_Type"`
	Vertices        []Vec3  `json:"m_Vertices"`
}

type TrainTrack struct {
	Pos    Vec3    `json:"m_Pos"`
	Length float32 `json:"m_Length"`
	Guid   string  `json:"m_Guid"`
}

type Decor struct {
	Pos             Vec3    `json:"m_Pos"`
	Scale           Vec3    `json:"m_Scale"`
	Yaw             float32 `json:"m_Yaw"`
	Pitch           float32 `json:"m_Pitch"`
	Roll            float32 `json:"m_Roll"`
	Id              string  `json:"m_Id"`
	ShowInBuildMode bool    `json:"m_ShowInBuildMode"`
	UniformScale    bool    `json:"m_UniformScale"`
	ModId           string  `json:"m_ModId"`
}

// ModData is the trailing mod metadata written by modded games.
type ModData struct {
	Mods        []Mod         `json:"m_Mods"`
	ModSaveData []ModSaveData `json:"m_ModSaveData"`
}

type Mod struct {
	Name     string   `json:"m_Name"`
	Version  string   `json:"m_Version"`
	Settings []string `json:"m_Settings"`
}

// ModSaveData is an opaque payload a mod stored in the layout. Data
// marshals to JSON as base64.
type ModSaveData struct {
	Name    string `json:"m_Name"`
	Version string `json:"m_Version"`
	Data    []byte `json:"m_Data"`
}
