// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import "github.com/bureau-foundation/polyparse/lib/diagnostic"

// CheckReferences reports identifiers in l that name no entity of the
// expected kind. The codec itself never validates references; dangling
// ones are legal on the wire. Empty identifiers are not reported.
func CheckReferences(l *Layout) diagnostic.List {
	var found diagnostic.List

	joints := make(map[string]bool)
	for _, group := range [][]Joint{l.Anchors, l.Bridge.Joints, l.Bridge.Anchors, l.Bridge.PillarAnchors} {
		for _, joint := range group {
			joints[joint.Guid] = true
		}
	}
	pistons := make(map[string]bool, len(l.Bridge.Pistons))
	for _, piston := range l.Bridge.Pistons {
		pistons[piston.Guid] = true
	}
	phases := make(map[string]bool, len(l.Phases))
	for _, phase := range l.Phases {
		phases[phase.Guid] = true
	}
	vehicles := make(map[string]bool, len(l.Vehicles)+len(l.ZedAxisVehicles))
	for _, vehicle := range l.Vehicles {
		vehicles[vehicle.Guid] = true
	}
	for _, vehicle := range l.ZedAxisVehicles {
		vehicles[vehicle.Guid] = true
	}
	checkpoints := make(map[string]bool, len(l.Checkpoints))
	for _, checkpoint := range l.Checkpoints {
		checkpoints[checkpoint.Guid] = true
	}
	restarts := make(map[string]bool, len(l.VehicleRestartPhases))
	for _, phase := range l.VehicleRestartPhases {
		restarts[phase.Guid] = true
	}

	check := func(known map[string]bool, id, kind, where string) {
		if id == "" || known[id] {
			return
		}
		found.Add(diagnostic.DanglingReference, diagnostic.NoOffset, "%s refers to unknown %s %q", where, kind, id)
	}

	for i, edge := range l.Bridge.Edges {
		check(joints, edge.NodeAGuid, "joint", indexed("bridge.edges", i))
		check(joints, edge.NodeBGuid, "joint", indexed("bridge.edges", i))
	}
	for i, spring := range l.Bridge.Springs {
		check(joints, spring.NodeAGuid, "joint", indexed("bridge.springs", i))
		check(joints, spring.NodeBGuid, "joint", indexed("bridge.springs", i))
	}
	for i, piston := range l.Bridge.Pistons {
		check(joints, piston.NodeAGuid, "joint", indexed("bridge.pistons", i))
		check(joints, piston.NodeBGuid, "joint", indexed("bridge.pistons", i))
	}
	for i, phase := range l.Bridge.Phases {
		where := indexed("bridge.phases", i)
		check(phases, phase.HydraulicPhaseGuid, "hydraulic phase", where)
		for _, id := range phase.PistonGuids {
			check(pistons, id, "piston", where)
		}
		for _, split := range phase.SplitJoints {
			check(joints, split.Guid, "joint", where)
		}
	}
	for i, pillar := range l.Bridge.Pillars {
		check(joints, pillar.AnchorGuid, "joint", indexed("bridge.pillars", i))
	}
	for i, vehicle := range l.Vehicles {
		for _, id := range vehicle.CheckpointGuids {
			check(checkpoints, id, "checkpoint", indexed("vehicles", i))
		}
	}
	for i, trigger := range l.VehicleStopTriggers {
		check(vehicles, trigger.StopVehicleGuid, "vehicle", indexed("vehicleStopTriggers", i))
	}
	for i, timeline := range l.EventTimelines {
		check(checkpoints, timeline.CheckpointGuid, "checkpoint", indexed("eventTimelines", i))
	}
	for i, checkpoint := range l.Checkpoints {
		where := indexed("checkpoints", i)
		check(vehicles, checkpoint.VehicleGuid, "vehicle", where)
		check(restarts, checkpoint.VehicleRestartPhaseGuid, "vehicle restart phase", where)
	}
	for i, phase := range l.VehicleRestartPhases {
		check(vehicles, phase.VehicleGuid, "vehicle", indexed("vehicleRestartPhases", i))
	}
	return found
}

func indexed(path string, i int) string {
	return path + indexSegment(i)
}
