package main

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/varkas/overlens/camera"
	"github.com/varkas/overlens/memread"
	"github.com/varkas/overlens/snapshot"
)

// seedDemoReader builds a mock address space that satisfies the given layout,
// so -demo exercises the full discovery and read path without a bridge.
func seedDemoReader(layout camera.Layout) *memread.MockReader {
	m := memread.NewMockReader()

	const (
		tableAddr  = 0x200000
		primaryObj = 0x300000
		opticObj   = 0x310000
	)

	table := seedChain(m, layout.ManagerChain[0], layout.ManagerChain[1:], tableAddr, 0x100000)
	for i := 0; i < layout.ProbeLimit; i++ {
		m.SetUint64(table+uint64(i)*layout.SlotStride, 0)
	}
	m.SetUint64(table, primaryObj)
	m.SetUint64(table+layout.SlotStride, opticObj)

	seedCamera(m, layout, primaryObj, layout.PrimaryName, 72, 16.0/9.0)
	seedCamera(m, layout, opticObj, layout.OpticName, 28, 16.0/9.0)
	return m
}

// seedChain wires intermediate pointers so that resolving base with the given
// offsets lands on target: every offset but the last dereferences, the last is
// added. With a single offset no pointers exist and the result is base+offset,
// so target is ignored and the real landing address is returned.
func seedChain(m *memread.MockReader, base uint64, offsets []uint64, target, scratch uint64) uint64 {
	if len(offsets) == 0 {
		return base
	}
	if len(offsets) == 1 {
		return base + offsets[0]
	}
	addr := base
	for i := 0; i < len(offsets)-1; i++ {
		next := scratch + uint64(i)*0x1000
		if i == len(offsets)-2 {
			next = target - offsets[len(offsets)-1]
		}
		m.SetUint64(addr+offsets[i], next)
		addr = next
	}
	return target
}

func seedCamera(m *memread.MockReader, layout camera.Layout, obj uint64, name string, fov, aspect float32) {
	nameAddr := seedChain(m, obj, layout.NameChain, obj+0x8000, obj+0x1000)
	m.SetString(nameAddr, name)

	m.SetFloat32(obj+layout.FOVOffset, fov)
	m.SetFloat32(obj+layout.AspectOffset, aspect)
	m.SetMatrix4(obj+layout.MatrixOffset, demoViewMatrix(fov, aspect))
}

// demoViewMatrix builds a view-projection matrix for a camera standing a few
// meters back from the demo scene. The observed process stores matrices
// row-major, so the column-major product is transposed before seeding.
func demoViewMatrix(fovDeg, aspect float32) [16]float32 {
	proj := mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, 0.5, 500)
	view := mgl32.LookAtV(
		mgl32.Vec3{0, 1.7, -8},
		mgl32.Vec3{0, 1.2, 0},
		mgl32.Vec3{0, 1, 0},
	)
	vp := proj.Mul4(view).Transpose()
	var out [16]float32
	copy(out[:], vp[:])
	return out
}

// demoScene returns a static session with a handful of players, loot, and
// exits arranged in front of the demo camera.
func demoScene() snapshot.Source {
	local := snapshot.Player{
		ID:       "local",
		Name:     "you",
		Position: mgl32.Vec3{0, 0, -8},
		IsLocal:  true,
		IsAlive:  true,
		IsActive: true,
	}

	return &snapshot.Static{
		SessionActive: true,
		Local:         &local,
		AllPlayers: []snapshot.Player{
			local,
			demoPlayer("hostile-1", "Raider", mgl32.Vec3{-2, 0, 4}, snapshot.ClassHostile),
			demoPlayer("hostile-2", "Marksman", mgl32.Vec3{2.5, 0, 9}, snapshot.ClassHostile),
			demoPlayer("team-1", "Wingman", mgl32.Vec3{-4, 0, 7}, snapshot.ClassTeammate),
			demoPlayer("bot-1", "Drone", mgl32.Vec3{4, 0, 14}, snapshot.ClassBot),
		},
		AllLoot: []snapshot.LootItem{
			{Name: "Graphics Card", Price: 310000, Position: mgl32.Vec3{0.5, 0.2, 3}},
			{Name: "Bolts", Price: 12500, Position: mgl32.Vec3{-1.5, 0.1, 5}},
			{Name: "Keycard", Price: 1600000, Position: mgl32.Vec3{3, 0.1, 6}, Important: true},
		},
		AllExits: []snapshot.Exit{
			{Name: "North Gate", Position: mgl32.Vec3{-6, 1, 18}},
			{Name: "Sewer Hatch", Position: mgl32.Vec3{7, 0.5, 16}},
		},
	}
}

// demoPlayer stands a full skeleton up at the given ground position.
func demoPlayer(id, name string, at mgl32.Vec3, class snapshot.Classification) snapshot.Player {
	j := func(dx, y, dz float32) mgl32.Vec3 {
		return mgl32.Vec3{at.X() + dx, at.Y() + y, at.Z() + dz}
	}
	bones := map[snapshot.BoneID]mgl32.Vec3{
		snapshot.BoneHead:     j(0, 1.75, 0),
		snapshot.BoneNeck:     j(0, 1.6, 0),
		snapshot.BoneSpineTop: j(0, 1.45, 0),
		snapshot.BoneSpineMid: j(0, 1.25, 0),
		snapshot.BoneSpineLow: j(0, 1.1, 0),
		snapshot.BonePelvis:   j(0, 0.95, 0),

		snapshot.BoneLeftUpperArm:  j(-0.25, 1.5, 0),
		snapshot.BoneLeftForearm:   j(-0.35, 1.2, 0),
		snapshot.BoneLeftHand:      j(-0.4, 0.95, 0),
		snapshot.BoneRightUpperArm: j(0.25, 1.5, 0),
		snapshot.BoneRightForearm:  j(0.35, 1.2, 0),
		snapshot.BoneRightHand:     j(0.4, 0.95, 0),

		snapshot.BoneLeftThigh:  j(-0.15, 0.75, 0),
		snapshot.BoneLeftCalf:   j(-0.15, 0.4, 0),
		snapshot.BoneLeftFoot:   j(-0.15, 0.05, 0),
		snapshot.BoneLeftToe:    j(-0.15, 0, 0.12),
		snapshot.BoneRightThigh: j(0.15, 0.75, 0),
		snapshot.BoneRightCalf:  j(0.15, 0.4, 0),
		snapshot.BoneRightFoot:  j(0.15, 0.05, 0),
		snapshot.BoneRightToe:   j(0.15, 0, 0.12),
	}
	return snapshot.Player{
		ID:             id,
		Name:           name,
		Position:       at,
		Bones:          bones,
		IsAlive:        true,
		IsActive:       true,
		Classification: class,
	}
}
