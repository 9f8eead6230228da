// Package snapshot defines the read-only per-frame entity data the overlay
// consumes, and the sources that supply it. The overlay never mutates a
// snapshot; sources replace whole values between frames.
package snapshot

import "github.com/go-gl/mathgl/mgl32"

// Classification buckets a tracked player for styling.
type Classification int

const (
	ClassUnknown Classification = iota
	ClassTeammate
	ClassHostile
	ClassBot
)

func (c Classification) String() string {
	switch c {
	case ClassTeammate:
		return "teammate"
	case ClassHostile:
		return "hostile"
	case ClassBot:
		return "bot"
	default:
		return "unknown"
	}
}

// Player is one tracked entity with a skeletal pose. A zero position or a
// missing bone means "not read yet" and is culled downstream.
type Player struct {
	ID       string
	Name     string
	Position mgl32.Vec3
	Bones    map[BoneID]mgl32.Vec3

	IsLocal  bool
	IsAlive  bool
	IsActive bool
	IsAiming bool

	Classification Classification
	Focused        bool
	Watchlisted    bool
}

// Bone returns the world position of a joint, if supplied this frame.
func (p Player) Bone(id BoneID) (mgl32.Vec3, bool) {
	pos, ok := p.Bones[id]
	return pos, ok
}

// LootItem is a tracked ground item.
type LootItem struct {
	Name      string
	Price     int64
	Position  mgl32.Vec3
	Important bool
}

// Exit is a session exit marker.
type Exit struct {
	Name     string
	Position mgl32.Vec3
}

// Source supplies the overlay's per-frame entity collections. Implementations
// must return data that stays valid for the duration of the frame; the
// overlay treats everything as immutable.
type Source interface {
	// Active reports whether a tracked session is running. When false the
	// overlay draws nothing.
	Active() bool
	// LocalPlayer returns the tracked local viewer, if known.
	LocalPlayer() (Player, bool)
	Players() []Player
	Loot() []LootItem
	Exits() []Exit
}
