package game

import (
	"mini-terrain/internal/config"
	"mini-terrain/internal/physics"
	"mini-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	groundDepth = 3
	scanTop     = 64
	scanFloor   = -64
)

// NewDemoWorld builds the playable area. Seed 0 gives a flat floor with a few features to
// walk into and climb; any other seed gives noise hills of config.GetHillAmplitude.
func NewDemoWorld(radius int, seed int64) *world.World {
	if seed != 0 {
		return world.NewHills(radius, groundDepth, seed, config.GetHillAmplitude())
	}

	w := world.NewFlat(radius, groundDepth)

	// pillar
	for y := 0; y < 4; y++ {
		w.Set(4, y, -4)
	}
	// one-block steps
	w.Set(-3, 0, -3)
	w.Set(-4, 0, -3)
	w.Set(-4, 1, -3)
	// wall segment across the +X side
	for z := -2; z <= 2; z++ {
		w.Set(6, 0, z)
		w.Set(6, 1, z)
	}
	return w
}

// SpawnPoint returns an eye position standing on the column at the origin.
func SpawnPoint(w *world.World) mgl32.Vec3 {
	y, ok := physics.FindGroundLevel(0.5, 0.5, scanTop, scanFloor, w)
	if !ok {
		y = 2.5
	}
	return mgl32.Vec3{0.5, y, 0.5}
}
