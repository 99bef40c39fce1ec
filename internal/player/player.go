package player

import (
	"mini-terrain/internal/config"
	"mini-terrain/internal/physics"
	"mini-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Per-tick movement constants. Velocities are in cells per tick.
const (
	Gravity          = 0.01
	TerminalVelocity = 5.0

	WalkSpeed   = 0.3
	SprintSpeed = 0.5

	JumpImpulse = 0.05
	Friction    = 0.25
)

type Player struct {
	// Position is the eye position. The feet cell is one below the eye cell.
	Position mgl32.Vec3
	// Pitch and Yaw are in degrees. Yaw 0 looks down -Z.
	Pitch float32
	Yaw   float32

	// Velocity is the planar velocity as (X, Z).
	Velocity  [2]float32
	VelocityY float32

	Occupancy physics.Occupancy
	Falling   bool

	// Target is refreshed every tick whether or not a click is pending.
	Target physics.RaycastResult

	// OnBlockRemoved fires after a click removed a cell from the world.
	OnBlockRemoved func(cell [3]int)

	World world.Voxels
}

func New(w world.Voxels, pos mgl32.Vec3) *Player {
	return &Player{
		Position: pos,
		World:    w,
	}
}

// Reach is the targeting distance in cells.
func (p *Player) Reach() float32 {
	return float32(config.GetReach())
}
