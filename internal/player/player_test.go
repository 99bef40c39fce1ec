package player

import (
	"testing"

	"mini-terrain/internal/input"
	"mini-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalVelocity(t *testing.T) {
	p := New(world.NewEmpty(), mgl32.Vec3{0.5, 10.5, 0.5})
	p.VelocityY = -7

	p.Update(input.Snapshot{})
	assert.True(t, p.Falling)
	assert.Equal(t, float32(-TerminalVelocity), p.VelocityY)
	assert.InDelta(t, 5.5, p.Position.Y(), 1e-5)

	p.VelocityY = 0
	for i := 0; i < 1000; i++ {
		p.Update(input.Snapshot{})
		require.GreaterOrEqual(t, p.VelocityY, float32(-TerminalVelocity))
	}
}

func TestPitchClamp(t *testing.T) {
	p := New(world.NewEmpty(), mgl32.Vec3{})

	p.MouseMotion(0, 1000)
	assert.Equal(t, float32(90), p.Pitch)
	p.MouseMotion(0, -5000)
	assert.Equal(t, float32(-90), p.Pitch)

	p.MouseMotion(16, 0)
	assert.Equal(t, float32(-2), p.Yaw)

	p.Pitch = 90
	dir := p.LookDirection()
	assert.InDelta(t, 0, dir.X(), 1e-6)
	assert.InDelta(t, 1, dir.Y(), 1e-6)
	assert.InDelta(t, 0, dir.Z(), 1e-6)
}

func TestCollisionClampsOnlyForwardAxis(t *testing.T) {
	w := world.NewFlat(4, 1)
	w.Set(0, 1, -1)
	p := New(w, mgl32.Vec3{0.5, 1.5, 0.05})
	p.Velocity = [2]float32{0.2, -0.3}

	p.Update(input.Snapshot{})

	assert.True(t, p.Occupancy.Forward)
	assert.False(t, p.Falling)
	assert.Zero(t, p.Velocity[1])
	assert.InDelta(t, 0.05, p.Velocity[0], 1e-6)
	assert.InDelta(t, 0.7, p.Position.X(), 1e-6)
	assert.InDelta(t, 0.05, p.Position.Z(), 1e-6)
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	p := New(world.NewFlat(4, 1), mgl32.Vec3{0.5, 1.5, 0.5})
	p.Update(input.Snapshot{Jump: true})
	assert.False(t, p.Falling)
	assert.InDelta(t, JumpImpulse, p.VelocityY, 1e-6)
	assert.InDelta(t, 1.55, p.Position.Y(), 1e-6)

	air := New(world.NewEmpty(), mgl32.Vec3{0.5, 1.5, 0.5})
	air.Update(input.Snapshot{Jump: true})
	assert.True(t, air.Falling)
	assert.InDelta(t, -Gravity, air.VelocityY, 1e-6)
}

func TestJumpUnderCeilingStaysPut(t *testing.T) {
	w := world.NewFlat(4, 1)
	w.Set(0, 2, 0)
	p := New(w, mgl32.Vec3{0.5, 1.5, 0.5})

	p.Update(input.Snapshot{Jump: true})
	assert.True(t, p.Occupancy.Up)
	assert.Zero(t, p.VelocityY)
	assert.InDelta(t, 1.5, p.Position.Y(), 1e-6)
}

func TestWalkFollowsYaw(t *testing.T) {
	p := New(world.NewFlat(4, 1), mgl32.Vec3{0.5, 1.5, 0.5})
	p.Update(input.Snapshot{Forward: true})
	assert.InDelta(t, 0.5, p.Position.X(), 1e-6)
	assert.InDelta(t, 0.2, p.Position.Z(), 1e-6)
	assert.InDelta(t, -WalkSpeed*Friction, p.Velocity[1], 1e-6)

	p = New(world.NewFlat(4, 1), mgl32.Vec3{0.5, 1.5, 0.5})
	p.Yaw = 90
	p.Update(input.Snapshot{Forward: true, Sprint: true})
	assert.InDelta(t, 0, p.Position.X(), 1e-6)
	assert.InDelta(t, 0.5, p.Position.Z(), 1e-6)

	p = New(world.NewFlat(4, 1), mgl32.Vec3{0.5, 1.5, 0.5})
	p.Update(input.Snapshot{Right: true})
	assert.InDelta(t, 0.8, p.Position.X(), 1e-6)
}

func TestClickRemovesTarget(t *testing.T) {
	w := world.NewFlat(4, 1)
	w.Set(0, 1, -3)
	p := New(w, mgl32.Vec3{0.5, 1.5, 0.5})

	var removed [][3]int
	p.OnBlockRemoved = func(c [3]int) { removed = append(removed, c) }

	p.Update(input.Snapshot{})
	require.True(t, p.Target.Hit)
	assert.Equal(t, [3]int{0, 1, -3}, p.Target.HitPosition)
	assert.Equal(t, [3]int{0, 1, -2}, p.Target.AdjacentPosition)
	assert.Empty(t, removed)

	p.Update(input.Snapshot{Click: true})
	assert.False(t, w.Exists(0, 1, -3))
	assert.Equal(t, [][3]int{{0, 1, -3}}, removed)

	// the target is refreshed on the next tick without any click
	p.Update(input.Snapshot{})
	assert.False(t, p.Target.Hit)
	assert.False(t, p.BreakTarget())
	assert.Len(t, removed, 1)
}

func TestViewMatrix(t *testing.T) {
	p := New(world.NewEmpty(), mgl32.Vec3{1, 2, 3})
	v := p.GetViewMatrix().Mul4x1(mgl32.Vec4{1, 2, 2, 1})
	assert.InDelta(t, 0, v.X(), 1e-5)
	assert.InDelta(t, 0, v.Y(), 1e-5)
	assert.InDelta(t, -1, v.Z(), 1e-5)

	p.Yaw = 90
	v = p.GetViewMatrix().Mul4x1(mgl32.Vec4{0, 2, 3, 1})
	assert.InDelta(t, 0, v.X(), 1e-5)
	assert.InDelta(t, -1, v.Z(), 1e-5)
}
