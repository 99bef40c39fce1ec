package player

import (
	"math"

	"mini-terrain/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// MouseMotion turns the view by a mouse delta. Positive dy looks up, positive dx turns right.
func (p *Player) MouseMotion(dx, dy float64) {
	s := config.GetMouseSensitivity()
	p.Pitch += float32(dy) * s
	p.Yaw -= float32(dx) * s

	if p.Pitch > 90 {
		p.Pitch = 90
	}
	if p.Pitch < -90 {
		p.Pitch = -90
	}
}

// LookDirection returns the unit vector the player is facing.
func (p *Player) LookDirection() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(p.Yaw))
	pitch := float64(mgl32.DegToRad(p.Pitch))
	cp := math.Cos(pitch)
	return mgl32.Vec3{
		float32(-math.Sin(yaw) * cp),
		float32(math.Sin(pitch)),
		float32(-math.Cos(yaw) * cp),
	}
}

// basis returns the planar forward and right vectors as (X, Z).
func (p *Player) basis() (forward, right [2]float32) {
	yaw := float64(mgl32.DegToRad(p.Yaw))
	sin, cos := float32(math.Sin(yaw)), float32(math.Cos(yaw))
	return [2]float32{-sin, -cos}, [2]float32{cos, -sin}
}

// GetViewMatrix builds the view from rotations rather than LookAt so a straight up or down
// pitch stays well defined.
func (p *Player) GetViewMatrix() mgl32.Mat4 {
	pitch := mgl32.HomogRotate3DX(-mgl32.DegToRad(p.Pitch))
	yaw := mgl32.HomogRotate3DY(-mgl32.DegToRad(p.Yaw))
	eye := p.Position
	return pitch.Mul4(yaw).Mul4(mgl32.Translate3D(-eye.X(), -eye.Y(), -eye.Z()))
}
