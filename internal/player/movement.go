package player

import (
	"mini-terrain/internal/input"
	"mini-terrain/internal/physics"
	"mini-terrain/internal/profiling"
)

// Update advances the player by one fixed tick.
func (p *Player) Update(in input.Snapshot) {
	defer profiling.Track("player.Update")()

	p.UpdateTarget()
	if in.Click {
		p.BreakTarget()
	}

	p.Occupancy = physics.Neighbors(p.Position, p.World)

	if p.Occupancy.Down {
		p.Falling = false
		if p.VelocityY < 0 {
			p.VelocityY = 0
		}
	} else {
		p.Falling = true
		p.VelocityY -= Gravity
	}
	p.clampVertical()

	p.accelerate(in)

	if p.Occupancy.Up && p.VelocityY > 0 {
		p.VelocityY = 0
	}

	p.Velocity = physics.ResolveVelocity(physics.Fraction(p.Position), p.Velocity, p.Occupancy)

	p.Position[0] += p.Velocity[0]
	p.Position[1] += p.VelocityY
	p.Position[2] += p.Velocity[1]

	p.Velocity[0] *= Friction
	p.Velocity[1] *= Friction
}

func (p *Player) clampVertical() {
	if p.VelocityY > TerminalVelocity {
		p.VelocityY = TerminalVelocity
	}
	if p.VelocityY < -TerminalVelocity {
		p.VelocityY = -TerminalVelocity
	}
}

func (p *Player) accelerate(in input.Snapshot) {
	speed := float32(WalkSpeed)
	if in.Sprint {
		speed = SprintSpeed
	}
	forward, right := p.basis()

	add := func(dir [2]float32, sign float32) {
		p.Velocity[0] += dir[0] * speed * sign
		p.Velocity[1] += dir[1] * speed * sign
	}
	if in.Forward {
		add(forward, 1)
	}
	if in.Backward {
		add(forward, -1)
	}
	if in.Right {
		add(right, 1)
	}
	if in.Left {
		add(right, -1)
	}

	if in.Jump && !p.Falling {
		p.VelocityY += JumpImpulse
		p.clampVertical()
	}
}
