package player

import "mini-terrain/internal/physics"

// UpdateTarget casts the look ray from the eye and stores the result.
func (p *Player) UpdateTarget() {
	p.Target = physics.Raycast(p.Position, p.LookDirection(), p.Reach(), p.World)
}

// BreakTarget removes the targeted cell if it is still solid. It reports whether a cell
// was removed.
func (p *Player) BreakTarget() bool {
	if !p.Target.Hit {
		return false
	}
	c := p.Target.HitPosition
	if !p.World.Exists(c[0], c[1], c[2]) {
		return false
	}
	p.World.Remove(c[0], c[1], c[2])
	if p.OnBlockRemoved != nil {
		p.OnBlockRemoved(c)
	}
	return true
}
