package physics

import (
	"math"

	"mini-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	PlayerHalfWidth = 0.45
	CellHalfWidth   = 0.5
)

// Occupancy holds the per-tick blocked flags around the player's cell.
// Forward is -Z, right is +X.
type Occupancy struct {
	Left, Right, Forward, Backward, Up, Down bool
}

// CellOf returns the integer cell containing pos.
func CellOf(pos mgl32.Vec3) [3]int {
	return [3]int{
		int(math.Floor(float64(pos.X()))),
		int(math.Floor(float64(pos.Y()))),
		int(math.Floor(float64(pos.Z()))),
	}
}

// Fraction returns pos relative to the minimum corner of its cell, each axis in [0, 1).
func Fraction(pos mgl32.Vec3) mgl32.Vec3 {
	c := CellOf(pos)
	return mgl32.Vec3{
		pos.X() - float32(c[0]),
		pos.Y() - float32(c[1]),
		pos.Z() - float32(c[2]),
	}
}

// horizontalBlocked checks a side neighbor of a two-cell-tall body whose head is at y.
// Only the head-height cell counts. An empty head-height cell is open whatever sits
// below or above it, so a feet-height ledge can be stepped onto.
func horizontalBlocked(w world.Query, x, y, z int) bool {
	return w.Exists(x, y, z)
}

// Neighbors recomputes the six occupancy flags for a player whose eye is at pos.
func Neighbors(pos mgl32.Vec3, w world.Query) Occupancy {
	c := CellOf(pos)
	x, y, z := c[0], c[1], c[2]
	return Occupancy{
		Left:     horizontalBlocked(w, x-1, y, z),
		Right:    horizontalBlocked(w, x+1, y, z),
		Forward:  horizontalBlocked(w, x, y, z-1),
		Backward: horizontalBlocked(w, x, y, z+1),
		Up:       w.Exists(x, y+1, z),
		Down:     w.Exists(x, y-2, z),
	}
}

// Grounded reports whether the cell two below the eye cell is solid.
func Grounded(pos mgl32.Vec3, w world.Query) bool {
	c := CellOf(pos)
	return w.Exists(c[0], c[1]-2, c[2])
}

func finite(v mgl32.Vec3) bool {
	for _, f := range v {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return false
		}
	}
	return true
}

// Overlaps is the approximate box test used by the resolver: the boxes count as touching
// when their extents overlap on any one axis. Non-finite input reports no overlap.
func Overlaps(a mgl32.Vec3, aHalf float32, b mgl32.Vec3, bHalf float32) bool {
	if !finite(a) || !finite(b) {
		return false
	}
	r := aHalf + bHalf
	d := a.Sub(b)
	return abs(d.X()) < r || abs(d.Y()) < r || abs(d.Z()) < r
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// Neighbor centers in cell-local space, where the player's cell spans [0, 1).
var (
	forwardCenter  = mgl32.Vec3{0.5, 0.5, -0.5}
	backwardCenter = mgl32.Vec3{0.5, 0.5, 1.5}
	leftCenter     = mgl32.Vec3{-0.5, 0.5, 0.5}
	rightCenter    = mgl32.Vec3{1.5, 0.5, 0.5}
)

// ResolveVelocity zeroes at most one planar velocity component (X, Z) that points into
// a blocked neighbor the player overlaps. Checks run forward, backward, left, right and
// stop at the first hit.
func ResolveVelocity(frac mgl32.Vec3, vel [2]float32, occ Occupancy) [2]float32 {
	switch {
	case occ.Forward && vel[1] < 0 && Overlaps(frac, PlayerHalfWidth, forwardCenter, CellHalfWidth):
		vel[1] = 0
	case occ.Backward && vel[1] > 0 && Overlaps(frac, PlayerHalfWidth, backwardCenter, CellHalfWidth):
		vel[1] = 0
	case occ.Left && vel[0] < 0 && Overlaps(frac, PlayerHalfWidth, leftCenter, CellHalfWidth):
		vel[0] = 0
	case occ.Right && vel[0] > 0 && Overlaps(frac, PlayerHalfWidth, rightCenter, CellHalfWidth):
		vel[0] = 0
	}
	return vel
}

// FindGroundLevel returns the eye height for standing on the highest solid cell of the
// column at x, z, scanning down from top. ok is false when the column is empty down to floor.
func FindGroundLevel(x, z float32, top, floor int, w world.Query) (float32, bool) {
	bx := int(math.Floor(float64(x)))
	bz := int(math.Floor(float64(z)))
	for by := top; by >= floor; by-- {
		if w.Exists(bx, by, bz) {
			// feet cell is by+1, eye cell by+2; stand mid-cell
			return float32(by) + 2.5, true
		}
	}
	return 0, false
}
