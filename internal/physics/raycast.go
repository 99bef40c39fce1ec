package physics

import (
	"mini-terrain/internal/profiling"
	"mini-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// SubSteps is the number of ray samples per world unit.
const SubSteps = 8

// RaycastResult stores the result of a raycast operation. HitPosition and
// AdjacentPosition are both meaningful only when Hit is set.
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int
	Distance         float32
	Hit              bool
}

// Raycast marches from start along direction in fixed steps up to maxDist. It returns the
// first solid cell entered and the cell the ray was in just before it. The start cell
// itself is never reported.
func Raycast(start, direction mgl32.Vec3, maxDist float32, w world.Query) RaycastResult {
	defer profiling.Track("physics.Raycast")()

	steps := int(maxDist * SubSteps)
	previous := CellOf(start)

	for i := 1; i <= steps; i++ {
		dist := float32(i) / SubSteps
		cell := CellOf(start.Add(direction.Mul(dist)))
		if cell != previous && w.Exists(cell[0], cell[1], cell[2]) {
			return RaycastResult{
				HitPosition:      cell,
				AdjacentPosition: previous,
				Distance:         dist,
				Hit:              true,
			}
		}
		previous = cell
	}

	return RaycastResult{}
}
