package physics_test

import (
	"testing"

	"mini-terrain/internal/physics"
	"mini-terrain/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaycast(t *testing.T) {
	w := world.NewEmpty()
	w.Set(5, 0, 0)

	start := mgl32.Vec3{0.5, 0.5, 0.5}
	dir := mgl32.Vec3{1, 0, 0}

	// Hit along +X
	result := physics.Raycast(start, dir, 10, w)
	require.True(t, result.Hit)
	assert.Equal(t, [3]int{5, 0, 0}, result.HitPosition)
	assert.Equal(t, [3]int{4, 0, 0}, result.AdjacentPosition)
	assert.InDelta(t, 4.5, result.Distance, 0.01)

	// Out of reach
	short := physics.Raycast(start, dir, 4, w)
	assert.False(t, short.Hit)
	assert.Equal(t, physics.RaycastResult{}, short)

	// Wrong direction
	assert.False(t, physics.Raycast(start, mgl32.Vec3{0, 1, 0}, 10, w).Hit)

	// Diagonal
	w.Set(2, 2, 2)
	diag := physics.Raycast(start, mgl32.Vec3{1, 1, 1}.Normalize(), 10, w)
	require.True(t, diag.Hit)
	assert.Equal(t, [3]int{2, 2, 2}, diag.HitPosition)
}

func TestRaycastStraightAhead(t *testing.T) {
	w := world.NewEmpty()
	w.Set(0, 0, -3)

	result := physics.Raycast(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, 8, w)
	require.True(t, result.Hit)
	assert.Equal(t, [3]int{0, 0, -3}, result.HitPosition)
	assert.Equal(t, [3]int{0, 0, -2}, result.AdjacentPosition)
}

func TestRaycastIgnoresStartCell(t *testing.T) {
	w := world.NewEmpty()
	w.Set(0, 0, 0)
	w.Set(0, 0, -2)

	result := physics.Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{0, 0, -1}, 8, w)
	require.True(t, result.Hit)
	assert.Equal(t, [3]int{0, 0, -2}, result.HitPosition)
	assert.Equal(t, [3]int{0, 0, -1}, result.AdjacentPosition)
}

func BenchmarkRaycast(b *testing.B) {
	w := world.NewEmpty()
	// Build a simple wall
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			w.Set(x, y, 5)
		}
	}
	start := mgl32.Vec3{0, 8, 0}
	dir := mgl32.Vec3{0, 0, 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = physics.Raycast(start, dir, 10, w)
	}
}
