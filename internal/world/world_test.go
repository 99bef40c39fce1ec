package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetExistsRemove(t *testing.T) {
	w := NewEmpty()
	assert.False(t, w.Exists(1, 2, 3))

	w.Set(1, 2, 3)
	assert.True(t, w.Exists(1, 2, 3))
	assert.Equal(t, 1, w.Len())

	w.Remove(1, 2, 3)
	assert.False(t, w.Exists(1, 2, 3))
	w.Remove(1, 2, 3)
	assert.Equal(t, 0, w.Len())
}

func TestNewFlat(t *testing.T) {
	w := NewFlat(2, 1)
	assert.Equal(t, 25, w.Len())
	assert.True(t, w.Exists(-2, -1, 2))
	assert.False(t, w.Exists(0, 0, 0))
	assert.False(t, w.Exists(3, -1, 0))

	y, ok := w.SurfaceHeightAt(0, 0)
	assert.True(t, ok)
	assert.Equal(t, -1, y)

	_, ok = w.SurfaceHeightAt(10, 10)
	assert.False(t, ok)
}

func TestCellsOrdered(t *testing.T) {
	w := NewEmpty()
	w.Set(1, 0, 0)
	w.Set(0, 5, 0)
	w.Set(0, 1, 2)

	assert.Equal(t, []Cell{{0, 1, 2}, {0, 5, 0}, {1, 0, 0}}, w.Cells())
}
