package gpu

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUploadBounds(t *testing.T) {
	m := NewMemory()
	h, err := m.Allocate(4 * PositionSize)
	require.NoError(t, err)
	assert.Equal(t, 48, m.Size(h))

	require.NoError(t, m.Upload(h, PositionSize, []float32{1, 2, 3}))
	assert.Equal(t, []float32{0, 0, 0, 1, 2, 3}, m.Contents(h, 6))
	assert.Equal(t, 1, m.Uploads(h))

	err = m.Upload(h, 3*PositionSize, []float32{1, 2, 3, 4})
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, m.Upload(h, 2, []float32{1}), ErrOutOfRange)
	assert.Equal(t, 1, m.Uploads(h))

	require.NoError(t, m.Zero(h))
	assert.Equal(t, make([]float32, 6), m.Contents(h, 6))

	m.Free(h)
	assert.Equal(t, 0, m.Live())
	assert.ErrorIs(t, m.Upload(h, 0, []float32{1}), ErrUnknownHandle)
	assert.ErrorIs(t, m.Zero(h), ErrUnknownHandle)
}

func TestMemoryRejectsBadAllocation(t *testing.T) {
	m := NewMemory()
	_, err := m.Allocate(0)
	assert.ErrorIs(t, err, ErrAllocation)
	_, err = m.Allocate(7)
	assert.ErrorIs(t, err, ErrAllocation)
}

func TestMemoryRecordsDraws(t *testing.T) {
	m := NewMemory()
	m.Draw(Lines, 1, 2, 36)
	assert.Equal(t, []DrawCall{{Mode: Lines, Positions: 1, TexCoords: 2, Vertices: 36}}, m.Draws())
	assert.Empty(t, m.Draws())
}

func TestFloatViews(t *testing.T) {
	assert.Nil(t, Floats3(nil))
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, Floats3([]mgl32.Vec3{{1, 2, 3}, {4, 5, 6}}))
	assert.Equal(t, []float32{1, 2, 3, 4}, Floats2([]mgl32.Vec2{{1, 2}, {3, 4}}))
}

func TestParsePrimitive(t *testing.T) {
	p, err := ParsePrimitive("lines")
	require.NoError(t, err)
	assert.Equal(t, Lines, p)
	assert.Equal(t, "lines", p.String())

	_, err = ParsePrimitive("quads")
	assert.Error(t, err)
}
