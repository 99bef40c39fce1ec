package meshing

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeShape(t *testing.T) {
	f := Cube(2, -1, 5)
	require.NoError(t, f.Validate())
	assert.Equal(t, CubeVertices, f.Len())

	for _, v := range f.Vertices {
		assert.True(t, v.X() == 2 || v.X() == 3, "x %v", v)
		assert.True(t, v.Y() == -1 || v.Y() == 0, "y %v", v)
		assert.True(t, v.Z() == 5 || v.Z() == 6, "z %v", v)
	}
}

func TestCubeFacesPointOutward(t *testing.T) {
	f := Cube(0, 0, 0)
	center := mgl32.Vec3{0.5, 0.5, 0.5}
	for i := 0; i < f.Len(); i += 3 {
		a, b, c := f.Vertices[i], f.Vertices[i+1], f.Vertices[i+2]
		normal := b.Sub(a).Cross(c.Sub(a))
		out := a.Add(b).Add(c).Mul(1.0 / 3.0).Sub(center)
		assert.Greater(t, normal.Dot(out), float32(0), "triangle %d winds inward", i/3)
	}
}

func TestFragmentEqualityAndFingerprint(t *testing.T) {
	a := Cube(1, 2, 3)
	b := Cube(1, 2, 3)
	c := Cube(1, 2, 4)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	clone := a.Clone()
	clone.Vertices[0] = mgl32.Vec3{9, 9, 9}
	assert.False(t, a.Equal(clone))
}

func TestFingerprintTreatsNegativeZeroAsZero(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))
	a := Fragment{Vertices: []mgl32.Vec3{{0, 1, 0}}, TexCoords: []mgl32.Vec2{{0, 0}}}
	b := Fragment{Vertices: []mgl32.Vec3{{negZero, 1, 0}}, TexCoords: []mgl32.Vec2{{0, negZero}}}

	require.True(t, a.Equal(b))
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestValidateRejectsMismatch(t *testing.T) {
	f := Fragment{Vertices: []mgl32.Vec3{{0, 0, 0}}, TexCoords: nil}
	assert.ErrorIs(t, f.Validate(), ErrMismatchedFragment)
}

func TestGroupID(t *testing.T) {
	assert.Equal(t, "chunk:0:0", GroupID(0, 15))
	assert.Equal(t, "chunk:-1:0", GroupID(-1, 0))
	assert.Equal(t, "chunk:-1:-2", GroupID(-16, -17))
	assert.Equal(t, "chunk:2:1", GroupID(32, 16))
}
