package meshing

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrMismatchedFragment is returned for fragments whose streams disagree in vertex count.
var ErrMismatchedFragment = errors.New("meshing: vertex and texcoord counts differ")

// Fragment is one contiguous run of geometry, the unit of append and excise.
// TexCoords[i] belongs to Vertices[i], so every boundary falls on a whole vertex
// in both streams.
type Fragment struct {
	Vertices  []mgl32.Vec3
	TexCoords []mgl32.Vec2
}

// Len returns the vertex count.
func (f Fragment) Len() int {
	return len(f.Vertices)
}

// Validate checks the per-vertex pairing of the two streams.
func (f Fragment) Validate() error {
	if len(f.Vertices) != len(f.TexCoords) {
		return fmt.Errorf("%w: %d vertices, %d texcoords", ErrMismatchedFragment, len(f.Vertices), len(f.TexCoords))
	}
	return nil
}

// Equal reports exact value equality of both streams.
func (f Fragment) Equal(o Fragment) bool {
	return slices.Equal(f.Vertices, o.Vertices) && slices.Equal(f.TexCoords, o.TexCoords)
}

// Fingerprint hashes the float bits of both streams. -0 hashes as +0 so fragments
// that are Equal always share a fingerprint.
func (f Fragment) Fingerprint() uint64 {
	h := fnv.New64a()
	var buf [4]byte
	put := func(v float32) {
		if v == 0 {
			v = 0
		}
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
		h.Write(buf[:])
	}
	for _, v := range f.Vertices {
		put(v[0])
		put(v[1])
		put(v[2])
	}
	// separator so (a, bc) and (ab, c) splits hash differently
	h.Write([]byte{0xff})
	for _, t := range f.TexCoords {
		put(t[0])
		put(t[1])
	}
	return h.Sum64()
}

// Clone returns a deep copy, detaching it from the producer's slices.
func (f Fragment) Clone() Fragment {
	return Fragment{
		Vertices:  slices.Clone(f.Vertices),
		TexCoords: slices.Clone(f.TexCoords),
	}
}
