package meshing

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// CubeVertices is the vertex count of one full block.
const CubeVertices = 36

// Face corners for a unit cube at the origin, counter-clockwise seen from outside.
var cubeFaces = [6][4]mgl32.Vec3{
	{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}, // top
	{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}, // bottom
	{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}, // left
	{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}, // right
	{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}, // front
	{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}, // back
}

var quadUV = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// Two triangles per quad.
var quadOrder = [6]int{0, 1, 2, 0, 2, 3}

// Cube builds the fragment of a full block occupying [cell, cell+1) on every axis.
func Cube(x, y, z int) Fragment {
	offset := mgl32.Vec3{float32(x), float32(y), float32(z)}
	f := Fragment{
		Vertices:  make([]mgl32.Vec3, 0, CubeVertices),
		TexCoords: make([]mgl32.Vec2, 0, CubeVertices),
	}
	for _, face := range cubeFaces {
		for _, i := range quadOrder {
			f.Vertices = append(f.Vertices, face[i].Add(offset))
			f.TexCoords = append(f.TexCoords, quadUV[i])
		}
	}
	return f
}

// ChunkSize is the horizontal edge length of one render group.
const ChunkSize = 16

// DefaultGroup names the catch-all render group.
const DefaultGroup = "DEFAULT"

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// GroupID names the render group owning the block column at x, z.
func GroupID(x, z int) string {
	return fmt.Sprintf("chunk:%d:%d", floorDiv(x, ChunkSize), floorDiv(z, ChunkSize))
}
