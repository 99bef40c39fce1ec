// Package gpu abstracts the buffer and draw calls the terrain renderer needs, so the
// bookkeeping above it can run against OpenGL or an in-memory device.
package gpu

import (
	"errors"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Handle names one buffer object.
type Handle uint32

// Primitive is the draw mode used for geometry buffers.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
	Points
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	case Points:
		return "points"
	}
	return "unknown"
}

// ParsePrimitive maps a mode name to a Primitive.
func ParsePrimitive(s string) (Primitive, error) {
	switch s {
	case "triangles":
		return Triangles, nil
	case "lines":
		return Lines, nil
	case "points":
		return Points, nil
	}
	return Triangles, errors.New("gpu: unknown primitive " + s)
}

const (
	FloatSize    = 4
	PositionSize = 3 * FloatSize
	TexCoordSize = 2 * FloatSize
)

var (
	ErrUnknownHandle = errors.New("gpu: unknown buffer handle")
	ErrOutOfRange    = errors.New("gpu: write outside buffer storage")
	ErrAllocation    = errors.New("gpu: buffer allocation failed")
)

// Uploader is the mutation half of a device. It is only used from the pipeline worker.
type Uploader interface {
	// Allocate reserves bytes of zeroed storage.
	Allocate(bytes int) (Handle, error)
	// Upload writes data at a byte offset without reallocating.
	Upload(h Handle, offset int, data []float32) error
	// Zero re-zeroes the whole storage of h, keeping its size.
	Zero(h Handle) error
	Free(h Handle)
	// Flush makes completed writes visible to the draw context.
	Flush()
}

// Drawer is the draw half of a device. It is only used from the render thread.
type Drawer interface {
	Draw(mode Primitive, positions, texCoords Handle, vertices int)
}

// Device is both halves.
type Device interface {
	Uploader
	Drawer
}

// Floats3 views a Vec3 slice as its packed float32 components.
func Floats3(v []mgl32.Vec3) []float32 {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&v[0])), len(v)*3)
}

// Floats2 views a Vec2 slice as its packed float32 components.
func Floats2(v []mgl32.Vec2) []float32 {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&v[0])), len(v)*2)
}
