package terrain

import (
	"errors"
	"fmt"
	"slices"

	"mini-terrain/internal/gpu"
	"mini-terrain/internal/meshing"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrInvalidCapacity  = errors.New("terrain: buffer capacity must be positive")
	ErrBufferFull       = errors.New("terrain: fragment exceeds buffer capacity")
	ErrFragmentNotFound = errors.New("terrain: fragment not present in buffer")
	ErrUnknownBuffer    = errors.New("terrain: unknown buffer id")
	ErrBufferExists     = errors.New("terrain: buffer id already exists")
)

// GeometryBuffer is one render group: a position stream and a texcoord stream of fixed
// capacity on the GPU, mirrored on the host so fragments can be located and excised.
//
// Invariants: len(vertices) == len(texCoords), PositionOffset == 12*len(vertices),
// TexCoordOffset == 8*len(texCoords), len(vertices) <= capacity.
type GeometryBuffer struct {
	ID        string
	Positions gpu.Handle
	TexCoords gpu.Handle

	PositionOffset int
	TexCoordOffset int
	Visible        bool

	capacity  int
	vertices  []mgl32.Vec3
	texCoords []mgl32.Vec2

	// applied fragments keyed by fingerprint; collisions resolved by exact comparison
	ledger    map[uint64][]meshing.Fragment
	fragments int
}

func newGeometryBuffer(dev gpu.Uploader, id string, capacity int) (*GeometryBuffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	positions, err := dev.Allocate(capacity * gpu.PositionSize)
	if err != nil {
		return nil, fmt.Errorf("allocate positions for %q: %w", id, err)
	}
	texCoords, err := dev.Allocate(capacity * gpu.TexCoordSize)
	if err != nil {
		dev.Free(positions)
		return nil, fmt.Errorf("allocate texcoords for %q: %w", id, err)
	}
	return &GeometryBuffer{
		ID:        id,
		Positions: positions,
		TexCoords: texCoords,
		Visible:   true,
		capacity:  capacity,
		ledger:    make(map[uint64][]meshing.Fragment),
	}, nil
}

// Capacity returns the maximum vertex count.
func (b *GeometryBuffer) Capacity() int { return b.capacity }

// VertexCount returns the number of live vertices.
func (b *GeometryBuffer) VertexCount() int { return len(b.vertices) }

// Fragments returns how many distinct fragments are recorded in the ledger.
func (b *GeometryBuffer) Fragments() int { return b.fragments }

func (b *GeometryBuffer) inLedger(key uint64, f meshing.Fragment) bool {
	for _, g := range b.ledger[key] {
		if g.Equal(f) {
			return true
		}
	}
	return false
}

// Append uploads f after the live range. It reports false without error when an equal
// fragment was already applied. Rejected fragments leave the buffer untouched.
func (b *GeometryBuffer) Append(dev gpu.Uploader, f meshing.Fragment) (bool, error) {
	if err := f.Validate(); err != nil {
		return false, err
	}
	if f.Len() == 0 {
		return false, nil
	}
	key := f.Fingerprint()
	if b.inLedger(key, f) {
		return false, nil
	}
	if len(b.vertices)+f.Len() > b.capacity {
		return false, fmt.Errorf("%w: %q holds %d of %d vertices, fragment has %d",
			ErrBufferFull, b.ID, len(b.vertices), b.capacity, f.Len())
	}

	// Bytes written past the offset are outside the live range until the offsets move,
	// so a failed second upload leaves no visible change.
	if err := dev.Upload(b.Positions, b.PositionOffset, gpu.Floats3(f.Vertices)); err != nil {
		return false, err
	}
	if err := dev.Upload(b.TexCoords, b.TexCoordOffset, gpu.Floats2(f.TexCoords)); err != nil {
		return false, err
	}

	own := f.Clone()
	b.vertices = append(b.vertices, own.Vertices...)
	b.texCoords = append(b.texCoords, own.TexCoords...)
	b.PositionOffset += f.Len() * gpu.PositionSize
	b.TexCoordOffset += f.Len() * gpu.TexCoordSize
	b.ledger[key] = append(b.ledger[key], own)
	b.fragments++
	return true, nil
}

// indexOf returns the first position where sub occurs in s, or -1.
func indexOf(s, sub []mgl32.Vec3) int {
	if len(sub) == 0 || len(sub) > len(s) {
		return -1
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i] == sub[0] && slices.Equal(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

// Excise removes the first occurrence of f's vertices and the texcoords at the same
// vertex indices, then rewrites both GPU streams from offset 0.
func (b *GeometryBuffer) Excise(dev gpu.Uploader, f meshing.Fragment) error {
	if err := f.Validate(); err != nil {
		return err
	}
	start := indexOf(b.vertices, f.Vertices)
	if start < 0 {
		return fmt.Errorf("%w: %q, %d vertices", ErrFragmentNotFound, b.ID, f.Len())
	}
	end := start + f.Len()

	vertices := slices.Delete(slices.Clone(b.vertices), start, end)
	texCoords := slices.Delete(slices.Clone(b.texCoords), start, end)

	if err := dev.Upload(b.Positions, 0, gpu.Floats3(vertices)); err != nil {
		return err
	}
	if err := dev.Upload(b.TexCoords, 0, gpu.Floats2(texCoords)); err != nil {
		return err
	}

	b.vertices = vertices
	b.texCoords = texCoords
	b.PositionOffset = len(vertices) * gpu.PositionSize
	b.TexCoordOffset = len(texCoords) * gpu.TexCoordSize
	b.forget(f)
	return nil
}

// forget drops the ledger entry for f so it can be appended again. An exact match is
// preferred; otherwise the first entry with the same vertices goes.
func (b *GeometryBuffer) forget(f meshing.Fragment) {
	key := f.Fingerprint()
	for i, g := range b.ledger[key] {
		if g.Equal(f) {
			b.dropLedger(key, i)
			return
		}
	}
	for k, list := range b.ledger {
		for i, g := range list {
			if slices.Equal(g.Vertices, f.Vertices) {
				b.dropLedger(k, i)
				return
			}
		}
	}
}

func (b *GeometryBuffer) dropLedger(key uint64, i int) {
	list := slices.Delete(b.ledger[key], i, i+1)
	if len(list) == 0 {
		delete(b.ledger, key)
	} else {
		b.ledger[key] = list
	}
	b.fragments--
}

// Clear empties the buffer and re-zeroes its storage without freeing it.
func (b *GeometryBuffer) Clear(dev gpu.Uploader) error {
	b.vertices = nil
	b.texCoords = nil
	b.PositionOffset = 0
	b.TexCoordOffset = 0
	b.ledger = make(map[uint64][]meshing.Fragment)
	b.fragments = 0
	if err := dev.Zero(b.Positions); err != nil {
		return err
	}
	return dev.Zero(b.TexCoords)
}

func (b *GeometryBuffer) destroy(dev gpu.Uploader) {
	dev.Free(b.Positions)
	dev.Free(b.TexCoords)
	b.vertices = nil
	b.texCoords = nil
	b.ledger = nil
}
