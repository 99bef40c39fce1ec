package terrain

import (
	"mini-terrain/internal/gpu"
	"mini-terrain/internal/profiling"
)

// FrameRenderer draws every visible buffer once per frame.
type FrameRenderer struct {
	store *Store
	dev   gpu.Drawer
	mode  gpu.Primitive

	scratch  []*GeometryBuffer
	drawn    int
	vertices int
}

// NewFrameRenderer creates a renderer drawing with triangles.
func NewFrameRenderer(store *Store, dev gpu.Drawer) *FrameRenderer {
	return &FrameRenderer{store: store, dev: dev, mode: gpu.Triangles}
}

// SetMode changes the primitive mode used for draw calls.
func (r *FrameRenderer) SetMode(mode gpu.Primitive) { r.mode = mode }

// Mode returns the primitive mode used for draw calls.
func (r *FrameRenderer) Mode() gpu.Primitive { return r.mode }

// Render issues one draw per visible non-empty buffer and returns how many it drew.
// It holds the store's read lock for the whole frame, so the worker cannot mutate
// buffers mid-draw.
func (r *FrameRenderer) Render() int {
	defer profiling.Track("terrain.Render")()

	r.drawn = 0
	r.vertices = 0

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	r.scratch = r.store.visible(r.scratch)
	for _, b := range r.scratch {
		r.dev.Draw(r.mode, b.Positions, b.TexCoords, b.VertexCount())
		r.drawn++
		r.vertices += b.VertexCount()
	}
	clear(r.scratch)
	return r.drawn
}

// BuffersDrawn returns the draw count of the last frame.
func (r *FrameRenderer) BuffersDrawn() int { return r.drawn }

// VerticesDrawn returns the vertex total of the last frame.
func (r *FrameRenderer) VerticesDrawn() int { return r.vertices }
