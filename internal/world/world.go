package world

import (
	"sort"
	"sync"
)

// Query answers whether an integer cell holds a solid block.
type Query interface {
	Exists(x, y, z int) bool
}

// Voxels is the query and mutation surface consumed by gameplay.
type Voxels interface {
	Query
	Remove(x, y, z int)
}

// Cell is an integer world coordinate.
type Cell [3]int

// World is a sparse set of solid cells.
type World struct {
	mu     sync.RWMutex
	blocks map[Cell]struct{}
}

// NewEmpty creates a world with no blocks.
func NewEmpty() *World {
	return &World{blocks: make(map[Cell]struct{})}
}

// NewFlat creates a square floor of the given half-extent and thickness below y = 0.
func NewFlat(radius, depth int) *World {
	w := NewEmpty()
	for x := -radius; x <= radius; x++ {
		for z := -radius; z <= radius; z++ {
			for y := -depth; y < 0; y++ {
				w.Set(x, y, z)
			}
		}
	}
	return w
}

// Exists reports whether the cell holds a solid block.
func (w *World) Exists(x, y, z int) bool {
	w.mu.RLock()
	_, ok := w.blocks[Cell{x, y, z}]
	w.mu.RUnlock()
	return ok
}

// Set places a solid block at the cell.
func (w *World) Set(x, y, z int) {
	w.mu.Lock()
	w.blocks[Cell{x, y, z}] = struct{}{}
	w.mu.Unlock()
}

// Remove clears the cell. Removing an empty cell is a no-op.
func (w *World) Remove(x, y, z int) {
	w.mu.Lock()
	delete(w.blocks, Cell{x, y, z})
	w.mu.Unlock()
}

// Len returns the number of solid cells.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.blocks)
}

// Cells returns every solid cell in a stable x, y, z order.
func (w *World) Cells() []Cell {
	w.mu.RLock()
	out := make([]Cell, 0, len(w.blocks))
	for c := range w.blocks {
		out = append(out, c)
	}
	w.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		return a[2] < b[2]
	})
	return out
}

// SurfaceHeightAt returns the y of the highest solid cell in the column, or ok=false.
func (w *World) SurfaceHeightAt(x, z int) (int, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	best, found := 0, false
	for c := range w.blocks {
		if c[0] == x && c[2] == z && (!found || c[1] > best) {
			best, found = c[1], true
		}
	}
	return best, found
}
