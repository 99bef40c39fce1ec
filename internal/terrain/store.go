package terrain

import (
	"fmt"
	"sort"
	"sync"

	"mini-terrain/internal/gpu"
	"mini-terrain/internal/meshing"
)

// Store owns every GeometryBuffer. The pipeline worker mutates it under the write lock;
// the renderer reads it under the read lock, so a frame never sees a half-applied batch.
type Store struct {
	mu       sync.RWMutex
	dev      gpu.Uploader
	capacity int
	buffers  map[string]*GeometryBuffer
}

// NewStore validates the per-buffer vertex capacity up front.
func NewStore(dev gpu.Uploader, capacity int) (*Store, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Store{
		dev:      dev,
		capacity: capacity,
		buffers:  make(map[string]*GeometryBuffer),
	}, nil
}

// BufferInfo is a read-only view of one buffer's bookkeeping.
type BufferInfo struct {
	ID             string `json:"id"`
	Vertices       int    `json:"vertices"`
	Fragments      int    `json:"fragments"`
	PositionOffset int    `json:"positionOffset"`
	TexCoordOffset int    `json:"texCoordOffset"`
	Capacity       int    `json:"capacity"`
	Visible        bool   `json:"visible"`
}

func (b *GeometryBuffer) info() BufferInfo {
	return BufferInfo{
		ID:             b.ID,
		Vertices:       b.VertexCount(),
		Fragments:      b.fragments,
		PositionOffset: b.PositionOffset,
		TexCoordOffset: b.TexCoordOffset,
		Capacity:       b.capacity,
		Visible:        b.Visible,
	}
}

// Info returns the bookkeeping of one buffer.
func (s *Store) Info(id string) (BufferInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.buffers[id]
	if !ok {
		return BufferInfo{}, false
	}
	return b.info(), true
}

// Infos returns the bookkeeping of all buffers ordered by id.
func (s *Store) Infos() []BufferInfo {
	s.mu.RLock()
	out := make([]BufferInfo, 0, len(s.buffers))
	for _, b := range s.buffers {
		out = append(out, b.info())
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of live buffers.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buffers)
}

// The methods below expect the caller to hold s.mu for writing.

func (s *Store) create(id string) error {
	if _, ok := s.buffers[id]; ok {
		return fmt.Errorf("%w: %q", ErrBufferExists, id)
	}
	b, err := newGeometryBuffer(s.dev, id, s.capacity)
	if err != nil {
		return err
	}
	s.buffers[id] = b
	return nil
}

func (s *Store) lookup(id string) (*GeometryBuffer, error) {
	b, ok := s.buffers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuffer, id)
	}
	return b, nil
}

func (s *Store) appendFragment(id string, f meshing.Fragment) (bool, error) {
	b, err := s.lookup(id)
	if err != nil {
		return false, err
	}
	return b.Append(s.dev, f)
}

func (s *Store) exciseFragment(id string, f meshing.Fragment) error {
	b, err := s.lookup(id)
	if err != nil {
		return err
	}
	return b.Excise(s.dev, f)
}

func (s *Store) clear(id string) error {
	b, err := s.lookup(id)
	if err != nil {
		return err
	}
	return b.Clear(s.dev)
}

func (s *Store) destroy(id string) error {
	b, err := s.lookup(id)
	if err != nil {
		return err
	}
	b.destroy(s.dev)
	delete(s.buffers, id)
	return nil
}

func (s *Store) setVisible(id string, visible bool) error {
	b, err := s.lookup(id)
	if err != nil {
		return err
	}
	b.Visible = visible
	return nil
}

// visible returns the drawable buffers in id order. Caller holds s.mu for reading.
func (s *Store) visible(dst []*GeometryBuffer) []*GeometryBuffer {
	dst = dst[:0]
	for _, b := range s.buffers {
		if b.Visible && b.VertexCount() > 0 {
			dst = append(dst, b)
		}
	}
	sort.Slice(dst, func(i, j int) bool { return dst[i].ID < dst[j].ID })
	return dst
}
