package gpu

import (
	"fmt"
	"sync"
)

// DrawCall records one Memory.Draw invocation.
type DrawCall struct {
	Mode      Primitive
	Positions Handle
	TexCoords Handle
	Vertices  int
}

// Memory is a host-side Device. Storage is float32 words, so offsets must be 4-byte aligned.
type Memory struct {
	mu      sync.Mutex
	next    Handle
	buffers map[Handle][]float32
	uploads map[Handle]int
	flushes int
	draws   []DrawCall
}

// NewMemory creates an empty in-memory device.
func NewMemory() *Memory {
	return &Memory{
		buffers: make(map[Handle][]float32),
		uploads: make(map[Handle]int),
	}
}

func (m *Memory) Allocate(bytes int) (Handle, error) {
	if bytes <= 0 || bytes%FloatSize != 0 {
		return 0, fmt.Errorf("%w: %d bytes", ErrAllocation, bytes)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.buffers[m.next] = make([]float32, bytes/FloatSize)
	return m.next, nil
}

func (m *Memory) Upload(h Handle, offset int, data []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf, ok := m.buffers[h]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	if offset < 0 || offset%FloatSize != 0 || offset/FloatSize+len(data) > len(buf) {
		return fmt.Errorf("%w: offset %d len %d cap %d", ErrOutOfRange, offset, len(data)*FloatSize, len(buf)*FloatSize)
	}
	copy(buf[offset/FloatSize:], data)
	m.uploads[h]++
	return nil
}

func (m *Memory) Zero(h Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf, ok := m.buffers[h]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	clear(buf)
	return nil
}

func (m *Memory) Free(h Handle) {
	m.mu.Lock()
	delete(m.buffers, h)
	delete(m.uploads, h)
	m.mu.Unlock()
}

func (m *Memory) Flush() {
	m.mu.Lock()
	m.flushes++
	m.mu.Unlock()
}

func (m *Memory) Draw(mode Primitive, positions, texCoords Handle, vertices int) {
	m.mu.Lock()
	m.draws = append(m.draws, DrawCall{Mode: mode, Positions: positions, TexCoords: texCoords, Vertices: vertices})
	m.mu.Unlock()
}

// Contents returns a copy of the first n floats stored in h.
func (m *Memory) Contents(h Handle, n int) []float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := m.buffers[h]
	if n > len(buf) {
		n = len(buf)
	}
	if n <= 0 {
		return nil
	}
	out := make([]float32, n)
	copy(out, buf[:n])
	return out
}

// Size returns the allocated byte size of h, or 0 when it does not exist.
func (m *Memory) Size(h Handle) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buffers[h]) * FloatSize
}

// Uploads returns how many successful uploads h has received.
func (m *Memory) Uploads(h Handle) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uploads[h]
}

// Live returns the number of allocated buffers.
func (m *Memory) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buffers)
}

// Flushes returns how many times Flush was called.
func (m *Memory) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}

// Draws returns and clears the recorded draw calls.
func (m *Memory) Draws() []DrawCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.draws
	m.draws = nil
	return out
}
