package config

import (
	"sync"
	"time"
)

// RenderSettings holds terrain buffer and pipeline configuration
type RenderSettings struct {
	mu             sync.RWMutex
	bufferCapacity int // max vertices per render group
	pipelineRate   int // worker ticks per second when idle
	opsPerTick     int // 0 drains the whole queue each tick
	fpsLimit       int
}

var globalRenderSettings = &RenderSettings{
	bufferCapacity: 1 << 18,
	pipelineRate:   60,
	opsPerTick:     0,
	fpsLimit:       120,
}

// GetBufferCapacity returns the maximum vertex count of one geometry buffer
func GetBufferCapacity() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.bufferCapacity
}

// SetBufferCapacity sets the maximum vertex count of one geometry buffer.
// Non-positive values are stored as-is so the store can reject them at creation.
func SetBufferCapacity(vertices int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.bufferCapacity = vertices
}

// GetPipelineRate returns the idle tick rate of the mesh update worker
func GetPipelineRate() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.pipelineRate
}

// SetPipelineRate sets the idle tick rate of the mesh update worker
func SetPipelineRate(hz int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if hz < 1 {
		hz = 1
	}
	if hz > 1000 {
		hz = 1000
	}

	globalRenderSettings.pipelineRate = hz
}

// GetPipelineInterval returns the idle sleep between worker ticks
func GetPipelineInterval() time.Duration {
	return time.Second / time.Duration(GetPipelineRate())
}

// GetOpsPerTick returns how many requests the worker applies per tick (0 = all pending)
func GetOpsPerTick() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.opsPerTick
}

// SetOpsPerTick sets the per-tick request budget
func SetOpsPerTick(n int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	if n < 0 {
		n = 0
	}
	globalRenderSettings.opsPerTick = n
}

// GetFPSLimit returns the frame cap of the main loop (0 = uncapped)
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap of the main loop
func SetFPSLimit(fps int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	if fps < 0 {
		fps = 0
	}
	globalRenderSettings.fpsLimit = fps
}
