package terrain

import (
	"sync"
	"testing"
	"time"

	"mini-terrain/internal/gpu"
	"mini-terrain/internal/meshing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDrawsVisibleNonEmptyBuffers(t *testing.T) {
	p, store, dev, _ := newTestPipeline(t)
	r := NewFrameRenderer(store, dev)

	p.SubmitCreate("b")
	p.SubmitCreate("a")
	p.SubmitCreate("empty")
	p.SubmitCreate("hidden")
	p.SubmitAppend("a", meshing.Cube(0, 0, 0))
	p.SubmitAppend("b", meshing.Cube(0, 0, 0))
	p.SubmitAppend("b", meshing.Cube(1, 0, 0))
	p.SubmitAppend("hidden", meshing.Cube(0, 0, 0))
	p.SubmitVisibility("hidden", false)
	p.Tick()

	assert.Equal(t, 2, r.Render())
	assert.Equal(t, 2, r.BuffersDrawn())
	assert.Equal(t, 3*meshing.CubeVertices, r.VerticesDrawn())

	draws := dev.Draws()
	require.Len(t, draws, 2)
	a, _ := store.Info("a")
	assert.Equal(t, gpu.Triangles, draws[0].Mode)
	assert.Equal(t, a.Vertices, draws[0].Vertices)
	assert.Equal(t, 2*meshing.CubeVertices, draws[1].Vertices)

	r.SetMode(gpu.Lines)
	p.SubmitDelete("b")
	p.Tick()
	assert.Equal(t, 1, r.Render())
	draws = dev.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, gpu.Lines, draws[0].Mode)
}

// The worker's batch and the renderer's frame exclude each other, so every frame sees
// whole fragments only.
func TestRenderNeverSeesPartialBatch(t *testing.T) {
	p, store, dev, _ := newTestPipeline(t, WithInterval(time.Millisecond))
	r := NewFrameRenderer(store, dev)
	p.SubmitCreate("a")
	require.NoError(t, p.Start(nil))
	defer p.Stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for x := 0; x < 50; x++ {
			p.SubmitAppend("a", meshing.Cube(x, 0, 0))
		}
	}()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r.Render()
		for _, d := range dev.Draws() {
			assert.Zero(t, d.Vertices%meshing.CubeVertices)
		}
		if info, _ := store.Info("a"); info.Vertices == 50*meshing.CubeVertices {
			break
		}
	}
	wg.Wait()
	info, _ := store.Info("a")
	assert.Equal(t, 50*meshing.CubeVertices, info.Vertices)
}
