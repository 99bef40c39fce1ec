// Package opengl implements gpu.Device on an OpenGL 4.1 core context. Buffer objects
// are shared between the draw context and the worker's shared context; the vertex
// array object and program are not, so they belong to the draw context only.
package opengl

import (
	"fmt"
	"log"

	"mini-terrain/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Device issues buffer and draw calls against the current GL context.
type Device struct {
	sizes  map[gpu.Handle]int
	vao    uint32
	shader *Shader
}

// New creates a device. InitDraw must be called on the draw context before Draw.
func New() *Device {
	return &Device{sizes: make(map[gpu.Handle]int)}
}

func glCheckError(label string) error {
	if err := gl.GetError(); err != gl.NO_ERROR {
		return fmt.Errorf("gl error %s: 0x%x", label, err)
	}
	return nil
}

// InitDraw creates the vertex array object and terrain program on the current context.
func (d *Device) InitDraw() error {
	shader, err := NewShader(terrainVertShader, terrainFragShader)
	if err != nil {
		return err
	}
	d.shader = shader
	shader.Use()
	shader.SetInt("atlas", 0)
	gl.GenVertexArrays(1, &d.vao)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return glCheckError("InitDraw")
}

// BeginFrame clears the framebuffer and loads camera uniforms.
func (d *Device) BeginFrame(view, proj mgl32.Mat4, sky mgl32.Vec3, fogDistance float32) {
	gl.ClearColor(sky.X(), sky.Y(), sky.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	d.shader.Use()
	d.shader.SetMatrix4("proj", &proj[0])
	d.shader.SetMatrix4("view", &view[0])
	d.shader.SetBool("useAtlas", false)
	d.shader.SetVector3("fogColor", sky.X(), sky.Y(), sky.Z())
	d.shader.SetFloat("fogDistance", fogDistance)
}

// SetViewport resizes the GL viewport.
func (d *Device) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Allocate(bytes int) (gpu.Handle, error) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	if vbo == 0 {
		return 0, fmt.Errorf("%w: glGenBuffers returned 0", gpu.ErrAllocation)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	zeros := make([]byte, bytes)
	gl.BufferData(gl.ARRAY_BUFFER, bytes, gl.Ptr(zeros), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	if err := glCheckError("Allocate"); err != nil {
		gl.DeleteBuffers(1, &vbo)
		return 0, fmt.Errorf("%w: %v", gpu.ErrAllocation, err)
	}
	d.sizes[gpu.Handle(vbo)] = bytes
	return gpu.Handle(vbo), nil
}

func (d *Device) Upload(h gpu.Handle, offset int, data []float32) error {
	size, ok := d.sizes[h]
	if !ok {
		return fmt.Errorf("%w: %d", gpu.ErrUnknownHandle, h)
	}
	n := len(data) * gpu.FloatSize
	if offset < 0 || offset+n > size {
		return fmt.Errorf("%w: offset %d len %d cap %d", gpu.ErrOutOfRange, offset, n, size)
	}
	if n == 0 {
		return nil
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(h))
	gl.BufferSubData(gl.ARRAY_BUFFER, offset, n, gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return glCheckError("Upload")
}

func (d *Device) Zero(h gpu.Handle) error {
	size, ok := d.sizes[h]
	if !ok {
		return fmt.Errorf("%w: %d", gpu.ErrUnknownHandle, h)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(h))
	zeros := make([]byte, size)
	gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(zeros), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return glCheckError("Zero")
}

func (d *Device) Free(h gpu.Handle) {
	vbo := uint32(h)
	gl.DeleteBuffers(1, &vbo)
	delete(d.sizes, h)
}

// Flush waits for queued commands so the draw context sees finished buffer contents.
func (d *Device) Flush() {
	gl.Finish()
}

func primitiveMode(p gpu.Primitive) uint32 {
	switch p {
	case gpu.Lines:
		return gl.LINES
	case gpu.Points:
		return gl.POINTS
	}
	return gl.TRIANGLES
}

func (d *Device) Draw(mode gpu.Primitive, positions, texCoords gpu.Handle, vertices int) {
	if vertices <= 0 {
		return
	}
	gl.BindVertexArray(d.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(positions))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 0, nil)

	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(texCoords))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 0, nil)

	gl.DrawArrays(primitiveMode(mode), 0, int32(vertices))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	if err := glCheckError("Draw"); err != nil {
		log.Printf("[opengl] %v", err)
	}
}

// Dispose releases draw-context objects.
func (d *Device) Dispose() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
	if d.shader != nil {
		d.shader.Delete()
	}
}
