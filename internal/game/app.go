package game

import (
	"log"
	"time"

	"mini-terrain/internal/gpu/opengl"
	"mini-terrain/internal/input"
	"mini-terrain/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	fieldOfView = 65
	nearPlane   = 0.1
	farPlane    = 256
	fogDistance = 96

	slowFrame = 16 * time.Millisecond
)

var skyColor = mgl32.Vec3{0.53, 0.81, 0.92}

// App owns the window and drives a Session once per frame on the main thread.
type App struct {
	window  *glfw.Window
	input   *input.InputManager
	device  *opengl.Device
	session *Session
	limiter *FrameLimiter

	width, height int
	paused        bool
	lastTime      time.Time
}

func NewApp(window *glfw.Window, im *input.InputManager, device *opengl.Device, session *Session) *App {
	a := &App{
		window:   window,
		input:    im,
		device:   device,
		session:  session,
		limiter:  NewFrameLimiter(),
		lastTime: time.Now(),
	}
	a.width, a.height = window.GetFramebufferSize()
	device.SetViewport(a.width, a.height)

	im.SetCallbacks(window)
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		a.width, a.height = width, height
		a.device.SetViewport(width, height)
	})
	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused {
			a.session.Paused = true
		}
	})
	return a
}

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.frame()
	}
}

func (a *App) projection() mgl32.Mat4 {
	aspect := float32(1)
	if a.height > 0 {
		aspect = float32(a.width) / float32(a.height)
	}
	return mgl32.Perspective(mgl32.DegToRad(fieldOfView), aspect, nearPlane, farPlane)
}

func (a *App) syncCursor() {
	if a.session.Paused == a.paused {
		return
	}
	a.paused = a.session.Paused
	if a.paused {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	} else {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		// drop motion gathered while the cursor was free
		a.input.ConsumeMouseDelta()
	}
}

func (a *App) frame() {
	profiling.ResetFrame()
	start := time.Now()
	dt := start.Sub(a.lastTime)
	a.lastTime = start

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	a.session.Update(dt, a.input)
	a.syncCursor()

	a.device.BeginFrame(a.session.Player.GetViewMatrix(), a.projection(), skyColor, fogDistance)
	a.session.Render()

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	if d := time.Since(start); d > slowFrame {
		log.Printf("[game] slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
	}

	a.limiter.Wait(a.session.Paused)
}
