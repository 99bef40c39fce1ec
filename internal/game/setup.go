package game

import (
	"fmt"

	"mini-terrain/internal/terrain"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func contextHints() {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
}

// SetupWindows creates the visible draw window and a hidden window whose context shares
// buffer objects with it. The hidden context is left for the pipeline worker to bind.
// Must run on the main thread after glfw.Init.
func SetupWindows(width, height int, title string) (window, shared *glfw.Window, err error) {
	contextHints()
	window, err = glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, nil, err
	}

	contextHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	shared, err = glfw.CreateWindow(1, 1, title+" worker", nil, window)
	glfw.DefaultWindowHints()
	if err != nil {
		window.Destroy()
		return nil, nil, fmt.Errorf("create shared context: %w", err)
	}

	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		shared.Destroy()
		window.Destroy()
		return nil, nil, err
	}

	// Disable V-Sync; the frame limiter paces the loop
	glfw.SwapInterval(0)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, shared, nil
}

// SharedContextBinder makes shared current on the pipeline worker's thread.
func SharedContextBinder(shared *glfw.Window) terrain.ContextBinder {
	return func() (func(), error) {
		shared.MakeContextCurrent()
		if glfw.GetCurrentContext() != shared {
			return nil, fmt.Errorf("shared context not current on worker thread")
		}
		return glfw.DetachCurrentContext, nil
	}
}
