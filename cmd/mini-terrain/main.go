package main

import (
	"flag"
	"log"
	"runtime"

	"mini-terrain/internal/config"
	"mini-terrain/internal/game"
	"mini-terrain/internal/gpu"
	"mini-terrain/internal/gpu/opengl"
	"mini-terrain/internal/input"
	"mini-terrain/internal/telemetry"
	"mini-terrain/internal/terrain"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var (
		capacity    = flag.Int("capacity", config.GetBufferCapacity(), "vertex capacity of one geometry buffer")
		rate        = flag.Int("rate", config.GetPipelineRate(), "mesh pipeline ticks per second")
		budget      = flag.Int("budget", config.GetOpsPerTick(), "requests applied per pipeline tick, 0 for all pending")
		fps         = flag.Int("fps", config.GetFPSLimit(), "frame rate limit, 0 for unlimited")
		reach       = flag.Int("reach", config.GetReach(), "targeting distance in blocks")
		sensitivity = flag.Float64("sensitivity", float64(config.GetMouseSensitivity()), "degrees per pixel of mouse motion")
		radius      = flag.Int("radius", config.GetWorldRadius(), "half-extent of the demo world in blocks")
		seed        = flag.Int64("seed", config.GetWorldSeed(), "hills seed, 0 for the flat demo floor")
		hills       = flag.Int("hills", config.GetHillAmplitude(), "tallest hill in blocks when seeded")
		mode        = flag.String("mode", gpu.Triangles.String(), "terrain primitive: triangles, lines or points")
		oneBuffer   = flag.Bool("single-buffer", false, "mesh every block into one buffer instead of one per chunk")
		telemetryAt = flag.String("telemetry", "", "serve stats over websocket on this address, e.g. :8089")
	)
	flag.Parse()

	config.SetBufferCapacity(*capacity)
	config.SetPipelineRate(*rate)
	config.SetOpsPerTick(*budget)
	config.SetFPSLimit(*fps)
	config.SetReach(*reach)
	config.SetMouseSensitivity(float32(*sensitivity))
	config.SetWorldRadius(*radius)
	config.SetWorldSeed(*seed)
	config.SetHillAmplitude(*hills)

	primitive, err := gpu.ParsePrimitive(*mode)
	if err != nil {
		log.Fatalf("flag -mode: %v", err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw init: %v", err)
	}

	window, shared, err := game.SetupWindows(900, 600, "mini-terrain")
	if err != nil {
		glfw.Terminate()
		log.Fatalf("window setup: %v", err)
	}

	device := opengl.New()
	if err := device.InitDraw(); err != nil {
		glfw.Terminate()
		log.Fatalf("draw setup: %v", err)
	}

	store, err := terrain.NewStore(device, config.GetBufferCapacity())
	if err != nil {
		glfw.Terminate()
		log.Fatalf("terrain store: %v", err)
	}
	pipeline := terrain.NewPipeline(store)
	if err := pipeline.Start(game.SharedContextBinder(shared)); err != nil {
		glfw.Terminate()
		log.Fatalf("mesh pipeline: %v", err)
	}

	renderer := terrain.NewFrameRenderer(store, device)
	renderer.SetMode(primitive)
	session := game.NewSession(game.NewDemoWorld(config.GetWorldRadius(), config.GetWorldSeed()), store, pipeline, renderer)
	if *oneBuffer {
		session.GroupOf = game.SingleGroup
	}

	if *telemetryAt != "" {
		hub := telemetry.NewHub()
		if err := hub.Listen(*telemetryAt); err != nil {
			log.Printf("[main] telemetry disabled: %v", err)
		} else {
			session.Telemetry = hub
		}
	}

	// Runs on SIGINT/SIGTERM from closer's goroutine, or from closer.Close below.
	// Both steps are safe off the main thread and safe to repeat.
	closer.Bind(func() {
		session.Close()
		if session.Telemetry != nil {
			session.Telemetry.Close()
		}
		log.Println("[main] shutdown complete")
	})

	if _, err := session.LoadTerrain(); err != nil {
		closer.Fatalln("load terrain:", err)
	}

	game.NewApp(window, input.NewInputManager(), device, session).Run()

	// The worker must release the shared context before the windows go away.
	session.Close()
	device.Dispose()
	shared.Destroy()
	window.Destroy()
	glfw.Terminate()

	closer.Close()
}
