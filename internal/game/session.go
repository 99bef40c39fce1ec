package game

import (
	"log"
	"time"

	"mini-terrain/internal/gpu"
	"mini-terrain/internal/input"
	"mini-terrain/internal/meshing"
	"mini-terrain/internal/player"
	"mini-terrain/internal/profiling"
	"mini-terrain/internal/telemetry"
	"mini-terrain/internal/terrain"
	"mini-terrain/internal/world"
)

const (
	TickRate     = 60
	tickInterval = time.Second / TickRate
	// Frames longer than this drop the excess ticks instead of spiralling.
	maxTicksPerFrame = 5

	publishInterval = 500 * time.Millisecond
)

// InputSource is what the session reads from the input layer each frame.
type InputSource interface {
	Snapshot() input.Snapshot
	ConsumeMouseDelta() (dx, dy float64)
	JustPressed(action input.Action) bool
	PostUpdate()
}

// Session ties the world, the player and the terrain pipeline together. It does not
// touch the window, so it runs unchanged against an in-memory device.
type Session struct {
	World     *world.World
	Player    *player.Player
	Store     *terrain.Store
	Pipeline  *terrain.Pipeline
	Renderer  *terrain.FrameRenderer
	Telemetry *telemetry.Hub

	// GroupOf names the buffer a block column is meshed into.
	GroupOf func(x, z int) string

	Paused      bool
	ShowProfile bool

	accumulator  time.Duration
	pendingClick bool

	frames       int
	fps          float64
	lastFPSCheck time.Time
	lastPublish  time.Time
}

func NewSession(w *world.World, store *terrain.Store, pipeline *terrain.Pipeline, renderer *terrain.FrameRenderer) *Session {
	s := &Session{
		World:        w,
		Player:       player.New(w, SpawnPoint(w)),
		Store:        store,
		Pipeline:     pipeline,
		Renderer:     renderer,
		GroupOf:      meshing.GroupID,
		lastFPSCheck: time.Now(),
	}
	s.Player.OnBlockRemoved = s.exciseBlock
	return s
}

// SingleGroup puts every block into one buffer.
func SingleGroup(x, z int) string {
	return meshing.DefaultGroup
}

// LoadTerrain submits one buffer per group and one cube per solid cell.
// It returns the number of cubes submitted.
func (s *Session) LoadTerrain() (int, error) {
	defer profiling.Track("game.LoadTerrain")()

	created := make(map[string]bool)
	n := 0
	for _, c := range s.World.Cells() {
		id := s.GroupOf(c[0], c[2])
		if !created[id] {
			if _, err := s.Pipeline.SubmitCreate(id); err != nil {
				return n, err
			}
			created[id] = true
		}
		if _, err := s.Pipeline.SubmitAppend(id, meshing.Cube(c[0], c[1], c[2])); err != nil {
			return n, err
		}
		n++
	}
	log.Printf("[game] submitted %d blocks in %d buffers", n, len(created))
	return n, nil
}

func (s *Session) exciseBlock(c [3]int) {
	id := s.GroupOf(c[0], c[2])
	if _, err := s.Pipeline.SubmitExcise(id, meshing.Cube(c[0], c[1], c[2])); err != nil {
		log.Printf("[game] excise %v: %v", c, err)
	}
}

// Update runs the fixed-rate ticks owed for a frame of length dt and returns how many ran.
// A click seen in a frame without a tick is kept for the next tick.
func (s *Session) Update(dt time.Duration, in InputSource) int {
	defer in.PostUpdate()

	s.handleActions(in)
	dx, dy := in.ConsumeMouseDelta()
	snap := in.Snapshot()

	if s.Paused {
		s.accumulator = 0
		s.pendingClick = false
		return 0
	}

	s.Player.MouseMotion(dx, dy)
	s.pendingClick = s.pendingClick || snap.Click

	s.accumulator += dt
	if limit := maxTicksPerFrame * tickInterval; s.accumulator > limit {
		s.accumulator = limit
	}

	ticks := 0
	for s.accumulator >= tickInterval {
		snap.Click = s.pendingClick
		s.Player.Update(snap)
		s.pendingClick = false
		s.accumulator -= tickInterval
		ticks++
	}
	return ticks
}

func (s *Session) handleActions(in InputSource) {
	if in.JustPressed(input.ActionPause) {
		s.Paused = !s.Paused
	}
	if in.JustPressed(input.ActionToggleWireframe) {
		if s.Renderer.Mode() == gpu.Triangles {
			s.Renderer.SetMode(gpu.Lines)
		} else {
			s.Renderer.SetMode(gpu.Triangles)
		}
	}
	if in.JustPressed(input.ActionToggleProfiling) {
		s.ShowProfile = !s.ShowProfile
	}
}

// Render draws the terrain and returns the number of buffers drawn.
func (s *Session) Render() int {
	n := s.Renderer.Render()
	s.frames++

	now := time.Now()
	if elapsed := now.Sub(s.lastFPSCheck); elapsed >= time.Second {
		s.fps = float64(s.frames) / elapsed.Seconds()
		s.frames = 0
		s.lastFPSCheck = now
		if s.ShowProfile {
			log.Printf("[game] fps %.0f, pipeline %+v, top: %s", s.fps, s.Pipeline.Stats(), profiling.TopN(5))
		}
	}

	if s.Telemetry != nil && now.Sub(s.lastPublish) >= publishInterval {
		s.Telemetry.Broadcast(s.Stats())
		s.lastPublish = now
	}
	return n
}

// FPS returns the frame rate measured over the last full second.
func (s *Session) FPS() float64 {
	return s.fps
}

// Stats assembles a telemetry frame from the current state.
func (s *Session) Stats() telemetry.Stats {
	p := s.Player
	st := telemetry.Stats{
		Time:          time.Now(),
		FPS:           s.fps,
		Pipeline:      s.Pipeline.Stats(),
		Buffers:       s.Store.Infos(),
		BuffersDrawn:  s.Renderer.BuffersDrawn(),
		VerticesDrawn: s.Renderer.VerticesDrawn(),
		Player: telemetry.PlayerStats{
			Position: [3]float32(p.Position),
			Falling:  p.Falling,
		},
		Profile: profiling.Snapshot(),
	}
	if p.Target.Hit {
		hit := p.Target.HitPosition
		st.Player.Target = &hit
	}
	return st
}

// Close stops the pipeline worker.
func (s *Session) Close() {
	s.Pipeline.Stop()
}
