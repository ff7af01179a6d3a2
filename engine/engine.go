package engine

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-anaglyph/engine/camera"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/config"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/input"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/profiler"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/scene"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/status"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/window"
)

// MaxFrameDelta caps the simulated time of a single frame, so a stall (window drag,
// debugger pause) does not fling particles across the scene. The cap also bounds
// the per-frame energy injection probability (see particle.Params.EnergyRate).
const MaxFrameDelta = 0.1

// ErrMissingCollaborator is returned by NewEngine when no window or renderer was supplied.
var ErrMissingCollaborator = errors.New("engine: window and renderer are required")

// ConfigSource delivers reloaded configurations. *config.Watcher implements it.
type ConfigSource interface {
	Poll() (config.Config, bool)
}

// engine implements the Engine interface.
// Everything runs on the window's thread: callbacks queue input, the update callback draws.
type engine struct {
	window   window.Window
	renderer FrameRenderer
	camera   camera.Camera

	cfg       config.Config
	reloads   ConfigSource
	reporter  *status.Reporter
	profiler  *profiler.Profiler
	pool      worker.DynamicWorkerPool
	ownsPool  bool
	logf      func(format string, args ...any)
	lastError string

	state      input.State
	scene      scene.Scene
	regenerate bool
	events     []input.Event

	lastTime float64
	elapsed  float32
	frames   int
}

// Engine is the main entry point of the demo.
// It owns the scene and the interactive state and drives the renderer once per window iteration.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// State returns the current interactive state.
	//
	// Returns:
	//   - input.State: a copy of the state
	State() input.State

	// Scene returns the scene currently being drawn.
	//
	// Returns:
	//   - scene.Scene: the active scene
	Scene() scene.Scene

	// Config returns the configuration in effect, including hot reloads.
	//
	// Returns:
	//   - config.Config: the active configuration
	Config() config.Config

	// Frames returns the number of frames processed since Run started.
	Frames() int

	// Run starts the frame loop (blocks until the window closes).
	Run()

	// Quit asks the window to close; Run returns after the current frame.
	Quit()

	// Close releases the scene and the compute pool. The window and renderer are owned by the caller.
	Close()
}

// NewEngine creates a new Engine from the provided options.
// A window and a renderer are required; the camera, profiler and compute pool are
// built from the configuration when not supplied.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: ErrMissingCollaborator if the window or renderer is missing
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		cfg:  config.Default(),
		logf: log.Printf,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.window == nil || e.renderer == nil {
		return nil, ErrMissingCollaborator
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(
			profiler.WithInterval(time.Duration(e.cfg.Profiler.IntervalMS)*time.Millisecond),
			profiler.WithLogf(e.logf),
		)
	}
	if e.pool == nil {
		workers := e.cfg.Scene.Workers
		if workers < 1 {
			workers = max(runtime.NumCPU()-1, 1)
		}
		e.pool = worker.NewDynamicWorkerPool(workers, 256, time.Second)
		e.ownsPool = true
	}

	e.state = stateFromConfig(e.cfg)
	if e.camera == nil {
		e.camera = camera.NewCamera(
			camera.WithFovY(e.cfg.Camera.FovY),
			camera.WithNear(e.cfg.Camera.Near),
			camera.WithFar(e.cfg.Camera.Far),
			camera.WithAspect(aspect(e.window.Width(), e.window.Height())),
			camera.WithController(camera.NewCameraController(camera.WithOrbit(e.state.Orbit))),
		)
	}
	e.scene = e.generate()

	e.window.SetKeyCallback(func(keyCode uint32, action input.Action) {
		e.events = append(e.events, input.Event{Key: keyCode, Action: action})
	})
	e.window.SetResizeCallback(e.resize)

	return e, nil
}

// stateFromConfig builds the initial interactive state from the configuration.
func stateFromConfig(cfg config.Config) input.State {
	s := input.DefaultState()
	s.Orbit.Distance = cfg.Camera.Distance
	s.Stereo = cfg.StereoConfig()
	s.Scene = cfg.SceneMode()
	s.AnimateBoxes = cfg.Scene.AnimateBoxes
	s.Profiling = cfg.Profiler.Enabled
	return s
}

func aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) State() input.State {
	return e.state
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Config() config.Config {
	return e.cfg
}

func (e *engine) Frames() int {
	return e.frames
}

func (e *engine) Run() {
	if e.reporter != nil {
		e.reporter.Help()
		e.reporter.Mode(e.state.Stereo)
	}
	e.lastTime = e.window.Time()
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	e.window.RequestClose()
}

func (e *engine) Close() {
	if e.scene != nil {
		e.scene.Close()
	}
	if e.ownsPool && e.pool != nil {
		e.pool.Stop()
		e.pool = nil
	}
}

// frame runs one iteration of the loop: input, config reloads, scene regeneration,
// camera sync, draw, animation, present and profiling, in that order.
func (e *engine) frame() {
	now := e.window.Time()
	dt := mgl32.Clamp(float32(now-e.lastTime), 0, MaxFrameDelta)
	e.lastTime = now
	e.frames++

	prev := e.state
	e.state = input.ApplyAll(e.state, e.events)
	e.events = e.events[:0]
	e.pollConfig()
	if e.reporter != nil {
		e.reporter.Report(prev, e.state)
	}

	if e.state.CloseRequested {
		e.window.RequestClose()
		return
	}
	if e.state.Profiling && !prev.Profiling {
		e.profiler.Reset()
	}
	if e.regenerate || e.state.Scene != e.scene.Mode() {
		e.scene.Close()
		e.scene = e.generate()
		e.regenerate = false
	}

	e.camera.Controller().SetOrbit(e.state.Orbit)
	stats, drawn := e.draw()

	e.state = input.Advance(e.state, dt)
	e.elapsed += dt
	e.scene.Update(dt, e.elapsed, e.state.AnimateBoxes)
	stats.Respawned = e.scene.Respawned()

	if drawn {
		e.renderer.Present()
	}

	if e.state.Profiling {
		e.profiler.SetLabel(fmt.Sprintf("%s | %s", e.scene.Mode(), e.state.Stereo.Mode))
		e.profiler.Record(stats)
		e.profiler.Tick()
	}
}

// draw records and submits the frame. It reports whether there is a frame to present.
func (e *engine) draw() (profiler.FrameStats, bool) {
	if err := e.renderer.BeginFrame(); err != nil {
		e.reportError(err)
		return profiler.FrameStats{}, false
	}

	stats, err := RenderFrame(e.renderer, e.camera.Params(), e.state.Stereo, e.scene.Transforms(), FrameOptions{
		ClearColor: e.cfg.ClearColor(),
		Cull:       e.cfg.Render.Cull,
	})
	e.reportError(err)

	if err := e.renderer.EndFrame(); err != nil {
		e.reportError(err)
		return stats, false
	}
	return stats, true
}

// reportError logs err when it differs from the previous frame's error, so a persistent
// failure is logged once per occurrence rather than once per frame.
func (e *engine) reportError(err error) {
	if err == nil {
		e.lastError = ""
		return
	}
	if msg := err.Error(); msg != e.lastError {
		e.logf("[Engine] frame %d: %v", e.frames, err)
		e.lastError = msg
	}
}

func (e *engine) generate() scene.Scene {
	return scene.Generate(e.state.Scene, e.cfg.Scene.Seed,
		scene.WithParticleParams(e.cfg.ParticleParams()),
		scene.WithComputePool(e.pool),
	)
}

func (e *engine) resize(width, height int) {
	if err := e.renderer.Resize(width, height); err != nil {
		e.logf("[Engine] resize %dx%d: %v", width, height, err)
	}
	if width > 0 && height > 0 {
		e.camera.SetAspect(aspect(width, height))
	}
}

// pollConfig applies every reloaded configuration waiting on the source.
// Only sections that changed override the interactive state, so keyboard tweaks survive
// edits to unrelated keys.
func (e *engine) pollConfig() {
	if e.reloads == nil {
		return
	}
	for {
		cfg, ok := e.reloads.Poll()
		if !ok {
			return
		}
		e.applyConfig(cfg)
	}
}

func (e *engine) applyConfig(cfg config.Config) {
	prev := e.cfg
	e.cfg = cfg

	if prev.Camera != cfg.Camera {
		e.camera.SetFovY(cfg.Camera.FovY)
		e.camera.SetClip(cfg.Camera.Near, cfg.Camera.Far)
		if prev.Camera.Distance != cfg.Camera.Distance {
			e.state.Orbit.Distance = cfg.Camera.Distance
		}
	}
	if prev.Stereo != cfg.Stereo {
		e.state.Stereo = cfg.StereoConfig()
	}
	if prev.Scene.Mode != cfg.Scene.Mode {
		e.state.Scene = cfg.SceneMode()
	}
	if prev.Scene.AnimateBoxes != cfg.Scene.AnimateBoxes {
		e.state.AnimateBoxes = cfg.Scene.AnimateBoxes
	}
	if prev.Scene.Seed != cfg.Scene.Seed || prev.BlackHole != cfg.BlackHole {
		e.regenerate = true
	}
	if prev.Profiler.Enabled != cfg.Profiler.Enabled {
		e.state.Profiling = cfg.Profiler.Enabled
	}
	e.logf("[Config] reloaded")
}
