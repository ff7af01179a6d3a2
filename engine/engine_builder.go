package engine

import (
	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/Carmen-Shannon/oxy-anaglyph/engine/camera"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/config"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/profiler"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/status"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithWindow sets the window the engine polls and draws into. Required.
//
// Parameters:
//   - w: a spawned Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer frames are drawn with. Required.
//
// Parameters:
//   - r: the renderer (a renderer.Renderer in the binary)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r FrameRenderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithConfig sets the startup configuration. Defaults to config.Default().
//
// Parameters:
//   - cfg: a validated configuration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg config.Config) EngineBuilderOption {
	return func(e *engine) {
		e.cfg = cfg
	}
}

// WithConfigSource sets where hot-reloaded configurations come from, typically a *config.Watcher.
//
// Parameters:
//   - src: the reload source, polled once per frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfigSource(src ConfigSource) EngineBuilderOption {
	return func(e *engine) {
		e.reloads = src
	}
}

// WithCamera replaces the camera built from the configuration.
// The camera must have a controller attached.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithReporter enables console status lines.
//
// Parameters:
//   - r: the status reporter
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithReporter(r *status.Reporter) EngineBuilderOption {
	return func(e *engine) {
		e.reporter = r
	}
}

// WithProfiler replaces the profiler built from the configuration.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithComputePool shares a worker pool for scene transform composition.
// The engine does not stop a pool it did not create.
//
// Parameters:
//   - pool: the worker pool
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithComputePool(pool worker.DynamicWorkerPool) EngineBuilderOption {
	return func(e *engine) {
		e.pool = pool
	}
}

// WithLogf redirects engine, config and profiler log lines. Defaults to log.Printf.
//
// Parameters:
//   - logf: a printf-style logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogf(logf func(format string, args ...any)) EngineBuilderOption {
	return func(e *engine) {
		e.logf = logf
	}
}
