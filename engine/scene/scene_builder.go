package scene

import (
	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/Carmen-Shannon/oxy-anaglyph/engine/particle"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithParticleParams sets the black hole swarm configuration.
// The particle count is always derived from BlackHoleCount.
//
// Parameters:
//   - params: the swarm configuration
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithParticleParams(params particle.Params) SceneBuilderOption {
	return func(s *scene) {
		s.particleParams = params
	}
}

// WithComputeWorkers sets the number of worker goroutines used to compose
// transforms when the scene creates its own pool. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}

// WithComputePool shares an existing worker pool. The scene never stops a shared pool,
// so regenerating scenes on every mode switch reuses the same workers.
//
// Parameters:
//   - pool: the pool to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputePool(pool worker.DynamicWorkerPool) SceneBuilderOption {
	return func(s *scene) {
		s.computePool = pool
	}
}
