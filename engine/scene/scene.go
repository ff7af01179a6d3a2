// Package scene builds the object transforms for each demo scene and animates them per frame.
package scene

import (
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-anaglyph/common"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/particle"
)

// Scene holds the world transforms of one generated scene.
// For ModeBlackHole, entry 0 is the central body and entries 1..N are particles.
// Not safe for concurrent use; the frame loop owns it.
type Scene interface {
	// Mode returns the mode the scene was generated for.
	Mode() Mode

	// Seed returns the seed the scene was generated with.
	Seed() uint64

	// Len returns the number of objects.
	Len() int

	// Transforms returns the current world transforms. The slice is owned by the scene
	// and is overwritten by Update.
	//
	// Returns:
	//   - []mgl32.Mat4: one model matrix per object
	Transforms() []mgl32.Mat4

	// Simulator returns the particle simulator, or nil outside ModeBlackHole.
	Simulator() particle.Simulator

	// Respawned returns the number of particles respawned by the last Update.
	Respawned() int

	// Update advances the scene by dt.
	// Random boxes spin about their own axes only while animateBoxes is set.
	// The black hole always animates.
	//
	// Parameters:
	//   - dt: frame time in seconds
	//   - t: elapsed scene time in seconds
	//   - animateBoxes: whether random boxes spin
	Update(dt, t float32, animateBoxes bool)

	// Close stops the worker pool if the scene created it.
	Close()
}

// box is the per-object animation state of ModeRandomBoxes.
type box struct {
	axis  mgl32.Vec3
	speed float32
}

type scene struct {
	mode Mode
	seed uint64

	transforms []mgl32.Mat4
	boxes      []box
	sim        particle.Simulator
	respawned  int

	particleParams particle.Params

	// computePool fans out per-object transform composition. Workers persist
	// across frames; a WaitGroup per Update provides the frame barrier.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
	ownsPool       bool
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// Generate builds a scene for the given mode. The result is a pure function of
// mode, seed and options; the prior scene is not consulted.
//
// Parameters:
//   - mode: the scene to build
//   - seed: seed of the deterministic generator
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the generated scene
func Generate(mode Mode, seed uint64, options ...SceneBuilderOption) Scene {
	s := &scene{
		mode:           mode,
		seed:           seed,
		particleParams: particle.DefaultParams(),
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(s)
	}

	if s.computePool == nil {
		s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)
		s.ownsPool = true
	}

	rng := particle.NewRand(seed)
	switch mode {
	case ModeRandomBoxes:
		s.generateBoxes(rng)
	case ModeBlackHole:
		s.particleParams.Count = BlackHoleCount - 1
		s.sim = particle.NewSimulator(particle.WithParams(s.particleParams), particle.WithRand(rng))
		s.transforms = make([]mgl32.Mat4, s.sim.Len()+1)
		s.composeBlackHole(0)
	default:
		s.mode = ModeSingleBox
		s.transforms = []mgl32.Mat4{mgl32.Scale3D(SingleBoxScale, SingleBoxScale, SingleBoxScale)}
	}
	return s
}

func (s *scene) Mode() Mode {
	return s.mode
}

func (s *scene) Seed() uint64 {
	return s.seed
}

func (s *scene) Len() int {
	return len(s.transforms)
}

func (s *scene) Transforms() []mgl32.Mat4 {
	return s.transforms
}

func (s *scene) Simulator() particle.Simulator {
	return s.sim
}

func (s *scene) Respawned() int {
	return s.respawned
}

func (s *scene) Update(dt, t float32, animateBoxes bool) {
	switch s.mode {
	case ModeRandomBoxes:
		if !animateBoxes || dt == 0 {
			return
		}
		s.parallel(len(s.boxes), func(i int) {
			b := s.boxes[i]
			s.transforms[i] = s.transforms[i].Mul4(mgl32.HomogRotate3D(b.speed*dt, b.axis))
		})
	case ModeBlackHole:
		// The generator is shared, so the simulation step stays serial.
		s.respawned = s.sim.Step(dt, t)
		s.composeBlackHole(t)
	}
}

func (s *scene) Close() {
	if s.ownsPool && s.computePool != nil {
		s.computePool.Stop()
		s.computePool = nil
	}
}

// generateBoxes places RandomBoxCount boxes inside a cube of side RandomBoxSpread
// with integer scale 1..RandomBoxMaxSize, a random orientation and a random spin.
func (s *scene) generateBoxes(rng *rand.Rand) {
	s.transforms = make([]mgl32.Mat4, RandomBoxCount)
	s.boxes = make([]box, RandomBoxCount)

	for i := range s.transforms {
		pos := mgl32.Vec3{
			RandomBoxSpread * (rng.Float32() - 0.5),
			RandomBoxSpread * (rng.Float32() - 0.5),
			RandomBoxSpread * (rng.Float32() - 0.5),
		}
		scale := float32(1 + rng.IntN(RandomBoxMaxSize))
		angle := rng.Float32() * 2 * math32.Pi
		axis := randomAxis(rng)

		s.boxes[i] = box{
			axis:  axis,
			speed: (0.2 + rng.Float32()) * 0.8,
		}
		s.transforms[i] = common.ComposeTRS(pos, angle, axis, mgl32.Vec3{scale, scale, scale})
	}
}

// composeBlackHole rebuilds the central body and particle transforms for time t.
func (s *scene) composeBlackHole(t float32) {
	s.transforms[0] = s.sim.CentralTransform(t)
	s.parallel(s.sim.Len(), func(i int) {
		s.transforms[i+1] = s.sim.Transform(i, t)
	})
}

// parallel runs fn for every index in [0, n) on the compute pool and waits for all of them.
// Each index is visited exactly once; fn must only touch state owned by its index.
func (s *scene) parallel(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	if s.computePool == nil {
		for i := range n {
			fn(i)
		}
		return
	}

	chunks := min(s.computePool.GetMaxWorkers(), n)
	size := (n + chunks - 1) / chunks

	// pool.Wait() waits for workers to idle-exit, which never happens at frame rate.
	var wg sync.WaitGroup
	for id, lo := 0, 0; lo < n; id, lo = id+1, lo+size {
		hi := min(lo+size, n)
		wg.Add(1)
		s.computePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for i := lo; i < hi; i++ {
					fn(i)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// randomAxis draws a normalized axis from the cube [-0.5, 0.5)³.
func randomAxis(rng *rand.Rand) mgl32.Vec3 {
	for {
		v := mgl32.Vec3{rng.Float32() - 0.5, rng.Float32() - 0.5, rng.Float32() - 0.5}
		if l := v.Len(); l > 1e-3 {
			return v.Mul(1 / l)
		}
	}
}
