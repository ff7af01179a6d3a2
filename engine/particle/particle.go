// Package particle advances the black hole swarm: particles orbit a central body,
// drift inward, bounce vertically and are respawned once they cross the event horizon.
package particle

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-anaglyph/common"
)

// Phase is the per-frame state of a particle.
type Phase int

const (
	// PhaseOrbiting means the particle survived the last capture check.
	PhaseOrbiting Phase = iota
	// PhaseRespawned means the particle was redrawn from the spawn distributions this frame.
	PhaseRespawned
)

func (p Phase) String() string {
	if p == PhaseRespawned {
		return "Respawned"
	}
	return "Orbiting"
}

// State is the orbital state of a single particle.
type State struct {
	Angle     float32 // orbital angle (rad)
	Radius    float32 // orbital radius
	AngSpeed  float32 // signed angular speed (rad/s)
	FallSpeed float32 // inward radial speed (units/s, ≥ 0)
	Height    float32
	YSpeed    float32 // signed vertical speed
	SpinSpeed float32 // self spin (rad/s)
	SpinAxis  mgl32.Vec3
	Phase     Phase
}

// Simulator owns the particle states of one black hole scene.
type Simulator interface {
	// Len returns the number of particles.
	Len() int

	// Params returns the swarm configuration.
	Params() Params

	// Particle returns a copy of the state of particle i.
	//
	// Parameters:
	//   - i: particle index
	//
	// Returns:
	//   - State: the particle state
	Particle(i int) State

	// Respawn redraws every field of particle i from the spawn distributions
	// and marks it PhaseRespawned. The index keeps its identity.
	//
	// Parameters:
	//   - i: particle index
	Respawn(i int)

	// Integrate advances angle, radius and height of particle i by dt.
	// Height is reflected at ±MaxHeight.
	//
	// Parameters:
	//   - i: particle index
	//   - dt: frame time in seconds
	//   - t: elapsed scene time in seconds, drives the per-particle wobble
	Integrate(i int, dt, t float32)

	// ResolveCapture respawns particle i if it crossed the event horizon.
	//
	// Parameters:
	//   - i: particle index
	//
	// Returns:
	//   - Phase: PhaseRespawned if a respawn happened, PhaseOrbiting otherwise
	ResolveCapture(i int) Phase

	// InjectEnergy halves the radius of particle i with probability EnergyRate·dt.
	// This is a rate-as-probability approximation and is frame-rate dependent.
	//
	// Parameters:
	//   - i: particle index
	//   - dt: frame time in seconds
	//
	// Returns:
	//   - bool: true if the radius was halved
	InjectEnergy(i int, dt float32) bool

	// Step runs Integrate, ResolveCapture and InjectEnergy for every particle in index order.
	//
	// Parameters:
	//   - dt: frame time in seconds
	//   - t: elapsed scene time in seconds
	//
	// Returns:
	//   - int: the number of particles respawned this frame
	Step(dt, t float32) int

	// Transform composes the model matrix of particle i. Safe for concurrent use
	// across distinct indices as long as no Step is running.
	//
	// Parameters:
	//   - i: particle index
	//   - t: elapsed scene time in seconds
	//
	// Returns:
	//   - mgl32.Mat4: translate * orbital spin * self spin * scale
	Transform(i int, t float32) mgl32.Mat4

	// CentralTransform composes the model matrix of the central body.
	//
	// Parameters:
	//   - t: elapsed scene time in seconds
	//
	// Returns:
	//   - mgl32.Mat4: slow (1, 1, 1) rotation with fixed scale
	CentralTransform(t float32) mgl32.Mat4
}

type simulatorImpl struct {
	params    Params
	rng       *rand.Rand
	particles []State
}

var _ Simulator = &simulatorImpl{}

// NewSimulator creates a swarm with every particle drawn from the spawn distributions.
// Without options it uses DefaultParams and a generator seeded with 0.
//
// Parameters:
//   - options: functional options to configure the simulator
//
// Returns:
//   - Simulator: the new simulator
func NewSimulator(options ...SimulatorBuilderOption) Simulator {
	s := &simulatorImpl{
		params: DefaultParams(),
	}
	for _, option := range options {
		option(s)
	}
	if s.rng == nil {
		s.rng = NewRand(0)
	}

	s.particles = make([]State, s.params.Count)
	for i := range s.particles {
		s.Respawn(i)
		s.particles[i].Phase = PhaseOrbiting
	}
	return s
}

// NewRand returns the deterministic generator used for scene generation.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (s *simulatorImpl) Len() int {
	return len(s.particles)
}

func (s *simulatorImpl) Params() Params {
	return s.params
}

func (s *simulatorImpl) Particle(i int) State {
	return s.particles[i]
}

func (s *simulatorImpl) Respawn(i int) {
	p := s.params
	lo, hi := p.RespawnBand()

	radius := s.uniform(lo, hi)
	angSpeed := p.BaseAngularSpeed * math32.Sqrt(p.OuterRadius/radius)
	if s.rng.IntN(2) == 0 {
		angSpeed = -angSpeed
	}

	s.particles[i] = State{
		Angle:     s.uniform(0, 2*math32.Pi),
		Radius:    radius,
		AngSpeed:  angSpeed,
		FallSpeed: s.uniform(p.FallSpeedMin, p.FallSpeedMax),
		Height:    s.uniform(-p.MaxHeight, p.MaxHeight),
		YSpeed:    s.uniform(-p.VerticalSpeedMax, p.VerticalSpeedMax),
		SpinSpeed: s.uniform(p.SpinSpeedMin, p.SpinSpeedMax),
		SpinAxis:  s.randomAxis(),
		Phase:     PhaseRespawned,
	}
}

func (s *simulatorImpl) Integrate(i int, dt, t float32) {
	p := &s.particles[i]
	p.Phase = PhaseOrbiting

	falloff := math32.Max(p.Radius, 20)
	p.Angle += p.AngSpeed * dt * (1 + 2/falloff)
	p.Angle += math32.Sin(t*0.7+float32(i)) * 0.2 * dt
	p.Radius -= p.FallSpeed * (1 + 40/falloff) * dt

	p.Height += p.YSpeed * dt
	bound := s.params.MaxHeight
	if p.Height > bound {
		p.Height = bound
		p.YSpeed = -math32.Abs(p.YSpeed)
	} else if p.Height < -bound {
		p.Height = -bound
		p.YSpeed = math32.Abs(p.YSpeed)
	}
}

func (s *simulatorImpl) ResolveCapture(i int) Phase {
	if s.particles[i].Radius < s.params.InnerRadius {
		s.Respawn(i)
		return PhaseRespawned
	}
	s.particles[i].Phase = PhaseOrbiting
	return PhaseOrbiting
}

func (s *simulatorImpl) InjectEnergy(i int, dt float32) bool {
	if s.rng.Float32() < s.params.EnergyRate*dt {
		s.particles[i].Radius *= 0.5
		return true
	}
	return false
}

func (s *simulatorImpl) Step(dt, t float32) int {
	respawned := 0
	for i := range s.particles {
		s.Integrate(i, dt, t)
		if s.ResolveCapture(i) == PhaseRespawned {
			respawned++
		}
		s.InjectEnergy(i, dt)
	}
	return respawned
}

func (s *simulatorImpl) Transform(i int, t float32) mgl32.Mat4 {
	p := s.particles[i]
	outer := s.params.OuterRadius

	sinA, cosA := math32.Sincos(p.Angle)
	pos := mgl32.Vec3{cosA * p.Radius, p.Height, sinA * p.Radius}

	norm := p.Radius / outer
	proximity := common.Clamp01(1 - norm)
	base := 0.5 + 2.5*norm
	scaleXZ := base * (1 + 1.5*proximity)
	scaleY := base * (1 - 0.5*proximity)

	return mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(mgl32.HomogRotate3D(p.Angle, common.DiagonalAxis)).
		Mul4(common.RotateAxis(t*p.SpinSpeed, p.SpinAxis)).
		Mul4(mgl32.Scale3D(scaleXZ, scaleY, scaleXZ))
}

func (s *simulatorImpl) CentralTransform(t float32) mgl32.Mat4 {
	scale := s.params.CentralScale
	return mgl32.HomogRotate3D(t*s.params.CentralSpinRate, common.DiagonalAxis).
		Mul4(mgl32.Scale3D(scale, scale, scale))
}

// uniform draws from [lo, hi).
func (s *simulatorImpl) uniform(lo, hi float32) float32 {
	return lo + s.rng.Float32()*(hi-lo)
}

// randomAxis draws a unit vector from the normalized cube [-0.5, 0.5)³.
func (s *simulatorImpl) randomAxis() mgl32.Vec3 {
	for {
		v := mgl32.Vec3{s.rng.Float32() - 0.5, s.rng.Float32() - 0.5, s.rng.Float32() - 0.5}
		if l := v.Len(); l > 1e-3 {
			return v.Mul(1 / l)
		}
	}
}
