package particle

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-anaglyph/common"
)

func TestNewSimulatorSpawnsWithinDistributions(t *testing.T) {
	s := NewSimulator(WithSeed(2024))
	p := s.Params()
	lo, hi := p.RespawnBand()

	require.Equal(t, 100, s.Len())
	for i := range s.Len() {
		st := s.Particle(i)
		assertSpawned(t, p, st, lo, hi)
		assert.Equal(t, PhaseOrbiting, st.Phase)
	}
}

func assertSpawned(t *testing.T, p Params, st State, lo, hi float32) {
	t.Helper()
	assert.GreaterOrEqual(t, st.Radius, lo)
	assert.LessOrEqual(t, st.Radius, hi)
	assert.GreaterOrEqual(t, st.Angle, float32(0))
	assert.Less(t, st.Angle, 2*math32.Pi)
	assert.InDelta(t, p.BaseAngularSpeed*math32.Sqrt(p.OuterRadius/st.Radius), math32.Abs(st.AngSpeed), 1e-5)
	assert.GreaterOrEqual(t, st.FallSpeed, p.FallSpeedMin)
	assert.LessOrEqual(t, st.FallSpeed, p.FallSpeedMax)
	assert.LessOrEqual(t, math32.Abs(st.Height), p.MaxHeight)
	assert.LessOrEqual(t, math32.Abs(st.YSpeed), p.VerticalSpeedMax)
	assert.GreaterOrEqual(t, st.SpinSpeed, p.SpinSpeedMin)
	assert.LessOrEqual(t, st.SpinSpeed, p.SpinSpeedMax)
	assert.InDelta(t, 1, st.SpinAxis.Len(), 1e-5)
}

func TestRespawnRedrawsFieldsAndKeepsIndex(t *testing.T) {
	s := NewSimulator(WithSeed(1))
	before := s.Particle(7)
	other := s.Particle(8)

	s.Respawn(7)

	after := s.Particle(7)
	assert.Equal(t, PhaseRespawned, after.Phase)
	assert.NotEqual(t, before.Radius, after.Radius)
	assert.Equal(t, other, s.Particle(8))
	assert.Equal(t, 100, s.Len())

	lo, hi := s.Params().RespawnBand()
	assertSpawned(t, s.Params(), after, lo, hi)
}

func TestRadiusNeverBelowHorizonAfterCaptureCheck(t *testing.T) {
	params := DefaultParams()
	params.EnergyRate = 5
	s := NewSimulator(WithSeed(99), WithParams(params))

	elapsed := float32(0)
	for frame := 0; frame < 2000; frame++ {
		dt := float32(0.05)
		elapsed += dt
		for i := range s.Len() {
			s.Integrate(i, dt, elapsed)
			s.ResolveCapture(i)
			require.GreaterOrEqual(t, s.Particle(i).Radius, params.InnerRadius, "frame %d particle %d", frame, i)
			s.InjectEnergy(i, dt)
		}
	}
}

func TestResolveCapturePhases(t *testing.T) {
	s := NewSimulator(WithSeed(3)).(*simulatorImpl)

	assert.Equal(t, PhaseOrbiting, s.ResolveCapture(0))
	assert.Equal(t, PhaseOrbiting, s.Particle(0).Phase)

	s.particles[0].Radius = s.params.InnerRadius - 0.01
	assert.Equal(t, PhaseRespawned, s.ResolveCapture(0))
	assert.Equal(t, PhaseRespawned, s.Particle(0).Phase)
	assert.GreaterOrEqual(t, s.Particle(0).Radius, s.params.InnerRadius)

	s.Integrate(0, 0, 0)
	assert.Equal(t, PhaseOrbiting, s.Particle(0).Phase)
}

func TestHeightReflectsAtBounds(t *testing.T) {
	s := NewSimulator(WithSeed(5)).(*simulatorImpl)
	bound := s.params.MaxHeight

	for _, dt := range []float32{0, 0.001, 0.016, 0.5, 3, 100} {
		for i := range s.particles {
			s.Integrate(i, dt, 1)
			h := s.Particle(i).Height
			assert.LessOrEqual(t, h, bound)
			assert.GreaterOrEqual(t, h, -bound)
			s.Respawn(i)
		}
	}

	s.particles[0].Height = bound - 0.1
	s.particles[0].YSpeed = 1
	s.Integrate(0, 1, 0)
	assert.Equal(t, bound, s.Particle(0).Height)
	assert.Equal(t, float32(-1), s.Particle(0).YSpeed)

	s.particles[0].Height = -bound + 0.1
	s.particles[0].YSpeed = -2
	s.Integrate(0, 1, 0)
	assert.Equal(t, -bound, s.Particle(0).Height)
	assert.Equal(t, float32(2), s.Particle(0).YSpeed)
}

func TestIntegrateFollowsOrbitalEquations(t *testing.T) {
	s := NewSimulator(WithSeed(5)).(*simulatorImpl)
	s.particles[2] = State{
		Angle:     1,
		Radius:    40,
		AngSpeed:  0.5,
		FallSpeed: 2,
		SpinAxis:  mgl32.Vec3{0, 1, 0},
	}

	dt, elapsed := float32(0.1), float32(3)
	s.Integrate(2, dt, elapsed)

	st := s.Particle(2)
	wantAngle := 1 + 0.5*dt*(1+2.0/40) + math32.Sin(elapsed*0.7+2)*0.2*dt
	assert.InDelta(t, wantAngle, st.Angle, 1e-6)
	assert.InDelta(t, 40-2*(1+40.0/40)*dt, st.Radius, 1e-5)

	// Inside radius 20 the falloff is floored.
	s.particles[2].Radius = 10
	s.particles[2].AngSpeed = 1
	s.particles[2].Angle = 0
	s.Integrate(2, dt, 0)
	st = s.Particle(2)
	assert.InDelta(t, 1*dt*(1+2.0/20)+math32.Sin(2)*0.2*dt, st.Angle, 1e-6)
	assert.InDelta(t, 10-2*(1+40.0/20)*dt, st.Radius, 1e-5)
}

func TestInjectEnergyIsRateScaled(t *testing.T) {
	s := NewSimulator(WithSeed(11)).(*simulatorImpl)

	assert.False(t, s.InjectEnergy(0, 0))

	r := s.particles[0].Radius
	s.params.EnergyRate = 1
	assert.True(t, s.InjectEnergy(0, 1.5))
	assert.InDelta(t, r/2, s.Particle(0).Radius, 1e-6)
}

func TestStepIsDeterministicForSeed(t *testing.T) {
	a := NewSimulator(WithSeed(42))
	b := NewSimulator(WithSeed(42))

	for frame := range 300 {
		ta := float32(frame) * 0.016
		assert.Equal(t, a.Step(0.016, ta), b.Step(0.016, ta))
	}
	for i := range a.Len() {
		assert.Equal(t, a.Particle(i), b.Particle(i))
	}
}

func TestTransformPositionAndScale(t *testing.T) {
	s := NewSimulator(WithSeed(5)).(*simulatorImpl)
	s.particles[0] = State{
		Angle:    math32.Pi / 2,
		Radius:   30,
		Height:   2,
		SpinAxis: mgl32.Vec3{0, 0, 1},
	}

	m := s.Transform(0, 0)
	pos := common.Translation(m)
	assert.InDelta(t, 0, pos[0], 1e-4)
	assert.InDelta(t, 2, pos[1], 1e-6)
	assert.InDelta(t, 30, pos[2], 1e-4)

	// radius/outer = 0.5 → base 1.75, proximity 0.5
	sx, sy, sz := mgl32.Extract3DScale(m)
	assert.InDelta(t, 1.75*1.75, sx, 1e-4)
	assert.InDelta(t, 1.75*0.75, sy, 1e-4)
	assert.InDelta(t, 1.75*1.75, sz, 1e-4)
}

func TestCentralTransformFixedScale(t *testing.T) {
	s := NewSimulator()
	for _, tm := range []float32{0, 1, 10} {
		m := s.CentralTransform(tm)
		assert.InDelta(t, 6, mgl32.ExtractMaxScale(m), 1e-4)
		assert.Equal(t, mgl32.Vec3{}, common.Translation(m))
	}
	assert.False(t, s.CentralTransform(0).ApproxEqualThreshold(s.CentralTransform(1), 1e-3))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "Orbiting", PhaseOrbiting.String())
	assert.Equal(t, "Respawned", PhaseRespawned.String())
}
