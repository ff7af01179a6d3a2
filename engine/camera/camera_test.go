package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertVec3InDelta compares component-wise with an absolute tolerance, since
// cos(π/2) in float32 leaves a few millionths where zero is expected.
func assertVec3InDelta(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

func TestDefaultOrbitEye(t *testing.T) {
	eye := DefaultOrbit().Eye(mgl32.Vec3{})
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 100}, eye, 1e-3)
}

func TestOrbitRotateClampsPolar(t *testing.T) {
	o := DefaultOrbit().Rotate(0, -10)
	assert.Equal(t, float32(MinPolar), o.Polar)

	o = DefaultOrbit().Rotate(0, 10)
	assert.Equal(t, float32(MaxPolar), o.Polar)
}

func TestOrbitOffsetKeepsDistance(t *testing.T) {
	for _, o := range []Orbit{
		{Azimuth: 0.3, Polar: 1.1, Distance: 42},
		{Azimuth: -2, Polar: 0.2, Distance: 7},
		DefaultOrbit(),
	} {
		assert.InDelta(t, o.Distance, o.Offset().Len(), 1e-3)
	}
}

func TestControllerRotateAndReset(t *testing.T) {
	cc := NewCameraController(WithTarget(mgl32.Vec3{1, 2, 3}))
	assertVec3InDelta(t, mgl32.Vec3{1, 2, 103}, cc.Position(), 1e-3)
	require.InDelta(t, 100, cc.Position().Sub(cc.Target()).Len(), 1e-3)

	cc.Rotate(0.1, -0.1)
	o := cc.Orbit()
	assert.InDelta(t, DefaultAzimuth+0.1, o.Azimuth, 1e-6)
	assert.InDelta(t, DefaultPolar-0.1, o.Polar, 1e-6)
	assert.InDelta(t, 100, cc.Position().Sub(cc.Target()).Len(), 1e-3)

	cc.Reset()
	assert.Equal(t, DefaultOrbit(), cc.Orbit())
	assertVec3InDelta(t, mgl32.Vec3{1, 2, 103}, cc.Position(), 1e-3)
}

func TestCameraParamsFromController(t *testing.T) {
	cam := NewCamera(
		WithAspect(2),
		WithController(NewCameraController(WithDistance(50))),
	)

	p := cam.Params()
	assert.Equal(t, float32(45), p.FovY)
	assert.Equal(t, float32(2), p.Aspect)
	assert.Equal(t, float32(0.1), p.Near)
	assert.Equal(t, float32(1000), p.Far)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 50}, p.Eye, 1e-3)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, p.Up)
}

func TestCameraIgnoresDegenerateAspect(t *testing.T) {
	cam := NewCamera()
	cam.SetAspect(0)
	assert.InDelta(t, 1024.0/768.0, cam.Aspect(), 1e-6)
	cam.SetAspect(1.5)
	assert.Equal(t, float32(1.5), cam.Aspect())
}

func TestViewProjectionMatchesParams(t *testing.T) {
	cam := NewCamera(WithController(NewCameraController()))
	p := cam.Params()
	want := mgl32.Perspective(mgl32.DegToRad(45), p.Aspect, 0.1, 1000).
		Mul4(mgl32.LookAtV(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))
	got := cam.ViewProjectionMatrix()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "element %d", i)
	}
}
