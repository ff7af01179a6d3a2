package stereo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-anaglyph/engine/camera"
)

const tolerance = 1e-4

// viewForward reads the world-space forward direction out of a LookAtV view matrix.
func viewForward(view mgl32.Mat4) mgl32.Vec3 {
	return mgl32.Vec3{-view[2], -view[6], -view[10]}.Normalize()
}

func demoCamera() camera.Params {
	return camera.Params{
		Eye:    mgl32.Vec3{0, 0, 100},
		Target: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   45,
		Aspect: 1024.0 / 768.0,
		Near:   0.1,
		Far:    1000,
	}
}

func obliqueCamera() camera.Params {
	p := demoCamera()
	p.Eye = mgl32.Vec3{30, 25, 60}
	p.Target = mgl32.Vec3{2, -3, 1}
	return p
}

func TestZeroIPDDegeneratesToMono(t *testing.T) {
	for _, p := range []camera.Params{demoCamera(), obliqueCamera()} {
		mono, err := Mono(p)
		require.NoError(t, err)

		for _, mode := range []Mode{ModeToeIn, ModeAsymmetric} {
			pair, err := Project(p, Config{IPD: 0, Mode: mode})
			require.NoError(t, err)

			assert.True(t, pair.Left.ViewProjection.ApproxEqualThreshold(pair.Right.ViewProjection, tolerance), mode.String())
			assert.True(t, pair.Left.ViewProjection.ApproxEqualThreshold(mono.ViewProjection, tolerance), mode.String())
		}
	}
}

func TestToeInEyesSymmetricAlongWorldX(t *testing.T) {
	p := obliqueCamera()
	for _, ipd := range []float32{0.5, 2, 7.5} {
		pair, err := ToeIn(p, ipd)
		require.NoError(t, err)

		mid := pair.Left.Position.Add(pair.Right.Position).Mul(0.5)
		assert.True(t, mid.ApproxEqualThreshold(p.Eye, tolerance))

		diff := pair.Right.Position.Sub(pair.Left.Position)
		assert.True(t, diff.ApproxEqualThreshold(mgl32.Vec3{ipd, 0, 0}, tolerance))
	}
}

func TestToeInBothEyesTargetLookAt(t *testing.T) {
	p := obliqueCamera()
	pair, err := ToeIn(p, 3)
	require.NoError(t, err)

	for _, eye := range []Eye{pair.Left, pair.Right} {
		// The target lies on the optical axis: view space (0, 0, -d).
		v := mgl32.TransformCoordinate(p.Target, eye.View)
		assert.InDelta(t, 0, v[0], tolerance)
		assert.InDelta(t, 0, v[1], tolerance)
		assert.InDelta(t, -p.Target.Sub(eye.Position).Len(), v[2], 1e-3)
	}
	assert.True(t, pair.Left.Projection.ApproxEqualThreshold(pair.Right.Projection, tolerance))
}

func TestAsymmetricForwardDirectionsParallel(t *testing.T) {
	p := obliqueCamera()
	mono, err := Mono(p)
	require.NoError(t, err)
	want := viewForward(mono.View)

	for _, ipd := range []float32{0.5, 2, 10} {
		pair, err := Asymmetric(p, ipd)
		require.NoError(t, err)

		assert.True(t, viewForward(pair.Left.View).ApproxEqualThreshold(want, tolerance))
		assert.True(t, viewForward(pair.Right.View).ApproxEqualThreshold(want, tolerance))
	}
}

func TestAsymmetricFrustumShiftOpposite(t *testing.T) {
	p := demoCamera()
	ipd := float32(2)
	pair, err := Asymmetric(p, ipd)
	require.NoError(t, err)

	left := HorizontalShift(pair.Left.Projection, p.Near)
	right := HorizontalShift(pair.Right.Projection, p.Near)

	want := ipd / 2 * p.Near / 100
	assert.InDelta(t, want, left, 1e-6)
	assert.InDelta(t, -want, right, 1e-6)
	assert.InDelta(t, 0, left+right, 1e-7)
}

func TestAsymmetricEyesOffsetAlongCameraRight(t *testing.T) {
	p := obliqueCamera()
	pair, err := Asymmetric(p, 4)
	require.NoError(t, err)

	right := p.Target.Sub(p.Eye).Normalize().Cross(p.Up).Normalize()
	assert.True(t, pair.Right.Position.Sub(pair.Left.Position).ApproxEqualThreshold(right.Mul(4), tolerance))
}

func TestAsymmetricConvergesAtTargetDistance(t *testing.T) {
	p := demoCamera()
	pair, err := Asymmetric(p, 2)
	require.NoError(t, err)

	// The look-at point projects to the same clip-space x for both eyes.
	l := pair.Left.ViewProjection.Mul4x1(p.Target.Vec4(1))
	r := pair.Right.ViewProjection.Mul4x1(p.Target.Vec4(1))
	assert.InDelta(t, 0, l[0]/l[3], 1e-5)
	assert.InDelta(t, 0, r[0]/r[3], 1e-5)
}

func TestEndToEndToeInEyePositions(t *testing.T) {
	pair, err := Project(demoCamera(), Config{IPD: 2, Mode: ModeToeIn})
	require.NoError(t, err)

	assert.True(t, pair.Left.Position.ApproxEqualThreshold(mgl32.Vec3{-1, 0, 100}, 1e-6))
	assert.True(t, pair.Right.Position.ApproxEqualThreshold(mgl32.Vec3{1, 0, 100}, 1e-6))
}

func TestDegenerateCameraFailsFast(t *testing.T) {
	p := demoCamera()
	p.Target = p.Eye

	_, err := Mono(p)
	assert.ErrorIs(t, err, ErrDegenerateCamera)

	for _, mode := range []Mode{ModeNone, ModeToeIn, ModeAsymmetric} {
		_, err := Project(p, Config{IPD: 2, Mode: mode})
		assert.ErrorIs(t, err, ErrDegenerateCamera, mode.String())
	}
}

func TestProjectNoneReturnsMonoForBothEyes(t *testing.T) {
	pair, err := Project(demoCamera(), Config{IPD: 5, Mode: ModeNone})
	require.NoError(t, err)
	assert.Equal(t, pair.Left, pair.Right)
	assert.Equal(t, mgl32.Vec3{0, 0, 100}, pair.Left.Position)
}
