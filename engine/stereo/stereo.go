// Package stereo computes left and right eye view-projection matrices for
// red/cyan anaglyph rendering using either toe-in or asymmetric-frustum stereo.
//
// All matrices use OpenGL clip conventions as produced by mgl32. Renderers
// targeting a [0, 1] depth range premultiply by common.ClipRemap.
package stereo

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-anaglyph/engine/camera"
)

// ErrDegenerateCamera is returned when the eye coincides with the look-at target,
// leaving the forward direction and the convergence distance undefined.
var ErrDegenerateCamera = errors.New("stereo: eye and look-at target coincide")

// degenerateEpsilon is the smallest eye-to-target distance treated as valid.
const degenerateEpsilon = 1e-6

// Eye holds the matrices computed for a single eye.
type Eye struct {
	Position       mgl32.Vec3
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	ViewProjection mgl32.Mat4
}

// EyePair holds the left and right eyes of a stereo frame.
type EyePair struct {
	Left  Eye
	Right Eye
}

func newEye(position mgl32.Vec3, view, projection mgl32.Mat4) Eye {
	return Eye{
		Position:       position,
		View:           view,
		Projection:     projection,
		ViewProjection: projection.Mul4(view),
	}
}

// Mono builds the single symmetric view-projection used when stereo is disabled.
//
// Parameters:
//   - p: the monocular camera
//
// Returns:
//   - Eye: the monoscopic eye
//   - error: ErrDegenerateCamera if the eye coincides with the target
func Mono(p camera.Params) (Eye, error) {
	if err := validate(p); err != nil {
		return Eye{}, err
	}
	return newEye(p.Eye, p.View(), p.Projection()), nil
}

// ToeIn builds a stereo pair by shifting the eye ±ipd/2 along world X and
// aiming both eyes at the shared look-at target with the same symmetric projection.
// The converging optical axes introduce vertical parallax away from the convergence plane.
//
// Parameters:
//   - p: the monocular camera
//   - ipd: interocular distance
//
// Returns:
//   - EyePair: the left and right eyes
//   - error: ErrDegenerateCamera if the eye coincides with the target
func ToeIn(p camera.Params, ipd float32) (EyePair, error) {
	if err := validate(p); err != nil {
		return EyePair{}, err
	}

	proj := p.Projection()
	offset := mgl32.Vec3{ipd / 2, 0, 0}
	left := p.Eye.Sub(offset)
	right := p.Eye.Add(offset)

	return EyePair{
		Left:  newEye(left, mgl32.LookAtV(left, p.Target, p.Up), proj),
		Right: newEye(right, mgl32.LookAtV(right, p.Target, p.Up), proj),
	}, nil
}

// Asymmetric builds a stereo pair with parallel optical axes. Each eye is offset
// ±ipd/2 along the camera right vector and looks along the shared forward direction.
// Both frusta are sheared horizontally so they converge at the eye-to-target distance.
//
// Parameters:
//   - p: the monocular camera
//   - ipd: interocular distance
//
// Returns:
//   - EyePair: the left and right eyes
//   - error: ErrDegenerateCamera if the eye coincides with the target
func Asymmetric(p camera.Params, ipd float32) (EyePair, error) {
	if err := validate(p); err != nil {
		return EyePair{}, err
	}

	toTarget := p.Target.Sub(p.Eye)
	distance := toTarget.Len()
	forward := toTarget.Mul(1 / distance)
	right := forward.Cross(p.Up).Normalize()
	half := ipd / 2

	top := p.Near * math32.Tan(mgl32.DegToRad(p.FovY)/2)
	bottom := -top
	shift := half * p.Near / distance
	width := p.Aspect * top

	left := p.Eye.Sub(right.Mul(half))
	rightEye := p.Eye.Add(right.Mul(half))

	leftProj := mgl32.Frustum(-width+shift, width+shift, bottom, top, p.Near, p.Far)
	rightProj := mgl32.Frustum(-width-shift, width-shift, bottom, top, p.Near, p.Far)

	return EyePair{
		Left:  newEye(left, mgl32.LookAtV(left, left.Add(forward), p.Up), leftProj),
		Right: newEye(rightEye, mgl32.LookAtV(rightEye, rightEye.Add(forward), p.Up), rightProj),
	}, nil
}

// Project dispatches to the algorithm selected by cfg.Mode.
// For ModeNone both eyes carry the monoscopic matrices.
//
// Parameters:
//   - p: the monocular camera
//   - cfg: stereo configuration
//
// Returns:
//   - EyePair: the left and right eyes
//   - error: ErrDegenerateCamera if the eye coincides with the target
func Project(p camera.Params, cfg Config) (EyePair, error) {
	switch cfg.Mode {
	case ModeToeIn:
		return ToeIn(p, cfg.IPD)
	case ModeAsymmetric:
		return Asymmetric(p, cfg.IPD)
	default:
		mono, err := Mono(p)
		if err != nil {
			return EyePair{}, err
		}
		return EyePair{Left: mono, Right: mono}, nil
	}
}

func validate(p camera.Params) error {
	if p.Target.Sub(p.Eye).Len() < degenerateEpsilon {
		return ErrDegenerateCamera
	}
	return nil
}

// HorizontalShift returns the horizontal frustum offset encoded in an off-axis projection
// at the near plane, (left + right) / 2. It is zero for symmetric projections.
//
// Parameters:
//   - proj: a projection built by mgl32.Frustum or mgl32.Perspective
//   - near: the near plane distance the projection was built with
//
// Returns:
//   - float32: the frustum center offset along the near plane
func HorizontalShift(proj mgl32.Mat4, near float32) float32 {
	// Frustum stores (r+l)/(r-l) at [8] and 2n/(r-l) at [0].
	return proj[8] / proj[0] * near
}
