package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ClipRemap converts OpenGL clip space depth [-w, w] to the WebGPU convention [0, w].
// Premultiply any projection built with mgl32.Perspective or mgl32.Frustum before upload.
// The matrix is stored in column-major order.
var ClipRemap = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// DiagonalAxis is the normalized (1, 1, 1) axis used for the orbital and central-body spins.
var DiagonalAxis = mgl32.Vec3{1, 1, 1}.Normalize()

// RotateAxis creates a rotation of angle radians about an arbitrary axis.
// The axis does not need to be normalized. A zero-length axis yields the identity.
//
// Parameters:
//   - angle: rotation angle in radians
//   - axis: rotation axis
//
// Returns:
//   - mgl32.Mat4: the rotation matrix
func RotateAxis(angle float32, axis mgl32.Vec3) mgl32.Mat4 {
	l := axis.Len()
	if l < 1e-8 {
		return mgl32.Ident4()
	}
	return mgl32.HomogRotate3D(angle, axis.Mul(1/l))
}

// ComposeTRS builds a model matrix as translate * rotate * scale.
// This is the order every scene object in the demo is composed in.
//
// Parameters:
//   - position: translation in world space
//   - angle: rotation angle in radians
//   - axis: rotation axis (normalized internally)
//   - scale: per-axis scale factors
//
// Returns:
//   - mgl32.Mat4: the composed model matrix
func ComposeTRS(position mgl32.Vec3, angle float32, axis mgl32.Vec3, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(position[0], position[1], position[2]).
		Mul4(RotateAxis(angle, axis)).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// Clamp01 clamps v to the [0, 1] range.
func Clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}

// Translation extracts the translation column of an affine matrix.
func Translation(m mgl32.Mat4) mgl32.Vec3 {
	return mgl32.Vec3{m[12], m[13], m[14]}
}

// MaxScale returns the largest axis scale of an affine matrix.
// Used to derive conservative bounding spheres for culling.
func MaxScale(m mgl32.Mat4) float32 {
	return mgl32.ExtractMaxScale(m)
}
