package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Default orbit values. At these values the eye sits at (0, 0, 100) looking at the origin.
const (
	DefaultAzimuth  = math32.Pi / 2
	DefaultPolar    = math32.Pi / 2
	DefaultDistance = 100

	// MinPolar and MaxPolar keep the eye off the up axis, where a look-at basis is undefined.
	MinPolar = 0.05
	MaxPolar = math32.Pi - 0.05
)

// Orbit describes an eye position on a sphere around a target.
// Azimuth is measured in the XZ plane from +X toward +Z, Polar from +Y.
type Orbit struct {
	Azimuth  float32
	Polar    float32
	Distance float32
}

// DefaultOrbit returns the reset orbit.
func DefaultOrbit() Orbit {
	return Orbit{
		Azimuth:  DefaultAzimuth,
		Polar:    DefaultPolar,
		Distance: DefaultDistance,
	}
}

// Rotate returns the orbit with its angles offset by the given deltas.
// The polar angle is clamped to [MinPolar, MaxPolar].
//
// Parameters:
//   - dAzimuth: azimuth change in radians
//   - dPolar: polar change in radians
//
// Returns:
//   - Orbit: the rotated orbit
func (o Orbit) Rotate(dAzimuth, dPolar float32) Orbit {
	o.Azimuth += dAzimuth
	o.Polar = mgl32.Clamp(o.Polar+dPolar, MinPolar, MaxPolar)
	return o
}

// Offset returns the eye offset from the target in world space:
// (d·sinθ·cosφ, d·cosθ, d·sinθ·sinφ) with θ the polar angle and φ the azimuth.
//
// Returns:
//   - mgl32.Vec3: the offset vector
func (o Orbit) Offset() mgl32.Vec3 {
	sinP, cosP := math32.Sincos(o.Polar)
	sinA, cosA := math32.Sincos(o.Azimuth)
	return mgl32.Vec3{
		o.Distance * sinP * cosA,
		o.Distance * cosP,
		o.Distance * sinP * sinA,
	}
}

// Eye returns the eye position for a given target.
func (o Orbit) Eye(target mgl32.Vec3) mgl32.Vec3 {
	return target.Add(o.Offset())
}
