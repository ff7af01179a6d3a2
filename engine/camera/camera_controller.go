package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController owns the positional state of the camera: a look-at target and
// an orbit around it. Camera reads from the controller when building its parameters.
type CameraController interface {
	// Position returns the camera's world-space eye position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space eye position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// SetTarget sets the look-at/pivot point. The eye follows at the current orbit offset.
	//
	// Parameters:
	//   - target: world-space coordinates
	SetTarget(target mgl32.Vec3)

	// Orbit returns the current orbit.
	//
	// Returns:
	//   - Orbit: azimuth, polar angle and distance around the target
	Orbit() Orbit

	// SetOrbit replaces the current orbit. The polar angle is clamped to [MinPolar, MaxPolar].
	//
	// Parameters:
	//   - orbit: the new orbit
	SetOrbit(orbit Orbit)

	// Rotate offsets the orbit angles.
	//
	// Parameters:
	//   - dAzimuth: azimuth change in radians
	//   - dPolar: polar change in radians
	Rotate(dAzimuth, dPolar float32)

	// Reset restores the default orbit.
	Reset()
}
