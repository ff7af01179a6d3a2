package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithOrbit sets the initial orbit.
//
// Parameters:
//   - orbit: azimuth, polar angle and distance around the target
//
// Returns:
//   - CameraControllerOption: functional option to set the orbit
func WithOrbit(orbit Orbit) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.orbit = orbit
	}
}

// WithDistance sets the initial orbit distance from the target.
//
// Parameters:
//   - distance: distance from the orbit target
//
// Returns:
//   - CameraControllerOption: functional option to set the distance
func WithDistance(distance float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.orbit.Distance = distance
	}
}

// WithTarget sets the look-at/pivot point.
//
// Parameters:
//   - target: world-space target position
//
// Returns:
//   - CameraControllerOption: functional option to set the target position
func WithTarget(target mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = target
	}
}
