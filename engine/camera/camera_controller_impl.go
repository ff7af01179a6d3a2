package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// cameraControllerImpl is the single implementation of CameraController.
// The eye position is cached and recomputed whenever the orbit or target changes.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3
	orbit    Orbit
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new orbit controller around the origin
// positioned at the default orbit (eye at (0, 0, 100)).
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:    &sync.Mutex{},
		orbit: DefaultOrbit(),
	}

	for _, option := range options {
		option(cc)
	}

	cc.orbit = cc.orbit.Rotate(0, 0)
	cc.updatePosition()
	return cc
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(target mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Orbit() Orbit {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.orbit
}

func (cc *cameraControllerImpl) SetOrbit(orbit Orbit) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.orbit = orbit.Rotate(0, 0)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Rotate(dAzimuth, dPolar float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.orbit = cc.orbit.Rotate(dAzimuth, dPolar)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.orbit = DefaultOrbit()
	cc.updatePosition()
}

// --- internal helpers ---

// updatePosition recomputes the eye position from the orbit and target.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cc.position = cc.orbit.Eye(cc.target)
}
