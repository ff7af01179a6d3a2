package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Params is a snapshot of the monocular camera used by the stereo projector.
// FovY is the vertical field of view in degrees.
type Params struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	FovY   float32
	Aspect float32
	Near   float32
	Far    float32
}

// Projection returns the symmetric perspective projection for these parameters (OpenGL clip conventions).
func (p Params) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(p.FovY), p.Aspect, p.Near, p.Far)
}

// View returns the look-at view matrix for these parameters.
func (p Params) View() mgl32.Mat4 {
	return mgl32.LookAtV(p.Eye, p.Target, p.Up)
}

type cameraImpl struct {
	mu *sync.Mutex

	up mgl32.Vec3

	fovY   float32
	aspect float32
	near   float32
	far    float32

	controller CameraController
}

// Camera defines the interface for the camera system.
// The camera holds perspective settings and reads the eye and target from an
// attached CameraController whenever a Params snapshot is taken.
type Camera interface {
	// Params returns a snapshot of the current camera parameters.
	// If no controller is attached the eye sits at the default orbit around the origin.
	//
	// Returns:
	//   - Params: the camera parameters
	Params() Params

	// ViewProjectionMatrix returns the monoscopic projection * view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// FovY returns the vertical field of view in degrees.
	//
	// Returns:
	//   - float32: field of view in degrees
	FovY() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// SetAspect sets the aspect ratio (width / height).
	// Non-positive values are ignored, which happens while the window is minimized.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetFovY sets the vertical field of view in degrees.
	//
	// Parameters:
	//   - fovY: field of view in degrees
	SetFovY(fovY float32)

	// SetClip sets the near and far clipping plane distances.
	//
	// Parameters:
	//   - near: near plane distance
	//   - far: far plane distance
	SetClip(near, far float32)

	// Controller returns the attached CameraController.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with the demo's default perspective settings:
// 45° vertical field of view, 4:3 aspect, near 0.1 and far 1000.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     mgl32.Vec3{0, 1, 0},
		fovY:   45,
		aspect: 1024.0 / 768.0,
		near:   0.1,
		far:    1000,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Params() Params {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := Params{
		Up:     c.up,
		FovY:   c.fovY,
		Aspect: c.aspect,
		Near:   c.near,
		Far:    c.far,
	}
	if c.controller != nil {
		p.Eye = c.controller.Position()
		p.Target = c.controller.Target()
	} else {
		p.Eye = DefaultOrbit().Offset()
	}
	return p
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	p := c.Params()
	return p.Projection().Mul4(p.View())
}

func (c *cameraImpl) FovY() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fovY
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
}

func (c *cameraImpl) SetFovY(fovY float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fovY = fovY
}

func (c *cameraImpl) SetClip(near, far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.far = far
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}
