package engine

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-anaglyph/common"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/camera"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/model"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/profiler"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/renderer"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/stereo"
)

// PassRenderer is the part of the renderer the frame loop drives within a frame.
// Every pass clears depth; color is cleared only when clearColor is non-nil.
type PassRenderer interface {
	BeginPass(mask renderer.ColorMask, clearColor *mgl32.Vec4) error
	Render(viewProjection, world mgl32.Mat4)
	EndPass() error
}

// FrameRenderer is the full renderer surface used by the Engine.
type FrameRenderer interface {
	PassRenderer
	BeginFrame() error
	EndFrame() error
	Present()
	Resize(width, height int) error
}

var _ FrameRenderer = renderer.Renderer(nil)

// FrameOptions control how RenderFrame draws the scene.
type FrameOptions struct {
	// ClearColor is the RGBA color the first pass clears to.
	ClearColor mgl32.Vec4

	// Cull skips objects whose bounding sphere lies outside the pass frustum.
	Cull bool
}

// boxCornerDistance is the distance from the box center to a corner in model space.
var boxCornerDistance = model.BoxHalfExtent * math32.Sqrt(3)

// RenderFrame draws one frame of the scene.
//
// With stereo disabled it issues a single full-mask pass with the mono view-projection.
// Otherwise the left eye is drawn into the red channel after clearing color and depth,
// then the right eye into green and blue after clearing depth only, so the two images
// share one color buffer.
//
// If the camera is degenerate no objects are drawn; one full-mask pass still clears the
// target and the error is returned for the caller to report.
//
// Parameters:
//   - r: the renderer, with a frame already begun
//   - params: the monocular camera
//   - cfg: the stereo configuration
//   - transforms: one world matrix per object
//   - opts: clear color and culling
//
// Returns:
//   - profiler.FrameStats: passes issued and objects drawn or culled
//   - error: stereo.ErrDegenerateCamera, or a renderer failure
func RenderFrame(r PassRenderer, params camera.Params, cfg stereo.Config, transforms []mgl32.Mat4, opts FrameOptions) (profiler.FrameStats, error) {
	var stats profiler.FrameStats
	clearColor := opts.ClearColor

	if !cfg.Enabled() {
		mono, err := stereo.Mono(params)
		if err != nil {
			return emptyPass(r, &clearColor, err)
		}
		return stats, drawPass(r, renderer.ColorMaskAll, &clearColor, mono.ViewProjection, transforms, opts.Cull, &stats)
	}

	eyes, err := stereo.Project(params, cfg)
	if err != nil {
		return emptyPass(r, &clearColor, err)
	}
	if err := drawPass(r, renderer.ColorMaskRed, &clearColor, eyes.Left.ViewProjection, transforms, opts.Cull, &stats); err != nil {
		return stats, err
	}
	return stats, drawPass(r, renderer.ColorMaskCyan, nil, eyes.Right.ViewProjection, transforms, opts.Cull, &stats)
}

func drawPass(r PassRenderer, mask renderer.ColorMask, clearColor *mgl32.Vec4, viewProjection mgl32.Mat4, transforms []mgl32.Mat4, cull bool, stats *profiler.FrameStats) error {
	if err := r.BeginPass(mask, clearColor); err != nil {
		return fmt.Errorf("begin %s pass: %w", mask, err)
	}
	stats.Passes++

	var frustum common.Frustum
	if cull {
		frustum = common.ExtractFrustumFromMatrix(viewProjection)
	}
	for _, world := range transforms {
		if cull {
			center, radius := BoundingSphere(world)
			if !frustum.IntersectsSphere(center, radius) {
				stats.Culled++
				continue
			}
		}
		r.Render(viewProjection, world)
		stats.Drawn++
	}

	if err := r.EndPass(); err != nil {
		return fmt.Errorf("end %s pass: %w", mask, err)
	}
	return nil
}

func emptyPass(r PassRenderer, clearColor *mgl32.Vec4, cause error) (profiler.FrameStats, error) {
	stats := profiler.FrameStats{}
	if err := r.BeginPass(renderer.ColorMaskAll, clearColor); err != nil {
		return stats, fmt.Errorf("%w (clear pass: %v)", cause, err)
	}
	stats.Passes++
	if err := r.EndPass(); err != nil {
		return stats, fmt.Errorf("%w (clear pass: %v)", cause, err)
	}
	return stats, cause
}

// BoundingSphere returns a world-space sphere enclosing the unit box under the given transform.
// The radius uses the largest axis scale, so it stays conservative under non-uniform scale.
//
// Parameters:
//   - world: the box's model-to-world transform
//
// Returns:
//   - mgl32.Vec3: the sphere center (the transform's translation)
//   - float32: the sphere radius
func BoundingSphere(world mgl32.Mat4) (mgl32.Vec3, float32) {
	return common.Translation(world), common.MaxScale(world) * boxCornerDistance
}
