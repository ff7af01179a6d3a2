package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
// When not specified, the default is PresentModeVSync.
//
// Parameters:
//   - mode: the PresentMode to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the renderer.
// When not specified, the default is MSAA4x. Use MSAAOff to disable MSAA entirely.
// Higher values (MSAA8x, MSAA16x) are adapter-dependent and may not be supported
// by all hardware.
//
// Parameters:
//   - count: the MSAASampleCount to use (MSAAOff, MSAA4x, MSAA8x, or MSAA16x)
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.msaa = count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithCullMode sets the triangle cull mode of the box pipelines. Defaults to back-face culling.
//
// Parameters:
//   - mode: the cull mode (e.g., wgpu.CullModeNone to draw both faces)
//
// Returns:
//   - RendererBuilderOption: a function that applies the cull mode to a renderer
func WithCullMode(mode wgpu.CullMode) RendererBuilderOption {
	return func(r *renderer) {
		r.cullMode = mode
	}
}

// WithInstanceCapacity sets how many boxes each pass's instance buffer holds before it has to grow.
//
// Parameters:
//   - n: the initial per-pass instance capacity; values below 1 are ignored
//
// Returns:
//   - RendererBuilderOption: a function that applies the capacity to a renderer
func WithInstanceCapacity(n int) RendererBuilderOption {
	return func(r *renderer) {
		if n >= 1 {
			r.instanceCapacity = n
		}
	}
}
