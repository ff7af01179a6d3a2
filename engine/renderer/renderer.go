package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-anaglyph/engine/model"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/renderer/shader"
)

// MaxPassesPerFrame is the number of render passes a frame may hold: one per anaglyph eye.
// Each pass slot owns its own instance buffer because every queue write lands before the
// frame's single submission, so passes cannot share one.
const MaxPassesPerFrame = 2

// ErrTooManyPasses is returned by BeginPass once MaxPassesPerFrame passes have been begun in a frame.
var ErrTooManyPasses = errors.New("renderer: too many passes in one frame")

// SurfaceSource is what the renderer needs from a window: a surface to present into and its pixel size.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	box              model.Model
	instanceLayout   *wgpu.BindGroupLayout
	instances        [MaxPassesPerFrame]bind_group_provider.BindGroupProvider
	instanceCapacity int

	// per-frame state
	inFrame  bool
	passSlot int
	passOpen bool
	passMask ColorMask
	staged   []GPUInstance
	draws    int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	cullMode             wgpu.CullMode
}

// Renderer draws instanced unit boxes into a WebGPU surface, one render pass at a time.
//
// A frame is BeginFrame, then one or two passes of BeginPass / Render... / EndPass, then
// EndFrame and Present. Each pass clears depth independently and writes only the channels
// of its ColorMask, which is how the red and cyan images of an anaglyph share one color target.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline for a color mask.
	//
	// Parameters:
	//   - mask: the color mask the pipeline writes
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline, or nil if not registered
	Pipeline(mask ColorMask) pipeline.Pipeline

	// Pipelines retrieves the entire cache of Pipelines keyed by pipeline key.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: a copy of the pipeline cache
	Pipelines() map[string]pipeline.Pipeline

	// Resize reconfigures the surface for a new framebuffer size. A zero size is ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the render targets could not be recreated
	Resize(width, height int) error

	// SetPresentMode changes how frames are presented. Takes effect at the next Resize.
	//
	// Parameters:
	//   - mode: the present mode
	SetPresentMode(mode PresentMode)

	// BeginFrame acquires the next swapchain image and starts recording.
	//
	// Returns:
	//   - error: an error if no swapchain image could be acquired
	BeginFrame() error

	// BeginPass opens a render pass writing only the channels of mask. Depth is always cleared.
	// Color is cleared to clearColor when it is non-nil and kept from the previous pass otherwise.
	//
	// Parameters:
	//   - mask: the channels the pass writes
	//   - clearColor: normalized RGBA clear color, or nil to keep the existing color
	//
	// Returns:
	//   - error: ErrNoFrame outside a frame, ErrPassOpen if a pass is open, ErrTooManyPasses past the per-frame limit
	BeginPass(mask ColorMask, clearColor *mgl32.Vec4) error

	// Render queues one box drawn with the given transforms in the open pass.
	// Calls outside an open pass are dropped.
	//
	// Parameters:
	//   - viewProjection: the view-projection matrix of the pass's camera or eye
	//   - world: the box's model-to-world transform
	Render(viewProjection, world mgl32.Mat4)

	// EndPass uploads the queued boxes, draws them in one instanced call and closes the pass.
	//
	// Returns:
	//   - error: ErrNoFrame if no pass is open, or an instance buffer allocation error
	EndPass() error

	// EndFrame submits the frame's recorded passes.
	//
	// Returns:
	//   - error: ErrPassOpen if a pass was left open, or a submission error
	EndFrame() error

	// Present displays the submitted frame.
	Present()

	// Draws returns how many boxes were drawn in the current or last frame.
	//
	// Returns:
	//   - int: the box count across all passes
	Draws() int

	// Release releases every GPU resource the renderer owns.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a renderer presenting into the surface of src: it requests a GPU adapter
// and device, configures the surface at src's size, uploads the box mesh and registers one box
// pipeline per ColorMask.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - src: the window providing the surface
//   - options: functional options for present mode, MSAA and adapter selection
//
// Returns:
//   - Renderer: the ready renderer
//   - error: any adapter, device, surface or pipeline creation failure
func NewRenderer(backendType RendererBackendType, src SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:               &sync.Mutex{},
		pipelineCache:    make(map[string]pipeline.Pipeline),
		backendType:      backendType,
		box:              model.NewBox(),
		instanceCapacity: 128,
		presentMode:      PresentModeVSync,
		msaa:             MSAA4x,
		cullMode:         wgpu.CullModeBack,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(src.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	}
	if err != nil {
		return nil, err
	}

	r.backend.SetPresentMode(r.presentMode)
	if err := r.backend.ConfigureSurface(src.Width(), src.Height()); err != nil {
		r.backend.Release()
		return nil, err
	}

	if err := r.initBox(); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

// initBox uploads the box mesh, creates the shared instance bind group layout and registers
// a pipeline per color mask against it.
func (r *renderer) initBox() error {
	vs, fs, err := shader.NewBoxShaders()
	if err != nil {
		return err
	}

	mesh := bind_group_provider.NewBindGroupProvider("Box Mesh")
	if err := r.backend.InitMeshBuffers(mesh, r.box.VertexData(), r.box.IndexData(), r.box.IndexCount()); err != nil {
		mesh.Release()
		return fmt.Errorf("renderer: upload box mesh: %w", err)
	}
	r.box.SetMeshProvider(mesh)

	descriptors := mergeBindGroupLayouts(vs.BindGroupLayoutDescriptors(), fs.BindGroupLayoutDescriptors())
	layouts := make([]*wgpu.BindGroupLayout, len(descriptors))
	for g, desc := range descriptors {
		layout, err := r.backend.CreateBindGroupLayout(desc)
		if err != nil {
			return fmt.Errorf("renderer: create bind group layout for group %d: %w", g, err)
		}
		layouts[g] = layout
	}
	r.instanceLayout = layouts[shader.BoxInstanceGroup]

	for i := range r.instances {
		r.instances[i] = bind_group_provider.NewBindGroupProvider(
			fmt.Sprintf("Box Instances %d", i),
			bind_group_provider.WithBindGroupLayout(r.instanceLayout),
		)
	}

	for _, mask := range ColorMasks {
		p := pipeline.NewPipeline(mask.pipelineKey(),
			pipeline.WithVertexShader(vs),
			pipeline.WithFragmentShader(fs),
			pipeline.WithWriteMask(mask.WriteMask()),
			pipeline.WithCullMode(r.cullMode),
		)
		if err := r.backend.RegisterRenderPipeline(p, layouts); err != nil {
			return fmt.Errorf("renderer: register %s pipeline: %w", p.PipelineKey(), err)
		}
		r.pipelineCache[p.PipelineKey()] = p
	}
	return nil
}

func (r *renderer) Pipeline(mask ColorMask) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[mask.pipelineKey()]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make(map[string]pipeline.Pipeline, len(r.pipelineCache))
	for k, v := range r.pipelineCache {
		cp[k] = v
	}
	return cp
}

func (r *renderer) Resize(width, height int) error {
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.inFrame = true
	r.passSlot = 0
	r.draws = 0
	return nil
}

func (r *renderer) BeginPass(mask ColorMask, clearColor *mgl32.Vec4) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case !r.inFrame:
		return ErrNoFrame
	case r.passOpen:
		return ErrPassOpen
	case r.passSlot >= MaxPassesPerFrame:
		return ErrTooManyPasses
	}

	var clearValue *wgpu.Color
	if clearColor != nil {
		clearValue = &wgpu.Color{
			R: float64(clearColor[0]),
			G: float64(clearColor[1]),
			B: float64(clearColor[2]),
			A: float64(clearColor[3]),
		}
	}
	if err := r.backend.BeginPass(clearValue); err != nil {
		return err
	}

	r.passOpen = true
	r.passMask = mask
	r.staged = r.staged[:0]
	return nil
}

func (r *renderer) Render(viewProjection, world mgl32.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.passOpen {
		return
	}
	r.staged = append(r.staged, PackInstance(viewProjection, world))
}

func (r *renderer) EndPass() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.passOpen {
		return ErrNoFrame
	}
	defer func() {
		r.backend.EndPass()
		r.passOpen = false
		r.passSlot++
	}()

	count := len(r.staged)
	if count == 0 {
		return nil
	}

	provider := r.instances[r.passSlot]
	if provider.Capacity(shader.BoxInstanceBinding) < count {
		capacity := growCapacity(r.instanceCapacity, count)
		if err := r.backend.InitStorageBindGroup(provider, shader.BoxInstanceBinding, shader.BoxInstanceSize, capacity); err != nil {
			return fmt.Errorf("renderer: allocate instance buffer: %w", err)
		}
	}

	r.backend.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: provider,
		Binding:  shader.BoxInstanceBinding,
		Data:     MarshalInstances(r.staged),
	}})

	p := r.pipelineCache[r.passMask.pipelineKey()]
	if p == nil {
		return fmt.Errorf("renderer: no pipeline for color mask %s", r.passMask)
	}
	if err := r.backend.DrawCall(p, r.box.MeshProvider(), uint32(count), []bind_group_provider.BindGroupProvider{provider}); err != nil {
		return err
	}
	r.draws += count
	return nil
}

func (r *renderer) EndFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.inFrame = false
	r.passOpen = false
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Draws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draws
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, k)
	}
	for i, provider := range r.instances {
		if provider != nil {
			provider.Release()
			r.instances[i] = nil
		}
	}
	if r.instanceLayout != nil {
		r.instanceLayout.Release()
		r.instanceLayout = nil
	}
	if mesh := r.box.MeshProvider(); mesh != nil {
		mesh.Release()
		r.box.SetMeshProvider(nil)
	}
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}

// growCapacity returns the smallest power-of-two multiple of current that holds need elements.
//
// Parameters:
//   - current: the starting capacity, treated as 1 when not positive
//   - need: the element count that must fit
//
// Returns:
//   - int: the new capacity, never less than current
func growCapacity(current, need int) int {
	if current < 1 {
		current = 1
	}
	for current < need {
		current *= 2
	}
	return current
}
