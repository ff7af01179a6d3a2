package engine

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-anaglyph/engine/input"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/renderer"
)

var errPassOpen = errors.New("pass already open")

// recordedPass is one BeginPass/EndPass bracket seen by the recorder.
type recordedPass struct {
	mask  renderer.ColorMask
	clear *mgl32.Vec4
	vps   []mgl32.Mat4
	draws []mgl32.Mat4
}

// recordingRenderer implements FrameRenderer by recording every call.
type recordingRenderer struct {
	frames   [][]recordedPass
	open     *recordedPass
	presents int
	resizes  [][2]int

	beginFrameErr error
	beginPassErr  error
}

func (r *recordingRenderer) BeginFrame() error {
	if r.beginFrameErr != nil {
		return r.beginFrameErr
	}
	r.frames = append(r.frames, nil)
	return nil
}

func (r *recordingRenderer) BeginPass(mask renderer.ColorMask, clearColor *mgl32.Vec4) error {
	if r.beginPassErr != nil {
		return r.beginPassErr
	}
	if r.open != nil {
		return errPassOpen
	}
	var c *mgl32.Vec4
	if clearColor != nil {
		v := *clearColor
		c = &v
	}
	r.open = &recordedPass{mask: mask, clear: c}
	return nil
}

func (r *recordingRenderer) Render(viewProjection, world mgl32.Mat4) {
	if r.open == nil {
		return
	}
	r.open.vps = append(r.open.vps, viewProjection)
	r.open.draws = append(r.open.draws, world)
}

func (r *recordingRenderer) EndPass() error {
	if r.open == nil {
		return errors.New("no pass open")
	}
	if len(r.frames) == 0 {
		r.frames = append(r.frames, nil)
	}
	last := len(r.frames) - 1
	r.frames[last] = append(r.frames[last], *r.open)
	r.open = nil
	return nil
}

func (r *recordingRenderer) EndFrame() error {
	return nil
}

func (r *recordingRenderer) Present() {
	r.presents++
}

func (r *recordingRenderer) Resize(width, height int) error {
	r.resizes = append(r.resizes, [2]int{width, height})
	return nil
}

// passes returns the passes of the most recent frame.
func (r *recordingRenderer) passes() []recordedPass {
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

// fakeWindow drives the engine loop without GLFW. script[i] runs before the i-th update.
type fakeWindow struct {
	width, height int
	now           float64
	running       bool
	iterations    int
	maxIterations int
	script        map[int]func(w *fakeWindow)

	onUpdate func()
	onResize func(width, height int)
	onKey    func(keyCode uint32, action input.Action)
}

func newFakeWindow(maxIterations int) *fakeWindow {
	return &fakeWindow{
		width:         800,
		height:        600,
		running:       true,
		maxIterations: maxIterations,
		script:        map[int]func(w *fakeWindow){},
	}
}

func (w *fakeWindow) press(key uint32) {
	w.onKey(key, input.ActionPress)
	w.onKey(key, input.ActionRelease)
}

func (w *fakeWindow) SetUpdateCallback(callback func())                 { w.onUpdate = callback }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }
func (w *fakeWindow) SetKeyCallback(callback func(keyCode uint32, action input.Action)) {
	w.onKey = callback
}
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) Time() float64                              { return w.now }
func (w *fakeWindow) IsRunning() bool                            { return w.running }
func (w *fakeWindow) RequestClose()                              { w.running = false }
func (w *fakeWindow) Close() error                               { w.running = false; return nil }
func (w *fakeWindow) Width() int                                 { return w.width }
func (w *fakeWindow) Height() int                                { return w.height }

func (w *fakeWindow) ProcessMessages() {
	for w.running && w.iterations < w.maxIterations {
		if fn := w.script[w.iterations]; fn != nil {
			fn(w)
		}
		w.now += 1.0 / 60
		w.iterations++
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}
