package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-anaglyph/common"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/camera"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/config"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/input"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/profiler"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/renderer"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/scene"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/stereo"
)

type logRecorder struct {
	lines []string
}

func (l *logRecorder) logf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *logRecorder) count(substr string) int {
	n := 0
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

type queuedConfigs struct {
	pending []config.Config
}

func (q *queuedConfigs) Poll() (config.Config, bool) {
	if len(q.pending) == 0 {
		return config.Config{}, false
	}
	cfg := q.pending[0]
	q.pending = q.pending[1:]
	return cfg, true
}

func newTestEngine(t *testing.T, w *fakeWindow, r *recordingRenderer, options ...EngineBuilderOption) (Engine, *logRecorder) {
	t.Helper()
	logs := &logRecorder{}
	base := []EngineBuilderOption{WithWindow(w), WithRenderer(r), WithLogf(logs.logf)}
	e, err := NewEngine(append(base, options...)...)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e, logs
}

func TestNewEngineRequiresCollaborators(t *testing.T) {
	_, err := NewEngine()
	assert.ErrorIs(t, err, ErrMissingCollaborator)

	_, err = NewEngine(WithWindow(newFakeWindow(1)))
	assert.ErrorIs(t, err, ErrMissingCollaborator)
}

func TestEngineInitialState(t *testing.T) {
	cfg := config.Default()
	cfg.Stereo.Mode = "toe-in"
	cfg.Scene.Mode = "boxes"
	cfg.Camera.Distance = 50

	e, _ := newTestEngine(t, newFakeWindow(1), &recordingRenderer{}, WithConfig(cfg))

	s := e.State()
	assert.Equal(t, stereo.ModeToeIn, s.Stereo.Mode)
	assert.Equal(t, scene.ModeRandomBoxes, s.Scene)
	assert.Equal(t, float32(50), s.Orbit.Distance)
	assert.Equal(t, 100, e.Scene().Len())
}

func TestEngineRunKeySequence(t *testing.T) {
	w := newFakeWindow(10)
	w.script[1] = func(w *fakeWindow) { w.press(common.KeyM) }
	w.script[2] = func(w *fakeWindow) { w.press(common.Key2) }
	w.script[3] = func(w *fakeWindow) { w.press(common.KeyEsc) }
	r := &recordingRenderer{}

	e, _ := newTestEngine(t, w, r)
	e.Run()

	// the Esc frame requests close without drawing
	assert.Equal(t, 4, w.iterations)
	assert.Equal(t, 4, e.Frames())
	require.Len(t, r.frames, 3)
	assert.Equal(t, 3, r.presents)

	// frame 0: mono single box
	require.Len(t, r.frames[0], 1)
	assert.Equal(t, renderer.ColorMaskAll, r.frames[0][0].mask)
	assert.Len(t, r.frames[0][0].draws, 1)

	// frame 1: toe-in anaglyph
	require.Len(t, r.frames[1], 2)
	assert.Equal(t, renderer.ColorMaskRed, r.frames[1][0].mask)
	assert.Equal(t, renderer.ColorMaskCyan, r.frames[1][1].mask)
	assert.NotNil(t, r.frames[1][0].clear)
	assert.Nil(t, r.frames[1][1].clear)

	// frame 2: black hole with its central body
	require.Len(t, r.frames[2], 2)
	assert.Len(t, r.frames[2][0].draws, scene.BlackHoleCount)
	assert.Len(t, r.frames[2][1].draws, scene.BlackHoleCount)

	s := e.State()
	assert.True(t, s.CloseRequested)
	assert.Equal(t, stereo.ModeToeIn, s.Stereo.Mode)
	assert.Equal(t, scene.ModeBlackHole, e.Scene().Mode())
	assert.False(t, w.IsRunning())
}

func TestEngineAutoRotation(t *testing.T) {
	w := newFakeWindow(3)
	w.script[0] = func(w *fakeWindow) { w.press(common.KeySpace) }

	e, _ := newTestEngine(t, w, &recordingRenderer{})
	e.Run()

	s := e.State()
	assert.True(t, s.Rotating)
	assert.InDelta(t, camera.DefaultAzimuth+3.0/60*input.AutoRotateSpeed, s.Orbit.Azimuth, 1e-4)
}

func TestEngineClampsStalledFrame(t *testing.T) {
	w := newFakeWindow(3)
	w.script[0] = func(w *fakeWindow) { w.press(common.KeySpace) }
	w.script[1] = func(w *fakeWindow) { w.now += 5 }

	e, _ := newTestEngine(t, w, &recordingRenderer{})
	e.Run()

	// The 5 s stall advances the simulation by MaxFrameDelta only.
	want := camera.DefaultAzimuth + (2.0/60+MaxFrameDelta)*input.AutoRotateSpeed
	assert.InDelta(t, want, e.State().Orbit.Azimuth, 1e-4)
}

func TestEngineCameraFollowsOrbit(t *testing.T) {
	w := newFakeWindow(1)
	w.script[0] = func(w *fakeWindow) { w.press(common.KeyLeft) }
	cam := camera.NewCamera(camera.WithController(camera.NewCameraController()))

	e, _ := newTestEngine(t, w, &recordingRenderer{}, WithCamera(cam))
	e.Run()

	assert.Equal(t, e.State().Orbit, cam.Controller().Orbit())
}

func TestEngineConfigReload(t *testing.T) {
	reloaded := config.Default()
	reloaded.Stereo.Mode = "asymmetric"
	reloaded.Stereo.IPD = 3
	reloaded.Scene.Seed = 7

	src := &queuedConfigs{pending: []config.Config{reloaded}}
	w := newFakeWindow(2)
	r := &recordingRenderer{}

	e, logs := newTestEngine(t, w, r, WithConfigSource(src))
	first := e.Scene()
	e.Run()

	assert.Equal(t, stereo.Config{IPD: 3, Mode: stereo.ModeAsymmetric}, e.State().Stereo)
	assert.Equal(t, uint64(7), e.Config().Scene.Seed)
	assert.Equal(t, uint64(7), e.Scene().Seed())
	assert.NotSame(t, first, e.Scene())
	assert.Len(t, r.frames[0], 2)
	assert.Equal(t, 1, logs.count("[Config] reloaded"))
}

func TestEngineConfigReloadKeepsKeyboardTweaks(t *testing.T) {
	src := &queuedConfigs{}
	w := newFakeWindow(2)
	w.script[0] = func(w *fakeWindow) { w.press(common.KeyPeriod) }
	w.script[1] = func(*fakeWindow) {
		cfg := config.Default()
		cfg.Render.ClearColor = [3]int{0, 0, 0}
		src.pending = append(src.pending, cfg)
	}
	r := &recordingRenderer{}

	e, _ := newTestEngine(t, w, r, WithConfigSource(src))
	e.Run()

	assert.InDelta(t, stereo.DefaultIPD+input.IPDStep, e.State().Stereo.IPD, 1e-6)
	require.Len(t, r.frames, 2)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, *r.frames[1][0].clear)
}

func TestEngineResize(t *testing.T) {
	w := newFakeWindow(1)
	r := &recordingRenderer{}
	cam := camera.NewCamera(camera.WithController(camera.NewCameraController()))

	newTestEngine(t, w, r, WithCamera(cam))
	w.onResize(1000, 500)
	assert.Equal(t, [][2]int{{1000, 500}}, r.resizes)
	assert.InDelta(t, 2, cam.Aspect(), 1e-6)

	// minimized windows report zero size; the aspect is kept
	w.onResize(0, 0)
	assert.InDelta(t, 2, cam.Aspect(), 1e-6)
}

func TestEngineFrameErrorLoggedOnce(t *testing.T) {
	w := newFakeWindow(3)
	r := &recordingRenderer{beginFrameErr: errors.New("surface outdated")}

	e, logs := newTestEngine(t, w, r)
	e.Run()

	assert.Equal(t, 3, e.Frames())
	assert.Zero(t, r.presents)
	assert.Equal(t, 1, logs.count("surface outdated"))
}

func TestEngineProfilerToggle(t *testing.T) {
	w := newFakeWindow(2)
	w.script[0] = func(w *fakeWindow) { w.press(common.KeyP) }

	logs := &logRecorder{}
	p := profiler.NewProfiler(profiler.WithInterval(0), profiler.WithLogf(logs.logf))

	e, _ := newTestEngine(t, w, &recordingRenderer{}, WithProfiler(p))
	e.Run()

	assert.True(t, e.State().Profiling)
	assert.Equal(t, 2, logs.count("[Profiler] Single box | None |"))
	assert.Equal(t, 2, logs.count("Passes: 1"))
}

func TestEngineQuit(t *testing.T) {
	w := newFakeWindow(100)
	var e Engine
	w.script[2] = func(*fakeWindow) { e.Quit() }

	e, _ = newTestEngine(t, w, &recordingRenderer{})
	e.Run()

	assert.Equal(t, 3, w.iterations)
	assert.Equal(t, 3, e.Frames())
}

func TestStateFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.AnimateBoxes = true
	cfg.Profiler.Enabled = true
	cfg.Profiler.IntervalMS = int(time.Second / time.Millisecond)

	s := stateFromConfig(cfg)
	assert.True(t, s.AnimateBoxes)
	assert.True(t, s.Profiling)
	assert.Equal(t, cfg.StereoConfig(), s.Stereo)
	assert.False(t, s.Rotating)
}
