package window

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-anaglyph/engine/input"
)

func TestMapAction(t *testing.T) {
	assert.Equal(t, input.ActionPress, mapAction(glfw.Press))
	assert.Equal(t, input.ActionRepeat, mapAction(glfw.Repeat))
	assert.Equal(t, input.ActionRelease, mapAction(glfw.Release))
}

func TestHandleKeyAndResize(t *testing.T) {
	w := &engineWindow{width: 10, height: 10}

	// no callbacks registered
	w.handleKey(65, input.ActionPress)
	w.handleResize(20, 30)
	assert.Equal(t, 20, w.Width())
	assert.Equal(t, 30, w.Height())

	var keys []uint32
	var actions []input.Action
	w.SetKeyCallback(func(k uint32, a input.Action) {
		keys = append(keys, k)
		actions = append(actions, a)
	})
	var sizes [][2]int
	w.SetResizeCallback(func(width, height int) {
		sizes = append(sizes, [2]int{width, height})
	})

	w.handleKey(65, input.ActionPress)
	w.handleKey(65, input.ActionRelease)
	w.handleResize(800, 600)

	assert.Equal(t, []uint32{65, 65}, keys)
	assert.Equal(t, []input.Action{input.ActionPress, input.ActionRelease}, actions)
	assert.Equal(t, [][2]int{{800, 600}}, sizes)
	assert.Equal(t, 800, w.Width())
}

func TestUninitializedWindow(t *testing.T) {
	w := &engineWindow{}
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
	w.RequestClose()
	w.ProcessMessages()
}

func TestBuilderOptions(t *testing.T) {
	w := &engineWindow{resizable: true}
	for _, opt := range []WindowBuilderOption{
		WithTitle("Stereo"),
		WithWidth(640),
		WithHeight(480),
		WithResizable(false),
	} {
		opt(w)
	}

	assert.Equal(t, "Stereo", w.title)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())
	assert.False(t, w.resizable)
}
