// Package input maps key events onto the demo state. Apply and Advance are pure:
// they take a State by value and return the updated copy, so they run without a window.
package input

import (
	"github.com/Carmen-Shannon/oxy-anaglyph/common"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/camera"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/scene"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/stereo"
)

// Step sizes for discrete key adjustments.
const (
	OrbitStep = 0.1 // radians per arrow key event
	IPDStep   = 0.1 // world units per comma/period event

	// AutoRotateSpeed is the azimuth rate in rad/s while auto-rotation is on.
	AutoRotateSpeed = 1.0
)

// Action is the key transition reported by the window.
type Action int

const (
	ActionRelease Action = iota
	ActionPress
	ActionRepeat
)

// Event is a single key event.
type Event struct {
	Key    uint32
	Action Action
}

// State is everything the key bindings can change.
type State struct {
	Orbit          camera.Orbit
	Rotating       bool
	Stereo         stereo.Config
	Scene          scene.Mode
	AnimateBoxes   bool
	Profiling      bool
	CloseRequested bool
}

// DefaultState returns the state the demo starts in: default orbit, stereo disabled,
// single box scene.
func DefaultState() State {
	return State{
		Orbit:  camera.DefaultOrbit(),
		Stereo: stereo.DefaultConfig(),
		Scene:  scene.ModeSingleBox,
	}
}

// Apply returns the state after handling ev. Release events are ignored.
// Toggles and mode switches react to Press only; orbit and IPD adjustments
// also react to Repeat so holding the key keeps stepping.
//
// Parameters:
//   - s: the current state
//   - ev: the key event
//
// Returns:
//   - State: the updated state
func Apply(s State, ev Event) State {
	if ev.Action == ActionRelease {
		return s
	}

	switch ev.Key {
	case common.KeyLeft:
		s.Orbit = s.Orbit.Rotate(-OrbitStep, 0)
		return s
	case common.KeyRight:
		s.Orbit = s.Orbit.Rotate(OrbitStep, 0)
		return s
	case common.KeyUp:
		s.Orbit = s.Orbit.Rotate(0, -OrbitStep)
		return s
	case common.KeyDown:
		s.Orbit = s.Orbit.Rotate(0, OrbitStep)
		return s
	case common.KeyComma:
		s.Stereo = s.Stereo.AdjustIPD(-IPDStep)
		return s
	case common.KeyPeriod:
		s.Stereo = s.Stereo.AdjustIPD(IPDStep)
		return s
	}

	if ev.Action != ActionPress {
		return s
	}

	switch ev.Key {
	case common.KeySpace:
		s.Rotating = !s.Rotating
	case common.KeyR:
		s.Orbit = camera.DefaultOrbit()
		s.Rotating = false
	case common.KeyM:
		s.Stereo = s.Stereo.CycleMode()
	case common.KeyA:
		s.AnimateBoxes = !s.AnimateBoxes
	case common.Key1:
		s.Scene = scene.ModeSingleBox
	case common.Key0:
		s.Scene = scene.ModeRandomBoxes
	case common.Key2:
		s.Scene = scene.ModeBlackHole
	case common.KeyP:
		s.Profiling = !s.Profiling
	case common.KeyEsc:
		s.CloseRequested = true
	}
	return s
}

// ApplyAll folds a batch of events into the state in order.
//
// Parameters:
//   - s: the current state
//   - events: key events in arrival order
//
// Returns:
//   - State: the updated state
func ApplyAll(s State, events []Event) State {
	for _, ev := range events {
		s = Apply(s, ev)
	}
	return s
}

// Advance returns the state after dt seconds of continuous input, which is the
// camera auto-rotation at AutoRotateSpeed while Rotating is set.
//
// Parameters:
//   - s: the current state
//   - dt: frame time in seconds
//
// Returns:
//   - State: the updated state
func Advance(s State, dt float32) State {
	if s.Rotating {
		s.Orbit = s.Orbit.Rotate(AutoRotateSpeed*dt, 0)
	}
	return s
}
