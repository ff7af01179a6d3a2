// Package status prints state transitions to the console with red/cyan styling.
// Styling degrades to plain text when the output is not a terminal.
package status

import (
	"fmt"
	"io"
	"strconv"

	"github.com/muesli/termenv"

	"github.com/Carmen-Shannon/oxy-anaglyph/engine/camera"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/input"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/stereo"
)

const (
	red  = "#ff3b30"
	cyan = "#00c7d9"
)

// Reporter writes one line per changed setting.
type Reporter struct {
	out *termenv.Output
}

// NewReporter creates a Reporter writing to w. The color profile is detected from w
// unless overridden with WithProfile.
//
// Parameters:
//   - w: destination for status lines
//   - options: functional options to configure the reporter
//
// Returns:
//   - *Reporter: the new reporter
func NewReporter(w io.Writer, options ...ReporterOption) *Reporter {
	cfg := reporterConfig{}
	for _, option := range options {
		option(&cfg)
	}

	var termOpts []termenv.OutputOption
	if cfg.profile != nil {
		termOpts = append(termOpts, termenv.WithProfile(*cfg.profile))
	}
	return &Reporter{out: termenv.NewOutput(w, termOpts...)}
}

// Help prints the key bindings.
func (r *Reporter) Help() {
	bindings := [][2]string{
		{"Space", "toggle camera auto-rotation"},
		{"R", "reset camera"},
		{"Arrows", "orbit camera"},
		{"M", "cycle anaglyph mode"},
		{", / .", "decrease / increase IPD"},
		{"1 / 0 / 2", "single box / random boxes / black hole"},
		{"A", "toggle box animation"},
		{"P", "toggle profiler"},
		{"Esc", "quit"},
	}
	fmt.Fprintln(r.out, r.out.String("Anaglyph").Foreground(r.out.Color(red)).Bold().String()+
		r.out.String(" demo").Foreground(r.out.Color(cyan)).Bold().String())
	for _, b := range bindings {
		fmt.Fprintf(r.out, "  %-10s %s\n", b[0], b[1])
	}
}

// Report prints a line for every setting that differs between prev and next.
//
// Parameters:
//   - prev: the state before the frame's input was applied
//   - next: the state after
//
// Returns:
//   - int: the number of lines written
func (r *Reporter) Report(prev, next input.State) int {
	lines := Diff(prev, next)
	for _, l := range lines {
		fmt.Fprintln(r.out, r.style(l))
	}
	return len(lines)
}

// Mode prints the current stereo mode unconditionally.
func (r *Reporter) Mode(cfg stereo.Config) {
	fmt.Fprintln(r.out, r.style(Line{Label: "Anaglyph mode", Value: cfg.Mode.String(), Stereo: cfg.Mode}))
}

// Line is one status message.
type Line struct {
	Label  string
	Value  string
	Stereo stereo.Mode // colors the value for stereo mode lines
}

func (l Line) String() string {
	if l.Value == "" {
		return l.Label
	}
	return l.Label + ": " + l.Value
}

// Diff lists the status lines for the settings that changed between prev and next.
//
// Parameters:
//   - prev: the earlier state
//   - next: the later state
//
// Returns:
//   - []Line: one line per changed setting, in a fixed order
func Diff(prev, next input.State) []Line {
	var lines []Line
	if prev.Rotating != next.Rotating {
		lines = append(lines, Line{Label: "Auto-rotation", Value: onOff(next.Rotating)})
	}
	if prev.Orbit != next.Orbit && next.Orbit == camera.DefaultOrbit() {
		lines = append(lines, Line{Label: "Reset."})
	}
	if prev.Stereo.Mode != next.Stereo.Mode {
		lines = append(lines, Line{Label: "Anaglyph mode", Value: next.Stereo.Mode.String(), Stereo: next.Stereo.Mode})
	}
	if prev.Stereo.IPD != next.Stereo.IPD {
		lines = append(lines, Line{Label: "IPD", Value: strconv.FormatFloat(float64(next.Stereo.IPD), 'g', 4, 32)})
	}
	if prev.Scene != next.Scene {
		lines = append(lines, Line{Label: "Scene", Value: next.Scene.String()})
	}
	if prev.AnimateBoxes != next.AnimateBoxes {
		lines = append(lines, Line{Label: "Box animation", Value: onOff(next.AnimateBoxes)})
	}
	if prev.Profiling != next.Profiling {
		lines = append(lines, Line{Label: "Profiler", Value: onOff(next.Profiling)})
	}
	return lines
}

func (r *Reporter) style(l Line) string {
	if l.Value == "" {
		return r.out.String(l.Label).Bold().String()
	}
	value := r.out.String(l.Value)
	switch l.Stereo {
	case stereo.ModeToeIn:
		value = value.Foreground(r.out.Color(red))
	case stereo.ModeAsymmetric:
		value = value.Foreground(r.out.Color(cyan))
	}
	return r.out.String(l.Label+":").Bold().String() + " " + value.String()
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
