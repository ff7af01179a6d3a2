// Package config loads the demo configuration from TOML and watches it for live edits.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"

	"github.com/Carmen-Shannon/oxy-anaglyph/common"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/particle"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/scene"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/stereo"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full demo configuration.
type Config struct {
	Window    Window    `toml:"window"`
	Camera    Camera    `toml:"camera"`
	Stereo    Stereo    `toml:"stereo"`
	Scene     Scene     `toml:"scene"`
	BlackHole BlackHole `toml:"black_hole"`
	Render    Render    `toml:"render"`
	Profiler  Profiler  `toml:"profiler"`
}

// Window configures the GLFW window.
type Window struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
}

// Camera configures the monocular camera. FovY is in degrees.
type Camera struct {
	FovY     float32 `toml:"fov"`
	Near     float32 `toml:"near"`
	Far      float32 `toml:"far"`
	Distance float32 `toml:"distance"`
}

// Stereo configures the initial stereo settings. Mode is "none", "toe-in" or "asymmetric".
type Stereo struct {
	IPD  float32 `toml:"ipd"`
	Mode string  `toml:"mode"`
}

// Scene configures scene generation. Mode is "single", "boxes" or "blackhole".
type Scene struct {
	Mode         string `toml:"mode"`
	Seed         uint64 `toml:"seed"`
	Workers      int    `toml:"workers"`
	AnimateBoxes bool   `toml:"animate_boxes"`
}

// BlackHole configures the particle swarm.
type BlackHole struct {
	OuterRadius      float32 `toml:"outer_radius"`
	SpawnMinRadius   float32 `toml:"spawn_min_radius"`
	InnerRadius      float32 `toml:"inner_radius"`
	MaxHeight        float32 `toml:"max_height"`
	BaseAngularSpeed float32 `toml:"base_angular_speed"`
	FallSpeedMin     float32 `toml:"fall_speed_min"`
	FallSpeedMax     float32 `toml:"fall_speed_max"`
	VerticalSpeedMax float32 `toml:"vertical_speed_max"`
	SpinSpeedMin     float32 `toml:"spin_speed_min"`
	SpinSpeedMax     float32 `toml:"spin_speed_max"`
	EnergyRate       float32 `toml:"energy_rate"`
	CentralScale     float32 `toml:"central_scale"`
	CentralSpinRate  float32 `toml:"central_spin_rate"`
}

// Render configures the GPU renderer.
// ClearColor is 8-bit RGB. PresentMode is "fifo", "mailbox" or "immediate".
// InstanceCapacity is the number of boxes a pass can draw before its instance buffer grows.
type Render struct {
	ClearColor       [3]int `toml:"clear_color"`
	MSAA             int    `toml:"msaa"`
	PresentMode      string `toml:"present_mode"`
	Cull             bool   `toml:"cull"`
	InstanceCapacity int    `toml:"instance_capacity"`
}

// Profiler configures periodic performance logging.
type Profiler struct {
	Enabled    bool `toml:"enabled"`
	IntervalMS int  `toml:"interval_ms"`
}

// Default returns the configuration the demo runs with when no file is given.
func Default() Config {
	bh := particle.DefaultParams()
	return Config{
		Window: Window{Title: "Anaglyph", Width: 1024, Height: 768, Resizable: true},
		Camera: Camera{FovY: 45, Near: 0.1, Far: 1000, Distance: 100},
		Stereo: Stereo{IPD: stereo.DefaultIPD, Mode: "none"},
		Scene:  Scene{Mode: "single", Seed: 2024},
		BlackHole: BlackHole{
			OuterRadius:      bh.OuterRadius,
			SpawnMinRadius:   bh.SpawnMinRadius,
			InnerRadius:      bh.InnerRadius,
			MaxHeight:        bh.MaxHeight,
			BaseAngularSpeed: bh.BaseAngularSpeed,
			FallSpeedMin:     bh.FallSpeedMin,
			FallSpeedMax:     bh.FallSpeedMax,
			VerticalSpeedMax: bh.VerticalSpeedMax,
			SpinSpeedMin:     bh.SpinSpeedMin,
			SpinSpeedMax:     bh.SpinSpeedMax,
			EnergyRate:       bh.EnergyRate,
			CentralScale:     bh.CentralScale,
			CentralSpinRate:  bh.CentralSpinRate,
		},
		Render: Render{
			ClearColor:       [3]int{163, 227, 255},
			MSAA:             4,
			PresentMode:      "fifo",
			InstanceCapacity: scene.BlackHoleCount,
		},
		Profiler: Profiler{IntervalMS: 1000},
	}
}

// Load reads a TOML file on top of Default and validates the result.
// Unknown keys are rejected.
//
// Parameters:
//   - path: path of the TOML file
//
// Returns:
//   - Config: the loaded configuration
//   - error: read, decode or validation failure
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML on top of Default and validates the result.
//
// Parameters:
//   - data: TOML document
//
// Returns:
//   - Config: the decoded configuration
//   - error: decode or validation failure
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("config: %w:\n%s", err, strict.String())
		}
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.fillBlanks()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// fillBlanks restores the default for keys written with an empty value, so
// `title = ""` or `instance_capacity = 0` behave as if the key were absent.
func (c *Config) fillBlanks() {
	def := Default()
	c.Window.Title = common.Coalesce(c.Window.Title, def.Window.Title)
	c.Stereo.Mode = common.Coalesce(c.Stereo.Mode, def.Stereo.Mode)
	c.Scene.Mode = common.Coalesce(c.Scene.Mode, def.Scene.Mode)
	c.Render.PresentMode = common.Coalesce(c.Render.PresentMode, def.Render.PresentMode)
	c.Render.InstanceCapacity = common.Coalesce(c.Render.InstanceCapacity, def.Render.InstanceCapacity)
}

// Validate checks value ranges and enum names.
//
// Returns:
//   - error: a wrapped ErrInvalid describing the first problem found, or nil
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return invalid("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Camera.FovY <= 0 || c.Camera.FovY >= 180:
		return invalid("camera.fov must be in (0, 180), got %g", c.Camera.FovY)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return invalid("camera clip planes must satisfy 0 < near < far, got near=%g far=%g", c.Camera.Near, c.Camera.Far)
	case c.Camera.Distance <= 0:
		return invalid("camera.distance must be positive, got %g", c.Camera.Distance)
	case c.Stereo.IPD < 0:
		return invalid("stereo.ipd must not be negative, got %g", c.Stereo.IPD)
	case c.Scene.Workers < 0:
		return invalid("scene.workers must not be negative, got %d", c.Scene.Workers)
	case c.Render.InstanceCapacity < 1:
		return invalid("render.instance_capacity must be positive, got %d", c.Render.InstanceCapacity)
	case c.Render.MSAA != 1 && c.Render.MSAA != 4:
		return invalid("render.msaa must be 1 or 4, got %d", c.Render.MSAA)
	case c.Profiler.IntervalMS <= 0:
		return invalid("profiler.interval_ms must be positive, got %d", c.Profiler.IntervalMS)
	}

	if _, ok := stereo.ParseMode(c.Stereo.Mode); !ok {
		return invalid("unknown stereo.mode %q", c.Stereo.Mode)
	}
	if _, ok := scene.ParseMode(c.Scene.Mode); !ok {
		return invalid("unknown scene.mode %q", c.Scene.Mode)
	}
	switch c.Render.PresentMode {
	case "fifo", "mailbox", "immediate":
	default:
		return invalid("unknown render.present_mode %q", c.Render.PresentMode)
	}
	for i, ch := range c.Render.ClearColor {
		if ch < 0 || ch > 255 {
			return invalid("render.clear_color[%d] must be in [0, 255], got %d", i, ch)
		}
	}

	bh := c.BlackHole
	switch {
	case bh.InnerRadius <= 0 || bh.SpawnMinRadius <= bh.InnerRadius || bh.OuterRadius <= bh.SpawnMinRadius:
		return invalid("black_hole radii must satisfy 0 < inner < spawn_min < outer, got %g < %g < %g",
			bh.InnerRadius, bh.SpawnMinRadius, bh.OuterRadius)
	case bh.MaxHeight < 0:
		return invalid("black_hole.max_height must not be negative, got %g", bh.MaxHeight)
	case bh.FallSpeedMin < 0 || bh.FallSpeedMax < bh.FallSpeedMin:
		return invalid("black_hole fall speeds must satisfy 0 <= min <= max")
	case bh.SpinSpeedMax < bh.SpinSpeedMin:
		return invalid("black_hole spin speeds must satisfy min <= max")
	case bh.EnergyRate < 0:
		return invalid("black_hole.energy_rate must not be negative, got %g", bh.EnergyRate)
	case bh.CentralScale <= 0:
		return invalid("black_hole.central_scale must be positive, got %g", bh.CentralScale)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// StereoConfig converts the stereo section. Call only on a validated Config.
func (c Config) StereoConfig() stereo.Config {
	mode, _ := stereo.ParseMode(c.Stereo.Mode)
	return stereo.Config{IPD: c.Stereo.IPD, Mode: mode}
}

// SceneMode converts the scene mode name. Call only on a validated Config.
func (c Config) SceneMode() scene.Mode {
	mode, _ := scene.ParseMode(c.Scene.Mode)
	return mode
}

// ParticleParams converts the black hole section.
func (c Config) ParticleParams() particle.Params {
	bh := c.BlackHole
	return particle.Params{
		Count:            scene.BlackHoleCount - 1,
		OuterRadius:      bh.OuterRadius,
		SpawnMinRadius:   bh.SpawnMinRadius,
		InnerRadius:      bh.InnerRadius,
		MaxHeight:        bh.MaxHeight,
		BaseAngularSpeed: bh.BaseAngularSpeed,
		FallSpeedMin:     bh.FallSpeedMin,
		FallSpeedMax:     bh.FallSpeedMax,
		VerticalSpeedMax: bh.VerticalSpeedMax,
		SpinSpeedMin:     bh.SpinSpeedMin,
		SpinSpeedMax:     bh.SpinSpeedMax,
		EnergyRate:       bh.EnergyRate,
		CentralScale:     bh.CentralScale,
		CentralSpinRate:  bh.CentralSpinRate,
	}
}

// ClearColor returns the clear color as normalized RGBA.
func (c Config) ClearColor() mgl32.Vec4 {
	cc := c.Render.ClearColor
	return mgl32.Vec4{float32(cc[0]) / 255, float32(cc[1]) / 255, float32(cc[2]) / 255, 1}
}
