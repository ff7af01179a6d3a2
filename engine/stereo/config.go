package stereo

import "github.com/chewxy/math32"

// Mode selects the stereo algorithm.
type Mode int

const (
	ModeNone Mode = iota
	ModeToeIn
	ModeAsymmetric

	modeCount
)

// Next returns the following mode in the cycle None → ToeIn → Asymmetric → None.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "None"
	case ModeToeIn:
		return "Toe-in"
	case ModeAsymmetric:
		return "Asymmetric view frustum"
	default:
		return "Unknown"
	}
}

// ParseMode maps a configuration name to a Mode.
// Accepted names are "none", "toe-in" and "asymmetric".
//
// Parameters:
//   - name: the mode name
//
// Returns:
//   - Mode: the parsed mode
//   - bool: false if the name is not recognized
func ParseMode(name string) (Mode, bool) {
	switch name {
	case "none", "":
		return ModeNone, true
	case "toe-in", "toein":
		return ModeToeIn, true
	case "asymmetric":
		return ModeAsymmetric, true
	}
	return ModeNone, false
}

// DefaultIPD is the interocular distance the demo starts with.
const DefaultIPD = 2.0

// Config is the stereo configuration: interocular distance and active mode.
type Config struct {
	IPD  float32
	Mode Mode
}

// DefaultConfig returns stereo disabled with the default interocular distance.
func DefaultConfig() Config {
	return Config{IPD: DefaultIPD, Mode: ModeNone}
}

// AdjustIPD returns the config with IPD changed by delta. IPD never drops below zero.
func (c Config) AdjustIPD(delta float32) Config {
	c.IPD = math32.Max(0, c.IPD+delta)
	return c
}

// CycleMode returns the config with the next stereo mode selected.
func (c Config) CycleMode() Config {
	c.Mode = c.Mode.Next()
	return c
}

// Enabled reports whether a two-pass stereo frame should be rendered.
func (c Config) Enabled() bool {
	return c.Mode != ModeNone
}
