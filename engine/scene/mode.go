package scene

// Mode selects which scene Generate builds.
type Mode int

const (
	// ModeSingleBox is one large debug box at the origin.
	ModeSingleBox Mode = iota
	// ModeRandomBoxes is a field of randomly placed, rotated and scaled boxes.
	ModeRandomBoxes
	// ModeBlackHole is a central body orbited by a particle swarm.
	ModeBlackHole
)

// Object counts per mode.
const (
	SingleBoxCount   = 1
	RandomBoxCount   = 100
	BlackHoleCount   = 101 // central body + 100 particles
	SingleBoxScale   = 16
	RandomBoxSpread  = 100
	RandomBoxMaxSize = 4
)

func (m Mode) String() string {
	switch m {
	case ModeSingleBox:
		return "Single box"
	case ModeRandomBoxes:
		return "Random boxes"
	case ModeBlackHole:
		return "Black hole"
	default:
		return "Unknown"
	}
}

// ParseMode maps a configuration name to a Mode.
// Accepted names are "single", "boxes" and "blackhole".
//
// Parameters:
//   - name: the mode name
//
// Returns:
//   - Mode: the parsed mode
//   - bool: false if the name is not recognized
func ParseMode(name string) (Mode, bool) {
	switch name {
	case "single", "":
		return ModeSingleBox, true
	case "boxes":
		return ModeRandomBoxes, true
	case "blackhole", "black-hole":
		return ModeBlackHole, true
	}
	return ModeSingleBox, false
}
