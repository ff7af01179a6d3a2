package particle

// Params configures the black hole swarm.
type Params struct {
	Count int // number of particles, excluding the central body

	OuterRadius    float32 // radius used to normalize proximity and angular speed
	SpawnMinRadius float32 // lower bound of the respawn band
	InnerRadius    float32 // event horizon: particles inside are respawned
	MaxHeight      float32 // vertical reflection bound

	BaseAngularSpeed float32 // rad/s at the outer radius
	FallSpeedMin     float32 // inward drift lower bound (units/s)
	FallSpeedMax     float32 // inward drift upper bound (units/s)
	VerticalSpeedMax float32 // |ySpeed| upper bound (units/s)
	SpinSpeedMin     float32 // self spin lower bound (rad/s)
	SpinSpeedMax     float32 // self spin upper bound (rad/s)

	// EnergyRate is the rate (1/s) at which a particle's radius is halved.
	// It is applied as a per-frame probability of EnergyRate·dt, and the engine caps
	// dt at engine.MaxFrameDelta, so after a stall at most one halving chance of
	// EnergyRate·0.1 is taken instead of one scaled by the full stall.
	EnergyRate float32

	CentralScale    float32 // uniform scale of the central body
	CentralSpinRate float32 // central body spin about (1, 1, 1) in rad/s
}

// DefaultParams returns the swarm configuration used by the demo.
func DefaultParams() Params {
	return Params{
		Count: 100,

		OuterRadius:    60,
		SpawnMinRadius: 12,
		InnerRadius:    4,
		MaxHeight:      5,

		BaseAngularSpeed: 0.5,
		FallSpeedMin:     0.5,
		FallSpeedMax:     2.5,
		VerticalSpeedMax: 1.5,
		SpinSpeedMin:     0.5,
		SpinSpeedMax:     3,

		EnergyRate: 0.2,

		CentralScale:    6,
		CentralSpinRate: 0.3,
	}
}

// RespawnBand returns the radius range new particles are drawn from:
// min + [0.4, 0.7]·(outer − min).
//
// Returns:
//   - lo, hi: the band bounds
func (p Params) RespawnBand() (lo, hi float32) {
	span := p.OuterRadius - p.SpawnMinRadius
	return p.SpawnMinRadius + 0.4*span, p.SpawnMinRadius + 0.7*span
}
