package particle

import "math/rand/v2"

// SimulatorBuilderOption is a functional option for configuring a Simulator.
type SimulatorBuilderOption func(*simulatorImpl)

// WithParams sets the swarm configuration.
//
// Parameters:
//   - params: the swarm configuration
//
// Returns:
//   - SimulatorBuilderOption: functional option to set the params
func WithParams(params Params) SimulatorBuilderOption {
	return func(s *simulatorImpl) {
		s.params = params
	}
}

// WithSeed seeds a fresh deterministic generator.
//
// Parameters:
//   - seed: generator seed
//
// Returns:
//   - SimulatorBuilderOption: functional option to set the seed
func WithSeed(seed uint64) SimulatorBuilderOption {
	return func(s *simulatorImpl) {
		s.rng = NewRand(seed)
	}
}

// WithRand shares an existing generator, so scene generation and simulation
// draw from a single sequence.
//
// Parameters:
//   - rng: the generator to use
//
// Returns:
//   - SimulatorBuilderOption: functional option to set the generator
func WithRand(rng *rand.Rand) SimulatorBuilderOption {
	return func(s *simulatorImpl) {
		s.rng = rng
	}
}
