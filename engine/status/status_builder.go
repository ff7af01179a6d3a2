package status

import "github.com/muesli/termenv"

type reporterConfig struct {
	profile *termenv.Profile
}

// ReporterOption is a functional option for configuring a Reporter.
type ReporterOption func(*reporterConfig)

// WithProfile forces a color profile instead of detecting it from the writer.
// termenv.Ascii disables all styling.
//
// Parameters:
//   - profile: the color profile
//
// Returns:
//   - ReporterOption: functional option to set the profile
func WithProfile(profile termenv.Profile) ReporterOption {
	return func(c *reporterConfig) {
		c.profile = &profile
	}
}
