package classify

import "fmt"

// DefaultThreshold is the confidence threshold used when none is configured.
const DefaultThreshold = 0.40

// Config controls the fallback behavior of a Classifier when no rule fires.
// A zero-value Config is usable after ApplyDefaults (or via DefaultConfig):
// no scorer, the "unknown" default label, and a 0.40 threshold.
type Config struct {
	// Scorer is the optional external classifier adapter consulted when
	// no rule matches. When nil the default label is returned directly.
	Scorer Scorer

	// Default is the label returned for low-confidence outcomes.
	// Default: DefaultLabel ("unknown").
	Default Label

	// Threshold is the minimum scorer confidence to accept a prediction.
	// The comparison is inclusive: a score exactly equal to the threshold
	// is accepted. Must lie in [0, 1]. Default: 0.40.
	Threshold float64

	// thresholdSet tracks whether WithThreshold was called, so that an
	// explicit 0 survives ApplyDefaults.
	thresholdSet bool
}

// DefaultConfig returns the default classifier configuration.
func DefaultConfig() *Config {
	return &Config{
		Default:      DefaultLabel,
		Threshold:    DefaultThreshold,
		thresholdSet: true,
	}
}

// WithScorer sets the external scorer adapter.
func (c *Config) WithScorer(s Scorer) *Config {
	c.Scorer = s
	return c
}

// WithDefault sets the default label.
func (c *Config) WithDefault(label Label) *Config {
	c.Default = label
	return c
}

// WithThreshold sets the confidence threshold.
func (c *Config) WithThreshold(threshold float64) *Config {
	c.Threshold = threshold
	c.thresholdSet = true
	return c
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Default == "" {
		c.Default = DefaultLabel
	}
	if !c.thresholdSet && c.Threshold == 0 {
		c.Threshold = DefaultThreshold
		c.thresholdSet = true
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Default == "" {
		return fmt.Errorf("%w: default label cannot be empty", ErrInvalidConfig)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v outside [0, 1]", ErrInvalidConfig, c.Threshold)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
