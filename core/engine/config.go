package engine

import "fmt"

// Config holds the tunable parameters of the engine. The fitness weights are
// a calibration concern, not a law: defaults mirror the values the scoring
// was tuned with but deployments may override them.
type Config struct {
	// GapWeight scales the total count of surrounded empty periods (alpha).
	GapWeight float64 `json:"gap_weight"`
	// ShortDayWeight scales the count of short teacher-days (beta).
	ShortDayWeight float64 `json:"short_day_weight"`
	// MinPeriodsPerDay is the threshold below which a scheduled day counts
	// as short for a teacher.
	MinPeriodsPerDay int `json:"min_periods_per_day"`
	// Workers bounds the number of attempts running concurrently.
	// Zero means one worker per CPU.
	Workers int `json:"workers"`
	// Seed makes runs reproducible when non-zero. Attempt i derives its own
	// generator from Seed+i so a larger attempt count reuses the seeds of a
	// smaller one.
	Seed int64 `json:"seed"`
	// DefaultAttempts is used when the caller passes no attempt count.
	DefaultAttempts int `json:"default_attempts"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.GapWeight == 0 {
		c.GapWeight = 0.5
	}
	if c.ShortDayWeight == 0 {
		c.ShortDayWeight = 2
	}
	if c.MinPeriodsPerDay == 0 {
		c.MinPeriodsPerDay = 2
	}
	if c.DefaultAttempts == 0 {
		c.DefaultAttempts = 10
	}
}

// Validate checks the configuration for values the engine cannot work with.
func (c Config) Validate() error {
	if c.GapWeight < 0 || c.ShortDayWeight < 0 {
		return fmt.Errorf("fitness weights must not be negative")
	}
	if c.MinPeriodsPerDay < 0 {
		return fmt.Errorf("min_periods_per_day must not be negative")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if c.DefaultAttempts < 1 {
		return fmt.Errorf("default_attempts must be at least 1")
	}
	return nil
}
