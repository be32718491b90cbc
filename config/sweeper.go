package config

import "time"

// SweeperConfig controls the stale-listing sweeper.
type SweeperConfig struct {
	// Enabled turns the sweeper on; off by default.
	Enabled bool `env:"SWEEPER_ENABLED" envDefault:"false"`

	// Spec is the cron schedule expression.
	Spec string `env:"SWEEPER_SPEC" envDefault:"@every 6h"`

	// MaxAge is the retention window: active listings not re-scraped within
	// it are deactivated.
	MaxAge time.Duration `env:"SWEEPER_MAX_AGE" envDefault:"720h"`

	// BatchSize caps rows touched per repository call.
	BatchSize int `env:"SWEEPER_BATCH_SIZE" envDefault:"500"`
}

// Sanitize applies guardrails to sweeper configuration values.
func (c *SweeperConfig) Sanitize() {
	if c.Spec == "" {
		c.Spec = "@every 6h"
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 720 * time.Hour
	}
	if c.BatchSize < 1 {
		c.BatchSize = 500
	}
}
