package tasks

import (
	"time"

	"github.com/mrlokans/sentences/internal/config"
)

// Config holds configuration for the task queue.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 1
	Workers int

	// ReleaseAfter is when stuck tasks are released back to the queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often finished tasks are purged. Default: 1h
	CleanupInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:         1,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}

// ConfigFrom builds a Config from application settings, falling back to
// defaults for unset values.
func ConfigFrom(cfg config.Tasks) Config {
	result := DefaultConfig()
	if cfg.Workers > 0 {
		result.Workers = cfg.Workers
	}
	if cfg.ReleaseAfter > 0 {
		result.ReleaseAfter = cfg.ReleaseAfter
	}
	if cfg.CleanupInterval > 0 {
		result.CleanupInterval = cfg.CleanupInterval
	}
	return result
}
