// Package config loads engine defaults for procflow.
package config

import (
	"fmt"

	"github.com/ib-77/procflow/pkg/flow/core"
	"github.com/ib-77/procflow/pkg/flow/logging"
)

// Config is the top-level configuration.
type Config struct {
	Engine  Engine         `koanf:"engine"`
	Logging logging.Config `koanf:"logging"`
}

// Engine holds the defaults used to build a Process.
type Engine struct {
	// Strategy is "sequential", "parallel" or "hybrid".
	Strategy string `koanf:"strategy"`
	// MaxWorkers fixes the pool size. Zero means computed from the sizing
	// fields below.
	MaxWorkers int `koanf:"max_workers"`
	// WorkerCap bounds the computed pool size.
	WorkerCap int `koanf:"worker_cap"`
	// WorkerHeadroom is added to GOMAXPROCS when computing the pool size.
	WorkerHeadroom int `koanf:"worker_headroom"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: Engine{
			Strategy:       "sequential",
			WorkerCap:      core.DefaultWorkerCap,
			WorkerHeadroom: core.DefaultWorkerHeadroom,
		},
		Logging: *logging.NewDefaultConfig(),
	}
}

// Validate checks numeric ranges and the logging section. Strategy names
// are checked when the Process is built.
func (c *Config) Validate() error {
	if c.Engine.Strategy == "" {
		return fmt.Errorf("engine.strategy is required")
	}
	if c.Engine.MaxWorkers < 0 {
		return fmt.Errorf("engine.max_workers must be >= 0, got %d", c.Engine.MaxWorkers)
	}
	if c.Engine.WorkerCap < 1 {
		return fmt.Errorf("engine.worker_cap must be >= 1, got %d", c.Engine.WorkerCap)
	}
	if c.Engine.WorkerHeadroom < 0 {
		return fmt.Errorf("engine.worker_headroom must be >= 0, got %d", c.Engine.WorkerHeadroom)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
