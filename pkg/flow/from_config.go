package flow

import (
	"github.com/ib-77/procflow/pkg/flow/config"
)

// NewFromConfig creates a Process using the engine section of cfg. Options
// given here are applied after the configured ones and win.
func NewFromConfig[T any](name string, cfg config.Engine, opts ...Option) (*Process[T], error) {
	strategy, err := ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	base := []Option{WithWorkerSizing(cfg.WorkerCap, cfg.WorkerHeadroom)}
	if cfg.MaxWorkers != 0 {
		base = append(base, WithMaxWorkers(cfg.MaxWorkers))
	}

	return New[T](name, strategy, append(base, opts...)...)
}
