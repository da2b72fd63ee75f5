package flow

import (
	"fmt"

	"github.com/ib-77/procflow/pkg/flow/core"
	"github.com/ib-77/procflow/pkg/flow/logging"
	"github.com/ib-77/procflow/pkg/flow/metrics"
	"github.com/ib-77/procflow/pkg/flow/pool"
	"github.com/ib-77/procflow/pkg/flow/telemetry"
)

type options struct {
	maxWorkers    int
	maxWorkersSet bool
	workerCap     int
	headroom      int
	factory       pool.Factory
	logger        *logging.Logger
	tracer        *telemetry.Tracer
	metrics       *metrics.Collector
}

func defaultOptions() options {
	return options{
		workerCap: core.DefaultWorkerCap,
		headroom:  core.DefaultWorkerHeadroom,
		factory:   pool.DefaultFactory,
		logger:    logging.NewNop(),
		tracer:    telemetry.NewTracer(nil),
	}
}

func (o options) validate() error {
	if o.maxWorkersSet && o.maxWorkers < 1 {
		return fmt.Errorf("%w: max workers must be >= 1, got %d", ErrInvalidConfiguration, o.maxWorkers)
	}
	if o.workerCap < 1 {
		return fmt.Errorf("%w: worker cap must be >= 1, got %d", ErrInvalidConfiguration, o.workerCap)
	}
	if o.headroom < 0 {
		return fmt.Errorf("%w: worker headroom must be >= 0, got %d", ErrInvalidConfiguration, o.headroom)
	}
	if o.factory == nil {
		return fmt.Errorf("%w: nil pool factory", ErrInvalidConfiguration)
	}
	return nil
}

// Option configures a Process.
type Option func(*options)

// WithMaxWorkers fixes the worker pool size. n must be at least 1.
func WithMaxWorkers(n int) Option {
	return func(o *options) {
		o.maxWorkers = n
		o.maxWorkersSet = true
	}
}

// WithWorkerSizing changes the cap and headroom used to size the pool when
// no explicit worker count is given: min(limit, GOMAXPROCS+headroom).
func WithWorkerSizing(limit, headroom int) Option {
	return func(o *options) {
		o.workerCap = limit
		o.headroom = headroom
	}
}

// WithPoolFactory replaces the factory that creates worker pools.
func WithPoolFactory(f pool.Factory) Option {
	return func(o *options) {
		o.factory = f
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithTracer(t *telemetry.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) {
		o.metrics = c
	}
}
