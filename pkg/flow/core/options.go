package core

import (
	"context"
	"runtime"
)

type OptionKey string

const (
	WorkerOptionKey OptionKey = "worker_options"
)

const (
	// DefaultWorkerCap is the upper bound applied to the computed pool size.
	DefaultWorkerCap = 32
	// DefaultWorkerHeadroom is added to the available parallelism so
	// I/O-bound tasks do not starve the CPU-bound ones.
	DefaultWorkerHeadroom = 4
)

type MaxLimitOption struct {
	Value int
}

type WorkerOptions struct {
	MaxCount MaxLimitOption
}

// WithWorkerOptions stores a worker cap in ctx. Processes without an explicit
// max worker count pick it up at execution time.
func WithWorkerOptions(ctx context.Context, maxWorkers int) context.Context {
	return context.WithValue(ctx, WorkerOptionKey, WorkerOptions{MaxLimitOption{Value: maxWorkers}})
}

func GetWorkerMaxCount(ctx context.Context, defaultMaxWorkers int) int {
	options, ok := ctx.Value(WorkerOptionKey).(WorkerOptions)
	if ok && options.MaxCount.Value > 0 {
		return options.MaxCount.Value
	}
	return defaultMaxWorkers
}

// AvailableParallelism reports how many goroutines can execute simultaneously.
func AvailableParallelism() int {
	return runtime.GOMAXPROCS(0)
}

// WorkerCount returns min(limit, AvailableParallelism()+headroom), never less than 1.
func WorkerCount(limit, headroom int) int {
	n := AvailableParallelism() + headroom
	if limit > 0 && n > limit {
		n = limit
	}
	if n < 1 {
		n = 1
	}
	return n
}

// DefaultMaxWorkers is WorkerCount with the package defaults.
func DefaultMaxWorkers() int {
	return WorkerCount(DefaultWorkerCap, DefaultWorkerHeadroom)
}
