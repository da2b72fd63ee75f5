package flow

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ib-77/procflow/pkg/flow/core"
	"github.com/ib-77/procflow/pkg/flow/logging"
	"github.com/ib-77/procflow/pkg/flow/telemetry"
)

// Process runs an ordered list of tasks with one strategy. A Process is
// single-use: tasks are added, Execute is called once, and the Process ends
// up completed or failed.
type Process[T any] struct {
	name     string
	strategy Strategy
	opts     options

	mu    sync.Mutex
	tasks []TaskUnit[T]

	state   lifecycle
	workers atomic.Int64
}

// New creates a Process in the initialized state.
func New[T any](name string, strategy Strategy, opts ...Option) (*Process[T], error) {
	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfiguration, strategy)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	return &Process[T]{
		name:     name,
		strategy: strategy,
		opts:     o,
	}, nil
}

func (p *Process[T]) Name() string {
	return p.name
}

func (p *Process[T]) Strategy() Strategy {
	return p.strategy
}

// Status is safe to call at any time, including while Execute runs.
func (p *Process[T]) Status() Status {
	return p.state.current()
}

// MaxWorkers returns the configured worker count, or the computed default
// when none was given.
func (p *Process[T]) MaxWorkers() int {
	if p.opts.maxWorkersSet {
		return p.opts.maxWorkers
	}
	return core.WorkerCount(p.opts.workerCap, p.opts.headroom)
}

// WorkerCount returns the size of the pool used by Execute, or 0 if no pool
// was created.
func (p *Process[T]) WorkerCount() int {
	return int(p.workers.Load())
}

// Len returns the number of tasks added so far.
func (p *Process[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tasks)
}

// Tasks returns a copy of the registered task units.
func (p *Process[T]) Tasks() []TaskUnit[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]TaskUnit[T](nil), p.tasks...)
}

// AddTask appends task. It fails with ErrInvalidTask for a nil task and with
// ErrInvalidState once Execute has been called.
func (p *Process[T]) AddTask(task Task[T]) error {
	return p.AddTaskNamed("", task)
}

// AddTaskNamed appends task under name. An empty name becomes "task-<index>".
func (p *Process[T]) AddTaskNamed(name string, task Task[T]) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s := p.state.current(); s != StatusInitialized {
		return fmt.Errorf("%w: cannot add task to process %q in %s state", ErrInvalidState, p.name, s)
	}
	if IsNil(task) {
		return fmt.Errorf("%w: nil task for process %q", ErrInvalidTask, p.name)
	}

	index := len(p.tasks)
	if name == "" {
		name = fmt.Sprintf("task-%d", index)
	}
	p.tasks = append(p.tasks, TaskUnit[T]{Index: index, Name: name, Task: task})
	return nil
}

// Execute runs every task and blocks until all of them have finished. The
// returned slice has one Result per task in submission order. Task errors
// and panics are captured in their slot; only a worker pool fault makes
// Execute return an error, in which case the results are discarded and the
// Process is failed.
//
// Tasks run by the parallel and hybrid strategies execute concurrently and
// must be safe to run alongside each other. ctx is passed to every task;
// the engine itself never cancels or skips tasks.
func (p *Process[T]) Execute(ctx context.Context) ([]Result[T], error) {
	p.mu.Lock()
	if err := p.state.start(); err != nil {
		p.mu.Unlock()
		return nil, fmt.Errorf("process %q: %w", p.name, err)
	}
	units := p.tasks
	p.mu.Unlock()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	ctx, span := p.opts.tracer.StartRun(ctx, p.name, p.strategy.String(), runID, len(units))
	logger := p.opts.logger.With(
		zap.String("process", p.name),
		zap.String("strategy", p.strategy.String()),
	)

	logger.Debug(ctx, "process started", zap.Int("tasks", len(units)))
	start := time.Now()

	results, err := p.dispatch(ctx, logger, units)
	if err != nil {
		p.state.finish(StatusFailed)
		p.opts.metrics.RunFinished(p.strategy.String(), StatusFailed.String())
		logger.Error(ctx, "process failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		telemetry.End(span, err, attribute.String("flow.status", StatusFailed.String()))
		return nil, fmt.Errorf("process %q: %w", p.name, err)
	}

	p.state.finish(StatusCompleted)
	p.opts.metrics.RunFinished(p.strategy.String(), StatusCompleted.String())

	failed := 0
	for _, r := range results {
		if r.IsFailure() {
			failed++
		}
	}
	logger.Info(ctx, "process completed",
		zap.Int("tasks", len(results)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)),
	)
	telemetry.End(span, nil,
		attribute.String("flow.status", StatusCompleted.String()),
		attribute.Int("flow.failed", failed),
	)

	return results, nil
}

func (p *Process[T]) dispatch(ctx context.Context, logger *logging.Logger, units []TaskUnit[T]) ([]Result[T], error) {
	results := make([]Result[T], len(units))

	switch p.strategy {
	case Sequential:
		p.runSequential(ctx, logger, units, results)
	case Parallel:
		if err := p.runParallel(ctx, logger, units, results); err != nil {
			return nil, err
		}
	case Hybrid:
		split := HybridSplit(len(units))
		logger.Debug(ctx, "hybrid split",
			zap.Int("sequential", split),
			zap.Int("parallel", len(units)-split),
		)
		p.runSequential(ctx, logger, units[:split], results)
		if err := p.runParallel(ctx, logger, units[split:], results); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfiguration, p.strategy)
	}

	return results, nil
}

// runSequential runs units in order on the calling goroutine. A failing
// unit is recorded and the loop moves on.
func (p *Process[T]) runSequential(ctx context.Context, logger *logging.Logger, units []TaskUnit[T], results []Result[T]) {
	for _, u := range units {
		results[u.Index] = p.runUnit(ctx, logger, u)
	}
}

// runParallel runs units on a pool created for this call and closed before
// it returns.
func (p *Process[T]) runParallel(ctx context.Context, logger *logging.Logger, units []TaskUnit[T], results []Result[T]) (err error) {
	if len(units) == 0 {
		return nil
	}

	size := p.poolSize(ctx)
	executor, err := p.opts.factory.NewPool(size, len(units))
	if err != nil {
		return &PoolFault{Op: PoolOpCreate, Err: err}
	}
	p.workers.Store(int64(size))
	p.opts.metrics.PoolCreated(size)
	logger.Debug(ctx, "worker pool created", zap.Int("workers", size), zap.Int("tasks", len(units)))

	defer func() {
		if cerr := executor.Close(); cerr != nil && err == nil {
			err = &PoolFault{Op: PoolOpTeardown, Err: cerr}
		}
	}()

	wg := &sync.WaitGroup{}
	for _, u := range units {
		wg.Add(1)
		serr := executor.Submit(func() {
			defer wg.Done()
			results[u.Index] = p.runUnit(ctx, logger, u)
		})
		if serr != nil {
			wg.Done()
			err = &PoolFault{Op: PoolOpSubmit, Err: fmt.Errorf("task %d: %w", u.Index, serr)}
			break
		}
	}
	wg.Wait()

	return err
}

func (p *Process[T]) poolSize(ctx context.Context) int {
	if p.opts.maxWorkersSet {
		return p.opts.maxWorkers
	}
	return core.GetWorkerMaxCount(ctx, core.WorkerCount(p.opts.workerCap, p.opts.headroom))
}

func (p *Process[T]) runUnit(ctx context.Context, logger *logging.Logger, u TaskUnit[T]) Result[T] {
	ctx, span := p.opts.tracer.StartTask(ctx, u.Name, u.Index)
	p.opts.metrics.TaskStarted()
	logger.Trace(ctx, "task started", zap.Int("index", u.Index), zap.String("task", u.Name))

	start := time.Now()
	value, panicked, err := invoke(ctx, u.Task)
	elapsed := time.Since(start)

	if err != nil {
		failure := &TaskFailure{Index: u.Index, Name: u.Name, Err: err, Panicked: panicked}
		outcome := "failure"
		if panicked {
			outcome = "panic"
		}
		p.opts.metrics.TaskFinished(p.strategy.String(), outcome, elapsed)
		logger.Warn(ctx, "task failed",
			zap.Int("index", u.Index),
			zap.String("task", u.Name),
			zap.Bool("panicked", panicked),
			zap.Error(err),
		)
		telemetry.End(span, failure)
		return Fail[T](failure).at(u.Index, elapsed)
	}

	p.opts.metrics.TaskFinished(p.strategy.String(), "success", elapsed)
	telemetry.End(span, nil)
	return Success(value).at(u.Index, elapsed)
}

func invoke[T any](ctx context.Context, task Task[T]) (value T, panicked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			value, panicked, err = zero, true, core.PanicError(r)
		}
	}()

	value, err = task.Invoke(ctx)
	return value, false, err
}
