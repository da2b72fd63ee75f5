package pool

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ib-77/procflow/pkg/flow/core"
)

var (
	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("pool is closed")
	// ErrInvalidSize is returned by New for sizes below one.
	ErrInvalidSize = errors.New("pool size must be at least 1")
)

// Executor is the surface a Process needs from a pool.
type Executor interface {
	Submit(job core.Job) error
	Close() error
	Size() int
}

// Factory creates executors. A Process asks its factory for a fresh
// executor on every parallel run.
type Factory interface {
	NewPool(size int, queue int) (Executor, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(size int, queue int) (Executor, error)

func (f FactoryFunc) NewPool(size int, queue int) (Executor, error) {
	return f(size, queue)
}

// DefaultFactory builds *Pool values.
var DefaultFactory Factory = FactoryFunc(func(size int, queue int) (Executor, error) {
	return New(size, WithQueueSize(queue))
})

type Option func(*Pool)

// WithQueueSize buffers up to n submitted jobs, so Submit does not block
// until more than n jobs are waiting for a worker.
func WithQueueSize(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.queue = n
		}
	}
}

// Pool runs submitted jobs on a fixed number of worker goroutines.
// Jobs beyond the worker count wait in FIFO order. The size never changes
// after New returns.
type Pool struct {
	size  int
	queue int
	jobs  chan core.Job
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	active atomic.Int64
	peak   atomic.Int64

	panicMu sync.Mutex
	panics  []error
}

// New starts a pool with size workers.
func New(size int, opts ...Option) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	p := &Pool{size: size}
	for _, opt := range opts {
		opt(p)
	}
	p.jobs = make(chan core.Job, p.queue)

	handlers := core.WorkerHandlers{
		OnStart: p.started,
		OnDone:  func() { p.active.Add(-1) },
		OnPanic: p.recordPanic,
	}

	for range size {
		p.wg.Add(1)
		go core.Locomotive(p.jobs, handlers, &p.wg)
	}

	return p, nil
}

// Submit queues job for execution. It blocks while the queue is full.
func (p *Pool) Submit(job core.Job) error {
	if job == nil {
		return errors.New("nil job")
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}
	p.jobs <- job
	return nil
}

// Close stops accepting jobs and waits for every submitted job to finish.
// It returns an error if any job panicked inside a worker.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()

	p.panicMu.Lock()
	defer p.panicMu.Unlock()
	return errors.Join(p.panics...)
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Active returns the number of jobs running right now.
func (p *Pool) Active() int {
	return int(p.active.Load())
}

// Peak returns the highest number of jobs observed running at once.
func (p *Pool) Peak() int {
	return int(p.peak.Load())
}

func (p *Pool) started() {
	n := p.active.Add(1)
	for {
		cur := p.peak.Load()
		if n <= cur || p.peak.CompareAndSwap(cur, n) {
			return
		}
	}
}

func (p *Pool) recordPanic(err error) {
	p.panicMu.Lock()
	p.panics = append(p.panics, err)
	p.panicMu.Unlock()
}
