package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWorkerMaxCount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Equal(t, 7, GetWorkerMaxCount(ctx, 7))

	ctx = WithWorkerOptions(ctx, 3)
	assert.Equal(t, 3, GetWorkerMaxCount(ctx, 7))

	// non-positive values in the context are ignored
	ctx = WithWorkerOptions(context.Background(), 0)
	assert.Equal(t, 7, GetWorkerMaxCount(ctx, 7))
}

func TestWorkerCount(t *testing.T) {
	t.Parallel()

	par := AvailableParallelism()

	assert.Equal(t, min(32, par+4), DefaultMaxWorkers())
	assert.Equal(t, 1, WorkerCount(1, 4))
	assert.Equal(t, par+4, WorkerCount(0, 4), "no limit")
	assert.Equal(t, 1, WorkerCount(10, -par-10), "never below one")
}

func TestLocomotive_RunsEveryJob(t *testing.T) {
	t.Parallel()

	in := make(chan Job, 10)
	var ran atomic.Int32
	var started, done atomic.Int32

	for range 10 {
		in <- func() { ran.Add(1) }
	}
	close(in)

	wg := &sync.WaitGroup{}
	wg.Add(1)
	Locomotive(in, WorkerHandlers{
		OnStart: func() { started.Add(1) },
		OnDone:  func() { done.Add(1) },
	}, wg)
	wg.Wait()

	assert.EqualValues(t, 10, ran.Load())
	assert.EqualValues(t, 10, started.Load())
	assert.EqualValues(t, 10, done.Load())
}

func TestLocomotive_PanicDoesNotStopWorker(t *testing.T) {
	t.Parallel()

	in := make(chan Job, 3)
	var ran atomic.Int32
	var panics []error
	var mu sync.Mutex

	in <- func() { ran.Add(1) }
	in <- func() { panic("boom") }
	in <- func() { ran.Add(1) }
	close(in)

	wg := &sync.WaitGroup{}
	wg.Add(1)
	Locomotive(in, WorkerHandlers{
		OnPanic: func(err error) {
			mu.Lock()
			panics = append(panics, err)
			mu.Unlock()
		},
	}, wg)

	assert.EqualValues(t, 2, ran.Load())
	require.Len(t, panics, 1)
	assert.Contains(t, panics[0].Error(), "boom")
}

func TestPanicError(t *testing.T) {
	t.Parallel()

	base := errors.New("base")
	assert.ErrorIs(t, PanicError(base), base)
	assert.EqualError(t, PanicError(42), "panic: 42")
}
