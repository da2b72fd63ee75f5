package core

import (
	"fmt"
	"sync"
)

// Job is a unit of work run by a worker. Jobs report their own outcome; a
// worker only reports whether the job panicked.
type Job func()

type WorkerHandlers struct {
	OnStart func()
	OnDone  func()
	OnPanic func(err error)
}

// Locomotive drains inputCh until it is closed, running each job to
// completion before taking the next one. There is no cancellation path:
// every job received is run exactly once.
func Locomotive(inputCh <-chan Job, handlers WorkerHandlers, wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range inputCh {
		runJob(job, handlers)
	}
}

func runJob(job Job, handlers WorkerHandlers) {
	if handlers.OnStart != nil {
		handlers.OnStart()
	}

	defer func() {
		if r := recover(); r != nil && handlers.OnPanic != nil {
			handlers.OnPanic(PanicError(r))
		}
		if handlers.OnDone != nil {
			handlers.OnDone()
		}
	}()

	job()
}

// PanicError converts a recovered value into an error.
func PanicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
