// Package pool provides a bounded worker pool with a fixed number of
// goroutines.
//
// A Pool is meant to be scoped to a single batch of work: create it, submit
// jobs, then Close it to wait for them. Close must be called on every path,
// otherwise the worker goroutines leak. Jobs are expected to capture their
// own results; the pool only reports jobs that panicked.
//
//	p, err := pool.New(4, pool.WithQueueSize(len(jobs)))
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//	for _, job := range jobs {
//	    if err := p.Submit(job); err != nil {
//	        return err
//	    }
//	}
package pool
