// Package flow runs an ordered list of independent tasks with one of three
// strategies and returns their outcomes in submission order.
//
// Strategies:
//   - Sequential: tasks run one at a time, in order, on the caller's goroutine.
//   - Parallel: every task is submitted to a bounded worker pool.
//   - Hybrid: the first HybridSplit(n) = n/2 tasks run sequentially, the
//     rest in parallel.
//
// A task's error or panic is captured as a *TaskFailure in its own Result
// slot and never stops its siblings, including under Sequential. Only a
// failure of the worker pool itself fails the whole run.
//
// The worker pool is created lazily for each Execute call, sized
// min(32, GOMAXPROCS+4) unless WithMaxWorkers is given, and closed before
// Execute returns. The engine does not synchronize access to state shared
// between tasks: tasks run by Parallel or Hybrid must be safe to execute
// concurrently.
//
//	p, err := flow.New[int]("sum", flow.Sequential)
//	if err != nil {
//	    return err
//	}
//	_ = p.AddTask(flow.Call2(add, 2, 3))
//	_ = p.AddTask(flow.Call2(add, 4, 5))
//	results, err := p.Execute(ctx) // values 5, 9
package flow
