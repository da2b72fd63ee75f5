package flow

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned for an unknown strategy or a
	// non-positive worker count.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidState is returned when Execute or AddTask is called on a
	// process that is no longer initialized.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidTask is returned by AddTask for a nil or unusable task.
	ErrInvalidTask = errors.New("invalid task")
	// ErrTaskFailed matches every *TaskFailure.
	ErrTaskFailed = errors.New("task failed")
	// ErrPoolFault matches every *PoolFault.
	ErrPoolFault = errors.New("worker pool fault")
)

// TaskFailure is the error stored in the result slot of a task that
// returned an error or panicked.
type TaskFailure struct {
	Index    int
	Name     string
	Err      error
	Panicked bool
}

func (f *TaskFailure) Error() string {
	if f.Panicked {
		return fmt.Sprintf("task %d (%s) panicked: %v", f.Index, f.Name, f.Err)
	}
	return fmt.Sprintf("task %d (%s) failed: %v", f.Index, f.Name, f.Err)
}

func (f *TaskFailure) Unwrap() error {
	return f.Err
}

func (f *TaskFailure) Is(target error) bool {
	return target == ErrTaskFailed
}

// Pool operations reported by PoolFault.
const (
	PoolOpCreate   = "create"
	PoolOpSubmit   = "submit"
	PoolOpTeardown = "teardown"
)

// PoolFault is a failure of the worker pool itself. It fails the whole run.
type PoolFault struct {
	Op  string
	Err error
}

func (f *PoolFault) Error() string {
	return fmt.Sprintf("worker pool %s: %v", f.Op, f.Err)
}

func (f *PoolFault) Unwrap() error {
	return f.Err
}

func (f *PoolFault) Is(target error) bool {
	return target == ErrPoolFault
}
