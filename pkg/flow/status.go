package flow

import (
	"fmt"
	"sync/atomic"
)

// Status is the lifecycle state of a Process. It only moves forward:
// initialized -> running -> completed | failed.
type Status int32

const (
	StatusInitialized Status = iota
	StatusRunning
	StatusCompleted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusInitialized:
		return "initialized"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int32(s))
	}
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

type lifecycle struct {
	state atomic.Int32
}

func (l *lifecycle) current() Status {
	return Status(l.state.Load())
}

// start moves initialized -> running. Exactly one caller wins.
func (l *lifecycle) start() error {
	if l.state.CompareAndSwap(int32(StatusInitialized), int32(StatusRunning)) {
		return nil
	}
	return fmt.Errorf("%w: cannot execute process in %s state", ErrInvalidState, l.current())
}

// finish moves running -> to. Calls from any other state are ignored.
func (l *lifecycle) finish(to Status) bool {
	if !to.IsTerminal() {
		return false
	}
	return l.state.CompareAndSwap(int32(StatusRunning), int32(to))
}
