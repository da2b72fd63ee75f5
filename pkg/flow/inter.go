package flow

import (
	"context"
	"time"
)

type ValueProvider[T any] interface {
	// Value returns the successful result value
	Value() T
	// CreatedAt time creation (UTC)
	CreatedAt() time.Time
}

// WithError defines an interface for types that can return a value or an error
type WithError[T any] interface {
	ValueProvider[T]
	// Err returns the error if the task failed
	Err() error
	// IsSuccess returns true if the task succeeded
	IsSuccess() bool
}

// Task is a deferred unit of work. Invoke is called exactly once by the
// Process that owns the task.
type Task[T any] interface {
	Invoke(ctx context.Context) (T, error)
}
