package flow

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Result is the outcome of one task: either a success value or a captured
// failure. A Process returns one Result per task, in submission order.
type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	index     int
	duration  time.Duration
	value     T
	err       error
	isSuccess bool
}

func Success[T any](v T) Result[T] {
	return Result[T]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		value:     v,
		isSuccess: true,
	}
}

func Fail[T any](err error) Result[T] {
	if err == nil {
		err = errors.New("unknown failure")
	}
	return Result[T]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		err:       err,
	}
}

func (r Result[T]) at(index int, d time.Duration) Result[T] {
	r.index = index
	r.duration = d
	return r
}

// Value returns the success value, or the zero value for failures.
func (r Result[T]) Value() T {
	return r.value
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsSuccess() bool {
	return r.isSuccess
}

func (r Result[T]) IsFailure() bool {
	return !r.isSuccess && r.err != nil
}

// IsEmpty reports whether r is the zero Result.
func (r Result[T]) IsEmpty() bool {
	return r.err == nil && !r.isSuccess
}

// Unwrap returns the value and error as a pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// Failure returns the captured task failure, if r holds one.
func (r Result[T]) Failure() (*TaskFailure, bool) {
	var f *TaskFailure
	if errors.As(r.err, &f) {
		return f, true
	}
	return nil, false
}

// Index is the submission index of the task that produced r.
func (r Result[T]) Index() int {
	return r.index
}

// Duration is how long the task ran.
func (r Result[T]) Duration() time.Duration {
	return r.duration
}

func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result[T]) Id() uuid.UUID {
	return r.id
}
