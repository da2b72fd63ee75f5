package flow

import (
	"errors"
)

// Values returns the value of every result, using the zero value for
// failed slots, so the output stays index-aligned.
func Values[T any](results []Result[T]) []T {
	out := make([]T, len(results))
	for i, r := range results {
		out[i] = r.Value()
	}
	return out
}

// Failures returns the captured failures in submission order.
func Failures[T any](results []Result[T]) []*TaskFailure {
	var out []*TaskFailure
	for _, r := range results {
		if f, ok := r.Failure(); ok {
			out = append(out, f)
		}
	}
	return out
}

// Errors joins every failure into one error, or returns nil.
func Errors[T any](results []Result[T]) error {
	var errs []error
	for _, r := range results {
		if r.IsFailure() {
			errs = append(errs, r.Err())
		}
	}
	return errors.Join(errs...)
}

// OK reports whether every result is a success.
func OK[T any](results []Result[T]) bool {
	for _, r := range results {
		if !r.IsSuccess() {
			return false
		}
	}
	return true
}

// Finally reduces a result to a single value.
func Finally[T, Out any](r WithError[T],
	onSuccess func(v T) Out,
	onError func(err error) Out) Out {

	if r.IsSuccess() {
		return onSuccess(r.Value())
	}
	return onError(r.Err())
}
