package flow

import (
	"context"
	"fmt"
	"maps"
)

// TaskFunc adapts a function to Task.
type TaskFunc[T any] func(ctx context.Context) (T, error)

func (f TaskFunc[T]) Invoke(ctx context.Context) (T, error) {
	return f(ctx)
}

// Call0 binds fn for deferred execution. A nil fn yields a nil task, which
// AddTask rejects.
func Call0[T any](fn func() T) TaskFunc[T] {
	if fn == nil {
		return nil
	}
	return func(context.Context) (T, error) {
		return fn(), nil
	}
}

func Call1[A, T any](fn func(A) T, a A) TaskFunc[T] {
	if fn == nil {
		return nil
	}
	return func(context.Context) (T, error) {
		return fn(a), nil
	}
}

func Call2[A, B, T any](fn func(A, B) T, a A, b B) TaskFunc[T] {
	if fn == nil {
		return nil
	}
	return func(context.Context) (T, error) {
		return fn(a, b), nil
	}
}

func Call3[A, B, C, T any](fn func(A, B, C) T, a A, b B, c C) TaskFunc[T] {
	if fn == nil {
		return nil
	}
	return func(context.Context) (T, error) {
		return fn(a, b, c), nil
	}
}

// Try0 binds a function that may fail.
func Try0[T any](fn func() (T, error)) TaskFunc[T] {
	if fn == nil {
		return nil
	}
	return func(context.Context) (T, error) {
		return fn()
	}
}

func Try1[A, T any](fn func(A) (T, error), a A) TaskFunc[T] {
	if fn == nil {
		return nil
	}
	return func(context.Context) (T, error) {
		return fn(a)
	}
}

func Try2[A, B, T any](fn func(A, B) (T, error), a A, b B) TaskFunc[T] {
	if fn == nil {
		return nil
	}
	return func(context.Context) (T, error) {
		return fn(a, b)
	}
}

func Try3[A, B, C, T any](fn func(A, B, C) (T, error), a A, b B, c C) TaskFunc[T] {
	if fn == nil {
		return nil
	}
	return func(context.Context) (T, error) {
		return fn(a, b, c)
	}
}

// Args holds positional and keyword arguments for a bound task.
type Args struct {
	Positional []any
	Keyword    map[string]any
}

// Arg returns the i-th positional argument, or nil if out of range.
func (a Args) Arg(i int) any {
	if i < 0 || i >= len(a.Positional) {
		return nil
	}
	return a.Positional[i]
}

// Get returns a keyword argument.
func (a Args) Get(key string) (any, bool) {
	v, ok := a.Keyword[key]
	return v, ok
}

func (a Args) clone() Args {
	return Args{
		Positional: append([]any(nil), a.Positional...),
		Keyword:    maps.Clone(a.Keyword),
	}
}

// ArgAs returns the i-th positional argument as V.
func ArgAs[V any](a Args, i int) (V, error) {
	var zero V
	raw := a.Arg(i)
	v, ok := raw.(V)
	if !ok {
		return zero, fmt.Errorf("argument %d: want %T, got %T", i, zero, raw)
	}
	return v, nil
}

// KeywordAs returns the keyword argument key as V.
func KeywordAs[V any](a Args, key string) (V, error) {
	var zero V
	raw, ok := a.Get(key)
	if !ok {
		return zero, fmt.Errorf("missing keyword argument %q", key)
	}
	v, ok := raw.(V)
	if !ok {
		return zero, fmt.Errorf("keyword %q: want %T, got %T", key, zero, raw)
	}
	return v, nil
}

// BoundTask is a function bound to a copy of its arguments.
type BoundTask[T any] struct {
	fn   func(ctx context.Context, args Args) (T, error)
	args Args
}

// Bind binds fn to positional arguments. Use WithKeyword to add keyword
// arguments. A nil fn yields a nil task.
func Bind[T any](fn func(ctx context.Context, args Args) (T, error), positional ...any) *BoundTask[T] {
	return BindArgs(fn, Args{Positional: positional})
}

// BindArgs binds fn to a copy of args.
func BindArgs[T any](fn func(ctx context.Context, args Args) (T, error), args Args) *BoundTask[T] {
	if fn == nil {
		return nil
	}
	return &BoundTask[T]{fn: fn, args: args.clone()}
}

// WithKeyword returns a copy of b with key set.
func (b *BoundTask[T]) WithKeyword(key string, value any) *BoundTask[T] {
	if b == nil {
		return nil
	}
	args := b.args.clone()
	if args.Keyword == nil {
		args.Keyword = make(map[string]any)
	}
	args.Keyword[key] = value
	return &BoundTask[T]{fn: b.fn, args: args}
}

// Args returns a copy of the bound arguments.
func (b *BoundTask[T]) Args() Args {
	if b == nil {
		return Args{}
	}
	return b.args.clone()
}

func (b *BoundTask[T]) Invoke(ctx context.Context) (T, error) {
	return b.fn(ctx, b.args.clone())
}

// TaskUnit is a task registered with a Process together with its
// submission index.
type TaskUnit[T any] struct {
	Index int
	Name  string
	Task  Task[T]
}
