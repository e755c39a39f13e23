// Package future provides deferred asynchronous values.
//
// A Future[T] is produced by running a function on its own goroutine and
// settles exactly once with a value or an error. Settlement is broadcast via
// a closed channel, so any number of goroutines may await the same future.
package future

import "context"

// Future represents the eventual result of an asynchronous operation.
// It settles exactly once; awaiting after settlement returns immediately.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// New runs fn on a new goroutine and returns a Future that settles with
// fn's result.
func New[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = fn()
	}()
	return f
}

// Resolved returns a future already settled with v.
func Resolved[T any](v T) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), value: v}
	close(f.done)
	return f
}

// Rejected returns a future already settled with err.
func Rejected[T any](err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Await blocks until the future settles or ctx is done, whichever happens
// first. A context error abandons the wait; the underlying operation keeps
// running and the future may still settle later.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Wait blocks until the future settles.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.value, f.err
}

// Settled returns a channel that is closed once the future has settled.
func (f *Future[T]) Settled() <-chan struct{} {
	return f.done
}

// Bind applies fn to the result of f, producing a new future.
// Errors short-circuit: if f fails, fn is not invoked.
func Bind[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	return New(func() (U, error) {
		v, err := f.Wait()
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v)
	})
}

// Then is Bind for functions that cannot fail.
func Then[T, U any](f *Future[T], fn func(T) U) *Future[U] {
	return Bind(f, func(v T) (U, error) {
		return fn(v), nil
	})
}
