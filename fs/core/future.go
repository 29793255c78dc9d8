package core

import "context"

// Future is a deferred result: it settles exactly once with either a value
// or an error. A nil *Future is never returned for mandatory operations; the
// optional Stat uses nil to signal that the host has no stat support.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) settle(value T, err error) {
	f.value, f.err = value, err
	close(f.done)
}

// Settle returns a future already settled with value and err.
// It is the usual way for a synchronous host to wrap a blocking call:
//
//	return core.Settle(storage.ReadFile(p))
func Settle[T any](value T, err error) *Future[T] {
	f := newFuture[T]()
	f.settle(value, err)
	return f
}

// Resolved returns a future already settled with value.
func Resolved[T any](value T) *Future[T] {
	return Settle(value, nil)
}

// Failed returns a future already settled with err.
func Failed[T any](err error) *Future[T] {
	var zero T
	return Settle(zero, err)
}

// Go runs fn on a new goroutine and returns a future settled with its result.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	go func() {
		f.settle(fn())
	}()
	return f
}

// Done returns a channel that is closed once the future has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether the future has settled.
func (f *Future[T]) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// TryGet returns the outcome without blocking. settled is false if the
// future has not settled yet, in which case value and err are zero.
func (f *Future[T]) TryGet() (value T, settled bool, err error) {
	if !f.Settled() {
		return value, false, nil
	}
	return f.value, true, f.err
}

// Wait blocks until the future settles and returns its outcome.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.value, f.err
}

// Await blocks until the future settles or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then maps the value of f through fn. Errors from f skip fn and pass
// through unchanged. If f has already settled, fn runs before Then returns,
// so synchronous hosts stay synchronous.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	if f.Settled() {
		if f.err != nil {
			return Failed[U](f.err)
		}
		return Settle(fn(f.value))
	}
	return Go(func() (U, error) {
		v, err := f.Wait()
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v)
	})
}

// Recover replaces a failure of f with the result of fn. Successful values
// pass through unchanged. Like Then, it runs inline when f has settled.
func Recover[T any](f *Future[T], fn func(error) (T, error)) *Future[T] {
	if f.Settled() {
		if f.err != nil {
			return Settle(fn(f.err))
		}
		return f
	}
	return Go(func() (T, error) {
		v, err := f.Wait()
		if err != nil {
			return fn(err)
		}
		return v, nil
	})
}
