package fanout

import (
	"context"
	"fmt"
)

// Task is the canonical shape of an asynchronously produced item: a function
// that yields the value when called, possibly suspending on the context.
// A Task may already be resolved (see TaskValue) or may perform real work.
type Task[T any] func(context.Context) (T, error)

// TaskFunc adapts func(ctx) (T, error) to Task[T].
func TaskFunc[T any](fn func(context.Context) (T, error)) Task[T] { return Task[T](fn) }

// TaskValue returns an already-resolved Task yielding v.
func TaskValue[T any](v T) Task[T] {
	return func(context.Context) (T, error) { return v, nil }
}

// protect invokes t with panic recovery. A panic inside production code is
// converted into an ErrTaskPanicked-wrapped error instead of tearing down
// the whole worker pool.
func protect[T any](ctx context.Context, t Task[T]) (result T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, p)
		}
	}()
	return t(ctx)
}

// protect2 is protect for two-argument transforms.
func protect2[In, Out any](
	ctx context.Context, fn func(context.Context, In) (Out, error), v In,
) (result Out, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, p)
		}
	}()
	return fn(ctx, v)
}
