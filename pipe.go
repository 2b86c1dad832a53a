package fanout

import (
	"context"
	"errors"

	"github.com/ygrebnov/fanout/queue"
)

// Pipe reads from source, applies transform with up to the configured
// number of concurrent workers, and writes results into a newly created
// output queue.
//
// Semantics:
//   - The output queue is constructed (per WithCapacity and
//     WithSingleConsumer) and returned immediately; callers may begin
//     reading before any item has been produced. A non-nil error is
//     returned only for immediate validation failures.
//   - The source queue's own synchronization serializes concurrent reads,
//     so no extra locking is introduced around them.
//   - With MaxConcurrency 1 the output preserves the source order; above 1
//     it does not.
//   - The output queue is always completed: on source exhaustion with a nil
//     terminal fault, and on a worker fault, a source terminal fault, or
//     cancellation with that error attached, so downstream stages observe
//     the same failure.
//
// Stages compose by feeding one stage's output queue as the next stage's
// source.
func Pipe[In, Out any](
	ctx context.Context,
	source queue.Queue[In],
	transform func(context.Context, In) (Out, error),
	opts ...Option,
) (queue.Queue[Out], error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, ErrNilSource
	}
	if transform == nil {
		return nil, ErrNilTransform
	}

	out := newStageQueue[Out](cfg)
	m := newMeters(cfg.metrics)

	go func() {
		readCtx, stopReads := context.WithCancelCause(ctx)
		defer stopReads(nil)

		f := newFault()
		f.onTrip = stopReads

		_, err := runPool(cfg.maxConcurrency, f, func() outcome {
			return readLoop(ctx, readCtx, source, f, m, func(ctx context.Context, v In) error {
				res, terr := protect2(ctx, transform, v)
				if terr != nil {
					return terr
				}
				return writeOne(ctx, out, res, m)
			})
		})
		out.Complete(err)
	}()

	return out, nil
}

// PipeTo sequentially drains source into target, bridging two differently
// buffered queues without a transform. With WithComplete, target is
// completed when source is exhausted or a read/write error occurs, carrying
// that error. It returns the number of items moved.
func PipeTo[T any](
	ctx context.Context, source, target queue.Queue[T], opts ...Option,
) (int64, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return 0, err
	}
	if source == nil {
		return 0, ErrNilSource
	}
	if target == nil {
		return 0, ErrNilTarget
	}
	if ctx.Err() != nil {
		// No side effects on the target, even with WithComplete.
		return 0, context.Cause(ctx)
	}

	m := newMeters(cfg.metrics)

	var n int64
	var moveErr error
	for {
		if ctx.Err() != nil {
			moveErr = context.Cause(ctx)
			break
		}
		v, err := source.Read(ctx)
		if err != nil {
			if !errors.Is(err, queue.ErrCompleted) {
				moveErr = err
			}
			break
		}
		if err := writeOne(ctx, target, v, m); err != nil {
			moveErr = err
			break
		}
		n++
		m.items.Add(1)
	}

	if cfg.complete {
		target.Complete(moveErr)
	}
	return n, moveErr
}

// newStageQueue constructs the output queue for a pipe stage.
func newStageQueue[T any](cfg config) queue.Queue[T] {
	var qopts []queue.Option
	if cfg.singleConsumer {
		qopts = append(qopts, queue.WithSingleConsumer())
	}
	if cfg.capacity == 0 {
		return queue.NewUnbounded[T](qopts...)
	}
	return queue.NewBounded[T](cfg.capacity, qopts...)
}

// readLoop is a single fan-out reader: read from the source queue, hand the
// item to handle, repeat. Exhaustion of a cleanly completed source is a
// success; a source terminal fault is propagated as this worker's fault.
//
// Reads wait on readCtx, which the fault signal cancels, so a worker parked
// on an empty source stops promptly after a sibling fails. The item handler
// runs under the caller's ctx: an item already taken is in flight and is
// allowed to finish.
func readLoop[T any](
	ctx, readCtx context.Context,
	source queue.Queue[T],
	f *fault,
	m *meters,
	handle func(context.Context, T) error,
) outcome {
	m.workers.Add(1)
	defer m.workers.Add(-1)

	var n int64
	for {
		if ctx.Err() != nil {
			return outcome{n: n, err: context.Cause(ctx), canceled: true}
		}
		if f.tripped() {
			return outcome{n: n, canceled: true}
		}

		v, err := source.Read(readCtx)
		if err != nil {
			if errors.Is(err, queue.ErrCompleted) {
				return outcome{n: n}
			}
			if f.tripped() {
				return outcome{n: n, canceled: true}
			}
			if ctx.Err() != nil {
				return outcome{n: n, err: context.Cause(ctx), canceled: true}
			}
			f.trip(err)
			m.faults.Add(1)
			return outcome{n: n, err: err}
		}

		if err := handle(ctx, v); err != nil {
			if ctx.Err() != nil {
				return outcome{n: n, err: context.Cause(ctx), canceled: true}
			}
			f.trip(err)
			m.faults.Add(1)
			return outcome{n: n, err: err}
		}
		n++
		m.items.Add(1)
	}
}
