package fanout

import (
	"context"
	"iter"
	"time"

	"github.com/ygrebnov/fanout/queue"
)

// WriteAll drains source into target using up to the configured number of
// concurrent workers and returns the number of items written.
//
// Semantics:
//   - Arguments are validated synchronously; no work starts on failure.
//   - If ctx is already canceled, WriteAll returns (0, cause) without
//     touching the target, even when WithComplete is set.
//   - If target is already completed, WriteAll fails with
//     ErrTargetCompleted before consuming anything from the source.
//   - With MaxConcurrency 1 the source order is preserved exactly. Above 1,
//     each item is written exactly once but the relative order of different
//     workers' writes is unspecified.
//   - Writes take the non-blocking fast path when the target has room and
//     suspend on a full target otherwise, bounded by ctx.
//   - The first worker fault stops the remaining workers from taking new
//     items; items already in flight complete. The aggregate error is that
//     first fault; sibling cancellations are subsumed.
//   - With WithComplete, the target is completed when all workers have
//     stopped, carrying the aggregate error as the terminal fault.
//
// The returned count is a 64-bit sum across workers; sequences long enough
// to overflow it are not supported.
func WriteAll[T any](
	ctx context.Context, target queue.Queue[T], source iter.Seq[Task[T]], opts ...Option,
) (int64, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return 0, err
	}
	if target == nil {
		return 0, ErrNilTarget
	}
	if source == nil {
		return 0, ErrNilSource
	}
	if ctx.Err() != nil {
		return 0, context.Cause(ctx)
	}
	select {
	case <-target.Done():
		return 0, ErrTargetCompleted
	default:
	}

	m := newMeters(cfg.metrics)

	var total int64
	if cfg.maxConcurrency == 1 {
		total, err = writeAllSequential(ctx, target, source, m)
	} else {
		cur := newCursor(source)
		defer cur.close()

		f := newFault()
		total, err = runPool(cfg.maxConcurrency, f, func() outcome {
			return writeLoop(ctx, target, cur, f, m)
		})
	}

	if cfg.complete {
		target.Complete(err)
	}
	return total, err
}

// writeAllSequential is the MaxConcurrency == 1 path: one straightforward
// ordered loop, no shared cursor, no fault signal.
func writeAllSequential[T any](
	ctx context.Context, target queue.Queue[T], source iter.Seq[Task[T]], m *meters,
) (int64, error) {
	m.workers.Add(1)
	defer m.workers.Add(-1)

	var n int64
	for t := range source {
		if ctx.Err() != nil {
			return n, context.Cause(ctx)
		}
		v, err := protect(ctx, t)
		if err != nil {
			if ctx.Err() != nil {
				return n, context.Cause(ctx)
			}
			m.faults.Add(1)
			return n, err
		}
		if err := writeOne(ctx, target, v, m); err != nil {
			if ctx.Err() != nil {
				return n, context.Cause(ctx)
			}
			m.faults.Add(1)
			return n, err
		}
		n++
		m.items.Add(1)
	}
	return n, nil
}

// writeLoop is a single fan-out worker: advance the shared cursor, await
// production, write, repeat. It exits on exhaustion (success), on its own
// fault (after tripping the signal), or on observing cancellation or a
// sibling's fault.
func writeLoop[T any](
	ctx context.Context, target queue.Queue[T], cur *cursor[T], f *fault, m *meters,
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

		t, ok := cur.tryAdvance()
		if !ok {
			// Own exhaustion is a success even if a sibling faulted at the
			// same moment.
			return outcome{n: n}
		}

		v, err := protect(ctx, t)
		if err != nil {
			if ctx.Err() != nil {
				return outcome{n: n, err: context.Cause(ctx), canceled: true}
			}
			f.trip(err)
			m.faults.Add(1)
			return outcome{n: n, err: err}
		}

		if err := writeOne(ctx, target, v, m); err != nil {
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

// writeOne writes v to target: the non-blocking attempt first, then the
// blocking write when the target is full.
func writeOne[T any](ctx context.Context, target queue.Queue[T], v T, m *meters) error {
	ok, err := target.TryWrite(v)
	if err != nil || ok {
		return err
	}
	defer m.observeWait(time.Now())
	return target.Write(ctx, v)
}
