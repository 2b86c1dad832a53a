package fanout

import (
	"context"

	"github.com/ygrebnov/fanout/queue"
)

// ForEach applies fn to each item read from source using up to the
// configured number of concurrent workers, and returns the number of items
// handled.
//
// Semantics:
//   - ForEach blocks until the source is exhausted, a fault occurs, or ctx
//     is canceled.
//   - The first fn error (or source terminal fault) stops the remaining
//     workers from taking new items and becomes the returned error; items
//     already taken still complete.
//   - A source completed with a terminal fault yields that fault.
//   - ForEach never completes the source; it is a pure consumer.
func ForEach[T any](
	ctx context.Context,
	source queue.Queue[T],
	fn func(context.Context, T) error,
	opts ...Option,
) (int64, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return 0, err
	}
	if source == nil {
		return 0, ErrNilSource
	}
	if fn == nil {
		return 0, ErrNilHandler
	}
	if ctx.Err() != nil {
		return 0, context.Cause(ctx)
	}

	m := newMeters(cfg.metrics)

	readCtx, stopReads := context.WithCancelCause(ctx)
	defer stopReads(nil)

	f := newFault()
	f.onTrip = stopReads

	return runPool(cfg.maxConcurrency, f, func() outcome {
		return readLoop(ctx, readCtx, source, f, m, fn)
	})
}
