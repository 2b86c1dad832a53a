// Package queue provides a completable FIFO queue with bounded or unbounded
// capacity, safe for concurrent producers and consumers.
//
// A queue moves through a one-way lifecycle: open (accepts writes) ->
// completed (rejects writes, drains the remaining buffer) -> drained
// (reads surface the terminal error). Completion optionally carries a
// terminal fault which readers observe once the buffer is exhausted, so a
// producer failure is never reduced to silent truncation.
//
// Constructors
//   - NewBounded: capacity-limited queue; writes block (or fail the
//     non-blocking attempt) while the buffer is full.
//   - NewUnbounded: no capacity limit; writes never block.
//
// Blocking operations take a context and unblock promptly when it is
// canceled, returning the cancellation cause.
package queue

import (
	"context"
	"errors"
)

const Namespace = "queue"

// ErrCompleted is returned by writes after Complete, and by reads once a
// cleanly completed queue has been drained.
var ErrCompleted = errors.New(Namespace + ": queue is completed")

// Queue is an asynchronous FIFO with an explicit completion signal.
// Implementations are safe for concurrent use by multiple producers and
// consumers.
type Queue[T any] interface {
	// TryWrite attempts to enqueue v without blocking.
	// Returns (true, nil) if v was enqueued, (false, nil) if the attempt
	// would block, and (false, ErrCompleted) if the queue is completed.
	TryWrite(v T) (bool, error)

	// Write enqueues v, blocking while the queue is at capacity.
	// Returns ErrCompleted if the queue is (or becomes) completed, or the
	// context cause if ctx is canceled while waiting.
	Write(ctx context.Context, v T) error

	// TryRead attempts to dequeue without blocking.
	// Returns (v, true, nil) on success and (zero, false, nil) if the queue
	// is open but empty. Once the queue is completed and drained it returns
	// the terminal fault, or ErrCompleted when completed cleanly.
	TryRead() (T, bool, error)

	// Read dequeues the next item, blocking while the queue is empty.
	// Termination mirrors TryRead; cancellation returns the context cause.
	Read(ctx context.Context) (T, error)

	// Complete transitions the queue to completed, optionally recording err
	// as the terminal fault. Buffered items remain readable. Complete
	// reports whether this call performed the transition; completing an
	// already completed queue is a no-op, never an error.
	Complete(err error) bool

	// Done returns a channel closed when the queue is completed.
	Done() <-chan struct{}

	// Err returns the terminal fault, or nil before completion and after a
	// clean completion.
	Err() error

	// Len returns the number of buffered items.
	Len() int

	// Cap returns the capacity; zero means unbounded.
	Cap() int
}
