package queue

import (
	"context"
	"sync"
)

// completable is the single implementation behind NewBounded and
// NewUnbounded; capacity == 0 means unbounded.
//
// Waiters park on a broadcast channel that is closed and replaced under the
// mutex on every state change (item added, item removed, completion). A
// woken waiter re-checks state in a loop, so wakeups cannot be lost with
// multiple producers and consumers.
type completable[T any] struct {
	capacity       int
	singleConsumer bool

	mu    sync.Mutex
	buf   []T // ring storage
	head  int
	count int

	wake chan struct{} // closed+replaced on every state change
	done chan struct{} // closed once on Complete

	completed bool
	err       error
}

// NewBounded creates a queue holding at most capacity items.
// It panics if capacity is not positive; use NewUnbounded for no limit.
func NewBounded[T any](capacity int, opts ...Option) Queue[T] {
	if capacity < 1 {
		panic(Namespace + ": capacity must be positive")
	}
	return newCompletable[T](capacity, opts)
}

// NewUnbounded creates a queue without a capacity limit. Writes never block.
func NewUnbounded[T any](opts ...Option) Queue[T] {
	return newCompletable[T](0, opts)
}

func newCompletable[T any](capacity int, opts []Option) *completable[T] {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &completable[T]{
		capacity:       capacity,
		singleConsumer: cfg.singleConsumer,
		wake:           make(chan struct{}),
		done:           make(chan struct{}),
	}
}

func (q *completable[T]) TryWrite(v T) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.completed {
		return false, ErrCompleted
	}
	if q.capacity > 0 && q.count >= q.capacity {
		return false, nil
	}
	q.pushLocked(v)
	q.notifyLocked()
	return true, nil
}

func (q *completable[T]) Write(ctx context.Context, v T) error {
	for {
		q.mu.Lock()
		if q.completed {
			q.mu.Unlock()
			return ErrCompleted
		}
		if q.capacity == 0 || q.count < q.capacity {
			q.pushLocked(v)
			q.notifyLocked()
			q.mu.Unlock()
			return nil
		}
		wake := q.wake
		q.mu.Unlock()

		select {
		case <-wake:
		case <-ctx.Done():
			return context.Cause(ctx)
		}
	}
}

func (q *completable[T]) TryRead() (T, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.tryReadLocked()
}

func (q *completable[T]) Read(ctx context.Context) (T, error) {
	for {
		q.mu.Lock()
		v, ok, err := q.tryReadLocked()
		if ok || err != nil {
			q.mu.Unlock()
			return v, err
		}
		wake := q.wake
		q.mu.Unlock()

		select {
		case <-wake:
		case <-ctx.Done():
			var zero T
			return zero, context.Cause(ctx)
		}
	}
}

func (q *completable[T]) tryReadLocked() (T, bool, error) {
	var zero T
	if q.count > 0 {
		v := q.popLocked()
		q.notifyLocked()
		return v, true, nil
	}
	if q.completed {
		if q.err != nil {
			return zero, false, q.err
		}
		return zero, false, ErrCompleted
	}
	return zero, false, nil
}

func (q *completable[T]) Complete(err error) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.completed {
		return false
	}
	q.completed = true
	q.err = err
	q.notifyLocked()
	close(q.done)
	return true
}

func (q *completable[T]) Done() <-chan struct{} { return q.done }

func (q *completable[T]) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.completed {
		return nil
	}
	return q.err
}

func (q *completable[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

func (q *completable[T]) Cap() int { return q.capacity }

// notifyLocked wakes every parked reader and writer. Callers hold q.mu.
func (q *completable[T]) notifyLocked() {
	close(q.wake)
	q.wake = make(chan struct{})
}

func (q *completable[T]) pushLocked(v T) {
	if q.count == len(q.buf) {
		q.growLocked()
	}
	q.buf[(q.head+q.count)%len(q.buf)] = v
	q.count++
}

func (q *completable[T]) popLocked() T {
	var zero T
	v := q.buf[q.head]
	q.buf[q.head] = zero // release the reference
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return v
}

// growLocked doubles the ring storage, bounded below by a small initial
// size. Bounded queues grow the same way; capacity is enforced by the
// callers, not by the storage.
func (q *completable[T]) growLocked() {
	n := len(q.buf) * 2
	if n == 0 {
		n = 8
	}
	if q.capacity > 0 && n > q.capacity {
		n = q.capacity
	}
	next := make([]T, n)
	for i := 0; i < q.count; i++ {
		next[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = next
	q.head = 0
}
