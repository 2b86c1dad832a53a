package fanout

import (
	"iter"
	"sync"
)

// cursor serializes advancement of a shared sequence so that each item is
// handed to exactly one of the concurrent workers pulling from it.
//
// The mutex guards only the act of advancing; the yielded task is owned
// exclusively by the worker that retrieved it. Assignment of items to
// workers is first come, first served under the lock; production order
// follows the underlying sequence.
type cursor[T any] struct {
	mu   sync.Mutex
	next func() (Task[T], bool)
	stop func()
	done bool
}

func newCursor[T any](src iter.Seq[Task[T]]) *cursor[T] {
	next, stop := iter.Pull(src)
	return &cursor[T]{next: next, stop: stop}
}

// tryAdvance yields the next task to exactly one caller. Once the sequence
// reports exhaustion, all subsequent calls observe exhaustion.
func (c *cursor[T]) tryAdvance() (Task[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done {
		return nil, false
	}
	t, ok := c.next()
	if !ok {
		c.done = true
		c.stop()
	}
	return t, ok
}

// close releases the underlying iterator without consuming it; used when
// workers abandon the sequence early. Idempotent.
func (c *cursor[T]) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.done {
		c.done = true
		c.stop()
	}
}
