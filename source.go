package fanout

import "iter"

// FromSlice lifts a slice of plain values into a sequence of resolved tasks.
func FromSlice[T any](items []T) iter.Seq[Task[T]] {
	return func(yield func(Task[T]) bool) {
		for _, v := range items {
			if !yield(TaskValue(v)) {
				return
			}
		}
	}
}

// FromTasks lifts a slice of tasks into a sequence.
func FromTasks[T any](tasks []Task[T]) iter.Seq[Task[T]] {
	return func(yield func(Task[T]) bool) {
		for _, t := range tasks {
			if !yield(t) {
				return
			}
		}
	}
}

// FromChan lifts a channel into a sequence of resolved tasks. The sequence
// is exhausted when ch is closed.
func FromChan[T any](ch <-chan T) iter.Seq[Task[T]] {
	return func(yield func(Task[T]) bool) {
		for v := range ch {
			if !yield(TaskValue(v)) {
				return
			}
		}
	}
}
