package fanout

import (
	"context"
	"errors"

	"github.com/ygrebnov/fanout/queue"
)

// ReadAll drains source into a slice, returning the items read so far and
// the source's terminal fault if it completed with one. A cleanly completed
// source yields a nil error.
func ReadAll[T any](ctx context.Context, source queue.Queue[T]) ([]T, error) {
	if source == nil {
		return nil, ErrNilSource
	}

	var items []T
	for {
		v, err := source.Read(ctx)
		if err != nil {
			if errors.Is(err, queue.ErrCompleted) {
				return items, nil
			}
			return items, err
		}
		items = append(items, v)
	}
}

// Drain reads and discards items from source until it is exhausted,
// returning the number of items discarded. Error semantics match ReadAll.
func Drain[T any](ctx context.Context, source queue.Queue[T]) (int64, error) {
	if source == nil {
		return 0, ErrNilSource
	}

	var n int64
	for {
		_, err := source.Read(ctx)
		if err != nil {
			if errors.Is(err, queue.ErrCompleted) {
				return n, nil
			}
			return n, err
		}
		n++
	}
}
