package fanout

import "errors"

const Namespace = "fanout"

var (
	ErrNilTarget = errors.New(Namespace + ": target queue is nil")
	ErrNilSource = errors.New(Namespace + ": source is nil")

	ErrNilTransform = errors.New(Namespace + ": transform function is nil")
	ErrNilHandler   = errors.New(Namespace + ": handler function is nil")

	ErrInvalidConcurrency = errors.New(
		Namespace + ": max concurrency must be at least 1",
	)
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")

	ErrTargetCompleted = errors.New(
		Namespace + ": target queue is already completed",
	)
	ErrTaskPanicked = errors.New(Namespace + ": item production panicked")
)
