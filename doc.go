// Package fanout provides concurrency-coordination primitives for moving
// items through completable queues under controlled parallelism.
//
// Operations
//   - WriteAll: drains a shared sequence of asynchronously produced items
//     into a target queue using a configurable number of concurrent workers.
//   - Pipe: reads from a source queue, applies a transform concurrently, and
//     writes results into a newly created output queue. Stages compose by
//     feeding one stage's output queue as the next stage's source.
//   - PipeTo: sequentially bridges two queues without a transform.
//   - ForEach, ReadAll, Drain: terminal consumers of a queue.
//
// Defaults
// Unless overridden via options, each operation runs with:
//   - MaxConcurrency: 1 (strict source order is preserved)
//   - Complete: false (the target queue is left open)
//   - Capacity: 1024 for queues created by Pipe
//   - Metrics: discarded (metrics.NewNoopProvider)
//
// Concurrency
// With MaxConcurrency 1 an operation is strictly sequential end to end.
// Above 1, each source item is delivered to exactly one worker exactly once,
// but the order in which different workers' writes land in the target is
// unspecified. On the first worker fault the remaining workers stop taking
// new items; items already in flight still complete. The aggregate outcome
// is the first fault if any worker faulted, cancellation if the caller's
// context was canceled and no fault superseded it, and the summed item
// count otherwise.
//
// Completion
// When an operation completes a downstream queue, the aggregate error (if
// any) is attached as the queue's terminal fault, so downstream readers
// observe the failure rather than silent truncation. Completing an already
// completed queue is a no-op.
package fanout
