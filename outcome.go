package fanout

import "sync"

// outcome is a worker's terminal report. Cancellation and faults are
// carried as values rather than unwinding, so the join step can decide the
// aggregate deterministically after every worker has stopped.
//
// A worker that faulted has err set and canceled false. A worker that
// stopped because it observed the shared fault signal or the caller's
// cancellation has canceled true. A worker whose own advance reported
// exhaustion is a success even if a sibling faulted at the same moment.
type outcome struct {
	n        int64
	err      error
	canceled bool
}

// join folds worker outcomes into the aggregate operation result.
// Precedence: the first fault (the one that tripped the signal) wins over
// cancellation, and cancellation wins over the summed count.
func join(outcomes []outcome, f *fault) (int64, error) {
	var total int64
	var cancelCause error
	for _, o := range outcomes {
		total += o.n
		if o.canceled && cancelCause == nil {
			cancelCause = o.err
		}
	}
	if f.tripped() {
		return total, f.cause()
	}
	if cancelCause != nil {
		return total, cancelCause
	}
	return total, nil
}

// runPool spawns exactly k workers running body and joins their outcomes
// once all of them have stopped. Each worker writes its outcome into its
// own slot; no other state is shared beyond the fault signal.
func runPool(k int, f *fault, body func() outcome) (int64, error) {
	outcomes := make([]outcome, k)

	var wg sync.WaitGroup
	for i := range outcomes {
		wg.Add(1)
		go func(slot *outcome) {
			defer wg.Done()
			*slot = body()
		}(&outcomes[i])
	}
	wg.Wait()

	return join(outcomes, f)
}
