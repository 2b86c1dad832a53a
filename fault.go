package fanout

import "sync"

// fault is the write-once signal shared by a pool of sibling workers.
// The first worker to fail trips it; siblings observe it at the top of
// their loop and stop taking new items. It is never cleared, and its
// lifetime is the single operation that created it.
type fault struct {
	once  sync.Once
	err   error
	fired chan struct{}

	// onTrip, when set, runs once inside trip. Used to cancel blocking
	// reads held by siblings that are waiting for a new item; blocked
	// writes are in flight and are left to finish.
	onTrip func(error)
}

func newFault() *fault {
	return &fault{fired: make(chan struct{})}
}

// trip records err and signals siblings. Only the first call wins.
func (f *fault) trip(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.fired)
		if f.onTrip != nil {
			f.onTrip(err)
		}
	})
}

func (f *fault) tripped() bool {
	select {
	case <-f.fired:
		return true
	default:
		return false
	}
}

// cause returns the recorded error, or nil if the signal never fired.
func (f *fault) cause() error {
	if !f.tripped() {
		return nil
	}
	return f.err
}
