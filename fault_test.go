package fanout

import (
	"errors"
	"sync"
	"testing"
)

func TestFault_FirstTripWins(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	f := newFault()
	if f.tripped() {
		t.Fatal("fresh fault signal must not be tripped")
	}
	if f.cause() != nil {
		t.Fatal("fresh fault signal must have nil cause")
	}

	f.trip(first)
	f.trip(second)

	if !f.tripped() {
		t.Fatal("signal must be tripped after trip")
	}
	if !errors.Is(f.cause(), first) {
		t.Fatalf("cause = %v, want %v", f.cause(), first)
	}
}

func TestFault_ConcurrentTripsSingleCause(t *testing.T) {
	f := newFault()
	errs := make([]error, 16)
	for i := range errs {
		errs[i] = errors.New("e")
	}

	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(err error) {
			defer wg.Done()
			f.trip(err)
		}(errs[i])
	}
	wg.Wait()

	cause := f.cause()
	found := false
	for _, err := range errs {
		if cause == err {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("cause %v is not one of the tripped errors", cause)
	}
}

func TestFault_OnTripRunsOnce(t *testing.T) {
	calls := 0
	f := newFault()
	f.onTrip = func(error) { calls++ }

	f.trip(errors.New("a"))
	f.trip(errors.New("b"))

	if calls != 1 {
		t.Fatalf("onTrip ran %d times, want 1", calls)
	}
}
