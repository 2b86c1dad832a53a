package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBounded_FIFO(t *testing.T) {
	q := NewBounded[int](8)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, q.Write(ctx, i))
	}
	require.Equal(t, 5, q.Len())

	for i := 1; i <= 5; i++ {
		v, err := q.Read(ctx)
		require.NoError(t, err)
		require.Equal(t, i, v)
	}
	require.Equal(t, 0, q.Len())
}

func TestBounded_TryWrite_TriState(t *testing.T) {
	q := NewBounded[string](1)

	ok, err := q.TryWrite("a")
	require.True(t, ok)
	require.NoError(t, err)

	// full
	ok, err = q.TryWrite("b")
	require.False(t, ok)
	require.NoError(t, err)

	q.Complete(nil)

	ok, err = q.TryWrite("c")
	require.False(t, ok)
	require.ErrorIs(t, err, ErrCompleted)
}

func TestBounded_TryRead(t *testing.T) {
	q := NewBounded[int](4)

	_, ok, err := q.TryRead()
	require.False(t, ok)
	require.NoError(t, err)

	_, _ = q.TryWrite(42)
	v, ok, err := q.TryRead()
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, 42, v)

	q.Complete(nil)
	_, ok, err = q.TryRead()
	require.False(t, ok)
	require.ErrorIs(t, err, ErrCompleted)
}

func TestBounded_CompleteDrainsBufferThenSignalsExhaustion(t *testing.T) {
	q := NewBounded[int](4)
	ctx := context.Background()

	require.NoError(t, q.Write(ctx, 1))
	require.NoError(t, q.Write(ctx, 2))
	q.Complete(nil)

	v, err := q.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, v)
	v, err = q.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, v)

	_, err = q.Read(ctx)
	require.ErrorIs(t, err, ErrCompleted)
}

func TestBounded_TerminalFaultSurfacesAfterDrain(t *testing.T) {
	boom := errors.New("boom")
	q := NewBounded[int](4)
	ctx := context.Background()

	_, _ = q.TryWrite(7)
	q.Complete(boom)

	v, err := q.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, 7, v)

	_, err = q.Read(ctx)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, q.Err(), boom)
}

func TestBounded_CompleteIsIdempotent(t *testing.T) {
	boom := errors.New("boom")
	q := NewBounded[int](1)

	require.True(t, q.Complete(boom))
	require.False(t, q.Complete(nil))
	require.False(t, q.Complete(errors.New("later")))
	require.ErrorIs(t, q.Err(), boom)

	select {
	case <-q.Done():
	default:
		t.Fatal("Done channel should be closed after Complete")
	}
}

func TestBounded_WriteBlocksUntilRead(t *testing.T) {
	q := NewBounded[int](1)
	ctx := context.Background()

	require.NoError(t, q.Write(ctx, 1))

	wrote := make(chan error, 1)
	go func() {
		wrote <- q.Write(ctx, 2)
	}()

	select {
	case err := <-wrote:
		t.Fatalf("write to full queue returned early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	v, err := q.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	select {
	case err := <-wrote:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("blocked write did not resume after space freed")
	}
}

func TestBounded_ReadBlocksUntilWrite(t *testing.T) {
	q := NewBounded[int](1)
	ctx := context.Background()

	got := make(chan int, 1)
	go func() {
		v, err := q.Read(ctx)
		if err == nil {
			got <- v
		}
	}()

	select {
	case v := <-got:
		t.Fatalf("read from empty queue returned early: %v", v)
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, q.Write(ctx, 9))

	select {
	case v := <-got:
		require.Equal(t, 9, v)
	case <-time.After(time.Second):
		t.Fatal("blocked read did not resume after write")
	}
}

func TestBounded_CancelUnblocksWaiters(t *testing.T) {
	q := NewBounded[int](1)
	_, _ = q.TryWrite(1) // fill

	ctx, cancel := context.WithCancel(context.Background())

	writeErr := make(chan error, 1)
	readErr := make(chan error, 1)
	go func() { writeErr <- q.Write(ctx, 2) }()
	go func() {
		empty := NewBounded[int](1)
		_, err := empty.Read(ctx)
		readErr <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	for _, ch := range []chan error{writeErr, readErr} {
		select {
		case err := <-ch:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("waiter was not unblocked by cancellation")
		}
	}
}

func TestBounded_CompleteUnblocksBlockedWrite(t *testing.T) {
	q := NewBounded[int](1)
	_, _ = q.TryWrite(1)

	writeErr := make(chan error, 1)
	go func() { writeErr <- q.Write(context.Background(), 2) }()

	time.Sleep(20 * time.Millisecond)
	q.Complete(nil)

	select {
	case err := <-writeErr:
		require.ErrorIs(t, err, ErrCompleted)
	case <-time.After(time.Second):
		t.Fatal("blocked write was not unblocked by completion")
	}
}

func TestUnbounded_WritesNeverBlock(t *testing.T) {
	q := NewUnbounded[int]()
	ctx := context.Background()

	const n = 10_000
	for i := 0; i < n; i++ {
		require.NoError(t, q.Write(ctx, i))
	}
	require.Equal(t, n, q.Len())
	require.Equal(t, 0, q.Cap())

	for i := 0; i < n; i++ {
		v, err := q.Read(ctx)
		require.NoError(t, err)
		require.Equal(t, i, v)
	}
}

func TestBounded_ConcurrentProducersConsumers(t *testing.T) {
	const (
		producers = 4
		consumers = 4
		perProd   = 500
	)

	q := NewBounded[int](16)
	ctx := context.Background()

	var prodWG sync.WaitGroup
	for p := 0; p < producers; p++ {
		prodWG.Add(1)
		go func(p int) {
			defer prodWG.Done()
			for i := 0; i < perProd; i++ {
				if err := q.Write(ctx, p*perProd+i); err != nil {
					t.Errorf("write: %v", err)
					return
				}
			}
		}(p)
	}
	go func() {
		prodWG.Wait()
		q.Complete(nil)
	}()

	var mu sync.Mutex
	seen := make(map[int]bool)

	var consWG sync.WaitGroup
	for c := 0; c < consumers; c++ {
		consWG.Add(1)
		go func() {
			defer consWG.Done()
			for {
				v, err := q.Read(ctx)
				if err != nil {
					if !errors.Is(err, ErrCompleted) {
						t.Errorf("read: %v", err)
					}
					return
				}
				mu.Lock()
				if seen[v] {
					t.Errorf("duplicate item %d", v)
				}
				seen[v] = true
				mu.Unlock()
			}
		}()
	}
	consWG.Wait()

	require.Len(t, seen, producers*perProd)
}

func TestNewBounded_PanicsOnNonPositiveCapacity(t *testing.T) {
	require.Panics(t, func() { NewBounded[int](0) })
	require.Panics(t, func() { NewBounded[int](-1) })
}

func TestWithSingleConsumer_IsAdvisory(t *testing.T) {
	q := NewBounded[int](2, WithSingleConsumer())
	ok, err := q.TryWrite(1)
	require.True(t, ok)
	require.NoError(t, err)
}
