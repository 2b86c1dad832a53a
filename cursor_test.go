package fanout

import (
	"context"
	"sync"
	"testing"
)

func TestCursor_SequentialOrder(t *testing.T) {
	cur := newCursor(FromSlice([]int{1, 2, 3}))

	for want := 1; want <= 3; want++ {
		task, ok := cur.tryAdvance()
		if !ok {
			t.Fatalf("tryAdvance exhausted early at %d", want)
		}
		v, err := task(context.Background())
		if err != nil {
			t.Fatalf("task error: %v", err)
		}
		if v != want {
			t.Fatalf("tryAdvance value = %d, want %d", v, want)
		}
	}

	if _, ok := cur.tryAdvance(); ok {
		t.Fatal("expected exhaustion after all items consumed")
	}
}

func TestCursor_IdempotentAfterExhaustion(t *testing.T) {
	cur := newCursor(FromSlice([]int{}))

	for i := 0; i < 5; i++ {
		if _, ok := cur.tryAdvance(); ok {
			t.Fatalf("call %d: expected exhaustion", i)
		}
	}
}

func TestCursor_ExactlyOnceUnderConcurrency(t *testing.T) {
	const (
		items   = 2000
		workers = 8
	)

	src := make([]int, items)
	for i := range src {
		src[i] = i
	}
	cur := newCursor(FromSlice(src))

	var mu sync.Mutex
	seen := make(map[int]int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				task, ok := cur.tryAdvance()
				if !ok {
					return
				}
				v, _ := task(context.Background())
				mu.Lock()
				seen[v]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != items {
		t.Fatalf("consumed %d distinct items, want %d", len(seen), items)
	}
	for v, c := range seen {
		if c != 1 {
			t.Fatalf("item %d consumed %d times", v, c)
		}
	}
}

func TestCursor_CloseStopsIteration(t *testing.T) {
	produced := 0
	src := func(yield func(Task[int]) bool) {
		for i := 0; ; i++ {
			produced++
			if !yield(TaskValue(i)) {
				return
			}
		}
	}

	cur := newCursor(src)
	if _, ok := cur.tryAdvance(); !ok {
		t.Fatal("expected an item before close")
	}
	cur.close()
	cur.close() // idempotent

	if _, ok := cur.tryAdvance(); ok {
		t.Fatal("expected exhaustion after close")
	}
	if produced > 2 {
		t.Fatalf("sequence advanced %d times after close", produced)
	}
}
