package concurrent

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestQueue_PushTryPopFIFO(t *testing.T) {
	q := NewQueue[int]()
	q.Push(1)
	q.Push(2)
	q.Push(3)

	for _, want := range []int{1, 2, 3} {
		got, ok := q.TryPop()
		if !ok || got != want {
			t.Fatalf("got %d,%v want %d", got, ok, want)
		}
	}
	if _, ok := q.TryPop(); ok {
		t.Fatal("expected empty queue")
	}
}

func TestQueue_GrowsPastInitialCapacity(t *testing.T) {
	q := NewQueue[int]()
	const n = 100
	for i := 0; i < n; i++ {
		q.Push(i)
	}
	if q.Len() != n {
		t.Fatalf("got len %d, want %d", q.Len(), n)
	}
	for i := 0; i < n; i++ {
		got, ok := q.TryPop()
		if !ok || got != i {
			t.Fatalf("at %d: got %d,%v", i, got, ok)
		}
	}
}

func TestQueue_WaitPopBlocksUntilPush(t *testing.T) {
	q := NewQueue[int]()
	result := make(chan int, 1)
	go func() {
		v, err := q.WaitPop(context.Background())
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		result <- v
	}()

	time.Sleep(20 * time.Millisecond)
	q.Push(9)

	select {
	case v := <-result:
		if v != 9 {
			t.Fatalf("got %d, want 9", v)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitPop never returned")
	}
}

func TestQueue_WaitPopRespectsContextCancellation(t *testing.T) {
	q := NewQueue[int]()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := q.WaitPop(ctx)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("got %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitPop never observed ctx cancellation")
	}
}

func TestQueue_DrainFromAndDrainTo(t *testing.T) {
	q := NewQueue[int]()
	q.DrainFrom([]int{1, 2, 3})
	if q.Len() != 3 {
		t.Fatalf("got len %d, want 3", q.Len())
	}
	got := q.DrainTo()
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("expected empty queue after DrainTo")
	}
}

func TestQueue_DrainToEmptyReturnsNil(t *testing.T) {
	q := NewQueue[int]()
	if got := q.DrainTo(); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestQueue_Clear(t *testing.T) {
	q := NewQueue[int]()
	q.Push(1)
	q.Push(2)
	q.Clear()
	if q.Len() != 0 {
		t.Fatalf("expected empty after Clear, got len %d", q.Len())
	}
}

func TestQueue_NoLostElementsUnderConcurrentPushAndPop(t *testing.T) {
	q := NewQueue[int]()
	const n = 500
	done := make(chan struct{})
	seen := make(chan int, n)

	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			v, err := q.WaitPop(context.Background())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			seen <- v
		}
	}()

	for i := 0; i < n; i++ {
		q.Push(i)
	}
	<-done
	close(seen)

	count := 0
	for range seen {
		count++
	}
	if count != n {
		t.Fatalf("got %d elements, want %d", count, n)
	}
}
