package containers

import (
	"errors"
	"testing"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[int](3)
	for i := 1; i <= 3; i++ {
		if err := rq.Enqueue(i); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}
	if err := rq.Enqueue(4); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	for want := 1; want <= 3; want++ {
		got, err := rq.Dequeue()
		if err != nil {
			t.Fatalf("dequeue: %v", err)
		}
		if got != want {
			t.Fatalf("got %d, want %d", got, want)
		}
	}
	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("expected ErrQueueEmpty, got %v", err)
	}
}

func TestRingQueuePushEvictsOldest(t *testing.T) {
	rq := NewRingQueue[string](2)
	rq.Push("a")
	rq.Push("b")
	evicted, dropped := rq.Push("c")
	if !dropped || evicted != "a" {
		t.Fatalf("expected to evict a, got %q (dropped=%v)", evicted, dropped)
	}

	var seen []string
	rq.Each(func(s string) { seen = append(seen, s) })
	if len(seen) != 2 || seen[0] != "b" || seen[1] != "c" {
		t.Fatalf("unexpected order %v", seen)
	}
	if front, _ := rq.Peek(); front != "b" {
		t.Fatalf("peek = %q", front)
	}
}
