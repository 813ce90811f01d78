package search

import "testing"

func TestPriorityQueueOrdering(t *testing.T) {
	q := NewPriorityQueue[int]()
	q.Insert(5, 1)
	q.Insert(1, 2)
	q.Insert(3, 3)

	wantOrder := []int{2, 3, 1}
	for _, want := range wantOrder {
		_, got, ok := q.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() = %v,%v want %v,true", got, ok, want)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", q.Len())
	}
}

func TestPriorityQueueDecreaseKey(t *testing.T) {
	q := NewPriorityQueue[int]()
	q.Insert(10, 1)
	q.Insert(20, 2)
	q.Insert(30, 3)

	q.Insert(5, 3) // decrease key of payload 3 below everything else

	_, got, _ := q.Pop()
	if got != 3 {
		t.Fatalf("Pop() = %v, want 3 after decrease-key", got)
	}
}

func TestPriorityQueueIncreaseKey(t *testing.T) {
	q := NewPriorityQueue[int]()
	q.Insert(1, 1)
	q.Insert(2, 2)
	q.Insert(3, 3)

	q.Insert(100, 1) // raise payload 1's key above everything else

	_, got, _ := q.Pop()
	if got != 2 {
		t.Fatalf("Pop() = %v, want 2 after increase-key", got)
	}
}

func TestPriorityQueueEmptyPop(t *testing.T) {
	q := NewPriorityQueue[int]()
	if _, _, ok := q.Pop(); ok {
		t.Fatalf("Pop() on empty queue returned ok=true")
	}
	if _, _, ok := q.Peek(); ok {
		t.Fatalf("Peek() on empty queue returned ok=true")
	}
}

func TestPriorityQueueRandomOrderIsSorted(t *testing.T) {
	keys := []float64{9, 3, 7, 1, 8, 2, 6, 4, 5, 0}
	q := NewPriorityQueue[int]()
	for i, k := range keys {
		q.Insert(k, i)
	}
	last := -1.0
	for q.Len() > 0 {
		k, _, _ := q.Pop()
		if k < last {
			t.Fatalf("pop order not sorted: got %f after %f", k, last)
		}
		last = k
	}
}
