// Package queue provides the min-priority frontier used by the search
// algorithms.
package queue

import "container/heap"

// Prioritized is an entry that can be held in a MinHeap. Entries are ordered
// by Priority; Sequence breaks ties in FIFO insertion order so that pops are
// deterministic even when priorities collide and entries themselves are not
// comparable.
type Prioritized interface {
	Priority() float64
	Sequence() int64
}

// MinHeap is a binary-heap-backed priority queue. Entries are never updated
// or removed in place; stale entries are expected to be discarded by the
// consumer on pop (lazy deletion).
type MinHeap[T Prioritized] struct {
	queue innerQueue[T]
}

func NewMinHeap[T Prioritized]() *MinHeap[T] {
	h := &MinHeap[T]{queue: make(innerQueue[T], 0)}
	heap.Init(&h.queue)
	return h
}

func (h *MinHeap[T]) Len() int    { return h.queue.Len() }
func (h *MinHeap[T]) Push(item T) { heap.Push(&h.queue, item) }
func (h *MinHeap[T]) Pop() T      { return heap.Pop(&h.queue).(T) }
func (h *MinHeap[T]) Peek() T     { return h.queue[0] }

// Implements heap.Interface
type innerQueue[T Prioritized] []T

func (q innerQueue[T]) Len() int { return len(q) }

func (q innerQueue[T]) Less(i, j int) bool {
	if q[i].Priority() != q[j].Priority() {
		return q[i].Priority() < q[j].Priority()
	}
	return q[i].Sequence() < q[j].Sequence()
}

func (q innerQueue[T]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *innerQueue[T]) Push(item any) {
	*q = append(*q, item.(T))
}

func (q *innerQueue[T]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	var zero T
	old[n-1] = zero
	*q = old[:n-1]
	return item
}
