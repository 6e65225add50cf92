package reactor

import "sync"

// queue is the unbounded FIFO behind Dispatch.
type queue[A any] struct {
	mu    sync.Mutex
	items []A
	ready chan struct{}
}

func newQueue[A any]() *queue[A] {
	return &queue[A]{ready: make(chan struct{}, 1)}
}

func (q *queue[A]) push(a A) {
	q.mu.Lock()
	q.items = append(q.items, a)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *queue[A]) pop() (A, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero A
	if len(q.items) == 0 {
		return zero, false
	}
	a := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return a, true
}

func (q *queue[A]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
