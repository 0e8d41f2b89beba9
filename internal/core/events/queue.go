// Package events holds the drainable event queue the simulation appends to
// during a step.
package events

// Queue is an unbounded, in-order buffer. Producers append during a step and
// consumers drain the whole batch between steps. It is not safe for
// concurrent use; it lives inside the single-threaded simulation.
type Queue[E any] struct {
	items []E
}

// NewQueue creates an empty queue.
func NewQueue[E any]() *Queue[E] {
	return &Queue[E]{}
}

// Push appends events in order.
func (q *Queue[E]) Push(events ...E) {
	q.items = append(q.items, events...)
}

// Drain removes and returns every queued event in order. It never blocks and
// returns an empty, non-nil slice when nothing is queued.
func (q *Queue[E]) Drain() []E {
	if q.Len() == 0 {
		return []E{}
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of undrained events.
func (q *Queue[E]) Len() int {
	return len(q.items)
}
