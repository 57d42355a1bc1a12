// pkg/engine/ring.go
package engine

// Ring is a bounded FIFO. Pushing onto a full ring evicts the oldest item.
type Ring[T any] struct {
	items []T
	start int
	size  int
}

// NewRing creates a ring holding at most capacity items
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// Push appends v, evicting the oldest item when full. It reports
// whether an item was evicted.
func (r *Ring[T]) Push(v T) bool {
	if r.size < len(r.items) {
		r.items[(r.start+r.size)%len(r.items)] = v
		r.size++
		return false
	}
	r.items[r.start] = v
	r.start = (r.start + 1) % len(r.items)
	return true
}

// Len returns the number of stored items
func (r *Ring[T]) Len() int {
	return r.size
}

// Cap returns the maximum number of items
func (r *Ring[T]) Cap() int {
	return len(r.items)
}

// At returns the i-th item, oldest first
func (r *Ring[T]) At(i int) T {
	if i < 0 || i >= r.size {
		panic("engine: ring index out of range")
	}
	return r.items[(r.start+i)%len(r.items)]
}

// Items returns a copy of the stored items, oldest first
func (r *Ring[T]) Items() []T {
	out := make([]T, r.size)
	for i := range out {
		out[i] = r.At(i)
	}
	return out
}

// Clear removes every item
func (r *Ring[T]) Clear() {
	var zero T
	for i := range r.items {
		r.items[i] = zero
	}
	r.start, r.size = 0, 0
}
