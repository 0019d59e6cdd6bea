package packedmap

import "fmt"

// Heap - An array backed binary heap ordered by a caller supplied less function, with
// the minimum element (according to less) at the root. Popping or peeking an empty heap
// is a precondition violation and panics.
type Heap[T any] struct {
	items []T
	less  func(a, b T) bool
}

// NewHeap - Returns a new Heap ordered by less, with room for capacity elements before
// the first buffer growth.
//   - less reports whether a should sort before b
//   - capacity is the initial buffer capacity
//
// It returns:
//   - heap is a pointer to a Heap struct
//   - err is a normal Go error which should be nil if everything went ok
func NewHeap[T any](less func(a, b T) bool, capacity int) (heap *Heap[T], err error) {
	if less == nil {
		err = fmt.Errorf("less can not be nil")
		return
	}
	if capacity < 0 {
		err = fmt.Errorf("capacity can not be negative")
		return
	}

	heap = &Heap[T]{items: make([]T, 0, capacity), less: less}

	return
}

// Push - Adds value to the heap
func (H *Heap[T]) Push(value T) {
	H.items = append(H.items, value)
	H.siftUp(len(H.items) - 1)
}

// Pop - Removes and returns the minimum element
func (H *Heap[T]) Pop() (value T) {
	if len(H.items) == 0 {
		panic("packedmap: Pop on empty heap")
	}

	var zero T
	last := len(H.items) - 1
	value = H.items[0]
	H.items[0] = H.items[last]
	H.items[last] = zero
	H.items = H.items[:last]
	if last > 0 {
		H.siftDown(0)
	}

	return
}

// Peek - Returns the minimum element without removing it
func (H *Heap[T]) Peek() T {
	if len(H.items) == 0 {
		panic("packedmap: Peek on empty heap")
	}
	return H.items[0]
}

// Len - Returns the number of elements in the heap
func (H *Heap[T]) Len() int {
	return len(H.items)
}

// IsEmpty - Returns true if the heap has no elements
func (H *Heap[T]) IsEmpty() bool {
	return len(H.items) == 0
}

// Clear - Empties the heap keeping the current buffer
func (H *Heap[T]) Clear() {
	var zero T
	for i := range H.items {
		H.items[i] = zero
	}
	H.items = H.items[:0]
}

// siftUp - Restores heap order from element i towards the root
func (H *Heap[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !H.less(H.items[i], H.items[parent]) {
			break
		}
		H.items[i], H.items[parent] = H.items[parent], H.items[i]
		i = parent
	}
}

// siftDown - Restores heap order from element i towards the leaves
func (H *Heap[T]) siftDown(i int) {
	n := len(H.items)
	for {
		smallest := i
		if l := 2*i + 1; l < n && H.less(H.items[l], H.items[smallest]) {
			smallest = l
		}
		if r := 2*i + 2; r < n && H.less(H.items[r], H.items[smallest]) {
			smallest = r
		}
		if smallest == i {
			return
		}
		H.items[i], H.items[smallest] = H.items[smallest], H.items[i]
		i = smallest
	}
}
