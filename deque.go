package packedmap

import (
	"fmt"
	"github.com/gostonefire/packedmap/internal/utils"
)

// Deque - A double ended queue backed by a ring buffer with power of two capacity.
// Pushes on either end are amortized O(1), the buffer doubles when full. Popping or
// peeking an empty deque is a precondition violation and panics.
type Deque[T any] struct {
	buf  []T
	head int
	size int
}

// NewDeque - Returns a new Deque with the given initial capacity, rounded up to the
// nearest power of two.
//
// It returns:
//   - deque is a pointer to a Deque struct
//   - err is a normal Go error which should be nil if everything went ok
func NewDeque[T any](capacity int) (deque *Deque[T], err error) {
	if capacity <= 0 {
		err = fmt.Errorf("capacity must be a positive value higher than 0 (zero)")
		return
	}

	deque = &Deque[T]{buf: make([]T, utils.RoundUp2(capacity))}

	return
}

// PushBack - Appends value at the back of the deque
func (D *Deque[T]) PushBack(value T) {
	if D.size == len(D.buf) {
		D.grow()
	}
	D.buf[(D.head+D.size)&(len(D.buf)-1)] = value
	D.size++
}

// PushFront - Prepends value at the front of the deque
func (D *Deque[T]) PushFront(value T) {
	if D.size == len(D.buf) {
		D.grow()
	}
	D.head = (D.head - 1) & (len(D.buf) - 1)
	D.buf[D.head] = value
	D.size++
}

// PopFront - Removes and returns the value at the front of the deque
func (D *Deque[T]) PopFront() (value T) {
	if D.size == 0 {
		panic("packedmap: PopFront on empty deque")
	}

	var zero T
	value = D.buf[D.head]
	D.buf[D.head] = zero
	D.head = (D.head + 1) & (len(D.buf) - 1)
	D.size--

	return
}

// PopBack - Removes and returns the value at the back of the deque
func (D *Deque[T]) PopBack() (value T) {
	if D.size == 0 {
		panic("packedmap: PopBack on empty deque")
	}

	var zero T
	i := (D.head + D.size - 1) & (len(D.buf) - 1)
	value = D.buf[i]
	D.buf[i] = zero
	D.size--

	return
}

// Front - Returns the value at the front of the deque without removing it
func (D *Deque[T]) Front() T {
	if D.size == 0 {
		panic("packedmap: Front on empty deque")
	}
	return D.buf[D.head]
}

// Back - Returns the value at the back of the deque without removing it
func (D *Deque[T]) Back() T {
	if D.size == 0 {
		panic("packedmap: Back on empty deque")
	}
	return D.buf[(D.head+D.size-1)&(len(D.buf)-1)]
}

// At - Returns the value at position i counted from the front
func (D *Deque[T]) At(i int) T {
	if i < 0 || i >= D.size {
		panic("packedmap: deque index out of range")
	}
	return D.buf[(D.head+i)&(len(D.buf)-1)]
}

// Len - Returns the number of values in the deque
func (D *Deque[T]) Len() int {
	return D.size
}

// Cap - Returns the current buffer capacity
func (D *Deque[T]) Cap() int {
	return len(D.buf)
}

// Clear - Empties the deque keeping the current buffer
func (D *Deque[T]) Clear() {
	var zero T
	for i := 0; i < D.size; i++ {
		D.buf[(D.head+i)&(len(D.buf)-1)] = zero
	}
	D.head = 0
	D.size = 0
}

// grow - Doubles the buffer, unwinding the ring so the front ends up at index zero
func (D *Deque[T]) grow() {
	buf := make([]T, len(D.buf)<<1)
	n := copy(buf, D.buf[D.head:])
	copy(buf[n:], D.buf[:D.head])
	D.buf = buf
	D.head = 0
}
