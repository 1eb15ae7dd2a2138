// Package lifo implements lifo stack
package lifo

import "iter"

// Stack is a slice backed LIFO. Positions count from the bottom, so the
// position of an item does not change while it stays on the stack.
type Stack[T any] struct {
	items []T
}

// Push adds an item to the stack and returns its position
func (s *Stack[T]) Push(value T) int {
	s.items = append(s.items, value)
	return len(s.items) - 1
}

// Pop removes and returns the last item from the stack
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	last := len(s.items) - 1
	val := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]
	return val, true
}

// Peek returns the last item without removing it
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// At returns the item at position i, 0 being the oldest.
func (s *Stack[T]) At(i int) T {
	return s.items[i]
}

// Len returns the number of items in the stack
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// IsEmpty checks if the stack is empty
func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Backward ranges from the top of the stack down to the bottom.
func (s *Stack[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := len(s.items) - 1; i >= 0; i-- {
			if !yield(i, s.items[i]) {
				return
			}
		}
	}
}
