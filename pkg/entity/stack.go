// pkg/entity/stack.go
package entity

import "fmt"

// Stack is a LIFO with a fixed capacity. Overflow and underflow are
// programming errors and panic.
type Stack[T any] struct {
	items []T
}

// NewStack creates an empty stack holding at most capacity items.
func NewStack[T any](capacity int) *Stack[T] {
	return &Stack[T]{items: make([]T, 0, capacity)}
}

// Push adds v on top of the stack.
func (s *Stack[T]) Push(v T) {
	if len(s.items) == cap(s.items) {
		panic(fmt.Sprintf("entity: push onto full stack (capacity %d)", cap(s.items)))
	}
	s.items = append(s.items, v)
}

// Pop removes and returns the top item.
func (s *Stack[T]) Pop() T {
	if len(s.items) == 0 {
		panic("entity: pop from empty stack")
	}
	var zero T
	v := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return v
}

// Top returns the top item without removing it.
func (s *Stack[T]) Top() T {
	if len(s.items) == 0 {
		panic("entity: top of empty stack")
	}
	return s.items[len(s.items)-1]
}

// Len returns the number of items on the stack
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Cap returns the capacity of the stack
func (s *Stack[T]) Cap() int {
	return cap(s.items)
}

// Full reports whether another Push would overflow
func (s *Stack[T]) Full() bool {
	return len(s.items) == cap(s.items)
}

// At returns the i-th item counted from the bottom.
func (s *Stack[T]) At(i int) T {
	return s.items[i]
}

// Grow raises the capacity of the stack, keeping its items.
func (s *Stack[T]) Grow(capacity int) {
	if capacity < len(s.items) {
		panic(fmt.Sprintf("entity: cannot shrink stack of %d items to capacity %d", len(s.items), capacity))
	}
	items := make([]T, len(s.items), capacity)
	copy(items, s.items)
	s.items = items
}
