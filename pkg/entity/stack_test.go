package entity

import "testing"

func TestStack_PushPop(t *testing.T) {
	s := NewStack[int](3)
	s.Push(1)
	s.Push(2)
	s.Push(3)

	if !s.Full() {
		t.Error("Expected stack to be full")
	}
	if s.Top() != 3 {
		t.Errorf("Expected top 3, got %d", s.Top())
	}
	for _, want := range []int{3, 2, 1} {
		if got := s.Pop(); got != want {
			t.Errorf("Expected pop %d, got %d", want, got)
		}
	}
	if s.Len() != 0 {
		t.Errorf("Expected empty stack, got %d items", s.Len())
	}
}

func TestStack_Overflow_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on overflow")
		}
	}()
	s := NewStack[int](1)
	s.Push(1)
	s.Push(2)
}

func TestStack_Underflow_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on empty pop")
		}
	}()
	NewStack[string](2).Pop()
}

func TestStack_Grow_KeepsItems(t *testing.T) {
	s := NewStack[int](1)
	s.Push(7)
	s.Grow(4)

	if s.Cap() != 4 || s.Len() != 1 || s.At(0) != 7 {
		t.Errorf("Unexpected stack after grow: cap=%d len=%d", s.Cap(), s.Len())
	}
	s.Push(8)
	s.Push(9)
	if s.Top() != 9 {
		t.Errorf("Expected top 9, got %d", s.Top())
	}
}
