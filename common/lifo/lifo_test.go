package lifo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPushAndPop tests basic push and pop operations
func TestPushAndPop(t *testing.T) {
	stack := Stack[int]{}

	assert.Equal(t, 0, stack.Push(1))
	assert.Equal(t, 1, stack.Push(2))
	assert.Equal(t, 2, stack.Push(3))

	for _, want := range []int{3, 2, 1} {
		val, ok := stack.Pop()
		require.True(t, ok)
		assert.Equal(t, want, val)
	}

	_, ok := stack.Pop()
	assert.False(t, ok, "Expected empty stack, but Pop returned a value")
}

// TestPeek tests the Peek operation
func TestPeek(t *testing.T) {
	stack := Stack[string]{}

	_, ok := stack.Peek()
	assert.False(t, ok)

	stack.Push("A")
	stack.Push("B")

	val, ok := stack.Peek()
	require.True(t, ok)
	assert.Equal(t, "B", val)
	assert.Equal(t, 2, stack.Len())
}

// TestPositionsAreStable tests that At keeps addressing the same item
// while items above it come and go
func TestPositionsAreStable(t *testing.T) {
	stack := Stack[string]{}
	pos := stack.Push("base")
	stack.Push("x")
	stack.Push("y")
	stack.Pop()
	stack.Pop()
	stack.Push("z")

	assert.Equal(t, "base", stack.At(pos))
	assert.Equal(t, "z", stack.At(1))
}

func TestIsEmpty(t *testing.T) {
	stack := Stack[int]{}
	assert.True(t, stack.IsEmpty())

	stack.Push(42)
	assert.False(t, stack.IsEmpty())

	stack.Pop()
	assert.True(t, stack.IsEmpty())
}

func TestBackward(t *testing.T) {
	stack := Stack[rune]{}
	for _, r := range "abc" {
		stack.Push(r)
	}

	var got []rune
	var positions []int
	for i, r := range stack.Backward() {
		positions = append(positions, i)
		got = append(got, r)
	}
	assert.Equal(t, []rune("cba"), got)
	assert.Equal(t, []int{2, 1, 0}, positions)

	// early exit
	count := 0
	for range stack.Backward() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}
