package stack_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChainSafe/keystack/stack"
	"github.com/ChainSafe/keystack/stack/stacktest"
)

type entry = stacktest.Entry[string, int]

func requireFront(t *testing.T, s *stack.Stack[string, int], key string, value int) {
	t.Helper()
	k, v, err := s.Front()
	require.NoError(t, err)
	assert.Equal(t, key, k)
	assert.Equal(t, value, v)
}

func TestPushPopScenario(t *testing.T) {
	s := stack.New[string, int]()
	s.Push("A", 1)
	s.Push("B", 2)
	s.Push("A", 3)

	assert.Equal(t, 3, s.Len())
	requireFront(t, s, "A", 3)

	require.NoError(t, s.Pop())
	requireFront(t, s, "B", 2)
	assert.Equal(t, 1, s.Count("A"))

	require.NoError(t, s.PopKey("A"))
	assert.Equal(t, 0, s.Count("A"))
	assert.Equal(t, 1, s.Len())
	requireFront(t, s, "B", 2)
	assert.Equal(t, []string{"B"}, slices.Collect(s.Keys()))
}

func TestErrors(t *testing.T) {
	s := stack.New[string, int]()

	assert.ErrorIs(t, s.Pop(), stack.ErrEmpty)
	_, _, err := s.Front()
	assert.ErrorIs(t, err, stack.ErrEmpty)
	_, _, err = s.FrontRef()
	assert.ErrorIs(t, err, stack.ErrEmpty)
	assert.ErrorIs(t, s.UpdateFront(func(string, *int) {}), stack.ErrEmpty)

	assert.ErrorIs(t, s.PopKey("A"), stack.ErrUnknownKey)
	_, err = s.FrontKey("A")
	assert.ErrorIs(t, err, stack.ErrUnknownKey)

	// drained keys behave like absent ones
	s.Push("A", 1)
	s.Push("B", 2)
	require.NoError(t, s.PopKey("A"))
	assert.ErrorIs(t, s.PopKey("A"), stack.ErrUnknownKey)
	_, err = s.FrontKeyRef("A")
	assert.ErrorIs(t, err, stack.ErrUnknownKey)
	assert.ErrorIs(t, s.UpdateFrontKey("A", func(*int) {}), stack.ErrUnknownKey)
	assert.Equal(t, 1, s.Len())
}

func TestPopReversesPushOrder(t *testing.T) {
	s := stack.New[string, int]()
	pushes := []entry{{Key: "x", Value: 1}, {Key: "y", Value: 2}, {Key: "x", Value: 3}, {Key: "z", Value: 4}, {Key: "y", Value: 5}, {Key: "x", Value: 6}}
	for _, e := range pushes {
		s.Push(e.Key, e.Value)
	}

	var got []entry
	for s.Len() > 0 {
		k, v, err := s.Front()
		require.NoError(t, err)
		got = append(got, entry{Key: k, Value: v})
		require.NoError(t, s.Pop())
	}
	want := slices.Clone(pushes)
	slices.Reverse(want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pop order mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, slices.Collect(s.Keys()))
}

func TestPopKeyIgnoresOtherKeys(t *testing.T) {
	s := stack.New[string, int]()
	s.Push("x", 1)
	s.Push("y", 100)
	s.Push("x", 2)
	s.Push("y", 200)
	s.Push("x", 3)
	s.Push("z", 300)

	var got []int
	for s.Count("x") > 0 {
		v, err := s.FrontKey("x")
		require.NoError(t, err)
		got = append(got, v)
		require.NoError(t, s.PopKey("x"))
	}
	assert.Equal(t, []int{3, 2, 1}, got)
	assert.Equal(t, 3, s.Len())

	// the global order of what remains is untouched
	want := []entry{{Key: "z", Value: 300}, {Key: "y", Value: 200}, {Key: "y", Value: 100}}
	assert.Equal(t, want, stacktest.Snapshot(s))
}

func TestValues(t *testing.T) {
	s := stack.New[string, int]()
	s.Push("x", 1)
	s.Push("y", 9)
	s.Push("x", 2)

	assert.Equal(t, []int{2, 1}, slices.Collect(s.Values("x")))
	assert.Empty(t, slices.Collect(s.Values("nope")))
}

func TestClear(t *testing.T) {
	s := stack.New[string, int]()
	s.Push("a", 1)
	s.Push("b", 2)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Count("a"))
	assert.Equal(t, 0, s.Count("b"))
	assert.Empty(t, slices.Collect(s.Keys()))
	it := s.Begin()
	assert.False(t, it.Valid())

	// still usable afterwards
	s.Push("c", 3)
	requireFront(t, s, "c", 3)
}

func TestCloneThenPushDetaches(t *testing.T) {
	x := stack.New[string, int]()
	x.Push("A", 1)

	y := x.Clone()
	y.Push("A", 2)

	assert.Equal(t, 1, x.Len())
	requireFront(t, x, "A", 1)
	assert.Equal(t, 2, y.Len())
	requireFront(t, y, "A", 2)
}

func TestCloneIsIndependentBothWays(t *testing.T) {
	x := stack.New[string, int]()
	x.Push("a", 1)
	x.Push("b", 2)
	x.Push("a", 3)

	y := x.Clone()
	require.NoError(t, x.Pop())
	require.NoError(t, x.PopKey("b"))
	x.Push("c", 4)

	assert.Equal(t, []entry{{Key: "a", Value: 3}, {Key: "b", Value: 2}, {Key: "a", Value: 1}}, stacktest.Snapshot(y))
	assert.Equal(t, []entry{{Key: "c", Value: 4}, {Key: "a", Value: 1}}, stacktest.Snapshot(x))

	z := y.Clone()
	z.Clear()
	assert.Equal(t, 3, y.Len())
	assert.Equal(t, 0, z.Len())
}

func TestFrontRefWritesThrough(t *testing.T) {
	s := stack.New[string, int]()
	s.Push("a", 1)
	s.Push("b", 2)

	k, p, err := s.FrontRef()
	require.NoError(t, err)
	assert.Equal(t, "b", k)
	*p = 20

	q, err := s.FrontKeyRef("a")
	require.NoError(t, err)
	*q = 10

	assert.Equal(t, []entry{{Key: "b", Value: 20}, {Key: "a", Value: 10}}, stacktest.Snapshot(s))
}

func TestFrontRefOnSharedStorageDoesNotLeak(t *testing.T) {
	x := stack.New[string, int]()
	x.Push("a", 1)
	y := x.Clone()

	p, err := y.FrontKeyRef("a")
	require.NoError(t, err)
	*p = 99

	v, err := x.FrontKey("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, err = y.FrontKey("a")
	require.NoError(t, err)
	assert.Equal(t, 99, v)
}

// TestCloneAfterFrontRef checks that a pointer handed out before a clone
// cannot reach the clone
func TestCloneAfterFrontRef(t *testing.T) {
	x := stack.New[string, int]()
	x.Push("a", 1)

	_, p, err := x.FrontRef()
	require.NoError(t, err)

	y := x.Clone()
	*p = 42

	v, err := y.FrontKey("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, err = x.FrontKey("a")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestUpdateFront(t *testing.T) {
	x := stack.New[string, int]()
	x.Push("a", 1)
	x.Push("b", 2)
	y := x.Clone()

	require.NoError(t, y.UpdateFront(func(key string, v *int) {
		assert.Equal(t, "b", key)
		*v *= 10
	}))
	require.NoError(t, y.UpdateFrontKey("a", func(v *int) {
		*v += 5
	}))

	assert.Equal(t, []entry{{Key: "b", Value: 2}, {Key: "a", Value: 1}}, stacktest.Snapshot(x))
	assert.Equal(t, []entry{{Key: "b", Value: 20}, {Key: "a", Value: 6}}, stacktest.Snapshot(y))
}

func TestAssignAndSwap(t *testing.T) {
	x := stack.New[string, int]()
	x.Push("a", 1)
	y := stack.New[string, int]()
	y.Push("b", 2)
	y.Push("b", 3)

	x.Assign(y)
	assert.Equal(t, stacktest.Snapshot(y), stacktest.Snapshot(x))
	x.Push("c", 4)
	assert.Equal(t, 2, y.Len())

	x.Assign(x)
	assert.Equal(t, 3, x.Len())

	x.Swap(y)
	assert.Equal(t, 2, x.Len())
	assert.Equal(t, 3, y.Len())
	requireFront(t, y, "c", 4)
}

func TestRelease(t *testing.T) {
	x := stack.New[string, int]()
	x.Push("a", 1)
	y := x.Clone()

	y.Release()
	assert.Equal(t, 0, y.Len())
	assert.Equal(t, 1, x.Len())

	y.Push("b", 2)
	assert.Equal(t, 1, x.Count("a"))
	assert.Equal(t, 0, x.Count("b"))
}

func TestValueCopier(t *testing.T) {
	x := stack.New[string, []int](stack.WithValueCopier(slices.Clone[[]int]))
	x.Push("a", []int{1, 2})
	y := x.Clone()
	y.Push("b", nil)

	v, err := y.FrontKey("a")
	require.NoError(t, err)
	v[0] = 100

	orig, err := x.FrontKey("a")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, orig)
}

func TestNewFunc(t *testing.T) {
	s := stack.NewFunc[string, int](func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	s.Push("b", 1)
	s.Push("A", 2)
	s.Push("a", 3)

	assert.Equal(t, 2, s.Count("A"))
	assert.Equal(t, []string{"A", "b"}, slices.Collect(s.Keys()))
}

func TestLargeInterleaving(t *testing.T) {
	s := stack.New[int, int]()
	const n = 2000
	for i := 0; i < n; i++ {
		s.Push(i%7, i)
	}
	assert.Equal(t, n, s.Len())

	c := s.Clone()
	for i := n - 1; i >= 0; i-- {
		k, v, err := c.Front()
		require.NoError(t, err)
		require.Equal(t, i%7, k)
		require.Equal(t, i, v)
		require.NoError(t, c.Pop())
	}
	assert.Equal(t, n, s.Len())
}
