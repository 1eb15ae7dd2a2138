package stack

import (
	"cmp"
	"iter"
	"runtime"

	"github.com/ChainSafe/keystack/common/arena"
)

// Stack is a LIFO of key/value pairs ordered twice: once across all keys
// and once per key. Stacks are created with New or NewFunc; the zero value
// is not usable.
type Stack[K, V any] struct {
	own      *owner[K, V]
	compare  func(a, b K) int
	opts     options[V]
	mayAlias bool // a pointer from FrontRef or FrontKeyRef may still be held
}

// New returns an empty stack whose keys are ordered by cmp.Compare.
func New[K cmp.Ordered, V any](opts ...Option[V]) *Stack[K, V] {
	return NewFunc[K, V](cmp.Compare[K], opts...)
}

// NewFunc returns an empty stack whose keys are ordered by compare, which
// must define a strict total order in the manner of cmp.Compare.
func NewFunc[K, V any](compare func(a, b K) int, opts ...Option[V]) *Stack[K, V] {
	var o options[V]
	for _, opt := range opts {
		opt(&o)
	}
	return newStack(compare, o, newShared(newStorage[K, V](compare)))
}

func newStack[K, V any](compare func(a, b K) int, o options[V], sh *shared[K, V]) *Stack[K, V] {
	s := &Stack[K, V]{
		own:     &owner[K, V]{sh: sh},
		compare: compare,
		opts:    o,
	}
	runtime.AddCleanup(s, releaseOwner[K, V], s.own)
	return s
}

func (s *Stack[K, V]) unit() *shared[K, V] {
	return s.own.sh
}

// detach replaces shared storage with a private copy. A panic while
// copying leaves the stack on its previous storage.
func (s *Stack[K, V]) detach() {
	sh := s.own.sh
	if sh.exclusive() {
		return
	}
	s.own.sh = newShared(sh.replay(s.compare, s.opts.copyValue))
	sh.release()
	s.mayAlias = false
}

// Push adds value under key on top of the stack. If Push panics the stack
// is left as it was before the call.
func (s *Stack[K, V]) Push(key K, value V) {
	s.detach()
	s.unit().push(key, value)
}

// Pop removes the most recently pushed element.
func (s *Stack[K, V]) Pop() error {
	if s.unit().len() == 0 {
		return ErrEmpty
	}
	s.detach()
	return s.unit().pop()
}

// PopKey removes the most recently pushed element of key.
func (s *Stack[K, V]) PopKey(key K) error {
	if s.unit().count(key) == 0 {
		return ErrUnknownKey
	}
	s.detach()
	return s.unit().popKey(key)
}

// Front returns the most recently pushed element.
func (s *Stack[K, V]) Front() (K, V, error) {
	b, v, err := s.unit().front()
	if err != nil {
		var (
			zk K
			zv V
		)
		return zk, zv, err
	}
	return b.key, *v, nil
}

// FrontKey returns the most recently pushed value of key.
func (s *Stack[K, V]) FrontKey(key K) (V, error) {
	v, err := s.unit().frontKey(key)
	if err != nil {
		var zero V
		return zero, err
	}
	return *v, nil
}

// FrontRef is Front with a pointer to the stored value. The pointer is
// valid until the element is removed. Clones taken while such a pointer
// may still be held are deep copies.
func (s *Stack[K, V]) FrontRef() (K, *V, error) {
	if s.unit().len() == 0 {
		var zero K
		return zero, nil, ErrEmpty
	}
	s.detach()
	b, v, err := s.unit().front()
	if err != nil {
		var zero K
		return zero, nil, err
	}
	s.mayAlias = true
	return b.key, v, nil
}

// FrontKeyRef is FrontKey with a pointer to the stored value, under the
// same rules as FrontRef.
func (s *Stack[K, V]) FrontKeyRef(key K) (*V, error) {
	if s.unit().count(key) == 0 {
		return nil, ErrUnknownKey
	}
	s.detach()
	v, err := s.unit().frontKey(key)
	if err != nil {
		return nil, err
	}
	s.mayAlias = true
	return v, nil
}

// UpdateFront calls fn with the most recently pushed element. The pointer
// must not be retained after fn returns.
func (s *Stack[K, V]) UpdateFront(fn func(key K, value *V)) error {
	if s.unit().len() == 0 {
		return ErrEmpty
	}
	s.detach()
	b, v, err := s.unit().front()
	if err != nil {
		return err
	}
	fn(b.key, v)
	return nil
}

// UpdateFrontKey calls fn with the most recently pushed value of key. The
// pointer must not be retained after fn returns.
func (s *Stack[K, V]) UpdateFrontKey(key K, fn func(value *V)) error {
	if s.unit().count(key) == 0 {
		return ErrUnknownKey
	}
	s.detach()
	v, err := s.unit().frontKey(key)
	if err != nil {
		return err
	}
	fn(v)
	return nil
}

// Len returns the number of elements.
func (s *Stack[K, V]) Len() int {
	return s.unit().len()
}

// Count returns the number of elements pushed under key, 0 if none.
func (s *Stack[K, V]) Count(key K) int {
	return s.unit().count(key)
}

// Clear removes all elements.
func (s *Stack[K, V]) Clear() {
	sh := s.unit()
	if sh.exclusive() {
		sh.reset()
	} else {
		s.own.sh = newShared(newStorage[K, V](s.compare))
		sh.release()
	}
	s.mayAlias = false
}

// Clone returns a stack with the same contents. The clone shares storage
// with s until either side is modified, unless a pointer obtained from s
// may still be held, in which case the clone gets its own copy right away.
func (s *Stack[K, V]) Clone() *Stack[K, V] {
	sh := s.unit()
	if s.mayAlias {
		return newStack(s.compare, s.opts, newShared(sh.replay(s.compare, s.opts.copyValue)))
	}
	return newStack(s.compare, s.opts, sh.acquire())
}

// Assign replaces the contents of s with those of src.
func (s *Stack[K, V]) Assign(src *Stack[K, V]) {
	if s == src {
		return
	}
	c := src.Clone()
	s.Swap(c)
	releaseOwner(c.own)
}

// Swap exchanges the contents of s and other.
func (s *Stack[K, V]) Swap(other *Stack[K, V]) {
	s.own.sh, other.own.sh = other.own.sh, s.own.sh
	s.compare, other.compare = other.compare, s.compare
	s.opts, other.opts = other.opts, s.opts
	s.mayAlias, other.mayAlias = other.mayAlias, s.mayAlias
}

// Release drops the reference s holds on its storage and leaves s empty.
// Stacks that are simply dropped are released by the garbage collector;
// calling Release spares their clones a copy on the next write.
func (s *Stack[K, V]) Release() {
	sh := s.unit()
	s.own.sh = newShared(newStorage[K, V](s.compare))
	sh.release()
	s.mayAlias = false
}

// All ranges over the elements from the most recently pushed to the oldest.
// The stack must not be modified during iteration.
func (s *Stack[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		st := s.unit()
		for h := st.head; h != arena.Nil; h = st.nodes.Get(h).next {
			k, v := st.entry(h)
			if !yield(k, *v) {
				return
			}
		}
	}
}

// Values ranges over the values of key from the most recently pushed to
// the oldest.
func (s *Stack[K, V]) Values(key K) iter.Seq[V] {
	return func(yield func(V) bool) {
		st := s.unit()
		b, ok := st.lookup(key)
		if !ok {
			return
		}
		for _, h := range b.slots.Backward() {
			if !yield(st.slots.Get(h).value) {
				return
			}
		}
	}
}
