package stack

import "sync/atomic"

// shared is a reference counted storage unit. A unit referenced more than
// once is never mutated; writers take a private copy first.
type shared[K, V any] struct {
	refs atomic.Int32
	*storage[K, V]
}

func newShared[K, V any](st *storage[K, V]) *shared[K, V] {
	sh := &shared[K, V]{storage: st}
	sh.refs.Store(1)
	return sh
}

func (sh *shared[K, V]) acquire() *shared[K, V] {
	sh.refs.Add(1)
	return sh
}

func (sh *shared[K, V]) release() {
	sh.refs.Add(-1)
}

func (sh *shared[K, V]) exclusive() bool {
	return sh.refs.Load() <= 1
}

// owner is the part of a Stack that outlives it long enough for the
// cleanup to release its reference.
type owner[K, V any] struct {
	sh *shared[K, V]
}

func releaseOwner[K, V any](o *owner[K, V]) {
	if o.sh != nil {
		o.sh.release()
		o.sh = nil
	}
}
