package stack

import (
	"github.com/google/btree"

	"github.com/ChainSafe/keystack/common/arena"
	"github.com/ChainSafe/keystack/common/lifo"
)

const indexDegree = 16

// slot holds one stored value and the Global Order node that records it.
type slot[V any] struct {
	value V
	order arena.Handle
}

// node is one entry of the Global Order. prev points at the next more
// recent node, next at the next older one.
type node[K any] struct {
	bucket *bucket[K]
	pos    int
	prev   arena.Handle
	next   arena.Handle
}

// bucket holds the slots pushed under one key, most recent on top.
type bucket[K any] struct {
	key   K
	slots lifo.Stack[arena.Handle]
}

// storage is the Global Order and the Key Index. The two reference each
// other through arena handles and are always built and copied together.
type storage[K, V any] struct {
	slots arena.Arena[slot[V]]
	nodes arena.Arena[node[K]]
	head  arena.Handle // most recent
	tail  arena.Handle // oldest
	index *btree.BTreeG[*bucket[K]]
}

func newStorage[K, V any](compare func(a, b K) int) *storage[K, V] {
	return &storage[K, V]{
		index: btree.NewG(indexDegree, func(a, b *bucket[K]) bool {
			return compare(a.key, b.key) < 0
		}),
	}
}

func (st *storage[K, V]) len() int {
	return st.nodes.Len()
}

func (st *storage[K, V]) lookup(key K) (*bucket[K], bool) {
	return st.index.Get(&bucket[K]{key: key})
}

func (st *storage[K, V]) count(key K) int {
	b, ok := st.lookup(key)
	if !ok {
		return 0
	}
	return b.slots.Len()
}

func (st *storage[K, V]) linkFront(h arena.Handle) {
	n := st.nodes.Get(h)
	n.prev = arena.Nil
	n.next = st.head
	if st.head != arena.Nil {
		st.nodes.Get(st.head).prev = h
	} else {
		st.tail = h
	}
	st.head = h
}

func (st *storage[K, V]) unlink(h arena.Handle) {
	n := st.nodes.Get(h)
	if n.prev != arena.Nil {
		st.nodes.Get(n.prev).next = n.next
	} else {
		st.head = n.next
	}
	if n.next != arena.Nil {
		st.nodes.Get(n.next).prev = n.prev
	} else {
		st.tail = n.prev
	}
	st.nodes.Free(h)
}

// push inserts into the Global Order first and the key's bucket second.
// If the second step panics the first is undone, together with a bucket
// created for the occasion, before the panic propagates.
func (st *storage[K, V]) push(key K, value V) {
	h := st.nodes.Alloc(node[K]{})
	st.linkFront(h)

	var (
		b       *bucket[K]
		s       arena.Handle
		created bool
		done    bool
	)
	defer func() {
		if done {
			return
		}
		// restore the Global Order before Delete calls compare again
		st.unlink(h)
		if s != arena.Nil {
			st.slots.Free(s)
		}
		if created && b.slots.IsEmpty() {
			st.index.Delete(b)
		}
	}()

	b, ok := st.lookup(key)
	if !ok {
		b = &bucket[K]{key: key}
		st.index.ReplaceOrInsert(b)
		created = true
	}
	s = st.slots.Alloc(slot[V]{value: value, order: h})
	pos := b.slots.Push(s)

	n := st.nodes.Get(h)
	n.bucket = b
	n.pos = pos
	done = true
}

// drop removes the top slot of b and its Global Order node.
func (st *storage[K, V]) drop(b *bucket[K]) {
	s, _ := b.slots.Pop()
	h := st.slots.Get(s).order
	st.slots.Free(s)
	st.unlink(h)
	if b.slots.IsEmpty() {
		st.index.Delete(b)
	}
}

func (st *storage[K, V]) pop() error {
	if st.head == arena.Nil {
		return ErrEmpty
	}
	// the most recent node overall is always on top of its own bucket
	st.drop(st.nodes.Get(st.head).bucket)
	return nil
}

func (st *storage[K, V]) popKey(key K) error {
	b, ok := st.lookup(key)
	if !ok {
		return ErrUnknownKey
	}
	st.drop(b)
	return nil
}

func (st *storage[K, V]) top(b *bucket[K]) *V {
	s, _ := b.slots.Peek()
	return &st.slots.Get(s).value
}

func (st *storage[K, V]) front() (*bucket[K], *V, error) {
	if st.head == arena.Nil {
		return nil, nil, ErrEmpty
	}
	b := st.nodes.Get(st.head).bucket
	return b, st.top(b), nil
}

func (st *storage[K, V]) frontKey(key K) (*V, error) {
	b, ok := st.lookup(key)
	if !ok {
		return nil, ErrUnknownKey
	}
	return st.top(b), nil
}

// entry returns the key and value recorded by the Global Order node h.
func (st *storage[K, V]) entry(h arena.Handle) (K, *V) {
	n := st.nodes.Get(h)
	return n.bucket.key, &st.slots.Get(n.bucket.slots.At(n.pos)).value
}

func (st *storage[K, V]) reset() {
	st.slots.Reset()
	st.nodes.Reset()
	st.index.Clear(false)
	st.head, st.tail = arena.Nil, arena.Nil
}

// replay builds an independent copy of st. The Global Order is walked from
// the oldest node to the newest; each node takes the oldest value of its
// bucket not yet replayed. Pushing in that order rebuilds both the global
// and the per key recency order.
func (st *storage[K, V]) replay(compare func(a, b K) int, copyValue func(V) V) *storage[K, V] {
	dst := newStorage[K, V](compare)
	cursors := make(map[*bucket[K]]int, st.index.Len())
	for h := st.tail; h != arena.Nil; h = st.nodes.Get(h).prev {
		b := st.nodes.Get(h).bucket
		i := cursors[b]
		cursors[b] = i + 1

		v := st.slots.Get(b.slots.At(i)).value
		if copyValue != nil {
			v = copyValue(v)
		}
		dst.push(b.key, v)
	}
	return dst
}
